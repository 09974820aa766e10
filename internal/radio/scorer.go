/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"math"
	"sort"
	"strings"

	"github.com/friendsincode/skald/internal/models"
)

// Cosine returns the cosine similarity of two feature vectors. A zero vector
// on either side yields 0.
func Cosine(a, b FeatureVector) float64 {
	var dot, normA, normB float64
	for i := 0; i < VectorDim; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// tagSet unions a track's lastfm tags and essentia genres, lowercased.
func tagSet(t *models.Track) map[string]struct{} {
	set := make(map[string]struct{}, len(t.LastfmTags)+len(t.EssentiaGenres))
	for _, tag := range t.LastfmTags {
		set[strings.ToLower(tag)] = struct{}{}
	}
	for _, tag := range t.EssentiaGenres {
		set[strings.ToLower(tag)] = struct{}{}
	}
	return set
}

// ScoredTrack pairs a track id with its similarity score.
type ScoredTrack struct {
	TrackID string
	Score   float64
}

// Scorer ranks candidate tracks against a fixed seed.
type Scorer struct {
	cfg      ScoringConfig
	seed     *models.Track
	seedVec  FeatureVector
	seedTags map[string]struct{}
}

// NewScorer precomputes the seed's vector and tag set.
func NewScorer(seed *models.Track, cfg ScoringConfig) *Scorer {
	return &Scorer{
		cfg:      cfg,
		seed:     seed,
		seedVec:  Vector(seed, cfg),
		seedTags: tagSet(seed),
	}
}

// SeedVector exposes the seed's feature vector.
func (s *Scorer) SeedVector() FeatureVector {
	return s.seedVec
}

// Score computes the final similarity score for a candidate and reports
// whether it clears the acceptance threshold. The threshold is looser when
// both tracks carry the richer enhanced-mode features.
func (s *Scorer) Score(c *models.Track) (float64, bool) {
	raw := Cosine(s.seedVec, Vector(c, s.cfg))

	bonus := 0.0
	for tag := range tagSet(c) {
		if _, ok := s.seedTags[tag]; ok {
			bonus += s.cfg.TagBonusPerMatch
		}
	}
	bonus = math.Min(bonus, s.cfg.TagBonusCap)

	score := s.cfg.CosineWeight*raw + bonus

	threshold := s.cfg.StandardThreshold
	if s.seed.Enhanced() && c.Enhanced() {
		threshold = s.cfg.EnhancedThreshold
	}

	return score, score > threshold
}

// Rank scores all candidates, drops those below threshold and the seed
// itself, and returns the survivors sorted by descending score. Ties keep
// their input order; the sort is stable on purpose.
func (s *Scorer) Rank(candidates []models.Track) []ScoredTrack {
	ranked := make([]ScoredTrack, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if c.ID == s.seed.ID {
			continue
		}
		if score, ok := s.Score(c); ok {
			ranked = append(ranked, ScoredTrack{TrackID: c.ID, Score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}
