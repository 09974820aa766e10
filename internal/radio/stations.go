/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/friendsincode/skald/internal/models"
)

func trackIDs(tracks []models.Track) []string {
	ids := make([]string, len(tracks))
	for i := range tracks {
		ids[i] = tracks[i].ID
	}
	return ids
}

// moodStation filters analyzed tracks through a named preset. Labels without
// a preset fall back to exact analyzer mood-tag matching.
func (e *Engine) moodStation(ctx context.Context, req Request, rng *rand.Rand) ([]string, error) {
	label := strings.ToLower(strings.TrimSpace(req.Mood))

	preset, ok := e.moods[label]
	if !ok {
		tracks, err := e.lib.TracksByMoodTag(ctx, label, req.Count)
		if err != nil {
			return nil, err
		}
		return trackIDs(tracks), nil
	}

	tracks, err := e.lib.AnalyzedTracks(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for i := range tracks {
		if preset.Matches(&tracks[i], e.cfg) {
			ids = append(ids, tracks[i].ID)
		}
	}
	return ids, nil
}

// decadeStation selects tracks whose album year falls inside the decade.
func (e *Engine) decadeStation(ctx context.Context, req Request, rng *rand.Rand) ([]string, error) {
	tracks, err := e.lib.TracksByDecade(ctx, req.Decade, req.Decade+9)
	if err != nil {
		return nil, err
	}
	return trackIDs(tracks), nil
}

// genreStation resolves through the structured genre relation first and tops
// up from the denormalized free-text genre field when under target.
func (e *Engine) genreStation(ctx context.Context, req Request, rng *rand.Rand) ([]string, error) {
	tracks, err := e.lib.TracksByGenre(ctx, req.Genre, req.Count)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator("", req.Count)
	acc.addTracks(tracks, req.Count)

	if !acc.full(req.Count) {
		extra, err := e.lib.SearchTracksByGenreText(ctx, req.Genre, req.Count)
		if err != nil {
			e.logger.Warn().Err(err).Str("genre", req.Genre).Msg("genre text search failed")
		} else {
			acc.addTracks(extra, req.Count)
		}
	}
	return acc.ids, nil
}

// favoritesStation orders by descending play count; never-played tracks are
// excluded.
func (e *Engine) favoritesStation(ctx context.Context, req Request, rng *rand.Rand) ([]string, error) {
	tracks, err := e.lib.MostPlayedTracks(ctx, req.Count)
	if err != nil {
		return nil, err
	}
	return trackIDs(tracks), nil
}

// discoveryStation prefers unplayed tracks, topping up with the least played
// when the library has too few unheard tracks.
func (e *Engine) discoveryStation(ctx context.Context, req Request, rng *rand.Rand) ([]string, error) {
	tracks, err := e.lib.UnplayedTracks(ctx, req.Count)
	if err != nil {
		return nil, err
	}

	acc := newAccumulator("", req.Count)
	acc.addTracks(tracks, req.Count)

	if !acc.full(req.Count) {
		least, err := e.lib.LeastPlayedTracks(ctx, req.Count+len(acc.ids))
		if err != nil {
			return nil, err
		}
		acc.addTracks(least, req.Count)
	}
	return acc.ids, nil
}

// workoutStation unions a signal-feature predicate with explicit analyzer
// workout tags, caps artists at two tracks each, and tops up by genre when
// the capped set is under target.
func (e *Engine) workoutStation(ctx context.Context, req Request, rng *rand.Rand) ([]string, error) {
	analyzed, err := e.lib.AnalyzedTracks(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Track)
	for _, t := range analyzed {
		if fval(t.Energy, defaultFeature) >= workoutMinEnergy && fval(t.BPM, defaultBPM) >= workoutMinBPM {
			byID[t.ID] = t
		}
	}

	for _, tag := range workoutMoodTags {
		tagged, err := e.lib.TracksByMoodTag(ctx, tag, req.Count)
		if err != nil {
			e.logger.Warn().Err(err).Str("tag", tag).Msg("workout tag lookup failed")
			continue
		}
		for _, t := range tagged {
			byID[t.ID] = t
		}
	}

	pool := make([]models.Track, 0, len(byID))
	for _, t := range byID {
		pool = append(pool, t)
	}
	// Map iteration order is random; pin it so the injected rng alone
	// decides the shuffle.
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })

	capped := DiversityFilter(rng, pool, workoutArtistCap)

	acc := newAccumulator("", req.Count)
	acc.addTracks(capped, req.Count)

	if !acc.full(req.Count) {
		for _, genre := range genresOf(capped) {
			if acc.full(req.Count) {
				break
			}
			extra, err := e.lib.SearchTracksByGenreText(ctx, genre, req.Count)
			if err != nil {
				continue
			}
			acc.addTracks(extra, req.Count)
		}
	}
	return acc.ids, nil
}

// workoutArtistCap limits each artist's contribution to the workout pool.
const workoutArtistCap = 2

// genresOf collects the distinct free-text genres of a track list, in order
// of first appearance.
func genresOf(tracks []models.Track) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, t := range tracks {
		g := strings.ToLower(strings.TrimSpace(t.Genre))
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		genres = append(genres, g)
	}
	return genres
}

// allRandomStation returns an unconstrained random slice of the library.
func (e *Engine) allRandomStation(ctx context.Context, req Request, rng *rand.Rand) ([]string, error) {
	tracks, err := e.lib.RandomTracks(ctx, req.Count)
	if err != nil {
		return nil, err
	}
	return trackIDs(tracks), nil
}

// artistProfile is an averaged per-factor feature summary of an artist's
// catalogue, used by artist radio instead of a full vector cosine.
type artistProfile struct {
	Energy       float64
	Arousal      float64
	Valence      float64
	Danceability float64
	BPM          float64
}

func profileOf(tracks []models.Track, cfg ScoringConfig) artistProfile {
	var p artistProfile
	n := 0
	for i := range tracks {
		t := &tracks[i]
		if !t.Analyzed() {
			continue
		}
		p.Energy += fval(t.Energy, defaultFeature)
		p.Arousal += DerivedArousal(t, cfg)
		p.Valence += DerivedValence(t, cfg)
		p.Danceability += danceabilityOf(t)
		p.BPM += fval(t.BPM, defaultBPM)
		n++
	}
	if n == 0 {
		return artistProfile{
			Energy:       defaultFeature,
			Arousal:      defaultFeature,
			Valence:      defaultFeature,
			Danceability: defaultFeature,
			BPM:          defaultBPM,
		}
	}
	p.Energy /= float64(n)
	p.Arousal /= float64(n)
	p.Valence /= float64(n)
	p.Danceability /= float64(n)
	p.BPM /= float64(n)
	return p
}

// closeness scores a candidate against the profile as a weighted sum of
// per-factor proximities, tempo compared octave-aware.
func (p artistProfile) closeness(t *models.Track, cfg ScoringConfig) float64 {
	return 0.25*(1-math.Abs(p.Energy-fval(t.Energy, defaultFeature))) +
		0.25*(1-math.Abs(p.Arousal-DerivedArousal(t, cfg))) +
		0.20*(1-math.Abs(p.Valence-DerivedValence(t, cfg))) +
		0.15*(1-math.Abs(p.Danceability-danceabilityOf(t))) +
		0.15*(1-TempoDistance(p.BPM, fval(t.BPM, defaultBPM)))
}

// artistRadio blends roughly 40% of the seed artist's own tracks with 60%
// similarity-ranked tracks from graph-similar library artists. When the
// similarity graph yields fewer than five candidate artists, candidates fall
// back to artist genre overlap.
func (e *Engine) artistRadio(ctx context.Context, req Request, rng *rand.Rand) ([]string, error) {
	seedTracks, err := e.lib.TracksByArtist(ctx, req.SeedArtistID)
	if err != nil {
		return nil, err
	}
	if len(seedTracks) == 0 {
		// No catalogue means no profile to score against.
		return nil, nil
	}

	profile := profileOf(seedTracks, e.cfg)

	similarIDs, err := e.ownedSimilarArtists(ctx, req.SeedArtistID, similarArtistLimit)
	if err != nil {
		e.logger.Warn().Err(err).Str("artist", req.SeedArtistID).Msg("similar artist lookup failed")
	}

	var pool []models.Track
	if len(similarIDs) >= minGraphArtists {
		pool, err = e.lib.TracksByArtists(ctx, similarIDs)
		if err != nil {
			return nil, err
		}
	} else {
		genres, err := e.lib.SeedGenres(ctx, req.SeedArtistID, "")
		if err != nil {
			return nil, err
		}
		if len(genres) > 0 {
			pool, err = e.lib.TracksByArtistGenres(ctx, genres, req.Count*2)
			if err != nil {
				return nil, err
			}
		}
	}

	ranked := make([]ScoredTrack, 0, len(pool))
	for i := range pool {
		t := &pool[i]
		if t.ArtistID == req.SeedArtistID {
			continue
		}
		ranked = append(ranked, ScoredTrack{TrackID: t.ID, Score: profile.closeness(t, e.cfg)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	similarCount := req.Count * 6 / 10
	seedCount := req.Count - similarCount

	// Random sample of the artist's own tracks.
	own := make([]models.Track, len(seedTracks))
	copy(own, seedTracks)
	rng.Shuffle(len(own), func(i, j int) { own[i], own[j] = own[j], own[i] })
	if len(own) > seedCount {
		own = own[:seedCount]
	}

	// Slight shuffle over double the similarity quota adds variety without
	// abandoning the ranking.
	window := similarCount * 2
	if window > len(ranked) {
		window = len(ranked)
	}
	head := ranked[:window]
	rng.Shuffle(len(head), func(i, j int) { head[i], head[j] = head[j], head[i] })
	if len(head) > similarCount {
		head = head[:similarCount]
	}

	ids := trackIDs(own)
	for _, st := range head {
		ids = append(ids, st.TrackID)
	}
	return ids, nil
}

// minGraphArtists is the point below which artist radio abandons the
// similarity graph for genre overlap.
const minGraphArtists = 5
