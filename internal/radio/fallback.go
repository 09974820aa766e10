/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"context"

	"github.com/friendsincode/skald/internal/models"
	"github.com/friendsincode/skald/internal/telemetry"
)

// accumulator collects candidate ids across fallback stages, preserving
// insertion order and rejecting duplicates and the seed.
type accumulator struct {
	ids  []string
	seen map[string]struct{}
}

func newAccumulator(seedID string, capacity int) *accumulator {
	return &accumulator{
		ids:  make([]string, 0, capacity),
		seen: map[string]struct{}{seedID: {}},
	}
}

func (a *accumulator) add(id string) bool {
	if _, dup := a.seen[id]; dup {
		return false
	}
	a.seen[id] = struct{}{}
	a.ids = append(a.ids, id)
	return true
}

func (a *accumulator) addTracks(tracks []models.Track, target int) {
	for i := range tracks {
		if len(a.ids) >= target {
			return
		}
		a.add(tracks[i].ID)
	}
}

func (a *accumulator) full(target int) bool {
	return len(a.ids) >= target
}

// fallbackStage is one candidate-gathering step of the chain. Stages run in
// fixed order; each appends only ids not already collected.
type fallbackStage struct {
	name   string
	gather func(ctx context.Context, acc *accumulator, target int) error
}

// vibeCandidates runs the full fallback chain for a seed-track station:
// audio similarity, then same artist, graph-similar artists restricted to
// the owned library, shared genre, and finally unrestricted random fill.
// The combined list keeps stage order internally; stage 1 keeps its score
// order and later stages are appended as returned.
func (e *Engine) vibeCandidates(ctx context.Context, seed *models.Track, target int) []string {
	acc := newAccumulator(seed.ID, target)

	stages := []fallbackStage{
		{name: "similarity", gather: func(ctx context.Context, acc *accumulator, target int) error {
			if !seed.Analyzed() {
				// A feature vector needs a completed analysis; an
				// unanalyzed seed starts at the artist stages.
				return nil
			}
			tracks, err := e.lib.AnalyzedTracks(ctx)
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				// Nothing analyzed yet; the chain proceeds from stage 2.
				return nil
			}
			scorer := NewScorer(seed, e.cfg)
			for _, st := range scorer.Rank(tracks) {
				if acc.full(target) {
					break
				}
				acc.add(st.TrackID)
			}
			return nil
		}},
		{name: "same_artist", gather: func(ctx context.Context, acc *accumulator, target int) error {
			tracks, err := e.lib.TracksByArtist(ctx, seed.ArtistID)
			if err != nil {
				return err
			}
			acc.addTracks(tracks, target)
			return nil
		}},
		{name: "similar_artists", gather: func(ctx context.Context, acc *accumulator, target int) error {
			artistIDs, err := e.ownedSimilarArtists(ctx, seed.ArtistID, similarArtistLimit)
			if err != nil {
				return err
			}
			if len(artistIDs) == 0 {
				return nil
			}
			tracks, err := e.lib.TracksByArtists(ctx, artistIDs)
			if err != nil {
				return err
			}
			acc.addTracks(tracks, target)
			return nil
		}},
		{name: "shared_genre", gather: func(ctx context.Context, acc *accumulator, target int) error {
			genres, err := e.lib.SeedGenres(ctx, seed.ArtistID, seed.AlbumID)
			if err != nil {
				return err
			}
			if len(genres) == 0 {
				return nil
			}
			tracks, err := e.lib.TracksByArtistGenres(ctx, genres, target)
			if err != nil {
				return err
			}
			acc.addTracks(tracks, target)
			return nil
		}},
		{name: "random_fill", gather: func(ctx context.Context, acc *accumulator, target int) error {
			// Over-fetch to absorb collisions with already-collected ids.
			tracks, err := e.lib.RandomTracks(ctx, target+len(acc.ids)+1)
			if err != nil {
				return err
			}
			acc.addTracks(tracks, target)
			return nil
		}},
	}

	for _, stage := range stages {
		if acc.full(target) {
			break
		}
		before := len(acc.ids)
		if err := stage.gather(ctx, acc, target); err != nil {
			// A broken stage must not sink the chain; later stages still
			// get their chance to fill the result.
			e.logger.Warn().Err(err).Str("stage", stage.name).Msg("fallback stage failed")
			continue
		}
		telemetry.RadioFallbackTracks.WithLabelValues(stage.name).Add(float64(len(acc.ids) - before))
	}

	return acc.ids
}

// similarArtistLimit caps how many graph neighbours stage 3 pulls tracks from.
const similarArtistLimit = 10

// ownedSimilarArtists resolves the similarity graph neighbours of an artist,
// restricted to artists the library actually has content for, ordered by
// descending edge weight.
func (e *Engine) ownedSimilarArtists(ctx context.Context, artistID string, limit int) ([]string, error) {
	edges, err := e.lib.SimilarArtists(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, nil
	}

	owned, err := e.lib.OwnedArtistIDs(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, limit)
	for _, edge := range edges {
		if _, ok := owned[edge.ToArtistID]; !ok {
			continue
		}
		ids = append(ids, edge.ToArtistID)
		if len(ids) >= limit {
			break
		}
	}
	return ids, nil
}
