/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"context"
	"fmt"
	"strings"

	"github.com/friendsincode/skald/internal/models"
)

// fakeLibrary is an in-memory Library backed by plain slices, used by the
// engine and station tests. Query methods mirror the store's filtering
// semantics closely enough for the engine's purposes.
type fakeLibrary struct {
	tracks       []models.Track
	artistGenres map[string][]string
	albumGenres  map[string][]string
	similar      map[string][]models.SimilarArtist

	// failures maps a method name to an error that method should return.
	failures map[string]error
}

func newFakeLibrary(tracks ...models.Track) *fakeLibrary {
	return &fakeLibrary{
		tracks:       tracks,
		artistGenres: map[string][]string{},
		albumGenres:  map[string][]string{},
		similar:      map[string][]models.SimilarArtist{},
		failures:     map[string]error{},
	}
}

func (f *fakeLibrary) fail(method string) error {
	return f.failures[method]
}

func (f *fakeLibrary) limited(tracks []models.Track, limit int) []models.Track {
	if limit > 0 && len(tracks) > limit {
		return tracks[:limit]
	}
	return tracks
}

func (f *fakeLibrary) TrackByID(ctx context.Context, id string) (*models.Track, error) {
	if err := f.fail("TrackByID"); err != nil {
		return nil, err
	}
	for i := range f.tracks {
		if f.tracks[i].ID == id {
			t := f.tracks[i]
			return &t, nil
		}
	}
	return nil, ErrSeedNotFound
}

func (f *fakeLibrary) AnalyzedTracks(ctx context.Context) ([]models.Track, error) {
	if err := f.fail("AnalyzedTracks"); err != nil {
		return nil, err
	}
	var out []models.Track
	for _, t := range f.tracks {
		if t.Analyzed() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeLibrary) TracksByArtist(ctx context.Context, artistID string) ([]models.Track, error) {
	if err := f.fail("TracksByArtist"); err != nil {
		return nil, err
	}
	var out []models.Track
	for _, t := range f.tracks {
		if t.ArtistID == artistID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeLibrary) TracksByArtists(ctx context.Context, artistIDs []string) ([]models.Track, error) {
	if err := f.fail("TracksByArtists"); err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(artistIDs))
	for _, id := range artistIDs {
		want[id] = struct{}{}
	}
	var out []models.Track
	for _, t := range f.tracks {
		if _, ok := want[t.ArtistID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeLibrary) TracksByDecade(ctx context.Context, startYear, endYear int) ([]models.Track, error) {
	if err := f.fail("TracksByDecade"); err != nil {
		return nil, err
	}
	var out []models.Track
	for _, t := range f.tracks {
		if t.Year >= startYear && t.Year <= endYear {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeLibrary) TracksByGenre(ctx context.Context, genre string, limit int) ([]models.Track, error) {
	if err := f.fail("TracksByGenre"); err != nil {
		return nil, err
	}
	var out []models.Track
	for _, t := range f.tracks {
		if strings.EqualFold(t.Genre, genre) {
			out = append(out, t)
		}
	}
	return f.limited(out, limit), nil
}

func (f *fakeLibrary) SearchTracksByGenreText(ctx context.Context, genre string, limit int) ([]models.Track, error) {
	if err := f.fail("SearchTracksByGenreText"); err != nil {
		return nil, err
	}
	var out []models.Track
	for _, t := range f.tracks {
		if strings.Contains(strings.ToLower(t.Genre), strings.ToLower(genre)) {
			out = append(out, t)
		}
	}
	return f.limited(out, limit), nil
}

func (f *fakeLibrary) TracksByArtistGenres(ctx context.Context, genres []string, limit int) ([]models.Track, error) {
	if err := f.fail("TracksByArtistGenres"); err != nil {
		return nil, err
	}
	artists := make(map[string]struct{})
	for artistID, owned := range f.artistGenres {
		for _, g := range owned {
			for _, want := range genres {
				if strings.EqualFold(g, want) {
					artists[artistID] = struct{}{}
				}
			}
		}
	}
	var out []models.Track
	for _, t := range f.tracks {
		if _, ok := artists[t.ArtistID]; ok {
			out = append(out, t)
		}
	}
	return f.limited(out, limit), nil
}

func (f *fakeLibrary) TracksByMoodTag(ctx context.Context, tag string, limit int) ([]models.Track, error) {
	if err := f.fail("TracksByMoodTag"); err != nil {
		return nil, err
	}
	var out []models.Track
	for _, t := range f.tracks {
		if t.MoodTags.Contains(tag) {
			out = append(out, t)
		}
	}
	return f.limited(out, limit), nil
}

func (f *fakeLibrary) MostPlayedTracks(ctx context.Context, limit int) ([]models.Track, error) {
	if err := f.fail("MostPlayedTracks"); err != nil {
		return nil, err
	}
	var out []models.Track
	for _, t := range f.tracks {
		if t.PlayCount > 0 {
			out = append(out, t)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].PlayCount > out[i].PlayCount {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return f.limited(out, limit), nil
}

func (f *fakeLibrary) UnplayedTracks(ctx context.Context, limit int) ([]models.Track, error) {
	if err := f.fail("UnplayedTracks"); err != nil {
		return nil, err
	}
	var out []models.Track
	for _, t := range f.tracks {
		if t.PlayCount == 0 {
			out = append(out, t)
		}
	}
	return f.limited(out, limit), nil
}

func (f *fakeLibrary) LeastPlayedTracks(ctx context.Context, limit int) ([]models.Track, error) {
	if err := f.fail("LeastPlayedTracks"); err != nil {
		return nil, err
	}
	out := make([]models.Track, len(f.tracks))
	copy(out, f.tracks)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].PlayCount < out[i].PlayCount {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return f.limited(out, limit), nil
}

func (f *fakeLibrary) RandomTracks(ctx context.Context, limit int) ([]models.Track, error) {
	if err := f.fail("RandomTracks"); err != nil {
		return nil, err
	}
	out := make([]models.Track, len(f.tracks))
	copy(out, f.tracks)
	return f.limited(out, limit), nil
}

func (f *fakeLibrary) SimilarArtists(ctx context.Context, artistID string) ([]models.SimilarArtist, error) {
	if err := f.fail("SimilarArtists"); err != nil {
		return nil, err
	}
	return f.similar[artistID], nil
}

func (f *fakeLibrary) OwnedArtistIDs(ctx context.Context) (map[string]struct{}, error) {
	if err := f.fail("OwnedArtistIDs"); err != nil {
		return nil, err
	}
	owned := make(map[string]struct{})
	for _, t := range f.tracks {
		owned[t.ArtistID] = struct{}{}
	}
	return owned, nil
}

func (f *fakeLibrary) SeedGenres(ctx context.Context, artistID, albumID string) ([]string, error) {
	if err := f.fail("SeedGenres"); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var genres []string
	add := func(list []string) {
		for _, g := range list {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	add(f.artistGenres[artistID])
	add(f.albumGenres[albumID])
	return genres, nil
}

func ptr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

// analyzedTrack builds a standard-mode analyzed track with the given signal
// features and a neutral danceability.
func analyzedTrack(id, artistID string, bpm, energy float64) models.Track {
	return models.Track{
		ID:             id,
		ArtistID:       artistID,
		AnalysisStatus: models.AnalysisCompleted,
		AnalysisMode:   models.ModeStandard,
		BPM:            ptr(bpm),
		Energy:         ptr(energy),
		Danceability:   ptr(0.5),
	}
}

// enhancedTrack builds an enhanced-mode track with uniform mood
// probabilities chosen to avoid the OOD detector.
func enhancedTrack(id, artistID string, bpm, energy float64) models.Track {
	t := analyzedTrack(id, artistID, bpm, energy)
	t.AnalysisMode = models.ModeEnhanced
	t.MoodHappy = ptr(0.8)
	t.MoodSad = ptr(0.1)
	t.MoodRelaxed = ptr(0.3)
	t.MoodAggressive = ptr(0.2)
	t.MoodParty = ptr(0.6)
	t.MoodAcoustic = ptr(0.2)
	t.MoodElectronic = ptr(0.7)
	return t
}

// trackHerd builds count enhanced tracks spread over artistCount artists,
// all sharing the same feature profile.
func trackHerd(count, artistCount int) []models.Track {
	tracks := make([]models.Track, 0, count)
	for i := 0; i < count; i++ {
		artist := fmt.Sprintf("artist-%02d", i%artistCount)
		tracks = append(tracks, enhancedTrack(fmt.Sprintf("track-%04d", i), artist, 128, 0.8))
	}
	return tracks
}
