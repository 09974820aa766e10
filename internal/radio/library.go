/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"context"
	"errors"

	"github.com/friendsincode/skald/internal/models"
)

// ErrSeedNotFound indicates a similarity request named a track that does not
// exist. No fallback is attempted without a valid seed.
var ErrSeedNotFound = errors.New("seed track not found")

// Library is the read-only storage collaborator the engine depends on. All
// methods return consistent snapshots; the engine never mutates library data
// and holds no state between calls.
type Library interface {
	// TrackByID fetches a track with its full feature snapshot. A missing
	// track is reported as ErrSeedNotFound.
	TrackByID(ctx context.Context, id string) (*models.Track, error)

	// AnalyzedTracks returns every track with a completed analysis snapshot.
	AnalyzedTracks(ctx context.Context) ([]models.Track, error)

	// TracksByArtist returns all tracks owned by one artist.
	TracksByArtist(ctx context.Context, artistID string) ([]models.Track, error)

	// TracksByArtists returns tracks owned by any of the given artists.
	TracksByArtists(ctx context.Context, artistIDs []string) ([]models.Track, error)

	// TracksByDecade returns tracks whose album year falls in [startYear, endYear].
	TracksByDecade(ctx context.Context, startYear, endYear int) ([]models.Track, error)

	// TracksByGenre resolves tracks through the structured genre relation.
	TracksByGenre(ctx context.Context, genre string, limit int) ([]models.Track, error)

	// SearchTracksByGenreText matches the denormalized free-text genre field.
	SearchTracksByGenreText(ctx context.Context, genre string, limit int) ([]models.Track, error)

	// TracksByArtistGenres returns tracks whose artist genre set intersects
	// the given genre list.
	TracksByArtistGenres(ctx context.Context, genres []string, limit int) ([]models.Track, error)

	// TracksByMoodTag returns tracks carrying the given analyzer mood tag.
	TracksByMoodTag(ctx context.Context, tag string, limit int) ([]models.Track, error)

	// MostPlayedTracks returns tracks with at least one play, most played first.
	MostPlayedTracks(ctx context.Context, limit int) ([]models.Track, error)

	// UnplayedTracks returns tracks with zero recorded plays.
	UnplayedTracks(ctx context.Context, limit int) ([]models.Track, error)

	// LeastPlayedTracks returns tracks ordered by ascending play count.
	LeastPlayedTracks(ctx context.Context, limit int) ([]models.Track, error)

	// RandomTracks returns up to limit tracks in storage-random order.
	RandomTracks(ctx context.Context, limit int) ([]models.Track, error)

	// SimilarArtists returns the outgoing similarity edges for an artist,
	// ordered by descending weight.
	SimilarArtists(ctx context.Context, artistID string) ([]models.SimilarArtist, error)

	// OwnedArtistIDs returns the set of artists the library has content for.
	OwnedArtistIDs(ctx context.Context) (map[string]struct{}, error)

	// SeedGenres unions the genre lists of an artist and an album, either id
	// may be empty.
	SeedGenres(ctx context.Context, artistID, albumID string) ([]string, error)
}
