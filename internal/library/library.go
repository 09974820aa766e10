/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package library is the gorm-backed read layer the radio engine consumes.
// It only ever selects; the scanner, analyzer, and enrichment pipelines own
// all writes.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/skald/internal/models"
	"github.com/friendsincode/skald/internal/radio"
)

// Store implements radio.Library over a gorm connection.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// New creates a library store.
func New(db *gorm.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, logger: logger.With().Str("component", "library").Logger()}
}

// TrackByID fetches one track with its full feature snapshot.
func (s *Store) TrackByID(ctx context.Context, id string) (*models.Track, error) {
	var track models.Track
	err := s.db.WithContext(ctx).First(&track, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, radio.ErrSeedNotFound
	}
	if err != nil {
		return nil, err
	}
	return &track, nil
}

// AnalyzedTracks returns every track with a completed analysis snapshot.
func (s *Store) AnalyzedTracks(ctx context.Context) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Where("analysis_status = ?", models.AnalysisCompleted).
		Find(&tracks).Error
	return tracks, err
}

// TracksByArtist returns all tracks owned by one artist.
func (s *Store) TracksByArtist(ctx context.Context, artistID string) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Find(&tracks).Error
	return tracks, err
}

// TracksByArtists returns tracks owned by any of the given artists.
func (s *Store) TracksByArtists(ctx context.Context, artistIDs []string) ([]models.Track, error) {
	if len(artistIDs) == 0 {
		return nil, nil
	}
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Where("artist_id IN ?", artistIDs).
		Find(&tracks).Error
	return tracks, err
}

// TracksByDecade returns tracks whose album year falls in [startYear, endYear].
func (s *Store) TracksByDecade(ctx context.Context, startYear, endYear int) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Joins("JOIN albums ON albums.id = tracks.album_id").
		Where("albums.year BETWEEN ? AND ?", startYear, endYear).
		Find(&tracks).Error
	return tracks, err
}

// TracksByGenre resolves through the structured genre relation.
func (s *Store) TracksByGenre(ctx context.Context, genre string, limit int) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Joins("JOIN track_genre_links ON track_genre_links.track_id = tracks.id").
		Joins("JOIN genres ON genres.id = track_genre_links.genre_id").
		Where("LOWER(genres.name) = ?", strings.ToLower(genre)).
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

// SearchTracksByGenreText matches the denormalized free-text genre field.
func (s *Store) SearchTracksByGenreText(ctx context.Context, genre string, limit int) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Where("LOWER(genre) LIKE ?", "%"+strings.ToLower(genre)+"%").
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

// TracksByArtistGenres returns tracks whose artist genre set intersects the
// given genre list. Genre sets are JSON text columns, so membership is an
// embedded-string match on the quoted value.
func (s *Store) TracksByArtistGenres(ctx context.Context, genres []string, limit int) ([]models.Track, error) {
	if len(genres) == 0 {
		return nil, nil
	}

	query := s.db.WithContext(ctx).Model(&models.Artist{})
	for i, genre := range genres {
		pattern := "%" + jsonMemberPattern(genre) + "%"
		if i == 0 {
			query = query.Where("LOWER(genres) LIKE ?", pattern)
		} else {
			query = query.Or("LOWER(genres) LIKE ?", pattern)
		}
	}

	var artistIDs []string
	if err := query.Pluck("id", &artistIDs).Error; err != nil {
		return nil, err
	}
	if len(artistIDs) == 0 {
		return nil, nil
	}

	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Where("artist_id IN ?", artistIDs).
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

// TracksByMoodTag returns tracks carrying the given analyzer mood tag.
func (s *Store) TracksByMoodTag(ctx context.Context, tag string, limit int) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Where("LOWER(mood_tags) LIKE ?", "%"+jsonMemberPattern(tag)+"%").
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

// MostPlayedTracks returns tracks with at least one play, most played first.
func (s *Store) MostPlayedTracks(ctx context.Context, limit int) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Where("play_count > 0").
		Order("play_count DESC").
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

// UnplayedTracks returns tracks with zero recorded plays.
func (s *Store) UnplayedTracks(ctx context.Context, limit int) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Where("play_count = 0").
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

// LeastPlayedTracks returns tracks ordered by ascending play count.
func (s *Store) LeastPlayedTracks(ctx context.Context, limit int) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Order("play_count ASC").
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

// RandomTracks returns up to limit tracks in database-random order.
func (s *Store) RandomTracks(ctx context.Context, limit int) ([]models.Track, error) {
	var tracks []models.Track
	err := s.db.WithContext(ctx).
		Order(s.randomExpr()).
		Limit(limit).
		Find(&tracks).Error
	return tracks, err
}

// randomExpr picks the random-order function for the active backend.
func (s *Store) randomExpr() string {
	if s.db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}

// SimilarArtists returns outgoing similarity edges ordered by weight.
func (s *Store) SimilarArtists(ctx context.Context, artistID string) ([]models.SimilarArtist, error) {
	var edges []models.SimilarArtist
	err := s.db.WithContext(ctx).
		Where("from_artist_id = ?", artistID).
		Order("weight DESC").
		Find(&edges).Error
	return edges, err
}

// OwnedArtistIDs returns the set of artists the library has tracks for.
func (s *Store) OwnedArtistIDs(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.Track{}).
		Distinct("artist_id").
		Pluck("artist_id", &ids).Error
	if err != nil {
		return nil, err
	}
	owned := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		owned[id] = struct{}{}
	}
	return owned, nil
}

// SeedGenres unions an artist's and an album's genre lists.
func (s *Store) SeedGenres(ctx context.Context, artistID, albumID string) ([]string, error) {
	seen := make(map[string]struct{})
	var genres []string
	add := func(list models.StringList) {
		for _, g := range list {
			key := strings.ToLower(g)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			genres = append(genres, g)
		}
	}

	if artistID != "" {
		var artist models.Artist
		err := s.db.WithContext(ctx).First(&artist, "id = ?", artistID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("artist genres: %w", err)
		}
		add(artist.Genres)
	}

	if albumID != "" {
		var album models.Album
		err := s.db.WithContext(ctx).First(&album, "id = ?", albumID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("album genres: %w", err)
		}
		add(album.Genres)
	}

	return genres, nil
}

// jsonMemberPattern builds the LIKE fragment matching a quoted member of a
// JSON string array.
func jsonMemberPattern(value string) string {
	return `"` + strings.ToLower(value) + `"`
}
