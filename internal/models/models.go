/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package models defines the persisted library entities the radio engine
// reads: tracks with their analysis snapshots, albums, artists, genres, and
// the artist similarity graph.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnalysisStatus tracks audio analysis progress for a track.
type AnalysisStatus string

const (
	AnalysisPending    AnalysisStatus = "pending"
	AnalysisProcessing AnalysisStatus = "processing"
	AnalysisCompleted  AnalysisStatus = "completed"
	AnalysisFailed     AnalysisStatus = "failed"
	AnalysisSkipped    AnalysisStatus = "skipped"
)

// AnalysisMode distinguishes the two analyzer pipelines. Enhanced tracks
// additionally carry the seven ML mood probabilities.
type AnalysisMode string

const (
	ModeStandard AnalysisMode = "standard"
	ModeEnhanced AnalysisMode = "enhanced"
)

// StringList is a JSON-serialized string set stored in a text column.
type StringList []string

// Contains reports case-insensitive membership.
func (l StringList) Contains(value string) bool {
	for _, v := range l {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// Track is an audio asset with its analysis snapshot. The radio engine only
// ever reads these rows; the scanner and analyzer own all mutation.
type Track struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	AlbumID   string `gorm:"type:uuid;index"`
	ArtistID  string `gorm:"type:uuid;index"`
	Title     string `gorm:"index"`
	Year      int
	Genre     string `gorm:"index"` // denormalized free-text genre for search
	PlayCount int    `gorm:"index"`

	AnalysisStatus AnalysisStatus `gorm:"type:varchar(16);index"`
	AnalysisMode   AnalysisMode   `gorm:"type:varchar(16)"`

	// Raw audio features, normalized 0-1 unless noted. Nil means the
	// analyzer did not produce the value.
	BPM              *float64
	Energy           *float64
	Danceability     *float64
	DanceabilityML   *float64
	Instrumentalness *float64
	Acousticness     *float64
	Arousal          *float64
	Valence          *float64
	KeyScale         *string `gorm:"type:varchar(8)"` // "major" | "minor"

	// ML mood probabilities, enhanced mode only.
	MoodHappy      *float64
	MoodSad        *float64
	MoodRelaxed    *float64
	MoodAggressive *float64
	MoodParty      *float64
	MoodAcoustic   *float64
	MoodElectronic *float64

	LastfmTags     StringList `gorm:"serializer:json;type:text"`
	EssentiaGenres StringList `gorm:"serializer:json;type:text"`
	MoodTags       StringList `gorm:"serializer:json;type:text"`

	Genres []TrackGenreLink `gorm:"foreignKey:TrackID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTrack creates a track awaiting analysis.
func NewTrack(artistID, albumID, title string) *Track {
	return &Track{
		ID:             uuid.NewString(),
		ArtistID:       artistID,
		AlbumID:        albumID,
		Title:          title,
		AnalysisStatus: AnalysisPending,
	}
}

// Analyzed reports whether the track carries a completed feature snapshot.
func (t *Track) Analyzed() bool {
	return t.AnalysisStatus == AnalysisCompleted
}

// Enhanced reports whether the track was analyzed with the ML mood heads.
func (t *Track) Enhanced() bool {
	return t.AnalysisMode == ModeEnhanced
}

// Album groups tracks under an artist.
type Album struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	ArtistID  string `gorm:"type:uuid;index"`
	Name      string `gorm:"index"`
	Year      int
	Genres    StringList `gorm:"serializer:json;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Artist is a library artist with its genre set.
type Artist struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"index"`
	Genres    StringList `gorm:"serializer:json;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewArtist creates a library artist.
func NewArtist(name string) *Artist {
	return &Artist{ID: uuid.NewString(), Name: name}
}

// NewAlbum creates an album under an artist.
func NewAlbum(artistID, name string, year int) *Album {
	return &Album{ID: uuid.NewString(), ArtistID: artistID, Name: name, Year: year}
}

// Genre is a structured genre label.
type Genre struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TrackGenreLink joins tracks to structured genres.
type TrackGenreLink struct {
	TrackID string `gorm:"type:uuid;primaryKey"`
	GenreID string `gorm:"type:uuid;primaryKey"`
}

// SimilarArtist is a directed edge in the artist similarity graph, populated
// by the metadata enrichment pipeline. Edges are not assumed symmetric and
// the target artist need not exist in the local library.
type SimilarArtist struct {
	FromArtistID string  `gorm:"type:uuid;primaryKey;index"`
	ToArtistID   string  `gorm:"type:uuid;primaryKey"`
	Weight       float64 // non-negative similarity strength
	CreatedAt    time.Time
}
