/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package radio implements the content-based radio engine: given a seed and
// a target size it produces an ordered track id sequence, guaranteeing a
// result even when audio analysis coverage is sparse.
package radio

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/friendsincode/skald/internal/models"
	"github.com/friendsincode/skald/internal/telemetry"
)

// StationType selects the candidate strategy for a request. Values match the
// wire contract.
type StationType string

const (
	StationSimilarity  StationType = "similarity"
	StationDiscovery   StationType = "discovery"
	StationFavorites   StationType = "favorites"
	StationDecade      StationType = "decade"
	StationGenre       StationType = "genre"
	StationMood        StationType = "mood"
	StationWorkout     StationType = "workout"
	StationArtistRadio StationType = "artistRadio"
	StationAllRandom   StationType = "allRandom"
)

// StationTypes lists every supported station.
func StationTypes() []StationType {
	return []StationType{
		StationSimilarity, StationDiscovery, StationFavorites,
		StationDecade, StationGenre, StationMood,
		StationWorkout, StationArtistRadio, StationAllRandom,
	}
}

// Target count limits applied to every request.
const (
	DefaultCount = 50
	MaxCount     = 100
)

// Request describes one radio generation call.
type Request struct {
	Station StationType

	SeedTrackID  string // similarity
	SeedArtistID string // artistRadio
	Decade       int    // decade, e.g. 1990
	Genre        string // genre
	Mood         string // mood

	Count int

	// RandomSeed feeds the engine's randomness. Zero draws from the clock;
	// a fixed value makes shuffles and samples reproducible.
	RandomSeed int64
}

// SourceFeatures is the seed track's feature snapshot, returned on
// similarity stations for client-side visualization.
type SourceFeatures struct {
	TrackID          string             `json:"trackId"`
	BPM              float64            `json:"bpm"`
	Energy           float64            `json:"energy"`
	Danceability     float64            `json:"danceability"`
	Instrumentalness float64            `json:"instrumentalness"`
	Arousal          float64            `json:"arousal"`
	Valence          float64            `json:"valence"`
	KeyScale         string             `json:"keyScale,omitempty"`
	Moods            map[string]float64 `json:"moods,omitempty"`
}

// sourceFeaturesOf snapshots the seed even when its analysis is incomplete;
// missing values surface as the neutral defaults so clients always get a
// renderable profile.
func sourceFeaturesOf(t *models.Track, cfg ScoringConfig) *SourceFeatures {
	sf := &SourceFeatures{
		TrackID:          t.ID,
		BPM:              fval(t.BPM, defaultBPM),
		Energy:           fval(t.Energy, defaultFeature),
		Danceability:     danceabilityOf(t),
		Instrumentalness: fval(t.Instrumentalness, defaultFeature),
		Arousal:          DerivedArousal(t, cfg),
		Valence:          DerivedValence(t, cfg),
	}
	if t.KeyScale != nil {
		sf.KeyScale = *t.KeyScale
	}
	if t.Enhanced() {
		ms := correctedMoods(t, cfg)
		sf.Moods = map[string]float64{
			"happy":      ms.Happy,
			"sad":        ms.Sad,
			"relaxed":    ms.Relaxed,
			"aggressive": ms.Aggressive,
			"party":      ms.Party,
			"acoustic":   ms.Acoustic,
			"electronic": ms.Electronic,
		}
	}
	return sf
}

// Response carries the ordered result. TrackIDs may be shorter than the
// requested count when the library cannot satisfy it; that is not an error.
type Response struct {
	TrackIDs       []string        `json:"tracks"`
	SourceFeatures *SourceFeatures `json:"sourceFeatures,omitempty"`
}

// strategyFunc produces an ordered candidate id list for one station type.
type strategyFunc func(ctx context.Context, req Request, rng *rand.Rand) ([]string, error)

// Engine is the radio orchestrator. Each Generate call is a one-shot pure
// computation over snapshots read through the Library; the engine holds no
// mutable state, so a single instance serves concurrent callers.
type Engine struct {
	lib        Library
	cfg        ScoringConfig
	moods      map[string]MoodPreset
	logger     zerolog.Logger
	tracer     trace.Tracer
	strategies map[StationType]strategyFunc
}

// New creates a radio engine. A nil presets map installs the built-ins.
func New(lib Library, cfg ScoringConfig, presets map[string]MoodPreset, logger zerolog.Logger) *Engine {
	if presets == nil {
		presets = DefaultMoodPresets()
	}
	e := &Engine{
		lib:    lib,
		cfg:    cfg,
		moods:  presets,
		logger: logger.With().Str("component", "radio").Logger(),
		tracer: otel.Tracer("skald/radio"),
	}
	e.strategies = map[StationType]strategyFunc{
		StationDiscovery:   e.discoveryStation,
		StationFavorites:   e.favoritesStation,
		StationDecade:      e.decadeStation,
		StationGenre:       e.genreStation,
		StationMood:        e.moodStation,
		StationWorkout:     e.workoutStation,
		StationArtistRadio: e.artistRadio,
		StationAllRandom:   e.allRandomStation,
	}
	return e
}

// Generate resolves the station type, runs its strategy, and applies the
// final ordering rule: similarity results keep score order, everything else
// is shuffled. It always returns a (possibly short, possibly empty) list.
func (e *Engine) Generate(ctx context.Context, req Request) (Response, error) {
	if req.Count <= 0 {
		req.Count = DefaultCount
	}
	if req.Count > MaxCount {
		req.Count = MaxCount
	}

	ctx, span := e.tracer.Start(ctx, "radio.generate",
		trace.WithAttributes(
			attribute.String("station", string(req.Station)),
			attribute.Int("count", req.Count),
		))
	defer span.End()

	start := time.Now()
	defer func() {
		telemetry.RadioRequestDuration.WithLabelValues(string(req.Station)).Observe(time.Since(start).Seconds())
	}()
	telemetry.RadioRequestsTotal.WithLabelValues(string(req.Station)).Inc()

	seed := req.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if req.Station == StationSimilarity {
		return e.generateSimilarity(ctx, req)
	}

	strategy, ok := e.strategies[req.Station]
	if !ok {
		return Response{}, fmt.Errorf("unknown station type %q", req.Station)
	}

	ids, err := strategy(ctx, req, rng)
	if err != nil {
		return Response{}, fmt.Errorf("station %s: %w", req.Station, err)
	}

	if len(ids) > req.Count {
		ids = ids[:req.Count]
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	e.logger.Debug().
		Str("station", string(req.Station)).
		Int("tracks", len(ids)).
		Msg("station generated")

	return Response{TrackIDs: ids}, nil
}

// generateSimilarity runs the vibe station: seed lookup, fallback chain,
// score-ordered output with the seed's feature snapshot attached.
func (e *Engine) generateSimilarity(ctx context.Context, req Request) (Response, error) {
	seed, err := e.lib.TrackByID(ctx, req.SeedTrackID)
	if err != nil {
		return Response{}, fmt.Errorf("similarity seed %s: %w", req.SeedTrackID, err)
	}

	ids := e.vibeCandidates(ctx, seed, req.Count)
	if len(ids) > req.Count {
		ids = ids[:req.Count]
	}

	e.logger.Debug().
		Str("seed", seed.ID).
		Int("tracks", len(ids)).
		Msg("similarity station generated")

	return Response{
		TrackIDs:       ids,
		SourceFeatures: sourceFeaturesOf(seed, e.cfg),
	}, nil
}
