/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/friendsincode/skald/internal/radio"
)

// API exposes the radio HTTP handlers.
type API struct {
	engine    *radio.Engine
	maxTracks int
	logger    zerolog.Logger
}

// New creates the API handler wrapper.
func New(engine *radio.Engine, maxTracks int, logger zerolog.Logger) *API {
	if maxTracks <= 0 {
		maxTracks = radio.MaxCount
	}
	return &API{
		engine:    engine,
		maxTracks: maxTracks,
		logger:    logger.With().Str("component", "api").Logger(),
	}
}

// RegisterRoutes mounts the API under the given router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/radio", a.handleRadio)
		r.Get("/radio/stations", a.handleStations)
	})
}

// radioRequest is the wire form of a radio generation call.
type radioRequest struct {
	StationType string `json:"stationType"`
	TrackID     string `json:"trackId,omitempty"`
	ArtistID    string `json:"artistId,omitempty"`
	Decade      int    `json:"decade,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Mood        string `json:"mood,omitempty"`
	TargetCount int    `json:"targetCount"`
	RandomSeed  int64  `json:"randomSeed,omitempty"`
}

func (a *API) handleRadio(w http.ResponseWriter, r *http.Request) {
	var req radioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if req.StationType == "" {
		writeError(w, http.StatusBadRequest, "station_type_required")
		return
	}
	if !validStation(radio.StationType(req.StationType)) {
		writeError(w, http.StatusBadRequest, "station_type_invalid")
		return
	}
	if req.TargetCount < 0 {
		writeError(w, http.StatusBadRequest, "target_count_invalid")
		return
	}

	count := req.TargetCount
	if count > a.maxTracks {
		count = a.maxTracks
	}

	resp, err := a.engine.Generate(r.Context(), radio.Request{
		Station:      radio.StationType(req.StationType),
		SeedTrackID:  req.TrackID,
		SeedArtistID: req.ArtistID,
		Decade:       req.Decade,
		Genre:        req.Genre,
		Mood:         req.Mood,
		Count:        count,
		RandomSeed:   req.RandomSeed,
	})
	if err != nil {
		if errors.Is(err, radio.ErrSeedNotFound) {
			writeError(w, http.StatusNotFound, "seed_not_found")
			return
		}
		a.logger.Error().Err(err).Str("station", req.StationType).Msg("radio generation failed")
		writeError(w, http.StatusInternalServerError, "radio_failed")
		return
	}

	if resp.TrackIDs == nil {
		// An empty station is a valid, empty playlist on the wire.
		resp.TrackIDs = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func validStation(st radio.StationType) bool {
	for _, known := range radio.StationTypes() {
		if st == known {
			return true
		}
	}
	return false
}

func (a *API) handleStations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"stations": radio.StationTypes()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
