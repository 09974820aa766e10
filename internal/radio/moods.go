/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/skald/internal/models"
)

// MoodPreset is a threshold predicate over a track's analyzed features. Zero
// thresholds are unset. By default every set threshold must hold; MatchAny
// switches to or-semantics (used by "chill", where low energy or low arousal
// both qualify).
type MoodPreset struct {
	MinEnergy       float64 `yaml:"min_energy"`
	MaxEnergy       float64 `yaml:"max_energy"`
	MinBPM          float64 `yaml:"min_bpm"`
	MaxBPM          float64 `yaml:"max_bpm"`
	MaxArousal      float64 `yaml:"max_arousal"`
	MinDanceability float64 `yaml:"min_danceability"`
	MinAcousticness float64 `yaml:"min_acousticness"`
	MatchAny        bool    `yaml:"match_any"`
}

// Matches evaluates the preset against a track, using the engine's neutral
// defaults for missing values.
func (p MoodPreset) Matches(t *models.Track, cfg ScoringConfig) bool {
	energy := fval(t.Energy, defaultFeature)
	bpm := fval(t.BPM, defaultBPM)
	arousal := DerivedArousal(t, cfg)
	dance := danceabilityOf(t)
	acoustic := fval(t.Acousticness, fval(t.MoodAcoustic, defaultFeature))

	var results []bool
	if p.MinEnergy > 0 {
		results = append(results, energy >= p.MinEnergy)
	}
	if p.MaxEnergy > 0 {
		results = append(results, energy <= p.MaxEnergy)
	}
	if p.MinBPM > 0 {
		results = append(results, bpm >= p.MinBPM)
	}
	if p.MaxBPM > 0 {
		results = append(results, bpm <= p.MaxBPM)
	}
	if p.MaxArousal > 0 {
		results = append(results, arousal <= p.MaxArousal)
	}
	if p.MinDanceability > 0 {
		results = append(results, dance >= p.MinDanceability)
	}
	if p.MinAcousticness > 0 {
		results = append(results, acoustic >= p.MinAcousticness)
	}

	if len(results) == 0 {
		return false
	}

	if p.MatchAny {
		for _, ok := range results {
			if ok {
				return true
			}
		}
		return false
	}
	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}

// DefaultMoodPresets returns the built-in mood stations. Labels not present
// here fall back to exact analyzer mood-tag matching.
func DefaultMoodPresets() map[string]MoodPreset {
	return map[string]MoodPreset{
		"high-energy": {MinEnergy: 0.7, MinBPM: 120},
		"chill":       {MaxEnergy: 0.4, MaxArousal: 0.4, MatchAny: true},
		"dance":       {MinDanceability: 0.7},
		"acoustic":    {MinAcousticness: 0.6},
	}
}

// LoadMoodPresets reads preset overrides from a YAML file and merges them
// over the built-ins. File entries win on label collisions.
func LoadMoodPresets(path string) (map[string]MoodPreset, error) {
	presets := DefaultMoodPresets()
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mood presets: %w", err)
	}

	var overrides map[string]MoodPreset
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse mood presets: %w", err)
	}

	for label, preset := range overrides {
		presets[label] = preset
	}
	return presets, nil
}

// Workout selection thresholds and the analyzer tags that qualify a track
// for the workout station regardless of signal features.
const (
	workoutMinEnergy = 0.65
	workoutMinBPM    = 115
)

var workoutMoodTags = []string{"workout", "energetic", "upbeat"}
