/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

// Neutral defaults substituted for missing analyzer values.
const (
	defaultFeature = 0.5
	defaultBPM     = 120.0
)

// ScoringConfig collects every tunable constant used by feature vector
// construction and similarity scoring, so thresholds can be adjusted and
// unit-tested without touching the scoring code.
type ScoringConfig struct {
	// MoodWeight scales the seven ML mood components above the raw signal
	// components in the feature vector.
	MoodWeight float64

	// ReferenceBPM anchors the tempo-similarity vector component.
	ReferenceBPM float64

	// OOD detection: a track is flagged when its four core mood
	// probabilities are either all confidently high with little spread, or
	// all collapsed around the neutral midpoint.
	OODHighValue   float64 // all four above this ...
	OODHighSpread  float64 // ... with max-min below this
	OODNeutralBand float64 // or all four within this of 0.5

	// OOD remap compresses flagged predictions into [OODFloor, OODFloor+OODRange].
	OODFloor float64
	OODRange float64

	// Tag overlap bonus added on top of cosine similarity.
	TagBonusPerMatch float64
	TagBonusCap      float64
	CosineWeight     float64

	// Minimum final score for a candidate to be accepted. The enhanced
	// threshold applies when both seed and candidate carry ML moods.
	EnhancedThreshold float64
	StandardThreshold float64
}

// DefaultScoringConfig returns the tuning the engine ships with.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		MoodWeight:        1.3,
		ReferenceBPM:      defaultBPM,
		OODHighValue:      0.7,
		OODHighSpread:     0.3,
		OODNeutralBand:    0.15,
		OODFloor:          0.2,
		OODRange:          0.6,
		TagBonusPerMatch:  0.01,
		TagBonusCap:       0.05,
		CosineWeight:      0.95,
		EnhancedThreshold: 0.4,
		StandardThreshold: 0.5,
	}
}
