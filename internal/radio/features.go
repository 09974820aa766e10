/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"math"

	"github.com/friendsincode/skald/internal/models"
)

// VectorDim is the fixed dimensionality of a track feature vector.
const VectorDim = 13

// FeatureVector is the fixed-order numeric representation of a track used
// for similarity scoring. Components 0-6 are the seven ML mood probabilities
// (OOD-corrected, weighted), the rest are raw and derived signal features on
// a 0-1 scale.
type FeatureVector [VectorDim]float64

// moodSet holds the seven mood probabilities after defaulting and OOD
// correction.
type moodSet struct {
	Happy      float64
	Sad        float64
	Relaxed    float64
	Aggressive float64
	Party      float64
	Acoustic   float64
	Electronic float64
}

func fval(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// isOutOfDistribution flags mood predictions that are likely uninformative:
// either the model is overconfident about everything at once, or it collapsed
// to the neutral midpoint across the board.
func isOutOfDistribution(happy, sad, relaxed, aggressive float64, cfg ScoringConfig) bool {
	minMood := math.Min(math.Min(happy, sad), math.Min(relaxed, aggressive))
	maxMood := math.Max(math.Max(happy, sad), math.Max(relaxed, aggressive))

	if minMood > cfg.OODHighValue && maxMood-minMood < cfg.OODHighSpread {
		return true
	}

	band := cfg.OODNeutralBand
	allNeutral := math.Abs(happy-0.5) <= band &&
		math.Abs(sad-0.5) <= band &&
		math.Abs(relaxed-0.5) <= band &&
		math.Abs(aggressive-0.5) <= band
	return allNeutral
}

// remapOOD compresses an overconfident prediction into a narrower band.
func remapOOD(v float64, cfg ScoringConfig) float64 {
	return cfg.OODFloor + clamp(v-cfg.OODFloor, 0, cfg.OODRange)
}

// correctedMoods returns the seven mood probabilities with neutral defaults
// applied, remapped when the track's core moods are flagged OOD.
func correctedMoods(t *models.Track, cfg ScoringConfig) moodSet {
	ms := moodSet{
		Happy:      fval(t.MoodHappy, defaultFeature),
		Sad:        fval(t.MoodSad, defaultFeature),
		Relaxed:    fval(t.MoodRelaxed, defaultFeature),
		Aggressive: fval(t.MoodAggressive, defaultFeature),
		Party:      fval(t.MoodParty, defaultFeature),
		Acoustic:   fval(t.MoodAcoustic, defaultFeature),
		Electronic: fval(t.MoodElectronic, defaultFeature),
	}

	if isOutOfDistribution(ms.Happy, ms.Sad, ms.Relaxed, ms.Aggressive, cfg) {
		ms.Happy = remapOOD(ms.Happy, cfg)
		ms.Sad = remapOOD(ms.Sad, cfg)
		ms.Relaxed = remapOOD(ms.Relaxed, cfg)
		ms.Aggressive = remapOOD(ms.Aggressive, cfg)
		ms.Party = remapOOD(ms.Party, cfg)
		ms.Acoustic = remapOOD(ms.Acoustic, cfg)
		ms.Electronic = remapOOD(ms.Electronic, cfg)
	}

	return ms
}

// danceabilityOf prefers the ML-refined danceability over the signal-derived
// one; the basic extractor is unreliable.
func danceabilityOf(t *models.Track) float64 {
	if t.DanceabilityML != nil {
		return *t.DanceabilityML
	}
	return fval(t.Danceability, defaultFeature)
}

// DerivedValence computes perceived positivity from mood, key mode, and
// audio signal. Result is clamped to [0, 1].
func DerivedValence(t *models.Track, cfg ScoringConfig) float64 {
	ms := correctedMoods(t, cfg)

	moodValence := 0.35*ms.Happy + 0.25*ms.Party + 0.20*(1-ms.Sad)

	modeValence := 0.0
	if t.KeyScale != nil {
		switch *t.KeyScale {
		case "major":
			modeValence = 0.3
		case "minor":
			modeValence = -0.2
		}
	}

	audioValence := 0.1*fval(t.Energy, defaultFeature) + 0.1*danceabilityOf(t)

	return clamp01(moodValence + modeValence + audioValence)
}

// DerivedArousal computes perceived intensity from mood, energy, and tempo.
// Result is clamped to [0, 1].
func DerivedArousal(t *models.Track, cfg ScoringConfig) float64 {
	ms := correctedMoods(t, cfg)

	moodArousal := 0.3*ms.Aggressive + 0.2*ms.Party
	energyArousal := 0.25 * fval(t.Energy, defaultFeature)
	tempoArousal := 0.15 * clamp01((fval(t.BPM, defaultBPM)-60)/120)
	calmReduction := 0.05*(1-ms.Relaxed) + 0.05*(1-ms.Acoustic)

	return clamp01(moodArousal + energyArousal + tempoArousal + calmReduction)
}

// Vector builds the feature vector for a track. It is used identically for
// the seed and every candidate so cosine similarity is well-defined. Tracks
// without ML mood data fall back to the neutral default on the mood
// components rather than failing.
func Vector(t *models.Track, cfg ScoringConfig) FeatureVector {
	ms := correctedMoods(t, cfg)
	w := cfg.MoodWeight

	return FeatureVector{
		ms.Happy * w,
		ms.Sad * w,
		ms.Relaxed * w,
		ms.Aggressive * w,
		ms.Party * w,
		ms.Acoustic * w,
		ms.Electronic * w,
		fval(t.Energy, defaultFeature),
		DerivedArousal(t, cfg),
		danceabilityOf(t),
		fval(t.Instrumentalness, defaultFeature),
		1 - TempoDistance(fval(t.BPM, defaultBPM), cfg.ReferenceBPM),
		DerivedValence(t, cfg),
	}
}
