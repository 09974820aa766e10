/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import "math"

// Canonical tempo octave. Tempos related by a power of two are perceptually
// the same (160 BPM reads as half-time 80 BPM), so every BPM is folded into
// [77, 154) before comparison.
const (
	tempoOctaveLow  = 77.0
	tempoOctaveHigh = 154.0
)

// normalizeTempo folds a BPM into the canonical octave by repeated doubling
// or halving. Non-positive values are treated as unknown and mapped to the
// reference tempo so corrupted rows never reach math.Log2.
func normalizeTempo(bpm float64) float64 {
	if bpm <= 0 {
		bpm = defaultBPM
	}
	for bpm < tempoOctaveLow {
		bpm *= 2
	}
	for bpm >= tempoOctaveHigh {
		bpm /= 2
	}
	return bpm
}

// TempoDistance returns the octave-aware distance between two tempos: the
// absolute log2 distance of the normalized values, capped at 1. Harmonic
// relationships (half/double time) score near zero; unrelated tempos approach 1.
func TempoDistance(a, b float64) float64 {
	d := math.Abs(math.Log2(normalizeTempo(a)) - math.Log2(normalizeTempo(b)))
	return math.Min(d, 1)
}
