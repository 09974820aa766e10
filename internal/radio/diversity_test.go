/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"math/rand"
	"testing"
)

func TestDiversityFilterCapsArtists(t *testing.T) {
	tracks := trackHerd(200, 10)
	rng := rand.New(rand.NewSource(42))

	filtered := DiversityFilter(rng, tracks, 2)

	if len(filtered) != 20 {
		t.Fatalf("got %d tracks, want 20 (10 artists x cap 2)", len(filtered))
	}
	perArtist := make(map[string]int)
	for _, tr := range filtered {
		perArtist[tr.ArtistID]++
	}
	for artist, n := range perArtist {
		if n > 2 {
			t.Errorf("artist %s has %d tracks, cap is 2", artist, n)
		}
	}
}

func TestDiversityFilterUnderCap(t *testing.T) {
	tracks := trackHerd(5, 5) // one track per artist
	rng := rand.New(rand.NewSource(1))

	filtered := DiversityFilter(rng, tracks, 3)
	if len(filtered) != 5 {
		t.Errorf("got %d tracks, want all 5 when nobody exceeds the cap", len(filtered))
	}
}

func TestDiversityFilterDeterministic(t *testing.T) {
	tracks := trackHerd(50, 5)

	a := DiversityFilter(rand.New(rand.NewSource(7)), tracks, 2)
	b := DiversityFilter(rand.New(rand.NewSource(7)), tracks, 2)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("order differs at %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestDiversityFilterDoesNotMutateInput(t *testing.T) {
	tracks := trackHerd(30, 3)
	first := tracks[0].ID

	DiversityFilter(rand.New(rand.NewSource(3)), tracks, 1)

	if tracks[0].ID != first {
		t.Error("input slice was reordered")
	}
}

func TestDiversityFilterEdgeCases(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	if got := DiversityFilter(rng, nil, 2); got != nil {
		t.Errorf("nil input should yield nil, got %v", got)
	}
	if got := DiversityFilter(rng, trackHerd(10, 2), 0); got != nil {
		t.Errorf("non-positive cap should yield nil, got %v", got)
	}
}
