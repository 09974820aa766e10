/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"context"
	"errors"
	"testing"

	"github.com/friendsincode/skald/internal/models"
)

func TestGenerateCountClamping(t *testing.T) {
	tracks := trackHerd(300, 30)
	lib := newFakeLibrary(tracks...)
	e := testEngine(lib)

	tests := []struct {
		name     string
		count    int
		expected int
	}{
		{"zero defaults", 0, DefaultCount},
		{"negative defaults", -5, DefaultCount},
		{"explicit count", 25, 25},
		{"over maximum clamps", 500, MaxCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := e.Generate(context.Background(), Request{
				Station:    StationAllRandom,
				Count:      tt.count,
				RandomSeed: 1,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(resp.TrackIDs) != tt.expected {
				t.Errorf("got %d tracks, want %d", len(resp.TrackIDs), tt.expected)
			}
		})
	}
}

func TestGenerateUnknownStation(t *testing.T) {
	e := testEngine(newFakeLibrary())

	_, err := e.Generate(context.Background(), Request{Station: "polka"})
	if err == nil {
		t.Fatal("expected an error for an unknown station type")
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	tracks := trackHerd(100, 10)
	lib := newFakeLibrary(tracks...)
	e := testEngine(lib)

	req := Request{Station: StationAllRandom, Count: 20, RandomSeed: 1234}

	first, err := e.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.TrackIDs) != len(second.TrackIDs) {
		t.Fatalf("lengths differ: %d vs %d", len(first.TrackIDs), len(second.TrackIDs))
	}
	for i := range first.TrackIDs {
		if first.TrackIDs[i] != second.TrackIDs[i] {
			t.Fatalf("order differs at %d with a fixed seed", i)
		}
	}
}

func TestGenerateSimilaritySeedNotFound(t *testing.T) {
	e := testEngine(newFakeLibrary())

	_, err := e.Generate(context.Background(), Request{
		Station:     StationSimilarity,
		SeedTrackID: "missing",
	})
	if !errors.Is(err, ErrSeedNotFound) {
		t.Fatalf("got %v, want ErrSeedNotFound", err)
	}
}

func TestGenerateSimilarityOrderAndFeatures(t *testing.T) {
	seed := enhancedTrack("seed", "a1", 128, 0.8)
	seed.KeyScale = strPtr("major")
	near := enhancedTrack("near", "a2", 128, 0.8)
	mid := enhancedTrack("mid", "a3", 138, 0.65)

	lib := newFakeLibrary(seed, mid, near)
	e := testEngine(lib)

	resp, err := e.Generate(context.Background(), Request{
		Station:     StationSimilarity,
		SeedTrackID: "seed",
		Count:       10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.TrackIDs) == 0 || resp.TrackIDs[0] != "near" {
		t.Errorf("similarity order lost: %v", resp.TrackIDs)
	}

	sf := resp.SourceFeatures
	if sf == nil {
		t.Fatal("similarity response must carry source features")
	}
	if sf.TrackID != "seed" || sf.BPM != 128 || sf.KeyScale != "major" {
		t.Errorf("source features wrong: %+v", sf)
	}
	if sf.Moods == nil {
		t.Error("enhanced seed should expose its mood snapshot")
	}
}

func TestGenerateSimilarityStandardSeedNoMoods(t *testing.T) {
	seed := analyzedTrack("seed", "a1", 100, 0.4)
	lib := newFakeLibrary(seed)
	e := testEngine(lib)

	resp, err := e.Generate(context.Background(), Request{
		Station:     StationSimilarity,
		SeedTrackID: "seed",
		Count:       5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SourceFeatures == nil {
		t.Fatal("source features missing")
	}
	if resp.SourceFeatures.Moods != nil {
		t.Error("standard-mode seed must not expose mood probabilities")
	}
}

func TestGenerateOtherStationsOmitFeatures(t *testing.T) {
	tracks := trackHerd(20, 4)
	lib := newFakeLibrary(tracks...)
	e := testEngine(lib)

	resp, err := e.Generate(context.Background(), Request{
		Station:    StationAllRandom,
		Count:      5,
		RandomSeed: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SourceFeatures != nil {
		t.Error("only similarity responses carry source features")
	}
}

func TestGenerateShufflesNonSimilarityStations(t *testing.T) {
	// Favorites returns play-count order from the library; the engine's
	// final shuffle must reorder it for at least some seeds.
	var tracks []models.Track
	for i := 0; i < 30; i++ {
		tr := enhancedTrack(idf("fav", i), "a1", 120, 0.5)
		tr.PlayCount = 100 - i
		tracks = append(tracks, tr)
	}
	lib := newFakeLibrary(tracks...)
	e := testEngine(lib)

	reordered := false
	for seed := int64(1); seed <= 5 && !reordered; seed++ {
		resp, err := e.Generate(context.Background(), Request{
			Station:    StationFavorites,
			Count:      30,
			RandomSeed: seed,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, id := range resp.TrackIDs {
			if id != idf("fav", i) {
				reordered = true
				break
			}
		}
	}
	if !reordered {
		t.Error("favorites output never deviated from play-count order; shuffle missing")
	}
}

func TestGenerateEmptyLibrary(t *testing.T) {
	e := testEngine(newFakeLibrary())

	for _, station := range []StationType{StationAllRandom, StationFavorites, StationDiscovery} {
		resp, err := e.Generate(context.Background(), Request{Station: station, RandomSeed: 1})
		if err != nil {
			t.Fatalf("station %s: unexpected error: %v", station, err)
		}
		if len(resp.TrackIDs) != 0 {
			t.Errorf("station %s: got %v from an empty library", station, resp.TrackIDs)
		}
	}
}

func TestStationTypesComplete(t *testing.T) {
	types := StationTypes()
	if len(types) != 9 {
		t.Fatalf("got %d station types, want 9", len(types))
	}
	e := testEngine(newFakeLibrary())
	for _, st := range types {
		if st == StationSimilarity {
			continue
		}
		if _, ok := e.strategies[st]; !ok {
			t.Errorf("station %s has no registered strategy", st)
		}
	}
}
