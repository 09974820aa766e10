/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package radio

import (
	"math/rand"

	"github.com/friendsincode/skald/internal/models"
)

// DiversityFilter caps the number of tracks any single artist contributes:
// shuffle, then greedily accept while counting per artist, then reshuffle
// the survivors. Whichever tracks land early in the first shuffle win their
// artist's slots; this bias is part of the documented behaviour and is not
// a fair interleave.
func DiversityFilter(rng *rand.Rand, tracks []models.Track, maxPerArtist int) []models.Track {
	if maxPerArtist <= 0 || len(tracks) == 0 {
		return nil
	}

	shuffled := make([]models.Track, len(tracks))
	copy(shuffled, tracks)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	perArtist := make(map[string]int)
	accepted := make([]models.Track, 0, len(shuffled))
	for _, t := range shuffled {
		if perArtist[t.ArtistID] >= maxPerArtist {
			continue
		}
		perArtist[t.ArtistID]++
		accepted = append(accepted, t)
	}

	rng.Shuffle(len(accepted), func(i, j int) {
		accepted[i], accepted[j] = accepted[j], accepted[i]
	})
	return accepted
}
