/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/friendsincode/skald/internal/models"
)

// Migrate applies the read-model schema using GORM auto-migrate. The scanner
// and analyzer populate these tables; the radio service only reads them.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&models.Artist{},
		&models.Album{},
		&models.Track{},
		&models.Genre{},
		&models.TrackGenreLink{},
		&models.SimilarArtist{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
