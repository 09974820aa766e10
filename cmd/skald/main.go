/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/friendsincode/skald/internal/api"
	"github.com/friendsincode/skald/internal/cache"
	"github.com/friendsincode/skald/internal/config"
	"github.com/friendsincode/skald/internal/db"
	"github.com/friendsincode/skald/internal/library"
	"github.com/friendsincode/skald/internal/logging"
	"github.com/friendsincode/skald/internal/radio"
	"github.com/friendsincode/skald/internal/server"
	"github.com/friendsincode/skald/internal/telemetry"
	"github.com/friendsincode/skald/internal/version"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "skald",
	Short: "Skald - Content-based radio for self-hosted music libraries",
	Long:  "Skald builds radio queues from the audio features and tags of an analyzed music library: similarity radio, mood and genre stations, artist radio, and more.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Skald server",
	Long:  "Start the HTTP API server that answers radio and station requests",
	RunE:  runServe,
}

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List the available station types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range radio.StationTypes() {
			fmt.Println(s)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the Skald version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stationsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	logger.Info().Str("version", version.Version).Msg("Skald starting")

	tracerProvider, err := telemetry.InitTracer(context.Background(), telemetry.TracerConfig{
		ServiceName:    "skald",
		ServiceVersion: version.Version,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TracingEnabled,
		SampleRate:     cfg.TracingSampleRate,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown tracer provider")
		}
	}()

	database, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.Migrate(database); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	var lib radio.Library = library.New(database, logger)
	var cached *cache.Library
	if cfg.CacheEnabled {
		cached = cache.Wrap(lib, cache.Config{
			RedisAddr:     cfg.RedisAddr,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
		}, logger)
		lib = cached
	}

	presets := radio.DefaultMoodPresets()
	if cfg.MoodPresetsPath != "" {
		presets, err = radio.LoadMoodPresets(cfg.MoodPresetsPath)
		if err != nil {
			return fmt.Errorf("load mood presets: %w", err)
		}
	}

	engine := radio.New(lib, radio.DefaultScoringConfig(), presets, logger)
	radioAPI := api.New(engine, cfg.MaxStationTracks, logger)

	srv := server.New(cfg, radioAPI, logger)
	srv.DeferClose(func() error { return db.Close(database) })
	if cached != nil {
		srv.DeferClose(cached.Close)
	}

	httpServer := srv.HTTPServer()

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gracefully...")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(timeoutCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown cleanup failed")
	}

	logger.Info().Msg("Skald stopped")
	return nil
}
