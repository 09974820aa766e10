/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPBind    string
	HTTPPort    int
	DBBackend   DatabaseBackend
	DBDSN       string

	// Radio engine
	MoodPresetsPath  string // optional YAML file overriding mood station thresholds
	MaxStationTracks int    // hard cap on targetCount per request

	// Optional Redis cache for owned-artist set and similarity edges
	CacheEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("SKALD_ENV", "development"),
		HTTPBind:    getEnv("SKALD_HTTP_BIND", "0.0.0.0"),
		HTTPPort:    getEnvInt("SKALD_HTTP_PORT", 8080),
		DBBackend:   DatabaseBackend(getEnv("SKALD_DB_BACKEND", string(DatabaseSQLite))),
		DBDSN:       getEnv("SKALD_DB_DSN", ""),

		MoodPresetsPath:  getEnv("SKALD_MOOD_PRESETS", ""),
		MaxStationTracks: getEnvInt("SKALD_MAX_STATION_TRACKS", 100),

		CacheEnabled:  getEnvBool("SKALD_CACHE_ENABLED", false),
		RedisAddr:     getEnv("SKALD_REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("SKALD_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("SKALD_REDIS_DB", 0),

		TracingEnabled:    getEnvBool("SKALD_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("SKALD_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("SKALD_TRACING_SAMPLE_RATE", 1.0),
	}

	if cfg.DBBackend != DatabasePostgres && cfg.DBBackend != DatabaseMySQL && cfg.DBBackend != DatabaseSQLite {
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("SKALD_DB_DSN must be provided")
	}

	if cfg.MaxStationTracks <= 0 {
		return nil, fmt.Errorf("SKALD_MAX_STATION_TRACKS must be positive")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(strings.TrimSpace(val))
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		if val == "false" || val == "0" || val == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
