/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package cache provides an optional Redis-backed read cache in front of the
// library. The engine's reference behaviour recomputes everything per call;
// this layer only memoizes the two lookups that hit every similarity request
// (the owned-artist set and similarity edges) and is off by default.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/friendsincode/skald/internal/models"
	"github.com/friendsincode/skald/internal/radio"
)

// TTLs for the cached lookups. Both invalidate naturally; a slightly stale
// owned-artist set only delays a new artist's eligibility for radio.
const (
	OwnedArtistsTTL  = 5 * time.Minute
	SimilarEdgesTTL  = 30 * time.Minute
	keyOwnedArtists  = "skald:cache:owned_artists"
	keySimilarPrefix = "skald:cache:similar:" // + artist_id
)

// Config contains cache configuration.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Library wraps a radio.Library, caching hot lookups in Redis. When Redis is
// unreachable the wrapper trips a circuit breaker and passes everything
// through to the underlying store.
type Library struct {
	radio.Library

	client *redis.Client
	logger zerolog.Logger

	mu       sync.RWMutex
	disabled bool
}

// Wrap creates the caching decorator. A failed initial ping disables caching
// rather than failing startup.
func Wrap(lib radio.Library, cfg Config, logger zerolog.Logger) *Library {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	wrapped := &Library{
		Library: lib,
		client:  client,
		logger:  logger.With().Str("component", "cache").Logger(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		wrapped.logger.Warn().Err(err).Msg("Redis unavailable, running without caching")
		wrapped.disabled = true
	} else {
		wrapped.logger.Info().Str("addr", cfg.RedisAddr).Msg("Redis cache initialized")
	}

	return wrapped
}

// Close releases the Redis connection.
func (l *Library) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}

func (l *Library) isDisabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.disabled
}

func (l *Library) disable(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.disabled {
		l.logger.Warn().Err(err).Msg("disabling cache after Redis error")
		l.disabled = true
	}
}

// OwnedArtistIDs serves the owned-artist set from Redis when warm.
func (l *Library) OwnedArtistIDs(ctx context.Context) (map[string]struct{}, error) {
	if l.isDisabled() {
		return l.Library.OwnedArtistIDs(ctx)
	}

	if data, err := l.client.Get(ctx, keyOwnedArtists).Bytes(); err == nil {
		var ids []string
		if json.Unmarshal(data, &ids) == nil {
			owned := make(map[string]struct{}, len(ids))
			for _, id := range ids {
				owned[id] = struct{}{}
			}
			return owned, nil
		}
	} else if err != redis.Nil {
		l.disable(err)
		return l.Library.OwnedArtistIDs(ctx)
	}

	owned, err := l.Library.OwnedArtistIDs(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(owned))
	for id := range owned {
		ids = append(ids, id)
	}
	if data, err := json.Marshal(ids); err == nil {
		if err := l.client.Set(ctx, keyOwnedArtists, data, OwnedArtistsTTL).Err(); err != nil {
			l.disable(err)
		}
	}

	return owned, nil
}

// SimilarArtists serves similarity edges from Redis when warm.
func (l *Library) SimilarArtists(ctx context.Context, artistID string) ([]models.SimilarArtist, error) {
	if l.isDisabled() {
		return l.Library.SimilarArtists(ctx, artistID)
	}

	key := keySimilarPrefix + artistID
	if data, err := l.client.Get(ctx, key).Bytes(); err == nil {
		var edges []models.SimilarArtist
		if json.Unmarshal(data, &edges) == nil {
			return edges, nil
		}
	} else if err != redis.Nil {
		l.disable(err)
		return l.Library.SimilarArtists(ctx, artistID)
	}

	edges, err := l.Library.SimilarArtists(ctx, artistID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(edges); err == nil {
		if err := l.client.Set(ctx, key, data, SimilarEdgesTTL).Err(); err != nil {
			l.disable(err)
		}
	}

	return edges, nil
}
