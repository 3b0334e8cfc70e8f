// Package cache provides a short-TTL Redis read cache for computed
// song feeds. Caching is best effort: failures degrade to a recompute.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"melodex/internal/models"
)

// Songs caches serialized song lists by key.
type Songs struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSongs connects to the Redis instance described by redisURL.
func NewSongs(redisURL string, ttl time.Duration) (*Songs, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Songs{client: redis.NewClient(opts), ttl: ttl}, nil
}

// GetSongs returns the cached song list for key, if present and
// decodable.
func (c *Songs) GetSongs(ctx context.Context, key string) ([]models.Song, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil, false
	}

	var songs []models.Song
	if err := json.Unmarshal(payload, &songs); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache payload corrupt, ignoring")
		return nil, false
	}
	return songs, true
}

// SetSongs stores the song list under key for the configured TTL.
func (c *Songs) SetSongs(ctx context.Context, key string, songs []models.Song) {
	payload, err := json.Marshal(songs)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
