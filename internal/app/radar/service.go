// Package radar computes recent releases from a user's followed
// singers over a trailing one-calendar-month window.
package radar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"melodex/internal/models"
	"melodex/internal/store"
)

// ErrNoFollowedSingers covers both an unknown user and a user without
// follow edges; callers cannot tell the two apart.
var ErrNoFollowedSingers = errors.New("user not found or follows no singers")

// Store defines the lookups required to scan followed catalogs.
type Store interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	SongsBySinger(ctx context.Context, singerID int64) ([]models.Song, error)
}

// Cache is an optional short-TTL read cache for computed results.
type Cache interface {
	GetSongs(ctx context.Context, key string) ([]models.Song, bool)
	SetSongs(ctx context.Context, key string, songs []models.Song)
}

// Service computes new releases for a user.
type Service interface {
	NewReleases(ctx context.Context, userID int64) ([]models.Song, error)
}

type service struct {
	store Store
	cache Cache
	now   func() time.Time
}

// New constructs a radar Service. cache may be nil to disable caching.
func New(st Store, cache Cache) Service {
	return &service{store: st, cache: cache, now: time.Now}
}

// NewReleases returns every song by the user's followed singers whose
// release date falls within the trailing calendar month, newest first.
// Catalog resolution fans out per singer; results are collected into a
// pre-sized slice so no goroutine shares an accumulator.
func (s *service) NewReleases(ctx context.Context, userID int64) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrNoFollowedSingers
		}
		return nil, err
	}
	if len(user.Singers) == 0 {
		return nil, ErrNoFollowedSingers
	}

	key := fmt.Sprintf("radar:user:%d", userID)
	if s.cache != nil {
		if songs, ok := s.cache.GetSongs(ctx, key); ok {
			return songs, nil
		}
	}

	catalogs := make([][]models.Song, len(user.Singers))
	g, gctx := errgroup.WithContext(ctx)
	for i, edge := range user.Singers {
		g.Go(func() error {
			songs, err := s.store.SongsBySinger(gctx, edge.SingerID)
			if err != nil {
				return fmt.Errorf("resolve catalog for singer %d: %w", edge.SingerID, err)
			}
			catalogs[i] = songs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	windowStart := now.AddDate(0, -1, 0)

	released := make([]models.Song, 0)
	for _, catalog := range catalogs {
		for _, song := range catalog {
			if song.ReleasedDate.Before(windowStart) || song.ReleasedDate.After(now) {
				continue
			}
			released = append(released, song)
		}
	}

	sort.SliceStable(released, func(i, j int) bool {
		return released[i].ReleasedDate.After(released[j].ReleasedDate)
	})

	if s.cache != nil {
		s.cache.SetSongs(ctx, key, released)
	}
	return released, nil
}
