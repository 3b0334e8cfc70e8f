// Package favorites owns the per-user ownership edges: favorite music
// lists and followed singers.
package favorites

import (
	"context"

	"melodex/internal/models"
	"melodex/internal/store"
)

// Store defines persistence operations required for favorites
// workflows. All mutations are atomic with respect to their own
// existence check.
type Store interface {
	AddFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error)
	RemoveFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error)
	FollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error)
	UnfollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error)
}

// Service describes the favorite/follow toggling operations used by
// HTTP handlers. userID is the verified caller identity; zero means
// the caller is anonymous and every operation fails with
// store.ErrUnauthenticated.
type Service interface {
	AddFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error)
	RemoveFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error)
	FollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error)
	UnfollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error)
}

type service struct {
	store Store
}

// New constructs a favorites Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) AddFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, store.ErrUnauthenticated
	}
	return s.store.AddFavoriteMusicList(ctx, userID, musicListID)
}

func (s *service) RemoveFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, store.ErrUnauthenticated
	}
	return s.store.RemoveFavoriteMusicList(ctx, userID, musicListID)
}

func (s *service) FollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, store.ErrUnauthenticated
	}
	return s.store.FollowSinger(ctx, userID, singerID)
}

func (s *service) UnfollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, store.ErrUnauthenticated
	}
	return s.store.UnfollowSinger(ctx, userID, singerID)
}
