package favorites

import (
	"context"
	"errors"
	"testing"

	"melodex/internal/models"
	"melodex/internal/store"
)

type stubStore struct {
	user *models.User
	err  error
}

func (s *stubStore) AddFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error) {
	return s.user, s.err
}

func (s *stubStore) RemoveFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error) {
	return s.user, s.err
}

func (s *stubStore) FollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error) {
	return s.user, s.err
}

func (s *stubStore) UnfollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error) {
	return s.user, s.err
}

func TestAnonymousCallerRejected(t *testing.T) {
	svc := New(&stubStore{})
	ctx := context.Background()

	ops := map[string]func() error{
		"add": func() error {
			_, err := svc.AddFavoriteMusicList(ctx, 0, 10)
			return err
		},
		"remove": func() error {
			_, err := svc.RemoveFavoriteMusicList(ctx, 0, 10)
			return err
		},
		"follow": func() error {
			_, err := svc.FollowSinger(ctx, 0, 20)
			return err
		},
		"unfollow": func() error {
			_, err := svc.UnfollowSinger(ctx, 0, 20)
			return err
		},
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, store.ErrUnauthenticated) {
			t.Errorf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
}

func TestStoreErrorsPassThrough(t *testing.T) {
	svc := New(&stubStore{err: store.ErrFavoriteExists})

	_, err := svc.AddFavoriteMusicList(context.Background(), 1, 10)
	if !errors.Is(err, store.ErrFavoriteExists) {
		t.Fatalf("expected ErrFavoriteExists, got %v", err)
	}
}

func TestAuthenticatedCallerDelegates(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice"}
	svc := New(&stubStore{user: user})

	got, err := svc.FollowSinger(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("FollowSinger: %v", err)
	}
	if got != user {
		t.Fatalf("expected updated user, got %+v", got)
	}
}
