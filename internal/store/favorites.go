package store

import (
	"context"
	"fmt"
	"time"

	"melodex/internal/models"
)

// AddFavoriteMusicList appends a (user, music list) ownership edge
// stamped with the current time and returns the updated user. The edge
// table's primary key makes the existence check and the insert one
// atomic statement: a duplicate insert fails with ErrFavoriteExists
// even under concurrent identical calls.
func (s *Store) AddFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_music_lists (user_id, music_list_id, date_added, date_played)
		VALUES ($1, $2, $3, $3)
	`, userID, musicListID, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrFavoriteExists
		}
		if isForeignKeyViolation(err) {
			return nil, ErrMusicListNotFound
		}
		return nil, fmt.Errorf("insert favorite music list: %w", err)
	}

	return s.UserByID(ctx, userID)
}

// RemoveFavoriteMusicList deletes the (user, music list) edge and
// returns the updated user. Removing an edge that does not exist fails
// with ErrFavoriteNotFound.
func (s *Store) RemoveFavoriteMusicList(ctx context.Context, userID, musicListID int64) (*models.User, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_music_lists
		WHERE user_id = $1 AND music_list_id = $2
	`, userID, musicListID)
	if err != nil {
		return nil, fmt.Errorf("delete favorite music list: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrFavoriteNotFound
	}

	return s.UserByID(ctx, userID)
}

// FollowSinger appends a (user, singer) follow edge stamped with the
// current time and returns the updated user. Duplicate follows fail
// with ErrAlreadyFollowing; the edge table's primary key enforces
// this atomically.
func (s *Store) FollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_singers (user_id, singer_id, date_added, date_played)
		VALUES ($1, $2, $3, $3)
	`, userID, singerID, now)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyFollowing
		}
		if isForeignKeyViolation(err) {
			return nil, ErrSingerNotFound
		}
		return nil, fmt.Errorf("insert singer follow: %w", err)
	}

	return s.UserByID(ctx, userID)
}

// UnfollowSinger deletes the (user, singer) edge and returns the
// updated user. Removing a follow that does not exist fails with
// ErrNotFollowing.
func (s *Store) UnfollowSinger(ctx context.Context, userID, singerID int64) (*models.User, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_singers
		WHERE user_id = $1 AND singer_id = $2
	`, userID, singerID)
	if err != nil {
		return nil, fmt.Errorf("delete singer follow: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFollowing
	}

	return s.UserByID(ctx, userID)
}
