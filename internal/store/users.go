package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"melodex/internal/models"
)

// UserByID loads a user together with its three ownership collections.
// Edge collections come back in insertion order (oldest first).
func (s *Store) UserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	var imageURL sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, image_url
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &imageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	user.ImageURL = imageURL.String

	if user.MusicLists, err = s.musicListEdges(ctx, id); err != nil {
		return nil, err
	}
	if user.Singers, err = s.singerEdges(ctx, id); err != nil {
		return nil, err
	}
	if user.Folders, err = s.folderIDs(ctx, id); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) musicListEdges(ctx context.Context, userID int64) ([]models.MusicListEdge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT music_list_id, date_added, date_played
		FROM user_music_lists
		WHERE user_id = $1
		ORDER BY date_added ASC, music_list_id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select music list edges: %w", err)
	}
	defer rows.Close()

	var edges []models.MusicListEdge
	for rows.Next() {
		var edge models.MusicListEdge
		if err := rows.Scan(&edge.MusicListID, &edge.DateAdded, &edge.DatePlayed); err != nil {
			return nil, fmt.Errorf("scan music list edge: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate music list edges: %w", err)
	}
	return edges, nil
}

func (s *Store) singerEdges(ctx context.Context, userID int64) ([]models.SingerEdge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT singer_id, date_added, date_played
		FROM user_singers
		WHERE user_id = $1
		ORDER BY date_added ASC, singer_id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select singer edges: %w", err)
	}
	defer rows.Close()

	var edges []models.SingerEdge
	for rows.Next() {
		var edge models.SingerEdge
		if err := rows.Scan(&edge.SingerID, &edge.DateAdded, &edge.DatePlayed); err != nil {
			return nil, fmt.Errorf("scan singer edge: %w", err)
		}
		edges = append(edges, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate singer edges: %w", err)
	}
	return edges, nil
}

func (s *Store) folderIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id
		FROM folders
		WHERE user_id = $1
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select folders: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan folder id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return ids, nil
}
