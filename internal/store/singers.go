package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"melodex/internal/models"
)

// SingerByID returns a single singer with its song references.
func (s *Store) SingerByID(ctx context.Context, id int64) (*models.Singer, error) {
	var singer models.Singer
	var songs pq.Int64Array
	err := s.db.QueryRowContext(ctx, `
		SELECT s.id, s.name,
			COALESCE(array_agg(ss.song_id) FILTER (WHERE ss.song_id IS NOT NULL), '{}')
		FROM singers s
		LEFT JOIN song_singers ss ON ss.singer_id = s.id
		WHERE s.id = $1
		GROUP BY s.id
	`, id).Scan(&singer.ID, &singer.Name, &songs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSingerNotFound
		}
		return nil, fmt.Errorf("lookup singer: %w", err)
	}
	singer.Songs = []int64(songs)
	return &singer, nil
}

// SingersByIDs batch-resolves singer references. Unknown ids are
// silently absent from the result.
func (s *Store) SingersByIDs(ctx context.Context, ids []int64) ([]models.Singer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name,
			COALESCE(array_agg(ss.song_id) FILTER (WHERE ss.song_id IS NOT NULL), '{}')
		FROM singers s
		LEFT JOIN song_singers ss ON ss.singer_id = s.id
		WHERE s.id = ANY($1)
		GROUP BY s.id
		ORDER BY s.id ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select singers: %w", err)
	}
	defer rows.Close()

	var singers []models.Singer
	for rows.Next() {
		var singer models.Singer
		var songs pq.Int64Array
		if err := rows.Scan(&singer.ID, &singer.Name, &songs); err != nil {
			return nil, fmt.Errorf("scan singer: %w", err)
		}
		singer.Songs = []int64(songs)
		singers = append(singers, singer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate singers: %w", err)
	}
	return singers, nil
}

// SongsBySinger returns the singer's full song catalog, newest first.
func (s *Store) SongsBySinger(ctx context.Context, singerID int64) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.released_date, COALESCE(s.audio_url, ''), COALESCE(s.image_url, ''),
			COALESCE((SELECT array_agg(x.singer_id) FROM song_singers x WHERE x.song_id = s.id), '{}')
		FROM songs s
		JOIN song_singers ss ON ss.song_id = s.id
		WHERE ss.singer_id = $1
		ORDER BY s.released_date DESC, s.id ASC
	`, singerID)
	if err != nil {
		return nil, fmt.Errorf("select singer songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		var singers pq.Int64Array
		if err := rows.Scan(&song.ID, &song.Name, &song.ReleasedDate, &song.AudioURL, &song.ImageURL, &singers); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		song.Singers = []int64(singers)
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate singer songs: %w", err)
	}
	return songs, nil
}
