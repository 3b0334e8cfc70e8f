package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"golang.org/x/crypto/bcrypt"
)

// seedDemoData loads a small demo catalog so a fresh instance has
// something to browse. It is idempotent: a second run is a no-op.
func seedDemoData(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM singers`).Scan(&count); err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if count > 0 {
		log.Debug().Msg("catalog already populated, skipping demo seed")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	var demoUserID int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash, image_url)
		VALUES ('demo', $1, 'https://example.com/demo.png')
		RETURNING id
	`, hash).Scan(&demoUserID); err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	singerIDs := make([]int64, 0, 2)
	for _, name := range []string{"The Velvet Keys", "Nora Quinn"} {
		var id int64
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO singers (name) VALUES ($1) RETURNING id
		`, name).Scan(&id); err != nil {
			return fmt.Errorf("seed singer %q: %w", name, err)
		}
		singerIDs = append(singerIDs, id)
	}

	now := time.Now().UTC()
	songs := []struct {
		name     string
		singer   int64
		released time.Time
	}{
		{"Midnight Chords", singerIDs[0], now.AddDate(0, 0, -10)},
		{"Glass Harbor", singerIDs[0], now.AddDate(0, -3, 0)},
		{"Paper Lanterns", singerIDs[1], now.AddDate(0, 0, -3)},
		{"Winter Static", singerIDs[1], now.AddDate(-1, 0, 0)},
	}
	songIDs := make([]int64, 0, len(songs))
	for _, song := range songs {
		var id int64
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO songs (name, released_date) VALUES ($1, $2) RETURNING id
		`, song.name, song.released).Scan(&id); err != nil {
			return fmt.Errorf("seed song %q: %w", song.name, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO song_singers (song_id, singer_id) VALUES ($1, $2)
		`, id, song.singer); err != nil {
			return fmt.Errorf("seed song credit: %w", err)
		}
		songIDs = append(songIDs, id)
	}

	var albumID int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO music_lists (name, type, description)
		VALUES ('Midnight Sessions', 'Album', 'Debut album') RETURNING id
	`).Scan(&albumID); err != nil {
		return fmt.Errorf("seed album list: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO album_attributes (music_list_id) VALUES ($1)
	`, albumID); err != nil {
		return fmt.Errorf("seed album variant: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO album_singers (music_list_id, singer_id) VALUES ($1, $2)
	`, albumID, singerIDs[0]); err != nil {
		return fmt.Errorf("seed album credit: %w", err)
	}

	var playlistID int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO music_lists (name, type, description)
		VALUES ('Summer Drive', 'Playlist', 'Road trip picks') RETURNING id
	`).Scan(&playlistID); err != nil {
		return fmt.Errorf("seed playlist list: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO playlist_attributes (music_list_id, user_id) VALUES ($1, $2)
	`, playlistID, demoUserID); err != nil {
		return fmt.Errorf("seed playlist variant: %w", err)
	}

	var likedID int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO music_lists (name, type)
		VALUES ('Liked Songs', 'LikedSongs') RETURNING id
	`).Scan(&likedID); err != nil {
		return fmt.Errorf("seed liked songs list: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO likedsongs_attributes (music_list_id, user_id) VALUES ($1, $2)
	`, likedID, demoUserID); err != nil {
		return fmt.Errorf("seed liked songs variant: %w", err)
	}

	for listID, picks := range map[int64][]int64{
		albumID:    {songIDs[0], songIDs[1]},
		playlistID: {songIDs[2]},
		likedID:    {songIDs[0], songIDs[2]},
	} {
		for pos, songID := range picks {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO music_list_songs (music_list_id, song_id, position) VALUES ($1, $2, $3)
			`, listID, songID, pos); err != nil {
				return fmt.Errorf("seed list songs: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO folders (name, user_id) VALUES ('Favorites', $1)
	`, demoUserID); err != nil {
		return fmt.Errorf("seed folder: %w", err)
	}

	for _, listID := range []int64{albumID, playlistID, likedID} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_music_lists (user_id, music_list_id) VALUES ($1, $2)
		`, demoUserID, listID); err != nil {
			return fmt.Errorf("seed list edge: %w", err)
		}
	}
	for _, singerID := range singerIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_singers (user_id, singer_id) VALUES ($1, $2)
		`, demoUserID, singerID); err != nil {
			return fmt.Errorf("seed singer edge: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	log.Info().Int64("user_id", demoUserID).Msg("seeded demo catalog")
	return nil
}
