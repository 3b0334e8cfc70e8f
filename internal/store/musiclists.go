package store

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"melodex/internal/models"
)

// MusicListsByIDs resolves the given music lists into their concrete
// variants. Lists whose name does not contain search (case
// insensitive) are filtered out; an empty search matches everything.
//
// Every list is expected to have exactly one variant row. A list with
// none is dropped; a list with several keeps the first variant in
// (Album, Playlist, LikedSongs) order. Both cases indicate corrupted
// catalog data and are logged as warnings rather than failing the
// request. The Type discriminant is always set from the resolved
// variant, not from the stored tag.
func (s *Store) MusicListsByIDs(ctx context.Context, ids []int64, search string) ([]models.MusicList, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	qb := newQueryBuilder(`
		SELECT ml.id, ml.name, ml.type, COALESCE(ml.image_url, ''), COALESCE(ml.description, ''),
			COALESCE(array_agg(mls.song_id ORDER BY mls.position) FILTER (WHERE mls.song_id IS NOT NULL), '{}')
		FROM music_lists ml
		LEFT JOIN music_list_songs mls ON mls.music_list_id = ml.id`)
	qb.Stage("ids", "ml.id = ANY(?)", pq.Array(ids))
	if search != "" {
		qb.Stage("search", "ml.name ILIKE ?", "%"+search+"%")
	}
	qb.Suffix("GROUP BY ml.id ORDER BY ml.id ASC")

	query, args := qb.Build()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select music lists: %w", err)
	}
	defer rows.Close()

	var lists []models.MusicList
	for rows.Next() {
		var list models.MusicList
		var songs pq.Int64Array
		if err := rows.Scan(&list.ID, &list.Name, &list.Type, &list.ImageURL, &list.Description, &songs); err != nil {
			return nil, fmt.Errorf("scan music list: %w", err)
		}
		list.Songs = []int64(songs)
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate music lists: %w", err)
	}
	if len(lists) == 0 {
		return nil, nil
	}

	listIDs := make([]int64, len(lists))
	for i, list := range lists {
		listIDs[i] = list.ID
	}

	albums, err := s.albumVariants(ctx, listIDs)
	if err != nil {
		return nil, err
	}
	playlists, err := s.playlistVariants(ctx, listIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.likedSongsVariants(ctx, listIDs)
	if err != nil {
		return nil, err
	}

	resolved := make([]models.MusicList, 0, len(lists))
	for _, list := range lists {
		declared := list.Type

		variants := 0
		var resolvedType models.MusicListType
		if attrs, ok := albums[list.ID]; ok {
			variants++
			resolvedType = models.MusicListAlbum
			list.Album = &attrs
		}
		if attrs, ok := playlists[list.ID]; ok {
			variants++
			if resolvedType == "" {
				resolvedType = models.MusicListPlaylist
				list.Playlist = &attrs
			}
		}
		if attrs, ok := liked[list.ID]; ok {
			variants++
			if resolvedType == "" {
				resolvedType = models.MusicListLikedSongs
				list.LikedSongs = &attrs
			}
		}

		switch {
		case variants == 0:
			log.Warn().
				Int64("music_list_id", list.ID).
				Str("declared_type", string(declared)).
				Msg("music list has no variant row, dropping from results")
			continue
		case variants > 1:
			log.Warn().
				Int64("music_list_id", list.ID).
				Int("variant_rows", variants).
				Str("resolved_type", string(resolvedType)).
				Msg("music list resolves to multiple variants, keeping first")
		}
		if declared != resolvedType {
			log.Warn().
				Int64("music_list_id", list.ID).
				Str("declared_type", string(declared)).
				Str("resolved_type", string(resolvedType)).
				Msg("music list type tag does not match resolved variant")
		}

		list.Type = resolvedType
		resolved = append(resolved, list)
	}

	return resolved, nil
}

func (s *Store) albumVariants(ctx context.Context, ids []int64) (map[int64]models.AlbumAttributes, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT music_list_id
		FROM album_attributes
		WHERE music_list_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select album attributes: %w", err)
	}
	defer rows.Close()

	variants := make(map[int64]models.AlbumAttributes)
	for rows.Next() {
		var listID int64
		if err := rows.Scan(&listID); err != nil {
			return nil, fmt.Errorf("scan album attributes: %w", err)
		}
		variants[listID] = models.AlbumAttributes{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album attributes: %w", err)
	}
	if len(variants) == 0 {
		return variants, nil
	}

	singerRows, err := s.db.QueryContext(ctx, `
		SELECT als.music_list_id, s.id, s.name
		FROM album_singers als
		JOIN singers s ON s.id = als.singer_id
		WHERE als.music_list_id = ANY($1)
		ORDER BY als.music_list_id ASC, s.id ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select album singers: %w", err)
	}
	defer singerRows.Close()

	for singerRows.Next() {
		var listID int64
		var singer models.Singer
		if err := singerRows.Scan(&listID, &singer.ID, &singer.Name); err != nil {
			return nil, fmt.Errorf("scan album singer: %w", err)
		}
		attrs := variants[listID]
		attrs.Singers = append(attrs.Singers, singer)
		variants[listID] = attrs
	}
	if err := singerRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album singers: %w", err)
	}

	return variants, nil
}

func (s *Store) playlistVariants(ctx context.Context, ids []int64) (map[int64]models.PlaylistAttributes, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.music_list_id, p.user_id, u.username
		FROM playlist_attributes p
		JOIN users u ON u.id = p.user_id
		WHERE p.music_list_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select playlist attributes: %w", err)
	}
	defer rows.Close()

	variants := make(map[int64]models.PlaylistAttributes)
	for rows.Next() {
		var listID int64
		var attrs models.PlaylistAttributes
		if err := rows.Scan(&listID, &attrs.UserID, &attrs.Username); err != nil {
			return nil, fmt.Errorf("scan playlist attributes: %w", err)
		}
		variants[listID] = attrs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist attributes: %w", err)
	}
	return variants, nil
}

func (s *Store) likedSongsVariants(ctx context.Context, ids []int64) (map[int64]models.LikedSongsAttributes, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.music_list_id, l.user_id, u.username
		FROM likedsongs_attributes l
		JOIN users u ON u.id = l.user_id
		WHERE l.music_list_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("select liked songs attributes: %w", err)
	}
	defer rows.Close()

	variants := make(map[int64]models.LikedSongsAttributes)
	for rows.Next() {
		var listID int64
		var attrs models.LikedSongsAttributes
		if err := rows.Scan(&listID, &attrs.UserID, &attrs.Username); err != nil {
			return nil, fmt.Errorf("scan liked songs attributes: %w", err)
		}
		variants[listID] = attrs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked songs attributes: %w", err)
	}
	return variants, nil
}
