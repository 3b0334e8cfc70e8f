// Package library aggregates a user's heterogeneous ownership
// collections into one browsable feed of tagged items.
package library

import (
	"context"
	"sort"

	"melodex/internal/models"
)

// Filter values accepted by Items. Anything else returns the full
// merged feed.
const (
	FilterAlbum    = "Album"
	FilterPlaylist = "Playlist"
	FilterArtist   = "Artist"
)

// Store defines the resolution primitives required for aggregation.
type Store interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	MusicListsByIDs(ctx context.Context, ids []int64, search string) ([]models.MusicList, error)
	SingersByIDs(ctx context.Context, ids []int64) ([]models.Singer, error)
	FoldersByIDs(ctx context.Context, ids []int64) ([]models.Folder, error)
}

// Service describes the library read workflows used by HTTP handlers.
type Service interface {
	Items(ctx context.Context, userID int64, itemType, search string) ([]models.Item, error)
	MusicLists(ctx context.Context, userID int64, listType, search string) ([]models.Item, error)
	User(ctx context.Context, userID int64) (*models.User, []models.Item, error)
}

type service struct {
	store Store
}

// New constructs a library Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

// Items returns the user's unified library feed. Each non-empty
// ownership collection is resolved, tagged with its source kind and
// merged in (musicLists, singers, folders) order. Unresolved music
// lists are dropped during variant resolution, before the type filter
// is applied. itemType narrows the feed: Album and Playlist match the
// resolved variant of musicLists items only (LikedSongs deliberately
// matches neither), Artist selects the followed singers. Any other
// value returns the whole feed sorted by dateAdded descending.
func (s *service) Items(ctx context.Context, userID int64, itemType, search string) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.musicListItems(ctx, user, search)
	if err != nil {
		return nil, err
	}

	if len(user.Singers) > 0 {
		singerItems, err := s.singerItems(ctx, user)
		if err != nil {
			return nil, err
		}
		items = append(items, singerItems...)
	}

	if len(user.Folders) > 0 {
		folderItems, err := s.folderItems(ctx, user)
		if err != nil {
			return nil, err
		}
		items = append(items, folderItems...)
	}

	switch itemType {
	case FilterAlbum, FilterPlaylist:
		filtered := make([]models.Item, 0, len(items))
		for _, item := range items {
			if item.Kind == models.ItemMusicLists && string(item.MusicList.Type) == itemType {
				filtered = append(filtered, item)
			}
		}
		return filtered, nil
	case FilterArtist:
		filtered := make([]models.Item, 0, len(items))
		for _, item := range items {
			if item.Kind == models.ItemSingers {
				filtered = append(filtered, item)
			}
		}
		return filtered, nil
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].DateAdded.After(items[j].DateAdded)
		})
		return items, nil
	}
}

// MusicLists is the narrower feed restricted to the musicLists
// collection. listType selects one resolved variant; a value outside
// the three variant tags returns the unfiltered collection.
func (s *service) MusicLists(ctx context.Context, userID int64, listType, search string) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.musicListItems(ctx, user, search)
	if err != nil {
		return nil, err
	}

	switch models.MusicListType(listType) {
	case models.MusicListAlbum, models.MusicListPlaylist, models.MusicListLikedSongs:
		filtered := make([]models.Item, 0, len(items))
		for _, item := range items {
			if string(item.MusicList.Type) == listType {
				filtered = append(filtered, item)
			}
		}
		return filtered, nil
	default:
		return items, nil
	}
}

// User returns the user record together with its default feed.
func (s *service) User(ctx context.Context, userID int64) (*models.User, []models.Item, error) {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.Items(ctx, userID, "", "")
	if err != nil {
		return nil, nil, err
	}
	return user, items, nil
}

func (s *service) musicListItems(ctx context.Context, user *models.User, search string) ([]models.Item, error) {
	if len(user.MusicLists) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(user.MusicLists))
	for i, edge := range user.MusicLists {
		ids[i] = edge.MusicListID
	}

	lists, err := s.store.MusicListsByIDs(ctx, ids, search)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.MusicList, len(lists))
	for _, list := range lists {
		byID[list.ID] = list
	}

	// Edge collections never contain duplicates by invariant; the seen
	// set is defensive.
	seen := make(map[int64]bool, len(user.MusicLists))
	items := make([]models.Item, 0, len(user.MusicLists))
	for _, edge := range user.MusicLists {
		list, ok := byID[edge.MusicListID]
		if !ok || seen[edge.MusicListID] {
			continue
		}
		seen[edge.MusicListID] = true
		items = append(items, models.Item{
			Kind:       models.ItemMusicLists,
			DateAdded:  edge.DateAdded,
			DatePlayed: edge.DatePlayed,
			MusicList:  &list,
		})
	}
	return items, nil
}

func (s *service) singerItems(ctx context.Context, user *models.User) ([]models.Item, error) {
	ids := make([]int64, len(user.Singers))
	for i, edge := range user.Singers {
		ids[i] = edge.SingerID
	}

	singers, err := s.store.SingersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Singer, len(singers))
	for _, singer := range singers {
		byID[singer.ID] = singer
	}

	seen := make(map[int64]bool, len(user.Singers))
	items := make([]models.Item, 0, len(user.Singers))
	for _, edge := range user.Singers {
		singer, ok := byID[edge.SingerID]
		if !ok || seen[edge.SingerID] {
			continue
		}
		seen[edge.SingerID] = true
		items = append(items, models.Item{
			Kind:       models.ItemSingers,
			DateAdded:  edge.DateAdded,
			DatePlayed: edge.DatePlayed,
			Singer:     &singer,
		})
	}
	return items, nil
}

func (s *service) folderItems(ctx context.Context, user *models.User) ([]models.Item, error) {
	folders, err := s.store.FoldersByIDs(ctx, user.Folders)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(folders))
	items := make([]models.Item, 0, len(folders))
	for _, folder := range folders {
		if seen[folder.ID] {
			continue
		}
		seen[folder.ID] = true
		items = append(items, models.Item{
			Kind:   models.ItemFolders,
			Folder: &folder,
		})
	}
	return items, nil
}
