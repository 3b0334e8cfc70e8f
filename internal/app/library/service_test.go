package library

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"melodex/internal/models"
	"melodex/internal/store"
)

type stubStore struct {
	user       *models.User
	userErr    error
	lists      []models.MusicList
	singers    []models.Singer
	folders    []models.Folder
	lastSearch string
}

func (s *stubStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubStore) MusicListsByIDs(ctx context.Context, ids []int64, search string) ([]models.MusicList, error) {
	s.lastSearch = search
	if search == "" {
		return s.lists, nil
	}
	var matched []models.MusicList
	for _, list := range s.lists {
		if strings.Contains(strings.ToLower(list.Name), strings.ToLower(search)) {
			matched = append(matched, list)
		}
	}
	return matched, nil
}

func (s *stubStore) SingersByIDs(ctx context.Context, ids []int64) ([]models.Singer, error) {
	return s.singers, nil
}

func (s *stubStore) FoldersByIDs(ctx context.Context, ids []int64) ([]models.Folder, error) {
	return s.folders, nil
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
}

// fixtureStore holds one user owning an album, a playlist, a liked
// songs list, a followed singer and a folder.
func fixtureStore() *stubStore {
	return &stubStore{
		user: &models.User{
			ID:       1,
			Username: "alice",
			MusicLists: []models.MusicListEdge{
				{MusicListID: 10, DateAdded: day(1)},
				{MusicListID: 11, DateAdded: day(3)},
				{MusicListID: 12, DateAdded: day(5)},
			},
			Singers: []models.SingerEdge{
				{SingerID: 20, DateAdded: day(4)},
			},
			Folders: []int64{30},
		},
		lists: []models.MusicList{
			{ID: 10, Name: "Midnight Sessions", Type: models.MusicListAlbum, Album: &models.AlbumAttributes{}},
			{ID: 11, Name: "Road Trip", Type: models.MusicListPlaylist, Playlist: &models.PlaylistAttributes{UserID: 1, Username: "alice"}},
			{ID: 12, Name: "Liked Songs", Type: models.MusicListLikedSongs, LikedSongs: &models.LikedSongsAttributes{UserID: 1, Username: "alice"}},
		},
		singers: []models.Singer{{ID: 20, Name: "Nora Quinn"}},
		folders: []models.Folder{{ID: 30, Name: "Favorites", UserID: 1}},
	}
}

func TestItemsDefaultSortedByDateAddedDesc(t *testing.T) {
	svc := New(fixtureStore())

	items, err := svc.Items(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	// day(5) liked songs, day(4) singer, day(3) playlist, day(1)
	// album, then the undated folder.
	wantKinds := []models.ItemKind{
		models.ItemMusicLists,
		models.ItemSingers,
		models.ItemMusicLists,
		models.ItemMusicLists,
		models.ItemFolders,
	}
	for i, kind := range wantKinds {
		if items[i].Kind != kind {
			t.Errorf("item %d: expected kind %q, got %q", i, kind, items[i].Kind)
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i].DateAdded.After(items[i-1].DateAdded) {
			t.Errorf("items not sorted by dateAdded desc at %d", i)
		}
	}
}

func TestItemsAlbumFilter(t *testing.T) {
	svc := New(fixtureStore())

	items, err := svc.Items(context.Background(), 1, FilterAlbum, "")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 album item, got %d", len(items))
	}
	if items[0].MusicList == nil || items[0].MusicList.ID != 10 {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestItemsPlaylistFilter(t *testing.T) {
	svc := New(fixtureStore())

	items, err := svc.Items(context.Background(), 1, FilterPlaylist, "")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 || items[0].MusicList.Name != "Road Trip" {
		t.Fatalf("unexpected playlist filter result: %+v", items)
	}
}

func TestItemsLikedSongsExcludedFromVariantFilters(t *testing.T) {
	svc := New(fixtureStore())

	for _, filter := range []string{FilterAlbum, FilterPlaylist} {
		items, err := svc.Items(context.Background(), 1, filter, "")
		if err != nil {
			t.Fatalf("Items(%s): %v", filter, err)
		}
		for _, item := range items {
			if item.MusicList != nil && item.MusicList.Type == models.MusicListLikedSongs {
				t.Errorf("liked songs leaked through %s filter", filter)
			}
		}
	}
}

func TestItemsArtistFilter(t *testing.T) {
	svc := New(fixtureStore())

	items, err := svc.Items(context.Background(), 1, FilterArtist, "")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 1 || items[0].Singer == nil || items[0].Singer.Name != "Nora Quinn" {
		t.Fatalf("unexpected artist filter result: %+v", items)
	}
}

func TestItemsUnknownFilterReturnsAll(t *testing.T) {
	svc := New(fixtureStore())

	items, err := svc.Items(context.Background(), 1, "Podcast", "")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("unknown filter should return the full feed, got %d items", len(items))
	}
}

func TestItemsSearchNarrowsMusicLists(t *testing.T) {
	st := fixtureStore()
	svc := New(st)

	items, err := svc.Items(context.Background(), 1, "", "road")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if st.lastSearch != "road" {
		t.Errorf("search not forwarded to store: %q", st.lastSearch)
	}

	var listCount int
	for _, item := range items {
		if item.Kind == models.ItemMusicLists {
			listCount++
			if item.MusicList.Name != "Road Trip" {
				t.Errorf("unexpected list in search results: %+v", item.MusicList)
			}
		}
	}
	if listCount != 1 {
		t.Errorf("expected 1 matching list, got %d", listCount)
	}
	// Search only narrows the music list collection.
	if len(items) != 3 {
		t.Errorf("expected singer and folder to survive search, got %d items", len(items))
	}
}

func TestItemsDropsUnresolvedLists(t *testing.T) {
	st := fixtureStore()
	// The store resolved only two of the three referenced lists.
	st.lists = st.lists[:2]
	svc := New(st)

	items, err := svc.Items(context.Background(), 1, "", "")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	for _, item := range items {
		if item.MusicList != nil && item.MusicList.ID == 12 {
			t.Errorf("unresolved list survived aggregation")
		}
	}
	if len(items) != 4 {
		t.Errorf("expected 4 items, got %d", len(items))
	}
}

func TestItemsEmptyUser(t *testing.T) {
	svc := New(&stubStore{user: &models.User{ID: 2, Username: "bob"}})

	items, err := svc.Items(context.Background(), 2, "", "")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty feed, got %+v", items)
	}
}

func TestItemsUserNotFound(t *testing.T) {
	svc := New(&stubStore{userErr: store.ErrUserNotFound})

	_, err := svc.Items(context.Background(), 99, "", "")
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMusicListsVariantFilter(t *testing.T) {
	svc := New(fixtureStore())

	items, err := svc.MusicLists(context.Background(), 1, "LikedSongs", "")
	if err != nil {
		t.Fatalf("MusicLists: %v", err)
	}
	if len(items) != 1 || items[0].MusicList.Type != models.MusicListLikedSongs {
		t.Fatalf("unexpected liked songs filter result: %+v", items)
	}
}

func TestMusicListsTypeAndSearchCombine(t *testing.T) {
	st := &stubStore{
		user: &models.User{
			ID: 1,
			MusicLists: []models.MusicListEdge{
				{MusicListID: 40, DateAdded: day(1)},
				{MusicListID: 41, DateAdded: day(2)},
			},
		},
		lists: []models.MusicList{
			{ID: 40, Name: "Road Trip", Type: models.MusicListPlaylist, Playlist: &models.PlaylistAttributes{UserID: 1}},
			{ID: 41, Name: "Road Trip Deluxe", Type: models.MusicListAlbum, Album: &models.AlbumAttributes{}},
		},
	}
	svc := New(st)

	items, err := svc.MusicLists(context.Background(), 1, "Playlist", "road")
	if err != nil {
		t.Fatalf("MusicLists: %v", err)
	}
	if len(items) != 1 || items[0].MusicList.Name != "Road Trip" {
		t.Fatalf("expected only the playlist, got %+v", items)
	}
}

func TestMusicListsUnknownTypeReturnsAll(t *testing.T) {
	svc := New(fixtureStore())

	items, err := svc.MusicLists(context.Background(), 1, "Mixtape", "")
	if err != nil {
		t.Fatalf("MusicLists: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected all 3 lists, got %d", len(items))
	}
}

func TestUserReturnsRecordAndFeed(t *testing.T) {
	svc := New(fixtureStore())

	user, items, err := svc.User(context.Background(), 1)
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("unexpected user: %+v", user)
	}
	if len(items) != 5 {
		t.Errorf("expected full feed, got %d items", len(items))
	}
}
