package models

import "time"

// MusicListType tags the concrete variant of a MusicList.
type MusicListType string

const (
	MusicListAlbum      MusicListType = "Album"
	MusicListPlaylist   MusicListType = "Playlist"
	MusicListLikedSongs MusicListType = "LikedSongs"
)

// ItemKind marks which ownership collection a library Item came from.
type ItemKind string

const (
	ItemMusicLists ItemKind = "musicLists"
	ItemSingers    ItemKind = "singers"
	ItemFolders    ItemKind = "folders"
)

// User carries the account identity plus its three ownership
// collections. The edge collections contain at most one entry per
// referenced entity; the edge tables enforce that.
type User struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	ImageURL   string          `json:"imageURL,omitempty"`
	MusicLists []MusicListEdge `json:"musicLists"`
	Singers    []SingerEdge    `json:"singers"`
	Folders    []int64         `json:"folders"`
}

// MusicListEdge is an ownership edge from a user to a music list. The
// timestamps belong to the edge, not to the referenced list.
type MusicListEdge struct {
	MusicListID int64     `json:"musicList"`
	DateAdded   time.Time `json:"dateAdded"`
	DatePlayed  time.Time `json:"datePlayed"`
}

// SingerEdge is a follow edge from a user to a singer.
type SingerEdge struct {
	SingerID   int64     `json:"singer"`
	DateAdded  time.Time `json:"dateAdded"`
	DatePlayed time.Time `json:"datePlayed"`
}

// MusicList is the polymorphic collection entity. Type is the
// discriminant and is set from whichever variant table resolved;
// exactly one of the variant attribute pointers is non-nil after
// resolution.
type MusicList struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Type        MusicListType `json:"type"`
	ImageURL    string        `json:"imageURL,omitempty"`
	Description string        `json:"description,omitempty"`
	Songs       []int64       `json:"songs"`

	Album      *AlbumAttributes      `json:"albumAttributes,omitempty"`
	Playlist   *PlaylistAttributes   `json:"playlistAttributes,omitempty"`
	LikedSongs *LikedSongsAttributes `json:"likedSongsAttributes,omitempty"`
}

// AlbumAttributes holds the album-specific fields of a MusicList.
type AlbumAttributes struct {
	Singers []Singer `json:"singers"`
}

// PlaylistAttributes holds the playlist-specific fields of a MusicList.
type PlaylistAttributes struct {
	UserID   int64  `json:"user"`
	Username string `json:"username,omitempty"`
}

// LikedSongsAttributes holds the liked-songs-specific fields of a MusicList.
type LikedSongsAttributes struct {
	UserID   int64  `json:"user"`
	Username string `json:"username,omitempty"`
}

// Singer is a catalog artist with its song references.
type Singer struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Songs []int64 `json:"songs,omitempty"`
}

// Song is immutable catalog data once published.
type Song struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ReleasedDate time.Time `json:"releasedDate"`
	AudioURL     string    `json:"audioURL,omitempty"`
	ImageURL     string    `json:"imageURL,omitempty"`
	Singers      []int64   `json:"singers,omitempty"`
}

// Folder is a simple named container owned by exactly one user.
type Folder struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"user"`
}

// Item is the unified element produced by library aggregation. Exactly
// one payload pointer is set, matching Kind. Folder items carry no
// edge timestamps.
type Item struct {
	Kind       ItemKind   `json:"type"`
	DateAdded  time.Time  `json:"dateAdded,omitzero"`
	DatePlayed time.Time  `json:"datePlayed,omitzero"`
	MusicList  *MusicList `json:"musicList,omitempty"`
	Singer     *Singer    `json:"singer,omitempty"`
	Folder     *Folder    `json:"folder,omitempty"`
}
