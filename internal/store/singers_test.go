package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func TestSingerByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM singers s")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "songs"}))

	_, err = New(db).SingerByID(context.Background(), 99)
	if !errors.Is(err, ErrSingerNotFound) {
		t.Fatalf("expected ErrSingerNotFound, got %v", err)
	}
}

func TestSingersByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	ids := []int64{20, 21}
	mock.ExpectQuery(regexp.QuoteMeta("FROM singers s")).
		WithArgs(pq.Array(ids)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "songs"}).
			AddRow(20, "The Velvet Keys", "{101,102}").
			AddRow(21, "Nora Quinn", "{}"))

	singers, err := New(db).SingersByIDs(context.Background(), ids)
	if err != nil {
		t.Fatalf("SingersByIDs: %v", err)
	}
	if len(singers) != 2 {
		t.Fatalf("expected 2 singers, got %d", len(singers))
	}
	if singers[0].Name != "The Velvet Keys" || len(singers[0].Songs) != 2 {
		t.Errorf("unexpected singer: %+v", singers[0])
	}
	if len(singers[1].Songs) != 0 {
		t.Errorf("expected empty catalog, got %v", singers[1].Songs)
	}
}

func TestSongsBySinger(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	newer := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM songs s")).
		WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "released_date", "audio_url", "image_url", "singers"}).
			AddRow(101, "Midnight Chords", newer, "", "", "{20}").
			AddRow(102, "Glass Harbor", older, "", "", "{20,21}"))

	songs, err := New(db).SongsBySinger(context.Background(), 20)
	if err != nil {
		t.Fatalf("SongsBySinger: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	if !songs[0].ReleasedDate.Equal(newer) {
		t.Errorf("expected newest first, got %+v", songs[0])
	}
	if len(songs[1].Singers) != 2 {
		t.Errorf("unexpected song credits: %v", songs[1].Singers)
	}
}
