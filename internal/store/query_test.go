package store

import (
	"reflect"
	"testing"
)

func TestQueryBuilderNoStages(t *testing.T) {
	qb := newQueryBuilder("SELECT id FROM songs")
	query, args := qb.Build()

	if query != "SELECT id FROM songs" {
		t.Fatalf("unexpected query: %q", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestQueryBuilderRenumbersPlaceholders(t *testing.T) {
	qb := newQueryBuilder("SELECT id FROM songs")
	qb.Stage("singer", "singer_id = ?", int64(7))
	qb.Stage("window", "released_date BETWEEN ? AND ?", "2024-01-01", "2024-02-01")
	qb.Suffix("ORDER BY released_date DESC")

	query, args := qb.Build()

	want := "SELECT id FROM songs WHERE singer_id = $1 AND released_date BETWEEN $2 AND $3 ORDER BY released_date DESC"
	if query != want {
		t.Fatalf("query mismatch:\n got %q\nwant %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{int64(7), "2024-01-01", "2024-02-01"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestQueryBuilderStageNames(t *testing.T) {
	qb := newQueryBuilder("SELECT 1")
	qb.Stage("ids", "id = ANY(?)", nil)
	qb.Stage("search", "name ILIKE ?", "%x%")

	got := qb.StageNames()
	if !reflect.DeepEqual(got, []string{"ids", "search"}) {
		t.Fatalf("unexpected stage names: %v", got)
	}
}

func TestQueryBuilderSuffixOnly(t *testing.T) {
	qb := newQueryBuilder("SELECT id FROM folders")
	qb.Suffix("ORDER BY id ASC")

	query, _ := qb.Build()
	if query != "SELECT id FROM folders ORDER BY id ASC" {
		t.Fatalf("unexpected query: %q", query)
	}
}
