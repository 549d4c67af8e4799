package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_WhereOrderLimit(t *testing.T) {
	query, args, err := Select("id", "full_name").
		From("players").
		Where(Eq("player_id", "P1"), Gt("mvp_awards", 0)).
		OrderBy("mvp_awards DESC", "full_name ASC").
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT id, full_name FROM players WHERE player_id = $1 AND mvp_awards > $2 ORDER BY mvp_awards DESC, full_name ASC LIMIT 5"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"P1", 0}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_Join(t *testing.T) {
	query, _, err := Select("ps.points", "s.session_date").
		From("player_sessions ps").
		Join("JOIN sessions s ON s.id = ps.session_id").
		Where(Eq("ps.player_id", int64(7))).
		OrderBy("s.session_date DESC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select with join: %v", err)
	}

	want := "SELECT ps.points, s.session_date FROM player_sessions ps JOIN sessions s ON s.id = ps.session_id WHERE ps.player_id = $1 ORDER BY s.session_date DESC"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
}

func TestInsert_SuffixPlaceholderRewrite(t *testing.T) {
	query, args, err := InsertInto("sessions").
		Columns("session_date").
		Values("2024-03-01").
		Suffix("ON CONFLICT (session_date) DO NOTHING RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO sessions (session_date) VALUES ($1) ON CONFLICT (session_date) DO NOTHING RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 1 || args[0] != "2024-03-01" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsert_RowLengthMismatch(t *testing.T) {
	_, _, err := InsertInto("players").
		Columns("player_id", "full_name").
		Values("P1").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for mismatched row length")
	}
}

func TestUpdate_SetExprAndWhere(t *testing.T) {
	query, args, err := Update("players").
		Set("full_name", "Ann").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(3))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE players SET full_name = $1, updated_at = NOW() WHERE id = $2"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"Ann", int64(3)}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	type row struct {
		PlayerID  int64  `db:"player_id"`
		SessionID int64  `db:"session_id"`
		Skipped   string `db:"-"`
		Untagged  string
	}

	query, args, err := InsertModel("player_sessions", row{PlayerID: 1, SessionID: 2, Skipped: "x"}, "")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	want := "INSERT INTO player_sessions (player_id, session_id) VALUES ($1, $2)"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{int64(1), int64(2)}) {
		t.Fatalf("unexpected args: %v", args)
	}
}
