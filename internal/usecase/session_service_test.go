package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prasetyadi/volley-club/internal/domain/session"
	"github.com/prasetyadi/volley-club/internal/infrastructure/repository/memory"
)

type sessionFixture struct {
	playerRepo  *memory.PlayerRepository
	sessionRepo *memory.SessionRepository
	players     *PlayerService
	sessions    *SessionService
}

func newSessionFixture() sessionFixture {
	playerRepo := memory.NewPlayerRepository()
	sessionRepo := memory.NewSessionRepository(playerRepo)
	return sessionFixture{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
		players:     NewPlayerService(playerRepo),
		sessions:    NewSessionService(playerRepo, sessionRepo),
	}
}

func (f sessionFixture) mustCreatePlayer(t *testing.T, playerID, fullName string) int64 {
	t.Helper()
	id, err := f.players.Create(context.Background(), PlayerInput{PlayerID: playerID, FullName: fullName})
	if err != nil {
		t.Fatalf("create player %s: %v", playerID, err)
	}
	return id
}

// assertCountersMatchFacts checks the recomputation invariant: the counters on
// the player row equal the aggregate over the player's current fact rows.
func assertCountersMatchFacts(t *testing.T, f sessionFixture, playerID int64) {
	t.Helper()
	ctx := context.Background()

	p, err := f.players.Get(ctx, playerID)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	history, err := f.sessions.PlayerHistory(ctx, playerID)
	if err != nil {
		t.Fatalf("player history: %v", err)
	}

	var points, saves, mvps int
	for _, e := range history {
		points += e.Points
		saves += e.Saves
		if e.MVP {
			mvps++
		}
	}
	if p.SessionsAttended != len(history) || p.TotalPoints != points || p.TotalSaves != saves || p.MVPAwards != mvps {
		t.Fatalf("counters diverge from facts: player=%+v facts={n:%d points:%d saves:%d mvps:%d}",
			p, len(history), points, saves, mvps)
	}
}

func TestRecordStatsRecomputationInvariant(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	id := f.mustCreatePlayer(t, "P1", "Ann")

	writes := []RecordStatsInput{
		{PlayerID: id, Date: "2024-03-01", Points: 10, Saves: 2, MVP: true},
		{PlayerID: id, Date: "2024-03-08", Points: 4},
		{PlayerID: id, Date: "2024-03-01", Points: 12, Saves: 0, MVP: false}, // overwrite
		{PlayerID: id, Date: "2024-03-15", Saves: 5, MVP: true},
	}
	// The invariant must hold after every call, not just at the end.
	for i, in := range writes {
		if err := f.sessions.RecordStats(ctx, in); err != nil {
			t.Fatalf("record stats #%d: %v", i, err)
		}
		assertCountersMatchFacts(t, f, id)
	}

	p, err := f.players.Get(ctx, id)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.SessionsAttended != 3 || p.TotalPoints != 16 || p.TotalSaves != 5 || p.MVPAwards != 1 {
		t.Fatalf("unexpected final counters: %+v", p)
	}
}

// Concurrent writers for the same player must not commit counters that omit
// another writer's fact; the store serializes the upsert-plus-recompute so the
// invariant holds once all writers finish.
func TestRecordStatsConcurrentWritersKeepCountersConsistent(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	id := f.mustCreatePlayer(t, "P1", "Ann")

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.sessions.RecordStats(ctx, RecordStatsInput{
				PlayerID: id,
				Date:     fmt.Sprintf("2024-03-%02d", i+1),
				Points:   i + 1,
				Saves:    1,
				MVP:      i == 0,
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("record stats #%d: %v", i, err)
		}
	}
	assertCountersMatchFacts(t, f, id)

	p, err := f.players.Get(ctx, id)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.SessionsAttended != writers || p.TotalPoints != 36 || p.TotalSaves != writers || p.MVPAwards != 1 {
		t.Fatalf("unexpected counters after concurrent writes: %+v", p)
	}
}

func TestRecordStatsUpsertOverwrites(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	id := f.mustCreatePlayer(t, "P1", "Ann")

	if err := f.sessions.RecordStats(ctx, RecordStatsInput{PlayerID: id, Date: "2024-03-01", Points: 10, Saves: 2, MVP: true}); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := f.sessions.RecordStats(ctx, RecordStatsInput{PlayerID: id, Date: "2024-03-01", Points: 3, Saves: 1}); err != nil {
		t.Fatalf("second record: %v", err)
	}

	history, err := f.sessions.PlayerHistory(ctx, id)
	if err != nil {
		t.Fatalf("player history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected a single fact for the pair, got %d", len(history))
	}
	if history[0].Points != 3 || history[0].Saves != 1 || history[0].MVP {
		t.Fatalf("second write should win: %+v", history[0])
	}

	p, err := f.players.Get(ctx, id)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.SessionsAttended != 1 || p.TotalPoints != 3 || p.TotalSaves != 1 || p.MVPAwards != 0 {
		t.Fatalf("counters should reflect the overwrite: %+v", p)
	}
}

func TestRecordStatsCreatesSessionForNewDate(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	id := f.mustCreatePlayer(t, "P1", "Ann")

	if err := f.sessions.RecordStats(ctx, RecordStatsInput{PlayerID: id, Date: "2024-03-01", Points: 1}); err != nil {
		t.Fatalf("record stats: %v", err)
	}

	sessions, err := f.sessions.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Date.Format(session.DateLayout) != "2024-03-01" {
		t.Fatalf("expected auto-created session row for the date, got %+v", sessions)
	}
}

func TestRecordStatsValidation(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	id := f.mustCreatePlayer(t, "P1", "Ann")

	tests := []struct {
		name string
		in   RecordStatsInput
		want error
	}{
		{"missing player", RecordStatsInput{Date: "2024-03-01"}, ErrInvalidInput},
		{"missing date", RecordStatsInput{PlayerID: id}, ErrInvalidInput},
		{"bad date format", RecordStatsInput{PlayerID: id, Date: "01-03-2024"}, ErrInvalidInput},
		{"negative points", RecordStatsInput{PlayerID: id, Date: "2024-03-01", Points: -1}, ErrInvalidInput},
		{"negative saves", RecordStatsInput{PlayerID: id, Date: "2024-03-01", Saves: -1}, ErrInvalidInput},
		{"unknown player", RecordStatsInput{PlayerID: 99, Date: "2024-03-01"}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := f.sessions.RecordStats(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRecordStatsDefaultsAttendance(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	id := f.mustCreatePlayer(t, "P1", "Ann")

	if err := f.sessions.RecordStats(ctx, RecordStatsInput{PlayerID: id, Date: "2024-03-01"}); err != nil {
		t.Fatalf("record stats: %v", err)
	}

	history, err := f.sessions.PlayerHistory(ctx, id)
	if err != nil {
		t.Fatalf("player history: %v", err)
	}
	if len(history) != 1 || history[0].AttendanceStatus != session.DefaultAttendance {
		t.Fatalf("expected default attendance %q, got %+v", session.DefaultAttendance, history)
	}
}

func TestCreateSessionDuplicateDateConflict(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	if _, err := f.sessions.CreateSession(ctx, "2024-03-01"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	_, err := f.sessions.CreateSession(ctx, "2024-03-01")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "2024-03-01") {
		t.Fatalf("conflict error should name the date: %v", err)
	}

	// The failed create must not add a row.
	sessions, err := f.sessions.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session after duplicate create, got %d", len(sessions))
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	for _, date := range []string{"2024-03-01", "2024-03-15", "2024-03-08"} {
		if _, err := f.sessions.CreateSession(ctx, date); err != nil {
			t.Fatalf("create session %s: %v", date, err)
		}
	}

	sessions, err := f.sessions.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	var got []string
	for _, s := range sessions {
		got = append(got, s.Date.Format(session.DateLayout))
	}
	want := []string{"2024-03-15", "2024-03-08", "2024-03-01"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v want %v", got, want)
		}
	}
}

func TestSessionPlayersOrderedByName(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	zoe := f.mustCreatePlayer(t, "P1", "Zoe")
	ann := f.mustCreatePlayer(t, "P2", "Ann")

	if err := f.sessions.RecordStats(ctx, RecordStatsInput{PlayerID: zoe, Date: "2024-03-01", Points: 5}); err != nil {
		t.Fatalf("record stats: %v", err)
	}
	if err := f.sessions.RecordStats(ctx, RecordStatsInput{PlayerID: ann, Date: "2024-03-01", Points: 7, MVP: true}); err != nil {
		t.Fatalf("record stats: %v", err)
	}

	sessions, err := f.sessions.ListSessions(ctx)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("list sessions: %v (%d)", err, len(sessions))
	}

	participants, err := f.sessions.SessionPlayers(ctx, sessions[0].ID)
	if err != nil {
		t.Fatalf("session players: %v", err)
	}
	if len(participants) != 2 || participants[0].FullName != "Ann" || participants[1].FullName != "Zoe" {
		t.Fatalf("expected name order Ann, Zoe; got %+v", participants)
	}
	if participants[0].Points != 7 || !participants[0].MVP {
		t.Fatalf("participant stats missing: %+v", participants[0])
	}

	if _, err := f.sessions.SessionPlayers(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown session, got %v", err)
	}
}

func TestDeletePlayerCascadesFacts(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	id := f.mustCreatePlayer(t, "P1", "Ann")

	if err := f.sessions.RecordStats(ctx, RecordStatsInput{PlayerID: id, Date: "2024-03-01", Points: 10, MVP: true}); err != nil {
		t.Fatalf("record stats: %v", err)
	}
	if err := f.players.Delete(ctx, id); err != nil {
		t.Fatalf("delete player: %v", err)
	}

	if _, err := f.players.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	mvps, err := f.sessionRepo.CountMVPs(ctx)
	if err != nil {
		t.Fatalf("count mvps: %v", err)
	}
	if mvps != 0 {
		t.Fatalf("expected facts to cascade with the player, %d mvp facts remain", mvps)
	}
}
