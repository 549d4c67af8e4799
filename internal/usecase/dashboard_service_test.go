package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/prasetyadi/volley-club/internal/infrastructure/repository/memory"
)

func TestDashboardEmpty(t *testing.T) {
	playerRepo := memory.NewPlayerRepository()
	sessionRepo := memory.NewSessionRepository(playerRepo)
	svc := NewDashboardService(playerRepo, sessionRepo)

	d, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	if d.TotalPlayers != 0 || d.TotalSessions != 0 || d.TotalMVPs != 0 {
		t.Fatalf("expected zero totals, got %+v", d)
	}
	if len(d.TopMVPs) != 0 || len(d.RecentPlayers) != 0 || len(d.RecentSessions) != 0 {
		t.Fatalf("expected empty lists, got %+v", d)
	}
}

func TestDashboardAggregates(t *testing.T) {
	playerRepo := memory.NewPlayerRepository()
	sessionRepo := memory.NewSessionRepository(playerRepo)
	playerSvc := NewPlayerService(playerRepo)
	sessionSvc := NewSessionService(playerRepo, sessionRepo)
	svc := NewDashboardService(playerRepo, sessionRepo)
	ctx := context.Background()

	ids := make(map[string]int64)
	for i := 1; i <= 7; i++ {
		playerID := fmt.Sprintf("P%d", i)
		id, err := playerSvc.Create(ctx, PlayerInput{PlayerID: playerID, FullName: fmt.Sprintf("Player %02d", i)})
		if err != nil {
			t.Fatalf("create player %s: %v", playerID, err)
		}
		ids[playerID] = id
	}

	// P1 two MVP sessions, P2 one, others none.
	for _, rec := range []RecordStatsInput{
		{PlayerID: ids["P1"], Date: "2024-03-01", Points: 10, MVP: true},
		{PlayerID: ids["P1"], Date: "2024-03-08", Points: 8, MVP: true},
		{PlayerID: ids["P2"], Date: "2024-03-01", Points: 6, MVP: true},
		{PlayerID: ids["P3"], Date: "2024-03-01", Points: 2},
	} {
		if err := sessionSvc.RecordStats(ctx, rec); err != nil {
			t.Fatalf("record stats: %v", err)
		}
	}

	d, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}

	if d.TotalPlayers != 7 {
		t.Fatalf("expected 7 players, got %d", d.TotalPlayers)
	}
	if d.TotalSessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", d.TotalSessions)
	}
	if d.TotalMVPs != 3 {
		t.Fatalf("expected 3 mvp facts, got %d", d.TotalMVPs)
	}

	// total_mvps must agree with the sum of per-player counters.
	players, err := playerRepo.List(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	sum := 0
	for _, p := range players {
		sum += p.MVPAwards
	}
	if sum != d.TotalMVPs {
		t.Fatalf("mvp counter sum %d disagrees with total_mvps %d", sum, d.TotalMVPs)
	}

	if len(d.TopMVPs) != 2 {
		t.Fatalf("expected only awarded players in top mvps, got %d", len(d.TopMVPs))
	}
	if d.TopMVPs[0].PlayerID != "P1" || d.TopMVPs[0].MVPAwards != 2 {
		t.Fatalf("expected P1 atop top mvps, got %+v", d.TopMVPs[0])
	}

	if len(d.RecentPlayers) != 5 {
		t.Fatalf("expected 5 recent players, got %d", len(d.RecentPlayers))
	}
	if len(d.RecentSessions) != 2 {
		t.Fatalf("expected 2 recent sessions, got %d", len(d.RecentSessions))
	}
}
