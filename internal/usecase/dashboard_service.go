package usecase

import (
	"context"
	"fmt"

	"github.com/prasetyadi/volley-club/internal/domain/player"
	"github.com/prasetyadi/volley-club/internal/domain/session"
)

const dashboardLeaderboardSize = 5

// Dashboard is the on-demand aggregate view. It is consistent only per query
// execution: a concurrent write may or may not be reflected.
type Dashboard struct {
	TotalPlayers   int
	TotalSessions  int
	TotalMVPs      int
	TopMVPs        []player.Player
	RecentPlayers  []player.Player
	RecentSessions []session.Session
}

type DashboardService struct {
	playerRepo  player.Repository
	sessionRepo session.Repository
}

func NewDashboardService(playerRepo player.Repository, sessionRepo session.Repository) *DashboardService {
	return &DashboardService{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *DashboardService) Get(ctx context.Context) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	totalPlayers, err := s.playerRepo.Count(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count players: %w", err)
	}

	totalSessions, err := s.sessionRepo.Count(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count sessions: %w", err)
	}

	totalMVPs, err := s.sessionRepo.CountMVPs(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count mvp awards: %w", err)
	}

	topMVPs, err := s.playerRepo.ListTopMVPs(ctx, dashboardLeaderboardSize)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list top mvps: %w", err)
	}

	recentPlayers, err := s.playerRepo.ListRecent(ctx, dashboardLeaderboardSize)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list recent players: %w", err)
	}

	recentSessions, err := s.sessionRepo.ListRecent(ctx, dashboardLeaderboardSize)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list recent sessions: %w", err)
	}

	return Dashboard{
		TotalPlayers:   totalPlayers,
		TotalSessions:  totalSessions,
		TotalMVPs:      totalMVPs,
		TopMVPs:        topMVPs,
		RecentPlayers:  recentPlayers,
		RecentSessions: recentSessions,
	}, nil
}
