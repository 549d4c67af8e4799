package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prasetyadi/volley-club/internal/domain/player"
	"github.com/prasetyadi/volley-club/internal/domain/session"
)

// RecordStatsInput carries one player's performance for one session date.
type RecordStatsInput struct {
	PlayerID         int64
	Date             string
	Points           int
	Saves            int
	MVP              bool
	AttendanceStatus string
}

type SessionService struct {
	playerRepo  player.Repository
	sessionRepo session.Repository
}

func NewSessionService(playerRepo player.Repository, sessionRepo session.Repository) *SessionService {
	return &SessionService{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
	}
}

// RecordStats performs the compound write: upsert the fact for
// (player, date) and rewrite the player's counters from all fact rows, in one
// storage transaction.
func (s *SessionService) RecordStats(ctx context.Context, in RecordStatsInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.RecordStats")
	defer span.End()

	if in.PlayerID <= 0 {
		return fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}
	date, err := parseSessionDate(in.Date)
	if err != nil {
		return err
	}
	if in.Points < 0 {
		return fmt.Errorf("%w: points cannot be negative", ErrInvalidInput)
	}
	if in.Saves < 0 {
		return fmt.Errorf("%w: saves cannot be negative", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, in.PlayerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%d", ErrNotFound, in.PlayerID)
	}

	attendance := strings.TrimSpace(in.AttendanceStatus)
	if attendance == "" {
		attendance = session.DefaultAttendance
	}

	if err := s.sessionRepo.RecordStats(ctx, session.StatsInput{
		PlayerID:         in.PlayerID,
		Date:             date,
		Points:           in.Points,
		Saves:            in.Saves,
		MVP:              in.MVP,
		AttendanceStatus: attendance,
	}); err != nil {
		return fmt.Errorf("record session stats: %w", err)
	}
	return nil
}

// CreateSession records that a session took place on the date.
func (s *SessionService) CreateSession(ctx context.Context, rawDate string) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.CreateSession")
	defer span.End()

	date, err := parseSessionDate(rawDate)
	if err != nil {
		return 0, err
	}

	id, err := s.sessionRepo.Create(ctx, date)
	if errors.Is(err, session.ErrDuplicateDate) {
		return 0, fmt.Errorf("%w: session for date %s already exists", ErrConflict, date.Format(session.DateLayout))
	}
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (s *SessionService) ListSessions(ctx context.Context) ([]session.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.ListSessions")
	defer span.End()

	items, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return items, nil
}

// PlayerHistory returns all facts for one player, newest session first.
func (s *SessionService) PlayerHistory(ctx context.Context, playerID int64) ([]session.HistoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.PlayerHistory")
	defer span.End()

	if playerID <= 0 {
		return nil, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	items, err := s.sessionRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list player history: %w", err)
	}
	return items, nil
}

// SessionPlayers returns the recorded participants of one session, ordered by
// player name.
func (s *SessionService) SessionPlayers(ctx context.Context, sessionID int64) ([]session.Participant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.SessionPlayers")
	defer span.End()

	if sessionID <= 0 {
		return nil, fmt.Errorf("%w: session id must be positive", ErrInvalidInput)
	}

	_, exists, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: session=%d", ErrNotFound, sessionID)
	}

	items, err := s.sessionRepo.ListParticipants(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session participants: %w", err)
	}
	return items, nil
}

func parseSessionDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: session_date is required", ErrInvalidInput)
	}
	date, err := time.Parse(session.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: session_date must be formatted as %s", ErrInvalidInput, session.DateLayout)
	}
	return date, nil
}
