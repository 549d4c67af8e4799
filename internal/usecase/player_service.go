package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/prasetyadi/volley-club/internal/domain/player"
)

// PlayerWithAverages is a player plus the two per-session ratios derived from
// the running counters.
type PlayerWithAverages struct {
	player.Player
	AvgPointsPerSession float64
	AvgSavesPerSession  float64
}

type PlayerInput struct {
	PlayerID   string
	FullName   string
	Phone      string
	Instagram  string
	Age        int
	SkillLevel string
}

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// List returns the roster ordered by full name, profile fields only.
func (s *PlayerService) List(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

// ListWithStats returns the roster with counters and per-session averages.
// Averages are 0 for players with no attended sessions.
func (s *PlayerService) ListWithStats(ctx context.Context) ([]PlayerWithAverages, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListWithStats")
	defer span.End()

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]PlayerWithAverages, 0, len(items))
	for _, p := range items {
		out = append(out, PlayerWithAverages{
			Player:              p,
			AvgPointsPerSession: perSessionAverage(p.TotalPoints, p.SessionsAttended),
			AvgSavesPerSession:  perSessionAverage(p.TotalSaves, p.SessionsAttended),
		})
	}
	return out, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}
	return item, nil
}

// Create registers a new player and returns the assigned surrogate key.
func (s *PlayerService) Create(ctx context.Context, in PlayerInput) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	p := playerFromInput(in)
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.playerRepo.Create(ctx, p)
	if errors.Is(err, player.ErrDuplicatePlayerID) {
		return 0, fmt.Errorf("%w: player_id %q is already in use", ErrConflict, p.PlayerID)
	}
	if err != nil {
		return 0, fmt.Errorf("create player: %w", err)
	}
	return id, nil
}

// Update replaces the mutable profile fields of the player at id.
func (s *PlayerService) Update(ctx context.Context, id int64, in PlayerInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	if id <= 0 {
		return fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	p := playerFromInput(in)
	p.ID = id
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	matched, err := s.playerRepo.Update(ctx, p)
	if errors.Is(err, player.ErrDuplicatePlayerID) {
		return fmt.Errorf("%w: player_id %q is already in use", ErrConflict, p.PlayerID)
	}
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if !matched {
		return fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}
	return nil
}

// Delete removes the player; the store cascades the player's session facts.
func (s *PlayerService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	if id <= 0 {
		return fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
	}

	matched, err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !matched {
		return fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}
	return nil
}

// Exists reports whether the external player identifier is taken. Advisory
// only: Create's uniqueness check stays authoritative.
func (s *PlayerService) Exists(ctx context.Context, playerID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Exists")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return false, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByPlayerID(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("get player by player_id: %w", err)
	}
	return exists, nil
}

func playerFromInput(in PlayerInput) player.Player {
	return player.Player{
		PlayerID:   strings.TrimSpace(in.PlayerID),
		FullName:   strings.TrimSpace(in.FullName),
		Phone:      strings.TrimSpace(in.Phone),
		Instagram:  strings.TrimSpace(in.Instagram),
		Age:        in.Age,
		SkillLevel: player.SkillLevel(strings.TrimSpace(in.SkillLevel)),
	}
}

func perSessionAverage(total, sessions int) float64 {
	if sessions == 0 {
		return 0
	}
	return math.Round(float64(total)/float64(sessions)*100) / 100
}
