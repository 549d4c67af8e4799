package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/prasetyadi/volley-club/internal/domain/player"
	"github.com/prasetyadi/volley-club/internal/domain/session"
	"github.com/prasetyadi/volley-club/internal/platform/logging"
)

// ReconcileService rewrites every player's derived counters from the fact
// rows. The per-write recomputation already keeps counters correct; the sweep
// erases drift introduced outside the API (manual SQL, restores).
type ReconcileService struct {
	playerRepo  player.Repository
	sessionRepo session.Repository
	concurrency int
	logger      *logging.Logger
}

func NewReconcileService(
	playerRepo player.Repository,
	sessionRepo session.Repository,
	concurrency int,
	logger *logging.Logger,
) *ReconcileService {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ReconcileService{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
		concurrency: concurrency,
		logger:      logger,
	}
}

// RecountAll recomputes counters for every player, a bounded number at a time.
func (s *ReconcileService) RecountAll(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.RecountAll")
	defer span.End()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list players for recount: %w", err)
	}

	p := pool.New().WithMaxGoroutines(s.concurrency).WithErrors().WithContext(ctx)
	for _, item := range players {
		id := item.ID
		p.Go(func(ctx context.Context) error {
			if err := s.sessionRepo.RecomputeCounters(ctx, id); err != nil {
				return fmt.Errorf("recompute counters player=%d: %w", id, err)
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "counter recount finished", "players", len(players))
	return nil
}

// Run sweeps on the interval until ctx is cancelled. Intended to be called
// with `go`.
func (s *ReconcileService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("counter reconciliation sweep started", "interval", interval)
	for {
		select {
		case <-ticker.C:
			if err := s.RecountAll(ctx); err != nil {
				s.logger.ErrorContext(ctx, "counter recount failed", "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("counter reconciliation sweep stopped")
			return
		}
	}
}
