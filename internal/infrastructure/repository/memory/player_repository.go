// Package memory holds in-memory repository implementations used by tests and
// local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/prasetyadi/volley-club/internal/domain/player"
)

type PlayerRepository struct {
	mu       sync.RWMutex
	items    map[int64]player.Player
	nextID   int64
	onDelete []func(playerID int64)
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		items:  make(map[int64]player.Player),
		nextID: 1,
	}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.snapshot()
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) ListRecent(_ context.Context, limit int) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.snapshot()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return clampLimit(out, limit), nil
}

func (r *PlayerRepository) ListTopMVPs(_ context.Context, limit int) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		if p.MVPAwards > 0 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MVPAwards != out[j].MVPAwards {
			return out[i].MVPAwards > out[j].MVPAwards
		}
		return out[i].FullName < out[j].FullName
	})
	return clampLimit(out, limit), nil
}

func (r *PlayerRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	return p, ok, nil
}

func (r *PlayerRepository) GetByPlayerID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.PlayerID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.PlayerID == p.PlayerID {
			return 0, player.ErrDuplicatePlayerID
		}
	}

	now := time.Now().UTC()
	p.ID = r.nextID
	p.CreatedAt = now
	p.UpdatedAt = now
	r.items[p.ID] = p
	r.nextID++

	return p.ID, nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[p.ID]
	if !ok {
		return false, nil
	}

	for id, other := range r.items {
		if id != p.ID && other.PlayerID == p.PlayerID {
			return false, player.ErrDuplicatePlayerID
		}
	}

	existing.PlayerID = p.PlayerID
	existing.FullName = p.FullName
	existing.Phone = p.Phone
	existing.Instagram = p.Instagram
	existing.Age = p.Age
	existing.SkillLevel = p.SkillLevel
	existing.UpdatedAt = time.Now().UTC()
	r.items[p.ID] = existing

	return true, nil
}

func (r *PlayerRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	if _, ok := r.items[id]; !ok {
		r.mu.Unlock()
		return false, nil
	}
	delete(r.items, id)
	hooks := append(([]func(int64))(nil), r.onDelete...)
	r.mu.Unlock()

	// Mirrors the ON DELETE CASCADE the Postgres schema applies.
	for _, hook := range hooks {
		hook(id)
	}
	return true, nil
}

func (r *PlayerRepository) registerDeleteHook(fn func(playerID int64)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.onDelete = append(r.onDelete, fn)
}

// setTotals overwrites the derived counters of one player. It is the memory
// counterpart of the aggregate rewrite the Postgres store does in SQL.
func (r *PlayerRepository) setTotals(id int64, totals player.Totals) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return false
	}
	p.SessionsAttended = totals.SessionsAttended
	p.MVPAwards = totals.MVPAwards
	p.TotalPoints = totals.TotalPoints
	p.TotalSaves = totals.TotalSaves
	p.UpdatedAt = time.Now().UTC()
	r.items[id] = p
	return true
}

func (r *PlayerRepository) snapshot() []player.Player {
	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out
}

func clampLimit(players []player.Player, limit int) []player.Player {
	if limit > 0 && len(players) > limit {
		return players[:limit]
	}
	return players
}
