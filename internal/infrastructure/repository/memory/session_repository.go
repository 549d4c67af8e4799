package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/prasetyadi/volley-club/internal/domain/player"
	"github.com/prasetyadi/volley-club/internal/domain/session"
)

// SessionRepository keeps sessions and session facts in memory. It needs the
// memory PlayerRepository so stats writes can rewrite player counters the way
// the Postgres store does inside its transaction.
type SessionRepository struct {
	mu      sync.RWMutex
	players *PlayerRepository

	sessions map[int64]session.Session
	facts    map[int64]session.Fact
	nextID   int64
}

func NewSessionRepository(players *PlayerRepository) *SessionRepository {
	r := &SessionRepository{
		players:  players,
		sessions: make(map[int64]session.Session),
		facts:    make(map[int64]session.Fact),
		nextID:   1,
	}
	players.registerDeleteHook(r.DeleteFactsForPlayer)
	return r
}

func (r *SessionRepository) Create(_ context.Context, date time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessionIDByDate(date); ok {
		return 0, session.ErrDuplicateDate
	}
	return r.insertSession(date), nil
}

func (r *SessionRepository) List(_ context.Context) ([]session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedSessions(0), nil
}

func (r *SessionRepository) ListRecent(_ context.Context, limit int) ([]session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedSessions(limit), nil
}

func (r *SessionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions), nil
}

func (r *SessionRepository) GetByID(_ context.Context, id int64) (session.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	return s, ok, nil
}

func (r *SessionRepository) RecordStats(_ context.Context, in session.StatsInput) error {
	r.mu.Lock()

	sessionID, ok := r.sessionIDByDate(in.Date)
	if !ok {
		sessionID = r.insertSession(in.Date)
	}

	factID, ok := r.factIDByPair(in.PlayerID, sessionID)
	if !ok {
		factID = r.nextID
		r.nextID++
		r.facts[factID] = session.Fact{
			ID:        factID,
			PlayerID:  in.PlayerID,
			SessionID: sessionID,
			CreatedAt: time.Now().UTC(),
		}
	}

	fact := r.facts[factID]
	fact.Points = in.Points
	fact.Saves = in.Saves
	fact.MVP = in.MVP
	fact.AttendanceStatus = in.AttendanceStatus
	r.facts[factID] = fact

	// Counters are rewritten while the fact lock is still held so a concurrent
	// writer cannot apply totals that omit this fact. The player repo never
	// takes this lock while holding its own (delete hooks fire unlocked), so
	// the ordering is safe.
	r.players.setTotals(in.PlayerID, r.totalsFor(in.PlayerID))
	r.mu.Unlock()
	return nil
}

func (r *SessionRepository) RecomputeCounters(_ context.Context, playerID int64) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.players.setTotals(playerID, r.totalsFor(playerID))
	return nil
}

func (r *SessionRepository) ListByPlayer(_ context.Context, playerID int64) ([]session.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]session.HistoryEntry, 0)
	for _, f := range r.facts {
		if f.PlayerID != playerID {
			continue
		}
		out = append(out, session.HistoryEntry{
			Fact: f,
			Date: r.sessions[f.SessionID].Date,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *SessionRepository) ListParticipants(ctx context.Context, sessionID int64) ([]session.Participant, error) {
	r.mu.RLock()
	facts := make([]session.Fact, 0)
	for _, f := range r.facts {
		if f.SessionID == sessionID {
			facts = append(facts, f)
		}
	}
	r.mu.RUnlock()

	out := make([]session.Participant, 0, len(facts))
	for _, f := range facts {
		p, ok, err := r.players.GetByID(ctx, f.PlayerID)
		if err != nil || !ok {
			continue
		}
		out = append(out, session.Participant{
			Fact:             f,
			PlayerExternalID: p.PlayerID,
			FullName:         p.FullName,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *SessionRepository) CountMVPs(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, f := range r.facts {
		if f.MVP {
			count++
		}
	}
	return count, nil
}

// DeleteFactsForPlayer drops a player's facts, mirroring the ON DELETE CASCADE
// the Postgres schema applies when a player row goes away.
func (r *SessionRepository) DeleteFactsForPlayer(playerID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, f := range r.facts {
		if f.PlayerID == playerID {
			delete(r.facts, id)
		}
	}
}

func (r *SessionRepository) sessionIDByDate(date time.Time) (int64, bool) {
	for id, s := range r.sessions {
		if sameDate(s.Date, date) {
			return id, true
		}
	}
	return 0, false
}

func (r *SessionRepository) factIDByPair(playerID, sessionID int64) (int64, bool) {
	for id, f := range r.facts {
		if f.PlayerID == playerID && f.SessionID == sessionID {
			return id, true
		}
	}
	return 0, false
}

func (r *SessionRepository) insertSession(date time.Time) int64 {
	id := r.nextID
	r.nextID++
	r.sessions[id] = session.Session{
		ID:        id,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
	return id
}

func (r *SessionRepository) sortedSessions(limit int) []session.Session {
	out := make([]session.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *SessionRepository) totalsFor(playerID int64) player.Totals {
	var totals player.Totals
	for _, f := range r.facts {
		if f.PlayerID != playerID {
			continue
		}
		totals.SessionsAttended++
		totals.TotalPoints += f.Points
		totals.TotalSaves += f.Saves
		if f.MVP {
			totals.MVPAwards++
		}
	}
	return totals
}

func sameDate(a, b time.Time) bool {
	return a.Format(session.DateLayout) == b.Format(session.DateLayout)
}
