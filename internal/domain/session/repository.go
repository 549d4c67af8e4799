package session

import (
	"context"
	"time"
)

// StatsInput is the payload of the compound "record session statistics" write.
type StatsInput struct {
	PlayerID         int64
	Date             time.Time
	Points           int
	Saves            int
	MVP              bool
	AttendanceStatus string
}

// Repository describes session and session-fact persistence needs from use
// cases.
type Repository interface {
	// Create inserts a session row for the date. Returns ErrDuplicateDate
	// when the date is already recorded.
	Create(ctx context.Context, date time.Time) (int64, error)
	// List returns all sessions ordered by date descending.
	List(ctx context.Context) ([]Session, error)
	ListRecent(ctx context.Context, limit int) ([]Session, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (Session, bool, error)

	// RecordStats upserts the fact for (player, date) and rewrites the
	// player's derived counters from all of that player's facts. The whole
	// write is atomic: either the fact and the counters both persist, or
	// neither does. A session row for the date is created when absent.
	RecordStats(ctx context.Context, in StatsInput) error
	// RecomputeCounters rewrites one player's derived counters from the
	// player's current fact rows.
	RecomputeCounters(ctx context.Context, playerID int64) error

	// ListByPlayer returns a player's facts joined with session dates,
	// ordered by date descending.
	ListByPlayer(ctx context.Context, playerID int64) ([]HistoryEntry, error)
	// ListParticipants returns the players recorded for a session, ordered
	// by full name ascending.
	ListParticipants(ctx context.Context, sessionID int64) ([]Participant, error)
	// CountMVPs counts facts with the MVP flag set, across all sessions.
	CountMVPs(ctx context.Context) (int, error)
}
