package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prasetyadi/volley-club/internal/domain/session"
	qb "github.com/prasetyadi/volley-club/internal/platform/querybuilder"
)

type SessionRepository struct {
	db *sqlx.DB
}

var sessionSelectColumns = []string{
	"id",
	"session_date",
	"created_at",
}

// recomputeCountersQuery rewrites one player's derived counters from that
// player's fact rows. The subquery always yields exactly one row, so counters
// zero out when the last fact is gone.
const recomputeCountersQuery = `
UPDATE players SET
    sessions_attended = agg.sessions_attended,
    total_points = agg.total_points,
    total_saves = agg.total_saves,
    mvp_awards = agg.mvp_awards,
    updated_at = NOW()
FROM (
    SELECT
        COUNT(*) AS sessions_attended,
        COALESCE(SUM(points), 0) AS total_points,
        COALESCE(SUM(saves), 0) AS total_saves,
        COUNT(*) FILTER (WHERE is_mvp) AS mvp_awards
    FROM player_sessions
    WHERE player_id = $1
) agg
WHERE players.id = $1`

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, date time.Time) (int64, error) {
	query, args, err := qb.InsertModel("sessions", sessionInsertModel{Date: date}, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert session query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err, "sessions_session_date_key") {
			return 0, session.ErrDuplicateDate
		}
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]session.Session, error) {
	return r.list(ctx, 0)
}

func (r *SessionRepository) ListRecent(ctx context.Context, limit int) ([]session.Session, error) {
	return r.list(ctx, limit)
}

func (r *SessionRepository) list(ctx context.Context, limit int) ([]session.Session, error) {
	query, args, err := qb.Select(sessionSelectColumns...).From("sessions").
		OrderBy("session_date DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list sessions query: %w", err)
	}

	var rows []sessionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := make([]session.Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, sessionFromRow(row))
	}
	return out, nil
}

func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM sessions"); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id int64) (session.Session, bool, error) {
	query, args, err := qb.Select(sessionSelectColumns...).From("sessions").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return session.Session{}, false, fmt.Errorf("build get session query: %w", err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	return sessionFromRow(row), true, nil
}

// RecordStats upserts the player's fact for the date and rewrites the player's
// counters from the facts table, all in one transaction. The player row is
// locked first: under READ COMMITTED, a recompute that only blocked on the
// counter UPDATE would keep an aggregate snapshot taken before a concurrent
// writer committed, so the lock has to be held before the aggregate runs.
func (r *SessionRepository) RecordStats(ctx context.Context, in session.StatsInput) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx record stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"SELECT id FROM players WHERE id = $1 FOR UPDATE",
		in.PlayerID,
	); err != nil {
		return fmt.Errorf("lock player row: %w", err)
	}

	sessionID, err := ensureSessionTx(ctx, tx, in.Date)
	if err != nil {
		return err
	}

	insertModel := factInsertModel{
		PlayerID:         in.PlayerID,
		SessionID:        sessionID,
		Points:           in.Points,
		Saves:            in.Saves,
		MVP:              in.MVP,
		AttendanceStatus: in.AttendanceStatus,
	}
	query, args, err := qb.InsertModel("player_sessions", insertModel, `ON CONFLICT (player_id, session_id)
DO UPDATE SET
    points = EXCLUDED.points,
    saves = EXCLUDED.saves,
    is_mvp = EXCLUDED.is_mvp,
    attendance_status = EXCLUDED.attendance_status`)
	if err != nil {
		return fmt.Errorf("build upsert session fact query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert session fact: %w", err)
	}

	if _, err := tx.ExecContext(ctx, recomputeCountersQuery, in.PlayerID); err != nil {
		return fmt.Errorf("recompute player counters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record stats: %w", err)
	}
	return nil
}

// ensureSessionTx inserts the session row for the date when absent and returns
// its id either way.
func ensureSessionTx(ctx context.Context, tx *sqlx.Tx, date time.Time) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO sessions (session_date) VALUES ($1) ON CONFLICT (session_date) DO NOTHING",
		date,
	); err != nil {
		return 0, fmt.Errorf("ensure session: %w", err)
	}

	var id int64
	if err := tx.GetContext(ctx, &id, "SELECT id FROM sessions WHERE session_date = $1", date); err != nil {
		return 0, fmt.Errorf("get session id for date: %w", err)
	}
	return id, nil
}

func (r *SessionRepository) RecomputeCounters(ctx context.Context, playerID int64) error {
	if _, err := r.db.ExecContext(ctx, recomputeCountersQuery, playerID); err != nil {
		return fmt.Errorf("recompute player counters: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListByPlayer(ctx context.Context, playerID int64) ([]session.HistoryEntry, error) {
	columns := []string{
		"ps.id",
		"ps.player_id",
		"ps.session_id",
		"ps.points",
		"ps.saves",
		"ps.is_mvp",
		"ps.attendance_status",
		"ps.created_at",
		"s.session_date",
	}
	query, args, err := qb.Select(columns...).From("player_sessions ps").
		Join("JOIN sessions s ON s.id = ps.session_id").
		Where(qb.Eq("ps.player_id", playerID)).
		OrderBy("s.session_date DESC", "ps.id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player history query: %w", err)
	}

	var rows []historyRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player history: %w", err)
	}

	out := make([]session.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, session.HistoryEntry{
			Fact: factFromRow(row.factTableModel),
			Date: row.Date,
		})
	}
	return out, nil
}

func (r *SessionRepository) ListParticipants(ctx context.Context, sessionID int64) ([]session.Participant, error) {
	columns := []string{
		"ps.id",
		"ps.player_id",
		"ps.session_id",
		"ps.points",
		"ps.saves",
		"ps.is_mvp",
		"ps.attendance_status",
		"ps.created_at",
		"p.player_id AS player_external_id",
		"p.full_name",
	}
	query, args, err := qb.Select(columns...).From("player_sessions ps").
		Join("JOIN players p ON p.id = ps.player_id").
		Where(qb.Eq("ps.session_id", sessionID)).
		OrderBy("p.full_name ASC", "ps.id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list session participants query: %w", err)
	}

	var rows []participantRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list session participants: %w", err)
	}

	out := make([]session.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, session.Participant{
			Fact:             factFromRow(row.factTableModel),
			PlayerExternalID: row.PlayerExternalID,
			FullName:         row.FullName,
		})
	}
	return out, nil
}

func (r *SessionRepository) CountMVPs(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM player_sessions WHERE is_mvp"); err != nil {
		return 0, fmt.Errorf("count mvp facts: %w", err)
	}
	return count, nil
}

func sessionFromRow(row sessionTableModel) session.Session {
	return session.Session{
		ID:        row.ID,
		Date:      row.Date,
		CreatedAt: row.CreatedAt,
	}
}

func factFromRow(row factTableModel) session.Fact {
	return session.Fact{
		ID:               row.ID,
		PlayerID:         row.PlayerID,
		SessionID:        row.SessionID,
		Points:           row.Points,
		Saves:            row.Saves,
		MVP:              row.MVP,
		AttendanceStatus: row.AttendanceStatus,
		CreatedAt:        row.CreatedAt,
	}
}
