package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements mirror db/migrations/0001_init; each is idempotent so the
// startup path can run them against an already provisioned database.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id BIGSERIAL PRIMARY KEY,
		player_id TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		phone TEXT,
		instagram TEXT,
		age INTEGER,
		skill_level TEXT CHECK (skill_level IN ('Beginner', 'Intermediate', 'Advanced')),
		sessions_attended INTEGER NOT NULL DEFAULT 0,
		mvp_awards INTEGER NOT NULL DEFAULT 0,
		total_points INTEGER NOT NULL DEFAULT 0,
		total_saves INTEGER NOT NULL DEFAULT 0,
		form_submissions INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id BIGSERIAL PRIMARY KEY,
		session_date DATE NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS player_sessions (
		id BIGSERIAL PRIMARY KEY,
		player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		session_id BIGINT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		points INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
		saves INTEGER NOT NULL DEFAULT 0 CHECK (saves >= 0),
		is_mvp BOOLEAN NOT NULL DEFAULT FALSE,
		attendance_status TEXT NOT NULL DEFAULT 'Present',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (player_id, session_id)
	)`,
	`CREATE TABLE IF NOT EXISTS form_submissions (
		id BIGSERIAL PRIMARY KEY,
		player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		session_date DATE,
		attending BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_player_sessions_player_id ON player_sessions (player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_player_sessions_session_id ON player_sessions (session_id)`,
}

// EnsureSchema creates the tables the service needs when they do not exist
// yet. Deployments that manage the schema through the migration CLI hit only
// IF NOT EXISTS no-ops here.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
