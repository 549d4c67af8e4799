package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID               int64          `db:"id"`
	PlayerID         string         `db:"player_id"`
	FullName         string         `db:"full_name"`
	Phone            sql.NullString `db:"phone"`
	Instagram        sql.NullString `db:"instagram"`
	Age              sql.NullInt64  `db:"age"`
	SkillLevel       sql.NullString `db:"skill_level"`
	SessionsAttended int            `db:"sessions_attended"`
	MVPAwards        int            `db:"mvp_awards"`
	TotalPoints      int            `db:"total_points"`
	TotalSaves       int            `db:"total_saves"`
	FormSubmissions  int            `db:"form_submissions"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	PlayerID   string         `db:"player_id"`
	FullName   string         `db:"full_name"`
	Phone      sql.NullString `db:"phone"`
	Instagram  sql.NullString `db:"instagram"`
	Age        sql.NullInt64  `db:"age"`
	SkillLevel sql.NullString `db:"skill_level"`
}
