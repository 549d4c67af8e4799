package postgres

import "time"

type sessionTableModel struct {
	ID        int64     `db:"id"`
	Date      time.Time `db:"session_date"`
	CreatedAt time.Time `db:"created_at"`
}

type sessionInsertModel struct {
	Date time.Time `db:"session_date"`
}

type factTableModel struct {
	ID               int64     `db:"id"`
	PlayerID         int64     `db:"player_id"`
	SessionID        int64     `db:"session_id"`
	Points           int       `db:"points"`
	Saves            int       `db:"saves"`
	MVP              bool      `db:"is_mvp"`
	AttendanceStatus string    `db:"attendance_status"`
	CreatedAt        time.Time `db:"created_at"`
}

type factInsertModel struct {
	PlayerID         int64  `db:"player_id"`
	SessionID        int64  `db:"session_id"`
	Points           int    `db:"points"`
	Saves            int    `db:"saves"`
	MVP              bool   `db:"is_mvp"`
	AttendanceStatus string `db:"attendance_status"`
}

type historyRowModel struct {
	factTableModel
	Date time.Time `db:"session_date"`
}

type participantRowModel struct {
	factTableModel
	PlayerExternalID string `db:"player_external_id"`
	FullName         string `db:"full_name"`
}
