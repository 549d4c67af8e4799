package session

import (
	"errors"
	"time"
)

// DateLayout is the wire format for session dates.
const DateLayout = "2006-01-02"

// DefaultAttendance is recorded when a stats write omits the attendance status.
const DefaultAttendance = "Present"

// ErrDuplicateDate is returned by repositories when a session already exists
// for the given calendar date.
var ErrDuplicateDate = errors.New("session date already exists")

// Session is a single calendar date on which the club met.
type Session struct {
	ID        int64
	Date      time.Time
	CreatedAt time.Time
}

// Fact is one player's recorded performance in one session. At most one fact
// exists per (player, session) pair; a second write overwrites the first.
type Fact struct {
	ID               int64
	PlayerID         int64
	SessionID        int64
	Points           int
	Saves            int
	MVP              bool
	AttendanceStatus string
	CreatedAt        time.Time
}

// HistoryEntry is a fact joined with its session date, as shown on a player's
// session history.
type HistoryEntry struct {
	Fact
	Date time.Time
}

// Participant is a fact joined with player identity, as shown on a session's
// roster.
type Participant struct {
	Fact
	PlayerExternalID string
	FullName         string
}
