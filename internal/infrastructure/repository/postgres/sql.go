package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports whether err is a Postgres unique_violation on the
// given constraint. An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullableInt treats zero as unset and stores NULL. Optional numeric fields
// like age never carry a meaningful zero, and reads map NULL back to zero, so
// the round trip matches the in-memory store.
func nullableInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
