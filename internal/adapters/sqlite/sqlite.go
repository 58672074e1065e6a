// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// timestamp scans a DATETIME column into an RFC3339 string. Fresh schemas
// hand the driver a DATETIME column it parses itself; databases created by
// older releases stored plain text.
type timestamp string

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Scan implements sql.Scanner.
func (t *timestamp) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		*t = ""
	case time.Time:
		*t = timestamp(x.UTC().Format(time.RFC3339))
	case string:
		*t = parseTimestamp(x)
	case []byte:
		*t = parseTimestamp(string(x))
	default:
		return fmt.Errorf("unsupported timestamp value %T", v)
	}
	return nil
}

func parseTimestamp(s string) timestamp {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return timestamp(parsed.UTC().Format(time.RFC3339))
		}
	}
	return timestamp(s)
}

// execAffecting runs a statement and reports whether it changed any row.
func execAffecting(ctx context.Context, db *sql.DB, query string, args ...any) (bool, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
