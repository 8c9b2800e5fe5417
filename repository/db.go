package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mailroom.app/billing/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same services run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// timeColumn scans DATE/DATETIME values whether or not the driver was opened
// with parseTime.
type timeColumn struct {
	Time  time.Time
	Valid bool
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	models.DateFormat,
	time.RFC3339Nano,
}

func (tc *timeColumn) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		tc.Time, tc.Valid = time.Time{}, false
		return nil
	case time.Time:
		tc.Time, tc.Valid = v, true
		return nil
	case []byte:
		return tc.parse(string(v))
	case string:
		return tc.parse(v)
	}
	return fmt.Errorf("unsupported time column type %T", src)
}

func (tc *timeColumn) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			tc.Time, tc.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("cannot parse time column value %q", s)
}

func (tc *timeColumn) Ptr() *time.Time {
	if !tc.Valid {
		return nil
	}
	t := tc.Time
	return &t
}

func formatDate(t time.Time) string {
	return t.Format(models.DateFormat)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(n int64, valid bool) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: valid}
}
