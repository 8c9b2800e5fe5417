package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// LAST_INSERT_ID(expr) makes the driver return the new counter value as the
// insert id, so allocation is a single statement.
const nextSequenceQuery = "INSERT INTO invoice_sequences (`year`, `last_value`) VALUES (?, LAST_INSERT_ID(1)) ON DUPLICATE KEY UPDATE last_value = LAST_INSERT_ID(last_value + 1)"

type SequenceService struct {
	db DBTX
}

func NewSequenceService(db DBTX) *SequenceService {
	return &SequenceService{
		db: db,
	}
}

// Next returns the next invoice sequence value for the calendar year.
func (ss *SequenceService) Next(ctx context.Context, year int) (int64, error) {
	res, err := ss.db.ExecContext(ctx, nextSequenceQuery, year)
	if err != nil {
		return 0, errors.Wrapf(err, "next invoice sequence for %d", year)
	}
	value, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrapf(err, "read invoice sequence for %d", year)
	}
	return value, nil
}

func InvoiceNumber(year int, sequence int64) string {
	return fmt.Sprintf("INV-%d-%06d", year, sequence)
}

// FallbackInvoiceNumber is the deterministic number used when the sequence
// table is unavailable.
func FallbackInvoiceNumber(year int, userID int64, periodStart time.Time) string {
	return fmt.Sprintf("INV-%d-U%d-%s", year, userID, periodStart.Format("20060102"))
}
