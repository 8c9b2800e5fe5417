package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"mailroom.app/billing/models"
)

const (
	insertChargeQuery = "INSERT INTO charge (`user_id`, `amount`, `currency`, `type`, `description`, `service_date`, `status`, `related_type`, `related_id`, `created_at`) VALUES (?, ?, ?, ?, ?, ?, 'pending', ?, ?, ?) ON DUPLICATE KEY UPDATE id = id"

	// The status/invoice predicate is re-checked at write time so two
	// overlapping runs cannot claim the same charge.
	claimPendingQuery = "UPDATE charge SET invoice_id = ?, status = 'billed', billed_at = ? WHERE user_id = ? AND status = 'pending' AND invoice_id IS NULL AND service_date <= ?"

	sumBilledQuery = "SELECT COALESCE(SUM(amount), 0) FROM charge WHERE invoice_id = ? AND status = 'billed'"

	listBilledQuery = "SELECT id, user_id, amount, currency, type, description, service_date, status, invoice_id, billed_at, COALESCE(related_type, ''), COALESCE(related_id, 0), created_at FROM charge WHERE invoice_id = ? AND status = 'billed' ORDER BY service_date, id"

	listOrphansQuery = "SELECT id FROM charge WHERE status = 'billed' AND invoice_id IS NULL ORDER BY id FOR UPDATE"

	resetOrphansQuery = "UPDATE charge SET status = 'pending', billed_at = NULL WHERE status = 'billed' AND invoice_id IS NULL"
)

type ChargeService struct {
	db DBTX
}

func NewChargeService(db DBTX) *ChargeService {
	return &ChargeService{
		db: db,
	}
}

// Insert records a pending charge. A charge whose (type, related_type,
// related_id) already exists is silently ignored and false is returned.
func (cs *ChargeService) Insert(ctx context.Context, charge *models.Charge, createdAt time.Time) (bool, error) {
	if charge.Amount <= 0 {
		return false, errors.Errorf("charge amount must be positive, got %d", charge.Amount)
	}
	res, err := cs.db.ExecContext(ctx, insertChargeQuery,
		charge.UserId,
		charge.Amount,
		charge.Currency,
		string(charge.Type),
		charge.Description,
		formatDate(charge.ServiceDate),
		nullString(charge.RelatedType),
		nullInt64(charge.RelatedId, charge.HasRelation()),
		createdAt,
	)
	if err != nil {
		return false, errors.Wrap(err, "insert charge")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "insert charge rows affected")
	}
	// ON DUPLICATE KEY UPDATE id = id reports 0 rows for an existing row.
	return affected == 1, nil
}

// ClaimPending attaches every pending, unattached charge of the user with a
// service date on or before periodEnd to the invoice.
func (cs *ChargeService) ClaimPending(ctx context.Context, userID int64, invoiceID int64, periodEnd time.Time, billedAt time.Time) (int64, error) {
	res, err := cs.db.ExecContext(ctx, claimPendingQuery, invoiceID, billedAt, userID, formatDate(periodEnd))
	if err != nil {
		return 0, errors.Wrap(err, "claim pending charges")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "claim pending charges rows affected")
	}
	return affected, nil
}

func (cs *ChargeService) SumBilled(ctx context.Context, invoiceID int64) (int64, error) {
	var total int64
	if err := cs.db.QueryRowContext(ctx, sumBilledQuery, invoiceID).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "sum billed charges")
	}
	return total, nil
}

func (cs *ChargeService) ListBilled(ctx context.Context, invoiceID int64) ([]models.Charge, error) {
	rows, err := cs.db.QueryContext(ctx, listBilledQuery, invoiceID)
	if err != nil {
		return nil, errors.Wrap(err, "list billed charges")
	}
	defer rows.Close()

	var charges []models.Charge
	for rows.Next() {
		var (
			charge      models.Charge
			chargeType  string
			status      string
			invoice     *int64
			serviceDate timeColumn
			billedAt    timeColumn
			createdAt   timeColumn
		)
		err := rows.Scan(
			&charge.Id,
			&charge.UserId,
			&charge.Amount,
			&charge.Currency,
			&chargeType,
			&charge.Description,
			&serviceDate,
			&status,
			&invoice,
			&billedAt,
			&charge.RelatedType,
			&charge.RelatedId,
			&createdAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan billed charge")
		}
		charge.Type = models.ChargeType(chargeType)
		charge.Status = models.ChargeStatus(status)
		charge.InvoiceId = invoice
		charge.ServiceDate = serviceDate.Time
		charge.BilledAt = billedAt.Ptr()
		charge.CreatedAt = createdAt.Time
		charges = append(charges, charge)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate billed charges")
	}
	return charges, nil
}

// ListOrphans locks and returns the ids of charges marked billed without an
// invoice. Must run inside a transaction for the lock to matter.
func (cs *ChargeService) ListOrphans(ctx context.Context) ([]int64, error) {
	rows, err := cs.db.QueryContext(ctx, listOrphansQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list orphan charges")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan orphan charge")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate orphan charges")
	}
	return ids, nil
}

func (cs *ChargeService) ResetOrphans(ctx context.Context) (int64, error) {
	res, err := cs.db.ExecContext(ctx, resetOrphansQuery)
	if err != nil {
		return 0, errors.Wrap(err, "reset orphan charges")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "reset orphan charges rows affected")
	}
	return affected, nil
}
