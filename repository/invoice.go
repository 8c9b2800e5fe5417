package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"mailroom.app/billing/models"
)

const invoiceColumns = "id, user_id, invoice_number, amount, currency, period_start, period_end, status, created_at, COALESCE(external_payment_ref, ''), COALESCE(document_path, ''), email_sent_at, COALESCE(last_email_error, '')"

const (
	findInvoiceForPeriodQuery = "SELECT " + invoiceColumns + " FROM invoices WHERE user_id = ? AND period_start = ? AND period_end = ? FOR UPDATE"

	getInvoiceQuery = "SELECT " + invoiceColumns + " FROM invoices WHERE id = ?"

	insertInvoiceQuery = "INSERT INTO invoices (`user_id`, `invoice_number`, `amount`, `currency`, `period_start`, `period_end`, `status`, `created_at`) VALUES (?, ?, 0, ?, ?, ?, 'issued', ?)"

	lockInvoiceAmountQuery = "SELECT amount FROM invoices WHERE id = ? FOR UPDATE"

	updateInvoiceAmountQuery = "UPDATE invoices SET amount = ?, currency = COALESCE(NULLIF(?, ''), currency) WHERE id = ?"

	setDocumentPathQuery = "UPDATE invoices SET document_path = ? WHERE id = ?"

	markEmailSentQuery = "UPDATE invoices SET email_sent_at = ?, last_email_error = NULL WHERE id = ? AND email_sent_at IS NULL AND amount = ?"

	recordEmailErrorQuery = "UPDATE invoices SET last_email_error = ? WHERE id = ?"

	markPaidQuery = "UPDATE invoices SET status = 'paid', external_payment_ref = ? WHERE id = ? AND external_payment_ref IS NULL"

	listInvoiceIdsQuery = "SELECT id FROM invoices ORDER BY id"

	listCollectableQuery = "SELECT " + invoiceColumns + " FROM invoices WHERE status = 'issued' AND external_payment_ref IS NULL AND email_sent_at IS NOT NULL ORDER BY id"
)

type InvoiceService struct {
	db DBTX
}

func NewInvoiceService(db DBTX) *InvoiceService {
	return &InvoiceService{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	var (
		inv         models.Invoice
		status      string
		periodStart timeColumn
		periodEnd   timeColumn
		createdAt   timeColumn
		emailSentAt timeColumn
	)
	err := row.Scan(
		&inv.Id,
		&inv.UserId,
		&inv.Number,
		&inv.Amount,
		&inv.Currency,
		&periodStart,
		&periodEnd,
		&status,
		&createdAt,
		&inv.ExternalPaymentRef,
		&inv.DocumentPath,
		&emailSentAt,
		&inv.LastEmailError,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = models.InvoiceStatus(status)
	inv.PeriodStart = periodStart.Time
	inv.PeriodEnd = periodEnd.Time
	inv.CreatedAt = createdAt.Time
	inv.EmailSentAt = emailSentAt.Ptr()
	return &inv, nil
}

// FindForPeriod returns the invoice for the period key, locking the row for
// the rest of the transaction. It returns nil, nil when none exists.
func (is *InvoiceService) FindForPeriod(ctx context.Context, userID int64, period models.Period) (*models.Invoice, error) {
	row := is.db.QueryRowContext(ctx, findInvoiceForPeriodQuery, userID, formatDate(period.Start), formatDate(period.End))
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find invoice for period")
	}
	return inv, nil
}

func (is *InvoiceService) Get(ctx context.Context, invoiceID int64) (*models.Invoice, error) {
	row := is.db.QueryRowContext(ctx, getInvoiceQuery, invoiceID)
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrInvoiceNotFound, "invoice %d", invoiceID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get invoice")
	}
	return inv, nil
}

// Create inserts an issued invoice with amount 0 and returns its id.
func (is *InvoiceService) Create(ctx context.Context, inv *models.Invoice) (int64, error) {
	res, err := is.db.ExecContext(ctx, insertInvoiceQuery,
		inv.UserId,
		inv.Number,
		inv.Currency,
		formatDate(inv.PeriodStart),
		formatDate(inv.PeriodEnd),
		inv.CreatedAt,
	)
	if err != nil {
		return 0, errors.Wrap(err, "insert invoice")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "insert invoice id")
	}
	return id, nil
}

func (is *InvoiceService) LockAmount(ctx context.Context, invoiceID int64) (int64, error) {
	var amount int64
	err := is.db.QueryRowContext(ctx, lockInvoiceAmountQuery, invoiceID).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errors.Wrapf(ErrInvoiceNotFound, "invoice %d", invoiceID)
	}
	if err != nil {
		return 0, errors.Wrap(err, "lock invoice amount")
	}
	return amount, nil
}

func (is *InvoiceService) UpdateAmount(ctx context.Context, invoiceID int64, amount int64, currency string) error {
	_, err := is.db.ExecContext(ctx, updateInvoiceAmountQuery, amount, currency, invoiceID)
	return errors.Wrap(err, "update invoice amount")
}

func (is *InvoiceService) SetDocumentPath(ctx context.Context, invoiceID int64, path string) error {
	_, err := is.db.ExecContext(ctx, setDocumentPathQuery, path, invoiceID)
	return errors.Wrap(err, "set invoice document path")
}

// MarkEmailSent sets the email marker once, and only while the invoice still
// holds the amount that was emailed. It returns false when another run set
// the marker or the amount moved.
func (is *InvoiceService) MarkEmailSent(ctx context.Context, invoiceID int64, sentAt time.Time, amount int64) (bool, error) {
	res, err := is.db.ExecContext(ctx, markEmailSentQuery, sentAt, invoiceID, amount)
	if err != nil {
		return false, errors.Wrap(err, "mark invoice email sent")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "mark invoice email sent rows affected")
	}
	return affected == 1, nil
}

func (is *InvoiceService) RecordEmailError(ctx context.Context, invoiceID int64, message string) error {
	_, err := is.db.ExecContext(ctx, recordEmailErrorQuery, message, invoiceID)
	return errors.Wrap(err, "record invoice email error")
}

// MarkPaid stores the external payment reference once, freezing the invoice.
func (is *InvoiceService) MarkPaid(ctx context.Context, invoiceID int64, reference string) (bool, error) {
	res, err := is.db.ExecContext(ctx, markPaidQuery, reference, invoiceID)
	if err != nil {
		return false, errors.Wrap(err, "mark invoice paid")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "mark invoice paid rows affected")
	}
	return affected == 1, nil
}

func (is *InvoiceService) ListIds(ctx context.Context) ([]int64, error) {
	rows, err := is.db.QueryContext(ctx, listInvoiceIdsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list invoices")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan invoice id")
		}
		ids = append(ids, id)
	}
	return ids, errors.Wrap(rows.Err(), "iterate invoices")
}

// ListCollectable returns emailed invoices that have no payment reference yet.
func (is *InvoiceService) ListCollectable(ctx context.Context) ([]models.Invoice, error) {
	rows, err := is.db.QueryContext(ctx, listCollectableQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list collectable invoices")
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan collectable invoice")
		}
		invoices = append(invoices, *inv)
	}
	return invoices, errors.Wrap(rows.Err(), "iterate collectable invoices")
}
