package billing_test

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"mailroom.app/billing/models"
)

const (
	findInvoiceQuery  = "SELECT id, user_id, invoice_number, amount, currency, period_start, period_end, status, created_at, COALESCE(external_payment_ref, ''), COALESCE(document_path, ''), email_sent_at, COALESCE(last_email_error, '') FROM invoices WHERE user_id = ? AND period_start = ? AND period_end = ? FOR UPDATE"
	getInvoiceQuery   = "SELECT id, user_id, invoice_number, amount, currency, period_start, period_end, status, created_at, COALESCE(external_payment_ref, ''), COALESCE(document_path, ''), email_sent_at, COALESCE(last_email_error, '') FROM invoices WHERE id = ?"
	insertFeeQuery    = "INSERT INTO charge (`user_id`, `amount`, `currency`, `type`, `description`, `service_date`, `status`, `related_type`, `related_id`, `created_at`) VALUES (?, ?, ?, ?, ?, ?, 'pending', ?, ?, ?) ON DUPLICATE KEY UPDATE id = id"
	nextSequenceQuery = "INSERT INTO invoice_sequences (`year`, `last_value`) VALUES (?, LAST_INSERT_ID(1)) ON DUPLICATE KEY UPDATE last_value = LAST_INSERT_ID(last_value + 1)"
	insertInvoiceSQL  = "INSERT INTO invoices (`user_id`, `invoice_number`, `amount`, `currency`, `period_start`, `period_end`, `status`, `created_at`) VALUES (?, ?, 0, ?, ?, ?, 'issued', ?)"
	claimQuery        = "UPDATE charge SET invoice_id = ?, status = 'billed', billed_at = ? WHERE user_id = ? AND status = 'pending' AND invoice_id IS NULL AND service_date <= ?"
	lockAmountQuery   = "SELECT amount FROM invoices WHERE id = ? FOR UPDATE"
	sumBilledQuery    = "SELECT COALESCE(SUM(amount), 0) FROM charge WHERE invoice_id = ? AND status = 'billed'"
	updateAmountQuery = "UPDATE invoices SET amount = ?, currency = COALESCE(NULLIF(?, ''), currency) WHERE id = ?"
	listBilledQuery   = "SELECT id, user_id, amount, currency, type, description, service_date, status, invoice_id, billed_at, COALESCE(related_type, ''), COALESCE(related_id, 0), created_at FROM charge WHERE invoice_id = ? AND status = 'billed' ORDER BY service_date, id"
	setDocumentQuery  = "UPDATE invoices SET document_path = ? WHERE id = ?"
	markSentQuery     = "UPDATE invoices SET email_sent_at = ?, last_email_error = NULL WHERE id = ? AND email_sent_at IS NULL AND amount = ?"
	emailErrorQuery   = "UPDATE invoices SET last_email_error = ? WHERE id = ?"
	listOrphansQuery  = "SELECT id FROM charge WHERE status = 'billed' AND invoice_id IS NULL ORDER BY id FOR UPDATE"
	resetOrphansQuery = "UPDATE charge SET status = 'pending', billed_at = NULL WHERE status = 'billed' AND invoice_id IS NULL"
	listInvoicesQuery = "SELECT id FROM invoices ORDER BY id"
)

var invoiceColumns = []string{"id", "user_id", "invoice_number", "amount", "currency", "period_start", "period_end", "status", "created_at", "external_payment_ref", "document_path", "email_sent_at", "last_email_error"}

var chargeColumns = []string{"id", "user_id", "amount", "currency", "type", "description", "service_date", "status", "invoice_id", "billed_at", "related_type", "related_id", "created_at"}

func mustDate(s string) time.Time {
	t, err := time.Parse(models.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func january() models.Period {
	return models.Period{Start: mustDate("2025-01-01"), End: mustDate("2025-01-31")}
}

// invoiceRow returns a single invoices row; emailSentAt may be nil.
func invoiceRow(id int64, userID int64, number string, amount int64, emailSentAt any) *sqlmock.Rows {
	created := time.Date(2025, 2, 1, 0, 15, 0, 0, time.UTC)
	return sqlmock.NewRows(invoiceColumns).
		AddRow(id, userID, number, amount, "GBP", mustDate("2025-01-01"), mustDate("2025-01-31"), "issued", created, "", "", emailSentAt, "")
}
