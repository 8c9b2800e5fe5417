package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mailroom.app/billing/models"
)

var invoiceRowColumns = []string{"id", "user_id", "invoice_number", "amount", "currency", "period_start", "period_end", "status", "created_at", "external_payment_ref", "document_path", "email_sent_at", "last_email_error"}

func TestInvoiceService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 2, 1, 0, 5, 0, 0, time.UTC)
	january := models.Period{Start: mustDate("2025-01-01"), End: mustDate("2025-01-31")}

	t.Run("Should return nil when no invoice exists for the period", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectQuery(regexp.QuoteMeta(findInvoiceForPeriodQuery)).
			WithArgs(int64(101), "2025-01-01", "2025-01-31").
			WillReturnRows(sqlmock.NewRows(invoiceRowColumns))

		inv, err := NewInvoiceService(db).FindForPeriod(ctx, 101, january)
		assert.NoError(t, err)
		assert.Nil(t, inv)
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})

	t.Run("Should load a frozen invoice for the period", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectQuery(regexp.QuoteMeta(findInvoiceForPeriodQuery)).
			WithArgs(int64(101), "2025-01-01", "2025-01-31").
			WillReturnRows(sqlmock.NewRows(invoiceRowColumns).
				AddRow(77, 101, "INV-2025-000001", 400, "GBP", mustDate("2025-01-01"), mustDate("2025-01-31"), "issued", now, "", "s3://invoices/1.pdf", now, ""))

		inv, err := NewInvoiceService(db).FindForPeriod(ctx, 101, january)
		require.NoError(t, err)
		require.NotNil(t, inv)
		assert.Equal(t, int64(77), inv.Id)
		assert.Equal(t, "INV-2025-000001", inv.Number)
		assert.Equal(t, models.InvoiceIssued, inv.Status)
		assert.Equal(t, january, inv.Period())
		assert.True(t, inv.Frozen())
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})

	t.Run("Should report a missing invoice by id", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectQuery(regexp.QuoteMeta(getInvoiceQuery)).
			WithArgs(int64(9)).
			WillReturnRows(sqlmock.NewRows(invoiceRowColumns))

		_, err = NewInvoiceService(db).Get(ctx, 9)
		assert.ErrorIs(t, err, ErrInvoiceNotFound)
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})

	t.Run("Should create an issued invoice with amount zero", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectExec(regexp.QuoteMeta(insertInvoiceQuery)).
			WithArgs(int64(101), "INV-2025-000002", "GBP", "2025-01-01", "2025-01-31", now).
			WillReturnResult(sqlmock.NewResult(78, 1))

		id, err := NewInvoiceService(db).Create(ctx, &models.Invoice{
			UserId:      101,
			Number:      "INV-2025-000002",
			Currency:    "GBP",
			PeriodStart: january.Start,
			PeriodEnd:   january.End,
			CreatedAt:   now,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(78), id)
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})

	t.Run("Should set the email marker only once", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectExec(regexp.QuoteMeta(markEmailSentQuery)).
			WithArgs(now, int64(77), int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mockSql.ExpectExec(regexp.QuoteMeta(markEmailSentQuery)).
			WithArgs(now, int64(77), int64(999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		is := NewInvoiceService(db)
		first, err := is.MarkEmailSent(ctx, 77, now, 999)
		assert.NoError(t, err)
		assert.True(t, first)

		second, err := is.MarkEmailSent(ctx, 77, now, 999)
		assert.NoError(t, err)
		assert.False(t, second)
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})

	t.Run("Should mark paid only without an existing reference", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectExec(regexp.QuoteMeta(markPaidQuery)).
			WithArgs("pi_123", int64(77)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		paid, err := NewInvoiceService(db).MarkPaid(ctx, 77, "pi_123")
		assert.NoError(t, err)
		assert.True(t, paid)
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})
}

func TestSequenceService(t *testing.T) {
	t.Parallel()

	db, mockSql, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockSql.ExpectExec(regexp.QuoteMeta(nextSequenceQuery)).
		WithArgs(2025).
		WillReturnResult(sqlmock.NewResult(42, 2))

	seq, err := NewSequenceService(db).Next(context.Background(), 2025)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), seq)
	assert.Equal(t, "INV-2025-000042", InvoiceNumber(2025, seq))
	assert.Equal(t, "INV-2025-U101-20250101", FallbackInvoiceNumber(2025, 101, mustDate("2025-01-01")))
	assert.NoError(t, mockSql.ExpectationsWereMet())
}
