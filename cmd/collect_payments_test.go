package cmd

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mailroom.app/billing/mocks"
	"mailroom.app/billing/models"
	"mailroom.app/billing/repository"
)

const (
	listCollectableSQL = "SELECT id, user_id, invoice_number, amount, currency, period_start, period_end, status, created_at, COALESCE(external_payment_ref, ''), COALESCE(document_path, ''), email_sent_at, COALESCE(last_email_error, '') FROM invoices WHERE status = 'issued' AND external_payment_ref IS NULL AND email_sent_at IS NOT NULL ORDER BY id"
	markPaidSQL        = "UPDATE invoices SET status = 'paid', external_payment_ref = ? WHERE id = ? AND external_payment_ref IS NULL"
)

var collectableColumns = []string{"id", "user_id", "invoice_number", "amount", "currency", "period_start", "period_end", "status", "created_at", "external_payment_ref", "document_path", "email_sent_at", "last_email_error"}

func collectableRows(invoices ...[3]any) *sqlmock.Rows {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	sent := time.Date(2025, 2, 1, 0, 20, 0, 0, time.UTC)
	rows := sqlmock.NewRows(collectableColumns)
	for _, inv := range invoices {
		rows.AddRow(inv[0], inv[1], "INV-2025-000001", inv[2], "GBP", start, end, "issued", sent, "", "", sent, "")
	}
	return rows
}

func TestCollectPayments(t *testing.T) {
	t.Parallel()

	subscriber := &models.Subscriber{Id: 5, Email: "ada@example.com", Interval: models.IntervalMonth, MandateId: "pm_1", StripeCustomerId: "cus_1"}

	t.Run("collects, settles zero amounts and isolates failures", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		subs := mocks.NewSubscriberRepository(t)
		collector := mocks.NewPaymentCollector(t)

		sqlMock.ExpectQuery(regexp.QuoteMeta(listCollectableSQL)).
			WillReturnRows(collectableRows(
				[3]any{int64(1), int64(5), int64(999)},
				[3]any{int64(2), int64(6), int64(0)},
				[3]any{int64(3), int64(7), int64(999)},
				[3]any{int64(4), int64(8), int64(500)},
			))

		subs.EXPECT().GetActive(mock.Anything, int64(5)).Return(subscriber, nil)
		collector.EXPECT().Collect(mock.Anything, *subscriber, mock.MatchedBy(func(inv models.Invoice) bool {
			return inv.Id == 1
		})).Return("pi_123", nil)
		sqlMock.ExpectExec(regexp.QuoteMeta(markPaidSQL)).WithArgs("pi_123", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		sqlMock.ExpectExec(regexp.QuoteMeta(markPaidSQL)).WithArgs(ZeroAmountReference, int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		subs.EXPECT().GetActive(mock.Anything, int64(7)).Return(nil, repository.ErrSubscriberNotFound)

		other := &models.Subscriber{Id: 8, MandateId: "pm_8", StripeCustomerId: "cus_8"}
		subs.EXPECT().GetActive(mock.Anything, int64(8)).Return(other, nil)
		collector.EXPECT().Collect(mock.Anything, *other, mock.Anything).Return("", errors.New("card_declined"))

		job := NewCollectPaymentsJob(db, subs, collector)
		report, err := job.CollectPayments(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &models.CollectionReport{Attempted: 4, Collected: 2, Failed: 2}, report)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("invoice paid concurrently is not counted", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		subs := mocks.NewSubscriberRepository(t)
		collector := mocks.NewPaymentCollector(t)

		sqlMock.ExpectQuery(regexp.QuoteMeta(listCollectableSQL)).
			WillReturnRows(collectableRows([3]any{int64(1), int64(5), int64(999)}))
		subs.EXPECT().GetActive(mock.Anything, int64(5)).Return(subscriber, nil)
		collector.EXPECT().Collect(mock.Anything, *subscriber, mock.Anything).Return("pi_123", nil)
		sqlMock.ExpectExec(regexp.QuoteMeta(markPaidSQL)).WithArgs("pi_123", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		report, err := NewCollectPaymentsJob(db, subs, collector).CollectPayments(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &models.CollectionReport{Attempted: 1}, report)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("listing failure is fatal", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		sqlMock.ExpectQuery(regexp.QuoteMeta(listCollectableSQL)).WillReturnError(errors.New("connection reset"))

		report, err := NewCollectPaymentsJob(db, mocks.NewSubscriberRepository(t), mocks.NewPaymentCollector(t)).CollectPayments(context.Background())
		assert.Error(t, err)
		assert.Nil(t, report)
	})
}
