package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	helpers "github.com/Lineblocs/go-helpers"
	"github.com/go-sql-driver/mysql"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mailroom.app/billing/models"
)

func TestInspectSchema(t *testing.T) {
	t.Parallel()
	helpers.InitLogrus("file")

	ctx := context.Background()

	t.Run("Should detect a complete schema", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectQuery(regexp.QuoteMeta(schemaTablesQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("charge").AddRow("invoices").AddRow("invoice_sequences"))
		mockSql.ExpectQuery(regexp.QuoteMeta(schemaDedupeColumnsQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		state, err := InspectSchema(ctx, db, "production")
		require.NoError(t, err)
		assert.True(t, state.Complete())
		assert.NoError(t, state.Validate())
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})

	t.Run("Should fail fast in production when the sequence table is missing", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectQuery(regexp.QuoteMeta(schemaTablesQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("charge").AddRow("invoices"))
		mockSql.ExpectQuery(regexp.QuoteMeta(schemaDedupeColumnsQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		state, err := InspectSchema(ctx, db, "production")
		require.NoError(t, err)
		assert.Equal(t, []string{"invoice_sequences"}, state.Missing())
		assert.False(t, state.AllowsDegraded())
		assert.ErrorIs(t, state.Validate(), ErrSchemaIncomplete)
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})

	t.Run("Should allow degraded mode in staging but never without invoices", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectQuery(regexp.QuoteMeta(schemaTablesQuery)).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("invoices"))

		state, err := InspectSchema(ctx, db, "staging")
		require.NoError(t, err)
		assert.False(t, state.ChargeTable)
		assert.True(t, state.AllowsDegraded())
		assert.NoError(t, state.Validate())

		state.InvoiceTable = false
		assert.ErrorIs(t, state.Validate(), ErrSchemaIncomplete)
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})

	t.Run("Should report legacy charges without dedupe columns", func(t *testing.T) {
		t.Parallel()

		state := CompleteSchema("development")
		state.ChargeDedupe = false
		assert.Equal(t, []string{"charge.related_type/related_id"}, state.Missing())
		assert.NoError(t, state.Validate())
	})
}

func TestMySQLErrorClassification(t *testing.T) {
	t.Parallel()

	missing := &mysql.MySQLError{Number: 1146, Message: "Table 'mailroom.charge' doesn't exist"}
	duplicate := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}

	assert.True(t, IsMissingTable(missing))
	assert.True(t, IsMissingTable(pkgerrors.Wrap(missing, "claim pending charges")))
	assert.False(t, IsMissingTable(duplicate))
	assert.False(t, IsMissingTable(errors.New("boom")))
	assert.False(t, IsMissingTable(nil))

	assert.True(t, IsDuplicateKey(pkgerrors.Wrap(duplicate, "insert invoice")))
	assert.False(t, IsDuplicateKey(missing))

	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
	assert.True(t, IsDeadlock(pkgerrors.Wrap(deadlock, "insert invoice")))
	assert.False(t, IsDeadlock(duplicate))
	assert.False(t, IsDeadlock(nil))
}

func TestPlanPricing(t *testing.T) {
	t.Parallel()
	helpers.InitLogrus("file")

	ctx := context.Background()

	t.Run("Should read the plan price", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectQuery(regexp.QuoteMeta(planPriceQuery)).
			WithArgs("month").
			WillReturnRows(sqlmock.NewRows([]string{"price_pence"}).AddRow(1299))

		assert.Equal(t, int64(1299), NewPlanPricing(db).PriceFor(ctx, models.IntervalMonth))
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})

	t.Run("Should fall back when the plans table is unreachable", func(t *testing.T) {
		t.Parallel()

		db, mockSql, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mockSql.ExpectQuery(regexp.QuoteMeta(planPriceQuery)).
			WithArgs("year").
			WillReturnError(&mysql.MySQLError{Number: 1146, Message: "Table 'plans' doesn't exist"})

		assert.Equal(t, FallbackPrices[models.IntervalYear], NewPlanPricing(db).PriceFor(ctx, models.IntervalYear))
		assert.NoError(t, mockSql.ExpectationsWereMet())
	})
}
