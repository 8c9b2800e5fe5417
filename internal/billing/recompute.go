package billing

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
	"mailroom.app/billing/repository"
)

// Recompute derives the invoice total from its billed charges and writes it
// back. The stored amount is never trusted; a difference is logged as a
// mismatch and overwritten.
func (s *BillingService) Recompute(ctx context.Context, invoiceID int64, currency string) (int64, error) {
	logger := s.logger.WithField("invoice_id", invoiceID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin recompute transaction")
	}
	_, total, err := s.recomputeTx(ctx, tx, invoiceID, currency, false, logger)
	if err != nil {
		rollback(tx, logger)
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit recompute transaction")
	}
	return total, nil
}

// recomputeTx returns the stored and freshly computed amounts. When
// attachedNow is set the caller just claimed charges, so a changed total is
// expected and only logged at info.
func (s *BillingService) recomputeTx(ctx context.Context, tx *sql.Tx, invoiceID int64, currency string, attachedNow bool, logger *logrus.Entry) (int64, int64, error) {
	invoices := repository.NewInvoiceService(tx)

	stored, err := invoices.LockAmount(ctx, invoiceID)
	if err != nil {
		return 0, 0, err
	}

	total := int64(0)
	if s.schema.ChargeTable {
		total, err = repository.NewChargeService(tx).SumBilled(ctx, invoiceID)
		if err != nil {
			if !s.tolerateMissingTable(err) {
				return 0, 0, err
			}
			logger.WithError(err).Warn("charge table missing, treating as zero charges")
			total = 0
		}
	}

	if err := invoices.UpdateAmount(ctx, invoiceID, total, currency); err != nil {
		return 0, 0, err
	}

	if stored != total {
		fields := logrus.Fields{
			"invoice_id": invoiceID,
			"stored":     stored,
			"computed":   total,
			"delta":      total - stored,
		}
		if attachedNow {
			logger.WithFields(fields).Info("invoice total updated")
		} else {
			fields["mismatch"] = true
			logger.WithFields(fields).Warn("stored invoice amount disagreed with billed charges, recomputed value written")
		}
	}
	return stored, total, nil
}

// ReconcileAll recomputes every invoice, one transaction each, and reports
// how many stored totals had drifted.
func (s *BillingService) ReconcileAll(ctx context.Context) (*models.ReconcileReport, error) {
	ids, err := repository.NewInvoiceService(s.db).ListIds(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.ReconcileReport{}
	for _, id := range ids {
		logger := s.logger.WithField("invoice_id", id)
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return report, errors.Wrap(err, "begin reconcile transaction")
		}
		stored, total, err := s.recomputeTx(ctx, tx, id, "", false, logger)
		if err != nil {
			rollback(tx, logger)
			return report, errors.Wrapf(err, "reconcile invoice %d", id)
		}
		if err := tx.Commit(); err != nil {
			return report, errors.Wrapf(err, "commit reconcile of invoice %d", id)
		}
		report.Checked++
		if stored != total {
			report.Mismatched++
			report.InvoiceIds = append(report.InvoiceIds, id)
		}
	}
	return report, nil
}
