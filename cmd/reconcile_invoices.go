package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
)

type InvoiceReconciler interface {
	ReconcileAll(ctx context.Context) (*models.ReconcileReport, error)
}

type ReconcileInvoicesJob struct {
	reconciler InvoiceReconciler
	logger     *logrus.Entry
}

func NewReconcileInvoicesJob(reconciler InvoiceReconciler) *ReconcileInvoicesJob {
	return &ReconcileInvoicesJob{
		reconciler: reconciler,
		logger:     logrus.WithField("component", "reconcile_invoices"),
	}
}

// ReconcileInvoices recomputes every stored invoice amount from its billed
// charges. A failure part way through still returns what was checked.
func (j *ReconcileInvoicesJob) ReconcileInvoices(ctx context.Context) (*models.ReconcileReport, error) {
	report, err := j.reconciler.ReconcileAll(ctx)
	if report != nil {
		j.logger.WithFields(logrus.Fields{
			"checked":    report.Checked,
			"mismatched": report.Mismatched,
		}).Info("invoice reconciliation finished")
	}
	if err != nil {
		j.logger.WithError(err).Error("invoice reconciliation stopped")
		return report, err
	}
	return report, nil
}
