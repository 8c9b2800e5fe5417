package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"mailroom.app/billing/internal/api"
	"mailroom.app/billing/models"
)

type GenerateInvoicesJob struct {
	runner api.InvoiceRunner
	logger *logrus.Entry
}

func NewGenerateInvoicesJob(runner api.InvoiceRunner) *GenerateInvoicesJob {
	return &GenerateInvoicesJob{
		runner: runner,
		logger: logrus.WithField("component", "generate_invoices"),
	}
}

// GenerateInvoices runs the orchestrator once over every active subscriber.
// Per-user failures are reported, not returned.
func (j *GenerateInvoicesJob) GenerateInvoices(ctx context.Context) (*models.RunReport, error) {
	report, err := j.runner.Run(ctx)
	if err != nil {
		j.logger.WithError(err).Error("invoice run failed")
		return nil, err
	}

	logger := j.logger.WithField("run_id", report.RunId)
	for _, item := range report.Items {
		if item.Status != models.OutcomeErrored {
			continue
		}
		logger.WithFields(logrus.Fields{
			"user_id": item.UserId,
			"reason":  item.Reason,
		}).Error(item.Error)
	}
	logger.WithFields(logrus.Fields{
		"eligible":  report.Eligible,
		"generated": report.Generated,
		"skipped":   report.Skipped,
		"errored":   report.Errored,
	}).Info("invoice run finished")
	return report, nil
}
