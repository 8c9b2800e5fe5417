package cmd

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	billinghandler "mailroom.app/billing/handlers/billing"
	"mailroom.app/billing/models"
	"mailroom.app/billing/repository"
)

// ZeroAmountReference is stored on invoices that are settled without taking
// a payment.
const ZeroAmountReference = "zero_amount"

type CollectPaymentsJob struct {
	db          *sql.DB
	subscribers repository.SubscriberRepository
	collector   billinghandler.PaymentCollector
	logger      *logrus.Entry
}

func NewCollectPaymentsJob(db *sql.DB, subscribers repository.SubscriberRepository, collector billinghandler.PaymentCollector) *CollectPaymentsJob {
	return &CollectPaymentsJob{
		db:          db,
		subscribers: subscribers,
		collector:   collector,
		logger:      logrus.WithField("component", "collect_payments"),
	}
}

// CollectPayments charges every emailed, unpaid invoice against the owner's
// mandate. One failing invoice never stops the others.
func (j *CollectPaymentsJob) CollectPayments(ctx context.Context) (*models.CollectionReport, error) {
	invoices := repository.NewInvoiceService(j.db)

	collectable, err := invoices.ListCollectable(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.CollectionReport{}
	for _, inv := range collectable {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Attempted++
		logger := j.logger.WithFields(logrus.Fields{
			"invoice_id": inv.Id,
			"user_id":    inv.UserId,
		})

		reference, err := j.collect(ctx, inv)
		if err != nil {
			report.Failed++
			logger.WithError(err).Error("payment collection failed")
			continue
		}

		marked, err := invoices.MarkPaid(ctx, inv.Id, reference)
		if err != nil {
			report.Failed++
			logger.WithError(err).WithField("reference", reference).Error("payment taken but invoice not marked paid")
			continue
		}
		if !marked {
			logger.Warn("invoice was marked paid by another run")
			continue
		}
		report.Collected++
		logger.WithField("reference", reference).Info("invoice paid")
	}

	j.logger.WithFields(logrus.Fields{
		"attempted": report.Attempted,
		"collected": report.Collected,
		"failed":    report.Failed,
	}).Info("payment collection finished")
	return report, nil
}

func (j *CollectPaymentsJob) collect(ctx context.Context, inv models.Invoice) (string, error) {
	if inv.Amount <= 0 {
		return ZeroAmountReference, nil
	}
	subscriber, err := j.subscribers.GetActive(ctx, inv.UserId)
	if err != nil {
		return "", err
	}
	reference, err := j.collector.Collect(ctx, *subscriber, inv)
	if err != nil {
		return "", errors.Wrapf(err, "collect invoice %s", inv.Number)
	}
	return reference, nil
}
