package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
	"mailroom.app/billing/repository"
)

type InvoiceGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

type InvoiceFinalizer interface {
	Finalize(ctx context.Context, subscriber models.Subscriber, invoiceID int64) (FinalizeStatus, error)
}

// Orchestrator walks active subscribers, generates the invoice for the
// period that just ended and hands it off for delivery. One subscriber's
// failure never stops the others.
type Orchestrator struct {
	subscribers repository.SubscriberRepository
	generator   InvoiceGenerator
	finalizer   InvoiceFinalizer
	currency    string
	tolerance   time.Duration
	logger      *logrus.Entry
	now         func() time.Time
}

func NewOrchestrator(subscribers repository.SubscriberRepository, generator InvoiceGenerator, finalizer InvoiceFinalizer, currency string, tolerance time.Duration) *Orchestrator {
	return &Orchestrator{
		subscribers: subscribers,
		generator:   generator,
		finalizer:   finalizer,
		currency:    currency,
		tolerance:   tolerance,
		logger:      logrus.WithField("component", "invoice_orchestrator"),
		now:         time.Now,
	}
}

func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Run processes every active subscriber. Only a failure to list
// subscribers is returned as an error.
func (o *Orchestrator) Run(ctx context.Context) (*models.RunReport, error) {
	report := o.newReport()
	logger := o.logger.WithField("run_id", report.RunId)

	subscribers, err := o.subscribers.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list active subscribers")
	}
	report.Eligible = len(subscribers)
	logger.WithField("eligible", report.Eligible).Info("starting invoice run")

	for _, subscriber := range subscribers {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "invoice run cancelled")
		}
		report.Add(o.process(ctx, subscriber, logger))
	}

	report.FinishedAt = o.now().UTC()
	logger.WithFields(logrus.Fields{
		"generated": report.Generated,
		"skipped":   report.Skipped,
		"errored":   report.Errored,
	}).Info("invoice run finished")
	return report, nil
}

// RunForUser is Run restricted to one subscriber, used by queue workers.
func (o *Orchestrator) RunForUser(ctx context.Context, userID int64) (*models.RunReport, error) {
	report := o.newReport()
	logger := o.logger.WithFields(logrus.Fields{"run_id": report.RunId, "user_id": userID})

	subscriber, err := o.subscribers.GetActive(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrSubscriberNotFound):
		report.Add(models.UserOutcome{
			UserId: userID,
			Status: models.OutcomeSkipped,
			Reason: ReasonSubscriptionEnded,
		})
	case err != nil:
		return nil, errors.Wrapf(err, "load subscriber %d", userID)
	default:
		report.Eligible = 1
		report.Add(o.process(ctx, *subscriber, logger))
	}

	report.FinishedAt = o.now().UTC()
	return report, nil
}

func (o *Orchestrator) newReport() *models.RunReport {
	return &models.RunReport{
		RunId:     uuid.NewString(),
		StartedAt: o.now().UTC(),
		Items:     []models.UserOutcome{},
	}
}

func (o *Orchestrator) process(ctx context.Context, subscriber models.Subscriber, logger *logrus.Entry) models.UserOutcome {
	outcome := models.UserOutcome{UserId: subscriber.Id}
	logger = logger.WithField("user_id", subscriber.Id)

	if !subscriber.Interval.Valid() {
		outcome.Status = models.OutcomeErrored
		outcome.Reason = ReasonInvalidInterval
		outcome.Error = "unknown billing interval " + string(subscriber.Interval)
		logger.Warn(outcome.Error)
		return outcome
	}
	if !subscriber.HasMandate() {
		outcome.Status = models.OutcomeSkipped
		outcome.Reason = ReasonMissingMandate
		return outcome
	}
	if subscriber.SubscriptionStartedAt.IsZero() {
		outcome.Status = models.OutcomeSkipped
		outcome.Reason = ReasonMissingStart
		logger.Warn("active subscriber has no subscription start date")
		return outcome
	}

	period, ok := LastEndedPeriod(subscriber.Interval, subscriber.SubscriptionStartedAt, o.now().Add(o.tolerance))
	if !ok {
		outcome.Status = models.OutcomeSkipped
		outcome.Reason = ReasonPeriodNotEnded
		return outcome
	}
	outcome.PeriodStart = period.Start.Format(models.DateFormat)
	outcome.PeriodEnd = period.End.Format(models.DateFormat)

	result, err := o.generator.Generate(ctx, GenerateRequest{
		UserID:   subscriber.Id,
		Period:   period,
		Interval: subscriber.Interval,
		Currency: o.currency,
	})
	if err != nil {
		logger.WithError(err).Error("could not generate invoice")
		outcome.Status = models.OutcomeErrored
		outcome.Reason = ReasonFor(err, ReasonGenerateFailed)
		outcome.Error = err.Error()
		return outcome
	}
	outcome.InvoiceId = result.InvoiceID
	outcome.InvoiceNumber = result.InvoiceNumber
	outcome.Amount = result.TotalCharged
	outcome.Attached = result.AttachedCount

	status, err := o.finalizer.Finalize(ctx, subscriber, result.InvoiceID)
	if err != nil {
		logger.WithError(err).WithField("invoice_id", result.InvoiceID).Error("could not finalize invoice")
		outcome.Status = models.OutcomeErrored
		outcome.Reason = ReasonFor(err, ReasonFinalizeFailed)
		outcome.Error = err.Error()
		return outcome
	}
	if status == FinalizeAlreadySent {
		outcome.Status = models.OutcomeSkipped
		outcome.Reason = ReasonAlreadyEmailed
		return outcome
	}
	outcome.Status = models.OutcomeGenerated
	return outcome
}
