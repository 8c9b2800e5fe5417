package billing

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/internal/idempotency"
	"mailroom.app/billing/models"
	"mailroom.app/billing/repository"
)

// generateAttempts bounds retries of a generate transaction that lost a
// deadlock to a concurrent run for the same period.
const generateAttempts = 2

type GenerateRequest struct {
	UserID   int64
	Period   models.Period
	Interval models.BillingInterval
	Currency string
}

func (r GenerateRequest) Validate() error {
	if r.UserID <= 0 {
		return preconditionf(ReasonInvalidUser, "user id must be positive, got %d", r.UserID)
	}
	if !r.Period.Valid() {
		return preconditionf(ReasonInvalidPeriod, "period start must be before period end, got %s", r.Period)
	}
	if !r.Interval.Valid() {
		return preconditionf(ReasonInvalidInterval, "unknown billing interval %q", r.Interval)
	}
	if strings.TrimSpace(r.Currency) == "" {
		return preconditionf(ReasonInvalidCurrency, "currency is required")
	}
	return nil
}

type GenerateResult struct {
	InvoiceID     int64
	InvoiceNumber string
	AttachedCount int64
	TotalCharged  int64
	Created       bool
	Frozen        bool
}

// Generate makes sure exactly one invoice exists for the user and period,
// attaches every eligible pending charge unless the invoice is frozen and
// persists the recomputed total. All of it happens in one transaction.
func (s *BillingService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	price := s.pricing.PriceFor(ctx, req.Interval)
	if price <= 0 {
		return nil, preconditionf(ReasonInvalidAmount, "subscription price for %s must be positive, got %d", req.Interval, price)
	}

	logger := s.logger.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"period":  req.Period.String(),
	})

	var (
		result *GenerateResult
		err    error
	)
	for attempt := 1; attempt <= generateAttempts; attempt++ {
		result, err = s.generateOnce(ctx, req, price, logger)
		if !repository.IsDeadlock(err) || attempt == generateAttempts {
			break
		}
		logger.WithError(err).Warn("generate transaction lost a deadlock, retrying")
	}
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"invoice_id":     result.InvoiceID,
		"invoice_number": result.InvoiceNumber,
		"attached":       result.AttachedCount,
		"total":          result.TotalCharged,
		"created":        result.Created,
		"frozen":         result.Frozen,
	}).Info("invoice generated")
	return result, nil
}

// generateOnce runs one generate transaction. Two runs racing on a period
// with no invoice yet both hold the gap lock from FindForPeriod, so InnoDB
// usually aborts one of them with a deadlock rather than a duplicate key.
func (s *BillingService) generateOnce(ctx context.Context, req GenerateRequest, price int64, logger *logrus.Entry) (*GenerateResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin generate transaction")
	}
	result, err := s.generateTx(ctx, tx, req, price, logger)
	if err != nil {
		rollback(tx, logger)
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit generate transaction")
	}
	return result, nil
}

func (s *BillingService) generateTx(ctx context.Context, tx *sql.Tx, req GenerateRequest, price int64, logger *logrus.Entry) (*GenerateResult, error) {
	invoices := repository.NewInvoiceService(tx)
	charges := repository.NewChargeService(tx)
	now := s.now()

	inv, err := invoices.FindForPeriod(ctx, req.UserID, req.Period)
	if err != nil {
		return nil, err
	}
	frozen := inv != nil && inv.Frozen()

	if !frozen {
		if err := s.ensureSubscriptionFee(ctx, charges, req, price, now, logger); err != nil {
			return nil, err
		}
	}

	created := false
	if inv == nil {
		inv, created, err = s.createInvoice(ctx, tx, req, now, logger)
		if err != nil {
			return nil, err
		}
		frozen = inv.Frozen()
	}

	var attached int64
	if frozen {
		logger.WithField("invoice_id", inv.Id).Info("invoice is frozen, late charges roll forward")
	} else {
		attached, err = s.claimCharges(ctx, charges, req.UserID, inv.Id, req.Period.End, now, logger)
		if err != nil {
			return nil, err
		}
	}

	_, total, err := s.recomputeTx(ctx, tx, inv.Id, req.Currency, attached > 0, logger)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		InvoiceID:     inv.Id,
		InvoiceNumber: inv.Number,
		AttachedCount: attached,
		TotalCharged:  total,
		Created:       created,
		Frozen:        frozen,
	}, nil
}

func (s *BillingService) ensureSubscriptionFee(ctx context.Context, charges *repository.ChargeService, req GenerateRequest, price int64, now time.Time, logger *logrus.Entry) error {
	if !s.schema.ChargeTable || !s.schema.ChargeDedupe {
		logger.Warn("charge dedupe columns unavailable, subscription fee not ensured")
		return nil
	}
	key := idempotency.PeriodKey(req.UserID, req.Period.Start, req.Period.End)
	inserted, err := charges.Insert(ctx, &models.Charge{
		UserId:      req.UserID,
		Amount:      price,
		Currency:    req.Currency,
		Type:        models.ChargeSubscriptionFee,
		Description: fmt.Sprintf("Mailroom %sly subscription %s", req.Interval, req.Period),
		ServiceDate: req.Period.Start,
		RelatedType: models.RelatedSubscriptionPeriod,
		RelatedId:   key,
	}, now)
	if err != nil {
		if s.tolerateMissingTable(err) {
			logger.WithError(err).Warn("charge table missing, treating as zero charges")
			return nil
		}
		return errors.Wrap(err, "ensure subscription fee")
	}
	if inserted {
		logger.WithField("dedupe_key", key).Info("subscription fee charge created")
	}
	return nil
}

// createInvoice inserts the invoice row for the period. Losing a race on the
// period unique key returns the winner's row instead; under REPEATABLE READ
// the race more often surfaces as a deadlock, which Generate retries.
func (s *BillingService) createInvoice(ctx context.Context, tx *sql.Tx, req GenerateRequest, now time.Time, logger *logrus.Entry) (*models.Invoice, bool, error) {
	invoices := repository.NewInvoiceService(tx)
	year := now.Year()

	number, err := s.nextInvoiceNumber(ctx, tx, year, req, logger)
	if err != nil {
		return nil, false, err
	}
	inv := &models.Invoice{
		UserId:      req.UserID,
		Number:      number,
		Currency:    req.Currency,
		PeriodStart: req.Period.Start,
		PeriodEnd:   req.Period.End,
		Status:      models.InvoiceIssued,
		CreatedAt:   now,
	}
	id, err := invoices.Create(ctx, inv)
	if repository.IsDuplicateKey(err) {
		logger.Warn("invoice created concurrently, reusing it")
		winner, findErr := invoices.FindForPeriod(ctx, req.UserID, req.Period)
		if findErr != nil {
			return nil, false, findErr
		}
		if winner == nil {
			return nil, false, err
		}
		return winner, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	inv.Id = id
	logger.WithFields(logrus.Fields{"invoice_id": id, "invoice_number": number}).Info("invoice created")
	return inv, true, nil
}

func (s *BillingService) nextInvoiceNumber(ctx context.Context, tx *sql.Tx, year int, req GenerateRequest, logger *logrus.Entry) (string, error) {
	fallback := repository.FallbackInvoiceNumber(year, req.UserID, req.Period.Start)
	if !s.schema.SequenceTable {
		return fallback, nil
	}
	seq, err := repository.NewSequenceService(tx).Next(ctx, year)
	if err != nil {
		if s.tolerateMissingTable(err) {
			logger.WithError(err).Warn("invoice sequence table missing, using fallback number")
			return fallback, nil
		}
		return "", err
	}
	return repository.InvoiceNumber(year, seq), nil
}

func (s *BillingService) claimCharges(ctx context.Context, charges *repository.ChargeService, userID int64, invoiceID int64, periodEnd time.Time, now time.Time, logger *logrus.Entry) (int64, error) {
	if !s.schema.ChargeTable {
		return 0, nil
	}
	attached, err := charges.ClaimPending(ctx, userID, invoiceID, periodEnd, now)
	if err != nil {
		if s.tolerateMissingTable(err) {
			logger.WithError(err).Warn("charge table missing, treating as zero charges")
			return 0, nil
		}
		return 0, err
	}
	return attached, nil
}
