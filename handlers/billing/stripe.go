package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
	"mailroom.app/billing/models"
)

type StripeBillingHandler struct {
	client paymentintent.Client
	domain string
	logger *logrus.Entry
}

// NewStripeBillingHandler retries failed network calls to stripe up to
// retryAttempts times.
func NewStripeBillingHandler(stripeKey string, domain string, retryAttempts int) *StripeBillingHandler {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(int64(retryAttempts)),
	})
	return NewStripeBillingHandlerWithBackend(backend, stripeKey, domain)
}

func NewStripeBillingHandlerWithBackend(backend stripe.Backend, stripeKey string, domain string) *StripeBillingHandler {
	return &StripeBillingHandler{
		client: paymentintent.Client{B: backend, Key: stripeKey},
		domain: domain,
		logger: logrus.WithField("component", "stripe_collector"),
	}
}

// Collect confirms an off-session PaymentIntent against the mandate. The
// invoice id is the idempotency key so a retried collection never charges
// twice.
func (hndl *StripeBillingHandler) Collect(ctx context.Context, subscriber models.Subscriber, invoice models.Invoice) (string, error) {
	if invoice.Amount <= 0 {
		return "", errors.Errorf("invoice %d has nothing to collect", invoice.Id)
	}
	if !subscriber.HasMandate() || subscriber.StripeCustomerId == "" {
		return "", errors.Errorf("user %d has no stripe mandate", subscriber.Id)
	}

	params := &stripe.PaymentIntentParams{
		Amount:              stripe.Int64(invoice.Amount),
		Currency:            stripe.String(strings.ToLower(invoice.Currency)),
		Customer:            stripe.String(subscriber.StripeCustomerId),
		PaymentMethod:       stripe.String(subscriber.MandateId),
		OffSession:          stripe.Bool(true),
		Confirm:             stripe.Bool(true),
		Description:         stripe.String(fmt.Sprintf("Invoice %s", invoice.Number)),
		StatementDescriptor: stripe.String(descriptor(hndl.domain)),
	}
	params.Context = ctx
	params.SetIdempotencyKey(fmt.Sprintf("invoice-%d", invoice.Id))
	params.AddMetadata("invoice_id", strconv.FormatInt(invoice.Id, 10))
	params.AddMetadata("invoice_number", invoice.Number)

	intent, err := hndl.client.New(params)
	if err != nil {
		return "", errors.Wrapf(err, "create payment intent for invoice %d", invoice.Id)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
		hndl.logger.WithFields(logrus.Fields{
			"invoice_id":     invoice.Id,
			"payment_intent": intent.ID,
			"status":         intent.Status,
		}).Info("invoice payment collected")
		return intent.ID, nil
	default:
		return "", errors.Errorf("payment intent %s for invoice %d is %s", intent.ID, invoice.Id, intent.Status)
	}
}

// descriptor keeps the statement descriptor inside stripe's 22 character
// limit.
func descriptor(domain string) string {
	d := strings.ToUpper(domain)
	if d == "" {
		d = "MAILROOM"
	}
	if len(d) > 22 {
		d = d[:22]
	}
	return d
}
