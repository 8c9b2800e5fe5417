package billing

import (
	"context"

	"mailroom.app/billing/models"
)

// PaymentCollector takes payment for an issued invoice against the
// subscriber's stored mandate and returns the external payment reference.
type PaymentCollector interface {
	Collect(ctx context.Context, subscriber models.Subscriber, invoice models.Invoice) (string, error)
}
