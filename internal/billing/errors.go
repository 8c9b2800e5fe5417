package billing

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reasons reported per user in run reports and carried by precondition
// failures.
const (
	ReasonInvalidUser       = "invalid_user"
	ReasonInvalidPeriod     = "invalid_period"
	ReasonInvalidInterval   = "invalid_interval"
	ReasonInvalidCurrency   = "invalid_currency"
	ReasonInvalidAmount     = "invalid_amount"
	ReasonPeriodNotEnded    = "period_not_ended_yet"
	ReasonMissingMandate    = "missing_mandate"
	ReasonMissingStart      = "missing_subscription_start"
	ReasonAlreadyEmailed    = "already_emailed"
	ReasonSubscriptionEnded = "subscription_inactive"
	ReasonGenerateFailed    = "generate_failed"
	ReasonFinalizeFailed    = "finalize_failed"
	ReasonDocumentMismatch  = "document_amount_mismatch"
	ReasonAmountChanged     = "invoice_amount_changed"
)

var (
	ErrDocumentAmountMismatch = errors.New("invoice lines do not add up to the invoice amount")
	ErrInvoiceAmountChanged   = errors.New("invoice amount changed while it was being emailed")
)

// PreconditionError is returned before any database mutation when the
// arguments of an operation are invalid.
type PreconditionError struct {
	Reason string
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func preconditionf(reason string, format string, args ...any) error {
	return &PreconditionError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// ReasonFor maps an error to the reason reported for it, using fallback for
// anything that is not a precondition failure.
func ReasonFor(err error, fallback string) string {
	var precondition *PreconditionError
	if errors.As(err, &precondition) {
		return precondition.Reason
	}
	if errors.Is(err, ErrDocumentAmountMismatch) {
		return ReasonDocumentMismatch
	}
	if errors.Is(err, ErrInvoiceAmountChanged) {
		return ReasonAmountChanged
	}
	return fallback
}
