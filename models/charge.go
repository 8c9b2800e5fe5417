package models

import "time"

type ChargeStatus string

const (
	ChargePending ChargeStatus = "pending"
	ChargeBilled  ChargeStatus = "billed"
)

type ChargeType string

const (
	ChargeSubscriptionFee ChargeType = "subscription_fee"
	ChargeForwardingFee   ChargeType = "forwarding_fee"
)

// Related types used for charge deduplication.
const (
	RelatedSubscriptionPeriod = "subscription_period"
	RelatedForwardingRequest  = "forwarding_request"
)

// Charge is a single billable ledger entry. InvoiceID and BilledAt are set
// together when the charge is claimed by an invoice and cleared together by
// orphan repair.
type Charge struct {
	Id          int64
	UserId      int64
	Amount      int64
	Currency    string
	Type        ChargeType
	Description string
	ServiceDate time.Time
	Status      ChargeStatus
	InvoiceId   *int64
	BilledAt    *time.Time
	RelatedType string
	RelatedId   int64
	CreatedAt   time.Time
}

// HasRelation reports whether the charge carries a deduplication pair.
func (c *Charge) HasRelation() bool {
	return c.RelatedType != ""
}
