package models

import (
	"fmt"
	"time"
)

// DateFormat is the layout used for DATE columns.
const DateFormat = "2006-01-02"

type BillingInterval string

const (
	IntervalMonth BillingInterval = "month"
	IntervalYear  BillingInterval = "year"
)

func (bi BillingInterval) Valid() bool {
	return bi == IntervalMonth || bi == IntervalYear
}

// Period is an inclusive range of calendar dates.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Valid() bool {
	return !p.Start.IsZero() && p.Start.Before(p.End)
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format(DateFormat), p.End.Format(DateFormat))
}

// Subscriber is an active subscription holder as read from the users table.
type Subscriber struct {
	Id                    int64
	Email                 string
	FirstName             string
	Interval              BillingInterval
	SubscriptionStartedAt time.Time
	MandateId             string
	StripeCustomerId      string
}

func (s *Subscriber) HasMandate() bool {
	return s.MandateId != ""
}

// ServicePlan is a price for one billing cadence.
type ServicePlan struct {
	Id         int64
	Interval   BillingInterval
	PricePence int64
}
