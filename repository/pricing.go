package repository

import (
	"context"
	"fmt"

	helpers "github.com/Lineblocs/go-helpers"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
)

const planPriceQuery = "SELECT price_pence FROM plans WHERE billing_interval = ? AND active = 1 ORDER BY id LIMIT 1"

// FallbackPrices are used when the plans table cannot be read.
var FallbackPrices = map[models.BillingInterval]int64{
	models.IntervalMonth: 999,
	models.IntervalYear:  9990,
}

type PricingRepository interface {
	PriceFor(ctx context.Context, interval models.BillingInterval) int64
}

type PlanPricing struct {
	db DBTX
}

func NewPlanPricing(db DBTX) *PlanPricing {
	return &PlanPricing{
		db: db,
	}
}

// PriceFor returns the subscription price in pence for the interval. Lookup
// failures fall back to FallbackPrices.
func (pp *PlanPricing) PriceFor(ctx context.Context, interval models.BillingInterval) int64 {
	var price int64
	err := pp.db.QueryRowContext(ctx, planPriceQuery, string(interval)).Scan(&price)
	if err != nil {
		fallback := FallbackPrices[interval]
		helpers.Log(logrus.WarnLevel, fmt.Sprintf("could not read plan price for %s, using fallback %d: %s", interval, fallback, err.Error()))
		return fallback
	}
	return price
}
