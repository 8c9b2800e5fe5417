package billing

import (
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"mailroom.app/billing/repository"
)

// BillingService owns the invoice/charge mutations of the pipeline. Every
// cross-run guarantee it gives is expressed as a conditional SQL write.
type BillingService struct {
	db      *sql.DB
	schema  *repository.SchemaState
	pricing repository.PricingRepository
	logger  *logrus.Entry
	now     func() time.Time
}

func NewBillingService(db *sql.DB, schema *repository.SchemaState, pricing repository.PricingRepository) *BillingService {
	return &BillingService{
		db:      db,
		schema:  schema,
		pricing: pricing,
		logger:  logrus.WithField("component", "billing_service"),
		now:     time.Now,
	}
}

// WithClock replaces the time source, mostly for tests.
func (s *BillingService) WithClock(now func() time.Time) *BillingService {
	s.now = now
	return s
}

// tolerateMissingTable reports whether err may be treated as "no rows" under
// the current schema state.
func (s *BillingService) tolerateMissingTable(err error) bool {
	return repository.IsMissingTable(err) && s.schema.AllowsDegraded()
}

func rollback(tx *sql.Tx, logger *logrus.Entry) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		logger.WithError(err).Error("could not roll back transaction")
	}
}
