package billing

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
	"mailroom.app/billing/repository"
)

// RepairOrphans returns charges left billed without an invoice to pending so
// the next generator run can attach them. Correctly billed charges are not
// touched.
func (s *BillingService) RepairOrphans(ctx context.Context) (*models.RepairReport, error) {
	logger := s.logger.WithField("job", "repair_orphans")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin repair transaction")
	}
	charges := repository.NewChargeService(tx)

	ids, err := charges.ListOrphans(ctx)
	if err != nil {
		rollback(tx, logger)
		if s.tolerateMissingTable(err) {
			logger.WithError(err).Warn("charge table missing, nothing to repair")
			return &models.RepairReport{}, nil
		}
		return nil, err
	}
	if len(ids) == 0 {
		rollback(tx, logger)
		return &models.RepairReport{}, nil
	}

	repaired, err := charges.ResetOrphans(ctx)
	if err != nil {
		rollback(tx, logger)
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit repair transaction")
	}

	logger.WithFields(logrus.Fields{
		"repaired":   repaired,
		"charge_ids": ids,
	}).Warn("orphan charges returned to pending")
	return &models.RepairReport{Repaired: repaired, ChargeIds: ids}, nil
}
