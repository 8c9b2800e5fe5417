package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"mailroom.app/billing/internal/billing"
	"mailroom.app/billing/models"
)

type RepairOrphansJob struct {
	repairer billing.OrphanRepairer
	logger   *logrus.Entry
}

func NewRepairOrphansJob(repairer billing.OrphanRepairer) *RepairOrphansJob {
	return &RepairOrphansJob{
		repairer: repairer,
		logger:   logrus.WithField("component", "repair_orphans"),
	}
}

func (j *RepairOrphansJob) RepairOrphans(ctx context.Context) (*models.RepairReport, error) {
	report, err := j.repairer.RepairOrphans(ctx)
	if err != nil {
		j.logger.WithError(err).Error("orphan repair failed")
		return nil, err
	}
	j.logger.WithField("repaired", report.Repaired).Info("orphan repair finished")
	return report, nil
}
