package billing

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
)

type UserRunner interface {
	RunForUser(ctx context.Context, userID int64) (*models.RunReport, error)
}

type OrphanRepairer interface {
	RepairOrphans(ctx context.Context) (*models.RepairReport, error)
}

// TaskProcessor executes queued billing tasks. An error means the task
// should be retried; per-user failures are reported and left to the next
// scheduled run.
type TaskProcessor struct {
	runner   UserRunner
	repairer OrphanRepairer
	logger   *logrus.Entry
}

func NewTaskProcessor(runner UserRunner, repairer OrphanRepairer) *TaskProcessor {
	return &TaskProcessor{
		runner:   runner,
		repairer: repairer,
		logger:   logrus.WithField("component", "task_processor"),
	}
}

// ProcessTask routes to the correct job based on the task type.
func (p *TaskProcessor) ProcessTask(ctx context.Context, task models.BillingTask) error {
	logger := p.logger.WithFields(logrus.Fields{
		"task_type": task.BillingType,
		"run_id":    task.RunID,
	})

	switch task.BillingType {
	case models.TaskRepair:
		report, err := p.repairer.RepairOrphans(ctx)
		if err != nil {
			return errors.Wrap(err, "repair orphans task")
		}
		logger.WithField("repaired", report.Repaired).Info("repair task processed")
		return nil
	case models.TaskInvoice, "":
		if task.UserID <= 0 {
			logger.Warnf("dropping invoice task with invalid user id %d", task.UserID)
			return nil
		}
		report, err := p.runner.RunForUser(ctx, task.UserID)
		if err != nil {
			return errors.Wrapf(err, "invoice task for user %d", task.UserID)
		}
		for _, item := range report.Items {
			logger.WithFields(logrus.Fields{
				"user_id": item.UserId,
				"status":  item.Status,
				"reason":  item.Reason,
			}).Info("invoice task processed")
		}
		return nil
	default:
		logger.Warn("dropping task with unknown type")
		return nil
	}
}
