package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
	"mailroom.app/billing/repository"
)

const (
	InvoiceSpec = "15 0 * * *"
	RepairSpec  = "0 3 * * 0"

	lockTTL   = 23 * time.Hour
	dedupeTTL = 36 * time.Hour
)

type TaskPublisher interface {
	Publish(ctx context.Context, task models.BillingTask) error
}

// Distributor fans scheduled billing work out to the queue, one task per
// active subscriber.
type Distributor struct {
	subscribers repository.SubscriberRepository
	publisher   TaskPublisher
	lock        *RunLock
	logger      *logrus.Entry
	now         func() time.Time
}

func NewDistributor(subscribers repository.SubscriberRepository, publisher TaskPublisher, lock *RunLock) *Distributor {
	return &Distributor{
		subscribers: subscribers,
		publisher:   publisher,
		lock:        lock,
		logger:      logrus.WithField("component", "billing_distributor"),
		now:         time.Now,
	}
}

func (d *Distributor) WithClock(now func() time.Time) *Distributor {
	d.now = now
	return d
}

// DistributeInvoices queues an invoice task for every active subscriber
// once per day. It returns the number of tasks queued.
func (d *Distributor) DistributeInvoices(ctx context.Context) (int, error) {
	day := d.now().UTC().Format(models.DateFormat)
	runID := fmt.Sprintf("billing_run_lock:%s:%s", models.TaskInvoice, day)
	logger := d.logger.WithField("run_id", runID)

	locked, err := d.lock.Acquire(ctx, runID, lockTTL)
	if err != nil {
		return 0, err
	}
	if !locked {
		logger.Info("lock held by another instance, skipping")
		return 0, nil
	}

	subscribers, err := d.subscribers.ListActive(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "list active subscribers")
	}

	count := 0
	for _, subscriber := range subscribers {
		// A subscriber is queued at most once per day even if the run lock
		// expires and the schedule fires again.
		dedupeKey := fmt.Sprintf("queued:%s:%d:%s", models.TaskInvoice, subscriber.Id, day)
		isNew, err := d.lock.Acquire(ctx, dedupeKey, dedupeTTL)
		if err != nil {
			return count, err
		}
		if !isNew {
			continue
		}

		task := models.BillingTask{UserID: subscriber.Id, BillingType: models.TaskInvoice, RunID: runID}
		if err := d.publisher.Publish(ctx, task); err != nil {
			if releaseErr := d.lock.Release(ctx, dedupeKey); releaseErr != nil {
				logger.WithError(releaseErr).Warn("could not release dedupe key")
			}
			logger.WithError(err).WithField("user_id", subscriber.Id).Error("publish failed")
			continue
		}
		count++
	}

	logger.WithField("queued", count).Info("distribution finished")
	return count, nil
}

// DistributeRepair queues one orphan repair task per ISO week.
func (d *Distributor) DistributeRepair(ctx context.Context) (bool, error) {
	year, week := d.now().UTC().ISOWeek()
	runID := fmt.Sprintf("billing_run_lock:%s:%d-W%02d", models.TaskRepair, year, week)

	locked, err := d.lock.Acquire(ctx, runID, lockTTL)
	if err != nil {
		return false, err
	}
	if !locked {
		d.logger.WithField("run_id", runID).Info("lock held by another instance, skipping")
		return false, nil
	}

	if err := d.publisher.Publish(ctx, models.BillingTask{BillingType: models.TaskRepair, RunID: runID}); err != nil {
		if releaseErr := d.lock.Release(ctx, runID); releaseErr != nil {
			d.logger.WithError(releaseErr).Warn("could not release run lock")
		}
		return false, errors.Wrap(err, "publish repair task")
	}
	return true, nil
}
