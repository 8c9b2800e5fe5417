package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mailroom.app/billing/internal/schedule"
	"mailroom.app/billing/mocks"
	"mailroom.app/billing/models"
)

func newLock(t *testing.T) (*schedule.RunLock, *miniredis.Miniredis) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return schedule.NewRunLock(client), server
}

func TestRunLock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lock, server := newLock(t)

	ok, err := lock.Acquire(ctx, "billing_run_lock:invoice:2025-02-01", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = lock.Acquire(ctx, "billing_run_lock:invoice:2025-02-01", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	server.FastForward(2 * time.Hour)
	ok, err = lock.Acquire(ctx, "billing_run_lock:invoice:2025-02-01", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, lock.Release(ctx, "billing_run_lock:invoice:2025-02-01"))
	assert.False(t, server.Exists("billing_run_lock:invoice:2025-02-01"))
}

func TestDistributor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 2, 1, 0, 15, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	active := []models.Subscriber{{Id: 1}, {Id: 2}, {Id: 3}}

	t.Run("Should queue one task per subscriber once per day", func(t *testing.T) {
		t.Parallel()

		lock, server := newLock(t)
		subscribers := mocks.NewSubscriberRepository(t)
		publisher := mocks.NewTaskPublisher(t)

		subscribers.EXPECT().ListActive(mock.Anything).Return(active, nil).Once()
		publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(task models.BillingTask) bool {
			return task.BillingType == models.TaskInvoice && task.RunID == "billing_run_lock:invoice:2025-02-01"
		})).Return(nil).Times(3)

		distributor := schedule.NewDistributor(subscribers, publisher, lock).WithClock(clock)
		count, err := distributor.DistributeInvoices(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.True(t, server.Exists("queued:invoice:2:2025-02-01"))

		count, err = distributor.DistributeInvoices(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("Should not queue a subscriber twice after the run lock expires", func(t *testing.T) {
		t.Parallel()

		lock, server := newLock(t)
		subscribers := mocks.NewSubscriberRepository(t)
		publisher := mocks.NewTaskPublisher(t)

		subscribers.EXPECT().ListActive(mock.Anything).Return(active, nil).Twice()
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Times(3)

		distributor := schedule.NewDistributor(subscribers, publisher, lock).WithClock(clock)
		_, err := distributor.DistributeInvoices(ctx)
		require.NoError(t, err)

		server.Del("billing_run_lock:invoice:2025-02-01")
		count, err := distributor.DistributeInvoices(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("Should release the dedupe key when publishing fails", func(t *testing.T) {
		t.Parallel()

		lock, server := newLock(t)
		subscribers := mocks.NewSubscriberRepository(t)
		publisher := mocks.NewTaskPublisher(t)

		subscribers.EXPECT().ListActive(mock.Anything).Return([]models.Subscriber{{Id: 1}, {Id: 2}}, nil)
		publisher.EXPECT().Publish(mock.Anything, models.BillingTask{UserID: 1, BillingType: models.TaskInvoice, RunID: "billing_run_lock:invoice:2025-02-01"}).Return(errors.New("channel closed"))
		publisher.EXPECT().Publish(mock.Anything, models.BillingTask{UserID: 2, BillingType: models.TaskInvoice, RunID: "billing_run_lock:invoice:2025-02-01"}).Return(nil)

		distributor := schedule.NewDistributor(subscribers, publisher, lock).WithClock(clock)
		count, err := distributor.DistributeInvoices(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.False(t, server.Exists("queued:invoice:1:2025-02-01"))
		assert.True(t, server.Exists("queued:invoice:2:2025-02-01"))
	})

	t.Run("Should fail when subscribers cannot be listed", func(t *testing.T) {
		t.Parallel()

		lock, _ := newLock(t)
		subscribers := mocks.NewSubscriberRepository(t)
		subscribers.EXPECT().ListActive(mock.Anything).Return(nil, errors.New("too many connections"))

		distributor := schedule.NewDistributor(subscribers, mocks.NewTaskPublisher(t), lock).WithClock(clock)
		_, err := distributor.DistributeInvoices(ctx)
		assert.Error(t, err)
	})

	t.Run("Should queue the weekly repair once", func(t *testing.T) {
		t.Parallel()

		lock, _ := newLock(t)
		publisher := mocks.NewTaskPublisher(t)
		publisher.EXPECT().Publish(mock.Anything, models.BillingTask{BillingType: models.TaskRepair, RunID: "billing_run_lock:repair:2025-W05"}).Return(nil).Once()

		distributor := schedule.NewDistributor(mocks.NewSubscriberRepository(t), publisher, lock).WithClock(clock)
		queued, err := distributor.DistributeRepair(ctx)
		require.NoError(t, err)
		assert.True(t, queued)

		queued, err = distributor.DistributeRepair(ctx)
		require.NoError(t, err)
		assert.False(t, queued)
	})
}
