package repository

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"mailroom.app/billing/models"
)

const subscriberColumns = "id, email, COALESCE(first_name, ''), billing_interval, subscription_started_at, COALESCE(mandate_id, ''), COALESCE(stripe_customer_id, '')"

const (
	listActiveSubscribersQuery = "SELECT " + subscriberColumns + " FROM users WHERE subscription_status = 'active' ORDER BY id"

	getActiveSubscriberQuery = "SELECT " + subscriberColumns + " FROM users WHERE id = ? AND subscription_status = 'active'"
)

type SubscriberRepository interface {
	ListActive(ctx context.Context) ([]models.Subscriber, error)
	GetActive(ctx context.Context, userID int64) (*models.Subscriber, error)
}

type SubscriberService struct {
	db DBTX
}

func NewSubscriberService(db DBTX) *SubscriberService {
	return &SubscriberService{
		db: db,
	}
}

func scanSubscriber(row rowScanner) (*models.Subscriber, error) {
	var (
		sub       models.Subscriber
		interval  string
		startedAt timeColumn
	)
	err := row.Scan(
		&sub.Id,
		&sub.Email,
		&sub.FirstName,
		&interval,
		&startedAt,
		&sub.MandateId,
		&sub.StripeCustomerId,
	)
	if err != nil {
		return nil, err
	}
	sub.Interval = models.BillingInterval(interval)
	sub.SubscriptionStartedAt = startedAt.Time
	return &sub, nil
}

func (ss *SubscriberService) ListActive(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := ss.db.QueryContext(ctx, listActiveSubscribersQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list active subscribers")
	}
	defer rows.Close()

	var subscribers []models.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan subscriber")
		}
		subscribers = append(subscribers, *sub)
	}
	return subscribers, errors.Wrap(rows.Err(), "iterate subscribers")
}

func (ss *SubscriberService) GetActive(ctx context.Context, userID int64) (*models.Subscriber, error) {
	sub, err := scanSubscriber(ss.db.QueryRowContext(ctx, getActiveSubscriberQuery, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrSubscriberNotFound, "user %d", userID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "get subscriber")
	}
	return sub, nil
}
