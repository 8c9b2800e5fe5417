package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
)

const (
	BillingQueue = "billing_tasks"

	confirmTimeout = 5 * time.Second
)

// confirmChannel is the part of *amqp.Channel the publisher uses.
type confirmChannel interface {
	GetNextPublishSeqNo() uint64
	PublishWithContext(ctx context.Context, exchange string, key string, mandatory bool, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher publishes billing tasks on a durable queue with publisher
// confirms enabled.
type Publisher struct {
	conn     *amqp.Connection
	ch       confirmChannel
	confirms chan amqp.Confirmation
	queue    string
	timeout  time.Duration
}

func NewPublisher(url string, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "rabbitmq connection failed")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "open rabbitmq channel")
	}
	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "enable rabbitmq confirms")
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "declare queue %s", queue)
	}
	return &Publisher{
		conn:     conn,
		ch:       ch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		queue:    queue,
		timeout:  confirmTimeout,
	}, nil
}

// Publish blocks until the broker confirms the message. Confirms are
// matched on delivery tag, so a late confirm for an earlier publish that
// timed out is discarded instead of being taken for this one.
func (p *Publisher) Publish(ctx context.Context, task models.BillingTask) error {
	body, err := encodeTask(task)
	if err != nil {
		return err
	}
	tag := p.ch.GetNextPublishSeqNo()
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		return errors.Wrap(err, "publish billing task")
	}

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()
	for {
		select {
		case confirmed, ok := <-p.confirms:
			if !ok {
				return errors.New("rabbitmq channel closed before confirm")
			}
			if confirmed.DeliveryTag < tag {
				logrus.WithField("delivery_tag", confirmed.DeliveryTag).Warn("discarding late rabbitmq confirm")
				continue
			}
			if !confirmed.Ack {
				return errors.Errorf("rabbitmq nack for delivery %d", confirmed.DeliveryTag)
			}
			return nil
		case <-timer.C:
			return errors.Errorf("timeout waiting for rabbitmq ack of delivery %d", tag)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

type TaskHandler func(ctx context.Context, task models.BillingTask) error

// Consume processes tasks one at a time until ctx is cancelled or the
// delivery channel closes.
func Consume(ctx context.Context, url string, queue string, handler TaskHandler) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return errors.Wrap(err, "rabbitmq connection failed")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "open rabbitmq channel")
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return errors.Wrapf(err, "declare queue %s", queue)
	}
	// Prefetch 1 keeps a slow task from holding back the others.
	if err := ch.Qos(1, 0, false); err != nil {
		return errors.Wrap(err, "set qos")
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrapf(err, "consume %s", queue)
	}

	logrus.WithField("queue", queue).Info("worker ready, waiting for tasks")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			handleDelivery(ctx, d, handler)
		}
	}
}

func handleDelivery(ctx context.Context, d amqp.Delivery, handler TaskHandler) {
	logger := logrus.WithField("delivery_tag", d.DeliveryTag)

	task, err := decodeTask(d.Body)
	if err != nil {
		logger.WithError(err).Error("dropping malformed task")
		_ = d.Nack(false, false)
		return
	}
	logger = logger.WithFields(logrus.Fields{"user_id": task.UserID, "task_type": task.BillingType})

	if err := handler(ctx, task); err != nil {
		logger.WithError(err).Error("task failed, requeueing")
		_ = d.Nack(false, true)
		return
	}
	if err := d.Ack(false); err != nil {
		logger.WithError(err).Warn("ack failed")
	}
}

func encodeTask(task models.BillingTask) ([]byte, error) {
	body, err := json.Marshal(task)
	return body, errors.Wrap(err, "encode billing task")
}

func decodeTask(body []byte) (models.BillingTask, error) {
	var task models.BillingTask
	err := json.Unmarshal(body, &task)
	return task, errors.Wrap(err, "decode billing task")
}
