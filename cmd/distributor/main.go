package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	helpers "github.com/Lineblocs/go-helpers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/internal/queue"
	"mailroom.app/billing/internal/schedule"
	"mailroom.app/billing/repository"
	"mailroom.app/billing/utils"
)

const runTimeout = 2 * time.Hour

func main() {
	logDestination := utils.Config("LOG_DESTINATIONS")
	helpers.InitLogrus(logDestination)
	logger := logrus.WithField("component", "distributor")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := utils.LoadBillingConfig()

	rdb, err := schedule.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to redis")
	}
	defer rdb.Close()

	db, err := utils.GetDBConnection()
	if err != nil {
		logger.WithError(err).Fatal("could not connect to database")
	}

	publisher, err := queue.NewPublisher(cfg.QueueURL, queue.BillingQueue)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to rabbitmq")
	}
	defer publisher.Close()

	distributor := schedule.NewDistributor(repository.NewSubscriberService(db), publisher, schedule.NewRunLock(rdb))

	c := cron.New()
	_, err = c.AddFunc(schedule.InvoiceSpec, func() {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		count, err := distributor.DistributeInvoices(runCtx)
		if err != nil {
			logger.WithError(err).Error("invoice distribution failed")
			return
		}
		logger.WithField("queued", count).Info("invoice distribution finished")
	})
	if err != nil {
		logger.WithError(err).Fatal("invalid invoice schedule")
	}
	_, err = c.AddFunc(schedule.RepairSpec, func() {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()
		if _, err := distributor.DistributeRepair(runCtx); err != nil {
			logger.WithError(err).Error("repair distribution failed")
		}
	})
	if err != nil {
		logger.WithError(err).Fatal("invalid repair schedule")
	}

	logger.Info("billing task distributor started")
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("billing task distributor stopped")
}
