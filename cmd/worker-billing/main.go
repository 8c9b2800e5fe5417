package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	helpers "github.com/Lineblocs/go-helpers"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/cmd"
	"mailroom.app/billing/internal/billing"
	"mailroom.app/billing/internal/queue"
	"mailroom.app/billing/utils"
)

func main() {
	logDestination := utils.Config("LOG_DESTINATIONS")
	helpers.InitLogrus(logDestination)
	logger := logrus.WithField("component", "billing_worker")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stack, err := cmd.Bootstrap(ctx)
	if err != nil {
		logger.WithError(err).Fatal("could not start billing pipeline")
	}

	processor := billing.NewTaskProcessor(stack.Orchestrator, stack.Billing)

	logger.Info("worker ready, waiting for tasks")
	if err := queue.Consume(ctx, stack.Config.QueueURL, queue.BillingQueue, processor.ProcessTask); err != nil {
		logger.WithError(err).Fatal("consumer stopped")
	}
}
