package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	helpers "github.com/Lineblocs/go-helpers"
	"github.com/sirupsen/logrus"
	cmd "mailroom.app/billing/cmd"
	billinghandler "mailroom.app/billing/handlers/billing"
	"mailroom.app/billing/internal/api"
	"mailroom.app/billing/utils"
)

func main() {
	logDestination := utils.Config("LOG_DESTINATIONS")
	helpers.InitLogrus(logDestination)

	args := os.Args[1:]
	if len(args) == 0 {
		helpers.Log(logrus.InfoLevel, "Please provide command")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, args[0]); err != nil {
		helpers.Log(logrus.ErrorLevel, err.Error())
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	stack, err := cmd.Bootstrap(ctx)
	if err != nil {
		return err
	}

	switch command {
	case "generate_invoices":
		helpers.Log(logrus.InfoLevel, "generating invoices for ended periods")
		_, err = cmd.NewGenerateInvoicesJob(stack.Orchestrator).GenerateInvoices(ctx)
	case "repair_orphans":
		helpers.Log(logrus.InfoLevel, "repairing orphaned charges")
		_, err = cmd.NewRepairOrphansJob(stack.Billing).RepairOrphans(ctx)
	case "reconcile_invoices":
		helpers.Log(logrus.InfoLevel, "reconciling invoice amounts")
		_, err = cmd.NewReconcileInvoicesJob(stack.Billing).ReconcileInvoices(ctx)
	case "collect_payments":
		helpers.Log(logrus.InfoLevel, "collecting payments for emailed invoices")
		collector := billinghandler.NewStripeBillingHandler(stack.Config.StripePrivateKey, stack.Config.DeploymentDomain, stack.Config.PaymentRetries)
		_, err = cmd.NewCollectPaymentsJob(stack.DB, stack.Subscribers, collector).CollectPayments(ctx)
	case "serve":
		helpers.Log(logrus.InfoLevel, "starting billing trigger server on "+stack.Config.HTTPAddr)
		err = api.NewServer(stack.Orchestrator, stack.Billing, stack.Config.TriggerSecret).Run(ctx, stack.Config.HTTPAddr)
	default:
		helpers.Log(logrus.InfoLevel, "unknown command "+command)
	}
	return err
}
