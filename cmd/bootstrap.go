package cmd

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"mailroom.app/billing/handlers/email"
	"mailroom.app/billing/internal/billing"
	"mailroom.app/billing/internal/storage"
	"mailroom.app/billing/repository"
	"mailroom.app/billing/utils"
)

// Stack holds the wired billing pipeline shared by every command.
type Stack struct {
	Config       *utils.BillingConfig
	DB           *sql.DB
	Schema       *repository.SchemaState
	Subscribers  *repository.SubscriberService
	Billing      *billing.BillingService
	Finalizer    *billing.Finalizer
	Orchestrator *billing.Orchestrator
}

func Bootstrap(ctx context.Context) (*Stack, error) {
	cfg := utils.LoadBillingConfig()

	db, err := utils.GetDBConnection()
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}

	schema, err := repository.InspectSchema(ctx, db, cfg.Environment)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	svc := billing.NewBillingService(db, schema, repository.NewPlanPricing(db))

	documents, err := storage.NewDocumentService(cfg.Settings(), cfg.RendererURL)
	if err != nil {
		return nil, errors.Wrap(err, "create document service")
	}
	mailer := email.NewMailgunMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	finalizer := billing.NewFinalizer(db, documents, mailer)

	subscribers := repository.NewSubscriberService(db)
	orchestrator := billing.NewOrchestrator(subscribers, svc, finalizer, cfg.Currency, cfg.PeriodTolerance)

	return &Stack{
		Config:       cfg,
		DB:           db,
		Schema:       schema,
		Subscribers:  subscribers,
		Billing:      svc,
		Finalizer:    finalizer,
		Orchestrator: orchestrator,
	}, nil
}
