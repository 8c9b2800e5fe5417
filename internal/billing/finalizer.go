package billing

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
	"mailroom.app/billing/repository"
	"mailroom.app/billing/utils"
)

type FinalizeStatus string

const (
	FinalizeSent        FinalizeStatus = "sent"
	FinalizeAlreadySent FinalizeStatus = "already_emailed"
)

// DocumentGenerator renders an invoice document and stores it somewhere the
// customer can retrieve it from.
type DocumentGenerator interface {
	Generate(ctx context.Context, doc models.InvoiceDocument) (*models.GeneratedDocument, error)
}

type InvoiceMailer interface {
	SendInvoice(ctx context.Context, email models.InvoiceEmail, attachment *models.GeneratedDocument) error
}

// Finalizer hands a committed invoice to the document and email
// collaborators exactly once. Its failures never touch invoice amounts or
// charges.
type Finalizer struct {
	db        *sql.DB
	documents DocumentGenerator
	mailer    InvoiceMailer
	logger    *logrus.Entry
	now       func() time.Time
}

func NewFinalizer(db *sql.DB, documents DocumentGenerator, mailer InvoiceMailer) *Finalizer {
	return &Finalizer{
		db:        db,
		documents: documents,
		mailer:    mailer,
		logger:    logrus.WithField("component", "invoice_finalizer"),
		now:       time.Now,
	}
}

func (f *Finalizer) WithClock(now func() time.Time) *Finalizer {
	f.now = now
	return f
}

func (f *Finalizer) Finalize(ctx context.Context, subscriber models.Subscriber, invoiceID int64) (FinalizeStatus, error) {
	logger := f.logger.WithFields(logrus.Fields{
		"user_id":    subscriber.Id,
		"invoice_id": invoiceID,
	})
	invoices := repository.NewInvoiceService(f.db)

	inv, err := invoices.Get(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	if inv.EmailSentAt != nil {
		logger.Info("invoice already emailed")
		return FinalizeAlreadySent, nil
	}

	doc, err := f.buildDocument(ctx, inv)
	if err != nil {
		return "", err
	}

	generated, err := f.documents.Generate(ctx, *doc)
	if err != nil {
		return "", errors.Wrap(err, "generate invoice document")
	}
	if err := invoices.SetDocumentPath(ctx, inv.Id, generated.Path); err != nil {
		return "", err
	}

	email := models.InvoiceEmail{
		To:        subscriber.Email,
		FirstName: subscriber.FirstName,
		Subject:   fmt.Sprintf("Your Mailroom invoice %s", inv.Number),
		Document:  *doc,
		Args: map[string]string{
			"invoice_number": inv.Number,
			"amount":         utils.FormatPence(inv.Amount, inv.Currency),
			"period_start":   doc.PeriodStart,
			"period_end":     doc.PeriodEnd,
		},
	}
	if err := f.mailer.SendInvoice(ctx, email, generated); err != nil {
		if recordErr := invoices.RecordEmailError(ctx, inv.Id, err.Error()); recordErr != nil {
			logger.WithError(recordErr).Error("could not record invoice email error")
		}
		return "", errors.Wrap(err, "send invoice email")
	}

	marked, err := invoices.MarkEmailSent(ctx, inv.Id, f.now(), inv.Amount)
	if err != nil {
		return "", err
	}
	if !marked {
		return f.unmarked(ctx, invoices, inv, logger)
	}
	logger.WithField("document_path", generated.Path).Info("invoice emailed")
	return FinalizeSent, nil
}

// unmarked explains a marker update that matched no row: either another run
// emailed the invoice first, or a concurrent run attached charges after the
// document was built. The invoice then stays unfrozen so the next run sends
// the corrected total.
func (f *Finalizer) unmarked(ctx context.Context, invoices *repository.InvoiceService, sent *models.Invoice, logger *logrus.Entry) (FinalizeStatus, error) {
	current, err := invoices.Get(ctx, sent.Id)
	if err != nil {
		return "", err
	}
	if current.EmailSentAt != nil {
		logger.Warn("invoice email marker was set by another run")
		return FinalizeAlreadySent, nil
	}
	err = errors.Wrapf(ErrInvoiceAmountChanged, "invoice %d: emailed %d, now %d", sent.Id, sent.Amount, current.Amount)
	if recordErr := invoices.RecordEmailError(ctx, sent.Id, err.Error()); recordErr != nil {
		logger.WithError(recordErr).Error("could not record invoice email error")
	}
	logger.WithError(err).Warn("invoice changed during finalization, it will be emailed again")
	return "", err
}

// buildDocument assembles the document from the billed lines, refusing to
// hand off a document whose lines disagree with the invoice amount.
func (f *Finalizer) buildDocument(ctx context.Context, inv *models.Invoice) (*models.InvoiceDocument, error) {
	charges, err := repository.NewChargeService(f.db).ListBilled(ctx, inv.Id)
	if err != nil {
		return nil, err
	}

	period := inv.Period()
	doc := &models.InvoiceDocument{
		InvoiceId:     inv.Id,
		InvoiceNumber: inv.Number,
		UserId:        inv.UserId,
		Amount:        inv.Amount,
		Currency:      inv.Currency,
		PeriodStart:   period.Start.Format(models.DateFormat),
		PeriodEnd:     period.End.Format(models.DateFormat),
		Lines:         []models.InvoiceLine{},
	}
	var sum int64
	for _, charge := range charges {
		sum += charge.Amount
		doc.Lines = append(doc.Lines, models.InvoiceLine{
			ChargeId:    charge.Id,
			Type:        charge.Type,
			Description: charge.Description,
			Amount:      charge.Amount,
			ServiceDate: charge.ServiceDate.Format(models.DateFormat),
		})
	}
	if sum != inv.Amount {
		return nil, errors.Wrapf(ErrDocumentAmountMismatch, "invoice %d: lines %d, amount %d", inv.Id, sum, inv.Amount)
	}
	return doc, nil
}
