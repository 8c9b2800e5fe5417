package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/models"
)

const sendTimeout = 30 * time.Second

// MailgunMailer delivers invoice emails with the rendered PDF attached.
type MailgunMailer struct {
	client mailgun.Mailgun
	sender string
	logger *logrus.Entry
}

func NewMailgunMailer(domain string, apiKey string, sender string) *MailgunMailer {
	return NewMailgunMailerWithClient(mailgun.NewMailgun(domain, apiKey), sender)
}

func NewMailgunMailerWithClient(client mailgun.Mailgun, sender string) *MailgunMailer {
	return &MailgunMailer{
		client: client,
		sender: sender,
		logger: logrus.WithField("component", "mailgun_mailer"),
	}
}

func (m *MailgunMailer) SendInvoice(ctx context.Context, email models.InvoiceEmail, attachment *models.GeneratedDocument) error {
	if email.To == "" {
		return errors.Errorf("invoice %s has no recipient", email.Document.InvoiceNumber)
	}

	message := m.client.NewMessage(m.sender, email.Subject, invoiceText(email), email.To)
	message.AddTag("invoice")
	if attachment != nil && len(attachment.Content) > 0 {
		message.AddBufferAttachment(attachment.Filename, attachment.Content)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, id, err := m.client.Send(ctx, message)
	if err != nil {
		return errors.Wrap(err, "mailgun send")
	}
	m.logger.WithFields(logrus.Fields{
		"invoice_id": email.Document.InvoiceId,
		"message_id": id,
		"response":   resp,
	}).Info("invoice email accepted")
	return nil
}

func invoiceText(email models.InvoiceEmail) string {
	var b strings.Builder
	name := email.FirstName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Your invoice %s for %s to %s is attached.\n",
		email.Args["invoice_number"], email.Args["period_start"], email.Args["period_end"])
	fmt.Fprintf(&b, "Total due: %s\n\n", email.Args["amount"])
	for _, line := range email.Document.Lines {
		fmt.Fprintf(&b, "  %s  %s  %d\n", line.ServiceDate, line.Description, line.Amount)
	}
	b.WriteString("\nThe amount will be collected from your registered payment method.\n")
	return b.String()
}
