package models

import "time"

type InvoiceStatus string

const (
	InvoiceIssued InvoiceStatus = "issued"
	InvoicePaid   InvoiceStatus = "paid"
)

// Invoice is one user's bill for one period. Amount is always derived from
// the billed charges attached to it.
type Invoice struct {
	Id                 int64
	UserId             int64
	Number             string
	Amount             int64
	Currency           string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	Status             InvoiceStatus
	CreatedAt          time.Time
	ExternalPaymentRef string
	DocumentPath       string
	EmailSentAt        *time.Time
	LastEmailError     string
}

// Frozen invoices no longer accept charges.
func (inv *Invoice) Frozen() bool {
	return inv.EmailSentAt != nil || inv.ExternalPaymentRef != ""
}

func (inv *Invoice) Period() Period {
	return Period{Start: inv.PeriodStart, End: inv.PeriodEnd}
}

// InvoiceLine is one billed charge as shown on the invoice document.
type InvoiceLine struct {
	ChargeId    int64      `json:"charge_id"`
	Type        ChargeType `json:"type"`
	Description string     `json:"description"`
	Amount      int64      `json:"amount"`
	ServiceDate string     `json:"service_date"`
}

// InvoiceDocument is handed to the document generator and the mailer.
type InvoiceDocument struct {
	InvoiceId     int64         `json:"invoice_id"`
	InvoiceNumber string        `json:"invoice_number"`
	UserId        int64         `json:"user_id"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	PeriodStart   string        `json:"period_start"`
	PeriodEnd     string        `json:"period_end"`
	Lines         []InvoiceLine `json:"lines"`
}

// GeneratedDocument is what the document generator hands back.
type GeneratedDocument struct {
	Path     string
	Filename string
	Content  []byte
}
