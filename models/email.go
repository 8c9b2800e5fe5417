package models

// InvoiceEmail is the message handed to the mailer for a finalized invoice.
type InvoiceEmail struct {
	To        string            `json:"to"`
	FirstName string            `json:"first_name"`
	Subject   string            `json:"subject"`
	Document  InvoiceDocument   `json:"document"`
	Args      map[string]string `json:"args"`
}
