package models

const (
	TaskInvoice = "invoice"
	TaskRepair  = "repair"
)

// BillingTask is the queue payload published by the distributor.
type BillingTask struct {
	UserID      int64  `json:"user_id"`
	BillingType string `json:"billing_type"`
	RunID       string `json:"run_id"`
}
