package models

import "time"

type OutcomeStatus string

const (
	OutcomeGenerated OutcomeStatus = "generated"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeErrored   OutcomeStatus = "errored"
)

// UserOutcome is the result of processing one subscriber during a run.
type UserOutcome struct {
	UserId        int64         `json:"user_id"`
	Status        OutcomeStatus `json:"status"`
	Reason        string        `json:"reason,omitempty"`
	Error         string        `json:"error,omitempty"`
	InvoiceId     int64         `json:"invoice_id,omitempty"`
	InvoiceNumber string        `json:"invoice_number,omitempty"`
	PeriodStart   string        `json:"period_start,omitempty"`
	PeriodEnd     string        `json:"period_end,omitempty"`
	Amount        int64         `json:"amount"`
	Attached      int64         `json:"attached"`
}

// RunReport aggregates the outcomes of one orchestration run.
type RunReport struct {
	RunId      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Eligible   int           `json:"eligible"`
	Generated  int           `json:"generated"`
	Skipped    int           `json:"skipped"`
	Errored    int           `json:"errored"`
	Items      []UserOutcome `json:"items"`
}

func (r *RunReport) Add(outcome UserOutcome) {
	switch outcome.Status {
	case OutcomeGenerated:
		r.Generated++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeErrored:
		r.Errored++
	}
	r.Items = append(r.Items, outcome)
}

type RepairReport struct {
	Repaired  int64   `json:"repaired"`
	ChargeIds []int64 `json:"charge_ids"`
}

type ReconcileReport struct {
	Checked    int     `json:"checked"`
	Mismatched int     `json:"mismatched"`
	InvoiceIds []int64 `json:"mismatched_invoice_ids"`
}

type CollectionReport struct {
	Attempted int `json:"attempted"`
	Collected int `json:"collected"`
	Failed    int `json:"failed"`
}
