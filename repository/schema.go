package repository

import (
	"context"
	"fmt"

	helpers "github.com/Lineblocs/go-helpers"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"mailroom.app/billing/utils"
)

const (
	schemaTablesQuery = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name IN ('charge', 'invoices', 'invoice_sequences')"

	schemaDedupeColumnsQuery = "SELECT COUNT(*) FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = 'charge' AND column_name IN ('related_type', 'related_id')"
)

// SchemaState records which parts of the billing schema exist. It is inspected
// once at startup; degraded paths are only taken outside production.
type SchemaState struct {
	Environment   string
	ChargeTable   bool
	InvoiceTable  bool
	SequenceTable bool
	ChargeDedupe  bool
}

// CompleteSchema is the state of a fully migrated database.
func CompleteSchema(env string) *SchemaState {
	return &SchemaState{
		Environment:   env,
		ChargeTable:   true,
		InvoiceTable:  true,
		SequenceTable: true,
		ChargeDedupe:  true,
	}
}

func InspectSchema(ctx context.Context, db DBTX, env string) (*SchemaState, error) {
	state := &SchemaState{Environment: env}

	rows, err := db.QueryContext(ctx, schemaTablesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "inspect billing tables")
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "scan billing table name")
		}
		switch name {
		case "charge":
			state.ChargeTable = true
		case "invoices":
			state.InvoiceTable = true
		case "invoice_sequences":
			state.SequenceTable = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate billing tables")
	}

	if state.ChargeTable {
		var columns int
		if err := db.QueryRowContext(ctx, schemaDedupeColumnsQuery).Scan(&columns); err != nil {
			return nil, errors.Wrap(err, "inspect charge dedupe columns")
		}
		state.ChargeDedupe = columns == 2
	}
	return state, nil
}

func (s *SchemaState) Missing() []string {
	var missing []string
	if !s.InvoiceTable {
		missing = append(missing, "invoices")
	}
	if !s.ChargeTable {
		missing = append(missing, "charge")
	} else if !s.ChargeDedupe {
		missing = append(missing, "charge.related_type/related_id")
	}
	if !s.SequenceTable {
		missing = append(missing, "invoice_sequences")
	}
	return missing
}

func (s *SchemaState) Complete() bool {
	return len(s.Missing()) == 0
}

// AllowsDegraded reports whether fallbacks for missing schema may be used.
func (s *SchemaState) AllowsDegraded() bool {
	return s.Environment != "" && s.Environment != utils.EnvProduction
}

// Validate fails when the pipeline cannot run safely: always without the
// invoices table, and in production whenever anything is missing.
func (s *SchemaState) Validate() error {
	if s.Complete() {
		return nil
	}
	missing := s.Missing()
	if !s.InvoiceTable || !s.AllowsDegraded() {
		return errors.Wrapf(ErrSchemaIncomplete, "missing %v in %s", missing, s.Environment)
	}
	helpers.Log(logrus.WarnLevel, fmt.Sprintf("billing schema incomplete in %s, running degraded without %v", s.Environment, missing))
	return nil
}
