package cashflow

import (
	"strings"
	"time"

	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CashDisbursement is a credit/debit movement against a named entity
type CashDisbursement struct {
	shared.BaseEntity
	EntityName      string
	TransactionDate time.Time
	Credit          decimal.Decimal
	Debit           decimal.Decimal
	Notes           string
}

// NewCashDisbursement creates a validated disbursement
func NewCashDisbursement(entityName string, date time.Time, credit, debit decimal.Decimal, notes string) (*CashDisbursement, error) {
	d := &CashDisbursement{BaseEntity: shared.NewBaseEntity()}
	if err := d.set(entityName, date, credit, debit, notes); err != nil {
		return nil, err
	}
	return d, nil
}

// Update replaces the disbursement's fields. Nothing changes when validation fails.
func (d *CashDisbursement) Update(entityName string, date time.Time, credit, debit decimal.Decimal, notes string) error {
	if err := d.set(entityName, date, credit, debit, notes); err != nil {
		return err
	}
	d.Touch()
	return nil
}

func (d *CashDisbursement) set(entityName string, date time.Time, credit, debit decimal.Decimal, notes string) error {
	entityName = strings.TrimSpace(entityName)
	if entityName == "" {
		return shared.NewValidationError("entity_name", "entity name is required")
	}
	if date.IsZero() {
		return shared.NewValidationError("transaction_date", "transaction date is required")
	}
	if credit.IsNegative() {
		return shared.NewValidationError("credit", "credit cannot be negative")
	}
	if debit.IsNegative() {
		return shared.NewValidationError("debit", "debit cannot be negative")
	}
	d.EntityName = entityName
	d.TransactionDate = date
	d.Credit = credit
	d.Debit = debit
	d.Notes = notes
	return nil
}

// Balance is the unsigned difference between debit and credit
func (d *CashDisbursement) Balance() decimal.Decimal {
	return d.Debit.Sub(d.Credit).Abs()
}
