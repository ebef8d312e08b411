package cashflow

import (
	"strings"
	"time"

	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CashReceipt is money taken in from a named source, part of which may have
// been paid back. The source name is free text, not a reference.
type CashReceipt struct {
	shared.BaseEntity
	SourceName     string
	ReceivedAmount decimal.Decimal
	PaidBackAmount decimal.Decimal
	Date           time.Time
}

// NewCashReceipt creates a validated cash receipt
func NewCashReceipt(sourceName string, received, paidBack decimal.Decimal, date time.Time) (*CashReceipt, error) {
	r := &CashReceipt{BaseEntity: shared.NewBaseEntity()}
	if err := r.set(sourceName, received, paidBack, date); err != nil {
		return nil, err
	}
	return r, nil
}

// Update replaces the receipt's fields. Nothing changes when validation fails.
func (r *CashReceipt) Update(sourceName string, received, paidBack decimal.Decimal, date time.Time) error {
	if err := r.set(sourceName, received, paidBack, date); err != nil {
		return err
	}
	r.Touch()
	return nil
}

func (r *CashReceipt) set(sourceName string, received, paidBack decimal.Decimal, date time.Time) error {
	sourceName = strings.TrimSpace(sourceName)
	if sourceName == "" {
		return shared.NewValidationError("source_name", "source name is required")
	}
	if date.IsZero() {
		return shared.NewValidationError("date", "date is required")
	}
	if !received.IsPositive() {
		return shared.NewValidationError("received_amount", "received amount must be greater than zero")
	}
	if paidBack.IsNegative() {
		return shared.NewValidationError("paid_back_amount", "paid back amount cannot be negative")
	}
	if !paidBack.LessThan(received) {
		return shared.NewValidationError("paid_back_amount", "paid back amount must be less than the received amount")
	}
	r.SourceName = sourceName
	r.ReceivedAmount = received
	r.PaidBackAmount = paidBack
	r.Date = date
	return nil
}

// Remaining is always derived: received minus paid back
func (r *CashReceipt) Remaining() decimal.Decimal {
	return r.ReceivedAmount.Sub(r.PaidBackAmount)
}
