package report

import (
	"time"

	"github.com/cropledger/backend/internal/domain/cashflow"
	"github.com/cropledger/backend/internal/domain/haulage"
)

// Snapshot is a point-in-time copy of the data the reports read.
// Builders never modify it; every report re-derives from the full snapshot.
type Snapshot struct {
	Records       []haulage.SupplyRecord
	Directory     haulage.Directory
	Contractors   []haulage.Contractor
	Receipts      []cashflow.CashReceipt
	Disbursements []cashflow.CashDisbursement
}

// DateRange is an inclusive range of calendar days. A zero bound is open.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls on a day inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	if !r.From.IsZero() && d.Before(Day(r.From)) {
		return false
	}
	if !r.To.IsZero() && d.After(Day(r.To)) {
		return false
	}
	return true
}

// Day truncates t to its UTC calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
