package cashflow

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineKind tells receipt lines from disbursement lines
type LineKind string

const (
	LineKindReceipt      LineKind = "RECEIPT"
	LineKindDisbursement LineKind = "DISBURSEMENT"
)

// LedgerLine is one row of an account statement. It is either a ReceiptLine
// or a DisbursementLine.
type LedgerLine interface {
	Date() time.Time
	Kind() LineKind
	Counterparty() string
	SourceID() uuid.UUID
	ledgerLine()
}

// ReceiptLine carries a cash receipt. It has its own received/paid-back
// columns and does not touch the credit/debit columns.
type ReceiptLine struct {
	ID             uuid.UUID
	SourceName     string
	TransactionAt  time.Time
	ReceivedAmount decimal.Decimal
	PaidBackAmount decimal.Decimal
	Remaining      decimal.Decimal
}

func (l ReceiptLine) Date() time.Time      { return l.TransactionAt }
func (l ReceiptLine) Kind() LineKind       { return LineKindReceipt }
func (l ReceiptLine) Counterparty() string { return l.SourceName }
func (l ReceiptLine) SourceID() uuid.UUID  { return l.ID }
func (ReceiptLine) ledgerLine()            {}

// DisbursementLine carries a cash disbursement
type DisbursementLine struct {
	ID            uuid.UUID
	EntityName    string
	TransactionAt time.Time
	Credit        decimal.Decimal
	Debit         decimal.Decimal
	Balance       decimal.Decimal
	Notes         string
}

func (l DisbursementLine) Date() time.Time      { return l.TransactionAt }
func (l DisbursementLine) Kind() LineKind       { return LineKindDisbursement }
func (l DisbursementLine) Counterparty() string { return l.EntityName }
func (l DisbursementLine) SourceID() uuid.UUID  { return l.ID }
func (DisbursementLine) ledgerLine()            {}

// LedgerEntry is a line plus the credit/debit position after it
type LedgerEntry struct {
	Line           LedgerLine
	RunningCredit  decimal.Decimal
	RunningDebit   decimal.Decimal
	RunningBalance decimal.Decimal
}

// LedgerView is the merged statement for one counterparty, or for everyone
// when Counterparty is empty.
type LedgerView struct {
	Counterparty string
	Entries      []LedgerEntry

	TotalReceivedCurrent  decimal.Decimal
	TotalPaidBack         decimal.Decimal
	TotalRemaining        decimal.Decimal
	TotalDisbursedCurrent decimal.Decimal
	TreasuryNet           decimal.Decimal

	TotalCredit  decimal.Decimal
	TotalDebit   decimal.Decimal
	FinalBalance decimal.Decimal
}

// BuildLedger merges receipts whose SourceName equals name and disbursements
// whose EntityName equals name into one statement sorted by date. An empty
// name takes every row. Equal dates keep receipts ahead of disbursements and
// otherwise preserve input order.
func BuildLedger(name string, receipts []CashReceipt, disbursements []CashDisbursement) LedgerView {
	view := LedgerView{
		Counterparty:          name,
		TotalReceivedCurrent:  decimal.Zero,
		TotalPaidBack:         decimal.Zero,
		TotalRemaining:        decimal.Zero,
		TotalDisbursedCurrent: decimal.Zero,
		TotalCredit:           decimal.Zero,
		TotalDebit:            decimal.Zero,
	}

	lines := make([]LedgerLine, 0, len(receipts)+len(disbursements))
	for i := range receipts {
		r := &receipts[i]
		if name != "" && r.SourceName != name {
			continue
		}
		lines = append(lines, ReceiptLine{
			ID:             r.ID,
			SourceName:     r.SourceName,
			TransactionAt:  r.Date,
			ReceivedAmount: r.ReceivedAmount,
			PaidBackAmount: r.PaidBackAmount,
			Remaining:      r.Remaining(),
		})
		view.TotalReceivedCurrent = view.TotalReceivedCurrent.Add(r.ReceivedAmount)
		view.TotalPaidBack = view.TotalPaidBack.Add(r.PaidBackAmount)
		view.TotalRemaining = view.TotalRemaining.Add(r.Remaining())
	}
	for i := range disbursements {
		d := &disbursements[i]
		if name != "" && d.EntityName != name {
			continue
		}
		lines = append(lines, DisbursementLine{
			ID:            d.ID,
			EntityName:    d.EntityName,
			TransactionAt: d.TransactionDate,
			Credit:        d.Credit,
			Debit:         d.Debit,
			Balance:       d.Balance(),
			Notes:         d.Notes,
		})
		view.TotalCredit = view.TotalCredit.Add(d.Credit)
		view.TotalDebit = view.TotalDebit.Add(d.Debit)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Date().Before(lines[j].Date())
	})

	view.Entries = make([]LedgerEntry, len(lines))
	credit, debit := decimal.Zero, decimal.Zero
	for i, line := range lines {
		if d, ok := line.(DisbursementLine); ok {
			credit = credit.Add(d.Credit)
			debit = debit.Add(d.Debit)
		}
		view.Entries[i] = LedgerEntry{
			Line:           line,
			RunningCredit:  credit,
			RunningDebit:   debit,
			RunningBalance: credit.Sub(debit).Abs(),
		}
	}

	view.TotalDisbursedCurrent = view.TotalDebit
	view.TreasuryNet = view.TotalReceivedCurrent.Sub(view.TotalDisbursedCurrent)
	view.FinalBalance = view.TotalCredit.Sub(view.TotalDebit).Abs()
	return view
}

// Counterparties lists the distinct names appearing in either cash table, sorted
func Counterparties(receipts []CashReceipt, disbursements []CashDisbursement) []string {
	seen := make(map[string]struct{})
	for _, r := range receipts {
		seen[r.SourceName] = struct{}{}
	}
	for _, d := range disbursements {
		seen[d.EntityName] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
