package report

import (
	"strings"

	"github.com/cropledger/backend/internal/domain/haulage"
	"golang.org/x/text/cases"
)

// ProfitFilter selects rows by profit classification
type ProfitFilter string

const (
	ProfitFilterAll       ProfitFilter = "ALL"
	ProfitFilterProfit    ProfitFilter = "PROFIT"
	ProfitFilterLoss      ProfitFilter = "LOSS"
	ProfitFilterBreakEven ProfitFilter = "BREAK_EVEN"
)

// IsValid checks if the filter is a known value. Empty means ALL.
func (f ProfitFilter) IsValid() bool {
	switch f {
	case "", ProfitFilterAll, ProfitFilterProfit, ProfitFilterLoss, ProfitFilterBreakEven:
		return true
	}
	return false
}

// Matches reports whether status passes the filter
func (f ProfitFilter) Matches(status haulage.ProfitStatus) bool {
	switch f {
	case "", ProfitFilterAll:
		return true
	case ProfitFilterProfit:
		return status == haulage.ProfitStatusProfit
	case ProfitFilterLoss:
		return status == haulage.ProfitStatusLoss
	case ProfitFilterBreakEven:
		return status == haulage.ProfitStatusBreakEven
	}
	return false
}

// RowPredicate decides whether a per-record row is kept
type RowPredicate func(RecordRow) bool

// Filter returns the rows passing every predicate, in a new slice.
// The input is never modified, so predicates compose in any order.
func Filter(rows []RecordRow, preds ...RowPredicate) []RecordRow {
	out := make([]RecordRow, 0, len(rows))
next:
	for _, row := range rows {
		for _, p := range preds {
			if !p(row) {
				continue next
			}
		}
		out = append(out, row)
	}
	return out
}

// InRange keeps rows whose entry date is inside r
func InRange(r DateRange) RowPredicate {
	return func(row RecordRow) bool {
		return r.Contains(row.EntryDate)
	}
}

// CounterpartyIs keeps rows whose farm or factory name equals name,
// ignoring case. An empty name keeps everything.
func CounterpartyIs(name string) RowPredicate {
	want := fold(strings.TrimSpace(name))
	return func(row RecordRow) bool {
		if want == "" {
			return true
		}
		return fold(row.FarmName) == want || fold(row.FactoryName) == want
	}
}

// TruckContains keeps rows whose truck number contains query, ignoring case
func TruckContains(query string) RowPredicate {
	want := fold(strings.TrimSpace(query))
	return func(row RecordRow) bool {
		return strings.Contains(fold(row.TruckNumber), want)
	}
}

// ProfitIs keeps rows matching the profit classification
func ProfitIs(f ProfitFilter) RowPredicate {
	return func(row RecordRow) bool {
		return f.Matches(row.Settlement.ProfitStatus)
	}
}

// sameName compares display names ignoring case
func sameName(a, b string) bool {
	return fold(a) == fold(b)
}

// fold applies Unicode case folding. A Caser is stateful, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
