package report

import (
	"strings"

	"github.com/cropledger/backend/internal/domain/report"
	"github.com/cropledger/backend/internal/domain/shared"
)

// RangeQuery is an inclusive day range taken from the query string
type RangeQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// DateRange validates and converts the query
func (q RangeQuery) DateRange() (report.DateRange, error) {
	var (
		r   report.DateRange
		err error
	)
	if r.From, err = shared.ParseDate("from", q.From); err != nil {
		return r, err
	}
	if r.To, err = shared.ParseDate("to", q.To); err != nil {
		return r, err
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return r, shared.NewValidationError("to", "end date is before start date")
	}
	return r, nil
}

// RecordQuery filters the per-record report
type RecordQuery struct {
	RangeQuery
	Counterparty string `form:"counterparty" binding:"max=200"`
	Truck        string `form:"truck" binding:"max=200"`
	Profit       string `form:"profit"`
}

// PeriodQuery filters the grouped report
type PeriodQuery struct {
	RangeQuery
	Farm    string `form:"farm" binding:"max=200"`
	Factory string `form:"factory" binding:"max=200"`
	Profit  string `form:"profit"`
}

// PartyQuery selects one farm or factory over a range
type PartyQuery struct {
	RangeQuery
	Name string `form:"name" binding:"max=200"`
}

func parseProfit(value string) (report.ProfitFilter, error) {
	f := report.ProfitFilter(strings.ToUpper(strings.TrimSpace(value)))
	if !f.IsValid() {
		return "", shared.NewValidationError("profit", "profit must be one of ALL, PROFIT, LOSS, BREAK_EVEN")
	}
	return f, nil
}
