package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CashDay sums both cash streams for one calendar day
type CashDay struct {
	Date              time.Time
	ReceiptCount      int
	Received          decimal.Decimal
	PaidBack          decimal.Decimal
	Remaining         decimal.Decimal
	DisbursementCount int
	Credit            decimal.Decimal
	Debit             decimal.Decimal
	Net               decimal.Decimal // Received - Debit
}

// CashPeriodReport lists cash movement per day, newest first
type CashPeriodReport struct {
	Range  DateRange
	Days   []CashDay
	Totals CashDay
}

func newCashDay(date time.Time) CashDay {
	return CashDay{
		Date:      date,
		Received:  decimal.Zero,
		PaidBack:  decimal.Zero,
		Remaining: decimal.Zero,
		Credit:    decimal.Zero,
		Debit:     decimal.Zero,
		Net:       decimal.Zero,
	}
}

// BuildCashPeriodReport summarises receipts and disbursements in the range by day
func BuildCashPeriodReport(s Snapshot, r DateRange) CashPeriodReport {
	days := make(map[time.Time]*CashDay)
	get := func(t time.Time) *CashDay {
		d := Day(t)
		if cd, ok := days[d]; ok {
			return cd
		}
		cd := newCashDay(d)
		days[d] = &cd
		return &cd
	}

	for i := range s.Receipts {
		rc := &s.Receipts[i]
		if !r.Contains(rc.Date) {
			continue
		}
		cd := get(rc.Date)
		cd.ReceiptCount++
		cd.Received = cd.Received.Add(rc.ReceivedAmount)
		cd.PaidBack = cd.PaidBack.Add(rc.PaidBackAmount)
		cd.Remaining = cd.Remaining.Add(rc.Remaining())
	}
	for i := range s.Disbursements {
		d := &s.Disbursements[i]
		if !r.Contains(d.TransactionDate) {
			continue
		}
		cd := get(d.TransactionDate)
		cd.DisbursementCount++
		cd.Credit = cd.Credit.Add(d.Credit)
		cd.Debit = cd.Debit.Add(d.Debit)
	}

	rep := CashPeriodReport{
		Range:  r,
		Days:   make([]CashDay, 0, len(days)),
		Totals: newCashDay(time.Time{}),
	}
	for _, cd := range days {
		cd.Net = cd.Received.Sub(cd.Debit)
		rep.Days = append(rep.Days, *cd)

		rep.Totals.ReceiptCount += cd.ReceiptCount
		rep.Totals.DisbursementCount += cd.DisbursementCount
		rep.Totals.Received = rep.Totals.Received.Add(cd.Received)
		rep.Totals.PaidBack = rep.Totals.PaidBack.Add(cd.PaidBack)
		rep.Totals.Remaining = rep.Totals.Remaining.Add(cd.Remaining)
		rep.Totals.Credit = rep.Totals.Credit.Add(cd.Credit)
		rep.Totals.Debit = rep.Totals.Debit.Add(cd.Debit)
	}
	rep.Totals.Net = rep.Totals.Received.Sub(rep.Totals.Debit)

	sort.Slice(rep.Days, func(i, j int) bool {
		return rep.Days[i].Date.After(rep.Days[j].Date)
	})
	return rep
}
