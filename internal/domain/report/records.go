package report

import (
	"sort"
	"time"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordRow is one supply record with its names resolved and its
// settlement attached. Unresolved names are empty.
type RecordRow struct {
	RecordID            uuid.UUID
	EntryDate           time.Time
	TruckNumber         string
	FarmName            string
	FactoryName         string
	FarmWeight          decimal.Decimal
	FarmDiscountRate    decimal.Decimal
	FarmPricePerKilo    decimal.Decimal
	FactoryWeight       decimal.Decimal
	FactoryDiscountRate decimal.Decimal
	FactoryPricePerKilo decimal.Decimal
	Notes               string
	Settlement          haulage.SettlementResult
}

// RecordFilter selects per-record report rows
type RecordFilter struct {
	Range        DateRange
	Counterparty string       // farm or factory name, exact ignoring case
	TruckNumber  string       // substring, ignoring case
	Profit       ProfitFilter // empty means ALL
}

// Predicates returns the filter as composable predicates
func (f RecordFilter) Predicates() []RowPredicate {
	return []RowPredicate{
		InRange(f.Range),
		CounterpartyIs(f.Counterparty),
		TruckContains(f.TruckNumber),
		ProfitIs(f.Profit),
	}
}

// RecordTotals sums the rows of a per-record report
type RecordTotals struct {
	RecordCount    int
	FarmWeight     decimal.Decimal
	FactoryWeight  decimal.Decimal
	FarmTotal      decimal.Decimal
	FactoryTotal   decimal.Decimal
	FreightCost    decimal.Decimal
	ProfitLoss     decimal.Decimal
	ProfitCount    int
	LossCount      int
	BreakEvenCount int
}

// RecordReport lists supply records newest first
type RecordReport struct {
	Rows   []RecordRow
	Totals RecordTotals
}

// RecordRows resolves every record in the snapshot, including incomplete ones
func RecordRows(s Snapshot) []RecordRow {
	rows := make([]RecordRow, 0, len(s.Records))
	for i := range s.Records {
		r := &s.Records[i]
		row := RecordRow{
			RecordID:            r.ID,
			EntryDate:           r.EntryDate,
			FarmWeight:          r.Farm.GrossWeight(),
			FarmDiscountRate:    r.Farm.DiscountRate,
			FarmPricePerKilo:    r.Farm.Price(),
			FactoryWeight:       r.Factory.GrossWeight(),
			FactoryDiscountRate: r.Factory.DiscountRate,
			FactoryPricePerKilo: r.Factory.Price(),
			Notes:               r.Notes,
			Settlement:          haulage.ComputeSettlement(r),
		}
		row.TruckNumber, _ = s.Directory.TruckNumber(r.TruckID)
		row.FarmName, _ = s.Directory.FarmName(r.FarmID)
		row.FactoryName, _ = s.Directory.FactoryName(r.FactoryID)
		rows = append(rows, row)
	}
	return rows
}

// BuildRecordReport produces the per-record report for f
func BuildRecordReport(s Snapshot, f RecordFilter) RecordReport {
	rows := Filter(RecordRows(s), f.Predicates()...)
	sortRecordRows(rows)

	t := RecordTotals{
		RecordCount:   len(rows),
		FarmWeight:    decimal.Zero,
		FactoryWeight: decimal.Zero,
		FarmTotal:     decimal.Zero,
		FactoryTotal:  decimal.Zero,
		FreightCost:   decimal.Zero,
		ProfitLoss:    decimal.Zero,
	}
	for _, row := range rows {
		t.FarmWeight = t.FarmWeight.Add(row.FarmWeight)
		t.FactoryWeight = t.FactoryWeight.Add(row.FactoryWeight)
		t.FarmTotal = t.FarmTotal.Add(row.Settlement.FarmTotal)
		t.FactoryTotal = t.FactoryTotal.Add(row.Settlement.FactoryTotal)
		t.FreightCost = t.FreightCost.Add(row.Settlement.FreightCost)
		t.ProfitLoss = t.ProfitLoss.Add(row.Settlement.ProfitLoss)
		switch row.Settlement.ProfitStatus {
		case haulage.ProfitStatusProfit:
			t.ProfitCount++
		case haulage.ProfitStatusLoss:
			t.LossCount++
		default:
			t.BreakEvenCount++
		}
	}
	return RecordReport{Rows: rows, Totals: t}
}

// sortRecordRows orders newest first, then by farm, factory and truck
func sortRecordRows(rows []RecordRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.After(b.EntryDate)
		}
		if a.FarmName != b.FarmName {
			return a.FarmName < b.FarmName
		}
		if a.FactoryName != b.FactoryName {
			return a.FactoryName < b.FactoryName
		}
		return a.TruckNumber < b.TruckNumber
	})
}
