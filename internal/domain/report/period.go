package report

import (
	"sort"
	"time"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/shopspring/decimal"
)

// PeriodRow aggregates the supply records sharing a day, farm, factory and truck
type PeriodRow struct {
	Date           time.Time
	FarmName       string
	FactoryName    string
	TruckNumber    string
	RecordCount    int
	FarmWeight     decimal.Decimal
	FactoryWeight  decimal.Decimal
	FreightCost    decimal.Decimal
	FarmCost       decimal.Decimal // farm totals plus freight
	FactoryRevenue decimal.Decimal
	ProfitLoss     decimal.Decimal // FactoryRevenue - FarmCost
	ProfitStatus   haulage.ProfitStatus
}

// PeriodFilter selects grouped rows
type PeriodFilter struct {
	Range       DateRange
	FarmName    string // exact, ignoring case; empty keeps all
	FactoryName string // exact, ignoring case; empty keeps all
	Profit      ProfitFilter
}

// PeriodTotals sums the rows of a grouped report
type PeriodTotals struct {
	FarmWeight     decimal.Decimal
	FactoryWeight  decimal.Decimal
	FreightCost    decimal.Decimal
	FarmCost       decimal.Decimal
	FactoryRevenue decimal.Decimal
	ProfitLoss     decimal.Decimal
}

// PeriodReport is the grouped report, newest first
type PeriodReport struct {
	Rows   []PeriodRow
	Totals PeriodTotals
}

type groupKey struct {
	date        time.Time
	farmName    string
	factoryName string
	truckNumber string
}

// BuildPeriodReport groups records by (day, farm name, factory name, truck number).
// Records whose farm or factory does not resolve to a name are left out.
func BuildPeriodReport(s Snapshot, f PeriodFilter) PeriodReport {
	rows := periodRows(s, f)

	t := PeriodTotals{
		FarmWeight:     decimal.Zero,
		FactoryWeight:  decimal.Zero,
		FreightCost:    decimal.Zero,
		FarmCost:       decimal.Zero,
		FactoryRevenue: decimal.Zero,
		ProfitLoss:     decimal.Zero,
	}
	for _, row := range rows {
		t.FarmWeight = t.FarmWeight.Add(row.FarmWeight)
		t.FactoryWeight = t.FactoryWeight.Add(row.FactoryWeight)
		t.FreightCost = t.FreightCost.Add(row.FreightCost)
		t.FarmCost = t.FarmCost.Add(row.FarmCost)
		t.FactoryRevenue = t.FactoryRevenue.Add(row.FactoryRevenue)
		t.ProfitLoss = t.ProfitLoss.Add(row.ProfitLoss)
	}
	return PeriodReport{Rows: rows, Totals: t}
}

func periodRows(s Snapshot, f PeriodFilter) []PeriodRow {
	groups := make(map[groupKey]*PeriodRow)
	var order []groupKey

	for i := range s.Records {
		r := &s.Records[i]
		farmName, ok := s.Directory.FarmName(r.FarmID)
		if !ok {
			continue
		}
		factoryName, ok := s.Directory.FactoryName(r.FactoryID)
		if !ok {
			continue
		}
		if !f.Range.Contains(r.EntryDate) {
			continue
		}
		if f.FarmName != "" && !sameName(farmName, f.FarmName) {
			continue
		}
		if f.FactoryName != "" && !sameName(factoryName, f.FactoryName) {
			continue
		}
		truckNumber, _ := s.Directory.TruckNumber(r.TruckID)

		key := groupKey{date: Day(r.EntryDate), farmName: farmName, factoryName: factoryName, truckNumber: truckNumber}
		row, exists := groups[key]
		if !exists {
			row = &PeriodRow{
				Date:           key.date,
				FarmName:       farmName,
				FactoryName:    factoryName,
				TruckNumber:    truckNumber,
				FarmWeight:     decimal.Zero,
				FactoryWeight:  decimal.Zero,
				FreightCost:    decimal.Zero,
				FarmCost:       decimal.Zero,
				FactoryRevenue: decimal.Zero,
			}
			groups[key] = row
			order = append(order, key)
		}

		res := haulage.ComputeSettlement(r)
		row.RecordCount++
		row.FarmWeight = row.FarmWeight.Add(r.Farm.GrossWeight())
		row.FactoryWeight = row.FactoryWeight.Add(r.Factory.GrossWeight())
		row.FreightCost = row.FreightCost.Add(r.FreightCost)
		row.FarmCost = row.FarmCost.Add(res.FarmTotal).Add(r.FreightCost)
		row.FactoryRevenue = row.FactoryRevenue.Add(res.FactoryTotal)
	}

	rows := make([]PeriodRow, 0, len(order))
	for _, key := range order {
		row := groups[key]
		row.ProfitLoss = row.FactoryRevenue.Sub(row.FarmCost)
		row.ProfitStatus = haulage.ClassifyProfit(row.ProfitLoss)
		if !f.Profit.Matches(row.ProfitStatus) {
			continue
		}
		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if a.FarmName != b.FarmName {
			return a.FarmName < b.FarmName
		}
		if a.FactoryName != b.FactoryName {
			return a.FactoryName < b.FactoryName
		}
		return a.TruckNumber < b.TruckNumber
	})
	return rows
}
