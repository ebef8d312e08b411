package report

import (
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/shopspring/decimal"
)

// PartyFilter selects one farm or factory over a date range.
// An empty Name covers every party.
type PartyFilter struct {
	Range DateRange
	Name  string
}

// FactoryRow is a grouped row annotated with its transport contractor
type FactoryRow struct {
	PeriodRow
	ContractorName string
}

// FactoryReport is the supply delivered to factories against cash received
type FactoryReport struct {
	FactoryName   string
	Range         DateRange
	Rows          []FactoryRow
	TotalWeight   decimal.Decimal // factory gross weight
	TotalRevenue  decimal.Decimal
	TotalReceived decimal.Decimal
	Net           decimal.Decimal // TotalRevenue - TotalReceived
}

// BuildFactoryReport groups supply for the factory and nets it against cash
// receipts. TotalReceived sums every receipt in the range regardless of source
// name.
func BuildFactoryReport(s Snapshot, f PartyFilter) FactoryReport {
	rows := periodRows(s, PeriodFilter{Range: f.Range, FactoryName: f.Name})
	contractors := newContractorIndex(s.Contractors)

	rep := FactoryReport{
		FactoryName:   f.Name,
		Range:         f.Range,
		Rows:          make([]FactoryRow, 0, len(rows)),
		TotalWeight:   decimal.Zero,
		TotalRevenue:  decimal.Zero,
		TotalReceived: decimal.Zero,
	}
	for _, row := range rows {
		rep.Rows = append(rep.Rows, FactoryRow{
			PeriodRow:      row,
			ContractorName: contractors.label(row.FactoryName, row.FarmName),
		})
		rep.TotalWeight = rep.TotalWeight.Add(row.FactoryWeight)
		rep.TotalRevenue = rep.TotalRevenue.Add(row.FactoryRevenue)
	}
	for _, r := range s.Receipts {
		if f.Range.Contains(r.Date) {
			rep.TotalReceived = rep.TotalReceived.Add(r.ReceivedAmount)
		}
	}
	rep.Net = rep.TotalRevenue.Sub(rep.TotalReceived)
	return rep
}

// FarmReport is the supply bought from farms against cash disbursed
type FarmReport struct {
	FarmName       string
	Range          DateRange
	Rows           []PeriodRow
	TotalWeight    decimal.Decimal // farm gross weight
	TotalCost      decimal.Decimal
	TotalDisbursed decimal.Decimal
	Net            decimal.Decimal // TotalCost - TotalDisbursed
}

// BuildFarmReport groups supply for the farm and nets it against the debit
// side of every disbursement in the range.
func BuildFarmReport(s Snapshot, f PartyFilter) FarmReport {
	rows := periodRows(s, PeriodFilter{Range: f.Range, FarmName: f.Name})

	rep := FarmReport{
		FarmName:       f.Name,
		Range:          f.Range,
		Rows:           rows,
		TotalWeight:    decimal.Zero,
		TotalCost:      decimal.Zero,
		TotalDisbursed: decimal.Zero,
	}
	for _, row := range rows {
		rep.TotalWeight = rep.TotalWeight.Add(row.FarmWeight)
		rep.TotalCost = rep.TotalCost.Add(row.FarmCost)
	}
	for _, d := range s.Disbursements {
		if f.Range.Contains(d.TransactionDate) {
			rep.TotalDisbursed = rep.TotalDisbursed.Add(d.Debit)
		}
	}
	rep.Net = rep.TotalCost.Sub(rep.TotalDisbursed)
	return rep
}

// contractorIndex looks contractors up by linked factory or farm name.
// The first contractor listed for a name wins.
type contractorIndex struct {
	byFactory map[string]string
	byFarm    map[string]string
}

func newContractorIndex(contractors []haulage.Contractor) contractorIndex {
	idx := contractorIndex{
		byFactory: make(map[string]string),
		byFarm:    make(map[string]string),
	}
	for _, c := range contractors {
		if c.FactoryName != "" {
			if _, ok := idx.byFactory[c.FactoryName]; !ok {
				idx.byFactory[c.FactoryName] = c.Name
			}
		}
		if c.FarmName != "" {
			if _, ok := idx.byFarm[c.FarmName]; !ok {
				idx.byFarm[c.FarmName] = c.Name
			}
		}
	}
	return idx
}

// label prefers the factory link and falls back to the farm link
func (idx contractorIndex) label(factoryName, farmName string) string {
	if name, ok := idx.byFactory[factoryName]; ok {
		return name
	}
	return idx.byFarm[farmName]
}
