package report

import (
	"testing"
	"time"

	"github.com/cropledger/backend/internal/domain/cashflow"
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2024, 7, d, 9, 30, 0, 0, time.UTC)
}

type fixture struct {
	snapshot  Snapshot
	truckA    *haulage.Truck
	truckB    *haulage.Truck
	farmGreen *haulage.Farm
	farmHill  *haulage.Farm
	millSun   *haulage.Factory
	millRiver *haulage.Factory
}

func (fx *fixture) record(t *testing.T, date time.Time, truck *haulage.Truck, farm *haulage.Farm, factory *haulage.Factory, farmSide, factorySide haulage.WeighSide, freight string) *haulage.SupplyRecord {
	t.Helper()
	d := haulage.SupplyDetails{
		EntryDate:   date,
		Farm:        farmSide,
		Factory:     factorySide,
		FreightCost: dec(freight),
	}
	if truck != nil {
		d.TruckID = &truck.ID
	}
	if farm != nil {
		d.FarmID = &farm.ID
	}
	if factory != nil {
		d.FactoryID = &factory.ID
	}
	r, err := haulage.NewSupplyRecord(d)
	require.NoError(t, err)
	fx.snapshot.Records = append(fx.snapshot.Records, *r)
	return r
}

func side(w, disc, price string) haulage.WeighSide {
	return haulage.NewWeighSide(dec(w), dec(disc), dec(price))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{}
	fx.truckA, _ = haulage.NewTruck("AB-101")
	fx.truckB, _ = haulage.NewTruck("CD-202")
	fx.farmGreen, _ = haulage.NewFarm("Green Acres")
	fx.farmHill, _ = haulage.NewFarm("Hillside")
	fx.millSun, _ = haulage.NewFactory("Sun Mill")
	fx.millRiver, _ = haulage.NewFactory("River Mill")

	fx.snapshot.Directory = haulage.NewDirectory(
		[]haulage.Truck{*fx.truckA, *fx.truckB},
		[]haulage.Farm{*fx.farmGreen, *fx.farmHill},
		[]haulage.Factory{*fx.millSun, *fx.millRiver},
	)

	// day 1: two loads, same group; profit 128.5 each
	fx.record(t, day(1), fx.truckA, fx.farmGreen, fx.millSun, side("100", "10", "5"), side("90", "5", "7"), "20")
	fx.record(t, day(1), fx.truckA, fx.farmGreen, fx.millSun, side("100", "10", "5"), side("90", "5", "7"), "20")
	// day 2: loss: farm 200*5=1000, factory 100*6=600, freight 50 => -450
	fx.record(t, day(2), fx.truckB, fx.farmHill, fx.millRiver, side("200", "0", "5"), side("100", "0", "6"), "50")
	// day 3: break even: 100*2=200 vs 100*3=300 with freight 100
	fx.record(t, day(3), fx.truckB, fx.farmGreen, fx.millRiver, side("100", "0", "2"), side("100", "0", "3"), "100")
	// day 3: incomplete, no factory; loss of the farm cost 50
	fx.record(t, day(3), fx.truckA, fx.farmHill, nil, side("50", "0", "1"), haulage.WeighSide{}, "0")

	return fx
}

// ============================================
// DateRange
// ============================================

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{From: time.Date(2024, 7, 2, 23, 0, 0, 0, time.UTC), To: time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC)}

	assert.False(t, r.Contains(day(1)))
	assert.True(t, r.Contains(time.Date(2024, 7, 2, 0, 0, 1, 0, time.UTC)), "from bound is a whole day")
	assert.True(t, r.Contains(time.Date(2024, 7, 3, 23, 59, 0, 0, time.UTC)), "to bound is inclusive of the whole day")
	assert.False(t, r.Contains(day(4)))
	assert.True(t, DateRange{}.Contains(day(20)))
}

func TestDay_NormalizesToUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	// 2024-03-01T00:00Z seen from a UTC-5 session
	instant := time.Date(2024, 2, 29, 19, 0, 0, 0, est)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Day(instant))

	march := DateRange{From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)}
	assert.True(t, march.Contains(instant))
	feb := DateRange{To: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)}
	assert.False(t, feb.Contains(instant))
}

// ============================================
// Per-record report
// ============================================

func TestBuildRecordReport_AllRows(t *testing.T) {
	fx := newFixture(t)

	rep := BuildRecordReport(fx.snapshot, RecordFilter{})
	require.Len(t, rep.Rows, 5, "incomplete records are listed")

	// newest first
	for i := 1; i < len(rep.Rows); i++ {
		assert.False(t, rep.Rows[i].EntryDate.After(rep.Rows[i-1].EntryDate))
	}
	assert.Equal(t, 2, rep.Totals.ProfitCount)
	assert.Equal(t, 2, rep.Totals.LossCount)
	assert.Equal(t, 1, rep.Totals.BreakEvenCount)
	// 128.5*2 - 450 + 0 - 50
	assert.True(t, rep.Totals.ProfitLoss.Equal(dec("-243")), rep.Totals.ProfitLoss.String())

	var incomplete *RecordRow
	for i := range rep.Rows {
		if rep.Rows[i].FactoryName == "" {
			incomplete = &rep.Rows[i]
		}
	}
	require.NotNil(t, incomplete)
	assert.Equal(t, "Hillside", incomplete.FarmName)
	assert.Equal(t, "AB-101", incomplete.TruckNumber)
}

func TestBuildRecordReport_Filters(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name   string
		filter RecordFilter
		want   int
	}{
		{"counterparty matches factory ignoring case", RecordFilter{Counterparty: "river mill"}, 2},
		{"counterparty matches farm", RecordFilter{Counterparty: "GREEN ACRES"}, 3},
		{"counterparty is exact not substring", RecordFilter{Counterparty: "Green"}, 0},
		{"truck substring ignoring case", RecordFilter{TruckNumber: "cd-"}, 2},
		{"profit only", RecordFilter{Profit: ProfitFilterProfit}, 2},
		{"loss only", RecordFilter{Profit: ProfitFilterLoss}, 2},
		{"break even only", RecordFilter{Profit: ProfitFilterBreakEven}, 1},
		{"date range", RecordFilter{Range: DateRange{From: day(2), To: day(3)}}, 3},
		{"combined", RecordFilter{Range: DateRange{From: day(3)}, Counterparty: "hillside"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := BuildRecordReport(fx.snapshot, tt.filter)
			assert.Len(t, rep.Rows, tt.want)
			assert.Equal(t, tt.want, rep.Totals.RecordCount)
		})
	}
}

func TestFilter_IdempotentAndCommutative(t *testing.T) {
	fx := newFixture(t)
	base := RecordRows(fx.snapshot)
	snapshotLen := len(base)

	byRange := InRange(DateRange{From: day(1), To: day(2)})
	byName := CounterpartyIs("green acres")

	ab := Filter(Filter(base, byRange), byName)
	ba := Filter(Filter(base, byName), byRange)
	assert.Equal(t, ab, ba)

	again := Filter(ab, byRange, byName)
	assert.Equal(t, ab, again)

	assert.Len(t, base, snapshotLen, "base rows are never modified")
	assert.Len(t, ab, 2)
}

// ============================================
// Grouped report
// ============================================

func TestBuildPeriodReport(t *testing.T) {
	fx := newFixture(t)

	rep := BuildPeriodReport(fx.snapshot, PeriodFilter{})
	require.Len(t, rep.Rows, 3, "incomplete record is excluded and day 1 loads are grouped")

	assert.Equal(t, Day(day(3)), rep.Rows[0].Date)
	last := rep.Rows[2]
	assert.Equal(t, Day(day(1)), last.Date)
	assert.Equal(t, "Green Acres", last.FarmName)
	assert.Equal(t, "Sun Mill", last.FactoryName)
	assert.Equal(t, "AB-101", last.TruckNumber)
	assert.Equal(t, 2, last.RecordCount)
	assert.True(t, last.FarmWeight.Equal(dec("200")))
	assert.True(t, last.FactoryWeight.Equal(dec("180")))
	assert.True(t, last.FreightCost.Equal(dec("40")))
	assert.True(t, last.FarmCost.Equal(dec("940")))
	assert.True(t, last.FactoryRevenue.Equal(dec("1197")))
	assert.True(t, last.ProfitLoss.Equal(dec("257")))
	assert.Equal(t, haulage.ProfitStatusProfit, last.ProfitStatus)

	assert.True(t, rep.Totals.ProfitLoss.Equal(dec("-193")), rep.Totals.ProfitLoss.String())
}

func TestBuildPeriodReport_UnresolvedFarmIsExcluded(t *testing.T) {
	fx := newFixture(t)
	ghost := uuid.New()
	r := fx.snapshot.Records[0]
	r.FarmID = &ghost
	fx.snapshot.Records = []haulage.SupplyRecord{r}

	rep := BuildPeriodReport(fx.snapshot, PeriodFilter{})
	assert.Empty(t, rep.Rows)
}

func TestBuildPeriodReport_ProfitFilter(t *testing.T) {
	fx := newFixture(t)

	rep := BuildPeriodReport(fx.snapshot, PeriodFilter{Profit: ProfitFilterLoss})
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Hillside", rep.Rows[0].FarmName)
}

// ============================================
// Factory and farm reports
// ============================================

func cashFixture(t *testing.T, fx *fixture) {
	t.Helper()
	r1, err := cashflow.NewCashReceipt("Sun Mill", dec("1000"), dec("0"), day(1))
	require.NoError(t, err)
	r2, err := cashflow.NewCashReceipt("Someone Else", dec("500"), dec("100"), day(2))
	require.NoError(t, err)
	r3, err := cashflow.NewCashReceipt("Sun Mill", dec("9999"), dec("0"), day(10))
	require.NoError(t, err)
	fx.snapshot.Receipts = []cashflow.CashReceipt{*r1, *r2, *r3}

	d1, err := cashflow.NewCashDisbursement("Green Acres", day(1), dec("0"), dec("300"), "")
	require.NoError(t, err)
	d2, err := cashflow.NewCashDisbursement("Unrelated", day(3), dec("50"), dec("200"), "")
	require.NoError(t, err)
	fx.snapshot.Disbursements = []cashflow.CashDisbursement{*d1, *d2}
}

func TestBuildFactoryReport(t *testing.T) {
	fx := newFixture(t)
	cashFixture(t, fx)
	c1, _ := haulage.NewContractor("Fast Haul", "", "Sun Mill")
	c2, _ := haulage.NewContractor("Farm Carriers", "Green Acres", "")
	fx.snapshot.Contractors = []haulage.Contractor{*c1, *c2}

	rep := BuildFactoryReport(fx.snapshot, PartyFilter{Name: "Sun Mill", Range: DateRange{From: day(1), To: day(5)}})

	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Fast Haul", rep.Rows[0].ContractorName)
	assert.True(t, rep.TotalWeight.Equal(dec("180")))
	assert.True(t, rep.TotalRevenue.Equal(dec("1197")))
	// every receipt in range, not only Sun Mill's
	assert.True(t, rep.TotalReceived.Equal(dec("1500")))
	assert.True(t, rep.Net.Equal(dec("-303")))

	river := BuildFactoryReport(fx.snapshot, PartyFilter{Name: "River Mill"})
	require.Len(t, river.Rows, 2)
	for _, row := range river.Rows {
		if row.FarmName == "Green Acres" {
			assert.Equal(t, "Farm Carriers", row.ContractorName, "falls back to the farm link")
		} else {
			assert.Empty(t, row.ContractorName)
		}
	}
	assert.True(t, river.TotalReceived.Equal(dec("11499")))
}

func TestBuildFarmReport(t *testing.T) {
	fx := newFixture(t)
	cashFixture(t, fx)

	rep := BuildFarmReport(fx.snapshot, PartyFilter{Name: "green acres", Range: DateRange{To: day(3)}})

	require.Len(t, rep.Rows, 2)
	assert.True(t, rep.TotalWeight.Equal(dec("300")))
	// 940 + (200 + 100)
	assert.True(t, rep.TotalCost.Equal(dec("1240")))
	// debit of every disbursement in range
	assert.True(t, rep.TotalDisbursed.Equal(dec("500")))
	assert.True(t, rep.Net.Equal(dec("740")))
}

// ============================================
// Cash period report
// ============================================

func TestBuildCashPeriodReport(t *testing.T) {
	fx := newFixture(t)
	cashFixture(t, fx)

	rep := BuildCashPeriodReport(fx.snapshot, DateRange{From: day(1), To: day(3)})

	require.Len(t, rep.Days, 3)
	assert.Equal(t, Day(day(3)), rep.Days[0].Date)
	assert.Equal(t, Day(day(1)), rep.Days[2].Date)

	first := rep.Days[2]
	assert.Equal(t, 1, first.ReceiptCount)
	assert.Equal(t, 1, first.DisbursementCount)
	assert.True(t, first.Received.Equal(dec("1000")))
	assert.True(t, first.Debit.Equal(dec("300")))
	assert.True(t, first.Net.Equal(dec("700")))

	assert.Equal(t, 2, rep.Totals.ReceiptCount)
	assert.True(t, rep.Totals.Received.Equal(dec("1500")))
	assert.True(t, rep.Totals.PaidBack.Equal(dec("100")))
	assert.True(t, rep.Totals.Remaining.Equal(dec("1400")))
	assert.True(t, rep.Totals.Credit.Equal(dec("50")))
	assert.True(t, rep.Totals.Debit.Equal(dec("500")))
	assert.True(t, rep.Totals.Net.Equal(dec("1000")))
}
