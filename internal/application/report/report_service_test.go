package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cropledger/backend/internal/domain/cashflow"
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/report"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	snap  report.Snapshot
	err   error
	loads int
}

func (s *stubSource) Load(context.Context) (report.Snapshot, error) {
	s.loads++
	return s.snap, s.err
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

// sampleSnapshot has one profitable and one losing haul from farm North to
// factory Mill, plus one incomplete record with no factory.
func sampleSnapshot(t *testing.T) report.Snapshot {
	t.Helper()
	truck, _ := haulage.NewTruck("TRK-1")
	farm, _ := haulage.NewFarm("North")
	factory, _ := haulage.NewFactory("Mill")

	newRecord := func(date time.Time, factoryID *haulage.Factory, factoryWeight string) haulage.SupplyRecord {
		d := haulage.SupplyDetails{
			EntryDate: date,
			TruckID:   &truck.ID,
			FarmID:    &farm.ID,
			Farm:      haulage.NewWeighSide(dec("1000"), dec("0"), dec("10")),
			Factory:   haulage.NewWeighSide(dec(factoryWeight), dec("0"), dec("11")),
		}
		if factoryID != nil {
			d.FactoryID = &factoryID.ID
		}
		r, err := haulage.NewSupplyRecord(d)
		require.NoError(t, err)
		return *r
	}

	receipt, err := cashflow.NewCashReceipt("Mill", dec("5000"), dec("0"), day(2))
	require.NoError(t, err)
	disbursement, err := cashflow.NewCashDisbursement("North", day(2), dec("0"), dec("4000"), "")
	require.NoError(t, err)
	contractor, err := haulage.NewContractor("Haulers", "North", "Mill")
	require.NoError(t, err)

	return report.Snapshot{
		Records: []haulage.SupplyRecord{
			newRecord(day(1), factory, "1000"), // 11000 − 10000 = +1000
			newRecord(day(2), factory, "800"),  // 8800 − 10000 = −1200
			newRecord(day(3), nil, "1000"),
		},
		Directory:     haulage.NewDirectory([]haulage.Truck{*truck}, []haulage.Farm{*farm}, []haulage.Factory{*factory}),
		Contractors:   []haulage.Contractor{*contractor},
		Receipts:      []cashflow.CashReceipt{*receipt},
		Disbursements: []cashflow.CashDisbursement{*disbursement},
	}
}

func TestReportService_BuildRecordReport(t *testing.T) {
	src := &stubSource{snap: sampleSnapshot(t)}
	svc := NewReportService(src, nil)
	ctx := context.Background()

	all, err := svc.BuildRecordReport(ctx, RecordQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Rows, 3, "incomplete records are listed")
	assert.True(t, day(3).Equal(all.Rows[0].EntryDate), "newest first")

	losses, err := svc.BuildRecordReport(ctx, RecordQuery{Profit: "loss", Counterparty: "MILL"})
	require.NoError(t, err)
	require.Len(t, losses.Rows, 1)
	assert.True(t, dec("-1200").Equal(losses.Rows[0].Settlement.ProfitLoss))

	ranged, err := svc.BuildRecordReport(ctx, RecordQuery{RangeQuery: RangeQuery{From: "2024-03-02", To: "2024-03-02"}, Truck: "trk"})
	require.NoError(t, err)
	assert.Len(t, ranged.Rows, 1)

	again, err := svc.BuildRecordReport(ctx, RecordQuery{})
	require.NoError(t, err)
	assert.Equal(t, all, again)
	assert.Equal(t, 4, src.loads)
}

func TestReportService_RejectsBadQueries(t *testing.T) {
	svc := NewReportService(&stubSource{}, nil)
	ctx := context.Background()

	_, err := svc.BuildRecordReport(ctx, RecordQuery{Profit: "sometimes"})
	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "profit", de.Field)

	_, err = svc.BuildPeriodReport(ctx, PeriodQuery{RangeQuery: RangeQuery{From: "2024-03-05", To: "2024-03-01"}})
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "to", de.Field)

	_, err = svc.BuildCashReport(ctx, RangeQuery{From: "March"})
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestReportService_BuildPeriodReport(t *testing.T) {
	svc := NewReportService(&stubSource{snap: sampleSnapshot(t)}, nil)

	rep, err := svc.BuildPeriodReport(context.Background(), PeriodQuery{Farm: "north"})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2, "record without a factory is excluded")
	assert.True(t, dec("-200").Equal(rep.Totals.ProfitLoss))
}

func TestReportService_PartyReports(t *testing.T) {
	svc := NewReportService(&stubSource{snap: sampleSnapshot(t)}, nil)
	ctx := context.Background()

	factories, err := svc.BuildFactoryReport(ctx, PartyQuery{Name: "Mill"})
	require.NoError(t, err)
	assert.True(t, dec("19800").Equal(factories.TotalRevenue))
	assert.True(t, dec("5000").Equal(factories.TotalReceived))
	assert.True(t, dec("14800").Equal(factories.Net))
	require.NotEmpty(t, factories.Rows)
	assert.Equal(t, "Haulers", factories.Rows[0].ContractorName)

	farms, err := svc.BuildFarmReport(ctx, PartyQuery{Name: "North"})
	require.NoError(t, err)
	assert.True(t, dec("20000").Equal(farms.TotalCost))
	assert.True(t, dec("4000").Equal(farms.TotalDisbursed))
	assert.True(t, dec("16000").Equal(farms.Net))
}

func TestReportService_BuildCashReport(t *testing.T) {
	svc := NewReportService(&stubSource{snap: sampleSnapshot(t)}, nil)

	rep, err := svc.BuildCashReport(context.Background(), RangeQuery{From: "2024-03-01", To: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, rep.Days, 1)
	assert.True(t, dec("5000").Equal(rep.Totals.Received))
	assert.True(t, dec("4000").Equal(rep.Totals.Debit))
}

func TestReportService_LoadError(t *testing.T) {
	svc := NewReportService(&stubSource{err: shared.NewStorageError("list supply records", errors.New("down"))}, nil)

	_, err := svc.BuildFarmReport(context.Background(), PartyQuery{})
	assert.ErrorIs(t, err, shared.ErrStorage)
}
