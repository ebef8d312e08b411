package haulage

import (
	"context"
	"errors"
	"testing"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func validRequest() SupplyRecordRequest {
	return SupplyRecordRequest{
		EntryDate: "2024-03-01",
		Farm: WeighSideRequest{
			Weight:       nullDec("1000"),
			DiscountRate: dec("2"),
			PricePerKilo: nullDec("10"),
		},
		Factory: WeighSideRequest{
			Weight:       nullDec("990"),
			DiscountRate: dec("1"),
			PricePerKilo: nullDec("12"),
		},
		FreightCost: dec("500"),
	}
}

func existingRecord(t *testing.T) *haulage.SupplyRecord {
	t.Helper()
	date, _ := shared.ParseDate("entry_date", "2024-03-01")
	r, err := haulage.NewSupplyRecord(haulage.SupplyDetails{
		EntryDate: date,
		Farm:      haulage.NewWeighSide(dec("1000"), dec("2"), dec("10")),
		Factory:   haulage.NewWeighSide(dec("0"), dec("1"), dec("12")),
	})
	require.NoError(t, err)
	return r
}

// =============================================================================
// Create / Update
// =============================================================================

func TestSupplyService_Create(t *testing.T) {
	f := newFixture()
	farm, _ := haulage.NewFarm("North")
	factory, _ := haulage.NewFactory("Mill")

	req := validRequest()
	req.FarmID = &farm.ID
	req.FactoryName = "Mill"
	req.TruckNumber = "  "

	f.farms.On("FindByID", mock.Anything, farm.ID).Return(farm, nil)
	f.factories.On("FindByName", mock.Anything, "Mill").Return(factory, nil)
	f.records.On("Save", mock.Anything, mock.AnythingOfType("*haulage.SupplyRecord")).Return(nil)
	f.expectDirectory(nil, []haulage.Farm{*farm}, []haulage.Factory{*factory})

	view, err := f.supply.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, view.Record.TruckID)
	assert.Equal(t, farm.ID, *view.Record.FarmID)
	assert.Equal(t, factory.ID, *view.Record.FactoryID)
	assert.Equal(t, "North", view.FarmName)
	assert.Equal(t, "Mill", view.FactoryName)
	assert.Empty(t, view.TruckNumber)

	// 1000×0.98×10 = 9800; 990×0.99×12 = 11761.2; 11761.2 − (9800 + 500)
	assert.True(t, dec("9800").Equal(view.Settlement.FarmTotal))
	assert.True(t, dec("11761.2").Equal(view.Settlement.FactoryTotal))
	assert.True(t, dec("1461.2").Equal(view.Settlement.ProfitLoss))
	assert.Equal(t, haulage.ProfitStatusProfit, view.Settlement.ProfitStatus)
	assert.True(t, view.Settlement.FactoryTotal.Equal(view.Record.Settlement.ExpectedAmount))
	f.assertExpectations(t)
}

func TestSupplyService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   func() SupplyRecordRequest
		field string
	}{
		{"bad date", func() SupplyRecordRequest {
			r := validRequest()
			r.EntryDate = "01/03/2024"
			return r
		}, "entry_date"},
		{"missing date", func() SupplyRecordRequest {
			r := validRequest()
			r.EntryDate = ""
			return r
		}, "entry_date"},
		{"discount above 100", func() SupplyRecordRequest {
			r := validRequest()
			r.Farm.DiscountRate = dec("100.5")
			return r
		}, "farm_discount_rate"},
		{"negative factory weight", func() SupplyRecordRequest {
			r := validRequest()
			r.Factory.Weight = nullDec("-1")
			return r
		}, "factory_weight"},
		{"negative freight", func() SupplyRecordRequest {
			r := validRequest()
			r.FreightCost = dec("-0.01")
			return r
		}, "freight_cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.supply.Create(context.Background(), tt.req())

			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, shared.CodeValidation, de.Code)
			assert.Equal(t, tt.field, de.Field)
			f.records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestSupplyService_CreateUnknownReference(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	req := validRequest()
	req.TruckID = &id
	f.trucks.On("FindByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("truck", id))

	_, err := f.supply.Create(context.Background(), req)

	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "truck_id", de.Field)
	assert.Contains(t, de.Message, "truck")
}

func TestSupplyService_CreateStorageFailure(t *testing.T) {
	f := newFixture()
	f.records.On("Save", mock.Anything, mock.Anything).Return(shared.NewStorageError("save supply record", errors.New("disk full")))

	_, err := f.supply.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, shared.ErrStorage)
}

func TestSupplyService_UpdateLeavesRecordOnValidationError(t *testing.T) {
	f := newFixture()
	record := existingRecord(t)
	f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	req := validRequest()
	req.Factory.DiscountRate = dec("-5")
	_, err := f.supply.Update(context.Background(), record.ID, req)

	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.True(t, record.Factory.GrossWeight().IsZero())
	f.records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSupplyService_Update(t *testing.T) {
	f := newFixture()
	record := existingRecord(t)
	f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
	f.records.On("Save", mock.Anything, record).Return(nil)
	f.expectDirectory(nil, nil, nil)

	view, err := f.supply.Update(context.Background(), record.ID, validRequest())
	require.NoError(t, err)
	assert.True(t, dec("990").Equal(view.Record.Factory.GrossWeight()))
	assert.True(t, dec("11761.2").Equal(view.Record.Settlement.ExpectedAmount))
}

// =============================================================================
// Queries
// =============================================================================

func TestSupplyService_List(t *testing.T) {
	f := newFixture()
	record := existingRecord(t)
	filter := shared.DefaultFilter()
	f.records.On("FindAll", mock.Anything, filter).Return([]haulage.SupplyRecord{*record}, nil)
	f.records.On("Count", mock.Anything, filter).Return(int64(51), nil)
	f.expectDirectory(nil, nil, nil)

	page, err := f.supply.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(51), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestSupplyService_GetNotFound(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.records.On("FindByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("supply record", id))

	_, err := f.supply.Get(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSupplyService_ComputeSettlement(t *testing.T) {
	f := newFixture()
	record := existingRecord(t)
	f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	res, err := f.supply.ComputeSettlement(context.Background(), record.ID)
	require.NoError(t, err)
	assert.True(t, dec("-9800").Equal(res.ProfitLoss))
	assert.True(t, dec("-100").Equal(res.ProfitMargin))
	assert.Equal(t, haulage.ProfitStatusLoss, res.ProfitStatus)
}

// =============================================================================
// Manual edits
// =============================================================================

func TestSupplyService_SetFactoryWeight(t *testing.T) {
	f := newFixture()
	record := existingRecord(t)
	f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
	f.records.On("Save", mock.Anything, record).Return(nil)

	updated, err := f.supply.SetFactoryWeight(context.Background(), record.ID, dec("1000"))
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(updated.Factory.GrossWeight()))
	assert.True(t, dec("11880").Equal(updated.Settlement.ExpectedAmount))
}

func TestSupplyService_SetFactoryWeightRejectsNegative(t *testing.T) {
	f := newFixture()
	record := existingRecord(t)
	f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

	_, err := f.supply.SetFactoryWeight(context.Background(), record.ID, dec("-1"))
	assert.ErrorIs(t, err, shared.ErrValidation)
	f.records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSupplyService_RecordReceived(t *testing.T) {
	f := newFixture()
	record := existingRecord(t)
	f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
	f.records.On("Save", mock.Anything, record).Return(nil)

	updated, err := f.supply.RecordReceived(context.Background(), record.ID, dec("250.50"))
	require.NoError(t, err)
	assert.True(t, dec("250.5").Equal(updated.Settlement.ReceivedAmount))
}

func TestSupplyService_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("farm", func(t *testing.T) {
		f := newFixture()
		record := existingRecord(t)
		farm, _ := haulage.NewFarm("North")
		f.farms.On("FindByID", mock.Anything, farm.ID).Return(farm, nil)
		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		f.records.On("Save", mock.Anything, record).Return(nil)

		updated, err := f.supply.AssignFarm(ctx, record.ID, farm.ID)
		require.NoError(t, err)
		assert.Equal(t, farm.ID, *updated.FarmID)
	})

	t.Run("factory", func(t *testing.T) {
		f := newFixture()
		record := existingRecord(t)
		factory, _ := haulage.NewFactory("Mill")
		f.factories.On("FindByID", mock.Anything, factory.ID).Return(factory, nil)
		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		f.records.On("Save", mock.Anything, record).Return(nil)

		updated, err := f.supply.AssignFactory(ctx, record.ID, factory.ID)
		require.NoError(t, err)
		assert.Equal(t, factory.ID, *updated.FactoryID)
		assert.True(t, updated.IsIncomplete(), "farm is still missing")
	})

	t.Run("unknown truck", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.trucks.On("FindByID", mock.Anything, id).Return(nil, shared.NewNotFoundError("truck", id))

		_, err := f.supply.AssignTruck(ctx, uuid.New(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.records.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestListFilter_ToShared(t *testing.T) {
	filter, err := ListFilter{Page: 3, From: "2024-01-01", To: "2024-01-31"}.ToShared()
	require.NoError(t, err)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 50, filter.PageSize)
	assert.Equal(t, 2024, filter.From.Year())
	assert.Equal(t, 31, filter.To.Day())

	_, err = ListFilter{From: "2024-02-01", To: "2024-01-01"}.ToShared()
	assert.ErrorIs(t, err, shared.ErrValidation)
}
