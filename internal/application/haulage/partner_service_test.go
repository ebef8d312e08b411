package haulage

import (
	"context"
	"errors"
	"testing"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPartnerService_EnsureFarm(t *testing.T) {
	ctx := context.Background()

	t.Run("returns existing farm", func(t *testing.T) {
		f := newFixture()
		existing, _ := haulage.NewFarm("Green Acres")
		f.farms.On("FindByName", ctx, "Green Acres").Return(existing, nil)

		farm, err := f.partners.EnsureFarm(ctx, "  Green Acres ")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, farm.ID)
		f.farms.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("creates farm on not found", func(t *testing.T) {
		f := newFixture()
		f.farms.On("FindByName", ctx, "Hillside").Return(nil, shared.NewNotFoundError("farm", "Hillside"))
		f.farms.On("Save", ctx, mock.MatchedBy(func(farm *haulage.Farm) bool {
			return farm.Name == "Hillside"
		})).Return(nil)

		farm, err := f.partners.EnsureFarm(ctx, "Hillside")
		require.NoError(t, err)
		assert.Equal(t, "Hillside", farm.Name)
		f.assertExpectations(t)
	})

	t.Run("storage error is not treated as missing", func(t *testing.T) {
		f := newFixture()
		f.farms.On("FindByName", ctx, "Hillside").Return(nil, shared.NewStorageError("find farm", errors.New("down")))

		_, err := f.partners.EnsureFarm(ctx, "Hillside")
		assert.ErrorIs(t, err, shared.ErrStorage)
		f.farms.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		f := newFixture()
		f.farms.On("FindByName", ctx, "").Return(nil, shared.NewNotFoundError("farm", ""))

		_, err := f.partners.EnsureFarm(ctx, "   ")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestPartnerService_EnsureTruckAndFactory(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.trucks.On("FindByNumber", ctx, "TRK-1").Return(nil, shared.NewNotFoundError("truck", "TRK-1"))
	f.trucks.On("Save", ctx, mock.AnythingOfType("*haulage.Truck")).Return(nil)
	f.factories.On("FindByName", ctx, "Mill").Return(nil, shared.NewNotFoundError("factory", "Mill"))
	f.factories.On("Save", ctx, mock.AnythingOfType("*haulage.Factory")).Return(nil)

	truck, err := f.partners.EnsureTruck(ctx, "TRK-1")
	require.NoError(t, err)
	assert.Equal(t, "TRK-1", truck.TruckNumber)

	factory, err := f.partners.EnsureFactory(ctx, "Mill")
	require.NoError(t, err)
	assert.Equal(t, "Mill", factory.Name)
	f.assertExpectations(t)
}

func TestPartnerService_Directory(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	truck, _ := haulage.NewTruck("TRK-9")
	farm, _ := haulage.NewFarm("North")
	factory, _ := haulage.NewFactory("South Mill")
	f.expectDirectory([]haulage.Truck{*truck}, []haulage.Farm{*farm}, []haulage.Factory{*factory})

	dir, err := f.partners.Directory(ctx)
	require.NoError(t, err)

	number, ok := dir.TruckNumber(&truck.ID)
	assert.True(t, ok)
	assert.Equal(t, "TRK-9", number)
	name, ok := dir.FactoryName(&factory.ID)
	assert.True(t, ok)
	assert.Equal(t, "South Mill", name)
}

func TestPartnerService_DirectoryPropagatesErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.trucks.On("FindAll", ctx).Return([]haulage.Truck{}, nil)
	f.farms.On("FindAll", ctx).Return(nil, shared.NewStorageError("list farms", errors.New("timeout")))

	_, err := f.partners.Directory(ctx)
	assert.ErrorIs(t, err, shared.ErrStorage)
	f.factories.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestPartnerService_Contractors(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		f := newFixture()
		f.contractors.On("Save", ctx, mock.AnythingOfType("*haulage.Contractor")).Return(nil)

		c, err := f.partners.CreateContractor(ctx, ContractorRequest{Name: " Haulers ", FarmName: "North"})
		require.NoError(t, err)
		assert.Equal(t, "Haulers", c.Name)
		assert.Equal(t, "North", c.FarmName)
	})

	t.Run("create rejects blank name", func(t *testing.T) {
		f := newFixture()
		_, err := f.partners.CreateContractor(ctx, ContractorRequest{Name: " "})
		assert.ErrorIs(t, err, shared.ErrValidation)
		f.contractors.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("update", func(t *testing.T) {
		f := newFixture()
		existing, _ := haulage.NewContractor("Old", "", "")
		f.contractors.On("FindByID", ctx, existing.ID).Return(existing, nil)
		f.contractors.On("Save", ctx, existing).Return(nil)

		c, err := f.partners.UpdateContractor(ctx, existing.ID, ContractorRequest{Name: "New", FactoryName: "Mill"})
		require.NoError(t, err)
		assert.Equal(t, "New", c.Name)
		assert.Equal(t, "Mill", c.FactoryName)
	})

	t.Run("update missing", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.contractors.On("FindByID", ctx, id).Return(nil, shared.NewNotFoundError("contractor", id))

		_, err := f.partners.UpdateContractor(ctx, id, ContractorRequest{Name: "X"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.contractors.On("Delete", ctx, id).Return(nil)

		require.NoError(t, f.partners.DeleteContractor(ctx, id))
		f.assertExpectations(t)
	})
}
