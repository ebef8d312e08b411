package haulage

import (
	"context"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockTruckRepository is a mock implementation of TruckRepository
type MockTruckRepository struct {
	mock.Mock
}

func (m *MockTruckRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*haulage.Truck), args.Error(1)
}

func (m *MockTruckRepository) FindByNumber(ctx context.Context, number string) (*haulage.Truck, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*haulage.Truck), args.Error(1)
}

func (m *MockTruckRepository) FindAll(ctx context.Context) ([]haulage.Truck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]haulage.Truck), args.Error(1)
}

func (m *MockTruckRepository) Save(ctx context.Context, truck *haulage.Truck) error {
	args := m.Called(ctx, truck)
	return args.Error(0)
}

// MockFarmRepository is a mock implementation of FarmRepository
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*haulage.Farm), args.Error(1)
}

func (m *MockFarmRepository) FindByName(ctx context.Context, name string) (*haulage.Farm, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*haulage.Farm), args.Error(1)
}

func (m *MockFarmRepository) FindAll(ctx context.Context) ([]haulage.Farm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]haulage.Farm), args.Error(1)
}

func (m *MockFarmRepository) Save(ctx context.Context, farm *haulage.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

// MockFactoryRepository is a mock implementation of FactoryRepository
type MockFactoryRepository struct {
	mock.Mock
}

func (m *MockFactoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.Factory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*haulage.Factory), args.Error(1)
}

func (m *MockFactoryRepository) FindByName(ctx context.Context, name string) (*haulage.Factory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*haulage.Factory), args.Error(1)
}

func (m *MockFactoryRepository) FindAll(ctx context.Context) ([]haulage.Factory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]haulage.Factory), args.Error(1)
}

func (m *MockFactoryRepository) Save(ctx context.Context, factory *haulage.Factory) error {
	args := m.Called(ctx, factory)
	return args.Error(0)
}

// MockContractorRepository is a mock implementation of ContractorRepository
type MockContractorRepository struct {
	mock.Mock
}

func (m *MockContractorRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.Contractor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*haulage.Contractor), args.Error(1)
}

func (m *MockContractorRepository) FindAll(ctx context.Context) ([]haulage.Contractor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]haulage.Contractor), args.Error(1)
}

func (m *MockContractorRepository) Save(ctx context.Context, contractor *haulage.Contractor) error {
	args := m.Called(ctx, contractor)
	return args.Error(0)
}

func (m *MockContractorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSupplyRecordRepository is a mock implementation of SupplyRecordRepository
type MockSupplyRecordRepository struct {
	mock.Mock
}

func (m *MockSupplyRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.SupplyRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*haulage.SupplyRecord), args.Error(1)
}

func (m *MockSupplyRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]haulage.SupplyRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]haulage.SupplyRecord), args.Error(1)
}

func (m *MockSupplyRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplyRecordRepository) Save(ctx context.Context, record *haulage.SupplyRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSupplyRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	_ haulage.TruckRepository        = (*MockTruckRepository)(nil)
	_ haulage.FarmRepository         = (*MockFarmRepository)(nil)
	_ haulage.FactoryRepository      = (*MockFactoryRepository)(nil)
	_ haulage.ContractorRepository   = (*MockContractorRepository)(nil)
	_ haulage.SupplyRecordRepository = (*MockSupplyRecordRepository)(nil)
)

// =============================================================================
// Fixtures
// =============================================================================

type fixture struct {
	trucks      *MockTruckRepository
	farms       *MockFarmRepository
	factories   *MockFactoryRepository
	contractors *MockContractorRepository
	records     *MockSupplyRecordRepository
	partners    *PartnerService
	supply      *SupplyService
}

func newFixture() *fixture {
	f := &fixture{
		trucks:      new(MockTruckRepository),
		farms:       new(MockFarmRepository),
		factories:   new(MockFactoryRepository),
		contractors: new(MockContractorRepository),
		records:     new(MockSupplyRecordRepository),
	}
	f.partners = NewPartnerService(f.trucks, f.farms, f.factories, f.contractors)
	f.supply = NewSupplyService(f.records, f.partners, nil)
	return f
}

// expectDirectory stubs the three FindAll calls behind PartnerService.Directory
func (f *fixture) expectDirectory(trucks []haulage.Truck, farms []haulage.Farm, factories []haulage.Factory) {
	f.trucks.On("FindAll", mock.Anything).Return(trucks, nil)
	f.farms.On("FindAll", mock.Anything).Return(farms, nil)
	f.factories.On("FindAll", mock.Anything).Return(factories, nil)
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.trucks.AssertExpectations(t)
	f.farms.AssertExpectations(t)
	f.factories.AssertExpectations(t)
	f.contractors.AssertExpectations(t)
	f.records.AssertExpectations(t)
}
