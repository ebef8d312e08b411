package haulage

import (
	"context"
	"errors"
	"strings"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/cropledger/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PartnerService manages trucks, farms, factories and contractors
type PartnerService struct {
	trucks      haulage.TruckRepository
	farms       haulage.FarmRepository
	factories   haulage.FactoryRepository
	contractors haulage.ContractorRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(
	trucks haulage.TruckRepository,
	farms haulage.FarmRepository,
	factories haulage.FactoryRepository,
	contractors haulage.ContractorRepository,
) *PartnerService {
	return &PartnerService{
		trucks:      trucks,
		farms:       farms,
		factories:   factories,
		contractors: contractors,
	}
}

// EnsureTruck returns the truck with this number, creating it if needed
func (s *PartnerService) EnsureTruck(ctx context.Context, number string) (*haulage.Truck, error) {
	number = strings.TrimSpace(number)
	truck, err := s.trucks.FindByNumber(ctx, number)
	if err == nil {
		return truck, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	truck, err = haulage.NewTruck(number)
	if err != nil {
		return nil, err
	}
	if err := s.trucks.Save(ctx, truck); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Truck created", zap.String("truck_id", truck.ID.String()), zap.String("truck_number", number))
	return truck, nil
}

// EnsureFarm returns the farm with this name, creating it if needed
func (s *PartnerService) EnsureFarm(ctx context.Context, name string) (*haulage.Farm, error) {
	name = strings.TrimSpace(name)
	farm, err := s.farms.FindByName(ctx, name)
	if err == nil {
		return farm, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	farm, err = haulage.NewFarm(name)
	if err != nil {
		return nil, err
	}
	if err := s.farms.Save(ctx, farm); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Farm created", zap.String("farm_id", farm.ID.String()), zap.String("farm_name", name))
	return farm, nil
}

// EnsureFactory returns the factory with this name, creating it if needed
func (s *PartnerService) EnsureFactory(ctx context.Context, name string) (*haulage.Factory, error) {
	name = strings.TrimSpace(name)
	factory, err := s.factories.FindByName(ctx, name)
	if err == nil {
		return factory, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	factory, err = haulage.NewFactory(name)
	if err != nil {
		return nil, err
	}
	if err := s.factories.Save(ctx, factory); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Factory created", zap.String("factory_id", factory.ID.String()), zap.String("factory_name", name))
	return factory, nil
}

// ListTrucks returns every truck
func (s *PartnerService) ListTrucks(ctx context.Context) ([]haulage.Truck, error) {
	return s.trucks.FindAll(ctx)
}

// ListFarms returns every farm
func (s *PartnerService) ListFarms(ctx context.Context) ([]haulage.Farm, error) {
	return s.farms.FindAll(ctx)
}

// ListFactories returns every factory
func (s *PartnerService) ListFactories(ctx context.Context) ([]haulage.Factory, error) {
	return s.factories.FindAll(ctx)
}

// Directory loads the id-to-name lookups for every truck, farm and factory
func (s *PartnerService) Directory(ctx context.Context) (haulage.Directory, error) {
	trucks, err := s.trucks.FindAll(ctx)
	if err != nil {
		return haulage.Directory{}, err
	}
	farms, err := s.farms.FindAll(ctx)
	if err != nil {
		return haulage.Directory{}, err
	}
	factories, err := s.factories.FindAll(ctx)
	if err != nil {
		return haulage.Directory{}, err
	}
	return haulage.NewDirectory(trucks, farms, factories), nil
}

// ListContractors returns every contractor
func (s *PartnerService) ListContractors(ctx context.Context) ([]haulage.Contractor, error) {
	return s.contractors.FindAll(ctx)
}

// CreateContractor creates a contractor
func (s *PartnerService) CreateContractor(ctx context.Context, req ContractorRequest) (*haulage.Contractor, error) {
	c, err := haulage.NewContractor(req.Name, req.FarmName, req.FactoryName)
	if err != nil {
		return nil, err
	}
	if err := s.contractors.Save(ctx, c); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Contractor created", zap.String("contractor_id", c.ID.String()))
	return c, nil
}

// UpdateContractor replaces a contractor's name and links
func (s *PartnerService) UpdateContractor(ctx context.Context, id uuid.UUID, req ContractorRequest) (*haulage.Contractor, error) {
	c, err := s.contractors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Name, req.FarmName, req.FactoryName); err != nil {
		return nil, err
	}
	if err := s.contractors.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteContractor removes a contractor
func (s *PartnerService) DeleteContractor(ctx context.Context, id uuid.UUID) error {
	if err := s.contractors.Delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Contractor deleted", zap.String("contractor_id", id.String()))
	return nil
}
