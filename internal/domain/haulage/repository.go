package haulage

import (
	"context"

	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TruckRepository defines persistence for trucks
type TruckRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Truck, error)
	// FindByNumber matches the truck number exactly
	FindByNumber(ctx context.Context, number string) (*Truck, error)
	FindAll(ctx context.Context) ([]Truck, error)
	Save(ctx context.Context, truck *Truck) error
}

// FarmRepository defines persistence for farms
type FarmRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Farm, error)
	// FindByName matches the farm name exactly
	FindByName(ctx context.Context, name string) (*Farm, error)
	FindAll(ctx context.Context) ([]Farm, error)
	Save(ctx context.Context, farm *Farm) error
}

// FactoryRepository defines persistence for factories
type FactoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Factory, error)
	// FindByName matches the factory name exactly
	FindByName(ctx context.Context, name string) (*Factory, error)
	FindAll(ctx context.Context) ([]Factory, error)
	Save(ctx context.Context, factory *Factory) error
}

// ContractorRepository defines persistence for transport contractors
type ContractorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contractor, error)
	FindAll(ctx context.Context) ([]Contractor, error)
	Save(ctx context.Context, contractor *Contractor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplyRecordRepository defines persistence for supply records.
// A record and its settlement are always written and deleted together.
type SupplyRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SupplyRecord, error)
	// FindAll returns records ordered newest first. A zero PageSize returns every match.
	FindAll(ctx context.Context, filter shared.Filter) ([]SupplyRecord, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, record *SupplyRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}
