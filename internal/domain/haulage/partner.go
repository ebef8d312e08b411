package haulage

import (
	"strings"

	"github.com/cropledger/backend/internal/domain/shared"
)

// Truck is identified for display by its number plate
type Truck struct {
	shared.BaseEntity
	TruckNumber string
}

// NewTruck creates a truck. The number is trimmed and must not be empty.
func NewTruck(number string) (*Truck, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewValidationError("truck_number", "truck number cannot be empty")
	}
	return &Truck{
		BaseEntity:  shared.NewBaseEntity(),
		TruckNumber: number,
	}, nil
}

// Farm supplies produce
type Farm struct {
	shared.BaseEntity
	Name string
}

// NewFarm creates a farm with a non-empty trimmed name
func NewFarm(name string) (*Farm, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("farm_name", "farm name cannot be empty")
	}
	return &Farm{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Factory buys produce
type Factory struct {
	shared.BaseEntity
	Name string
}

// NewFactory creates a factory with a non-empty trimmed name
func NewFactory(name string) (*Factory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("factory_name", "factory name cannot be empty")
	}
	return &Factory{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Contractor is a transport contractor linked to a farm and/or factory by name.
// The links are plain strings, not references.
type Contractor struct {
	shared.BaseEntity
	Name        string
	FarmName    string
	FactoryName string
}

// NewContractor creates a contractor
func NewContractor(name, farmName, factoryName string) (*Contractor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("name", "contractor name cannot be empty")
	}
	return &Contractor{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		FarmName:    strings.TrimSpace(farmName),
		FactoryName: strings.TrimSpace(factoryName),
	}, nil
}

// Update replaces the contractor's name and links
func (c *Contractor) Update(name, farmName, factoryName string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "contractor name cannot be empty")
	}
	c.Name = name
	c.FarmName = strings.TrimSpace(farmName)
	c.FactoryName = strings.TrimSpace(factoryName)
	c.Touch()
	return nil
}
