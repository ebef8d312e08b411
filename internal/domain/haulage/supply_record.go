package haulage

import (
	"time"

	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement is the money expected and received for one supply record.
// It is created and deleted together with its record.
type Settlement struct {
	ID             uuid.UUID
	ExpectedAmount decimal.Decimal
	ReceivedAmount decimal.Decimal
}

// SupplyRecord is one truckload weighed at the farm and again at the factory.
// Truck, farm and factory references are optional; records missing any of them
// are incomplete and surface in the anomaly scan.
type SupplyRecord struct {
	shared.BaseEntity
	EntryDate   time.Time
	TruckID     *uuid.UUID
	FarmID      *uuid.UUID
	FactoryID   *uuid.UUID
	Farm        WeighSide
	Factory     WeighSide
	FreightCost decimal.Decimal
	Notes       string
	Settlement  Settlement
}

// SupplyDetails carries the editable fields of a supply record
type SupplyDetails struct {
	EntryDate   time.Time
	TruckID     *uuid.UUID
	FarmID      *uuid.UUID
	FactoryID   *uuid.UUID
	Farm        WeighSide
	Factory     WeighSide
	FreightCost decimal.Decimal
	Notes       string
}

func (d SupplyDetails) validate() error {
	if d.EntryDate.IsZero() {
		return shared.NewValidationError("entry_date", "entry date is required")
	}
	if err := d.Farm.Validate("farm"); err != nil {
		return err
	}
	if err := d.Factory.Validate("factory"); err != nil {
		return err
	}
	if d.FreightCost.IsNegative() {
		return shared.NewValidationError("freight_cost", "freight cost cannot be negative")
	}
	return nil
}

// NewSupplyRecord creates a record together with its settlement
func NewSupplyRecord(d SupplyDetails) (*SupplyRecord, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	r := &SupplyRecord{
		BaseEntity: shared.NewBaseEntity(),
		Settlement: Settlement{ID: uuid.New()},
	}
	r.apply(d)
	return r, nil
}

// Update replaces every editable field. Nothing changes when validation fails.
func (r *SupplyRecord) Update(d SupplyDetails) error {
	if err := d.validate(); err != nil {
		return err
	}
	r.apply(d)
	r.Touch()
	return nil
}

func (r *SupplyRecord) apply(d SupplyDetails) {
	r.EntryDate = d.EntryDate
	r.TruckID = d.TruckID
	r.FarmID = d.FarmID
	r.FactoryID = d.FactoryID
	r.Farm = d.Farm
	r.Factory = d.Factory
	r.FreightCost = d.FreightCost
	r.Notes = d.Notes
	r.syncExpectedAmount()
}

// Details returns the record's editable fields
func (r *SupplyRecord) Details() SupplyDetails {
	return SupplyDetails{
		EntryDate:   r.EntryDate,
		TruckID:     r.TruckID,
		FarmID:      r.FarmID,
		FactoryID:   r.FactoryID,
		Farm:        r.Farm,
		Factory:     r.Factory,
		FreightCost: r.FreightCost,
		Notes:       r.Notes,
	}
}

// SetFactoryWeight records a corrected factory gross weight
func (r *SupplyRecord) SetFactoryWeight(weight decimal.Decimal) error {
	if weight.IsNegative() {
		return shared.NewValidationError("factory_weight", "weight cannot be negative")
	}
	r.Factory.Weight = decimal.NewNullDecimal(weight)
	r.syncExpectedAmount()
	r.Touch()
	return nil
}

// AssignTruck points the record at a truck
func (r *SupplyRecord) AssignTruck(id uuid.UUID) {
	r.TruckID = &id
	r.Touch()
}

// AssignFarm points the record at a farm
func (r *SupplyRecord) AssignFarm(id uuid.UUID) {
	r.FarmID = &id
	r.Touch()
}

// AssignFactory points the record at a factory
func (r *SupplyRecord) AssignFactory(id uuid.UUID) {
	r.FactoryID = &id
	r.Touch()
}

// RecordReceived sets the legacy received amount on the settlement
func (r *SupplyRecord) RecordReceived(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewValidationError("received_amount", "received amount cannot be negative")
	}
	r.Settlement.ReceivedAmount = amount
	r.Touch()
	return nil
}

// IsIncomplete reports whether the farm or factory reference is missing
func (r *SupplyRecord) IsIncomplete() bool {
	return r.FarmID == nil || r.FactoryID == nil
}

// syncExpectedAmount keeps the settlement's expected amount at the factory total
func (r *SupplyRecord) syncExpectedAmount() {
	r.Settlement.ExpectedAmount = r.Factory.Total()
}
