package models

import (
	"time"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TruckModel is the persistence model for the Truck entity.
// Truck numbers are indexed, not unique.
type TruckModel struct {
	BaseModel
	TruckNumber string `gorm:"type:varchar(50);not null;index"`
}

// TableName returns the table name for GORM
func (TruckModel) TableName() string {
	return "trucks"
}

// ToDomain converts the persistence model to a domain Truck
func (m *TruckModel) ToDomain() *haulage.Truck {
	return &haulage.Truck{
		BaseEntity:  m.BaseModel.ToDomain(),
		TruckNumber: m.TruckNumber,
	}
}

// TruckModelFromDomain creates a persistence model from a domain Truck
func TruckModelFromDomain(t *haulage.Truck) *TruckModel {
	m := &TruckModel{TruckNumber: t.TruckNumber}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// FarmModel is the persistence model for the Farm entity
type FarmModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;index"`
}

// TableName returns the table name for GORM
func (FarmModel) TableName() string {
	return "farms"
}

// ToDomain converts the persistence model to a domain Farm
func (m *FarmModel) ToDomain() *haulage.Farm {
	return &haulage.Farm{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name}
}

// FarmModelFromDomain creates a persistence model from a domain Farm
func FarmModelFromDomain(f *haulage.Farm) *FarmModel {
	m := &FarmModel{Name: f.Name}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}

// FactoryModel is the persistence model for the Factory entity
type FactoryModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;index"`
}

// TableName returns the table name for GORM
func (FactoryModel) TableName() string {
	return "factories"
}

// ToDomain converts the persistence model to a domain Factory
func (m *FactoryModel) ToDomain() *haulage.Factory {
	return &haulage.Factory{BaseEntity: m.BaseModel.ToDomain(), Name: m.Name}
}

// FactoryModelFromDomain creates a persistence model from a domain Factory
func FactoryModelFromDomain(f *haulage.Factory) *FactoryModel {
	m := &FactoryModel{Name: f.Name}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}

// ContractorModel is the persistence model for the Contractor entity.
// Farm and factory links are stored as names, not foreign keys.
type ContractorModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	FarmName    string `gorm:"type:varchar(200)"`
	FactoryName string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ContractorModel) TableName() string {
	return "contractors"
}

// ToDomain converts the persistence model to a domain Contractor
func (m *ContractorModel) ToDomain() *haulage.Contractor {
	return &haulage.Contractor{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		FarmName:    m.FarmName,
		FactoryName: m.FactoryName,
	}
}

// ContractorModelFromDomain creates a persistence model from a domain Contractor
func ContractorModelFromDomain(c *haulage.Contractor) *ContractorModel {
	m := &ContractorModel{Name: c.Name, FarmName: c.FarmName, FactoryName: c.FactoryName}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// SupplyRecordModel is the persistence model for the SupplyRecord entity
type SupplyRecordModel struct {
	BaseModel
	EntryDate           time.Time           `gorm:"not null;index"`
	TruckID             *uuid.UUID          `gorm:"type:uuid;index"`
	FarmID              *uuid.UUID          `gorm:"type:uuid;index"`
	FactoryID           *uuid.UUID          `gorm:"type:uuid;index"`
	FarmWeight          decimal.NullDecimal `gorm:"type:numeric"`
	FarmDiscountRate    decimal.Decimal     `gorm:"type:numeric;not null;default:0"`
	FarmPricePerKilo    decimal.NullDecimal `gorm:"type:numeric"`
	FactoryWeight       decimal.NullDecimal `gorm:"type:numeric"`
	FactoryDiscountRate decimal.Decimal     `gorm:"type:numeric;not null;default:0"`
	FactoryPricePerKilo decimal.NullDecimal `gorm:"type:numeric"`
	FreightCost         decimal.Decimal     `gorm:"type:numeric;not null;default:0"`
	Notes               string              `gorm:"type:text"`
	Settlement          *SettlementModel    `gorm:"foreignKey:SupplyRecordID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SupplyRecordModel) TableName() string {
	return "supply_records"
}

// ToDomain converts the persistence model to a domain SupplyRecord
func (m *SupplyRecordModel) ToDomain() *haulage.SupplyRecord {
	r := &haulage.SupplyRecord{
		BaseEntity: m.BaseModel.ToDomain(),
		EntryDate:  m.EntryDate.UTC(),
		TruckID:    m.TruckID,
		FarmID:     m.FarmID,
		FactoryID:  m.FactoryID,
		Farm: haulage.WeighSide{
			Weight:       m.FarmWeight,
			DiscountRate: m.FarmDiscountRate,
			PricePerKilo: m.FarmPricePerKilo,
		},
		Factory: haulage.WeighSide{
			Weight:       m.FactoryWeight,
			DiscountRate: m.FactoryDiscountRate,
			PricePerKilo: m.FactoryPricePerKilo,
		},
		FreightCost: m.FreightCost,
		Notes:       m.Notes,
	}
	if m.Settlement != nil {
		r.Settlement = haulage.Settlement{
			ID:             m.Settlement.ID,
			ExpectedAmount: m.Settlement.ExpectedAmount,
			ReceivedAmount: m.Settlement.ReceivedAmount,
		}
	}
	return r
}

// SupplyRecordModelFromDomain creates a persistence model, settlement included
func SupplyRecordModelFromDomain(r *haulage.SupplyRecord) *SupplyRecordModel {
	m := &SupplyRecordModel{
		EntryDate:           r.EntryDate,
		TruckID:             r.TruckID,
		FarmID:              r.FarmID,
		FactoryID:           r.FactoryID,
		FarmWeight:          r.Farm.Weight,
		FarmDiscountRate:    r.Farm.DiscountRate,
		FarmPricePerKilo:    r.Farm.PricePerKilo,
		FactoryWeight:       r.Factory.Weight,
		FactoryDiscountRate: r.Factory.DiscountRate,
		FactoryPricePerKilo: r.Factory.PricePerKilo,
		FreightCost:         r.FreightCost,
		Notes:               r.Notes,
		Settlement: &SettlementModel{
			ID:             r.Settlement.ID,
			SupplyRecordID: r.ID,
			ExpectedAmount: r.Settlement.ExpectedAmount,
			ReceivedAmount: r.Settlement.ReceivedAmount,
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
		},
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// SettlementModel is the one-to-one settlement row of a supply record
type SettlementModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	SupplyRecordID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ExpectedAmount decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	ReceivedAmount decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettlementModel) TableName() string {
	return "settlements"
}
