package haulage

import (
	"strings"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyRequest creates (or finds) a truck, farm or factory by name
type PartyRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// ContractorRequest creates or updates a transport contractor
type ContractorRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	FarmName    string `json:"farm_name" binding:"max=200"`
	FactoryName string `json:"factory_name" binding:"max=200"`
}

// WeighSideRequest is one weigh-in. A null weight or price means not recorded.
type WeighSideRequest struct {
	Weight       decimal.NullDecimal `json:"weight"`
	DiscountRate decimal.Decimal     `json:"discount_rate"`
	PricePerKilo decimal.NullDecimal `json:"price_per_kilo"`
}

func (r WeighSideRequest) toDomain() haulage.WeighSide {
	return haulage.WeighSide{
		Weight:       r.Weight,
		DiscountRate: r.DiscountRate,
		PricePerKilo: r.PricePerKilo,
	}
}

// SupplyRecordRequest creates or replaces a supply record. Each party can be
// given by ID or by name; the ID wins when both are set and a name that does
// not exist yet is created.
type SupplyRecordRequest struct {
	EntryDate   string           `json:"entry_date" binding:"required,datetime=2006-01-02"`
	TruckID     *uuid.UUID       `json:"truck_id"`
	TruckNumber string           `json:"truck_number" binding:"max=200"`
	FarmID      *uuid.UUID       `json:"farm_id"`
	FarmName    string           `json:"farm_name" binding:"max=200"`
	FactoryID   *uuid.UUID       `json:"factory_id"`
	FactoryName string           `json:"factory_name" binding:"max=200"`
	Farm        WeighSideRequest `json:"farm"`
	Factory     WeighSideRequest `json:"factory"`
	FreightCost decimal.Decimal  `json:"freight_cost"`
	Notes       string           `json:"notes" binding:"max=2000"`
}

// ReceivedAmountRequest records cash received against a settlement
type ReceivedAmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// FactoryWeightRequest corrects a record's factory gross weight
type FactoryWeightRequest struct {
	Weight decimal.Decimal `json:"weight"`
}

// AssignRequest points a record at an existing party
type AssignRequest struct {
	ID uuid.UUID `json:"id" binding:"required"`
}

// ListFilter is the query string of list endpoints
type ListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ToShared converts the query into a repository filter
func (f ListFilter) ToShared() (shared.Filter, error) {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	var err error
	if filter.From, err = shared.ParseDate("from", f.From); err != nil {
		return filter, err
	}
	if filter.To, err = shared.ParseDate("to", f.To); err != nil {
		return filter, err
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return filter, shared.NewValidationError("to", "end date is before start date")
	}
	return filter, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
