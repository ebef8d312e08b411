package haulage

import (
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AllowedWeight returns the billable weight after deducting discountPercent
// percent from gross: gross × (1 − discountPercent/100).
//
// The function is total: out-of-range inputs are computed as given and left
// for the anomaly scan to report.
func AllowedWeight(gross, discountPercent decimal.Decimal) decimal.Decimal {
	// Shift(-2) divides by 100 exactly, unlike Div which rounds to DivisionPrecision.
	return gross.Mul(hundred.Sub(discountPercent)).Shift(-2)
}

// WeighSide is one end of a haul: the farm weigh-in or the factory weigh-out
type WeighSide struct {
	Weight       decimal.NullDecimal // gross weight in kilos; invalid when never weighed
	DiscountRate decimal.Decimal     // percentage in [0,100]
	PricePerKilo decimal.NullDecimal
}

// NewWeighSide builds a side with a recorded weight and price
func NewWeighSide(weight, discountRate, pricePerKilo decimal.Decimal) WeighSide {
	return WeighSide{
		Weight:       decimal.NewNullDecimal(weight),
		DiscountRate: discountRate,
		PricePerKilo: decimal.NewNullDecimal(pricePerKilo),
	}
}

// GrossWeight returns the recorded weight, or zero when missing
func (s WeighSide) GrossWeight() decimal.Decimal {
	if !s.Weight.Valid {
		return decimal.Zero
	}
	return s.Weight.Decimal
}

// Price returns the price per kilo, or zero when missing
func (s WeighSide) Price() decimal.Decimal {
	if !s.PricePerKilo.Valid {
		return decimal.Zero
	}
	return s.PricePerKilo.Decimal
}

// AllowedWeight applies the side's discount to its gross weight
func (s WeighSide) AllowedWeight() decimal.Decimal {
	return AllowedWeight(s.GrossWeight(), s.DiscountRate)
}

// Total is the allowed weight priced at the side's price per kilo
func (s WeighSide) Total() decimal.Decimal {
	return s.AllowedWeight().Mul(s.Price())
}

// Validate checks the side's inputs. side prefixes the offending field name
// ("farm" or "factory").
func (s WeighSide) Validate(side string) error {
	if s.DiscountRate.IsNegative() || s.DiscountRate.GreaterThan(hundred) {
		return shared.NewValidationError(side+"_discount_rate", "discount rate must be between 0 and 100")
	}
	if s.Weight.Valid && s.Weight.Decimal.IsNegative() {
		return shared.NewValidationError(side+"_weight", "weight cannot be negative")
	}
	if s.PricePerKilo.Valid && s.PricePerKilo.Decimal.IsNegative() {
		return shared.NewValidationError(side+"_price_per_kilo", "price per kilo cannot be negative")
	}
	return nil
}
