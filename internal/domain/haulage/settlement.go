package haulage

import "github.com/shopspring/decimal"

// ProfitStatus classifies a profit/loss amount by its sign
type ProfitStatus string

const (
	ProfitStatusProfit    ProfitStatus = "PROFIT"
	ProfitStatusBreakEven ProfitStatus = "BREAK_EVEN"
	ProfitStatusLoss      ProfitStatus = "LOSS"
)

// IsValid checks if the status is a valid ProfitStatus
func (s ProfitStatus) IsValid() bool {
	switch s {
	case ProfitStatusProfit, ProfitStatusBreakEven, ProfitStatusLoss:
		return true
	}
	return false
}

// String returns the string representation of ProfitStatus
func (s ProfitStatus) String() string {
	return string(s)
}

// ClassifyProfit maps a profit/loss amount to its status using strict sign
func ClassifyProfit(profitLoss decimal.Decimal) ProfitStatus {
	switch profitLoss.Sign() {
	case 1:
		return ProfitStatusProfit
	case -1:
		return ProfitStatusLoss
	default:
		return ProfitStatusBreakEven
	}
}

// SettlementResult is the derived money picture of one supply record
type SettlementResult struct {
	FarmAllowedWeight    decimal.Decimal
	FarmTotal            decimal.Decimal
	FactoryAllowedWeight decimal.Decimal
	FactoryTotal         decimal.Decimal
	FreightCost          decimal.Decimal
	ProfitLoss           decimal.Decimal
	// ProfitMargin is ProfitLoss as a percentage of FarmTotal; zero when FarmTotal is not positive
	ProfitMargin decimal.Decimal
	ProfitStatus ProfitStatus
}

// ComputeSettlement derives farm cost, factory revenue and profit for r.
// Missing weights and prices count as zero.
func ComputeSettlement(r *SupplyRecord) SettlementResult {
	res := SettlementResult{
		FarmAllowedWeight:    r.Farm.AllowedWeight(),
		FactoryAllowedWeight: r.Factory.AllowedWeight(),
		FreightCost:          r.FreightCost,
	}
	res.FarmTotal = r.Farm.Total()
	res.FactoryTotal = r.Factory.Total()
	res.ProfitLoss = res.FactoryTotal.Sub(res.FarmTotal.Add(res.FreightCost))
	if res.FarmTotal.IsPositive() {
		res.ProfitMargin = res.ProfitLoss.Mul(hundred).Div(res.FarmTotal)
	} else {
		res.ProfitMargin = decimal.Zero
	}
	res.ProfitStatus = ClassifyProfit(res.ProfitLoss)
	return res
}
