package handler

import (
	"time"

	haulageapp "github.com/cropledger/backend/internal/application/haulage"
	"github.com/cropledger/backend/internal/domain/anomaly"
	"github.com/cropledger/backend/internal/domain/cashflow"
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/report"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Amounts and weights are exact internally and rounded to two decimals only
// here, on the way out.

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalAmount(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(shared.DateLayout)
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// =============================================================================
// Parties
// =============================================================================

// TruckResponse is a truck in API responses
type TruckResponse struct {
	ID          string `json:"id"`
	TruckNumber string `json:"truck_number"`
}

// PartyResponse is a farm or factory in API responses
type PartyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ContractorResponse is a transport contractor in API responses
type ContractorResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FarmName    string `json:"farm_name"`
	FactoryName string `json:"factory_name"`
}

func toTruckResponse(t haulage.Truck) TruckResponse {
	return TruckResponse{ID: t.ID.String(), TruckNumber: t.TruckNumber}
}

func toFarmResponse(f haulage.Farm) PartyResponse {
	return PartyResponse{ID: f.ID.String(), Name: f.Name}
}

func toFactoryResponse(f haulage.Factory) PartyResponse {
	return PartyResponse{ID: f.ID.String(), Name: f.Name}
}

func toContractorResponse(c haulage.Contractor) ContractorResponse {
	return ContractorResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		FarmName:    c.FarmName,
		FactoryName: c.FactoryName,
	}
}

// =============================================================================
// Supply records
// =============================================================================

// WeighSideResponse is one weigh-in with its derived allowed weight and total
type WeighSideResponse struct {
	Weight        *string `json:"weight"`
	DiscountRate  string  `json:"discount_rate"`
	PricePerKilo  *string `json:"price_per_kilo"`
	AllowedWeight string  `json:"allowed_weight"`
	Total         string  `json:"total"`
}

// SettlementResponse is the money picture of one supply record
type SettlementResponse struct {
	FarmAllowedWeight    string `json:"farm_allowed_weight"`
	FarmTotal            string `json:"farm_total"`
	FactoryAllowedWeight string `json:"factory_allowed_weight"`
	FactoryTotal         string `json:"factory_total"`
	FreightCost          string `json:"freight_cost"`
	ProfitLoss           string `json:"profit_loss"`
	ProfitMargin         string `json:"profit_margin"`
	ProfitStatus         string `json:"profit_status"`
}

// SupplyRecordResponse is a supply record with resolved names and settlement
type SupplyRecordResponse struct {
	ID             string             `json:"id"`
	EntryDate      string             `json:"entry_date"`
	TruckID        *string            `json:"truck_id"`
	TruckNumber    string             `json:"truck_number"`
	FarmID         *string            `json:"farm_id"`
	FarmName       string             `json:"farm_name"`
	FactoryID      *string            `json:"factory_id"`
	FactoryName    string             `json:"factory_name"`
	Farm           WeighSideResponse  `json:"farm"`
	Factory        WeighSideResponse  `json:"factory"`
	FreightCost    string             `json:"freight_cost"`
	Notes          string             `json:"notes"`
	ExpectedAmount string             `json:"expected_amount"`
	ReceivedAmount string             `json:"received_amount"`
	Settlement     SettlementResponse `json:"settlement"`
	Incomplete     bool               `json:"incomplete"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func toWeighSideResponse(s haulage.WeighSide) WeighSideResponse {
	return WeighSideResponse{
		Weight:        optionalAmount(s.Weight),
		DiscountRate:  amount(s.DiscountRate),
		PricePerKilo:  optionalAmount(s.PricePerKilo),
		AllowedWeight: amount(s.AllowedWeight()),
		Total:         amount(s.Total()),
	}
}

func toSettlementResponse(s haulage.SettlementResult) SettlementResponse {
	return SettlementResponse{
		FarmAllowedWeight:    amount(s.FarmAllowedWeight),
		FarmTotal:            amount(s.FarmTotal),
		FactoryAllowedWeight: amount(s.FactoryAllowedWeight),
		FactoryTotal:         amount(s.FactoryTotal),
		FreightCost:          amount(s.FreightCost),
		ProfitLoss:           amount(s.ProfitLoss),
		ProfitMargin:         amount(s.ProfitMargin),
		ProfitStatus:         s.ProfitStatus.String(),
	}
}

func toSupplyRecordResponse(v haulageapp.RecordView) SupplyRecordResponse {
	r := v.Record
	return SupplyRecordResponse{
		ID:             r.ID.String(),
		EntryDate:      formatDay(r.EntryDate),
		TruckID:        optionalID(r.TruckID),
		TruckNumber:    v.TruckNumber,
		FarmID:         optionalID(r.FarmID),
		FarmName:       v.FarmName,
		FactoryID:      optionalID(r.FactoryID),
		FactoryName:    v.FactoryName,
		Farm:           toWeighSideResponse(r.Farm),
		Factory:        toWeighSideResponse(r.Factory),
		FreightCost:    amount(r.FreightCost),
		Notes:          r.Notes,
		ExpectedAmount: amount(r.Settlement.ExpectedAmount),
		ReceivedAmount: amount(r.Settlement.ReceivedAmount),
		Settlement:     toSettlementResponse(v.Settlement),
		Incomplete:     r.IsIncomplete(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// =============================================================================
// Cash
// =============================================================================

// ReceiptResponse is a cash receipt in API responses
type ReceiptResponse struct {
	ID             string `json:"id"`
	SourceName     string `json:"source_name"`
	ReceivedAmount string `json:"received_amount"`
	PaidBackAmount string `json:"paid_back_amount"`
	Remaining      string `json:"remaining"`
	Date           string `json:"date"`
}

// DisbursementResponse is a cash disbursement in API responses
type DisbursementResponse struct {
	ID              string `json:"id"`
	EntityName      string `json:"entity_name"`
	TransactionDate string `json:"transaction_date"`
	Credit          string `json:"credit"`
	Debit           string `json:"debit"`
	Balance         string `json:"balance"`
	Notes           string `json:"notes"`
}

func toReceiptResponse(r cashflow.CashReceipt) ReceiptResponse {
	return ReceiptResponse{
		ID:             r.ID.String(),
		SourceName:     r.SourceName,
		ReceivedAmount: amount(r.ReceivedAmount),
		PaidBackAmount: amount(r.PaidBackAmount),
		Remaining:      amount(r.Remaining()),
		Date:           formatDay(r.Date),
	}
}

func toDisbursementResponse(d cashflow.CashDisbursement) DisbursementResponse {
	return DisbursementResponse{
		ID:              d.ID.String(),
		EntityName:      d.EntityName,
		TransactionDate: formatDay(d.TransactionDate),
		Credit:          amount(d.Credit),
		Debit:           amount(d.Debit),
		Balance:         amount(d.Balance()),
		Notes:           d.Notes,
	}
}

// LedgerEntryResponse is one statement line. Receipt lines fill the
// received/paid-back columns, disbursement lines the credit/debit columns.
type LedgerEntryResponse struct {
	Kind           string  `json:"kind"`
	SourceID       string  `json:"source_id"`
	Date           string  `json:"date"`
	Counterparty   string  `json:"counterparty"`
	ReceivedAmount *string `json:"received_amount,omitempty"`
	PaidBackAmount *string `json:"paid_back_amount,omitempty"`
	Remaining      *string `json:"remaining,omitempty"`
	Credit         *string `json:"credit,omitempty"`
	Debit          *string `json:"debit,omitempty"`
	Balance        *string `json:"balance,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	RunningCredit  string  `json:"running_credit"`
	RunningDebit   string  `json:"running_debit"`
	RunningBalance string  `json:"running_balance"`
}

// LedgerResponse is the merged statement of one counterparty or everyone
type LedgerResponse struct {
	Counterparty          string                `json:"counterparty"`
	Entries               []LedgerEntryResponse `json:"entries"`
	TotalReceivedCurrent  string                `json:"total_received_current"`
	TotalPaidBack         string                `json:"total_paid_back"`
	TotalRemaining        string                `json:"total_remaining"`
	TotalDisbursedCurrent string                `json:"total_disbursed_current"`
	TreasuryNet           string                `json:"treasury_net"`
	TotalCredit           string                `json:"total_credit"`
	TotalDebit            string                `json:"total_debit"`
	FinalBalance          string                `json:"final_balance"`
}

func amountPtr(d decimal.Decimal) *string {
	s := amount(d)
	return &s
}

func toLedgerEntryResponse(e cashflow.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		Kind:           string(e.Line.Kind()),
		SourceID:       e.Line.SourceID().String(),
		Date:           formatDay(e.Line.Date()),
		Counterparty:   e.Line.Counterparty(),
		RunningCredit:  amount(e.RunningCredit),
		RunningDebit:   amount(e.RunningDebit),
		RunningBalance: amount(e.RunningBalance),
	}
	switch line := e.Line.(type) {
	case cashflow.ReceiptLine:
		resp.ReceivedAmount = amountPtr(line.ReceivedAmount)
		resp.PaidBackAmount = amountPtr(line.PaidBackAmount)
		resp.Remaining = amountPtr(line.Remaining)
	case cashflow.DisbursementLine:
		resp.Credit = amountPtr(line.Credit)
		resp.Debit = amountPtr(line.Debit)
		resp.Balance = amountPtr(line.Balance)
		resp.Notes = line.Notes
	}
	return resp
}

func toLedgerResponse(v cashflow.LedgerView) LedgerResponse {
	entries := make([]LedgerEntryResponse, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, toLedgerEntryResponse(e))
	}
	return LedgerResponse{
		Counterparty:          v.Counterparty,
		Entries:               entries,
		TotalReceivedCurrent:  amount(v.TotalReceivedCurrent),
		TotalPaidBack:         amount(v.TotalPaidBack),
		TotalRemaining:        amount(v.TotalRemaining),
		TotalDisbursedCurrent: amount(v.TotalDisbursedCurrent),
		TreasuryNet:           amount(v.TreasuryNet),
		TotalCredit:           amount(v.TotalCredit),
		TotalDebit:            amount(v.TotalDebit),
		FinalBalance:          amount(v.FinalBalance),
	}
}

// =============================================================================
// Reports
// =============================================================================

// DateRangeResponse echoes a report's range; empty bounds are open
type DateRangeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func toDateRangeResponse(r report.DateRange) DateRangeResponse {
	return DateRangeResponse{From: formatDay(r.From), To: formatDay(r.To)}
}

// RecordRowResponse is one supply record in the per-record report
type RecordRowResponse struct {
	RecordID            string             `json:"record_id"`
	EntryDate           string             `json:"entry_date"`
	TruckNumber         string             `json:"truck_number"`
	FarmName            string             `json:"farm_name"`
	FactoryName         string             `json:"factory_name"`
	FarmWeight          string             `json:"farm_weight"`
	FarmDiscountRate    string             `json:"farm_discount_rate"`
	FarmPricePerKilo    string             `json:"farm_price_per_kilo"`
	FactoryWeight       string             `json:"factory_weight"`
	FactoryDiscountRate string             `json:"factory_discount_rate"`
	FactoryPricePerKilo string             `json:"factory_price_per_kilo"`
	Notes               string             `json:"notes"`
	Settlement          SettlementResponse `json:"settlement"`
}

// RecordTotalsResponse sums the per-record report
type RecordTotalsResponse struct {
	RecordCount    int    `json:"record_count"`
	FarmWeight     string `json:"farm_weight"`
	FactoryWeight  string `json:"factory_weight"`
	FarmTotal      string `json:"farm_total"`
	FactoryTotal   string `json:"factory_total"`
	FreightCost    string `json:"freight_cost"`
	ProfitLoss     string `json:"profit_loss"`
	ProfitCount    int    `json:"profit_count"`
	LossCount      int    `json:"loss_count"`
	BreakEvenCount int    `json:"break_even_count"`
}

// RecordReportResponse is the per-record report
type RecordReportResponse struct {
	Rows   []RecordRowResponse  `json:"rows"`
	Totals RecordTotalsResponse `json:"totals"`
}

func toRecordReportResponse(rep report.RecordReport) RecordReportResponse {
	rows := make([]RecordRowResponse, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, RecordRowResponse{
			RecordID:            r.RecordID.String(),
			EntryDate:           formatDay(r.EntryDate),
			TruckNumber:         r.TruckNumber,
			FarmName:            r.FarmName,
			FactoryName:         r.FactoryName,
			FarmWeight:          amount(r.FarmWeight),
			FarmDiscountRate:    amount(r.FarmDiscountRate),
			FarmPricePerKilo:    amount(r.FarmPricePerKilo),
			FactoryWeight:       amount(r.FactoryWeight),
			FactoryDiscountRate: amount(r.FactoryDiscountRate),
			FactoryPricePerKilo: amount(r.FactoryPricePerKilo),
			Notes:               r.Notes,
			Settlement:          toSettlementResponse(r.Settlement),
		})
	}
	t := rep.Totals
	return RecordReportResponse{
		Rows: rows,
		Totals: RecordTotalsResponse{
			RecordCount:    t.RecordCount,
			FarmWeight:     amount(t.FarmWeight),
			FactoryWeight:  amount(t.FactoryWeight),
			FarmTotal:      amount(t.FarmTotal),
			FactoryTotal:   amount(t.FactoryTotal),
			FreightCost:    amount(t.FreightCost),
			ProfitLoss:     amount(t.ProfitLoss),
			ProfitCount:    t.ProfitCount,
			LossCount:      t.LossCount,
			BreakEvenCount: t.BreakEvenCount,
		},
	}
}

// PeriodRowResponse is one (date, farm, factory, truck) group
type PeriodRowResponse struct {
	Date           string `json:"date"`
	FarmName       string `json:"farm_name"`
	FactoryName    string `json:"factory_name"`
	TruckNumber    string `json:"truck_number"`
	RecordCount    int    `json:"record_count"`
	FarmWeight     string `json:"farm_weight"`
	FactoryWeight  string `json:"factory_weight"`
	FreightCost    string `json:"freight_cost"`
	FarmCost       string `json:"farm_cost"`
	FactoryRevenue string `json:"factory_revenue"`
	ProfitLoss     string `json:"profit_loss"`
	ProfitStatus   string `json:"profit_status"`
}

// PeriodTotalsResponse sums the grouped report
type PeriodTotalsResponse struct {
	FarmWeight     string `json:"farm_weight"`
	FactoryWeight  string `json:"factory_weight"`
	FreightCost    string `json:"freight_cost"`
	FarmCost       string `json:"farm_cost"`
	FactoryRevenue string `json:"factory_revenue"`
	ProfitLoss     string `json:"profit_loss"`
}

// PeriodReportResponse is the grouped report
type PeriodReportResponse struct {
	Rows   []PeriodRowResponse  `json:"rows"`
	Totals PeriodTotalsResponse `json:"totals"`
}

func toPeriodRowResponse(r report.PeriodRow) PeriodRowResponse {
	return PeriodRowResponse{
		Date:           formatDay(r.Date),
		FarmName:       r.FarmName,
		FactoryName:    r.FactoryName,
		TruckNumber:    r.TruckNumber,
		RecordCount:    r.RecordCount,
		FarmWeight:     amount(r.FarmWeight),
		FactoryWeight:  amount(r.FactoryWeight),
		FreightCost:    amount(r.FreightCost),
		FarmCost:       amount(r.FarmCost),
		FactoryRevenue: amount(r.FactoryRevenue),
		ProfitLoss:     amount(r.ProfitLoss),
		ProfitStatus:   r.ProfitStatus.String(),
	}
}

func toPeriodReportResponse(rep report.PeriodReport) PeriodReportResponse {
	rows := make([]PeriodRowResponse, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, toPeriodRowResponse(r))
	}
	t := rep.Totals
	return PeriodReportResponse{
		Rows: rows,
		Totals: PeriodTotalsResponse{
			FarmWeight:     amount(t.FarmWeight),
			FactoryWeight:  amount(t.FactoryWeight),
			FreightCost:    amount(t.FreightCost),
			FarmCost:       amount(t.FarmCost),
			FactoryRevenue: amount(t.FactoryRevenue),
			ProfitLoss:     amount(t.ProfitLoss),
		},
	}
}

// FactoryRowResponse is a grouped row with its transport contractor
type FactoryRowResponse struct {
	PeriodRowResponse
	ContractorName string `json:"contractor_name"`
}

// FactoryReportResponse is supply delivered to factories against cash received
type FactoryReportResponse struct {
	FactoryName   string               `json:"factory_name"`
	Range         DateRangeResponse    `json:"range"`
	Rows          []FactoryRowResponse `json:"rows"`
	TotalWeight   string               `json:"total_weight"`
	TotalRevenue  string               `json:"total_revenue"`
	TotalReceived string               `json:"total_received"`
	Net           string               `json:"net"`
}

func toFactoryReportResponse(rep report.FactoryReport) FactoryReportResponse {
	rows := make([]FactoryRowResponse, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, FactoryRowResponse{
			PeriodRowResponse: toPeriodRowResponse(r.PeriodRow),
			ContractorName:    r.ContractorName,
		})
	}
	return FactoryReportResponse{
		FactoryName:   rep.FactoryName,
		Range:         toDateRangeResponse(rep.Range),
		Rows:          rows,
		TotalWeight:   amount(rep.TotalWeight),
		TotalRevenue:  amount(rep.TotalRevenue),
		TotalReceived: amount(rep.TotalReceived),
		Net:           amount(rep.Net),
	}
}

// FarmReportResponse is supply bought from farms against cash disbursed
type FarmReportResponse struct {
	FarmName       string              `json:"farm_name"`
	Range          DateRangeResponse   `json:"range"`
	Rows           []PeriodRowResponse `json:"rows"`
	TotalWeight    string              `json:"total_weight"`
	TotalCost      string              `json:"total_cost"`
	TotalDisbursed string              `json:"total_disbursed"`
	Net            string              `json:"net"`
}

func toFarmReportResponse(rep report.FarmReport) FarmReportResponse {
	rows := make([]PeriodRowResponse, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, toPeriodRowResponse(r))
	}
	return FarmReportResponse{
		FarmName:       rep.FarmName,
		Range:          toDateRangeResponse(rep.Range),
		Rows:           rows,
		TotalWeight:    amount(rep.TotalWeight),
		TotalCost:      amount(rep.TotalCost),
		TotalDisbursed: amount(rep.TotalDisbursed),
		Net:            amount(rep.Net),
	}
}

// CashDayResponse is one day of cash movement
type CashDayResponse struct {
	Date              string `json:"date,omitempty"`
	ReceiptCount      int    `json:"receipt_count"`
	Received          string `json:"received"`
	PaidBack          string `json:"paid_back"`
	Remaining         string `json:"remaining"`
	DisbursementCount int    `json:"disbursement_count"`
	Credit            string `json:"credit"`
	Debit             string `json:"debit"`
	Net               string `json:"net"`
}

// CashReportResponse is cash movement per day over a range
type CashReportResponse struct {
	Range  DateRangeResponse `json:"range"`
	Days   []CashDayResponse `json:"days"`
	Totals CashDayResponse   `json:"totals"`
}

func toCashDayResponse(d report.CashDay) CashDayResponse {
	return CashDayResponse{
		Date:              formatDay(d.Date),
		ReceiptCount:      d.ReceiptCount,
		Received:          amount(d.Received),
		PaidBack:          amount(d.PaidBack),
		Remaining:         amount(d.Remaining),
		DisbursementCount: d.DisbursementCount,
		Credit:            amount(d.Credit),
		Debit:             amount(d.Debit),
		Net:               amount(d.Net),
	}
}

func toCashReportResponse(rep report.CashPeriodReport) CashReportResponse {
	days := make([]CashDayResponse, 0, len(rep.Days))
	for _, d := range rep.Days {
		days = append(days, toCashDayResponse(d))
	}
	return CashReportResponse{
		Range:  toDateRangeResponse(rep.Range),
		Days:   days,
		Totals: toCashDayResponse(rep.Totals),
	}
}

// =============================================================================
// Anomalies
// =============================================================================

// AnomalyResponse is one advisory finding on a supply record
type AnomalyResponse struct {
	RecordID        string `json:"record_id"`
	EntryDate       string `json:"entry_date"`
	Kind            string `json:"kind"`
	Priority        string `json:"priority"`
	Description     string `json:"description"`
	SuggestedAction string `json:"suggested_action"`
	AutoFixable     bool   `json:"auto_fixable"`
}

// ScanResponse is the outcome of one anomaly scan
type ScanResponse struct {
	Scanned int               `json:"scanned"`
	Flags   []AnomalyResponse `json:"flags"`
	Summary map[string]int    `json:"summary"`
}

// AutoFixResponse reports how many records auto-fix changed
type AutoFixResponse struct {
	Fixed int `json:"fixed"`
}

func toAnomalyResponse(f anomaly.Flag) AnomalyResponse {
	return AnomalyResponse{
		RecordID:        f.RecordID.String(),
		EntryDate:       formatDay(f.EntryDate),
		Kind:            f.Kind.String(),
		Priority:        string(f.Priority),
		Description:     f.Description,
		SuggestedAction: f.SuggestedAction,
		AutoFixable:     f.AutoFixable,
	}
}

func toScanResponse(scanned int, flags []anomaly.Flag, summary map[anomaly.Kind]int) ScanResponse {
	resp := ScanResponse{
		Scanned: scanned,
		Flags:   make([]AnomalyResponse, 0, len(flags)),
		Summary: make(map[string]int, len(summary)),
	}
	for _, f := range flags {
		resp.Flags = append(resp.Flags, toAnomalyResponse(f))
	}
	for k, n := range summary {
		resp.Summary[k.String()] = n
	}
	return resp
}
