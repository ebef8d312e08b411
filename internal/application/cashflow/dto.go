package cashflow

import "github.com/shopspring/decimal"

// ReceiptRequest creates or replaces a cash receipt
type ReceiptRequest struct {
	SourceName     string          `json:"source_name" binding:"required,max=200"`
	ReceivedAmount decimal.Decimal `json:"received_amount"`
	PaidBackAmount decimal.Decimal `json:"paid_back_amount"`
	Date           string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// DisbursementRequest creates or replaces a cash disbursement
type DisbursementRequest struct {
	EntityName      string          `json:"entity_name" binding:"required,max=200"`
	TransactionDate string          `json:"transaction_date" binding:"required,datetime=2006-01-02"`
	Credit          decimal.Decimal `json:"credit"`
	Debit           decimal.Decimal `json:"debit"`
	Notes           string          `json:"notes" binding:"max=2000"`
}

// LedgerQuery selects the counterparty of a ledger; empty means everyone
type LedgerQuery struct {
	Counterparty string `form:"counterparty" binding:"max=200"`
}
