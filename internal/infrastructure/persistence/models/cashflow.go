package models

import (
	"time"

	"github.com/cropledger/backend/internal/domain/cashflow"
	"github.com/shopspring/decimal"
)

// CashReceiptModel is the persistence model for the CashReceipt entity.
// RemainingAmount is written for SQL consumers and never read back.
type CashReceiptModel struct {
	BaseModel
	SourceName      string          `gorm:"type:varchar(200);not null;index"`
	ReceivedAmount  decimal.Decimal `gorm:"type:numeric;not null"`
	PaidBackAmount  decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Date            time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CashReceiptModel) TableName() string {
	return "cash_receipts"
}

// ToDomain converts the persistence model to a domain CashReceipt
func (m *CashReceiptModel) ToDomain() *cashflow.CashReceipt {
	return &cashflow.CashReceipt{
		BaseEntity:     m.BaseModel.ToDomain(),
		SourceName:     m.SourceName,
		ReceivedAmount: m.ReceivedAmount,
		PaidBackAmount: m.PaidBackAmount,
		Date:           m.Date.UTC(),
	}
}

// CashReceiptModelFromDomain creates a persistence model from a domain CashReceipt
func CashReceiptModelFromDomain(r *cashflow.CashReceipt) *CashReceiptModel {
	m := &CashReceiptModel{
		SourceName:      r.SourceName,
		ReceivedAmount:  r.ReceivedAmount,
		PaidBackAmount:  r.PaidBackAmount,
		RemainingAmount: r.Remaining(),
		Date:            r.Date,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// CashDisbursementModel is the persistence model for the CashDisbursement entity
type CashDisbursementModel struct {
	BaseModel
	EntityName      string          `gorm:"type:varchar(200);not null;index"`
	TransactionDate time.Time       `gorm:"not null;index"`
	Credit          decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Debit           decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CashDisbursementModel) TableName() string {
	return "cash_disbursements"
}

// ToDomain converts the persistence model to a domain CashDisbursement
func (m *CashDisbursementModel) ToDomain() *cashflow.CashDisbursement {
	return &cashflow.CashDisbursement{
		BaseEntity:      m.BaseModel.ToDomain(),
		EntityName:      m.EntityName,
		TransactionDate: m.TransactionDate.UTC(),
		Credit:          m.Credit,
		Debit:           m.Debit,
		Notes:           m.Notes,
	}
}

// CashDisbursementModelFromDomain creates a persistence model from a domain CashDisbursement
func CashDisbursementModelFromDomain(d *cashflow.CashDisbursement) *CashDisbursementModel {
	m := &CashDisbursementModel{
		EntityName:      d.EntityName,
		TransactionDate: d.TransactionDate,
		Credit:          d.Credit,
		Debit:           d.Debit,
		Notes:           d.Notes,
	}
	m.FromDomainBaseEntity(d.BaseEntity)
	return m
}
