package cashflow

import (
	"context"

	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CashReceiptRepository defines persistence for cash receipts
type CashReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashReceipt, error)
	// FindAll returns receipts in the filter's date range ordered by date, then creation
	FindAll(ctx context.Context, filter shared.Filter) ([]CashReceipt, error)
	Save(ctx context.Context, receipt *CashReceipt) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CashDisbursementRepository defines persistence for cash disbursements
type CashDisbursementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashDisbursement, error)
	// FindAll returns disbursements in the filter's date range ordered by date, then creation
	FindAll(ctx context.Context, filter shared.Filter) ([]CashDisbursement, error)
	Save(ctx context.Context, disbursement *CashDisbursement) error
	Delete(ctx context.Context, id uuid.UUID) error
}
