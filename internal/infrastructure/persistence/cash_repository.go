package persistence

import (
	"context"
	"errors"

	"github.com/cropledger/backend/internal/domain/cashflow"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/cropledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCashReceiptRepository implements CashReceiptRepository using GORM
type GormCashReceiptRepository struct {
	db *gorm.DB
}

// NewGormCashReceiptRepository creates a new GormCashReceiptRepository
func NewGormCashReceiptRepository(db *gorm.DB) *GormCashReceiptRepository {
	return &GormCashReceiptRepository{db: db}
}

// FindByID finds a cash receipt by its ID
func (r *GormCashReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashflow.CashReceipt, error) {
	var model models.CashReceiptModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("cash receipt", id)
		}
		return nil, shared.NewStorageError("find cash receipt", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns receipts ordered by date, then creation
func (r *GormCashReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cashflow.CashReceipt, error) {
	query := applyDateRange(r.db.WithContext(ctx).Model(&models.CashReceiptModel{}), "date", filter).
		Order("date ASC").
		Order("created_at ASC")
	query = applyPagination(query, filter)

	var rows []models.CashReceiptModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.NewStorageError("list cash receipts", err)
	}
	receipts := make([]cashflow.CashReceipt, len(rows))
	for i := range rows {
		receipts[i] = *rows[i].ToDomain()
	}
	return receipts, nil
}

// Save creates or updates a cash receipt
func (r *GormCashReceiptRepository) Save(ctx context.Context, receipt *cashflow.CashReceipt) error {
	if err := r.db.WithContext(ctx).Save(models.CashReceiptModelFromDomain(receipt)).Error; err != nil {
		return shared.NewStorageError("save cash receipt", err)
	}
	return nil
}

// Delete removes a cash receipt
func (r *GormCashReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CashReceiptModel{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewStorageError("delete cash receipt", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("cash receipt", id)
	}
	return nil
}

// GormCashDisbursementRepository implements CashDisbursementRepository using GORM
type GormCashDisbursementRepository struct {
	db *gorm.DB
}

// NewGormCashDisbursementRepository creates a new GormCashDisbursementRepository
func NewGormCashDisbursementRepository(db *gorm.DB) *GormCashDisbursementRepository {
	return &GormCashDisbursementRepository{db: db}
}

// FindByID finds a cash disbursement by its ID
func (r *GormCashDisbursementRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashflow.CashDisbursement, error) {
	var model models.CashDisbursementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("cash disbursement", id)
		}
		return nil, shared.NewStorageError("find cash disbursement", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns disbursements ordered by transaction date, then creation
func (r *GormCashDisbursementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cashflow.CashDisbursement, error) {
	query := applyDateRange(r.db.WithContext(ctx).Model(&models.CashDisbursementModel{}), "transaction_date", filter).
		Order("transaction_date ASC").
		Order("created_at ASC")
	query = applyPagination(query, filter)

	var rows []models.CashDisbursementModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.NewStorageError("list cash disbursements", err)
	}
	disbursements := make([]cashflow.CashDisbursement, len(rows))
	for i := range rows {
		disbursements[i] = *rows[i].ToDomain()
	}
	return disbursements, nil
}

// Save creates or updates a cash disbursement
func (r *GormCashDisbursementRepository) Save(ctx context.Context, disbursement *cashflow.CashDisbursement) error {
	if err := r.db.WithContext(ctx).Save(models.CashDisbursementModelFromDomain(disbursement)).Error; err != nil {
		return shared.NewStorageError("save cash disbursement", err)
	}
	return nil
}

// Delete removes a cash disbursement
func (r *GormCashDisbursementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CashDisbursementModel{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewStorageError("delete cash disbursement", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("cash disbursement", id)
	}
	return nil
}

var (
	_ cashflow.CashReceiptRepository      = (*GormCashReceiptRepository)(nil)
	_ cashflow.CashDisbursementRepository = (*GormCashDisbursementRepository)(nil)
)
