package persistence

import (
	"context"
	"errors"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/cropledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSupplyRecordRepository implements SupplyRecordRepository using GORM.
// Each record owns exactly one settlement row which is written in the same transaction.
type GormSupplyRecordRepository struct {
	db *gorm.DB
}

// NewGormSupplyRecordRepository creates a new GormSupplyRecordRepository
func NewGormSupplyRecordRepository(db *gorm.DB) *GormSupplyRecordRepository {
	return &GormSupplyRecordRepository{db: db}
}

// FindByID finds a supply record and its settlement
func (r *GormSupplyRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.SupplyRecord, error) {
	var model models.SupplyRecordModel
	if err := r.db.WithContext(ctx).
		Preload("Settlement").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("supply record", id)
		}
		return nil, shared.NewStorageError("find supply record", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns supply records newest first
func (r *GormSupplyRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]haulage.SupplyRecord, error) {
	query := applyDateRange(r.db.WithContext(ctx).Model(&models.SupplyRecordModel{}), "entry_date", filter).
		Preload("Settlement").
		Order("entry_date DESC").
		Order("created_at DESC")
	query = applyPagination(query, filter)

	var rows []models.SupplyRecordModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.NewStorageError("list supply records", err)
	}
	records := make([]haulage.SupplyRecord, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records, nil
}

// Count counts supply records within the filter's date range
func (r *GormSupplyRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyDateRange(r.db.WithContext(ctx).Model(&models.SupplyRecordModel{}), "entry_date", filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, shared.NewStorageError("count supply records", err)
	}
	return count, nil
}

// Save writes the record and its settlement atomically
func (r *GormSupplyRecordRepository) Save(ctx context.Context, record *haulage.SupplyRecord) error {
	if record.Settlement.ID == uuid.Nil {
		record.Settlement.ID = uuid.New()
	}
	model := models.SupplyRecordModelFromDomain(record)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		return tx.Save(model.Settlement).Error
	})
	if err != nil {
		return shared.NewStorageError("save supply record", err)
	}
	return nil
}

// Delete removes the record together with its settlement
func (r *GormSupplyRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.SettlementModel{}, "supply_record_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.SupplyRecordModel{}, "id = ?", id)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return shared.NewStorageError("delete supply record", err)
	}
	if affected == 0 {
		return shared.NewNotFoundError("supply record", id)
	}
	return nil
}

// applyDateRange bounds column by the filter's inclusive From/To days
func applyDateRange(query *gorm.DB, column string, filter shared.Filter) *gorm.DB {
	if !filter.From.IsZero() {
		query = query.Where(column+" >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where(column+" < ?", filter.To.AddDate(0, 0, 1))
	}
	return query
}

// applyPagination applies limit and offset; a zero page size means no limit
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize <= 0 {
		return query
	}
	return query.Limit(filter.PageSize).Offset(filter.Offset())
}

var _ haulage.SupplyRecordRepository = (*GormSupplyRecordRepository)(nil)
