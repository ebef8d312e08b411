package persistence

import (
	"context"
	"errors"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/cropledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTruckRepository implements TruckRepository using GORM
type GormTruckRepository struct {
	db *gorm.DB
}

// NewGormTruckRepository creates a new GormTruckRepository
func NewGormTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

// FindByID finds a truck by its ID
func (r *GormTruckRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.Truck, error) {
	var model models.TruckModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("truck", id)
		}
		return nil, shared.NewStorageError("find truck", err)
	}
	return model.ToDomain(), nil
}

// FindByNumber returns the oldest truck with exactly this number
func (r *GormTruckRepository) FindByNumber(ctx context.Context, number string) (*haulage.Truck, error) {
	var model models.TruckModel
	if err := r.db.WithContext(ctx).
		Where("truck_number = ?", number).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("truck", number)
		}
		return nil, shared.NewStorageError("find truck", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every truck ordered by number
func (r *GormTruckRepository) FindAll(ctx context.Context) ([]haulage.Truck, error) {
	var rows []models.TruckModel
	if err := r.db.WithContext(ctx).Order("truck_number ASC").Find(&rows).Error; err != nil {
		return nil, shared.NewStorageError("list trucks", err)
	}
	trucks := make([]haulage.Truck, len(rows))
	for i := range rows {
		trucks[i] = *rows[i].ToDomain()
	}
	return trucks, nil
}

// Save creates or updates a truck
func (r *GormTruckRepository) Save(ctx context.Context, truck *haulage.Truck) error {
	if err := r.db.WithContext(ctx).Save(models.TruckModelFromDomain(truck)).Error; err != nil {
		return shared.NewStorageError("save truck", err)
	}
	return nil
}

// GormFarmRepository implements FarmRepository using GORM
type GormFarmRepository struct {
	db *gorm.DB
}

// NewGormFarmRepository creates a new GormFarmRepository
func NewGormFarmRepository(db *gorm.DB) *GormFarmRepository {
	return &GormFarmRepository{db: db}
}

// FindByID finds a farm by its ID
func (r *GormFarmRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.Farm, error) {
	var model models.FarmModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("farm", id)
		}
		return nil, shared.NewStorageError("find farm", err)
	}
	return model.ToDomain(), nil
}

// FindByName returns the oldest farm with exactly this name
func (r *GormFarmRepository) FindByName(ctx context.Context, name string) (*haulage.Farm, error) {
	var model models.FarmModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("farm", name)
		}
		return nil, shared.NewStorageError("find farm", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every farm ordered by name
func (r *GormFarmRepository) FindAll(ctx context.Context) ([]haulage.Farm, error) {
	var rows []models.FarmModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, shared.NewStorageError("list farms", err)
	}
	farms := make([]haulage.Farm, len(rows))
	for i := range rows {
		farms[i] = *rows[i].ToDomain()
	}
	return farms, nil
}

// Save creates or updates a farm
func (r *GormFarmRepository) Save(ctx context.Context, farm *haulage.Farm) error {
	if err := r.db.WithContext(ctx).Save(models.FarmModelFromDomain(farm)).Error; err != nil {
		return shared.NewStorageError("save farm", err)
	}
	return nil
}

// GormFactoryRepository implements FactoryRepository using GORM
type GormFactoryRepository struct {
	db *gorm.DB
}

// NewGormFactoryRepository creates a new GormFactoryRepository
func NewGormFactoryRepository(db *gorm.DB) *GormFactoryRepository {
	return &GormFactoryRepository{db: db}
}

// FindByID finds a factory by its ID
func (r *GormFactoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.Factory, error) {
	var model models.FactoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("factory", id)
		}
		return nil, shared.NewStorageError("find factory", err)
	}
	return model.ToDomain(), nil
}

// FindByName returns the oldest factory with exactly this name
func (r *GormFactoryRepository) FindByName(ctx context.Context, name string) (*haulage.Factory, error) {
	var model models.FactoryModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("factory", name)
		}
		return nil, shared.NewStorageError("find factory", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every factory ordered by name
func (r *GormFactoryRepository) FindAll(ctx context.Context) ([]haulage.Factory, error) {
	var rows []models.FactoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, shared.NewStorageError("list factories", err)
	}
	factories := make([]haulage.Factory, len(rows))
	for i := range rows {
		factories[i] = *rows[i].ToDomain()
	}
	return factories, nil
}

// Save creates or updates a factory
func (r *GormFactoryRepository) Save(ctx context.Context, factory *haulage.Factory) error {
	if err := r.db.WithContext(ctx).Save(models.FactoryModelFromDomain(factory)).Error; err != nil {
		return shared.NewStorageError("save factory", err)
	}
	return nil
}

// GormContractorRepository implements ContractorRepository using GORM
type GormContractorRepository struct {
	db *gorm.DB
}

// NewGormContractorRepository creates a new GormContractorRepository
func NewGormContractorRepository(db *gorm.DB) *GormContractorRepository {
	return &GormContractorRepository{db: db}
}

// FindByID finds a contractor by its ID
func (r *GormContractorRepository) FindByID(ctx context.Context, id uuid.UUID) (*haulage.Contractor, error) {
	var model models.ContractorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("contractor", id)
		}
		return nil, shared.NewStorageError("find contractor", err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every contractor in creation order
func (r *GormContractorRepository) FindAll(ctx context.Context) ([]haulage.Contractor, error) {
	var rows []models.ContractorModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, shared.NewStorageError("list contractors", err)
	}
	contractors := make([]haulage.Contractor, len(rows))
	for i := range rows {
		contractors[i] = *rows[i].ToDomain()
	}
	return contractors, nil
}

// Save creates or updates a contractor
func (r *GormContractorRepository) Save(ctx context.Context, contractor *haulage.Contractor) error {
	if err := r.db.WithContext(ctx).Save(models.ContractorModelFromDomain(contractor)).Error; err != nil {
		return shared.NewStorageError("save contractor", err)
	}
	return nil
}

// Delete removes a contractor
func (r *GormContractorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContractorModel{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewStorageError("delete contractor", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("contractor", id)
	}
	return nil
}

var (
	_ haulage.TruckRepository      = (*GormTruckRepository)(nil)
	_ haulage.FarmRepository       = (*GormFarmRepository)(nil)
	_ haulage.FactoryRepository    = (*GormFactoryRepository)(nil)
	_ haulage.ContractorRepository = (*GormContractorRepository)(nil)
)
