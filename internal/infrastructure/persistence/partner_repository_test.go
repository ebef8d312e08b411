package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockGormDB opens GORM over a mocked postgres connection
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestNewGormTruckRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		db, _, mockDB := newMockGormDB(t)
		defer mockDB.Close()

		repo := NewGormTruckRepository(db)
		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormTruckRepository_FindByID(t *testing.T) {
	t.Run("finds existing truck", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormTruckRepository(db)

		truckID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "truck_number"}).
			AddRow(truckID, now, now, "AB-101")

		mock.ExpectQuery(`SELECT \* FROM "trucks" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(truckID, 1).
			WillReturnRows(rows)

		truck, err := repo.FindByID(context.Background(), truckID)

		require.NoError(t, err)
		assert.Equal(t, truckID, truck.ID)
		assert.Equal(t, "AB-101", truck.TruckNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing truck", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormTruckRepository(db)

		truckID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "trucks" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(truckID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		truck, err := repo.FindByID(context.Background(), truckID)

		assert.Nil(t, truck)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps driver failures as storage errors", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormTruckRepository(db)

		truckID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "trucks" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(truckID, 1).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.FindByID(context.Background(), truckID)

		assert.ErrorIs(t, err, shared.ErrStorage)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestGormTruckRepository_FindByNumber(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormTruckRepository(db)

	truckID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "truck_number"}).
		AddRow(truckID, now, now, "CD-202")

	mock.ExpectQuery(`SELECT \* FROM "trucks" WHERE truck_number = \$1 ORDER BY created_at ASC.* LIMIT .*`).
		WithArgs("CD-202", 1).
		WillReturnRows(rows)

	truck, err := repo.FindByNumber(context.Background(), "CD-202")

	require.NoError(t, err)
	assert.Equal(t, truckID, truck.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTruckRepository_Save(t *testing.T) {
	t.Run("storage failure is reported", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormTruckRepository(db)

		truck, err := haulage.NewTruck("EF-303")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "trucks"`).WillReturnError(errors.New("disk full"))

		err = repo.Save(context.Background(), truck)
		assert.ErrorIs(t, err, shared.ErrStorage)
	})
}

// ============================================
// Farms and factories
// ============================================

func TestGormFarmRepository_FindByName(t *testing.T) {
	t.Run("finds farm by exact name", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormFarmRepository(db)

		farmID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name"}).
			AddRow(farmID, now, now, "Green Acres")

		mock.ExpectQuery(`SELECT \* FROM "farms" WHERE name = \$1 ORDER BY created_at ASC.* LIMIT .*`).
			WithArgs("Green Acres", 1).
			WillReturnRows(rows)

		farm, err := repo.FindByName(context.Background(), "Green Acres")

		require.NoError(t, err)
		assert.Equal(t, farmID, farm.ID)
		assert.Equal(t, "Green Acres", farm.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormFarmRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "farms" WHERE name = \$1`).
			WithArgs("Nowhere", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByName(context.Background(), "Nowhere")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormFactoryRepository_FindAll(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormFactoryRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name"}).
		AddRow(uuid.New(), now, now, "River Mill").
		AddRow(uuid.New(), now, now, "Sun Mill")

	mock.ExpectQuery(`SELECT \* FROM "factories" ORDER BY name ASC`).
		WillReturnRows(rows)

	factories, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, factories, 2)
	assert.Equal(t, "River Mill", factories[0].Name)
	assert.Equal(t, "Sun Mill", factories[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ============================================
// Contractors
// ============================================

func TestGormContractorRepository_Delete(t *testing.T) {
	t.Run("deletes existing contractor", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormContractorRepository(db)

		id := uuid.New()
		mock.ExpectExec(`DELETE FROM "contractors" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing contractor", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormContractorRepository(db)

		id := uuid.New()
		mock.ExpectExec(`DELETE FROM "contractors" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormContractorRepository_FindAll(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormContractorRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "farm_name", "factory_name"}).
		AddRow(uuid.New(), now, now, "Haul Co", "", "Sun Mill").
		AddRow(uuid.New(), now, now, "Road Ltd", "Hillside", "")

	mock.ExpectQuery(`SELECT \* FROM "contractors" ORDER BY created_at ASC`).
		WillReturnRows(rows)

	contractors, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, contractors, 2)
	assert.Equal(t, "Sun Mill", contractors[0].FactoryName)
	assert.Equal(t, "Hillside", contractors[1].FarmName)
}
