//go:build integration

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/cropledger/backend/internal/domain/cashflow"
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/cropledger/backend/internal/infrastructure/migration"
	"github.com/cropledger/backend/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/lib/pq"
)

// newPostgresTestDB starts a throwaway PostgreSQL container and applies the
// embedded migrations to it
func newPostgresTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("cropledger_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrateDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	m, err := migration.NewFromFS(migrateDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestPostgres_MigratedSchemaRoundTrips(t *testing.T) {
	db := newPostgresTestDB(t)
	ctx := context.Background()

	farms := NewGormFarmRepository(db)
	factories := NewGormFactoryRepository(db)
	records := NewGormSupplyRecordRepository(db)
	receipts := NewGormCashReceiptRepository(db)

	farm, err := haulage.NewFarm("Green Acres")
	require.NoError(t, err)
	require.NoError(t, farms.Save(ctx, farm))
	factory, err := haulage.NewFactory("Sun Mill")
	require.NoError(t, err)
	require.NoError(t, factories.Save(ctx, factory))

	t.Run("name lookup", func(t *testing.T) {
		found, err := farms.FindByName(ctx, "Green Acres")
		require.NoError(t, err)
		assert.Equal(t, farm.ID, found.ID)
	})

	t.Run("supply record with settlement", func(t *testing.T) {
		record, err := haulage.NewSupplyRecord(haulage.SupplyDetails{
			EntryDate:   day(4),
			FarmID:      &farm.ID,
			FactoryID:   &factory.ID,
			Farm:        haulage.NewWeighSide(decimal.NewFromInt(1000), decimal.NewFromInt(2), decimal.NewFromInt(3)),
			Factory:     haulage.NewWeighSide(decimal.NewFromInt(980), decimal.NewFromInt(1), decimal.NewFromInt(4)),
			FreightCost: decimal.NewFromInt(200),
		})
		require.NoError(t, err)
		require.NoError(t, records.Save(ctx, record))

		found, err := records.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.True(t, found.Settlement.ExpectedAmount.Equal(decimal.RequireFromString("3880.8")))

		require.NoError(t, records.Delete(ctx, record.ID))
		_, err = records.FindByID(ctx, record.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("fractional inputs keep full precision", func(t *testing.T) {
		record, err := haulage.NewSupplyRecord(haulage.SupplyDetails{
			EntryDate: day(5),
			FarmID:    &farm.ID,
			FactoryID: &factory.ID,
			Farm:      haulage.NewWeighSide(decimal.RequireFromString("1000.12345"), decimal.RequireFromString("2.125"), decimal.RequireFromString("3.141592")),
			Factory:   haulage.NewWeighSide(decimal.RequireFromString("999.98765"), decimal.Zero, decimal.RequireFromString("4.000001")),
		})
		require.NoError(t, err)
		require.NoError(t, records.Save(ctx, record))

		found, err := records.FindByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "1000.12345", found.Farm.Weight.Decimal.String())
		assert.Equal(t, "3.141592", found.Farm.PricePerKilo.Decimal.String())
		assert.True(t, found.Settlement.ExpectedAmount.Equal(record.Settlement.ExpectedAmount),
			"stored %s, computed %s", found.Settlement.ExpectedAmount, record.Settlement.ExpectedAmount)
	})

	t.Run("cash receipt round trips", func(t *testing.T) {
		receipt, err := cashflow.NewCashReceipt("Sun Mill", decimal.NewFromInt(1000), decimal.NewFromInt(250), day(6))
		require.NoError(t, err)
		require.NoError(t, receipts.Save(ctx, receipt))

		all, err := receipts.FindAll(ctx, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.True(t, all[0].Remaining().Equal(decimal.NewFromInt(750)))
	})
}
