package migration_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/metrics"
	timeprovider "github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/time"
)

func newTestDB(t *testing.T) (*database.TestDBManager, *timeprovider.ManualTimeProvider) {
	clock := timeprovider.NewManualTimeProvider(time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC))
	return database.NewTestDBManager(t, logger.NewNoopLogger(), clock), clock
}

func TestMigrateAll(t *testing.T) {
	testDB, clock := newTestDB(t)
	ctx := context.Background()
	manager := migration.NewMigrationManager(testDB.Manager.DB(), logger.NewNoopLogger(), clock)

	version, err := manager.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, migration.CurrentSchemaVersion, version)

	t.Run("second run is a no-op", func(t *testing.T) {
		require.NoError(t, manager.MigrateAll(ctx))

		var count int64
		require.NoError(t, testDB.Manager.DB().Table("migration_versions").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("tables exist", func(t *testing.T) {
		migrator := testDB.Manager.DB().Migrator()
		for _, table := range []string{"users", "transactions", "requests", "notifications"} {
			assert.True(t, migrator.HasTable(table), table)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := manager.GetCurrentVersion(canceled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCreateDefaultUsers(t *testing.T) {
	testDB, clock := newTestDB(t)
	ctx := context.Background()
	uow := testDB.UnitOfWork()
	noop := logger.NewNoopLogger()
	ids := idgen.NewUUIDGenerator()

	ledgerService := ledger.NewService(uow, ids, clock, noop, metrics.Noop{})
	accounts := account.NewService(uow, ledgerService, auth.NewBcryptHasher(bcrypt.MinCost), ids, clock, noop, nil, entity.WelcomeBonus)

	created, err := migration.CreateDefaultUsers(ctx, accounts)
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	user, err := accounts.Authenticate(ctx, "provider@hotfinet.local", migration.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProvider, user.Role)
	assert.Equal(t, entity.WelcomeBonus, user.Coins())

	t.Run("rerun keeps existing accounts", func(t *testing.T) {
		created, err := migration.CreateDefaultUsers(ctx, accounts)
		require.NoError(t, err)
		assert.Equal(t, 0, created)

		wallet, err := ledgerService.Wallet(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.WelcomeBonus, wallet.Coins)
	})
}
