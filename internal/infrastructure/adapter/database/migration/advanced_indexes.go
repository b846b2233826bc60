package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates advanced PostgreSQL indexes for the read paths
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	indexes := []struct {
		name string
		sql  string
	}{
		{
			// Provider directory: available accounts by sharing history
			name: "idx_users_available_shared",
			sql: `CREATE INDEX IF NOT EXISTS idx_users_available_shared
				ON users (total_mb_shared DESC, id) WHERE is_available`,
		},
		{
			// Provider inbox and the expiry sweep only ever scan pending rows
			name: "idx_requests_pending_provider",
			sql: `CREATE INDEX IF NOT EXISTS idx_requests_pending_provider
				ON requests (provider_id, created_at) WHERE status = 'pending'`,
		},
		{
			name: "idx_notifications_unread",
			sql: `CREATE INDEX IF NOT EXISTS idx_notifications_unread
				ON notifications (user_id, created_at DESC) WHERE NOT is_read`,
		},
		{
			// The journal is append-only, so BRIN fits its created_at
			name: "idx_transactions_created_at_brin",
			sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
				ON transactions USING BRIN (created_at)
				WITH (pages_per_range = 32)`,
		},
	}

	for _, idx := range indexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL storage settings. Failures are
// logged and ignored.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) error {
	tweaks := []string{
		`ALTER TABLE users SET (fillfactor = 80)`,
		`ALTER TABLE requests SET (fillfactor = 85)`,
		`ALTER TABLE transactions ALTER COLUMN user_id SET STATISTICS 1000`,
	}
	for _, stmt := range tweaks {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.logger.Warn("Failed to apply storage tweak", map[string]any{
				"statement": stmt,
				"error":     err.Error(),
			})
		}
	}
	return nil
}
