package migration

import (
	"context"
	"errors"
	"time"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "2.0.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db               *gorm.DB
	logger           coreport.Logger
	timeProvider     coreport.TimeProvider
	advancedIndexMgr *AdvancedIndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:               db,
		logger:           logger,
		timeProvider:     timeProvider,
		advancedIndexMgr: NewAdvancedIndexManager(db, logger),
	}
}

// MigrateAll brings the schema to CurrentSchemaVersion. Running it again on
// an up to date database is a no-op.
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"targetVersion": CurrentSchemaVersion,
	})

	if err := m.db.WithContext(ctx).AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"auto-migrate models", m.autoMigrateModels},
		{"create indexes", m.createIndexes},
		{"create advanced indexes", m.createAdvancedIndexes},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			m.logger.Error("Migration step failed", map[string]any{
				"step":           step.name,
				"error":          err.Error(),
				"currentVersion": currentVersion,
				"targetVersion":  CurrentSchemaVersion,
			})
			return err
		}
	}

	if err := m.setVersion(ctx, CurrentSchemaVersion, "Ledger, requests and notifications schema"); err != nil {
		m.logger.Error("Failed to update schema version", map[string]any{
			"error":   err.Error(),
			"version": CurrentSchemaVersion,
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion gets the current migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").Order("id desc").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return version.Version, nil
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	appliedAt := time.Now()
	if m.timeProvider != nil {
		appliedAt = m.timeProvider.Now()
	}

	return m.db.WithContext(ctx).Create(&model.MigrationVersion{
		Version:   version,
		AppliedAt: appliedAt,
		Details:   details,
	}).Error
}

// autoMigrateModels auto-migrates database models
func (m *MigrationManager) autoMigrateModels(ctx context.Context) error {
	return m.db.WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.Transaction{},
		&model.Request{},
		&model.Notification{},
	)
}

// createIndexes creates the partial unique indexes both drivers support.
// They back the one-active-request rule and clientRef idempotency.
func (m *MigrationManager) createIndexes(ctx context.Context) error {
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_requests_one_active
			ON requests (requester_id) WHERE status IN ('pending', 'accepted')`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_requests_client_ref
			ON requests (requester_id, client_ref) WHERE client_ref <> ''`,
		`CREATE INDEX IF NOT EXISTS idx_requests_status_created
			ON requests (status, created_at)`,
	}
	for _, stmt := range statements {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// createAdvancedIndexes creates PostgreSQL-only indexes
func (m *MigrationManager) createAdvancedIndexes(ctx context.Context) error {
	if m.db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := m.advancedIndexMgr.CreateAdvancedIndexes(ctx); err != nil {
		return err
	}
	return m.advancedIndexMgr.CreatePerformanceTweaks(ctx)
}
