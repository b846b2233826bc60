package database

import (
	"context"
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Manager manages database connections
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	timeProvider      coreport.TimeProvider
	migrationMgr      *migration.MigrationManager
	connectionMonitor *ConnectionPoolMonitor
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Connect opens the pool, retrying the first connection
func (m *Manager) Connect() (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"port":   m.config.Port,
		"name":   m.config.Database,
	})

	attempts := m.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	var gormDB *gorm.DB

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			m.logger.Warn("Retrying database connection", map[string]any{
				"attempt": attempt + 1,
				"of":      attempts,
				"delay":   m.config.RetryDelay.String(),
			})
			time.Sleep(m.config.RetryDelay)
		}

		gormDB, err = m.open()
		if err == nil {
			err = m.ping(gormDB)
		}
		if err == nil {
			break
		}

		m.logger.Error("Failed to connect to database", map[string]any{
			"error":   err.Error(),
			"attempt": attempt + 1,
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":       m.config.Driver,
		"name":         m.config.Database,
		"maxOpenConns": m.config.MaxOpenConns,
		"maxIdleConns": m.config.MaxIdleConns,
		"queryTimeout": m.config.QueryTimeout.String(),
	})

	m.db = gormDB
	m.migrationMgr = migration.NewMigrationManager(gormDB, m.logger, m.timeProvider)
	return m.db, nil
}

func (m *Manager) open() (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel),
		NowFunc: func() time.Time {
			return m.timeProvider.Now()
		},
		TranslateError: true,
	}

	switch m.config.Driver {
	case DriverPostgres:
		gormConfig.PrepareStmt = true
		return gorm.Open(postgres.Open(m.config.DSN()), gormConfig)
	case DriverSQLite:
		return gorm.Open(sqlite.Open(m.config.DSN()), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", m.config.Driver)
	}
}

func (m *Manager) ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.config.QueryTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Migrate brings the schema up to date
func (m *Manager) Migrate(ctx context.Context) error {
	if m.migrationMgr == nil {
		return fmt.Errorf("database is not connected")
	}
	return m.migrationMgr.MigrateAll(ctx)
}

// StartMonitoring publishes pool statistics to recorder every interval
func (m *Manager) StartMonitoring(recorder PoolStatsRecorder, interval time.Duration) error {
	m.connectionMonitor = NewConnectionPoolMonitor(m, recorder, m.logger)
	return m.connectionMonitor.Start(interval)
}

// Ping checks that the database answers within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database is not connected")
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close stops monitoring and closes the pool
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// WithTimeout returns a context with timeout for database operations
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.config.QueryTimeout)
}

// CreateUnitOfWork creates a new UnitOfWork instance
func (m *Manager) CreateUnitOfWork() *UnitOfWork {
	return NewUnitOfWork(m.db, m.logger, m.timeProvider)
}
