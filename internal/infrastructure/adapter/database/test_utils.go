package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
	"github.com/google/uuid"
)

// TestDBManager wraps a migrated in-memory SQLite database for tests
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager opens a private in-memory database, migrates it and closes
// it when the test ends. SQLite serializes writers, so the pool is pinned to
// one connection.
func NewTestDBManager(t *testing.T, logger coreport.Logger, timeProvider coreport.TimeProvider) *TestDBManager {
	t.Helper()

	config := &Config{
		Driver:          DriverSQLite,
		Database:        fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString()),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Hour,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1,
	}

	manager := NewManager(config, logger, timeProvider)
	if _, err := manager.Connect(); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := manager.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// UnitOfWork returns a unit of work over the test database with fast retries
func (m *TestDBManager) UnitOfWork() *UnitOfWork {
	return m.Manager.CreateUnitOfWork().WithRetryConfig(RetryConfig{
		MaxRetries:    3,
		RetryInterval: time.Millisecond,
		MaxInterval:   5 * time.Millisecond,
	})
}
