package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/core"
)

// PoolStatsRecorder receives connection pool snapshots
type PoolStatsRecorder interface {
	ObservePool(stats sql.DBStats)
}

// ConnectionPoolMonitor samples the connection pool on a ticker
type ConnectionPoolMonitor struct {
	db        *Manager
	recorder  PoolStatsRecorder
	logger    coreport.Logger
	lastStats sql.DBStats
	mutex     sync.RWMutex
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(db *Manager, recorder PoolStatsRecorder, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		db:       db,
		recorder: recorder,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start samples once, then keeps sampling every interval until Stop
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("monitor interval must be positive, got: %s", interval)
	}
	if err := m.collectMetrics(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.collectMetrics(); err != nil {
					m.logger.Error("Failed to collect connection pool metrics", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()
	return nil
}

// Stop stops the monitoring
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// GetMetrics returns the last sampled statistics
func (m *ConnectionPoolMonitor) GetMetrics() sql.DBStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.lastStats
}

func (m *ConnectionPoolMonitor) collectMetrics() error {
	sqlDB, err := m.db.DB().DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()

	m.mutex.Lock()
	m.lastStats = stats
	m.mutex.Unlock()

	if m.recorder != nil {
		m.recorder.ObservePool(stats)
	}

	threshold := float64(stats.MaxOpenConnections) * 0.8
	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"inUse":     stats.InUse,
			"maxOpen":   stats.MaxOpenConnections,
			"idle":      stats.Idle,
			"waitCount": stats.WaitCount,
			"waitTime":  stats.WaitDuration.String(),
		})
	}
	return nil
}
