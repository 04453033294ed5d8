package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
)

// ConnectionPoolMetrics tracks database connection pool metrics
type ConnectionPoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
	Healthy            bool
	CheckedAt          time.Time
}

// ConnectionPoolMonitor periodically pings the database and records pool statistics
type ConnectionPoolMonitor struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider

	mutex   sync.RWMutex
	metrics ConnectionPoolMetrics
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Start collects metrics once and then every interval until Stop is called
func (m *ConnectionPoolMonitor) Start(ctx context.Context, interval time.Duration) error {
	if err := m.Collect(ctx); err != nil {
		return err
	}

	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		for m.timeProvider.Sleep(ctx, interval) == nil {
			if err := m.Collect(ctx); err != nil && ctx.Err() == nil {
				m.logger.Error("Failed to collect connection pool metrics", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}()

	return nil
}

// Stop stops the monitoring goroutine and waits for it to exit
func (m *ConnectionPoolMonitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
}

// GetMetrics returns the last collected metrics
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.metrics
}

// Collect pings the database and snapshots the pool statistics
func (m *ConnectionPoolMonitor) Collect(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	pingCtx, cancel := m.timeProvider.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	healthy := true
	if err := sqlDB.PingContext(pingCtx); err != nil {
		healthy = false
		m.logger.Error("Database ping failed", map[string]any{
			"error": err.Error(),
		})
	}

	stats := sqlDB.Stats()
	metrics := ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		Healthy:            healthy,
		CheckedAt:          m.timeProvider.Now(),
	}

	m.mutex.Lock()
	m.metrics = metrics
	m.mutex.Unlock()

	m.logger.Debug("Database connection pool stats", map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		"healthy":              healthy,
	})
	return nil
}
