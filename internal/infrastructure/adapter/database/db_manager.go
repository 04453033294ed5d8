package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/database/migration"
)

// Manager manages database connections
type Manager struct {
	config            *Config
	db                *gorm.DB
	logger            coreport.Logger
	timeProvider      coreport.TimeProvider
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

// Connect opens the database, retrying transient failures, and configures the pool
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"target": m.config.Redacted(),
	})

	dialector, err := m.dialector()
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowThreshold),
		NowFunc: func() time.Time {
			return m.timeProvider.Now()
		},
		PrepareStmt: true,
	}

	retryConfig := RetryConfig{
		MaxRetries:    m.config.RetryAttempts,
		RetryInterval: m.config.RetryDelay,
		MaxInterval:   4 * m.config.RetryDelay,
	}

	var gormDB *gorm.DB
	err = RetryOnTransientError(ctx, retryConfig, m.timeProvider, m.logger, func(ctx context.Context) error {
		db, openErr := gorm.Open(dialector, gormConfig)
		if openErr != nil {
			return openErr
		}

		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}
		if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
			_ = sqlDB.Close()
			return pingErr
		}

		gormDB = db
		return nil
	})
	if err != nil {
		m.logger.Error("Failed to connect to database", map[string]any{
			"error":    err.Error(),
			"attempts": m.config.RetryAttempts,
		})
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	if m.config.Driver == DriverSQLite {
		// One connection: SQLite has a single writer, and an in-memory
		// database lives only as long as its connection
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	} else {
		sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
		sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)
	}

	m.db = gormDB

	m.logger.Info("Successfully connected to database", map[string]any{
		"driver":          m.config.Driver,
		"target":          m.config.Redacted(),
		"max_open_conns":  m.config.MaxOpenConns,
		"query_timeout_s": m.config.QueryTimeout.Seconds(),
	})

	if m.config.MonitorInterval > 0 {
		m.connectionMonitor = NewConnectionPoolMonitor(m.db, m.logger, m.timeProvider)
		if err := m.connectionMonitor.Start(context.WithoutCancel(ctx), m.config.MonitorInterval); err != nil {
			m.logger.Warn("Failed to start connection pool monitoring", map[string]any{"error": err.Error()})
			m.connectionMonitor = nil
		}
	}

	return m.db, nil
}

// dialector picks the GORM driver for the configured database
func (m *Manager) dialector() (gorm.Dialector, error) {
	switch m.config.Driver {
	case DriverPostgres:
		return postgres.Open(m.config.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(m.config.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", m.config.Driver)
	}
}

// Migrate brings the schema up to date
func (m *Manager) Migrate(ctx context.Context) error {
	if m.db == nil {
		return errors.New("database is not connected")
	}
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}

// SchemaVersion returns the recorded schema version, or "" before the first migration
func (m *Manager) SchemaVersion(ctx context.Context) (string, error) {
	if m.db == nil {
		return "", errors.New("database is not connected")
	}
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).GetCurrentVersion(ctx)
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// PoolMetrics returns the last connection pool snapshot, if monitoring is on
func (m *Manager) PoolMetrics() (ConnectionPoolMetrics, bool) {
	if m.connectionMonitor == nil {
		return ConnectionPoolMetrics{}, false
	}
	return m.connectionMonitor.GetMetrics(), true
}

// Ping checks that the database still answers within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return errors.New("database is not connected")
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}

	m.logger.Info("Closing database connection", nil)

	if m.connectionMonitor != nil {
		m.connectionMonitor.Stop()
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	return sqlDB.Close()
}

// WithTimeout returns a context with timeout for database operations
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return m.timeProvider.WithTimeout(ctx, m.config.QueryTimeout)
}
