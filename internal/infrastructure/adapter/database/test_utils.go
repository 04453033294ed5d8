package database

import (
	"context"
	"testing"

	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/time"
)

// TestDBManager provides an isolated, migrated in-memory SQLite database for tests
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager connects to a fresh in-memory database, migrates it and
// closes it when the test ends. A nil logger discards output.
func NewTestDBManager(t testing.TB, log coreport.Logger) *TestDBManager {
	t.Helper()

	if log == nil {
		log = logger.NewNopLogger()
	}
	timeProvider := timeprovider.NewRealTimeProvider()

	config := DefaultConfig()
	config.Driver = DriverSQLite
	config.Path = MemoryPath
	config.LogLevel = "silent"
	config.RetryAttempts = 1
	config.MonitorInterval = 0

	manager := NewManager(config, log, timeProvider)
	if _, err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := manager.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       log,
		TimeProvider: timeProvider,
	}
}

// TruncateAllTables removes every row written by a test
func (m *TestDBManager) TruncateAllTables(t testing.TB) {
	t.Helper()

	for _, table := range []string{"work_messages", "transactions"} {
		if err := m.Manager.DB().Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("Failed to truncate %s: %v", table, err)
		}
	}
}
