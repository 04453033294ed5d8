package config

import (
	"time"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/queue"
)

// Queue drivers
const (
	QueueMemory   = "memory"
	QueueDatabase = "database"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Queue       QueueConfig    `mapstructure:"queue"`
	Worker      WorkerConfig   `mapstructure:"worker"`
	Recovery    RecoveryConfig `mapstructure:"recovery"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslMode"`
	Path            string        `mapstructure:"path"` // sqlite file or ":memory:"
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	SlowThreshold   time.Duration `mapstructure:"slowThreshold"`   // milliseconds
	LogLevel        string        `mapstructure:"logLevel"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"`      // seconds
	MonitorInterval time.Duration `mapstructure:"monitorInterval"` // seconds, 0 disables
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// QueueConfig selects and tunes the work queue
type QueueConfig struct {
	Driver            string        `mapstructure:"driver"`
	VisibilityTimeout time.Duration `mapstructure:"visibilityTimeout"` // seconds
	PollInterval      time.Duration `mapstructure:"pollInterval"`      // milliseconds
	BatchSize         int           `mapstructure:"batchSize"`
}

// WorkerConfig contains processing worker settings
type WorkerConfig struct {
	// Embedded runs the worker inside the API process
	Embedded          bool          `mapstructure:"embedded"`
	Concurrency       int           `mapstructure:"concurrency"`
	ProcessingTimeout time.Duration `mapstructure:"processingTimeout"` // seconds, 0 disables
	MinDelay          time.Duration `mapstructure:"minDelay"`          // milliseconds
	MaxDelay          time.Duration `mapstructure:"maxDelay"`          // milliseconds
	SuccessRate       float64       `mapstructure:"successRate"`
	ErrorBackoff      time.Duration `mapstructure:"errorBackoff"` // milliseconds
}

// RecoveryConfig contains recovery sweeper settings
type RecoveryConfig struct {
	ProcessingLease time.Duration `mapstructure:"processingLease"` // seconds, 0 disables
	PendingGrace    time.Duration `mapstructure:"pendingGrace"`    // seconds, 0 disables
	SweepInterval   time.Duration `mapstructure:"sweepInterval"`   // seconds
	BatchSize       int           `mapstructure:"batchSize"`
}

// ToDatabaseConfig converts the section into the database adapter's config
func (c DatabaseConfig) ToDatabaseConfig() *database.Config {
	return &database.Config{
		Driver:          c.Driver,
		Host:            c.Host,
		Port:            c.Port,
		Username:        c.Username,
		Password:        c.Password,
		Database:        c.Name,
		SSLMode:         c.SSLMode,
		Path:            c.Path,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		ConnMaxIdleTime: c.ConnMaxIdleTime,
		QueryTimeout:    c.QueryTimeout,
		SlowThreshold:   c.SlowThreshold,
		LogLevel:        c.LogLevel,
		RetryAttempts:   c.RetryAttempts,
		RetryDelay:      c.RetryDelay,
		MonitorInterval: c.MonitorInterval,
	}
}

// DBQueueConfig converts the section into the database queue's config
func (c QueueConfig) DBQueueConfig() queue.DBQueueConfig {
	return queue.DBQueueConfig{
		VisibilityTimeout: c.VisibilityTimeout,
		PollInterval:      c.PollInterval,
	}
}

// SimulatorConfig converts the section into the simulated processor's config
func (c WorkerConfig) SimulatorConfig() transaction.SimulatorConfig {
	return transaction.SimulatorConfig{
		MinDelay:    c.MinDelay,
		MaxDelay:    c.MaxDelay,
		SuccessRate: c.SuccessRate,
	}
}

// RecoverySweeperConfig converts the section into the sweeper's config
func (c RecoveryConfig) RecoverySweeperConfig() transaction.RecoveryConfig {
	return transaction.RecoveryConfig{
		ProcessingLease: c.ProcessingLease,
		PendingGrace:    c.PendingGrace,
		BatchSize:       c.BatchSize,
	}
}
