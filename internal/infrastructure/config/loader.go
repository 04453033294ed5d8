package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment variable override
const EnvPrefix = "TP"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// durationUnits maps every duration key to the unit its raw value is written in
var durationUnits = map[string]time.Duration{
	"server.readTimeout":       time.Second,
	"server.writeTimeout":      time.Second,
	"server.idleTimeout":       time.Second,
	"server.readHeaderTimeout": time.Second,
	"server.shutdownTimeout":   time.Second,
	"database.connMaxLifetime": time.Minute,
	"database.connMaxIdleTime": time.Minute,
	"database.queryTimeout":    time.Second,
	"database.slowThreshold":   time.Millisecond,
	"database.retryDelay":      time.Second,
	"database.monitorInterval": time.Second,
	"queue.visibilityTimeout":  time.Second,
	"queue.pollInterval":       time.Millisecond,
	"worker.processingTimeout": time.Second,
	"worker.minDelay":          time.Millisecond,
	"worker.maxDelay":          time.Millisecond,
	"worker.errorBackoff":      time.Millisecond,
	"recovery.processingLease": time.Second,
	"recovery.pendingGrace":    time.Second,
	"recovery.sweepInterval":   time.Second,
}

// LoadConfig loads configuration for the environment named by TP_ENV
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: Could not load .env file:", err)
	}

	return Load(getEnvironment(), ConfigPaths...)
}

// Load reads <env>.yaml from the first path that has it, applies defaults and
// environment overrides, and validates the result. A missing file is not an
// error; defaults and the environment are used alone.
func Load(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := processEnvOverrides(v); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// loadDotEnvFile loads the first .env file found; existing variables win
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// setDefaults sets default values for every key, which also makes each key visible to AutomaticEnv
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 30)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "transaction_processor")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.path", "transactions.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 5) // minutes
	v.SetDefault("database.connMaxIdleTime", 5) // minutes
	v.SetDefault("database.queryTimeout", 10)   // seconds
	v.SetDefault("database.slowThreshold", 200) // milliseconds
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 2)       // seconds
	v.SetDefault("database.monitorInterval", 30) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("queue.driver", QueueMemory)
	v.SetDefault("queue.visibilityTimeout", 30) // seconds
	v.SetDefault("queue.pollInterval", 500)     // milliseconds
	v.SetDefault("queue.batchSize", 10)

	v.SetDefault("worker.embedded", true)
	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.processingTimeout", 20) // seconds
	v.SetDefault("worker.minDelay", 5000)        // milliseconds
	v.SetDefault("worker.maxDelay", 10000)       // milliseconds
	v.SetDefault("worker.successRate", 0.8)
	v.SetDefault("worker.errorBackoff", 1000) // milliseconds

	v.SetDefault("recovery.processingLease", 0) // seconds
	v.SetDefault("recovery.pendingGrace", 0)    // seconds
	v.SetDefault("recovery.sweepInterval", 30)  // seconds
	v.SetDefault("recovery.batchSize", 100)
}

// getEnvironment determines the environment to use based on TP_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides applies the short database variables and the integer
// duration variables, which AutomaticEnv alone would not decode
func processEnvOverrides(v *viper.Viper) error {
	shortcuts := map[string]string{
		"TP_DB_HOST":     "database.host",
		"TP_DB_PORT":     "database.port",
		"TP_DB_USERNAME": "database.username",
		"TP_DB_PASSWORD": "database.password",
		"TP_DB_NAME":     "database.name",
		"TP_DB_SSL_MODE": "database.sslMode",
		"TP_DB_PATH":     "database.path",
	}
	for env, key := range shortcuts {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	for key := range durationUnits {
		name := envName(key)
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", name, value)
		}
		v.Set(key, n)
	}
	return nil
}

// envName returns the variable AutomaticEnv consults for key
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// processDurations converts raw duration values into their configured units
func processDurations(config *Config) {
	targets := map[string]*time.Duration{
		"server.readTimeout":       &config.Server.ReadTimeout,
		"server.writeTimeout":      &config.Server.WriteTimeout,
		"server.idleTimeout":       &config.Server.IdleTimeout,
		"server.readHeaderTimeout": &config.Server.ReadHeaderTimeout,
		"server.shutdownTimeout":   &config.Server.ShutdownTimeout,
		"database.connMaxLifetime": &config.Database.ConnMaxLifetime,
		"database.connMaxIdleTime": &config.Database.ConnMaxIdleTime,
		"database.queryTimeout":    &config.Database.QueryTimeout,
		"database.slowThreshold":   &config.Database.SlowThreshold,
		"database.retryDelay":      &config.Database.RetryDelay,
		"database.monitorInterval": &config.Database.MonitorInterval,
		"queue.visibilityTimeout":  &config.Queue.VisibilityTimeout,
		"queue.pollInterval":       &config.Queue.PollInterval,
		"worker.processingTimeout": &config.Worker.ProcessingTimeout,
		"worker.minDelay":          &config.Worker.MinDelay,
		"worker.maxDelay":          &config.Worker.MaxDelay,
		"worker.errorBackoff":      &config.Worker.ErrorBackoff,
		"recovery.processingLease": &config.Recovery.ProcessingLease,
		"recovery.pendingGrace":    &config.Recovery.PendingGrace,
		"recovery.sweepInterval":   &config.Recovery.SweepInterval,
	}
	for key, target := range targets {
		*target = time.Duration(*target) * durationUnits[key]
	}
}
