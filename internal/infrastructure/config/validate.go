package config

import (
	"fmt"
	"strings"
)

// DriverMemory keeps transactions in process memory instead of a database
const DriverMemory = "memory"

// Validate ensures all required configuration values are present and consistent
func (c *Config) Validate() error {
	var problems []string

	switch c.Environment {
	case Development, Production, Test:
	default:
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			c.Environment, Development, Production, Test)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server.shutdownTimeout must be positive")
	}

	switch c.Database.Driver {
	case DriverMemory:
	default:
		if err := c.Database.ToDatabaseConfig().Validate(); err != nil {
			problems = append(problems, "database: "+err.Error())
		}
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("logger.format must be json or console, got: %s", c.Logger.Format))
	}

	switch c.Queue.Driver {
	case QueueMemory:
	case QueueDatabase:
		if c.Database.Driver == DriverMemory {
			problems = append(problems, "queue.driver database needs a database driver other than memory")
		}
	default:
		problems = append(problems, fmt.Sprintf("queue.driver must be %s or %s, got: %s", QueueMemory, QueueDatabase, c.Queue.Driver))
	}
	if c.Queue.BatchSize <= 0 {
		problems = append(problems, "queue.batchSize must be positive")
	}

	if c.Worker.Concurrency <= 0 {
		problems = append(problems, "worker.concurrency must be positive")
	}
	if c.Worker.MinDelay < 0 || c.Worker.MaxDelay < c.Worker.MinDelay {
		problems = append(problems, "worker.minDelay must be non-negative and not above worker.maxDelay")
	}
	if c.Worker.SuccessRate < 0 || c.Worker.SuccessRate > 1 {
		problems = append(problems, fmt.Sprintf("worker.successRate must be within [0,1], got: %g", c.Worker.SuccessRate))
	}

	if lease := c.Recovery.ProcessingLease; lease > 0 {
		if c.Worker.ProcessingTimeout <= 0 || lease <= c.Worker.ProcessingTimeout {
			problems = append(problems, "recovery.processingLease must exceed a positive worker.processingTimeout")
		}
	}
	if (c.Recovery.ProcessingLease > 0 || c.Recovery.PendingGrace > 0) && c.Recovery.SweepInterval <= 0 {
		problems = append(problems, "recovery.sweepInterval must be positive when recovery is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Production reports whether the configuration targets production
func (c *Config) Production() bool {
	return c.Environment == Production
}

// Warnings lists settings that are legal but risky for the environment
func (c *Config) Warnings() []string {
	if !c.Production() {
		return nil
	}

	var warnings []string
	if c.Database.Driver == "postgres" {
		switch strings.ToLower(c.Database.SSLMode) {
		case "require", "verify-ca", "verify-full":
		default:
			warnings = append(warnings, "database.sslMode should be require, verify-ca or verify-full in production")
		}
	}
	if c.Database.Driver == DriverMemory || c.Queue.Driver == QueueMemory {
		warnings = append(warnings, "memory drivers lose transactions and notifications on restart")
	}
	return warnings
}
