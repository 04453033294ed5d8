package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/identity"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/queue"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/repository"
	timeprovider "github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/config"
)

// Container owns every component of a running process
type Container struct {
	Config       *config.Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider

	// Database is nil when transactions are kept in memory
	Database   *database.Manager
	Repository persistence.TransactionRepository
	Queue      messaging.Queue

	Ledger     *transaction.Ledger
	Intake     *transaction.IntakeGuard
	Service    *transaction.Service
	Worker     *transaction.Worker
	Dispatcher *transaction.Dispatcher
	Sweeper    *transaction.RecoverySweeper

	mu          sync.Mutex
	stopWorkers context.CancelFunc
	background  sync.WaitGroup
}

// Option overrides a component New would otherwise build from configuration
type Option func(*options)

type options struct {
	processor    transaction.Processor
	timeProvider coreport.TimeProvider
	idGenerator  coreport.IDGenerator
}

// WithProcessor replaces the simulated processor
func WithProcessor(p transaction.Processor) Option {
	return func(o *options) { o.processor = p }
}

// WithTimeProvider replaces the real clock
func WithTimeProvider(tp coreport.TimeProvider) Option {
	return func(o *options) { o.timeProvider = tp }
}

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(g coreport.IDGenerator) Option {
	return func(o *options) { o.idGenerator = g }
}

// NewLogger builds the process logger from its configuration section
func NewLogger(cfg config.LoggerConfig) (*logger.ZapLogger, error) {
	return logger.NewZapLogger(logger.Options{
		Production: cfg.Format == "json",
		Level:      cfg.Level,
	})
}

// New connects the stores and wires the transaction components. The caller
// owns the returned container and must Close it.
func New(ctx context.Context, cfg *config.Config, log coreport.Logger, opts ...Option) (*Container, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeProvider == nil {
		o.timeProvider = timeprovider.NewRealTimeProvider()
	}
	if o.idGenerator == nil {
		o.idGenerator = identity.NewUUIDGenerator()
	}
	if o.processor == nil {
		o.processor = transaction.NewSimulatedProcessor(cfg.Worker.SimulatorConfig(), o.timeProvider, nil)
	}

	c := &Container{
		Config:       cfg,
		Logger:       log,
		TimeProvider: o.timeProvider,
	}

	if err := c.connectStores(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	validator := transaction.NewIntakeValidator()
	c.Ledger = transaction.NewLedger(c.Repository, c.TimeProvider, log)
	c.Intake = transaction.NewIntakeGuard(c.Ledger, validator, c.Queue, o.idGenerator, c.TimeProvider, log)
	c.Service = transaction.NewTransactionService(c.Intake, c.Ledger, validator, log)
	c.Worker = transaction.NewWorker(c.Ledger, o.processor, c.TimeProvider, log, cfg.Worker.ProcessingTimeout)
	c.Dispatcher = transaction.NewDispatcher(c.Queue, c.Worker, c.TimeProvider, log, transaction.DispatcherConfig{
		Concurrency:  cfg.Worker.Concurrency,
		BatchSize:    cfg.Queue.BatchSize,
		ErrorBackoff: cfg.Worker.ErrorBackoff,
	})
	c.Sweeper = transaction.NewRecoverySweeper(c.Repository, c.Ledger, c.Queue, c.Queue, c.TimeProvider, log, cfg.Recovery.RecoverySweeperConfig())

	return c, nil
}

// connectStores opens the transaction store and the work queue
func (c *Container) connectStores(ctx context.Context) error {
	cfg := c.Config

	if cfg.Database.Driver == config.DriverMemory {
		c.Repository = repository.NewMemoryTransactionRepository()
	} else {
		c.Database = database.NewManager(cfg.Database.ToDatabaseConfig(), c.Logger, c.TimeProvider)
		if _, err := c.Database.Connect(ctx); err != nil {
			return err
		}
		if err := c.Database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.Repository = repository.NewTransactionRepository(c.Database.DB(), c.Logger)
	}

	switch cfg.Queue.Driver {
	case config.QueueDatabase:
		if c.Database == nil {
			return errors.New("database queue requires a database")
		}
		c.Queue = queue.NewDBQueue(c.Database.DB(), c.TimeProvider, c.Logger, cfg.Queue.DBQueueConfig())
	default:
		c.Queue = queue.NewMemoryQueue()
	}

	c.Logger.Info("Stores ready", map[string]any{
		"database": cfg.Database.Driver,
		"queue":    cfg.Queue.Driver,
	})
	return nil
}

// HealthChecks returns the checks served by the health endpoint
func (c *Container) HealthChecks() []handler.HealthCheck {
	if c.Database == nil {
		return nil
	}
	return []handler.HealthCheck{c.Database.Ping}
}

// Router builds the HTTP API
func (c *Container) Router() *gin.Engine {
	return routes.NewRouter(
		c.Logger,
		c.TimeProvider,
		handler.NewTransactionHandler(c.Service, c.Logger),
		handler.NewHealthHandler(c.Logger, c.HealthChecks()...),
	)
}

// Serve runs the HTTP API until ctx is done, then drains it within the
// configured shutdown timeout
func (c *Container) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              net.JoinHostPort(c.Config.Server.Host, strconv.Itoa(c.Config.Server.Port)),
		Handler:           c.Router(),
		ReadTimeout:       c.Config.Server.ReadTimeout,
		WriteTimeout:      c.Config.Server.WriteTimeout,
		ReadHeaderTimeout: c.Config.Server.ReadHeaderTimeout,
		IdleTimeout:       c.Config.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		c.Logger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  c.Config.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("Shutting down server...", nil)
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	}

	shutdownCtx, cancel := c.TimeProvider.WithTimeout(context.WithoutCancel(ctx), c.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	c.Logger.Info("Server exited gracefully", nil)
	return nil
}

// StartWorkers launches the dispatcher and, when enabled, the recovery sweeper
func (c *Container) StartWorkers(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopWorkers != nil {
		return
	}
	ctx, c.stopWorkers = context.WithCancel(ctx)

	c.Dispatcher.Start(ctx)

	if c.Sweeper.Enabled() {
		c.background.Add(1)
		go func() {
			defer c.background.Done()
			c.Sweeper.Run(ctx, c.Config.Recovery.SweepInterval)
		}()
	}
}

// StopWorkers stops receiving, waits for in-flight work and stops the sweeper
func (c *Container) StopWorkers() {
	c.mu.Lock()
	stop := c.stopWorkers
	c.stopWorkers = nil
	c.mu.Unlock()

	if stop == nil {
		return
	}
	stop()
	c.Dispatcher.Shutdown()
	c.background.Wait()
}

// Close stops the workers and releases the queue and the database
func (c *Container) Close() error {
	if c.Dispatcher != nil {
		c.StopWorkers()
	}

	var errs []error
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close queue: %w", err))
		}
	}
	if c.Database != nil {
		if err := c.Database.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
