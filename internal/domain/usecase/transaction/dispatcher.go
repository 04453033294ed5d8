package transaction

import (
	"context"
	"errors"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
)

// DispatcherConfig controls how deliveries are pulled from the consumer
type DispatcherConfig struct {
	Concurrency  int           // number of receive loops
	BatchSize    int           // max deliveries per receive
	ErrorBackoff time.Duration // pause after a failed receive
}

// Dispatcher feeds deliveries from a consumer to the worker on a fixed number
// of goroutines, acking handled notifications and nacking the rest
type Dispatcher struct {
	consumer     messaging.Consumer
	worker       *Worker
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       DispatcherConfig

	mu        sync.Mutex
	cancel    context.CancelFunc
	waitGroup sync.WaitGroup
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(
	consumer messaging.Consumer,
	worker *Worker,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config DispatcherConfig,
) *Dispatcher {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 1
	}
	if config.ErrorBackoff <= 0 {
		config.ErrorBackoff = time.Second
	}

	return &Dispatcher{
		consumer:     consumer,
		worker:       worker,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config,
	}
}

// Start launches the receive loops. It returns immediately; call Shutdown to stop.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}

	ctx, d.cancel = context.WithCancel(ctx)

	d.logger.Info("Starting dispatcher", map[string]any{
		"concurrency": d.config.Concurrency,
		"batch_size":  d.config.BatchSize,
	})

	for i := 0; i < d.config.Concurrency; i++ {
		d.waitGroup.Add(1)
		go d.loop(ctx, i)
	}
}

// Run starts the dispatcher and blocks until ctx is done and every loop has exited
func (d *Dispatcher) Run(ctx context.Context) {
	d.Start(ctx)
	<-ctx.Done()
	d.Shutdown()
}

// Shutdown stops receiving and waits for in-flight batches to finish.
// In-flight processing is bounded by the worker's processing timeout.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	cancel := d.cancel
	d.mu.Unlock()

	if cancel == nil {
		return
	}

	d.logger.Info("Shutting down dispatcher", nil)
	cancel()
	d.waitGroup.Wait()
	d.logger.Info("Dispatcher shut down successfully", nil)
}

// loop is one receive loop
func (d *Dispatcher) loop(ctx context.Context, index int) {
	defer d.waitGroup.Done()

	d.logger.Debug("Dispatcher loop started", map[string]any{"loop": index})

	// Work already received must not be cut short by shutdown
	workCtx := context.WithoutCancel(ctx)

	for {
		deliveries, err := d.consumer.Receive(ctx, d.config.BatchSize)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, errs.ErrQueueClosed) {
				d.logger.Debug("Dispatcher loop stopped", map[string]any{"loop": index})
				return
			}
			d.logger.Error("Failed to receive work notifications", map[string]any{
				"loop":  index,
				"error": err.Error(),
			})
			if d.timeProvider.Sleep(ctx, d.config.ErrorBackoff) != nil {
				return
			}
			continue
		}

		if len(deliveries) > 0 {
			d.dispatch(workCtx, deliveries)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

// dispatch hands a batch to the worker and settles each delivery
func (d *Dispatcher) dispatch(ctx context.Context, deliveries []messaging.Delivery) {
	notifications := make([]messaging.WorkNotification, len(deliveries))
	for i, delivery := range deliveries {
		notifications[i] = delivery.Notification
	}

	report := d.worker.HandleBatch(ctx, notifications)

	for i, delivery := range deliveries {
		if report.Errors[i] != nil {
			d.logger.Error("Process transaction failed", map[string]any{
				"transaction_id": delivery.Notification.TransactionID,
				"attempt":        delivery.Attempt,
				"error":          report.Errors[i].Error(),
			})
			if err := d.consumer.Nack(ctx, delivery); err != nil {
				d.logger.Warn("Failed to release delivery", map[string]any{
					"transaction_id": delivery.Notification.TransactionID,
					"error":          err.Error(),
				})
			}
			continue
		}

		if err := d.consumer.Ack(ctx, delivery); err != nil {
			// The message will come back; the worker treats it as a duplicate
			d.logger.Warn("Failed to acknowledge delivery", map[string]any{
				"transaction_id": delivery.Notification.TransactionID,
				"error":          err.Error(),
			})
		}
	}
}
