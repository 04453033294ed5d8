package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
)

// HandleResult tells what a worker did with one notification
type HandleResult string

const (
	ResultCompleted  HandleResult = "completed"
	ResultFailed     HandleResult = "failed"
	ResultNotFound   HandleResult = "not_found"
	ResultDuplicate  HandleResult = "duplicate"
	ResultStaleBegin HandleResult = "stale_begin"
	ResultStaleEnd   HandleResult = "stale_finish"
	ResultError      HandleResult = "error"
)

// BatchReport summarises a batch of notifications handled independently
type BatchReport struct {
	Results []HandleResult
	// Errors holds the error for each notification, nil where it was handled.
	// A non-nil entry means the notification should be redelivered.
	Errors []error
}

// Failed returns the number of notifications that should be redelivered
func (r BatchReport) Failed() int {
	n := 0
	for _, err := range r.Errors {
		if err != nil {
			n++
		}
	}
	return n
}

// Worker drives one transaction per notification through the ledger.
// Delivery is at-least-once; duplicate and concurrent deliveries are absorbed
// by the ledger's conditional transitions.
type Worker struct {
	ledger            *Ledger
	processor         Processor
	timeProvider      coreport.TimeProvider
	logger            coreport.Logger
	processingTimeout time.Duration
}

// NewWorker creates a new Worker. A zero processingTimeout leaves the
// processing step bounded only by the caller's context.
func NewWorker(
	ledger *Ledger,
	processor Processor,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	processingTimeout time.Duration,
) *Worker {
	if processor == nil {
		panic("Transaction processor cannot be nil")
	}

	return &Worker{
		ledger:            ledger,
		processor:         processor,
		timeProvider:      timeProvider,
		logger:            logger,
		processingTimeout: processingTimeout,
	}
}

// Handle processes a single notification. A nil error means the notification
// is done with, including the benign duplicate and stale cases; a non-nil
// error means it should be redelivered.
func (w *Worker) Handle(ctx context.Context, notification messaging.WorkNotification) error {
	_, err := w.handle(ctx, notification)
	return err
}

// HandleBatch handles every notification independently; one failure never
// stops the others
func (w *Worker) HandleBatch(ctx context.Context, notifications []messaging.WorkNotification) BatchReport {
	report := BatchReport{
		Results: make([]HandleResult, len(notifications)),
		Errors:  make([]error, len(notifications)),
	}

	for i, n := range notifications {
		report.Results[i], report.Errors[i] = w.handle(ctx, n)
	}

	return report
}

func (w *Worker) handle(ctx context.Context, notification messaging.WorkNotification) (HandleResult, error) {
	id := notification.TransactionID

	txn, err := w.ledger.Read(ctx, id)
	if err != nil {
		if errs.IsNotFoundError(err) {
			w.logger.Error("Transaction not found", map[string]any{
				"transaction_id": id,
			})
			return ResultNotFound, nil
		}
		return ResultError, fmt.Errorf("failed to read transaction %s: %w", id, err)
	}

	if !txn.IsPending() {
		w.logger.Info("Transaction already processed", map[string]any{
			"transaction_id": id,
			"status":         txn.Status,
		})
		return ResultDuplicate, nil
	}

	begin, err := w.ledger.BeginProcessing(ctx, id, txn.Version)
	if err != nil {
		return ResultError, err
	}
	if begin.Stale() {
		w.logger.Info("Transaction claimed by another worker", map[string]any{
			"transaction_id": id,
		})
		return ResultStaleBegin, nil
	}

	outcome, err := w.process(ctx, txn)
	if err != nil {
		// The row stays PROCESSING; redeliveries will see it as already taken.
		// Only lease recovery, when enabled, can hand it back.
		w.logger.Error("Processing interrupted", map[string]any{
			"transaction_id": id,
			"error":          err.Error(),
		})
		return ResultError, fmt.Errorf("%w: transaction %s: %v", errs.ErrProcessingInterrupted, id, err)
	}

	finish, err := w.ledger.Finish(ctx, id, begin.Version, outcome)
	if err != nil {
		return ResultError, err
	}
	if finish.Stale() {
		w.logger.Warn("Transaction status already changed", map[string]any{
			"transaction_id": id,
			"outcome":        outcome.Status,
		})
		return ResultStaleEnd, nil
	}

	if outcome.Status == entity.StatusFailed {
		return ResultFailed, nil
	}
	return ResultCompleted, nil
}

// process runs the processor under the configured bound
func (w *Worker) process(ctx context.Context, txn *entity.Transaction) (Outcome, error) {
	if w.processingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = w.timeProvider.WithTimeout(ctx, w.processingTimeout)
		defer cancel()
	}

	start := w.timeProvider.Now()
	outcome, err := w.processor.Process(ctx, txn)
	if err != nil {
		return Outcome{}, err
	}

	w.logger.Debug("Processing finished", map[string]any{
		"transaction_id": txn.ID,
		"outcome":        outcome.Status,
		"duration_ms":    w.timeProvider.Since(start).Milliseconds(),
	})
	return outcome, nil
}
