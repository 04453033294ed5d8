package transaction

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/persistence"
)

// RecoveryConfig controls the recovery sweeper. A zero duration disables the
// corresponding sweep.
type RecoveryConfig struct {
	// ProcessingLease is how long a transaction may stay PROCESSING before it
	// is handed back to PENDING and republished. Must exceed the worker's
	// processing timeout.
	ProcessingLease time.Duration
	// PendingGrace is how long a transaction may stay PENDING before its
	// notification is published again
	PendingGrace time.Duration
	BatchSize    int
}

// SweepReport counts what one sweep did
type SweepReport struct {
	Reclaimed   int
	Republished int
	// Skipped counts reclaims lost to another actor and pending rows whose
	// notification is still queued
	Skipped int
}

// RecoverySweeper repairs the two states the core cannot leave on its own:
// PROCESSING rows whose worker died, and PENDING rows whose notification was
// never published
type RecoverySweeper struct {
	repo         persistence.TransactionRepository
	ledger       *Ledger
	notifier     messaging.Notifier
	tracker      messaging.Tracker
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       RecoveryConfig
}

// NewRecoverySweeper creates a new RecoverySweeper. With a nil tracker every
// PENDING row past the grace period is republished on every sweep.
func NewRecoverySweeper(
	repo persistence.TransactionRepository,
	ledger *Ledger,
	notifier messaging.Notifier,
	tracker messaging.Tracker,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config RecoveryConfig,
) *RecoverySweeper {
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	return &RecoverySweeper{
		repo:         repo,
		ledger:       ledger,
		notifier:     notifier,
		tracker:      tracker,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config,
	}
}

// Enabled reports whether any sweep is configured
func (s *RecoverySweeper) Enabled() bool {
	return s.config.ProcessingLease > 0 || s.config.PendingGrace > 0
}

// Sweep runs one pass of every enabled sweep
func (s *RecoverySweeper) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	now := s.timeProvider.Now()

	if s.config.ProcessingLease > 0 {
		stuck, err := s.repo.ListByStatusUpdatedBefore(ctx, entity.StatusProcessing, now.Add(-s.config.ProcessingLease), s.config.BatchSize)
		if err != nil {
			return report, err
		}

		for _, txn := range stuck {
			reclaim, err := s.ledger.Reclaim(ctx, txn.ID, txn.Version)
			if err != nil {
				return report, err
			}
			if reclaim.Stale() {
				report.Skipped++
				continue
			}

			s.logger.Warn("Reclaimed transaction with expired processing lease", map[string]any{
				"transaction_id": txn.ID,
				"stuck_since":    txn.UpdatedAt,
			})
			report.Reclaimed++

			if err := s.republish(ctx, txn.ID); err != nil {
				return report, err
			}
			report.Republished++
		}
	}

	if s.config.PendingGrace > 0 {
		waiting, err := s.repo.ListByStatusUpdatedBefore(ctx, entity.StatusPending, now.Add(-s.config.PendingGrace), s.config.BatchSize)
		if err != nil {
			return report, err
		}

		for _, txn := range waiting {
			if s.tracker != nil {
				queued, err := s.tracker.Outstanding(ctx, txn.ID)
				if err != nil {
					return report, err
				}
				if queued {
					report.Skipped++
					continue
				}
			}

			if err := s.republish(ctx, txn.ID); err != nil {
				return report, err
			}
			report.Republished++
		}
	}

	if report.Reclaimed > 0 || report.Republished > 0 {
		s.logger.Info("Recovery sweep completed", map[string]any{
			"reclaimed":   report.Reclaimed,
			"republished": report.Republished,
			"skipped":     report.Skipped,
		})
	}

	return report, nil
}

// Run sweeps every interval until ctx is done
func (s *RecoverySweeper) Run(ctx context.Context, interval time.Duration) {
	if !s.Enabled() {
		s.logger.Info("Recovery sweeper disabled", nil)
		return
	}

	s.logger.Info("Recovery sweeper started", map[string]any{
		"interval":         interval.String(),
		"processing_lease": s.config.ProcessingLease.String(),
		"pending_grace":    s.config.PendingGrace.String(),
	})

	for {
		if err := s.timeProvider.Sleep(ctx, interval); err != nil {
			s.logger.Info("Recovery sweeper stopped", nil)
			return
		}

		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("Recovery sweep failed", map[string]any{
				"error": err.Error(),
			})
		}
	}
}

// republish sends another notification; duplicates are harmless to the worker
func (s *RecoverySweeper) republish(ctx context.Context, id string) error {
	return s.notifier.Publish(ctx, messaging.WorkNotification{TransactionID: id})
}
