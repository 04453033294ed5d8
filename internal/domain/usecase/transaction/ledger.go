package transaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/persistence"
)

// DefaultFailureReason is recorded when a failed outcome carries no reason of its own
const DefaultFailureReason = "Processing failed"

// Transition reports the result of a conditional status change
type Transition struct {
	Result persistence.TransitionResult
	// Version is the row version after the change; only meaningful when applied
	Version int64

	change persistence.StatusChange
}

// Applied reports whether the precondition held and the change was written
func (t Transition) Applied() bool {
	return t.Result == persistence.TransitionApplied
}

// Stale reports whether another actor moved the transaction first
func (t Transition) Stale() bool {
	return t.Result == persistence.TransitionStale
}

// Err returns a *TransitionError wrapping ErrStaleTransition when the change
// lost to another actor, and nil otherwise
func (t Transition) Err() error {
	if !t.Stale() {
		return nil
	}
	return errs.NewTransitionError(t.change.TransactionID, string(t.change.From), string(t.change.To), errs.ErrStaleTransition)
}

// Ledger owns the transaction lifecycle. It is the only writer of status and
// updatedAt, and every status change is a compare-and-set against the store.
// The ledger never retries a stale transition; the caller decides.
type Ledger struct {
	repo         persistence.TransactionRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewLedger creates a new Ledger
func NewLedger(repo persistence.TransactionRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *Ledger {
	return &Ledger{
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Record stores a freshly created transaction
func (l *Ledger) Record(ctx context.Context, txn *entity.Transaction) error {
	if txn.Status != entity.StatusPending {
		return fmt.Errorf("%w: new transactions must be %s, got %s", errs.ErrInvalidTransition, entity.StatusPending, txn.Status)
	}
	return l.repo.Insert(ctx, txn)
}

// Read returns the current state of a transaction
func (l *Ledger) Read(ctx context.Context, id string) (*entity.Transaction, error) {
	return l.repo.GetByID(ctx, id)
}

// FindByReference looks transactions up through the reference index
func (l *Ledger) FindByReference(ctx context.Context, reference string) ([]*entity.Transaction, error) {
	return l.repo.FindByReference(ctx, reference)
}

// BeginProcessing moves a transaction from PENDING to PROCESSING, provided it
// is still at the version the caller observed
func (l *Ledger) BeginProcessing(ctx context.Context, id string, version int64) (Transition, error) {
	return l.transition(ctx, persistence.StatusChange{
		TransactionID:   id,
		From:            entity.StatusPending,
		To:              entity.StatusProcessing,
		ExpectedVersion: version,
	})
}

// Finish moves a transaction from PROCESSING to the terminal status of outcome.
// version must be the one returned by BeginProcessing, so a worker whose claim
// was reclaimed by lease recovery cannot commit.
func (l *Ledger) Finish(ctx context.Context, id string, version int64, outcome Outcome) (Transition, error) {
	if !outcome.Status.IsTerminal() {
		return Transition{}, errs.NewTransitionError(id, string(entity.StatusProcessing), string(outcome.Status), errs.ErrInvalidTransition)
	}

	reason := ""
	if outcome.Status == entity.StatusFailed {
		reason = strings.TrimSpace(outcome.Reason)
		if reason == "" {
			reason = DefaultFailureReason
		}
	}

	return l.transition(ctx, persistence.StatusChange{
		TransactionID:   id,
		From:            entity.StatusProcessing,
		To:              outcome.Status,
		ExpectedVersion: version,
		FailureReason:   reason,
	})
}

// Reclaim hands a PROCESSING transaction back to PENDING. It is used by lease
// recovery only and succeeds only if nobody touched the row since version.
func (l *Ledger) Reclaim(ctx context.Context, id string, version int64) (Transition, error) {
	return l.transition(ctx, persistence.StatusChange{
		TransactionID:   id,
		From:            entity.StatusProcessing,
		To:              entity.StatusPending,
		ExpectedVersion: version,
	})
}

// transition validates a change against the state machine and applies it
func (l *Ledger) transition(ctx context.Context, change persistence.StatusChange) (Transition, error) {
	legal := change.From.CanTransitionTo(change.To) ||
		(change.To == entity.StatusPending && change.From.CanBeReclaimed())
	if !legal {
		return Transition{}, errs.NewTransitionError(change.TransactionID, string(change.From), string(change.To), errs.ErrInvalidTransition)
	}

	change.UpdatedAt = l.timeProvider.Now()

	result, err := l.repo.CompareAndSetStatus(ctx, change)
	if err != nil {
		l.logger.Error("Status transition failed", map[string]any{
			"transaction_id": change.TransactionID,
			"from":           change.From,
			"to":             change.To,
			"error":          err.Error(),
		})
		return Transition{}, errs.NewTransitionError(change.TransactionID, string(change.From), string(change.To), err)
	}

	if result == persistence.TransitionStale {
		l.logger.Debug("Status transition precondition failed", map[string]any{
			"transaction_id":   change.TransactionID,
			"from":             change.From,
			"to":               change.To,
			"expected_version": change.ExpectedVersion,
		})
		return Transition{Result: result, change: change}, nil
	}

	l.logger.Info("Status updated", map[string]any{
		"transaction_id": change.TransactionID,
		"status":         change.To,
	})
	return Transition{Result: result, Version: change.ExpectedVersion + 1, change: change}, nil
}
