package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
)

// TransitionResult is the non-error outcome of a conditional status update
type TransitionResult int

const (
	// TransitionApplied means the precondition held and the new status was written
	TransitionApplied TransitionResult = iota + 1
	// TransitionStale means the precondition no longer held; nothing was written
	TransitionStale
)

// String returns a readable name for logs
func (r TransitionResult) String() string {
	switch r {
	case TransitionApplied:
		return "applied"
	case TransitionStale:
		return "stale"
	default:
		return "unknown"
	}
}

// StatusChange describes a compare-and-set on a single transaction row.
// The update applies only if the row still has status From and version ExpectedVersion.
type StatusChange struct {
	TransactionID   string
	From            entity.TransactionStatus
	To              entity.TransactionStatus
	ExpectedVersion int64
	FailureReason   string
	UpdatedAt       time.Time
}

// TransactionRepository defines the storage operations the ledger relies on
type TransactionRepository interface {
	// Insert stores a new transaction
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If a transaction with the same ID already exists
	// - ErrDuplicateReference: If a transaction with the same reference already exists
	// - ErrDataRejected: If the store refuses one of the values
	// - ErrDatabaseConnection: If database connection fails
	Insert(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its identifier
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// FindByReference returns every transaction carrying the given reference, oldest first
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	FindByReference(ctx context.Context, reference string) ([]*entity.Transaction, error)

	// CompareAndSetStatus applies change atomically against the stored row.
	// A missing row or a failed precondition yields TransitionStale with a nil error;
	// a non-nil error always means an infrastructure failure.
	CompareAndSetStatus(ctx context.Context, change StatusChange) (TransitionResult, error)

	// ListByStatusUpdatedBefore returns up to limit transactions in status whose
	// updatedAt is older than before, oldest first
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListByStatusUpdatedBefore(ctx context.Context, status entity.TransactionStatus, before time.Time, limit int) ([]*entity.Transaction, error)
}
