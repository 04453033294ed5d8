package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/persistence"
)

// MemoryTransactionRepository keeps transactions in process memory. It gives
// the same atomicity guarantees as the database repository within one process.
type MemoryTransactionRepository struct {
	mu          sync.RWMutex
	byID        map[string]*entity.Transaction
	byReference map[string]string
}

var _ persistence.TransactionRepository = (*MemoryTransactionRepository)(nil)

// NewMemoryTransactionRepository creates an empty in-memory repository
func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{
		byID:        make(map[string]*entity.Transaction),
		byReference: make(map[string]string),
	}
}

// Insert implements persistence.TransactionRepository
func (r *MemoryTransactionRepository) Insert(ctx context.Context, transaction *entity.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[transaction.ID]; exists {
		return errs.ErrDuplicateTransaction
	}
	if _, exists := r.byReference[transaction.Reference]; exists {
		return errs.ErrDuplicateReference
	}

	r.byID[transaction.ID] = transaction.Clone()
	r.byReference[transaction.Reference] = transaction.ID
	return nil
}

// GetByID implements persistence.TransactionRepository
func (r *MemoryTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	transaction, ok := r.byID[id]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	return transaction.Clone(), nil
}

// FindByReference implements persistence.TransactionRepository
func (r *MemoryTransactionRepository) FindByReference(ctx context.Context, reference string) ([]*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byReference[reference]
	if !ok {
		return []*entity.Transaction{}, nil
	}
	return []*entity.Transaction{r.byID[id].Clone()}, nil
}

// CompareAndSetStatus implements persistence.TransactionRepository
func (r *MemoryTransactionRepository) CompareAndSetStatus(ctx context.Context, change persistence.StatusChange) (persistence.TransitionResult, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	transaction, ok := r.byID[change.TransactionID]
	if !ok || transaction.Status != change.From || transaction.Version != change.ExpectedVersion {
		return persistence.TransitionStale, nil
	}

	transaction.Status = change.To
	transaction.FailureReason = change.FailureReason
	transaction.UpdatedAt = change.UpdatedAt
	transaction.Version++
	return persistence.TransitionApplied, nil
}

// ListByStatusUpdatedBefore implements persistence.TransactionRepository
func (r *MemoryTransactionRepository) ListByStatusUpdatedBefore(ctx context.Context, status entity.TransactionStatus, before time.Time, limit int) ([]*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	matches := make([]*entity.Transaction, 0)
	for _, transaction := range r.byID {
		if transaction.Status == status && transaction.UpdatedAt.Before(before) {
			matches = append(matches, transaction.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].UpdatedAt.Before(matches[j].UpdatedAt)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Len returns the number of stored transactions
func (r *MemoryTransactionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
