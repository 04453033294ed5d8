package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/logger"
)

var baseTime = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// repositories runs each test against every TransactionRepository implementation
func repositories(t *testing.T) map[string]func(t *testing.T) persistence.TransactionRepository {
	return map[string]func(t *testing.T) persistence.TransactionRepository{
		"gorm": func(t *testing.T) persistence.TransactionRepository {
			testDB := database.NewTestDBManager(t, nil)
			return NewTransactionRepository(testDB.Manager.DB(), logger.NewNopLogger())
		},
		"memory": func(t *testing.T) persistence.TransactionRepository {
			return NewMemoryTransactionRepository()
		},
	}
}

func newTxn(id, reference string, createdAt time.Time) *entity.Transaction {
	return entity.NewTransaction(id, decimal.RequireFromString("100.50"), "USD", reference, createdAt)
}

func TestTransactionRepository_InsertAndGet(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			txn := newTxn("tx-1", "INV-001", baseTime)
			require.NoError(t, repo.Insert(ctx, txn))

			got, err := repo.GetByID(ctx, "tx-1")
			require.NoError(t, err)
			assert.Equal(t, "tx-1", got.ID)
			assert.True(t, got.Amount.Equal(decimal.RequireFromString("100.5")))
			assert.Equal(t, "USD", got.Currency)
			assert.Equal(t, "INV-001", got.Reference)
			assert.Equal(t, entity.StatusPending, got.Status)
			assert.Equal(t, entity.InitialVersion, got.Version)
			assert.True(t, got.CreatedAt.Equal(baseTime))
			assert.True(t, got.UpdatedAt.Equal(baseTime))
			assert.Empty(t, got.FailureReason)

			_, err = repo.GetByID(ctx, "missing")
			assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
		})
	}
}

func TestTransactionRepository_UniqueKeys(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			require.NoError(t, repo.Insert(ctx, newTxn("tx-1", "INV-001", baseTime)))

			err := repo.Insert(ctx, newTxn("tx-1", "INV-002", baseTime))
			assert.ErrorIs(t, err, errs.ErrDuplicateTransaction)

			err = repo.Insert(ctx, newTxn("tx-2", "INV-001", baseTime))
			assert.ErrorIs(t, err, errs.ErrDuplicateReference)

			found, err := repo.FindByReference(ctx, "INV-001")
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, "tx-1", found[0].ID)

			none, err := repo.FindByReference(ctx, "INV-404")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestTransactionRepository_CompareAndSetStatus(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			require.NoError(t, repo.Insert(ctx, newTxn("tx-1", "INV-001", baseTime)))

			begin := persistence.StatusChange{
				TransactionID:   "tx-1",
				From:            entity.StatusPending,
				To:              entity.StatusProcessing,
				ExpectedVersion: 1,
				UpdatedAt:       baseTime.Add(time.Second),
			}

			result, err := repo.CompareAndSetStatus(ctx, begin)
			require.NoError(t, err)
			assert.Equal(t, persistence.TransitionApplied, result)

			// Replaying the same change is stale: status and version both moved
			result, err = repo.CompareAndSetStatus(ctx, begin)
			require.NoError(t, err)
			assert.Equal(t, persistence.TransitionStale, result)

			// Wrong version with the right status is stale too
			result, err = repo.CompareAndSetStatus(ctx, persistence.StatusChange{
				TransactionID:   "tx-1",
				From:            entity.StatusProcessing,
				To:              entity.StatusCompleted,
				ExpectedVersion: 1,
				UpdatedAt:       baseTime.Add(2 * time.Second),
			})
			require.NoError(t, err)
			assert.Equal(t, persistence.TransitionStale, result)

			result, err = repo.CompareAndSetStatus(ctx, persistence.StatusChange{
				TransactionID:   "tx-1",
				From:            entity.StatusProcessing,
				To:              entity.StatusFailed,
				ExpectedVersion: 2,
				FailureReason:   "Simulated processing failure",
				UpdatedAt:       baseTime.Add(3 * time.Second),
			})
			require.NoError(t, err)
			assert.Equal(t, persistence.TransitionApplied, result)

			got, err := repo.GetByID(ctx, "tx-1")
			require.NoError(t, err)
			assert.Equal(t, entity.StatusFailed, got.Status)
			assert.Equal(t, "Simulated processing failure", got.FailureReason)
			assert.Equal(t, int64(3), got.Version)
			assert.True(t, got.UpdatedAt.Equal(baseTime.Add(3*time.Second)))
			assert.True(t, got.CreatedAt.Equal(baseTime))

			// Missing rows are stale, not errors
			result, err = repo.CompareAndSetStatus(ctx, persistence.StatusChange{
				TransactionID:   "ghost",
				From:            entity.StatusPending,
				To:              entity.StatusProcessing,
				ExpectedVersion: 1,
				UpdatedAt:       baseTime,
			})
			require.NoError(t, err)
			assert.Equal(t, persistence.TransitionStale, result)
		})
	}
}

func TestTransactionRepository_ConcurrentBeginHasOneWinner(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)
			require.NoError(t, repo.Insert(ctx, newTxn("tx-1", "INV-001", baseTime)))

			const racers = 8
			results := make([]persistence.TransitionResult, racers)
			var wg sync.WaitGroup
			for i := 0; i < racers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					result, err := repo.CompareAndSetStatus(ctx, persistence.StatusChange{
						TransactionID:   "tx-1",
						From:            entity.StatusPending,
						To:              entity.StatusProcessing,
						ExpectedVersion: 1,
						UpdatedAt:       baseTime.Add(time.Second),
					})
					assert.NoError(t, err)
					results[i] = result
				}(i)
			}
			wg.Wait()

			applied := 0
			for _, r := range results {
				if r == persistence.TransitionApplied {
					applied++
				}
			}
			assert.Equal(t, 1, applied)
		})
	}
}

func TestTransactionRepository_ListByStatusUpdatedBefore(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			require.NoError(t, repo.Insert(ctx, newTxn("old", "R-1", baseTime)))
			require.NoError(t, repo.Insert(ctx, newTxn("older", "R-2", baseTime.Add(-time.Minute))))
			require.NoError(t, repo.Insert(ctx, newTxn("fresh", "R-3", baseTime.Add(time.Hour))))

			cutoff := baseTime.Add(time.Minute)
			found, err := repo.ListByStatusUpdatedBefore(ctx, entity.StatusPending, cutoff, 10)
			require.NoError(t, err)
			require.Len(t, found, 2)
			assert.Equal(t, "older", found[0].ID)
			assert.Equal(t, "old", found[1].ID)

			limited, err := repo.ListByStatusUpdatedBefore(ctx, entity.StatusPending, cutoff, 1)
			require.NoError(t, err)
			assert.Len(t, limited, 1)

			processing, err := repo.ListByStatusUpdatedBefore(ctx, entity.StatusProcessing, cutoff, 10)
			require.NoError(t, err)
			assert.Empty(t, processing)
		})
	}
}
