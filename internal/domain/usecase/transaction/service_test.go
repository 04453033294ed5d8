package transaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
	mockcore "github.com/amirhossein-jamali/transaction-processor/mocks/port/core"
	mockmessaging "github.com/amirhossein-jamali/transaction-processor/mocks/port/messaging"
	mockpersistence "github.com/amirhossein-jamali/transaction-processor/mocks/port/persistence"
)

func newTestService(t *testing.T) (*Service, *mockpersistence.MockTransactionRepository, *mockmessaging.MockNotifier, *mockcore.MockIDGenerator) {
	repo := mockpersistence.NewMockTransactionRepository(t)
	notifier := mockmessaging.NewMockNotifier(t)
	ids := mockcore.NewMockIDGenerator(t)
	clock := newFixedClock(t)
	logger := newQuietLogger(t)

	ledger := NewLedger(repo, clock, logger)
	validator := NewIntakeValidator()
	intake := NewIntakeGuard(ledger, validator, notifier, ids, clock, logger)

	return NewTransactionService(intake, ledger, validator, logger), repo, notifier, ids
}

func TestService_CreateTransaction(t *testing.T) {
	ctx := context.Background()
	service, repo, notifier, ids := newTestService(t)

	ids.EXPECT().NewID().Return("tx-1").Once()
	repo.EXPECT().FindByReference(ctx, "INV-001").Return(nil, nil).Once()
	repo.EXPECT().Insert(ctx, mock.Anything).Return(nil).Once()
	notifier.EXPECT().Publish(ctx, messaging.WorkNotification{TransactionID: "tx-1"}).Return(nil).Once()

	txn, err := service.CreateTransaction(ctx, validRequest())

	require.NoError(t, err)
	assert.Equal(t, "tx-1", txn.ID)
}

func TestService_GetTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns stored transaction", func(t *testing.T) {
		service, repo, _, _ := newTestService(t)
		stored := processingTransaction("tx-1", 2)
		repo.EXPECT().GetByID(ctx, "tx-1").Return(stored, nil).Once()

		txn, err := service.GetTransaction(ctx, "tx-1")

		require.NoError(t, err)
		assert.Equal(t, stored, txn)
	})

	t.Run("Empty ID is a validation error", func(t *testing.T) {
		service, repo, _, _ := newTestService(t)

		_, err := service.GetTransaction(ctx, " ")

		assert.True(t, errs.IsValidationError(err))
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		service, repo, _, _ := newTestService(t)
		repo.EXPECT().GetByID(ctx, "missing").Return(nil, errs.ErrTransactionNotFound).Once()

		_, err := service.GetTransaction(ctx, "missing")

		assert.True(t, errs.IsNotFoundError(err))
		assert.Equal(t, errs.KindNotFound, errs.ErrorKind(err))
	})
}
