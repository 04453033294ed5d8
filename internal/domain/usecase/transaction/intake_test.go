package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/usecase"
	mockcore "github.com/amirhossein-jamali/transaction-processor/mocks/port/core"
	mockmessaging "github.com/amirhossein-jamali/transaction-processor/mocks/port/messaging"
	mockpersistence "github.com/amirhossein-jamali/transaction-processor/mocks/port/persistence"
)

type intakeFixture struct {
	repo     *mockpersistence.MockTransactionRepository
	notifier *mockmessaging.MockNotifier
	ids      *mockcore.MockIDGenerator
	guard    *IntakeGuard
}

func newIntakeFixture(t *testing.T) *intakeFixture {
	repo := mockpersistence.NewMockTransactionRepository(t)
	notifier := mockmessaging.NewMockNotifier(t)
	ids := mockcore.NewMockIDGenerator(t)
	clock := newFixedClock(t)
	logger := newQuietLogger(t)

	ledger := NewLedger(repo, clock, logger)
	guard := NewIntakeGuard(ledger, NewIntakeValidator(), notifier, ids, clock, logger)

	return &intakeFixture{repo: repo, notifier: notifier, ids: ids, guard: guard}
}

func validRequest() usecase.CreateTransactionRequest {
	return usecase.CreateTransactionRequest{
		Amount:    decimalOf("100.50"),
		Currency:  "USD",
		Reference: "INV-001",
	}
}

func TestIntakeGuard_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores pending record and publishes once", func(t *testing.T) {
		f := newIntakeFixture(t)

		f.ids.EXPECT().NewID().Return("tx-1").Once()
		f.repo.EXPECT().FindByReference(ctx, "INV-001").Return(nil, nil).Once()
		f.repo.EXPECT().Insert(ctx, mock.MatchedBy(func(txn *entity.Transaction) bool {
			return txn.ID == "tx-1" && txn.Status == entity.StatusPending &&
				txn.Amount.Equal(decimalOf("100.5")) && txn.Currency == "USD" &&
				txn.Reference == "INV-001" && txn.Version == entity.InitialVersion &&
				txn.CreatedAt.Equal(testNow) && txn.UpdatedAt.Equal(testNow) &&
				txn.FailureReason == ""
		})).Return(nil).Once()
		f.notifier.EXPECT().Publish(ctx, messaging.WorkNotification{TransactionID: "tx-1"}).Return(nil).Once()

		txn, err := f.guard.Create(ctx, validRequest())

		require.NoError(t, err)
		assert.Equal(t, "tx-1", txn.ID)
		assert.Equal(t, entity.StatusPending, txn.Status)
		assert.Equal(t, testNow, txn.CreatedAt)
	})

	t.Run("Validation failure touches nothing", func(t *testing.T) {
		f := newIntakeFixture(t)

		req := validRequest()
		req.Currency = "US"

		txn, err := f.guard.Create(ctx, req)

		assert.Nil(t, txn)
		assert.True(t, errs.IsValidationError(err))
		assert.Equal(t, "Currency must be at least 3 characters", err.Error())
		f.repo.AssertNotCalled(t, "FindByReference", mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Amount beyond stored precision touches nothing", func(t *testing.T) {
		f := newIntakeFixture(t)

		req := validRequest()
		req.Amount = decimalOf("0.000000001")

		txn, err := f.guard.Create(ctx, req)

		assert.Nil(t, txn)
		assert.True(t, errs.IsValidationError(err))
		var ve *errs.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "amount", ve.Field)
		f.repo.AssertNotCalled(t, "FindByReference", mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Store rejects the data", func(t *testing.T) {
		f := newIntakeFixture(t)

		f.ids.EXPECT().NewID().Return("tx-1").Once()
		f.repo.EXPECT().FindByReference(ctx, "INV-001").Return(nil, nil).Once()
		f.repo.EXPECT().Insert(ctx, mock.Anything).Return(errs.ErrDataRejected).Once()

		txn, err := f.guard.Create(ctx, validRequest())

		assert.Nil(t, txn)
		assert.True(t, errs.IsDataRejected(err))
		assert.Equal(t, errs.KindValidation, errs.ErrorKind(err))
		f.notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Known reference is rejected with existing ID", func(t *testing.T) {
		f := newIntakeFixture(t)

		existing := pendingTransaction("tx-old")
		f.repo.EXPECT().FindByReference(ctx, "INV-001").Return([]*entity.Transaction{existing}, nil).Once()

		txn, err := f.guard.Create(ctx, validRequest())

		assert.Nil(t, txn)
		assert.True(t, errs.IsDuplicateReferenceError(err))
		assert.Equal(t, "Transaction with reference 'INV-001' already exists", err.Error())
		id, ok := errs.ExistingTransactionID(err)
		assert.True(t, ok)
		assert.Equal(t, "tx-old", id)
		f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Reference race lost at the store", func(t *testing.T) {
		f := newIntakeFixture(t)

		winner := pendingTransaction("tx-winner")
		f.ids.EXPECT().NewID().Return("tx-loser").Once()
		f.repo.EXPECT().FindByReference(ctx, "INV-001").Return(nil, nil).Once()
		f.repo.EXPECT().Insert(ctx, mock.Anything).Return(errs.ErrDuplicateReference).Once()
		f.repo.EXPECT().FindByReference(ctx, "INV-001").Return([]*entity.Transaction{winner}, nil).Once()

		txn, err := f.guard.Create(ctx, validRequest())

		assert.Nil(t, txn)
		id, ok := errs.ExistingTransactionID(err)
		assert.True(t, ok)
		assert.Equal(t, "tx-winner", id)
		f.notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Identifier collision", func(t *testing.T) {
		f := newIntakeFixture(t)

		f.ids.EXPECT().NewID().Return("tx-1").Once()
		f.repo.EXPECT().FindByReference(ctx, "INV-001").Return(nil, nil).Once()
		f.repo.EXPECT().Insert(ctx, mock.Anything).Return(errs.ErrDuplicateTransaction).Once()

		_, err := f.guard.Create(ctx, validRequest())

		assert.True(t, errs.IsDuplicateTransactionError(err))
		assert.Equal(t, errs.CodeDuplicateTransaction, errs.ErrorCode(err))
	})

	t.Run("Store failure", func(t *testing.T) {
		f := newIntakeFixture(t)

		f.ids.EXPECT().NewID().Return("tx-1").Once()
		f.repo.EXPECT().FindByReference(ctx, "INV-001").Return(nil, nil).Once()
		f.repo.EXPECT().Insert(ctx, mock.Anything).Return(errs.ErrDatabaseConnection).Once()

		_, err := f.guard.Create(ctx, validRequest())

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Equal(t, errs.KindInternal, errs.ErrorKind(err))
	})

	t.Run("Reference lookup failure", func(t *testing.T) {
		f := newIntakeFixture(t)

		f.repo.EXPECT().FindByReference(ctx, "INV-001").Return(nil, errs.ErrDatabaseConnection).Once()

		_, err := f.guard.Create(ctx, validRequest())

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Publish failure leaves record stored", func(t *testing.T) {
		f := newIntakeFixture(t)

		f.ids.EXPECT().NewID().Return("tx-1").Once()
		f.repo.EXPECT().FindByReference(ctx, "INV-001").Return(nil, nil).Once()
		f.repo.EXPECT().Insert(ctx, mock.Anything).Return(nil).Once()
		f.notifier.EXPECT().Publish(ctx, mock.Anything).Return(errors.New("broker unavailable")).Once()

		txn, err := f.guard.Create(ctx, validRequest())

		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrNotificationFailed)
		assert.Contains(t, err.Error(), "tx-1")
		assert.Equal(t, errs.CodeInternalServer, errs.ErrorCode(err))
	})
}

func TestReferenceGuard_Owner(t *testing.T) {
	ctx := context.Background()
	repo := mockpersistence.NewMockTransactionRepository(t)
	guard := NewReferenceGuard(NewLedger(repo, newFixedClock(t), newQuietLogger(t)))

	repo.EXPECT().FindByReference(ctx, "gone").Return(nil, nil).Once()

	err := guard.Owner(ctx, "gone")

	assert.True(t, errs.IsDuplicateReferenceError(err))
	_, ok := errs.ExistingTransactionID(err)
	assert.False(t, ok)
}
