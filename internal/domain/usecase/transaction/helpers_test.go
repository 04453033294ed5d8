package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	mockcore "github.com/amirhossein-jamali/transaction-processor/mocks/port/core"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// newQuietLogger returns a logger mock that accepts any entry
func newQuietLogger(t *testing.T) *mockcore.MockLogger {
	logger := mockcore.NewMockLogger(t)
	logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return logger
}

// newFixedClock returns a time provider mock frozen at testNow whose Sleep
// returns immediately unless ctx is already done
func newFixedClock(t *testing.T) *mockcore.MockTimeProvider {
	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(testNow).Maybe()
	clock.EXPECT().Since(mock.Anything).Return(time.Millisecond).Maybe()
	clock.EXPECT().Sleep(mock.Anything, mock.Anything).RunAndReturn(func(ctx context.Context, _ time.Duration) error {
		return ctx.Err()
	}).Maybe()
	clock.EXPECT().WithTimeout(mock.Anything, mock.Anything).RunAndReturn(context.WithTimeout).Maybe()
	return clock
}

func pendingTransaction(id string) *entity.Transaction {
	return entity.NewTransaction(id, decimalOf("100.50"), "USD", "REF-"+id, testNow)
}

func processingTransaction(id string, version int64) *entity.Transaction {
	txn := pendingTransaction(id)
	txn.Status = entity.StatusProcessing
	txn.Version = version
	return txn
}
