package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
)

// CreateTransactionRequest represents an incoming request to accept a transaction
type CreateTransactionRequest struct {
	Amount    decimal.Decimal `validate:"gt=0"`
	Currency  string          `validate:"min=3,max=16"`
	Reference string          `validate:"min=1,max=255"`
}

// TransactionUseCase defines the synchronous operations exposed to callers
type TransactionUseCase interface {
	// CreateTransaction validates, stores and enqueues a new transaction.
	// The returned transaction is always PENDING.
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*entity.Transaction, error)

	// GetTransaction returns the current state of a transaction
	GetTransaction(ctx context.Context, id string) (*entity.Transaction, error)
}
