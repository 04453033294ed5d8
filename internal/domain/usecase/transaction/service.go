package transaction

import (
	"context"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/usecase"
)

// Service is the synchronous entry point used by the API: it creates
// transactions through the intake guard and reads them from the ledger
type Service struct {
	intake    *IntakeGuard
	ledger    *Ledger
	validator *IntakeValidator
	logger    coreport.Logger
}

var _ usecase.TransactionUseCase = (*Service)(nil)

// NewTransactionService creates a new transaction service
func NewTransactionService(intake *IntakeGuard, ledger *Ledger, validator *IntakeValidator, logger coreport.Logger) *Service {
	return &Service{
		intake:    intake,
		ledger:    ledger,
		validator: validator,
		logger:    logger,
	}
}

// CreateTransaction implements usecase.TransactionUseCase
func (s *Service) CreateTransaction(ctx context.Context, req usecase.CreateTransactionRequest) (*entity.Transaction, error) {
	return s.intake.Create(ctx, req)
}

// GetTransaction implements usecase.TransactionUseCase
func (s *Service) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	if err := s.validator.ValidateID(id); err != nil {
		s.logger.Warn("Missing transaction ID", nil)
		return nil, err
	}

	txn, err := s.ledger.Read(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction retrieved", map[string]any{
		"transaction_id": id,
		"status":         txn.Status,
	})
	return txn, nil
}
