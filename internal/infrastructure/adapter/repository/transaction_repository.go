package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Insert saves a new transaction. Uniqueness of ID and reference is enforced
// by the table's primary key and unique index.
func (r *TransactionRepository) Insert(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Creating transaction", map[string]any{
		"transaction_id": transaction.ID,
		"reference":      transaction.Reference,
	})

	transactionModel := model.TransactionFromEntity(transaction)

	if err := r.db.WithContext(ctx).Create(&transactionModel).Error; err != nil {
		if constraint, ok := r.errorClassifier.UniqueViolation(err); ok {
			return r.handleDuplicateError(transaction, constraint)
		}

		r.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": transaction.ID,
			"error":          err.Error(),
		})
		return r.wrap(err)
	}

	r.logger.Debug("Transaction stored", map[string]any{
		"transaction_id": transaction.ID,
	})
	return nil
}

// handleDuplicateError maps a unique violation onto the domain error for the violated key
func (r *TransactionRepository) handleDuplicateError(transaction *entity.Transaction, constraint string) error {
	if strings.Contains(constraint, "reference") {
		r.logger.Warn("Duplicate reference rejected by unique index", map[string]any{
			"transaction_id": transaction.ID,
			"reference":      transaction.Reference,
		})
		return errs.ErrDuplicateReference
	}

	r.logger.Warn("Duplicate transaction detected", map[string]any{
		"transaction_id": transaction.ID,
		"constraint":     constraint,
	})
	return errs.ErrDuplicateTransaction
}

// GetByID retrieves a transaction by its identifier
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&transactionModel).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debug("Transaction not found", map[string]any{
				"transaction_id": id,
			})
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"transaction_id": id,
			"error":          err.Error(),
		})
		return nil, r.wrap(err)
	}

	return transactionModel.ToEntity(), nil
}

// FindByReference returns the transactions carrying reference, oldest first
func (r *TransactionRepository) FindByReference(ctx context.Context, reference string) ([]*entity.Transaction, error) {
	var models []model.Transaction
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("created_at ASC, id ASC").
		Find(&models).Error

	if err != nil {
		r.logger.Error("Failed to look up reference", map[string]any{
			"reference": reference,
			"error":     err.Error(),
		})
		return nil, r.wrap(err)
	}

	return toEntities(models), nil
}

// CompareAndSetStatus applies a status change in a single conditional UPDATE.
// Zero affected rows means the row is gone or another actor moved it first.
func (r *TransactionRepository) CompareAndSetStatus(ctx context.Context, change persistence.StatusChange) (persistence.TransitionResult, error) {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND status = ? AND version = ?", change.TransactionID, string(change.From), change.ExpectedVersion).
		Updates(map[string]any{
			"status":         string(change.To),
			"failure_reason": change.FailureReason,
			"updated_at":     change.UpdatedAt.UTC(),
			"version":        gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		r.logger.Error("Failed to update transaction status", map[string]any{
			"transaction_id": change.TransactionID,
			"from":           change.From,
			"to":             change.To,
			"error":          result.Error.Error(),
		})
		return 0, r.wrap(result.Error)
	}

	if result.RowsAffected == 0 {
		return persistence.TransitionStale, nil
	}
	return persistence.TransitionApplied, nil
}

// ListByStatusUpdatedBefore returns up to limit transactions in status last
// updated before the given time, oldest first
func (r *TransactionRepository) ListByStatusUpdatedBefore(ctx context.Context, status entity.TransactionStatus, before time.Time, limit int) ([]*entity.Transaction, error) {
	var models []model.Transaction
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", string(status), before.UTC()).
		Order("updated_at ASC").
		Limit(limit).
		Find(&models).Error

	if err != nil {
		r.logger.Error("Failed to list transactions by status", map[string]any{
			"status": status,
			"error":  err.Error(),
		})
		return nil, r.wrap(err)
	}

	return toEntities(models), nil
}

// wrap maps a driver error onto the domain error for its class, leaving
// context errors recognisable
func (r *TransactionRepository) wrap(err error) error {
	switch r.errorClassifier.Classify(err) {
	case ContextError:
		return err
	case DataError, ConstraintError:
		return fmt.Errorf("%w: %s", errs.ErrDataRejected, err.Error())
	case ConnectionError, LockError, TransientError:
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	default:
		return fmt.Errorf("database error: %w", err)
	}
}

func toEntities(models []model.Transaction) []*entity.Transaction {
	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, models[i].ToEntity())
	}
	return transactions
}
