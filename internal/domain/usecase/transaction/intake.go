package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/usecase"
)

// IntakeGuard accepts new transactions: it validates the payload, enforces
// reference uniqueness, stores the PENDING record and publishes one work
// notification for it
type IntakeGuard struct {
	ledger         *Ledger
	validator      *IntakeValidator
	referenceGuard *ReferenceGuard
	notifier       messaging.Notifier
	idGenerator    coreport.IDGenerator
	timeProvider   coreport.TimeProvider
	logger         coreport.Logger
}

// NewIntakeGuard creates a new IntakeGuard
func NewIntakeGuard(
	ledger *Ledger,
	validator *IntakeValidator,
	notifier messaging.Notifier,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *IntakeGuard {
	return &IntakeGuard{
		ledger:         ledger,
		validator:      validator,
		referenceGuard: NewReferenceGuard(ledger),
		notifier:       notifier,
		idGenerator:    idGenerator,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Create accepts a transaction. On success the returned record is PENDING and
// exactly one notification for it has been published.
//
// If publishing fails the record is already stored and stays PENDING without
// a message; the returned error wraps ErrNotificationFailed. Recovery's
// pending sweep republishes such records when enabled.
func (g *IntakeGuard) Create(ctx context.Context, req usecase.CreateTransactionRequest) (*entity.Transaction, error) {
	if err := g.validator.Validate(req); err != nil {
		g.logger.Warn("Validation failed", map[string]any{
			"error":     err.Error(),
			"reference": req.Reference,
		})
		return nil, err
	}

	if err := g.referenceGuard.Check(ctx, req.Reference); err != nil {
		if id, ok := errs.ExistingTransactionID(err); ok {
			g.logger.Warn("Duplicate reference detected", map[string]any{
				"reference":               req.Reference,
				"existing_transaction_id": id,
			})
		}
		return nil, err
	}

	txn := entity.NewTransaction(
		g.idGenerator.NewID(),
		req.Amount,
		req.Currency,
		req.Reference,
		g.timeProvider.Now(),
	)

	if err := g.ledger.Record(ctx, txn); err != nil {
		switch {
		case errors.Is(err, errs.ErrDuplicateReference):
			// Lost the race against a concurrent create with the same reference
			dupErr := g.referenceGuard.Owner(ctx, req.Reference)
			g.logger.Warn("Duplicate reference rejected by store", map[string]any{
				"reference": req.Reference,
			})
			return nil, dupErr
		case errors.Is(err, errs.ErrDuplicateTransaction):
			g.logger.Warn("Duplicate transaction detected", map[string]any{
				"transaction_id": txn.ID,
			})
			return nil, err
		default:
			return nil, fmt.Errorf("failed to store transaction: %w", err)
		}
	}

	if err := g.notifier.Publish(ctx, messaging.WorkNotification{TransactionID: txn.ID}); err != nil {
		g.logger.Error("Failed to publish work notification", map[string]any{
			"transaction_id": txn.ID,
			"reference":      txn.Reference,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("%w: transaction %s: %v", errs.ErrNotificationFailed, txn.ID, err)
	}

	g.logger.Info("Transaction created", map[string]any{
		"transaction_id": txn.ID,
		"reference":      txn.Reference,
		"status":         txn.Status,
	})

	return txn, nil
}
