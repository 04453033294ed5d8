package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/logger"
)

func TestErrorClassifier(t *testing.T) {
	c := NewErrorClassifier()

	pgReference := &pgconn.PgError{Code: "23505", ConstraintName: "idx_transactions_reference"}
	pgPrimary := &pgconn.PgError{Code: "23505", ConstraintName: "transactions_pkey"}

	tests := []struct {
		name       string
		err        error
		expected   ErrorType
		constraint string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "postgres reference", err: fmt.Errorf("insert: %w", pgReference), expected: DuplicateKeyError, constraint: "idx_transactions_reference"},
		{name: "postgres primary key", err: pgPrimary, expected: DuplicateKeyError, constraint: "transactions_pkey"},
		{name: "sqlite reference", err: errors.New("UNIQUE constraint failed: transactions.reference"), expected: DuplicateKeyError, constraint: "transactions.reference"},
		{name: "postgres deadlock", err: &pgconn.PgError{Code: "40P01"}, expected: LockError},
		{name: "postgres connection failure", err: &pgconn.PgError{Code: "08006"}, expected: ConnectionError},
		{name: "postgres not null", err: &pgconn.PgError{Code: "23502"}, expected: ConstraintError},
		{name: "sqlite busy", err: errors.New("database is locked"), expected: LockError},
		{name: "postgres numeric overflow", err: &pgconn.PgError{Code: "22003"}, expected: DataError},
		{name: "postgres value too long", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "22001"}), expected: DataError},
		{name: "sqlite too big", err: errors.New("string or blob too big"), expected: DataError},
		{name: "sqlite check constraint", err: errors.New("CHECK constraint failed: amount_positive"), expected: ConstraintError},
		{name: "connection reset", err: errors.New("read tcp: connection reset by peer"), expected: TransientError},
		{name: "context", err: fmt.Errorf("query: %w", context.DeadlineExceeded), expected: ContextError},
		{name: "unknown", err: errors.New("something odd"), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.err))

			constraint, ok := c.UniqueViolation(tt.err)
			assert.Equal(t, tt.expected == DuplicateKeyError, ok)
			assert.Equal(t, tt.constraint, constraint)
		})
	}
}

func TestTransactionRepository_WrapClassifiesErrors(t *testing.T) {
	repo := NewTransactionRepository(nil, logger.NewNopLogger())

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "numeric overflow", err: &pgconn.PgError{Code: "22003", Message: "numeric field overflow"}, expected: errs.ErrDataRejected},
		{name: "not null", err: &pgconn.PgError{Code: "23502"}, expected: errs.ErrDataRejected},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, expected: errs.ErrDatabaseConnection},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, expected: errs.ErrDatabaseConnection},
		{name: "sqlite busy", err: errors.New("database is locked"), expected: errs.ErrDatabaseConnection},
		{name: "context", err: context.Canceled, expected: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, repo.wrap(tt.err), tt.expected)
		})
	}

	t.Run("unclassified", func(t *testing.T) {
		cause := errors.New("something odd")
		err := repo.wrap(cause)

		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.NotErrorIs(t, err, errs.ErrDataRejected)
	})
}
