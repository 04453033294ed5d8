package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/adapter/database"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
	DataError         ErrorType = "data"
	ContextError      ErrorType = "context"
)

// PostgreSQL error codes the classifier cares about
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgConnectionClass      = "08"
	pgDataExceptionClass   = "22"
	pgIntegrityClass       = "23"
)

const sqliteUniquePrefix = "UNIQUE constraint failed: "

// ErrorClassifier provides methods to classify database errors from either
// supported driver
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsContextError(err):
		return ContextError
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsConnectionError(err):
		return ConnectionError
	case c.IsTransientError(err):
		return TransientError
	case c.IsDataError(err):
		return DataError
	case c.IsConstraintError(err):
		return ConstraintError
	}
	return ""
}

// UniqueViolation reports which unique constraint err violated. For
// PostgreSQL this is the constraint name, for SQLite the "table.column" list.
func (c *ErrorClassifier) UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation {
			return pgErr.ConstraintName, true
		}
		return "", false
	}

	msg := err.Error()
	if i := strings.Index(msg, sqliteUniquePrefix); i >= 0 {
		return msg[i+len(sqliteUniquePrefix):], true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "duplicate key") {
		return "", true
	}
	return "", false
}

// IsDuplicateKeyError checks if the error is a duplicate key error
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	_, ok := c.UniqueViolation(err)
	return ok
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	return c.IsLockError(err) || database.IsTransientError(err)
}

// IsLockError checks if the error is due to locking
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return true
		}
		return false
	}

	msg := err.Error()
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "could not serialize access")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgConnectionClass)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "dial") ||
		strings.Contains(msg, "network") ||
		strings.Contains(msg, "broken pipe")
}

// IsDataError checks if the store refused a value, e.g. a numeric overflow or
// a string longer than its column
func (c *ErrorClassifier) IsDataError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgDataExceptionClass)
	}

	msg := err.Error()
	return strings.Contains(msg, "too big") ||
		strings.Contains(msg, "datatype mismatch") ||
		strings.Contains(msg, "out of range")
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgIntegrityClass)
	}

	msg := err.Error()
	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "violates")
}

// IsContextError checks if an error comes from context cancellation or deadline
func (c *ErrorClassifier) IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
