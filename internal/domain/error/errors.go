package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation           = 4000
	CodeDuplicateReference   = 4090
	CodeDuplicateTransaction = 4091
	CodeTransactionNotFound  = 4040

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Error kinds as they appear on the wire
const (
	KindValidation           = "ValidationError"
	KindNotFound             = "NotFound"
	KindDuplicateReference   = "DuplicateReference"
	KindDuplicateTransaction = "DuplicateTransaction"
	KindInternal             = "InternalError"
)

// Base error types
var (
	// ErrValidation is returned when a request payload has the wrong shape
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateReference is returned when a transaction with the same external reference exists
	ErrDuplicateReference = errors.New("transaction with this reference already exists")

	// ErrDuplicateTransaction is returned when a transaction with the same ID already exists
	ErrDuplicateTransaction = errors.New("transaction already exists")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrStaleTransition is returned when a conditional status update lost to another actor
	ErrStaleTransition = errors.New("stale status transition")

	// ErrInvalidTransition is returned when a status change is not part of the state machine
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotificationFailed is returned when the work notification could not be published
	ErrNotificationFailed = errors.New("failed to publish work notification")

	// ErrProcessingInterrupted is returned when processing stopped before an outcome was produced
	ErrProcessingInterrupted = errors.New("processing interrupted")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDataRejected is returned when the store refuses a value, such as an
	// amount that overflows its column
	ErrDataRejected = errors.New("value rejected by store")

	// ErrQueueClosed is returned when publishing to or receiving from a closed queue
	ErrQueueClosed = errors.New("queue closed")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDataRejected):
		return CodeValidation
	case errors.Is(err, ErrDuplicateReference):
		return CodeDuplicateReference
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	default:
		return CodeInternalServer
	}
}

// ErrorKind maps an error onto the names used in API error payloads.
// Anything unclassified is reported as an internal error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDataRejected):
		return KindValidation
	case errors.Is(err, ErrDuplicateReference):
		return KindDuplicateReference
	case errors.Is(err, ErrDuplicateTransaction):
		return KindDuplicateTransaction
	case errors.Is(err, ErrTransactionNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// ValidationError reports the first request field that failed validation
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Is checks if the target error is an ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"error":      e.Message,
		"error_code": CodeValidation,
	}
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateReferenceError carries the identifier of the transaction that already owns a reference
type DuplicateReferenceError struct {
	Reference  string
	ExistingID string
}

// Error implements the error interface
func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("Transaction with reference '%s' already exists", e.Reference)
}

// Is checks if the target error is an ErrDuplicateReference
func (e *DuplicateReferenceError) Is(target error) bool {
	return target == ErrDuplicateReference
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateReferenceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":              "duplicate_reference",
		"reference":               e.Reference,
		"existing_transaction_id": e.ExistingID,
		"error_code":              CodeDuplicateReference,
	}
}

// NewDuplicateReferenceError creates a new duplicate reference error
func NewDuplicateReferenceError(reference, existingID string) error {
	return &DuplicateReferenceError{Reference: reference, ExistingID: existingID}
}

// TransitionError describes a status change that was rejected or failed
type TransitionError struct {
	TransactionID string
	From          string
	To            string
	Err           error
}

// Error implements the error interface
func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s for transaction %s: %v", e.From, e.To, e.TransactionID, e.Err)
}

// Unwrap returns the underlying error
func (e *TransitionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "transition_error",
		"transaction_id": e.TransactionID,
		"from":           e.From,
		"to":             e.To,
		"error":          e.Err.Error(),
	}
}

// NewTransitionError creates a detailed transition error
func NewTransitionError(transactionID, from, to string, err error) error {
	return &TransitionError{TransactionID: transactionID, From: from, To: to, Err: err}
}

// ExistingTransactionID extracts the owner of a duplicated reference, if the error carries one
func ExistingTransactionID(err error) (string, bool) {
	var dup *DuplicateReferenceError
	if errors.As(err, &dup) && dup.ExistingID != "" {
		return dup.ExistingID, true
	}
	return "", false
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsDataRejected checks if the store refused a value of the request
func IsDataRejected(err error) bool {
	return errors.Is(err, ErrDataRejected)
}

// IsDuplicateReferenceError checks if the error is a duplicate reference error
func IsDuplicateReferenceError(err error) bool {
	return errors.Is(err, ErrDuplicateReference)
}

// IsDuplicateTransactionError checks if the error is a duplicate transaction error
func IsDuplicateTransactionError(err error) bool {
	return errors.Is(err, ErrDuplicateTransaction)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound)
}

// IsStaleTransition checks if the error reports a lost conditional update
func IsStaleTransition(err error) bool {
	return errors.Is(err, ErrStaleTransition)
}
