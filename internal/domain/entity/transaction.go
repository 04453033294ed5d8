package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending    TransactionStatus = "PENDING"
	StatusProcessing TransactionStatus = "PROCESSING"
	StatusCompleted  TransactionStatus = "COMPLETED"
	StatusFailed     TransactionStatus = "FAILED"
)

// Stored amounts are bounded by the ledger's numeric column
const (
	AmountScale         = 8
	AmountIntegerDigits = 12
	MaxCurrencyLength   = 16
	MaxReferenceLength  = 255
)

var amountLimit = decimal.New(1, AmountIntegerDigits)

// AmountFits reports whether amount can be stored without rounding or overflow
func AmountFits(amount decimal.Decimal) bool {
	return amount.Abs().LessThan(amountLimit) && amount.Equal(amount.Truncate(AmountScale))
}

// InitialVersion is the version stamped on a freshly created transaction
const InitialVersion int64 = 1

// forwardTransitions lists every legal status change; terminal states have no entry
var forwardTransitions = map[TransactionStatus][]TransactionStatus{
	StatusPending:    {StatusProcessing},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

// Transaction represents a payment tracked through the asynchronous processing lifecycle
type Transaction struct {
	ID            string            // Opaque identifier assigned at creation
	Amount        decimal.Decimal   // Strictly positive amount
	Currency      string            // Currency code, at least 3 characters
	Reference     string            // Caller supplied external reference, unique
	Status        TransactionStatus // Current lifecycle status
	CreatedAt     time.Time         // When the transaction was accepted
	UpdatedAt     time.Time         // Rewritten on every status transition
	FailureReason string            // Only set when Status is FAILED
	Version       int64             // Incremented on every status transition
}

// NewTransaction creates a pending transaction.
// Field validation happens before this is called.
func NewTransaction(id string, amount decimal.Decimal, currency, reference string, now time.Time) *Transaction {
	return &Transaction{
		ID:        id,
		Amount:    amount,
		Currency:  currency,
		Reference: reference,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   InitialVersion,
	}
}

// IsValid reports whether s is one of the known statuses
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo reports whether moving from s to next is a forward transition
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range forwardTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanBeReclaimed reports whether a transaction in s may be handed back to PENDING
// by lease recovery. This is the only backward edge of the state machine.
func (s TransactionStatus) CanBeReclaimed() bool {
	return s == StatusProcessing
}

// IsPending returns true while the transaction waits for a worker
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// Clone returns a copy that can be handed out without sharing state
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
