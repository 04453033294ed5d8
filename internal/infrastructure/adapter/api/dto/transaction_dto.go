package dto

import (
	"bytes"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
)

// Amount is a decimal carried as a bare JSON number
type Amount struct {
	decimal.Decimal
}

// MarshalJSON writes the amount without quotes
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number only; null leaves the amount at zero
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return errors.New("amount must be a number")
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return errors.New("amount must be a number")
	}
	a.Decimal = d
	return nil
}

// CreateTransactionRequest represents the API request for creating a transaction
type CreateTransactionRequest struct {
	Amount    Amount `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
}

// TransactionResponse represents a transaction as returned by the API
type TransactionResponse struct {
	ID            string    `json:"id"`
	Amount        Amount    `json:"amount"`
	Currency      string    `json:"currency"`
	Reference     string    `json:"reference"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	FailureReason string    `json:"failureReason,omitempty"`
}

// NewTransactionResponse maps a domain transaction onto its wire form
func NewTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            txn.ID,
		Amount:        Amount{txn.Amount},
		Currency:      txn.Currency,
		Reference:     txn.Reference,
		Status:        string(txn.Status),
		CreatedAt:     txn.CreatedAt.UTC(),
		UpdatedAt:     txn.UpdatedAt.UTC(),
		FailureReason: txn.FailureReason,
	}
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	OK bool `json:"ok"`
}
