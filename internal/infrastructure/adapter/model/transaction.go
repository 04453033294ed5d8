package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
)

// Transaction represents the database model for transactions. Column sizes
// follow the entity's amount and length bounds.
type Transaction struct {
	ID            string          `gorm:"primaryKey;size:64"`
	Amount        decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Currency      string          `gorm:"not null;size:16"`
	Reference     string          `gorm:"uniqueIndex:idx_transactions_reference;not null;size:255"`
	Status        string          `gorm:"not null;size:20;index:idx_transactions_status_updated_at,priority:1"`
	FailureReason string          `gorm:"type:text"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime:false;index:idx_transactions_status_updated_at,priority:2"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionFromEntity converts a transaction entity to a database model
func TransactionFromEntity(txn *entity.Transaction) Transaction {
	return Transaction{
		ID:            txn.ID,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		Reference:     txn.Reference,
		Status:        string(txn.Status),
		FailureReason: txn.FailureReason,
		Version:       txn.Version,
		CreatedAt:     txn.CreatedAt.UTC(),
		UpdatedAt:     txn.UpdatedAt.UTC(),
	}
}

// ToEntity converts the database model to a transaction entity
func (m *Transaction) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Reference:     m.Reference,
		Status:        entity.TransactionStatus(m.Status),
		FailureReason: m.FailureReason,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}
