package model

import (
	"time"
)

// WorkMessage is a queued work notification in the database backed queue.
// A message is visible to receivers once VisibleAt has passed; receiving it
// pushes VisibleAt forward and stamps a new Receipt.
type WorkMessage struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	TransactionID string    `gorm:"not null;size:64;index"`
	Receipt       string    `gorm:"size:64"`
	Attempts      int       `gorm:"not null;default:0"`
	VisibleAt     time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for WorkMessage
func (WorkMessage) TableName() string {
	return "work_messages"
}
