package identity

import (
	"github.com/google/uuid"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/core"
)

// UUIDGenerator issues random (version 4) UUIDs as transaction identifiers
type UUIDGenerator struct{}

var _ core.IDGenerator = UUIDGenerator{}

// NewUUIDGenerator creates a new UUIDGenerator
func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

// NewID implements core.IDGenerator
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
