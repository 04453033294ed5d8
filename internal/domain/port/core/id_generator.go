package core

// IDGenerator produces identifiers for new transactions
type IDGenerator interface {
	NewID() string
}
