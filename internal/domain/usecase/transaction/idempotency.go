package transaction

import (
	"context"
	"fmt"

	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
)

// ReferenceGuard rejects external references that are already in use.
//
// The lookup is a fast path only: it is not atomic with the insert, so two
// concurrent creations with one reference can both pass it. The unique index
// on reference in the store is what actually decides; see IntakeGuard.Create.
type ReferenceGuard struct {
	ledger *Ledger
}

// NewReferenceGuard creates a new ReferenceGuard
func NewReferenceGuard(ledger *Ledger) *ReferenceGuard {
	return &ReferenceGuard{
		ledger: ledger,
	}
}

// Check returns a *DuplicateReferenceError naming the first existing
// transaction with reference, or nil if the reference is free
func (g *ReferenceGuard) Check(ctx context.Context, reference string) error {
	existing, err := g.ledger.FindByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("failed to look up reference: %w", err)
	}

	if len(existing) == 0 {
		return nil
	}

	return errs.NewDuplicateReferenceError(reference, existing[0].ID)
}

// Owner resolves the transaction that won a reference after an insert lost
// the race at the unique index. The error still reports a duplicate
// reference if the owner cannot be read back.
func (g *ReferenceGuard) Owner(ctx context.Context, reference string) error {
	existing, err := g.ledger.FindByReference(ctx, reference)
	if err != nil || len(existing) == 0 {
		return errs.NewDuplicateReferenceError(reference, "")
	}
	return errs.NewDuplicateReferenceError(reference, existing[0].ID)
}
