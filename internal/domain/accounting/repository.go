package accounting

import (
	"context"
)

// LedgerMovementRepository persists ledger movements. The ledger is
// append-only: there is no update or delete.
type LedgerMovementRepository interface {
	// Create appends movements to the ledger
	Create(ctx context.Context, movements []*LedgerMovement) error

	// FindByOrigin returns all movements posted for an origin record,
	// oldest first
	FindByOrigin(ctx context.Context, origin Origin) ([]*LedgerMovement, error)
}
