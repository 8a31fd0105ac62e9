package posting

import (
	"context"

	"github.com/contaerp/backend/internal/domain/accounting"
	"github.com/contaerp/backend/internal/domain/receivable"
	"github.com/contaerp/backend/internal/domain/sales"
)

// Repositories bundles the transaction-scoped repositories handed to a unit
// of work callback. Every repository in the bundle writes through the same
// database transaction.
type Repositories struct {
	Sales       sales.SaleRepository
	Receivables receivable.ReceivableRepository
	Movements   accounting.LedgerMovementRepository
}

// UnitOfWork runs a function atomically: either every write inside the
// callback commits, or none do. This is the engine's only concurrency
// control; there are no application-level locks.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
