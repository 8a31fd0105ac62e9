package receivable

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contaerp/backend/internal/domain/shared"
)

// ReceivableRepository persists receivables and their payments
type ReceivableRepository interface {
	// Create stores a new receivable
	Create(ctx context.Context, rcv *Receivable) error

	// FindByID retrieves a receivable with its payments
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)

	// FindBySaleID retrieves the receivable opened for a sale
	FindBySaleID(ctx context.Context, saleID uuid.UUID) (*Receivable, error)

	// Update persists state changes, appending any new payments
	Update(ctx context.Context, rcv *Receivable) error

	// List returns receivables matching the filter, paginated
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Receivable], error)

	// FindDueBefore returns pending receivables whose due date is before
	// the cutoff
	FindDueBefore(ctx context.Context, cutoff time.Time) ([]*Receivable, error)
}
