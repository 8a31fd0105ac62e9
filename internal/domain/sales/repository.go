package sales

import (
	"context"

	"github.com/google/uuid"

	"github.com/contaerp/backend/internal/domain/shared"
)

// SaleRepository persists sales and their line items
type SaleRepository interface {
	// Create stores a sale together with its line items
	Create(ctx context.Context, sale *Sale) error

	// FindByID retrieves a sale with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// Update persists state changes to an existing sale
	Update(ctx context.Context, sale *Sale) error

	// List returns sales matching the filter, paginated
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Sale], error)
}
