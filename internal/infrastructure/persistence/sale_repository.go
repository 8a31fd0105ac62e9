package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contaerp/backend/internal/domain/sales"
	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/infrastructure/persistence/models"
)

// GormSaleRepository implements sales.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Create stores a sale together with its line items
func (r *GormSaleRepository) Create(ctx context.Context, sale *sales.Sale) error {
	var model models.SaleModel
	model.FromDomain(sale)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

// FindByID retrieves a sale with its line items
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update persists state changes to an existing sale. Line items are fixed at
// creation and are not rewritten.
func (r *GormSaleRepository) Update(ctx context.Context, sale *sales.Sale) error {
	var model models.SaleModel
	model.FromDomain(sale)
	result := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"status":      model.Status,
			"description": model.Description,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update sale: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// List returns sales matching the filter, paginated
func (r *GormSaleRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*sales.Sale], error) {
	var saleModels []models.SaleModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SaleModel{})

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if customerRef, ok := filter.Filters["customer_ref"]; ok {
		query = query.Where("customer_ref = ?", customerRef)
	}
	if mode, ok := filter.Filters["payment_mode"]; ok {
		query = query.Where("payment_mode = ?", mode)
	}

	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*sales.Sale]{}, err
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	offset := (filter.Page - 1) * filter.PageSize

	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(offset).
		Limit(filter.PageSize).
		Find(&saleModels).Error; err != nil {
		return shared.Paginated[*sales.Sale]{}, err
	}

	items := make([]*sales.Sale, len(saleModels))
	for i := range saleModels {
		items[i] = saleModels[i].ToDomain()
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}
