package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/contaerp/backend/internal/domain/receivable"
	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/infrastructure/persistence/models"
)

// GormReceivableRepository implements receivable.ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// Create stores a new receivable
func (r *GormReceivableRepository) Create(ctx context.Context, rcv *receivable.Receivable) error {
	var model models.ReceivableModel
	model.FromDomain(rcv)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to create receivable: %w", err)
	}
	return nil
}

// FindByID retrieves a receivable with its payments
func (r *GormReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*receivable.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Preload("Payments").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySaleID retrieves the receivable opened for a sale
func (r *GormReceivableRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*receivable.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Preload("Payments").
		First(&model, "sale_id = ?", saleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update persists balance and status changes and appends any new payments.
// Payment rows are append-only, so existing rows are left untouched.
func (r *GormReceivableRepository) Update(ctx context.Context, rcv *receivable.Receivable) error {
	var model models.ReceivableModel
	model.FromDomain(rcv)

	result := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"paid_amount":        model.PaidAmount,
			"outstanding_amount": model.OutstandingAmount,
			"status":             model.Status,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update receivable: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}

	if len(model.Payments) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Payments).Error; err != nil {
			return fmt.Errorf("failed to store payments: %w", err)
		}
	}
	return nil
}

// List returns receivables matching the filter, paginated
func (r *GormReceivableRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*receivable.Receivable], error) {
	var receivableModels []models.ReceivableModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ReceivableModel{})

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if customerRef, ok := filter.Filters["customer_ref"]; ok {
		query = query.Where("customer_ref = ?", customerRef)
	}

	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*receivable.Receivable]{}, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ReceivableSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	offset := (filter.Page - 1) * filter.PageSize

	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(offset).
		Limit(filter.PageSize).
		Find(&receivableModels).Error; err != nil {
		return shared.Paginated[*receivable.Receivable]{}, err
	}

	items := make([]*receivable.Receivable, len(receivableModels))
	for i := range receivableModels {
		items[i] = receivableModels[i].ToDomain()
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// FindDueBefore returns pending receivables whose due date is before the cutoff
func (r *GormReceivableRepository) FindDueBefore(ctx context.Context, cutoff time.Time) ([]*receivable.Receivable, error) {
	var receivableModels []models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_at < ?", receivable.StatusPending, cutoff).
		Order("due_at ASC").
		Find(&receivableModels).Error; err != nil {
		return nil, err
	}

	items := make([]*receivable.Receivable, len(receivableModels))
	for i := range receivableModels {
		items[i] = receivableModels[i].ToDomain()
	}
	return items, nil
}
