package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/contaerp/backend/internal/domain/accounting"
	"github.com/contaerp/backend/internal/infrastructure/persistence/models"
)

// GormLedgerMovementRepository implements accounting.LedgerMovementRepository
// using GORM. The ledger table is append-only; this repository exposes no
// update or delete.
type GormLedgerMovementRepository struct {
	db *gorm.DB
}

// NewGormLedgerMovementRepository creates a new GormLedgerMovementRepository
func NewGormLedgerMovementRepository(db *gorm.DB) *GormLedgerMovementRepository {
	return &GormLedgerMovementRepository{db: db}
}

// Create appends movements to the ledger
func (r *GormLedgerMovementRepository) Create(ctx context.Context, movements []*accounting.LedgerMovement) error {
	if len(movements) == 0 {
		return nil
	}
	movementModels := make([]models.LedgerMovementModel, len(movements))
	for i, mv := range movements {
		movementModels[i].FromDomain(mv)
	}
	if err := r.db.WithContext(ctx).Create(&movementModels).Error; err != nil {
		return fmt.Errorf("failed to append ledger movements: %w", err)
	}
	return nil
}

// FindByOrigin returns all movements posted for an origin record, oldest first
func (r *GormLedgerMovementRepository) FindByOrigin(ctx context.Context, origin accounting.Origin) ([]*accounting.LedgerMovement, error) {
	var movementModels []models.LedgerMovementModel
	if err := r.db.WithContext(ctx).
		Where("origin_table = ? AND origin_id = ?", origin.Table, origin.ID).
		Order("created_at ASC, id ASC").
		Find(&movementModels).Error; err != nil {
		return nil, err
	}

	movements := make([]*accounting.LedgerMovement, len(movementModels))
	for i := range movementModels {
		movements[i] = movementModels[i].ToDomain()
	}
	return movements, nil
}
