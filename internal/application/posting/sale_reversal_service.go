package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contaerp/backend/internal/domain/accounting"
	"github.com/contaerp/backend/internal/domain/shared"
)

// SaleReversalService voids sales: it marks the sale and its receivable
// voided and posts the exact offsetting ledger movements, atomically.
type SaleReversalService struct {
	uow    UnitOfWork
	logger *zap.Logger
}

// NewSaleReversalService creates a sale reversal service
func NewSaleReversalService(uow UnitOfWork, logger *zap.Logger) *SaleReversalService {
	return &SaleReversalService{uow: uow, logger: logger}
}

// VoidSaleRequest identifies the sale to void and who is voiding it
type VoidSaleRequest struct {
	SaleID  uuid.UUID
	ActorID uuid.UUID
	Reason  string
}

// VoidSaleResult reports the reversal movements that were posted
type VoidSaleResult struct {
	SaleID      uuid.UUID
	MovementIDs []uuid.UUID
}

// VoidSale annuls a sale. The original movements stay in the ledger; an
// offsetting set is appended so every touched account nets to zero for this
// sale. Voiding an already voided sale fails without writing anything.
func (s *SaleReversalService) VoidSale(ctx context.Context, req VoidSaleRequest) (*VoidSaleResult, error) {
	if req.ActorID == uuid.Nil {
		return nil, shared.NewValidationError("actor is required")
	}
	if req.Reason == "" {
		return nil, shared.NewValidationError("void reason is required")
	}

	result := &VoidSaleResult{SaleID: req.SaleID}
	now := time.Now()

	err := s.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
		sale, err := repos.Sales.FindByID(ctx, req.SaleID)
		if err != nil {
			return err
		}
		if err := sale.Void(req.Reason); err != nil {
			return err
		}
		if err := repos.Sales.Update(ctx, sale); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}

		rcv, err := repos.Receivables.FindBySaleID(ctx, req.SaleID)
		if err != nil && !shared.HasCode(err, shared.CodeNotFound) {
			return err
		}
		if rcv != nil {
			if err := rcv.Void(); err != nil {
				return err
			}
			if err := repos.Receivables.Update(ctx, rcv); err != nil {
				return fmt.Errorf("failed to void receivable: %w", err)
			}
		}

		poster := accounting.NewPostingService(repos.Movements)
		desc := fmt.Sprintf("void sale %s: %s", sale.ID, req.Reason)
		movements, err := poster.Reverse(ctx, accounting.SaleOrigin(sale.ID), req.ActorID, now, desc)
		if err != nil {
			return err
		}
		for _, mv := range movements {
			result.MovementIDs = append(result.MovementIDs, mv.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale voided",
		zap.String("sale_id", req.SaleID.String()),
		zap.String("reason", req.Reason))
	return result, nil
}
