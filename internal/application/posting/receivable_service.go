package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contaerp/backend/internal/domain/receivable"
	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// ReceivableService manages the receivable lifecycle after a credit sale:
// payment application, overdue marking, and queries.
type ReceivableService struct {
	uow    UnitOfWork
	logger *zap.Logger
}

// NewReceivableService creates a receivable service
func NewReceivableService(uow UnitOfWork, logger *zap.Logger) *ReceivableService {
	return &ReceivableService{uow: uow, logger: logger}
}

// ApplyPaymentRequest carries one payment against a receivable
type ApplyPaymentRequest struct {
	ReceivableID uuid.UUID
	Amount       valueobject.Money
	Method       string
	Reference    string
	ActorID      uuid.UUID
	ReceivedAt   time.Time
}

// ApplyPaymentResult reports the receivable state after the payment
type ApplyPaymentResult struct {
	Payment     *receivable.Payment
	Outstanding valueobject.Money
	Status      receivable.Status
}

// ApplyPayment records a payment and updates the receivable balance. An
// amount exceeding the outstanding balance is rejected without writing.
func (s *ReceivableService) ApplyPayment(ctx context.Context, req ApplyPaymentRequest) (*ApplyPaymentResult, error) {
	if req.ActorID == uuid.Nil {
		return nil, shared.NewValidationError("actor is required")
	}

	var result *ApplyPaymentResult
	err := s.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
		rcv, err := repos.Receivables.FindByID(ctx, req.ReceivableID)
		if err != nil {
			return err
		}

		payment, err := rcv.ApplyPayment(req.Amount, req.Method, req.Reference, req.ActorID, req.ReceivedAt)
		if err != nil {
			return err
		}

		if err := repos.Receivables.Update(ctx, rcv); err != nil {
			return fmt.Errorf("failed to update receivable: %w", err)
		}

		result = &ApplyPaymentResult{
			Payment:     payment,
			Outstanding: rcv.Outstanding,
			Status:      rcv.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment applied",
		zap.String("receivable_id", req.ReceivableID.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("status", string(result.Status)))
	return result, nil
}

// GetReceivable loads a receivable with its payment history
func (s *ReceivableService) GetReceivable(ctx context.Context, id uuid.UUID) (*receivable.Receivable, error) {
	var rcv *receivable.Receivable
	err := s.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		rcv, err = repos.Receivables.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rcv, nil
}

// ListReceivables returns receivables matching the filter
func (s *ReceivableService) ListReceivables(ctx context.Context, filter shared.Filter) (shared.Paginated[*receivable.Receivable], error) {
	var page shared.Paginated[*receivable.Receivable]
	err := s.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		page, err = repos.Receivables.List(ctx, filter)
		return err
	})
	return page, err
}

// MarkOverdueBatch flags every pending receivable past its due date as
// overdue and returns how many were flagged. Intended to be run
// periodically.
func (s *ReceivableService) MarkOverdueBatch(ctx context.Context, now time.Time) (int, error) {
	if now.IsZero() {
		now = time.Now()
	}

	marked := 0
	err := s.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
		due, err := repos.Receivables.FindDueBefore(ctx, now)
		if err != nil {
			return fmt.Errorf("failed to load due receivables: %w", err)
		}
		for _, rcv := range due {
			if !rcv.MarkOverdue(now) {
				continue
			}
			if err := repos.Receivables.Update(ctx, rcv); err != nil {
				return fmt.Errorf("failed to mark receivable %s overdue: %w", rcv.ID, err)
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if marked > 0 {
		s.logger.Info("receivables marked overdue", zap.Int("count", marked))
	}
	return marked, nil
}
