package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/contaerp/backend/internal/domain/accounting"
	"github.com/contaerp/backend/internal/domain/receivable"
	"github.com/contaerp/backend/internal/domain/sales"
	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// ReceivablePolicy carries the configurable knobs of receivable creation
type ReceivablePolicy struct {
	// PaymentTerm is added to the sale date to derive the due date
	PaymentTerm time.Duration
}

// DefaultReceivablePolicy returns the standard 30 day payment term
func DefaultReceivablePolicy() ReceivablePolicy {
	return ReceivablePolicy{PaymentTerm: 30 * 24 * time.Hour}
}

// SalePostingService orchestrates sale recording: it persists the sale,
// opens the receivable for credit sales, and posts the balanced ledger
// movements, all inside one unit of work.
type SalePostingService struct {
	uow         UnitOfWork
	chart       *accounting.ChartOfAccounts
	policy      ReceivablePolicy
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	logger      *zap.Logger
}

// NewSalePostingService creates a sale posting service
func NewSalePostingService(
	uow UnitOfWork,
	chart *accounting.ChartOfAccounts,
	policy ReceivablePolicy,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	logger *zap.Logger,
) *SalePostingService {
	return &SalePostingService{
		uow:         uow,
		chart:       chart,
		policy:      policy,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		logger:      logger,
	}
}

// LineItemInput is one product line of a sale submission
type LineItemInput struct {
	ProductRef  string
	Description string
	Quantity    int
	UnitPrice   valueobject.Money
}

// CreateSaleRequest carries everything needed to record a sale
type CreateSaleRequest struct {
	CustomerRef    string
	ActorID        uuid.UUID
	Gross          valueobject.Money
	Discount       valueobject.Money
	Tax            valueobject.Money
	PaymentMode    sales.PaymentMode
	FiscalReceipt  bool
	Description    string
	OccurredAt     time.Time
	Items          []LineItemInput
	IdempotencyKey string
}

// CreateSaleResult reports what the posting produced
type CreateSaleResult struct {
	Sale        *sales.Sale
	Receivable  *receivable.Receivable
	MovementIDs []uuid.UUID
	DebitTotal  valueobject.Money
	CreditTotal valueobject.Money
}

// CreateSale records a sale atomically. For a credit sale it opens a
// receivable and debits the receivables account; for a cash sale it debits
// cash. Revenue is credited at the net amount and collected tax at the tax
// amount. Any failure rolls back every write.
func (s *SalePostingService) CreateSale(ctx context.Context, req CreateSaleRequest) (*CreateSaleResult, error) {
	if s.idemConfig.Enabled && req.IdempotencyKey != "" {
		seen, err := s.idempotency.IsProcessed(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
		if seen {
			return nil, shared.ErrDuplicateSubmission
		}
	}

	sale, err := sales.NewSale(
		req.CustomerRef, req.ActorID,
		req.Gross, req.Discount, req.Tax,
		req.PaymentMode, req.FiscalReceipt,
		req.Description, req.OccurredAt,
	)
	if err != nil {
		return nil, err
	}

	for _, in := range req.Items {
		item, err := sales.NewLineItem(in.ProductRef, in.Description, in.Quantity, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		sale.AddItem(item)
	}

	result := &CreateSaleResult{Sale: sale}

	err = s.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return fmt.Errorf("failed to store sale: %w", err)
		}

		entries, err := s.buildEntries(sale)
		if err != nil {
			return err
		}

		if sale.PaymentMode == sales.PaymentModeCredit {
			rcv, err := receivable.NewReceivable(sale.ID, sale.CustomerRef, sale.Total, sale.OccurredAt, s.policy.PaymentTerm)
			if err != nil {
				return err
			}
			if err := repos.Receivables.Create(ctx, rcv); err != nil {
				return fmt.Errorf("failed to open receivable: %w", err)
			}
			result.Receivable = rcv
		}

		poster := accounting.NewPostingService(repos.Movements)
		movements, err := poster.Post(ctx, entries, accounting.SaleOrigin(sale.ID), sale.ActorID, sale.OccurredAt)
		if err != nil {
			return err
		}

		for _, mv := range movements {
			result.MovementIDs = append(result.MovementIDs, mv.ID)
			result.DebitTotal = result.DebitTotal.Add(mv.Debit)
			result.CreditTotal = result.CreditTotal.Add(mv.Credit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.idemConfig.Enabled && req.IdempotencyKey != "" {
		// the sale is already committed; a failed mark only weakens dedup
		if _, err := s.idempotency.MarkProcessed(ctx, req.IdempotencyKey, s.idemConfig.TTL); err != nil {
			s.logger.Warn("failed to mark idempotency key",
				zap.String("key", req.IdempotencyKey),
				zap.Error(err))
		}
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("payment_mode", string(sale.PaymentMode)),
		zap.String("total", sale.Total.String()))
	return result, nil
}

// buildEntries derives the balanced movement set for a sale
func (s *SalePostingService) buildEntries(sale *sales.Sale) ([]accounting.Entry, error) {
	desc := fmt.Sprintf("sale %s", sale.ID)

	var debitRole accounting.AccountRole
	switch sale.PaymentMode {
	case sales.PaymentModeCash:
		debitRole = accounting.RoleCash
	case sales.PaymentModeCredit:
		debitRole = accounting.RoleReceivables
	default:
		return nil, shared.NewValidationError(fmt.Sprintf("unknown payment mode %q", sale.PaymentMode))
	}

	entries := []accounting.Entry{
		accounting.DebitEntry(s.chart.Account(debitRole), sale.Total, desc),
		accounting.CreditEntry(s.chart.Account(accounting.RoleRevenue), sale.Net, desc),
	}
	if sale.Tax.IsPositive() {
		entries = append(entries, accounting.CreditEntry(s.chart.Account(accounting.RoleTaxPayable), sale.Tax, desc))
	}
	return entries, nil
}

// GetSale loads a sale with its line items
func (s *SalePostingService) GetSale(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale *sales.Sale
	err := s.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		sale, err = repos.Sales.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ListSales returns sales matching the filter
func (s *SalePostingService) ListSales(ctx context.Context, filter shared.Filter) (shared.Paginated[*sales.Sale], error) {
	var page shared.Paginated[*sales.Sale]
	err := s.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
		var err error
		page, err = repos.Sales.List(ctx, filter)
		return err
	})
	return page, err
}

// GetSaleMovements returns the ledger movements posted for a sale, including
// any reversal movements
func (s *SalePostingService) GetSaleMovements(ctx context.Context, saleID uuid.UUID) ([]*accounting.LedgerMovement, error) {
	var movements []*accounting.LedgerMovement
	err := s.uow.Execute(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := repos.Sales.FindByID(ctx, saleID); err != nil {
			return err
		}
		var err error
		movements, err = repos.Movements.FindByOrigin(ctx, accounting.SaleOrigin(saleID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return movements, nil
}
