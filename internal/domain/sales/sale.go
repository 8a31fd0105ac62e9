package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// PaymentMode distinguishes immediate settlement from deferred settlement
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeCredit PaymentMode = "CREDIT"
)

// IsValid checks if the payment mode is known
func (m PaymentMode) IsValid() bool {
	return m == PaymentModeCash || m == PaymentModeCredit
}

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusActive SaleStatus = "ACTIVE"
	SaleStatusVoided SaleStatus = "VOIDED"
)

// LineItem is one sold product line inside a sale. Quantities and prices are
// captured as recorded at sale time; stock movements are handled elsewhere.
type LineItem struct {
	shared.BaseEntity
	SaleID      uuid.UUID
	ProductRef  string
	Description string
	Quantity    int
	UnitPrice   valueobject.Money
	Total       valueobject.Money
}

// NewLineItem creates a line item and derives its total from quantity and
// unit price
func NewLineItem(productRef, description string, quantity int, unitPrice valueobject.Money) (*LineItem, error) {
	if productRef == "" {
		return nil, shared.NewValidationError("line item product reference is required")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("line item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("line item unit price cannot be negative")
	}

	return &LineItem{
		BaseEntity:  shared.NewBaseEntity(),
		ProductRef:  productRef,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       unitPrice.MulInt(quantity),
	}, nil
}

// Sale is the financial record of a completed sale. Monetary totals are
// fixed at creation; the only state change a sale supports afterwards is
// voiding.
type Sale struct {
	shared.BaseEntity
	CustomerRef   string
	ActorID       uuid.UUID
	Gross         valueobject.Money
	Discount      valueobject.Money
	Tax           valueobject.Money
	Net           valueobject.Money
	Total         valueobject.Money
	PaymentMode   PaymentMode
	FiscalReceipt bool
	Description   string
	Status        SaleStatus
	OccurredAt    time.Time
	Items         []*LineItem
}

// NewSale creates an active sale and derives its net and total amounts.
// Net is gross minus discount; total is net plus tax.
func NewSale(customerRef string, actorID uuid.UUID, gross, discount, tax valueobject.Money, mode PaymentMode, fiscalReceipt bool, description string, occurredAt time.Time) (*Sale, error) {
	if customerRef == "" {
		return nil, shared.NewValidationError("customer reference is required")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewValidationError("actor is required")
	}
	if !mode.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("unknown payment mode %q", mode))
	}
	if gross.IsNegative() || discount.IsNegative() || tax.IsNegative() {
		return nil, shared.NewValidationError("amounts cannot be negative")
	}
	if discount.GreaterThan(gross) {
		return nil, shared.NewValidationError("discount cannot exceed gross amount")
	}

	net := gross.Sub(discount)
	total := net.Add(tax)
	if total.IsZero() || total.IsNegative() {
		return nil, shared.NewValidationError("sale total must be positive")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	return &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		CustomerRef:   customerRef,
		ActorID:       actorID,
		Gross:         gross,
		Discount:      discount,
		Tax:           tax,
		Net:           net,
		Total:         total,
		PaymentMode:   mode,
		FiscalReceipt: fiscalReceipt,
		Description:   description,
		Status:        SaleStatusActive,
		OccurredAt:    occurredAt,
	}, nil
}

// AddItem attaches a line item to the sale
func (s *Sale) AddItem(item *LineItem) {
	item.SaleID = s.ID
	s.Items = append(s.Items, item)
}

// IsVoided reports whether the sale has been voided
func (s *Sale) IsVoided() bool {
	return s.Status == SaleStatusVoided
}

// Void marks the sale voided and records the reason in its description.
// Voiding an already voided sale is rejected.
func (s *Sale) Void(reason string) error {
	if s.IsVoided() {
		return shared.ErrAlreadyVoided
	}
	if reason == "" {
		return shared.NewValidationError("void reason is required")
	}
	s.Status = SaleStatusVoided
	if s.Description != "" {
		s.Description = fmt.Sprintf("%s | voided: %s", s.Description, reason)
	} else {
		s.Description = fmt.Sprintf("voided: %s", reason)
	}
	s.Touch()
	return nil
}
