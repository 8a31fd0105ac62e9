package receivable

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of a receivable
type Status string

const (
	StatusPending Status = "PENDING"
	StatusOverdue Status = "OVERDUE"
	StatusPaid    Status = "PAID"
	StatusVoided  Status = "VOIDED"
)

// PaymentTolerance absorbs sub-cent rounding when deciding whether a
// receivable is settled or a payment overshoots.
var PaymentTolerance = valueobject.NewMoneyFromFloat(0.01)

// Payment is an append-only record of money applied to a receivable
type Payment struct {
	shared.BaseEntity
	ReceivableID uuid.UUID
	Amount       valueobject.Money
	Method       string
	Reference    string
	ActorID      uuid.UUID
	ReceivedAt   time.Time
}

// Receivable tracks the outstanding balance a customer owes for a credit
// sale. Payments only ever reduce the outstanding amount; the total is fixed
// at creation.
type Receivable struct {
	shared.BaseEntity
	SaleID      uuid.UUID
	CustomerRef string
	Total       valueobject.Money
	Paid        valueobject.Money
	Outstanding valueobject.Money
	Status      Status
	IssuedAt    time.Time
	DueAt       time.Time
	Payments    []*Payment
}

// NewReceivable opens a pending receivable for a credit sale. The due date
// is the issue date plus the configured payment term.
func NewReceivable(saleID uuid.UUID, customerRef string, total valueobject.Money, issuedAt time.Time, paymentTerm time.Duration) (*Receivable, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewValidationError("sale reference is required")
	}
	if customerRef == "" {
		return nil, shared.NewValidationError("customer reference is required")
	}
	if total.IsZero() || total.IsNegative() {
		return nil, shared.NewValidationError("receivable total must be positive")
	}
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	return &Receivable{
		BaseEntity:  shared.NewBaseEntity(),
		SaleID:      saleID,
		CustomerRef: customerRef,
		Total:       total,
		Paid:        valueobject.Zero(),
		Outstanding: total,
		Status:      StatusPending,
		IssuedAt:    issuedAt,
		DueAt:       issuedAt.Add(paymentTerm),
	}, nil
}

// IsOpen reports whether the receivable still accepts payments
func (r *Receivable) IsOpen() bool {
	return r.Status == StatusPending || r.Status == StatusOverdue
}

// IsSettled reports whether the outstanding amount is within tolerance of
// zero
func (r *Receivable) IsSettled() bool {
	return r.Outstanding.LessThanOrEqual(PaymentTolerance)
}

// ApplyPayment records a payment against the receivable. The payment must be
// positive and must not exceed the outstanding amount by more than the
// tolerance. When the remaining balance falls within tolerance the
// receivable transitions to PAID; a partial payment leaves it open.
func (r *Receivable) ApplyPayment(amount valueobject.Money, method, reference string, actorID uuid.UUID, receivedAt time.Time) (*Payment, error) {
	if !r.IsOpen() {
		return nil, shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("receivable is %s and does not accept payments", r.Status))
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, shared.NewValidationError("payment amount must be positive")
	}
	if amount.GreaterThan(r.Outstanding.Add(PaymentTolerance)) {
		return nil, shared.NewOverpaymentError(
			fmt.Sprintf("payment of %s exceeds outstanding amount of %s", amount, r.Outstanding))
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	payment := &Payment{
		BaseEntity:   shared.NewBaseEntity(),
		ReceivableID: r.ID,
		Amount:       amount,
		Method:       method,
		Reference:    reference,
		ActorID:      actorID,
		ReceivedAt:   receivedAt,
	}

	r.Paid = r.Paid.Add(amount)
	r.Outstanding = r.Total.Sub(r.Paid).ClampZero()
	if r.IsSettled() {
		r.Outstanding = valueobject.Zero()
		r.Status = StatusPaid
	}
	r.Payments = append(r.Payments, payment)
	r.Touch()
	return payment, nil
}

// MarkOverdue flags an unpaid receivable whose due date has passed. Settled
// and voided receivables are left untouched.
func (r *Receivable) MarkOverdue(now time.Time) bool {
	if r.Status != StatusPending {
		return false
	}
	if !now.After(r.DueAt) {
		return false
	}
	r.Status = StatusOverdue
	r.Touch()
	return true
}

// Void cancels the receivable when its sale is voided. Amounts are preserved
// for audit; only the status changes.
func (r *Receivable) Void() error {
	if r.Status == StatusVoided {
		return shared.ErrAlreadyVoided
	}
	if r.Status == StatusPaid {
		return shared.NewDomainError(shared.CodeInvalidState,
			"a settled receivable cannot be voided")
	}
	r.Status = StatusVoided
	r.Touch()
	return nil
}
