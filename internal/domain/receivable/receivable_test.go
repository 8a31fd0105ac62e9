package receivable

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

func newTestReceivable(t *testing.T, total float64) *Receivable {
	t.Helper()
	rcv, err := NewReceivable(
		uuid.New(),
		"CUST-001",
		valueobject.NewMoneyFromFloat(total),
		time.Now(),
		30*24*time.Hour,
	)
	require.NoError(t, err)
	return rcv
}

func TestNewReceivable(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rcv, err := NewReceivable(uuid.New(), "CUST-001", valueobject.NewMoneyFromFloat(1180), issuedAt, 30*24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, rcv.Status)
	assert.Equal(t, "1180.00", rcv.Outstanding.String())
	assert.True(t, rcv.Paid.IsZero())
	assert.Equal(t, issuedAt.Add(30*24*time.Hour), rcv.DueAt)
}

func TestNewReceivable_Validation(t *testing.T) {
	_, err := NewReceivable(uuid.Nil, "CUST-001", valueobject.NewMoneyFromFloat(100), time.Now(), 0)
	assert.Error(t, err)

	_, err = NewReceivable(uuid.New(), "", valueobject.NewMoneyFromFloat(100), time.Now(), 0)
	assert.Error(t, err)

	_, err = NewReceivable(uuid.New(), "CUST-001", valueobject.Zero(), time.Now(), 0)
	assert.Error(t, err)
}

func TestReceivable_PartialPaymentKeepsItOpen(t *testing.T) {
	rcv := newTestReceivable(t, 1180)

	payment, err := rcv.ApplyPayment(valueobject.NewMoneyFromFloat(500), "transfer", "TX-1", uuid.New(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "500.00", payment.Amount.String())
	assert.Equal(t, "680.00", rcv.Outstanding.String())
	assert.Equal(t, StatusPending, rcv.Status)
	assert.True(t, rcv.IsOpen())
}

func TestReceivable_FullPaymentSettles(t *testing.T) {
	rcv := newTestReceivable(t, 1180)

	_, err := rcv.ApplyPayment(valueobject.NewMoneyFromFloat(500), "transfer", "TX-1", uuid.New(), time.Now())
	require.NoError(t, err)
	_, err = rcv.ApplyPayment(valueobject.NewMoneyFromFloat(680), "transfer", "TX-2", uuid.New(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, rcv.Status)
	assert.True(t, rcv.Outstanding.IsZero())
	assert.Equal(t, "1180.00", rcv.Paid.String())
	require.Len(t, rcv.Payments, 2)
}

func TestReceivable_OverpaymentRejected(t *testing.T) {
	rcv := newTestReceivable(t, 1180)

	_, err := rcv.ApplyPayment(valueobject.NewMoneyFromFloat(500), "transfer", "TX-1", uuid.New(), time.Now())
	require.NoError(t, err)

	_, err = rcv.ApplyPayment(valueobject.NewMoneyFromFloat(700), "transfer", "TX-2", uuid.New(), time.Now())
	require.Error(t, err)
	assert.True(t, shared.HasCode(err, shared.CodeOverpayment))

	// rejected payment leaves the balance untouched
	assert.Equal(t, "680.00", rcv.Outstanding.String())
	assert.Equal(t, StatusPending, rcv.Status)
	require.Len(t, rcv.Payments, 1)
}

func TestReceivable_PaymentWithinToleranceSettles(t *testing.T) {
	rcv := newTestReceivable(t, 100)

	_, err := rcv.ApplyPayment(valueobject.NewMoneyFromFloat(99.995), "cash", "", uuid.New(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, StatusPaid, rcv.Status)
	assert.True(t, rcv.Outstanding.IsZero())
}

func TestReceivable_PaymentValidation(t *testing.T) {
	rcv := newTestReceivable(t, 100)

	_, err := rcv.ApplyPayment(valueobject.Zero(), "cash", "", uuid.New(), time.Now())
	require.Error(t, err)
	assert.True(t, shared.HasCode(err, shared.CodeValidation))

	_, err = rcv.ApplyPayment(valueobject.NewMoneyFromFloat(-5), "cash", "", uuid.New(), time.Now())
	assert.Error(t, err)
}

func TestReceivable_SettledRejectsFurtherPayments(t *testing.T) {
	rcv := newTestReceivable(t, 100)
	_, err := rcv.ApplyPayment(valueobject.NewMoneyFromFloat(100), "cash", "", uuid.New(), time.Now())
	require.NoError(t, err)

	_, err = rcv.ApplyPayment(valueobject.NewMoneyFromFloat(1), "cash", "", uuid.New(), time.Now())
	require.Error(t, err)
	assert.True(t, shared.HasCode(err, shared.CodeInvalidState))
}

func TestReceivable_MarkOverdue(t *testing.T) {
	rcv := newTestReceivable(t, 100)

	assert.False(t, rcv.MarkOverdue(rcv.DueAt.Add(-time.Hour)))
	assert.Equal(t, StatusPending, rcv.Status)

	assert.True(t, rcv.MarkOverdue(rcv.DueAt.Add(time.Hour)))
	assert.Equal(t, StatusOverdue, rcv.Status)

	// already overdue, no further transition
	assert.False(t, rcv.MarkOverdue(rcv.DueAt.Add(2*time.Hour)))
}

func TestReceivable_OverdueStillAcceptsPayments(t *testing.T) {
	rcv := newTestReceivable(t, 100)
	require.True(t, rcv.MarkOverdue(rcv.DueAt.Add(time.Hour)))

	_, err := rcv.ApplyPayment(valueobject.NewMoneyFromFloat(100), "cash", "", uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, rcv.Status)
}

func TestReceivable_Void(t *testing.T) {
	rcv := newTestReceivable(t, 1180)
	_, err := rcv.ApplyPayment(valueobject.NewMoneyFromFloat(500), "transfer", "TX-1", uuid.New(), time.Now())
	require.NoError(t, err)

	require.NoError(t, rcv.Void())
	assert.Equal(t, StatusVoided, rcv.Status)
	// amounts stay for audit
	assert.Equal(t, "500.00", rcv.Paid.String())
	assert.Equal(t, "680.00", rcv.Outstanding.String())

	assert.ErrorIs(t, rcv.Void(), shared.ErrAlreadyVoided)
}

func TestReceivable_VoidSettledRejected(t *testing.T) {
	rcv := newTestReceivable(t, 100)
	_, err := rcv.ApplyPayment(valueobject.NewMoneyFromFloat(100), "cash", "", uuid.New(), time.Now())
	require.NoError(t, err)

	err = rcv.Void()
	require.Error(t, err)
	assert.True(t, shared.HasCode(err, shared.CodeInvalidState))
}
