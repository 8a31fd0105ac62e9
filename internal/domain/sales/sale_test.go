package sales

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

func newTestSale(t *testing.T, gross, discount, tax float64, mode PaymentMode) *Sale {
	t.Helper()
	sale, err := NewSale(
		"CUST-001",
		uuid.New(),
		valueobject.NewMoneyFromFloat(gross),
		valueobject.NewMoneyFromFloat(discount),
		valueobject.NewMoneyFromFloat(tax),
		mode,
		true,
		"counter sale",
		time.Now(),
	)
	require.NoError(t, err)
	return sale
}

func TestNewSale_DerivesNetAndTotal(t *testing.T) {
	sale := newTestSale(t, 1000, 0, 180, PaymentModeCredit)

	assert.Equal(t, "1000.00", sale.Net.String())
	assert.Equal(t, "1180.00", sale.Total.String())
	assert.Equal(t, SaleStatusActive, sale.Status)
}

func TestNewSale_DiscountReducesNet(t *testing.T) {
	sale := newTestSale(t, 1000, 100, 90, PaymentModeCash)

	assert.Equal(t, "900.00", sale.Net.String())
	assert.Equal(t, "990.00", sale.Total.String())
}

func TestNewSale_Validation(t *testing.T) {
	actorID := uuid.New()
	m := valueobject.NewMoneyFromFloat

	cases := []struct {
		name     string
		customer string
		actor    uuid.UUID
		gross    float64
		discount float64
		tax      float64
		mode     PaymentMode
	}{
		{"missing customer", "", actorID, 100, 0, 0, PaymentModeCash},
		{"missing actor", "CUST-001", uuid.Nil, 100, 0, 0, PaymentModeCash},
		{"unknown payment mode", "CUST-001", actorID, 100, 0, 0, PaymentMode("BARTER")},
		{"negative gross", "CUST-001", actorID, -100, 0, 0, PaymentModeCash},
		{"discount exceeds gross", "CUST-001", actorID, 100, 150, 0, PaymentModeCash},
		{"zero total", "CUST-001", actorID, 100, 100, 0, PaymentModeCash},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSale(tc.customer, tc.actor, m(tc.gross), m(tc.discount), m(tc.tax), tc.mode, false, "", time.Now())
			require.Error(t, err)
			assert.True(t, shared.HasCode(err, shared.CodeValidation))
		})
	}
}

func TestSale_Void(t *testing.T) {
	sale := newTestSale(t, 200, 0, 36, PaymentModeCash)

	require.NoError(t, sale.Void("wrong customer"))
	assert.Equal(t, SaleStatusVoided, sale.Status)
	assert.Contains(t, sale.Description, "voided: wrong customer")

	err := sale.Void("again")
	assert.ErrorIs(t, err, shared.ErrAlreadyVoided)
}

func TestSale_Void_RequiresReason(t *testing.T) {
	sale := newTestSale(t, 200, 0, 36, PaymentModeCash)

	err := sale.Void("")
	require.Error(t, err)
	assert.True(t, shared.HasCode(err, shared.CodeValidation))
	assert.Equal(t, SaleStatusActive, sale.Status)
}

func TestNewLineItem(t *testing.T) {
	item, err := NewLineItem("SKU-42", "blue widget", 3, valueobject.NewMoneyFromFloat(19.90))
	require.NoError(t, err)
	assert.Equal(t, "59.70", item.Total.String())

	_, err = NewLineItem("", "no ref", 1, valueobject.NewMoneyFromFloat(1))
	assert.Error(t, err)

	_, err = NewLineItem("SKU-42", "bad qty", 0, valueobject.NewMoneyFromFloat(1))
	assert.Error(t, err)

	_, err = NewLineItem("SKU-42", "bad price", 1, valueobject.NewMoneyFromFloat(-1))
	assert.Error(t, err)
}

func TestSale_AddItem(t *testing.T) {
	sale := newTestSale(t, 100, 0, 18, PaymentModeCash)
	item, err := NewLineItem("SKU-1", "widget", 2, valueobject.NewMoneyFromFloat(50))
	require.NoError(t, err)

	sale.AddItem(item)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, sale.ID, sale.Items[0].SaleID)
}
