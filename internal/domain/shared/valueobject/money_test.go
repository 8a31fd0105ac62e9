package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("1180.00")
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(1180)))

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyFromFloat(1000)
	b := NewMoneyFromFloat(180)

	assert.Equal(t, "1180.00", a.Add(b).String())
	assert.Equal(t, "820.00", a.Sub(b).String())
	assert.Equal(t, "-180.00", b.Neg().String())
}

func TestMoney_ExactAfterRepeatedOps(t *testing.T) {
	// 0.1 + 0.2 style drift must not occur with decimal amounts
	sum := Zero()
	tenth := NewMoneyFromFloat(0.1)
	for range 10 {
		sum = sum.Add(tenth)
	}
	assert.True(t, sum.Equals(NewMoneyFromFloat(1.0)))
}

func TestMoney_ClampZero(t *testing.T) {
	assert.True(t, NewMoneyFromFloat(-0.01).ClampZero().IsZero())
	assert.Equal(t, "5.00", NewMoneyFromFloat(5).ClampZero().String())
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyFromFloat(680)
	b := NewMoneyFromFloat(700)

	assert.True(t, b.GreaterThan(a))
	assert.False(t, a.GreaterThan(b))
	assert.True(t, a.LessThanOrEqual(b))
	assert.True(t, a.LessThanOrEqual(a))
	assert.True(t, a.Equals(NewMoneyFromFloat(680)))
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyFromFloat(236.50)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"236.50"`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("1180.0000"))
	assert.True(t, m.Equals(NewMoneyFromFloat(1180)))

	require.NoError(t, m.Scan([]byte("36.00")))
	assert.True(t, m.Equals(NewMoneyFromFloat(36)))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(struct{}{}))
}
