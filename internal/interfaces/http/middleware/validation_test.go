package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentForm struct {
	Amount string `json:"amount" binding:"required,money"`
	Method string `json:"method" binding:"max=5"`
}

func validateStruct(t *testing.T, s any) error {
	t.Helper()
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v.Struct(s)
}

func TestMoneyValidation(t *testing.T) {
	t.Run("accepts decimal strings", func(t *testing.T) {
		err := validateStruct(t, paymentForm{Amount: "680.00"})
		assert.NoError(t, err)
	})

	t.Run("rejects non-numeric strings", func(t *testing.T) {
		err := validateStruct(t, paymentForm{Amount: "a lot"})
		assert.Error(t, err)
	})
}

func TestFormatValidationErrors(t *testing.T) {
	t.Run("uses JSON field names", func(t *testing.T) {
		err := validateStruct(t, paymentForm{Amount: "", Method: "TRANSFER"})
		require.Error(t, err)

		details := FormatValidationErrors(err)
		require.Len(t, details, 2)

		fields := []string{details[0].Field, details[1].Field}
		assert.Contains(t, fields, "amount")
		assert.Contains(t, fields, "method")
	})

	t.Run("returns nil for non-validation errors", func(t *testing.T) {
		details := FormatValidationErrors(assert.AnError)
		assert.Nil(t, details)
	})
}
