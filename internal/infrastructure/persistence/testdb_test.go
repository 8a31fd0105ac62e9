package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/contaerp/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.SaleModel{},
		&models.SaleLineItemModel{},
		&models.ReceivableModel{},
		&models.PaymentModel{},
		&models.LedgerMovementModel{},
	)
	require.NoError(t, err)

	return db
}
