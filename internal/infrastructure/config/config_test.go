package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaerp/backend/internal/domain/accounting"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "contaerp-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30, cfg.Receivable.PaymentTermDays)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONTAERP_DATABASE_HOST", "db.internal")
	t.Setenv("CONTAERP_RECEIVABLE_PAYMENT_TERM_DAYS", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 45, cfg.Receivable.PaymentTermDays)
	assert.Equal(t, 45*24*time.Hour, cfg.Receivable.PaymentTerm())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss:word",
		DBName:   "contaerp",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters must be escaped
	assert.NotContains(t, dsn, "p@ss:word")
}

func TestConfig_ChartOfAccounts(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	chart, err := cfg.ChartOfAccounts()
	require.NoError(t, err)
	assert.Equal(t, "1000", chart.Account(accounting.RoleCash))

	cfg.Accounts.Cash = "1010"
	chart, err = cfg.ChartOfAccounts()
	require.NoError(t, err)
	assert.Equal(t, "1010", chart.Account(accounting.RoleCash))
	assert.Equal(t, "1100", chart.Account(accounting.RoleReceivables))
}

func TestConfig_ChartOfAccounts_DuplicateRejected(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Accounts.Cash = "4000" // collides with revenue

	_, err := cfg.ChartOfAccounts()
	assert.Error(t, err)
}

func TestValidate_PoolSettings(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 50 // exceeds MaxOpenConns (25)

	assert.Error(t, cfg.validate())
}

func TestValidate_ProductionRequiresPassword(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.App.Env = "production"
	cfg.Database.SSLMode = "require"

	assert.Error(t, cfg.validate())

	cfg.Database.Password = "secret"
	assert.NoError(t, cfg.validate())
}
