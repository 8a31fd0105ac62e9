package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/contaerp/backend/internal/domain/shared"
	"github.com/contaerp/backend/internal/infrastructure/config"
)

// NewIdempotencyStore creates an idempotency store based on configuration.
// When Redis is enabled it is used so that multiple instances share
// submission state; otherwise the in-memory store serves a single instance.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.Enabled {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis idempotency store: %w", err)
	}

	logger.Info("using Redis idempotency store", zap.String("addr", cfg.Addr()))
	return store, nil
}
