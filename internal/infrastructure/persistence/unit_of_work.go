package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/contaerp/backend/internal/application/posting"
)

// GormUnitOfWork implements posting.UnitOfWork over a GORM transaction.
// Every repository handed to the callback is bound to the same transaction,
// so a callback error rolls back all of its writes.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos posting.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := posting.Repositories{
			Sales:       NewGormSaleRepository(tx),
			Receivables: NewGormReceivableRepository(tx),
			Movements:   NewGormLedgerMovementRepository(tx),
		}
		return fn(ctx, repos)
	})
}
