package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaerp/backend/internal/domain/accounting"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// LedgerMovementModel is the persistence model for a ledger movement.
// Rows in this table are never updated or deleted.
type LedgerMovementModel struct {
	BaseModel
	AccountCode  string          `gorm:"type:varchar(20);not null;index"`
	OriginTable  string          `gorm:"type:varchar(50);not null;index:idx_ledger_origin"`
	OriginID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_origin"`
	DebitAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreditAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description  string          `gorm:"type:text"`
	ActorID      uuid.UUID       `gorm:"type:uuid;not null"`
	OccurredAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (LedgerMovementModel) TableName() string {
	return "ledger_movements"
}

// ToDomain converts the persistence model to a domain LedgerMovement
func (m *LedgerMovementModel) ToDomain() *accounting.LedgerMovement {
	return &accounting.LedgerMovement{
		BaseEntity:  m.BaseModel.ToDomain(),
		AccountCode: m.AccountCode,
		Origin: accounting.Origin{
			Table: m.OriginTable,
			ID:    m.OriginID,
		},
		Debit:       valueobject.NewMoney(m.DebitAmount),
		Credit:      valueobject.NewMoney(m.CreditAmount),
		Description: m.Description,
		ActorID:     m.ActorID,
		OccurredAt:  m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain LedgerMovement
func (m *LedgerMovementModel) FromDomain(mv *accounting.LedgerMovement) {
	m.FromDomainBaseEntity(mv.BaseEntity)
	m.AccountCode = mv.AccountCode
	m.OriginTable = mv.Origin.Table
	m.OriginID = mv.Origin.ID
	m.DebitAmount = mv.Debit.Amount()
	m.CreditAmount = mv.Credit.Amount()
	m.Description = mv.Description
	m.ActorID = mv.ActorID
	m.OccurredAt = mv.OccurredAt
}
