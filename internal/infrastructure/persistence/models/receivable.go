package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaerp/backend/internal/domain/receivable"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// ReceivableModel is the persistence model for the Receivable aggregate root
type ReceivableModel struct {
	BaseModel
	SaleID            uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerRef       string            `gorm:"type:varchar(100);not null;index"`
	TotalAmount       decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	PaidAmount        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	OutstandingAmount decimal.Decimal   `gorm:"type:decimal(18,4);not null;index"`
	Status            receivable.Status `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	IssuedAt          time.Time         `gorm:"not null"`
	DueAt             time.Time         `gorm:"not null;index"`
	Payments          []PaymentModel    `gorm:"foreignKey:ReceivableID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable
func (m *ReceivableModel) ToDomain() *receivable.Receivable {
	rcv := &receivable.Receivable{
		BaseEntity:  m.BaseModel.ToDomain(),
		SaleID:      m.SaleID,
		CustomerRef: m.CustomerRef,
		Total:       valueobject.NewMoney(m.TotalAmount),
		Paid:        valueobject.NewMoney(m.PaidAmount),
		Outstanding: valueobject.NewMoney(m.OutstandingAmount),
		Status:      m.Status,
		IssuedAt:    m.IssuedAt,
		DueAt:       m.DueAt,
	}
	for i := range m.Payments {
		rcv.Payments = append(rcv.Payments, m.Payments[i].ToDomain())
	}
	return rcv
}

// FromDomain populates the persistence model from a domain Receivable
func (m *ReceivableModel) FromDomain(rcv *receivable.Receivable) {
	m.FromDomainBaseEntity(rcv.BaseEntity)
	m.SaleID = rcv.SaleID
	m.CustomerRef = rcv.CustomerRef
	m.TotalAmount = rcv.Total.Amount()
	m.PaidAmount = rcv.Paid.Amount()
	m.OutstandingAmount = rcv.Outstanding.Amount()
	m.Status = rcv.Status
	m.IssuedAt = rcv.IssuedAt
	m.DueAt = rcv.DueAt

	m.Payments = m.Payments[:0]
	for _, payment := range rcv.Payments {
		var paymentModel PaymentModel
		paymentModel.FromDomain(payment)
		m.Payments = append(m.Payments, paymentModel)
	}
}

// PaymentModel is the persistence model for a payment applied to a receivable
type PaymentModel struct {
	BaseModel
	ReceivableID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method       string          `gorm:"type:varchar(50)"`
	Reference    string          `gorm:"type:varchar(100)"`
	ActorID      uuid.UUID       `gorm:"type:uuid;not null"`
	ReceivedAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *receivable.Payment {
	return &receivable.Payment{
		BaseEntity:   m.BaseModel.ToDomain(),
		ReceivableID: m.ReceivableID,
		Amount:       valueobject.NewMoney(m.Amount),
		Method:       m.Method,
		Reference:    m.Reference,
		ActorID:      m.ActorID,
		ReceivedAt:   m.ReceivedAt,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(payment *receivable.Payment) {
	m.FromDomainBaseEntity(payment.BaseEntity)
	m.ReceivableID = payment.ReceivableID
	m.Amount = payment.Amount.Amount()
	m.Method = payment.Method
	m.Reference = payment.Reference
	m.ActorID = payment.ActorID
	m.ReceivedAt = payment.ReceivedAt
}
