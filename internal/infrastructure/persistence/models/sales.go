package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaerp/backend/internal/domain/sales"
	"github.com/contaerp/backend/internal/domain/shared/valueobject"
)

// SaleModel is the persistence model for the Sale aggregate root
type SaleModel struct {
	BaseModel
	CustomerRef   string              `gorm:"type:varchar(100);not null;index"`
	ActorID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	GrossAmount   decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Discount      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	TaxAmount     decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	NetAmount     decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	TotalAmount   decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	PaymentMode   sales.PaymentMode   `gorm:"type:varchar(10);not null;index"`
	FiscalReceipt bool                `gorm:"not null;default:false"`
	Description   string              `gorm:"type:text"`
	Status        sales.SaleStatus    `gorm:"type:varchar(10);not null;default:'ACTIVE';index"`
	OccurredAt    time.Time           `gorm:"not null;index"`
	Items         []SaleLineItemModel `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *sales.Sale {
	sale := &sales.Sale{
		BaseEntity:    m.BaseModel.ToDomain(),
		CustomerRef:   m.CustomerRef,
		ActorID:       m.ActorID,
		Gross:         valueobject.NewMoney(m.GrossAmount),
		Discount:      valueobject.NewMoney(m.Discount),
		Tax:           valueobject.NewMoney(m.TaxAmount),
		Net:           valueobject.NewMoney(m.NetAmount),
		Total:         valueobject.NewMoney(m.TotalAmount),
		PaymentMode:   m.PaymentMode,
		FiscalReceipt: m.FiscalReceipt,
		Description:   m.Description,
		Status:        m.Status,
		OccurredAt:    m.OccurredAt,
	}
	for i := range m.Items {
		sale.Items = append(sale.Items, m.Items[i].ToDomain())
	}
	return sale
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(sale *sales.Sale) {
	m.FromDomainBaseEntity(sale.BaseEntity)
	m.CustomerRef = sale.CustomerRef
	m.ActorID = sale.ActorID
	m.GrossAmount = sale.Gross.Amount()
	m.Discount = sale.Discount.Amount()
	m.TaxAmount = sale.Tax.Amount()
	m.NetAmount = sale.Net.Amount()
	m.TotalAmount = sale.Total.Amount()
	m.PaymentMode = sale.PaymentMode
	m.FiscalReceipt = sale.FiscalReceipt
	m.Description = sale.Description
	m.Status = sale.Status
	m.OccurredAt = sale.OccurredAt

	m.Items = m.Items[:0]
	for _, item := range sale.Items {
		var itemModel SaleLineItemModel
		itemModel.FromDomain(item)
		m.Items = append(m.Items, itemModel)
	}
}

// SaleLineItemModel is the persistence model for a sale line item
type SaleLineItemModel struct {
	BaseModel
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductRef  string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SaleLineItemModel) TableName() string {
	return "sale_line_items"
}

// ToDomain converts the persistence model to a domain LineItem
func (m *SaleLineItemModel) ToDomain() *sales.LineItem {
	return &sales.LineItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		SaleID:      m.SaleID,
		ProductRef:  m.ProductRef,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   valueobject.NewMoney(m.UnitPrice),
		Total:       valueobject.NewMoney(m.TotalAmount),
	}
}

// FromDomain populates the persistence model from a domain LineItem
func (m *SaleLineItemModel) FromDomain(item *sales.LineItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.SaleID = item.SaleID
	m.ProductRef = item.ProductRef
	m.Description = item.Description
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice.Amount()
	m.TotalAmount = item.Total.Amount()
}
