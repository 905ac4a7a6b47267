package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem snapshots the product name and the price at checkout so later
// catalog edits never change a historical order.
type OrderItem struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID        string          `gorm:"size:36;not null;index" json:"order_id"`
	ProductID      string          `gorm:"size:36;not null;index" json:"product_id"`
	ProductName    string          `gorm:"size:255;not null" json:"product_name"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	PriceAtTime    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price_at_time"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"discount_amount"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.PriceAtTime.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
