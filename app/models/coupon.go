package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type Coupon struct {
	ID                string              `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Code              string              `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Description       string              `gorm:"type:text" json:"description"`
	DiscountType      string              `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue     decimal.Decimal     `gorm:"type:decimal(16,2);not null" json:"discount_value"`
	MinPurchaseAmount decimal.Decimal     `gorm:"type:decimal(16,2);not null;default:0" json:"min_purchase_amount"`
	MaxDiscountAmount decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"max_discount_amount"`
	StartDate         time.Time           `gorm:"not null" json:"start_date"`
	EndDate           time.Time           `gorm:"not null" json:"end_date"`
	UsageLimit        *int                `json:"usage_limit"`
	TimesUsed         int                 `gorm:"not null;default:0" json:"times_used"`
	IsActive          bool                `gorm:"not null" json:"is_active"`
	Products          []Product           `gorm:"many2many:coupon_products;" json:"-"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`

	ProductIDs   []string `gorm:"-" json:"product_ids"`
	ProductNames []string `gorm:"-" json:"product_names"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (c *Coupon) AfterFind(tx *gorm.DB) (err error) {
	c.ProductIDs = make([]string, 0, len(c.Products))
	c.ProductNames = make([]string, 0, len(c.Products))
	for _, p := range c.Products {
		c.ProductIDs = append(c.ProductIDs, p.ID)
		c.ProductNames = append(c.ProductNames, p.Name)
	}
	return
}

// AppliesTo reports whether the coupon discounts productID. A coupon with no
// product associations applies to every product.
func (c *Coupon) AppliesTo(productID string) bool {
	if len(c.ProductIDs) == 0 {
		return true
	}
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

func (c *Coupon) InWindow(now time.Time) bool {
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

func (c *Coupon) UsageExhausted() bool {
	return c.UsageLimit != nil && c.TimesUsed >= *c.UsageLimit
}
