package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartItem struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID         string          `gorm:"size:36;not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID      string          `gorm:"size:36;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product        *Product        `gorm:"foreignKey:ProductID" json:"-"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	Selected       bool            `gorm:"not null" json:"selected"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"discount_amount"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Name     string          `gorm:"-" json:"name"`
	Price    decimal.Decimal `gorm:"-" json:"price"`
	ImageURL string          `gorm:"-" json:"image_url"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

func (c *CartItem) AfterFind(tx *gorm.DB) (err error) {
	if c.Product != nil {
		c.Name = c.Product.Name
		c.Price = c.Product.Price
		c.ImageURL = c.Product.ImageURL
	}
	return
}

func (c *CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

type WishlistItem struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID string    `gorm:"size:36;not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}

// RecentlyViewed records the last time a user opened a product page.
type RecentlyViewed struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_viewed_user_product" json:"user_id"`
	ProductID string    `gorm:"size:36;not null;uniqueIndex:idx_viewed_user_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ViewedAt  time.Time `gorm:"not null;index" json:"viewed_at"`
}

func (RecentlyViewed) TableName() string { return "recently_viewed" }

func (v *RecentlyViewed) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}
