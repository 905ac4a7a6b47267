package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name              string           `gorm:"size:255;not null" json:"name"`
	Description       string           `gorm:"type:text" json:"description"`
	Price             decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"price"`
	CategoryID        *string          `gorm:"size:36;index" json:"category_id"`
	Category          *Category        `gorm:"foreignKey:CategoryID" json:"-"`
	ImageURL          string           `gorm:"size:255" json:"image_url"`
	ImageURL2         string           `gorm:"column:image_url2;size:255" json:"image_url2"`
	ImageURL3         string           `gorm:"column:image_url3;size:255" json:"image_url3"`
	UsageInstructions string           `gorm:"type:text" json:"usage_instructions"`
	Size              string           `gorm:"size:50" json:"size"`
	Benefits          string           `gorm:"type:text" json:"benefits"`
	Ingredients       string           `gorm:"type:text" json:"ingredients"`
	ProductDetails    string           `gorm:"type:text" json:"product_details"`
	StockQuantity     int              `gorm:"not null;default:0" json:"stock_quantity"`
	OfferPercentage   int              `gorm:"not null;default:0" json:"offer_percentage"`
	ProductType       string           `gorm:"size:100;index" json:"product_type"`
	SkinType          string           `gorm:"size:100;index" json:"skin_type"`
	Concerns          []ProductConcern `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	CategoryName  string   `gorm:"-" json:"category"`
	ConcernList   []string `gorm:"-" json:"concerns"`
	AverageRating float64  `gorm:"-" json:"average_rating"`
	ReviewCount   int64    `gorm:"-" json:"review_count"`
}

// ProductConcern is one skin concern a product addresses, e.g. "acne".
type ProductConcern struct {
	ProductID string `gorm:"size:36;primaryKey"`
	Concern   string `gorm:"size:100;primaryKey"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (p *Product) AfterFind(tx *gorm.DB) (err error) {
	if p.Category != nil {
		p.CategoryName = p.Category.Name
	}
	p.ConcernList = make([]string, 0, len(p.Concerns))
	for _, c := range p.Concerns {
		p.ConcernList = append(p.ConcernList, c.Concern)
	}
	return
}

// SetConcerns replaces the concern rows from a plain list, dropping blanks and duplicates.
func (p *Product) SetConcerns(concerns []string) {
	seen := make(map[string]bool, len(concerns))
	p.Concerns = p.Concerns[:0]
	p.ConcernList = p.ConcernList[:0]
	for _, c := range concerns {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		p.Concerns = append(p.Concerns, ProductConcern{ProductID: p.ID, Concern: c})
		p.ConcernList = append(p.ConcernList, c)
	}
}
