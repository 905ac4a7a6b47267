package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string    `gorm:"size:36;not null;uniqueIndex:idx_review_product_user" json:"product_id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_review_product_user" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserName string `gorm:"-" json:"user_name"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (r *Review) AfterFind(tx *gorm.DB) (err error) {
	if r.User != nil {
		r.UserName = r.User.Name
	}
	return
}

// BrandReview is a review of the shop itself; each user may leave one.
type BrandReview struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserName string `gorm:"-" json:"user_name"`
}

func (r *BrandReview) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (r *BrandReview) AfterFind(tx *gorm.DB) (err error) {
	r.UserName = "Anonymous"
	if r.User != nil && r.User.Name != "" {
		r.UserName = r.User.Name
	}
	return
}
