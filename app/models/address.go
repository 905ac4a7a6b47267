package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID           string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID       string    `gorm:"size:36;not null;index" json:"user_id"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	PhoneNumber  string    `gorm:"size:20;not null" json:"phone_number"`
	AddressLine1 string    `gorm:"size:255;not null" json:"address_line1"`
	AddressLine2 string    `gorm:"size:255" json:"address_line2"`
	City         string    `gorm:"size:100;not null" json:"city"`
	State        string    `gorm:"size:100;not null" json:"state"`
	PostalCode   string    `gorm:"size:20;not null" json:"postal_code"`
	Country      string    `gorm:"size:100;not null" json:"country"`
	AddressType  string    `gorm:"size:20;not null" json:"address_type"`
	IsDefault    bool      `gorm:"not null" json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Country == "" {
		a.Country = "India"
	}
	if a.AddressType == "" {
		a.AddressType = "Home"
	}
	return
}
