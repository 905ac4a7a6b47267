package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Email             string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password          string    `gorm:"size:255;not null" json:"-"`
	Phone             string    `gorm:"size:20" json:"phone"`
	ProfilePhoto      string    `gorm:"size:255" json:"profile_photo"`
	Role              string    `gorm:"size:20;default:'customer';not null" json:"role"`
	IsVerified        bool      `gorm:"not null" json:"is_verified"`
	VerificationToken *string   `gorm:"size:255" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
