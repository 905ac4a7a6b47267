package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

type Order struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID         string          `gorm:"size:36;not null;index" json:"user_id"`
	User           *User           `gorm:"foreignKey:UserID" json:"-"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(16,2);not null;default:0" json:"discount_amount"`
	CouponCode     string          `gorm:"size:50" json:"coupon_code,omitempty"`
	Status         string          `gorm:"size:30;not null;index" json:"status"`
	PaymentMethod  string          `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus  string          `gorm:"size:20;not null" json:"payment_status"`
	PaymentID      string          `gorm:"size:100;index" json:"payment_id,omitempty"`
	GatewayOrderID string          `gorm:"size:100;index" json:"razorpay_order_id,omitempty"`
	IsTemporary    bool            `gorm:"not null;index" json:"is_temporary"`

	ShippingFullName     string `gorm:"size:255" json:"full_name"`
	ShippingPhoneNumber  string `gorm:"size:20" json:"phone_number"`
	ShippingAddressLine1 string `gorm:"size:255" json:"address_line1"`
	ShippingAddressLine2 string `gorm:"size:255" json:"address_line2"`
	ShippingCity         string `gorm:"size:100" json:"city"`
	ShippingState        string `gorm:"size:100" json:"state"`
	ShippingPostalCode   string `gorm:"size:20" json:"postal_code"`
	ShippingCountry      string `gorm:"size:100" json:"country"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	PaymentMethodDisplay string `gorm:"-" json:"payment_method_display"`
	UserName             string `gorm:"-" json:"user_name,omitempty"`
	UserEmail            string `gorm:"-" json:"email,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (o *Order) AfterFind(tx *gorm.DB) (err error) {
	o.PaymentMethodDisplay = PaymentMethodDisplay(o.PaymentMethod)
	if o.User != nil {
		o.UserName = o.User.Name
		o.UserEmail = o.User.Email
	}
	return
}

func PaymentMethodDisplay(method string) string {
	if method == PaymentMethodCOD {
		return "Cash on Delivery"
	}
	return "Online Payment"
}

// ShippingAddress is the delivery snapshot copied onto an order.
type ShippingAddress struct {
	FullName     string `json:"full_name" validate:"required"`
	PhoneNumber  string `json:"phone_number" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Country      string `json:"country"`
}

func (o *Order) SetShipping(a ShippingAddress) {
	o.ShippingFullName = a.FullName
	o.ShippingPhoneNumber = a.PhoneNumber
	o.ShippingAddressLine1 = a.AddressLine1
	o.ShippingAddressLine2 = a.AddressLine2
	o.ShippingCity = a.City
	o.ShippingState = a.State
	o.ShippingPostalCode = a.PostalCode
	o.ShippingCountry = a.Country
}

func (o *Order) Shipping() ShippingAddress {
	return ShippingAddress{
		FullName:     o.ShippingFullName,
		PhoneNumber:  o.ShippingPhoneNumber,
		AddressLine1: o.ShippingAddressLine1,
		AddressLine2: o.ShippingAddressLine2,
		City:         o.ShippingCity,
		State:        o.ShippingState,
		PostalCode:   o.ShippingPostalCode,
		Country:      o.ShippingCountry,
	}
}
