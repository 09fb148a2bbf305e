package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order totals are computed once at creation and never recomputed:
// total = subtotal + tax + shipping.
type Order struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber     string         `gorm:"size:50;not null;unique" json:"order_number"`
	UserID          *uuid.UUID     `gorm:"type:uuid" json:"user_id"`
	CustomerEmail   string         `gorm:"size:255;not null" json:"customer_email"`
	CustomerName    string         `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone   *string        `gorm:"size:50" json:"customer_phone"`
	Status          string         `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	PaymentStatus   string         `gorm:"size:20;not null;default:'PENDING'" json:"payment_status"`
	PaymentID       *string        `gorm:"size:255" json:"payment_id"`
	Subtotal        float64        `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	Tax             float64        `gorm:"type:numeric(10,2);not null" json:"tax"`
	Shipping        float64        `gorm:"type:numeric(10,2);not null" json:"shipping"`
	Total           float64        `gorm:"type:numeric(10,2);not null" json:"total"`
	ShippingAddress datatypes.JSON `json:"shipping_address"`
	BillingAddress  datatypes.JSON `json:"billing_address"`
	InvoiceURL      *string        `gorm:"size:255" json:"invoice_url"`

	Items []OrderItem `gorm:"foreignkey:OrderID" json:"items,omitempty"`
	User  User        `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
