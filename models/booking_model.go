package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking occupies exactly one (date, time slot) pair. A partial unique index
// created in database.Migrate keeps two non-CANCELLED bookings out of the same
// slot even when requests race.
type Booking struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID     uuid.UUID  `gorm:"type:uuid;not null" json:"service_id"`
	UserID        *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	CustomerName  string     `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string     `gorm:"size:255;not null" json:"customer_email"`
	CustomerPhone string     `gorm:"size:50;not null" json:"customer_phone"`
	Date          time.Time  `gorm:"not null;index" json:"date"`
	TimeSlot      string     `gorm:"size:20;not null" json:"time_slot"`
	Status        string     `gorm:"size:20;not null;default:'CONFIRMED'" json:"status"`
	Notes         *string    `gorm:"type:text" json:"notes"`

	Service Service `gorm:"foreignkey:ServiceID" json:"service,omitempty"`
	User    User    `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
