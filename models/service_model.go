package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Duration    int       `gorm:"not null" json:"duration"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Category    *string   `gorm:"size:100" json:"category"`
	Active      bool      `gorm:"not null;default:true" json:"active"`

	Bookings []Booking `gorm:"foreignkey:ServiceID" json:"bookings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
