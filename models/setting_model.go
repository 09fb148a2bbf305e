package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Setting is a generic key/value row. Booking availability reads the keys
// booking_time_slots, blackout_dates, special_hours, business_hours_start and
// business_hours_end on every request.
type Setting struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key   string    `gorm:"size:100;not null;unique" json:"key"`
	Value string    `gorm:"type:text;not null" json:"value"`
	Type  string    `gorm:"size:20;not null;default:'string'" json:"type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
