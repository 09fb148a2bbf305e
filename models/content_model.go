package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content is an admin-managed page or post (blog posts, landing pages, FAQ
// entries), identified by a unique slug. Metadata carries SEO fields and
// anything else the admin UI wants to attach.
type Content struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Type      string         `gorm:"size:50;not null" json:"type"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Slug      string         `gorm:"size:255;not null;unique" json:"slug"`
	Body      string         `gorm:"type:text" json:"content"`
	Published bool           `gorm:"not null;default:false" json:"published"`
	Metadata  datatypes.JSON `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
