package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"type:numeric(10,2);not null" json:"price"`
	SalePrice   *float64       `gorm:"type:numeric(10,2)" json:"sale_price"`
	SKU         string         `gorm:"size:100;not null;unique" json:"sku"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	Featured    bool           `gorm:"not null;default:false" json:"featured"`
	CategoryID  *uuid.UUID     `json:"category_id"`
	Images      datatypes.JSON `json:"images"`
	Metadata    datatypes.JSON `json:"metadata"`

	Category Category `gorm:"foreignkey:CategoryID" json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnitPrice returns the sale price when one is set, otherwise the regular price.
func (p *Product) UnitPrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
