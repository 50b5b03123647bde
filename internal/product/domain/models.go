// Package domain defines the products and services the company offers.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Category string

const (
	CategoryEquipment Category = "equipment"
	CategoryLabor     Category = "labor"
	CategoryService   Category = "service"
	CategoryRental    Category = "rental"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryEquipment, CategoryLabor, CategoryService, CategoryRental:
		return true
	}
	return false
}

type Product struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Code        string       `gorm:"uniqueIndex;not null" json:"code"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `gorm:"type:text" json:"description,omitempty"`
	Category    Category     `gorm:"not null" json:"category"`
	UnitPrice   float64      `gorm:"not null;default:0" json:"unit_price"`
	TaxRate     *float64     `gorm:"column:tax_rate" json:"tax_rate,omitempty"`
	Active      bool         `gorm:"not null;default:true" json:"active"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }
