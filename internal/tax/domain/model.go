// Package domain defines the configured VAT options applied to document
// lines.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TaxOption is one configurable VAT rate. Rates referenced by existing
// documents are disabled, never deleted, so historical tax breakdowns
// keep resolving their labels.
type TaxOption struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Rate      float64      `gorm:"not null;uniqueIndex" json:"rate"`
	Label     string       `gorm:"type:text;not null" json:"label"`
	IsDefault bool         `gorm:"column:is_default;not null;default:false" json:"is_default"`
	IsActive  bool         `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TaxOption) TableName() string { return "tax_options" }

func (t *TaxOption) Validate() error {
	if t.Rate < 0 {
		return ErrInvalidRate
	}
	if t.Label == "" {
		return ErrInvalidLabel
	}
	return nil
}
