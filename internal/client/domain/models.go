// Package domain defines the company's clients.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Client struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Name     string       `gorm:"not null" json:"name"`
	TaxID    string       `gorm:"column:tax_id" json:"tax_id,omitempty"`
	Email    string       `gorm:"" json:"email,omitempty"`
	Phone    string       `gorm:"" json:"phone,omitempty"`
	Address  string       `gorm:"type:text" json:"address,omitempty"`
	Notes    string       `gorm:"type:text" json:"notes,omitempty"`
	Archived bool         `gorm:"not null;default:false" json:"archived"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
