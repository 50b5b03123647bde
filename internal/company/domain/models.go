// Package domain holds the company profile shown on issued documents.
package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Profile struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	TaxID   string `gorm:"column:tax_id" json:"tax_id,omitempty"`
	Address string `gorm:"type:text" json:"address,omitempty"`
	Email   string `gorm:"" json:"email,omitempty"`
	Phone   string `gorm:"" json:"phone,omitempty"`
	Website string `gorm:"" json:"website,omitempty"`

	// IBAN printed on invoice footers for bank transfers.
	BankAccount string `gorm:"column:bank_account" json:"bank_account,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "company_profile" }

type UpdateProfileRequest struct {
	Name        *string
	TaxID       *string
	Address     *string
	Email       *string
	Phone       *string
	Website     *string
	BankAccount *string
}

type Service interface {
	Get(ctx context.Context) (Profile, error)
	Update(ctx context.Context, req UpdateProfileRequest) (Profile, error)
}

type Repository interface {
	Find(ctx context.Context, db *gorm.DB) (*Profile, error)
	Save(ctx context.Context, db *gorm.DB, profile *Profile) error
}
