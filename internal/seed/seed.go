// Package seed bootstraps the reference data a fresh install needs:
// the Spanish VAT options and an empty company profile.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/nexoav/nexoav/internal/company/domain"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
	"gorm.io/gorm"
)

// EnsureTaxOptions inserts the standard VAT rates when missing. Rates
// already present are left untouched so operator edits survive
// restarts. IDs come from the shared generator so seed rows cannot
// collide with service writes.
func EnsureTaxOptions(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	defaults := []taxdomain.TaxOption{
		{Rate: 21, Label: "IVA 21%", IsDefault: true},
		{Rate: 10, Label: "IVA 10%"},
		{Rate: 4, Label: "IVA 4%"},
		{Rate: 0, Label: "Exento"},
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, option := range defaults {
			var existing taxdomain.TaxOption
			err := tx.WithContext(ctx).Where("rate = ?", option.Rate).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			now := time.Now().UTC()
			option.ID = node.Generate()
			option.IsActive = true
			option.CreatedAt = now
			option.UpdatedAt = now
			if err := tx.WithContext(ctx).Create(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureCompanyProfile creates the singleton profile row on first boot
// so the settings screen always has something to edit.
func EnsureCompanyProfile(db *gorm.DB, name string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	var existing companydomain.Profile
	err := db.WithContext(ctx).First(&existing, "id = ?", 1).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	profile := companydomain.Profile{
		ID:        1,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return db.WithContext(ctx).Create(&profile).Error
}
