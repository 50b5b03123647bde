package repository

import (
	"context"
	"errors"

	companydomain "github.com/nexoav/nexoav/internal/company/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() companydomain.Repository {
	return &repository{}
}

// Find returns the single profile row, or nil when none has been saved yet.
func (r *repository) Find(ctx context.Context, db *gorm.DB) (*companydomain.Profile, error) {
	var profile companydomain.Profile
	err := db.WithContext(ctx).First(&profile, "id = ?", 1).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repository) Save(ctx context.Context, db *gorm.DB, profile *companydomain.Profile) error {
	profile.ID = 1
	return db.WithContext(ctx).Save(profile).Error
}
