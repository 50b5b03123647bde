package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() taxdomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, option *taxdomain.TaxOption) error {
	return db.WithContext(ctx).Create(option).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*taxdomain.TaxOption, error) {
	var option taxdomain.TaxOption
	err := db.WithContext(ctx).First(&option, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

func (r *repository) FindDefault(ctx context.Context, db *gorm.DB) (*taxdomain.TaxOption, error) {
	var option taxdomain.TaxOption
	err := db.WithContext(ctx).
		Where("is_default = ? AND is_active = ?", true, true).
		Order("id ASC").
		First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, filter taxdomain.ListRequest) ([]taxdomain.TaxOption, error) {
	stmt := db.WithContext(ctx).Model(&taxdomain.TaxOption{})
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}

	var options []taxdomain.TaxOption
	if err := stmt.Order("rate DESC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, option *taxdomain.TaxOption) error {
	return db.WithContext(ctx).
		Model(&taxdomain.TaxOption{}).
		Where("id = ?", option.ID).
		Updates(map[string]any{
			"label":      option.Label,
			"is_default": option.IsDefault,
			"is_active":  option.IsActive,
			"updated_at": option.UpdatedAt,
		}).Error
}

func (r *repository) ClearDefault(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Model(&taxdomain.TaxOption{}).
		Where("is_default = ?", true).
		UpdateColumn("is_default", false).Error
}
