package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	techdomain "github.com/nexoav/nexoav/internal/technician/domain"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() techdomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, technician *techdomain.Technician) error {
	return db.WithContext(ctx).Create(technician).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*techdomain.Technician, error) {
	var technician techdomain.Technician
	err := db.WithContext(ctx).First(&technician, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &technician, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, filter techdomain.ListTechnicianFilter, page pagination.Pagination) ([]*techdomain.Technician, error) {
	stmt := db.WithContext(ctx).Model(&techdomain.Technician{})

	if !filter.IncludeInactive {
		stmt = stmt.Where("active = ?", true)
	}
	if filter.Specialty != "" {
		stmt = stmt.Where("specialty = ?", filter.Specialty)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		if cursor.ID != "" {
			stmt = stmt.Where("id > ?", cursor.ID)
		}
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}

	var technicians []*techdomain.Technician
	if err := stmt.Order("id ASC").Limit(limit + 1).Find(&technicians).Error; err != nil {
		return nil, err
	}
	return technicians, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, technician *techdomain.Technician) error {
	return db.WithContext(ctx).
		Model(&techdomain.Technician{}).
		Where("id = ?", technician.ID).
		Updates(map[string]any{
			"name":        technician.Name,
			"email":       technician.Email,
			"phone":       technician.Phone,
			"specialty":   technician.Specialty,
			"hourly_rate": technician.HourlyRate,
			"active":      technician.Active,
			"updated_at":  technician.UpdatedAt,
		}).Error
}
