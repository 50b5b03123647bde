package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/nexoav/nexoav/internal/client/domain"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() clientdomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, client *clientdomain.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*clientdomain.Client, error) {
	var client clientdomain.Client
	err := db.WithContext(ctx).First(&client, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, filter clientdomain.ListClientFilter, page pagination.Pagination) ([]*clientdomain.Client, error) {
	stmt := db.WithContext(ctx).Model(&clientdomain.Client{})

	if !filter.IncludeArchived {
		stmt = stmt.Where("archived = ?", false)
	}
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.TaxID != "" {
		stmt = stmt.Where("tax_id = ?", filter.TaxID)
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

	var clients []*clientdomain.Client
	if err := stmt.Order("id ASC").Limit(limit + 1).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, client *clientdomain.Client) error {
	return db.WithContext(ctx).
		Model(&clientdomain.Client{}).
		Where("id = ?", client.ID).
		Updates(map[string]any{
			"name":       client.Name,
			"tax_id":     client.TaxID,
			"email":      client.Email,
			"phone":      client.Phone,
			"address":    client.Address,
			"notes":      client.Notes,
			"archived":   client.Archived,
			"updated_at": client.UpdatedAt,
		}).Error
}
