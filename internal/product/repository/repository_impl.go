package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	productdomain "github.com/nexoav/nexoav/internal/product/domain"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() productdomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, product *productdomain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*productdomain.Product, error) {
	var product productdomain.Product
	err := db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByCode(ctx context.Context, db *gorm.DB, code string) (*productdomain.Product, error) {
	var product productdomain.Product
	err := db.WithContext(ctx).First(&product, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, filter productdomain.ListProductFilter, page pagination.Pagination) ([]*productdomain.Product, error) {
	stmt := db.WithContext(ctx).Model(&productdomain.Product{})

	if !filter.IncludeInactive {
		stmt = stmt.Where("active = ?", true)
	}
	if filter.Name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
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

	var products []*productdomain.Product
	if err := stmt.Order("id ASC").Limit(limit + 1).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, product *productdomain.Product) error {
	return db.WithContext(ctx).
		Model(&productdomain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"category":    product.Category,
			"unit_price":  product.UnitPrice,
			"tax_rate":    product.TaxRate,
			"active":      product.Active,
			"updated_at":  product.UpdatedAt,
		}).Error
}
