package domain

import (
	"context"
	"errors"

	"github.com/nexoav/nexoav/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (Product, error)
	List(ctx context.Context, req ListProductRequest) (ListProductResponse, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, req UpdateProductRequest) (Product, error)
	Deactivate(ctx context.Context, id string) (Product, error)
}

type CreateProductRequest struct {
	Code        string
	Name        string
	Description string
	Category    Category
	UnitPrice   float64
	TaxRate     *float64
}

type UpdateProductRequest struct {
	ID          string
	Name        *string
	Description *string
	Category    *Category
	UnitPrice   *float64
	TaxRate     *float64
	ClearTax    bool
}

type ListProductRequest struct {
	PageToken       string
	PageSize        int
	Name            string
	Category        Category
	IncludeInactive bool
}

type ListProductFilter struct {
	Name            string
	Category        Category
	IncludeInactive bool
}

type ListProductResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidCategory = errors.New("invalid_category")
	ErrInvalidPrice    = errors.New("invalid_price")
	ErrInvalidID       = errors.New("invalid_id")
	ErrDuplicateCode   = errors.New("duplicate_code")
	ErrNotFound        = errors.New("not_found")
)
