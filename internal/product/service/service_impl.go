package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	productdomain "github.com/nexoav/nexoav/internal/product/domain"
	"github.com/nexoav/nexoav/pkg/db"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  productdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  productdomain.Repository
}

func New(p Params) productdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req productdomain.CreateProductRequest) (productdomain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return productdomain.Product{}, productdomain.ErrInvalidName
	}

	category := req.Category
	if category == "" {
		category = productdomain.CategoryService
	}
	if !category.Valid() {
		return productdomain.Product{}, productdomain.ErrInvalidCategory
	}

	if req.UnitPrice < 0 {
		return productdomain.Product{}, productdomain.ErrInvalidPrice
	}
	if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > 100) {
		return productdomain.Product{}, productdomain.ErrInvalidPrice
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = slug.Make(name)
	}

	now := time.Now().UTC()
	product := productdomain.Product{
		ID:          s.genID.Generate(),
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		UnitPrice:   req.UnitPrice,
		TaxRate:     req.TaxRate,
		Active:      true,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return productdomain.Product{}, productdomain.ErrDuplicateCode
		}
		return productdomain.Product{}, err
	}

	return product, nil
}

func (s *Service) List(ctx context.Context, req productdomain.ListProductRequest) (productdomain.ListProductResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, productdomain.ListProductFilter{
		Name:            strings.TrimSpace(req.Name),
		Category:        req.Category,
		IncludeInactive: req.IncludeInactive,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return productdomain.ListProductResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(product *productdomain.Product) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        product.ID.String(),
			CreatedAt: product.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	products := make([]productdomain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}

	resp := productdomain.ListProductResponse{Products: products}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (productdomain.Product, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return productdomain.Product{}, err
	}

	product, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return productdomain.Product{}, err
	}
	if product == nil {
		return productdomain.Product{}, productdomain.ErrNotFound
	}

	return *product, nil
}

func (s *Service) Update(ctx context.Context, req productdomain.UpdateProductRequest) (productdomain.Product, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return productdomain.Product{}, err
	}

	product, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return productdomain.Product{}, err
	}
	if product == nil {
		return productdomain.Product{}, productdomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return productdomain.Product{}, productdomain.ErrInvalidName
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return productdomain.Product{}, productdomain.ErrInvalidCategory
		}
		product.Category = *req.Category
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return productdomain.Product{}, productdomain.ErrInvalidPrice
		}
		product.UnitPrice = *req.UnitPrice
	}
	if req.ClearTax {
		product.TaxRate = nil
	} else if req.TaxRate != nil {
		if *req.TaxRate < 0 || *req.TaxRate > 100 {
			return productdomain.Product{}, productdomain.ErrInvalidPrice
		}
		product.TaxRate = req.TaxRate
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, product); err != nil {
		return productdomain.Product{}, err
	}

	return *product, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (productdomain.Product, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return productdomain.Product{}, err
	}

	product, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return productdomain.Product{}, err
	}
	if product == nil {
		return productdomain.Product{}, productdomain.ErrNotFound
	}

	product.Active = false
	product.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, product); err != nil {
		return productdomain.Product{}, err
	}

	return *product, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, productdomain.ErrInvalidID
	}
	return id, nil
}
