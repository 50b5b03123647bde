package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/nexoav/nexoav/internal/product/domain"
	"github.com/nexoav/nexoav/pkg/db/pagination"
)

type createProductRequest struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	UnitPrice   float64  `json:"unit_price"`
	TaxRate     *float64 `json:"tax_rate,omitempty"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateProductRequest{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Category:    productdomain.Category(strings.TrimSpace(req.Category)),
		UnitPrice:   req.UnitPrice,
		TaxRate:     req.TaxRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name            string `form:"name"`
		Category        string `form:"category"`
		IncludeInactive bool   `form:"include_inactive"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListProductRequest{
		PageToken:       query.PageToken,
		PageSize:        query.PageSize,
		Name:            query.Name,
		Category:        productdomain.Category(strings.TrimSpace(query.Category)),
		IncludeInactive: query.IncludeInactive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetProductByID(c *gin.Context) {
	resp, err := s.productSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	TaxRate     *float64 `json:"tax_rate,omitempty"`
	ClearTax    bool     `json:"clear_tax,omitempty"`
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := productdomain.UpdateProductRequest{
		ID:          strings.TrimSpace(c.Param("id")),
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		TaxRate:     req.TaxRate,
		ClearTax:    req.ClearTax,
	}
	if req.Category != nil {
		category := productdomain.Category(strings.TrimSpace(*req.Category))
		update.Category = &category
	}

	resp, err := s.productSvc.Update(c.Request.Context(), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateProduct(c *gin.Context) {
	resp, err := s.productSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isProductValidationError(err error) bool {
	switch err {
	case productdomain.ErrInvalidName,
		productdomain.ErrInvalidCategory,
		productdomain.ErrInvalidPrice,
		productdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
