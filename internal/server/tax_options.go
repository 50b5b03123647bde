package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
)

type createTaxOptionRequest struct {
	Rate      float64 `json:"rate"`
	Label     string  `json:"label"`
	IsDefault bool    `json:"is_default"`
}

func (s *Server) CreateTaxOption(c *gin.Context) {
	var req createTaxOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxSvc.Create(c.Request.Context(), taxdomain.CreateRequest{
		Rate:      req.Rate,
		Label:     req.Label,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTaxOptions(c *gin.Context) {
	var query struct {
		IsActive *bool `form:"is_active"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxSvc.List(c.Request.Context(), taxdomain.ListRequest{
		IsActive: query.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateTaxOptionRequest struct {
	Label     *string `json:"label,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (s *Server) UpdateTaxOption(c *gin.Context) {
	var req updateTaxOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.taxSvc.Update(c.Request.Context(), taxdomain.UpdateRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		Label:     req.Label,
		IsDefault: req.IsDefault,
		IsActive:  req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DisableTaxOption(c *gin.Context) {
	resp, err := s.taxSvc.Disable(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isTaxValidationError(err error) bool {
	switch err {
	case taxdomain.ErrInvalidID,
		taxdomain.ErrInvalidRate,
		taxdomain.ErrInvalidLabel:
		return true
	default:
		return false
	}
}
