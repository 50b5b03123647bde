package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	techdomain "github.com/nexoav/nexoav/internal/technician/domain"
	"github.com/nexoav/nexoav/pkg/db/pagination"
)

type createTechnicianRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Specialty  string  `json:"specialty"`
	HourlyRate float64 `json:"hourly_rate"`
}

func (s *Server) CreateTechnician(c *gin.Context) {
	var req createTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.technicianSvc.Create(c.Request.Context(), techdomain.CreateTechnicianRequest{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Specialty:  req.Specialty,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTechnicians(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Specialty       string `form:"specialty"`
		IncludeInactive bool   `form:"include_inactive"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.technicianSvc.List(c.Request.Context(), techdomain.ListTechnicianRequest{
		PageToken:       query.PageToken,
		PageSize:        query.PageSize,
		Specialty:       query.Specialty,
		IncludeInactive: query.IncludeInactive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTechnicianByID(c *gin.Context) {
	resp, err := s.technicianSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateTechnicianRequest struct {
	Name       *string  `json:"name,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Specialty  *string  `json:"specialty,omitempty"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
}

func (s *Server) UpdateTechnician(c *gin.Context) {
	var req updateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.technicianSvc.Update(c.Request.Context(), techdomain.UpdateTechnicianRequest{
		ID:         strings.TrimSpace(c.Param("id")),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Specialty:  req.Specialty,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateTechnician(c *gin.Context) {
	resp, err := s.technicianSvc.Deactivate(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isTechnicianValidationError(err error) bool {
	switch err {
	case techdomain.ErrInvalidName,
		techdomain.ErrInvalidRate,
		techdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
