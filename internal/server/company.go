package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	companydomain "github.com/nexoav/nexoav/internal/company/domain"
)

func (s *Server) GetCompanyProfile(c *gin.Context) {
	resp, err := s.companySvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCompanyProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	TaxID       *string `json:"tax_id,omitempty"`
	Address     *string `json:"address,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Website     *string `json:"website,omitempty"`
	BankAccount *string `json:"bank_account,omitempty"`
}

func (s *Server) UpdateCompanyProfile(c *gin.Context) {
	var req updateCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), companydomain.UpdateProfileRequest{
		Name:        req.Name,
		TaxID:       req.TaxID,
		Address:     req.Address,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		BankAccount: req.BankAccount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
