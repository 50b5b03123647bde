package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	docdomain "github.com/nexoav/nexoav/internal/document/domain"
	"github.com/nexoav/nexoav/internal/providers/pdf"
	"github.com/nexoav/nexoav/pkg/db/pagination"
)

type createDocumentRequest struct {
	Kind     string               `json:"kind"`
	ClientID *string              `json:"client_id,omitempty"`
	Supplier string               `json:"supplier"`
	Currency string               `json:"currency"`
	Notes    string               `json:"notes"`
	Lines    []docdomain.LineEdit `json:"lines"`
}

func (s *Server) CreateDocument(c *gin.Context) {
	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.Create(c.Request.Context(), docdomain.CreateDocumentRequest{
		Kind:     docdomain.Kind(strings.TrimSpace(strings.ToUpper(req.Kind))),
		ClientID: req.ClientID,
		Supplier: req.Supplier,
		Currency: req.Currency,
		Notes:    req.Notes,
		Lines:    req.Lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListDocuments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Kind     string `form:"kind"`
		Status   string `form:"status"`
		ClientID string `form:"client_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.List(c.Request.Context(), docdomain.ListDocumentRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Kind:      docdomain.Kind(strings.TrimSpace(strings.ToUpper(query.Kind))),
		Status:    docdomain.Status(strings.TrimSpace(strings.ToUpper(query.Status))),
		ClientID:  query.ClientID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDocumentByID(c *gin.Context) {
	resp, err := s.documentSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateDocumentRequest struct {
	ClientID  *string    `json:"client_id,omitempty"`
	Supplier  *string    `json:"supplier,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	IssueDate *time.Time `json:"issue_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

func (s *Server) UpdateDocument(c *gin.Context) {
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.Update(c.Request.Context(), docdomain.UpdateDocumentRequest{
		ID:        strings.TrimSpace(c.Param("id")),
		ClientID:  req.ClientID,
		Supplier:  req.Supplier,
		Notes:     req.Notes,
		IssueDate: req.IssueDate,
		DueDate:   req.DueDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateDocumentLinesRequest struct {
	Lines []docdomain.LineEdit `json:"lines"`
}

func (s *Server) UpdateDocumentLines(c *gin.Context) {
	var req updateDocumentLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.UpdateLines(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Lines)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type transitionDocumentRequest struct {
	Status string `json:"status"`
}

func (s *Server) TransitionDocument(c *gin.Context) {
	var req transitionDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	to := docdomain.Status(strings.TrimSpace(strings.ToUpper(req.Status)))
	if to == "" {
		AbortWithError(c, newValidationError("status", "invalid_status", "invalid status"))
		return
	}

	resp, err := s.documentSvc.Transition(c.Request.Context(), strings.TrimSpace(c.Param("id")), to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type registerPaymentRequest struct {
	Amount float64    `json:"amount"`
	Method string     `json:"method"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
	Notes  string     `json:"notes"`
}

func (s *Server) RegisterDocumentPayment(c *gin.Context) {
	var req registerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.documentSvc.RegisterPayment(c.Request.Context(), docdomain.RegisterPaymentRequest{
		DocumentID: strings.TrimSpace(c.Param("id")),
		Amount:     req.Amount,
		Method:     req.Method,
		PaidAt:     req.PaidAt,
		Notes:      req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ConvertQuote(c *gin.Context) {
	resp, err := s.documentSvc.ConvertQuote(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenderDocumentPDF(c *gin.Context) {
	ctx := c.Request.Context()

	doc, err := s.documentSvc.GetByID(ctx, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	profile, err := s.companySvc.Get(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := pdf.DocumentData{}
	if doc.ClientID != nil {
		client, err := s.clientSvc.GetByID(ctx, doc.ClientID.String())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		data = pdf.BuildDocumentData(doc, profile, &client)
	} else {
		data = pdf.BuildDocumentData(doc, profile, nil)
	}

	reader, err := s.pdfProvider.RenderDocument(ctx, data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	filename := doc.ID.String() + ".pdf"
	if doc.Number != nil {
		filename = strings.ReplaceAll(*doc.Number, "/", "-") + ".pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}

func isDocumentValidationError(err error) bool {
	switch err {
	case docdomain.ErrInvalidID,
		docdomain.ErrInvalidKind,
		docdomain.ErrInvalidConcept,
		docdomain.ErrInvalidAmount,
		docdomain.ErrNotInvoice,
		docdomain.ErrNotQuote:
		return true
	default:
		return false
	}
}
