package domain

import (
	"context"
	"time"

	"github.com/nexoav/nexoav/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateDocumentRequest) (Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	List(ctx context.Context, req ListDocumentRequest) (ListDocumentResponse, error)
	Update(ctx context.Context, req UpdateDocumentRequest) (Document, error)

	// UpdateLines applies a changeset of added, modified and deleted
	// lines in one transaction and recomputes all derived totals.
	UpdateLines(ctx context.Context, documentID string, edits []LineEdit) (Document, error)

	// Transition moves the document along its lifecycle. Leaving DRAFT
	// assigns the document number.
	Transition(ctx context.Context, documentID string, to Status) (Document, error)

	RegisterPayment(ctx context.Context, req RegisterPaymentRequest) (Document, error)

	// ConvertQuote creates a draft invoice from an accepted quote and
	// marks the quote INVOICED.
	ConvertQuote(ctx context.Context, quoteID string) (Document, error)
}

type CreateDocumentRequest struct {
	Kind     Kind
	ClientID *string
	Supplier string
	Currency string
	Notes    string
	Lines    []LineEdit
}

type UpdateDocumentRequest struct {
	ID        string
	ClientID  *string
	Supplier  *string
	Notes     *string
	IssueDate *time.Time
	DueDate   *time.Time
}

// LineEdit is one entry of a line changeset. A nil ID adds a line; a
// set ID modifies the matching line; Delete soft-deletes it.
type LineEdit struct {
	ID *string `json:"id,omitempty"`

	Concept     *string `json:"concept,omitempty"`
	Description *string `json:"description,omitempty"`

	Quantity        *float64 `json:"quantity,omitempty"`
	UnitPrice       *float64 `json:"unit_price,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
	TaxRate         *float64 `json:"tax_rate,omitempty"`

	ProductID    *string `json:"product_id,omitempty"`
	TechnicianID *string `json:"technician_id,omitempty"`

	Delete bool `json:"delete,omitempty"`
}

type ListDocumentRequest struct {
	PageToken string
	PageSize  int
	Kind      Kind
	Status    Status
	ClientID  string
}

type ListDocumentFilter struct {
	Kind     Kind
	Status   Status
	ClientID string
}

type ListDocumentResponse struct {
	pagination.PageInfo
	Documents []Document `json:"documents"`
}

type RegisterPaymentRequest struct {
	DocumentID string
	Amount     float64
	Method     string
	PaidAt     *time.Time
	Notes      string
}
