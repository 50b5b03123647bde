// Package domain defines commercial documents: quotes, invoices and
// purchase orders share one table and one lifecycle engine.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Kind string

const (
	KindQuote         Kind = "QUOTE"
	KindInvoice       Kind = "INVOICE"
	KindPurchaseOrder Kind = "PURCHASE_ORDER"
)

func (k Kind) Valid() bool {
	switch k {
	case KindQuote, KindInvoice, KindPurchaseOrder:
		return true
	}
	return false
}

type Document struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	Kind   Kind         `gorm:"not null;index" json:"kind"`
	Status Status       `gorm:"not null" json:"status"`

	// Number stays nil while the document is a draft. It is assigned
	// exactly once, when the document leaves DRAFT.
	Number *string `gorm:"uniqueIndex" json:"number,omitempty"`

	ClientID *snowflake.ID `gorm:"index" json:"client_id,omitempty"`
	// Supplier is free text; purchase orders go to vendors we do not
	// track as clients.
	Supplier string `gorm:"" json:"supplier,omitempty"`

	IssueDate *time.Time `gorm:"" json:"issue_date,omitempty"`
	DueDate   *time.Time `gorm:"" json:"due_date,omitempty"`

	Currency string `gorm:"not null;default:EUR" json:"currency"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`

	Subtotal   float64 `gorm:"not null;default:0" json:"subtotal"`
	TaxAmount  float64 `gorm:"not null;default:0" json:"tax_amount"`
	Total      float64 `gorm:"not null;default:0" json:"total"`
	AmountPaid float64 `gorm:"not null;default:0" json:"amount_paid"`

	// QuoteID links an invoice back to the quote it was converted from.
	QuoteID *snowflake.ID `gorm:"index" json:"quote_id,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Lines    []DocumentLine    `gorm:"-" json:"lines,omitempty"`
	TaxLines []DocumentTaxLine `gorm:"-" json:"tax_lines,omitempty"`
	Payments []Payment         `gorm:"-" json:"payments,omitempty"`
}

// TableName sets the database table name.
func (Document) TableName() string { return "documents" }

type DocumentLine struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	DocumentID snowflake.ID `gorm:"not null;index" json:"document_id"`
	Position   int          `gorm:"not null;default:0" json:"position"`

	Concept     string `gorm:"not null" json:"concept"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Quantity        float64 `gorm:"not null;default:0" json:"quantity"`
	UnitPrice       float64 `gorm:"not null;default:0" json:"unit_price"`
	DiscountPercent float64 `gorm:"not null;default:0" json:"discount_percent"`
	TaxRate         float64 `gorm:"not null;default:0" json:"tax_rate"`

	Subtotal  float64 `gorm:"not null;default:0" json:"subtotal"`
	TaxAmount float64 `gorm:"not null;default:0" json:"tax_amount"`
	Total     float64 `gorm:"not null;default:0" json:"total"`

	ProductID    *snowflake.ID `gorm:"index" json:"product_id,omitempty"`
	TechnicianID *snowflake.ID `gorm:"index" json:"technician_id,omitempty"`

	// Deleted lines stay in the table for audit but are excluded from
	// totals and from rendered output.
	Deleted bool `gorm:"not null;default:false" json:"deleted"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (DocumentLine) TableName() string { return "document_lines" }

// DocumentTaxLine is a denormalized tax group, regenerated from the
// active lines on every save. Rows are ordered by rate descending.
type DocumentTaxLine struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	DocumentID snowflake.ID `gorm:"not null;index" json:"document_id"`
	Rate       float64      `gorm:"not null" json:"rate"`
	Label      string       `gorm:"not null" json:"label"`
	Amount     float64      `gorm:"not null" json:"amount"`
}

// TableName sets the database table name.
func (DocumentTaxLine) TableName() string { return "document_tax_lines" }

// DocumentSequence backs number assignment: one monotonic counter per
// kind and calendar year.
type DocumentSequence struct {
	Kind  Kind  `gorm:"primaryKey" json:"kind"`
	Year  int   `gorm:"primaryKey" json:"year"`
	Value int64 `gorm:"not null;default:0" json:"value"`
}

// TableName sets the database table name.
func (DocumentSequence) TableName() string { return "document_sequences" }

type Payment struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	DocumentID snowflake.ID `gorm:"not null;index" json:"document_id"`
	Reference  string       `gorm:"uniqueIndex;not null" json:"reference"`
	Amount     float64      `gorm:"not null" json:"amount"`
	Method     string       `gorm:"" json:"method,omitempty"`
	PaidAt     time.Time    `gorm:"not null" json:"paid_at"`
	Notes      string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
