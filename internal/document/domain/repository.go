package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, doc *Document) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Document, error)
	List(ctx context.Context, db *gorm.DB, filter ListDocumentFilter, page pagination.Pagination) ([]*Document, error)
	Update(ctx context.Context, db *gorm.DB, doc *Document) error

	FindLines(ctx context.Context, db *gorm.DB, documentID snowflake.ID) ([]DocumentLine, error)
	InsertLine(ctx context.Context, db *gorm.DB, line *DocumentLine) error
	UpdateLine(ctx context.Context, db *gorm.DB, line *DocumentLine) error

	// ReplaceTaxLines drops and rewrites the denormalized tax groups.
	ReplaceTaxLines(ctx context.Context, db *gorm.DB, documentID snowflake.ID, taxLines []DocumentTaxLine) error
	FindTaxLines(ctx context.Context, db *gorm.DB, documentID snowflake.ID) ([]DocumentTaxLine, error)

	InsertPayment(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindPayments(ctx context.Context, db *gorm.DB, documentID snowflake.ID) ([]Payment, error)

	// NextSequence increments and returns the counter for the kind and
	// year, creating it on first use.
	NextSequence(ctx context.Context, db *gorm.DB, kind Kind, year int) (int64, error)
}
