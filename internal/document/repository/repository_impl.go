package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	docdomain "github.com/nexoav/nexoav/internal/document/domain"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"gorm.io/gorm"
)

type repository struct{}

func NewRepository() docdomain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, doc *docdomain.Document) error {
	return db.WithContext(ctx).Create(doc).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*docdomain.Document, error) {
	var doc docdomain.Document
	err := db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, filter docdomain.ListDocumentFilter, page pagination.Pagination) ([]*docdomain.Document, error) {
	stmt := db.WithContext(ctx).Model(&docdomain.Document{})

	if filter.Kind != "" {
		stmt = stmt.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		stmt = stmt.Where("client_id = ?", filter.ClientID)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		if cursor.ID != "" {
			stmt = stmt.Where("id > ?", cursor.ID)
		}
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = 50
	}

	var docs []*docdomain.Document
	if err := stmt.Order("id ASC").Limit(limit + 1).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, doc *docdomain.Document) error {
	return db.WithContext(ctx).
		Model(&docdomain.Document{}).
		Where("id = ?", doc.ID).
		Updates(map[string]any{
			"status":      doc.Status,
			"number":      doc.Number,
			"client_id":   doc.ClientID,
			"supplier":    doc.Supplier,
			"issue_date":  doc.IssueDate,
			"due_date":    doc.DueDate,
			"currency":    doc.Currency,
			"notes":       doc.Notes,
			"subtotal":    doc.Subtotal,
			"tax_amount":  doc.TaxAmount,
			"total":       doc.Total,
			"amount_paid": doc.AmountPaid,
			"quote_id":    doc.QuoteID,
			"updated_at":  doc.UpdatedAt,
		}).Error
}

func (r *repository) FindLines(ctx context.Context, db *gorm.DB, documentID snowflake.ID) ([]docdomain.DocumentLine, error) {
	var lines []docdomain.DocumentLine
	err := db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("position ASC, id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) InsertLine(ctx context.Context, db *gorm.DB, line *docdomain.DocumentLine) error {
	return db.WithContext(ctx).Create(line).Error
}

func (r *repository) UpdateLine(ctx context.Context, db *gorm.DB, line *docdomain.DocumentLine) error {
	return db.WithContext(ctx).
		Model(&docdomain.DocumentLine{}).
		Where("id = ?", line.ID).
		Updates(map[string]any{
			"position":         line.Position,
			"concept":          line.Concept,
			"description":      line.Description,
			"quantity":         line.Quantity,
			"unit_price":       line.UnitPrice,
			"discount_percent": line.DiscountPercent,
			"tax_rate":         line.TaxRate,
			"subtotal":         line.Subtotal,
			"tax_amount":       line.TaxAmount,
			"total":            line.Total,
			"product_id":       line.ProductID,
			"technician_id":    line.TechnicianID,
			"deleted":          line.Deleted,
			"updated_at":       line.UpdatedAt,
		}).Error
}

func (r *repository) ReplaceTaxLines(ctx context.Context, db *gorm.DB, documentID snowflake.ID, taxLines []docdomain.DocumentTaxLine) error {
	if err := db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Delete(&docdomain.DocumentTaxLine{}).Error; err != nil {
		return err
	}
	if len(taxLines) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&taxLines).Error
}

func (r *repository) FindTaxLines(ctx context.Context, db *gorm.DB, documentID snowflake.ID) ([]docdomain.DocumentTaxLine, error) {
	var taxLines []docdomain.DocumentTaxLine
	err := db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("rate DESC").
		Find(&taxLines).Error
	if err != nil {
		return nil, err
	}
	return taxLines, nil
}

func (r *repository) InsertPayment(ctx context.Context, db *gorm.DB, payment *docdomain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repository) FindPayments(ctx context.Context, db *gorm.DB, documentID snowflake.ID) ([]docdomain.Payment, error) {
	var payments []docdomain.Payment
	err := db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("paid_at ASC, id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// NextSequence bumps the per-kind per-year counter. The UPDATE-first
// shape keeps the increment atomic on every supported dialect without
// dialect-specific upsert syntax.
func (r *repository) NextSequence(ctx context.Context, db *gorm.DB, kind docdomain.Kind, year int) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE document_sequences SET value = value + 1 WHERE kind = ? AND year = ?`,
		kind, year,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		seq := docdomain.DocumentSequence{Kind: kind, Year: year, Value: 1}
		if err := db.WithContext(ctx).Create(&seq).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}

	var seq docdomain.DocumentSequence
	if err := db.WithContext(ctx).
		First(&seq, "kind = ? AND year = ?", kind, year).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}
