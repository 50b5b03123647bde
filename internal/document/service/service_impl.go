package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/nexoav/nexoav/internal/config"
	docdomain "github.com/nexoav/nexoav/internal/document/domain"
	"github.com/nexoav/nexoav/internal/document/format"
	"github.com/nexoav/nexoav/internal/observability/metrics"
	"github.com/nexoav/nexoav/internal/pricing"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
	"github.com/nexoav/nexoav/pkg/db/pagination"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// paymentEpsilon absorbs float noise when comparing paid amounts
// against the document total. Both sides are rounded to cents first.
const paymentEpsilon = 0.005

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    docdomain.Repository
	Tax     taxdomain.Service
	DocCfg  *config.DocumentConfigHolder
	Metrics *metrics.DocumentMetrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    docdomain.Repository
	tax     taxdomain.Service
	docCfg  *config.DocumentConfigHolder
	metrics *metrics.DocumentMetrics
}

func New(p Params) docdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("document.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		tax:     p.Tax,
		docCfg:  p.DocCfg,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req docdomain.CreateDocumentRequest) (docdomain.Document, error) {
	if !req.Kind.Valid() {
		return docdomain.Document{}, docdomain.ErrInvalidKind
	}

	clientID, err := s.parseOptionalID(req.ClientID)
	if err != nil {
		return docdomain.Document{}, err
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = s.docCfg.Get().Currency
	}

	now := time.Now().UTC()
	doc := docdomain.Document{
		ID:        s.genID.Generate(),
		Kind:      req.Kind,
		Status:    docdomain.StatusDraft,
		ClientID:  clientID,
		Supplier:  strings.TrimSpace(req.Supplier),
		Currency:  currency,
		Notes:     strings.TrimSpace(req.Notes),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &doc); err != nil {
			return err
		}
		if err := s.applyLineEdits(ctx, tx, &doc, nil, req.Lines); err != nil {
			return err
		}
		return s.recompute(ctx, tx, &doc)
	})
	if err != nil {
		return docdomain.Document{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordDocumentCreated(string(doc.Kind))
	}
	s.log.Info("document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("kind", string(doc.Kind)),
	)

	return s.loadFull(ctx, s.db, doc.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (docdomain.Document, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return docdomain.Document{}, err
	}
	return s.loadFull(ctx, s.db, parsed)
}

func (s *Service) List(ctx context.Context, req docdomain.ListDocumentRequest) (docdomain.ListDocumentResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, docdomain.ListDocumentFilter{
		Kind:     req.Kind,
		Status:   req.Status,
		ClientID: strings.TrimSpace(req.ClientID),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return docdomain.ListDocumentResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(doc *docdomain.Document) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        doc.ID.String(),
			CreatedAt: doc.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	docs := make([]docdomain.Document, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		docs = append(docs, *item)
	}

	resp := docdomain.ListDocumentResponse{Documents: docs}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) Update(ctx context.Context, req docdomain.UpdateDocumentRequest) (docdomain.Document, error) {
	parsed, err := s.parseID(req.ID)
	if err != nil {
		return docdomain.Document{}, err
	}

	doc, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return docdomain.Document{}, err
	}
	if doc == nil {
		return docdomain.Document{}, docdomain.ErrNotFound
	}
	if !doc.Status.Editable() {
		return docdomain.Document{}, docdomain.ErrNotEditable
	}

	if req.ClientID != nil {
		clientID, err := s.parseOptionalID(req.ClientID)
		if err != nil {
			return docdomain.Document{}, err
		}
		doc.ClientID = clientID
	}
	if req.Supplier != nil {
		doc.Supplier = strings.TrimSpace(*req.Supplier)
	}
	if req.Notes != nil {
		doc.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.IssueDate != nil {
		issueDate := req.IssueDate.UTC()
		doc.IssueDate = &issueDate
	}
	if req.DueDate != nil {
		dueDate := req.DueDate.UTC()
		doc.DueDate = &dueDate
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, doc); err != nil {
		return docdomain.Document{}, err
	}

	return s.loadFull(ctx, s.db, doc.ID)
}

func (s *Service) UpdateLines(ctx context.Context, documentID string, edits []docdomain.LineEdit) (docdomain.Document, error) {
	parsed, err := s.parseID(documentID)
	if err != nil {
		return docdomain.Document{}, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		doc, err := s.repo.FindByID(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if doc == nil {
			return docdomain.ErrNotFound
		}
		if !doc.Status.Editable() {
			return docdomain.ErrNotEditable
		}

		existing, err := s.repo.FindLines(ctx, tx, doc.ID)
		if err != nil {
			return err
		}
		if err := s.applyLineEdits(ctx, tx, doc, existing, edits); err != nil {
			return err
		}
		return s.recompute(ctx, tx, doc)
	})
	if err != nil {
		return docdomain.Document{}, err
	}

	return s.loadFull(ctx, s.db, parsed)
}

func (s *Service) Transition(ctx context.Context, documentID string, to docdomain.Status) (docdomain.Document, error) {
	parsed, err := s.parseID(documentID)
	if err != nil {
		return docdomain.Document{}, err
	}

	var kind docdomain.Kind
	err = s.db.Transaction(func(tx *gorm.DB) error {
		doc, err := s.repo.FindByID(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if doc == nil {
			return docdomain.ErrNotFound
		}
		if !docdomain.CanTransition(doc.Kind, doc.Status, to) {
			return docdomain.ErrInvalidTransition
		}

		if doc.Status == docdomain.StatusDraft && doc.Number == nil {
			if err := s.assignNumber(ctx, tx, doc); err != nil {
				return err
			}
		}

		doc.Status = to
		doc.UpdatedAt = time.Now().UTC()
		kind = doc.Kind
		return s.repo.Update(ctx, tx, doc)
	})
	if err != nil {
		return docdomain.Document{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordTransition(string(kind), string(to))
	}
	s.log.Info("document transitioned",
		zap.String("document_id", parsed.String()),
		zap.String("to", string(to)),
	)

	return s.loadFull(ctx, s.db, parsed)
}

func (s *Service) RegisterPayment(ctx context.Context, req docdomain.RegisterPaymentRequest) (docdomain.Document, error) {
	parsed, err := s.parseID(req.DocumentID)
	if err != nil {
		return docdomain.Document{}, err
	}
	if req.Amount <= 0 {
		return docdomain.Document{}, docdomain.ErrInvalidAmount
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		doc, err := s.repo.FindByID(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if doc == nil {
			return docdomain.ErrNotFound
		}
		if doc.Kind != docdomain.KindInvoice {
			return docdomain.ErrNotInvoice
		}
		if doc.Status != docdomain.StatusIssued {
			return docdomain.ErrInvalidTransition
		}

		amount := pricing.RoundCurrency(req.Amount)
		paid := pricing.RoundCurrency(doc.AmountPaid + amount)
		total := pricing.RoundCurrency(doc.Total)
		if paid > total+paymentEpsilon {
			return docdomain.ErrOverpayment
		}

		paidAt := time.Now().UTC()
		if req.PaidAt != nil {
			paidAt = req.PaidAt.UTC()
		}

		payment := docdomain.Payment{
			ID:         s.genID.Generate(),
			DocumentID: doc.ID,
			Reference:  ulid.Make().String(),
			Amount:     amount,
			Method:     strings.TrimSpace(req.Method),
			PaidAt:     paidAt,
			Notes:      strings.TrimSpace(req.Notes),
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.repo.InsertPayment(ctx, tx, &payment); err != nil {
			return err
		}

		doc.AmountPaid = paid
		if paid >= total-paymentEpsilon {
			doc.Status = docdomain.StatusPaid
		}
		doc.UpdatedAt = time.Now().UTC()
		return s.repo.Update(ctx, tx, doc)
	})
	if err != nil {
		return docdomain.Document{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordPayment()
	}

	return s.loadFull(ctx, s.db, parsed)
}

func (s *Service) ConvertQuote(ctx context.Context, quoteID string) (docdomain.Document, error) {
	parsed, err := s.parseID(quoteID)
	if err != nil {
		return docdomain.Document{}, err
	}

	var invoiceID snowflake.ID
	err = s.db.Transaction(func(tx *gorm.DB) error {
		quote, err := s.repo.FindByID(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if quote == nil {
			return docdomain.ErrNotFound
		}
		if quote.Kind != docdomain.KindQuote {
			return docdomain.ErrNotQuote
		}
		if quote.Status != docdomain.StatusAccepted {
			return docdomain.ErrQuoteNotAccepted
		}

		now := time.Now().UTC()
		invoice := docdomain.Document{
			ID:        s.genID.Generate(),
			Kind:      docdomain.KindInvoice,
			Status:    docdomain.StatusDraft,
			ClientID:  quote.ClientID,
			Currency:  quote.Currency,
			Notes:     quote.Notes,
			QuoteID:   &quote.ID,
			Metadata:  datatypes.JSONMap{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Insert(ctx, tx, &invoice); err != nil {
			return err
		}
		invoiceID = invoice.ID

		lines, err := s.repo.FindLines(ctx, tx, quote.ID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if line.Deleted {
				continue
			}
			copied := line
			copied.ID = s.genID.Generate()
			copied.DocumentID = invoice.ID
			copied.CreatedAt = now
			copied.UpdatedAt = now
			if err := s.repo.InsertLine(ctx, tx, &copied); err != nil {
				return err
			}
		}
		if err := s.recompute(ctx, tx, &invoice); err != nil {
			return err
		}

		quote.Status = docdomain.StatusInvoiced
		quote.UpdatedAt = now
		return s.repo.Update(ctx, tx, quote)
	})
	if err != nil {
		return docdomain.Document{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordDocumentCreated(string(docdomain.KindInvoice))
	}
	s.log.Info("quote converted to invoice",
		zap.String("quote_id", parsed.String()),
		zap.String("invoice_id", invoiceID.String()),
	)

	return s.loadFull(ctx, s.db, invoiceID)
}

// applyLineEdits resolves a changeset against the current lines. A nil
// edit ID adds a line, a matching ID with Delete soft-deletes it, any
// other matching ID modifies in place.
func (s *Service) applyLineEdits(ctx context.Context, tx *gorm.DB, doc *docdomain.Document, existing []docdomain.DocumentLine, edits []docdomain.LineEdit) error {
	byID := make(map[snowflake.ID]*docdomain.DocumentLine, len(existing))
	maxPosition := 0
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
		if existing[i].Position > maxPosition {
			maxPosition = existing[i].Position
		}
	}

	defaultRate, err := s.tax.DefaultRate(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, edit := range edits {
		if edit.ID == nil {
			concept := ""
			if edit.Concept != nil {
				concept = strings.TrimSpace(*edit.Concept)
			}
			if concept == "" {
				return docdomain.ErrInvalidConcept
			}

			productID, err := s.parseOptionalID(edit.ProductID)
			if err != nil {
				return err
			}
			technicianID, err := s.parseOptionalID(edit.TechnicianID)
			if err != nil {
				return err
			}

			in := pricing.ApplyDefaults(edit.Quantity, edit.UnitPrice, edit.DiscountPercent, edit.TaxRate, defaultRate)
			totals := pricing.ComputeLine(in)

			maxPosition++
			line := docdomain.DocumentLine{
				ID:              s.genID.Generate(),
				DocumentID:      doc.ID,
				Position:        maxPosition,
				Concept:         concept,
				Quantity:        in.Quantity,
				UnitPrice:       in.UnitPrice,
				DiscountPercent: in.DiscountPercent,
				TaxRate:         in.TaxRate,
				Subtotal:        totals.Subtotal,
				TaxAmount:       totals.TaxAmount,
				Total:           totals.Total,
				ProductID:       productID,
				TechnicianID:    technicianID,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if edit.Description != nil {
				line.Description = strings.TrimSpace(*edit.Description)
			}
			if err := s.repo.InsertLine(ctx, tx, &line); err != nil {
				return err
			}
			continue
		}

		lineID, err := snowflake.ParseString(strings.TrimSpace(*edit.ID))
		if err != nil {
			return docdomain.ErrInvalidID
		}
		line, ok := byID[lineID]
		if !ok {
			return docdomain.ErrLineNotFound
		}

		if edit.Delete {
			line.Deleted = true
			line.UpdatedAt = now
			if err := s.repo.UpdateLine(ctx, tx, line); err != nil {
				return err
			}
			continue
		}

		if edit.Concept != nil {
			concept := strings.TrimSpace(*edit.Concept)
			if concept == "" {
				return docdomain.ErrInvalidConcept
			}
			line.Concept = concept
		}
		if edit.Description != nil {
			line.Description = strings.TrimSpace(*edit.Description)
		}
		if edit.Quantity != nil {
			line.Quantity = *edit.Quantity
		}
		if edit.UnitPrice != nil {
			line.UnitPrice = *edit.UnitPrice
		}
		if edit.DiscountPercent != nil {
			line.DiscountPercent = *edit.DiscountPercent
		}
		if edit.TaxRate != nil {
			line.TaxRate = *edit.TaxRate
		}
		if edit.ProductID != nil {
			productID, err := s.parseOptionalID(edit.ProductID)
			if err != nil {
				return err
			}
			line.ProductID = productID
		}
		if edit.TechnicianID != nil {
			technicianID, err := s.parseOptionalID(edit.TechnicianID)
			if err != nil {
				return err
			}
			line.TechnicianID = technicianID
		}

		totals := pricing.ComputeLine(pricing.LineInput{
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			TaxRate:         line.TaxRate,
		})
		line.Subtotal = totals.Subtotal
		line.TaxAmount = totals.TaxAmount
		line.Total = totals.Total
		line.UpdatedAt = now

		if err := s.repo.UpdateLine(ctx, tx, line); err != nil {
			return err
		}
	}

	return nil
}

// recompute rebuilds the document totals and the denormalized tax
// groups from the stored lines.
func (s *Service) recompute(ctx context.Context, tx *gorm.DB, doc *docdomain.Document) error {
	lines, err := s.repo.FindLines(ctx, tx, doc.ID)
	if err != nil {
		return err
	}

	labels, err := s.tax.LabelMap(ctx)
	if err != nil {
		return err
	}

	engineLines := make([]pricing.Line, 0, len(lines))
	for _, line := range lines {
		engineLines = append(engineLines, pricing.Line{
			LineInput: pricing.LineInput{
				Quantity:        line.Quantity,
				UnitPrice:       line.UnitPrice,
				DiscountPercent: line.DiscountPercent,
				TaxRate:         line.TaxRate,
			},
			LineTotals: pricing.LineTotals{
				Subtotal:  line.Subtotal,
				TaxAmount: line.TaxAmount,
				Total:     line.Total,
			},
			Deleted: line.Deleted,
		})
	}

	totals := pricing.AggregateDocument(engineLines, labels)

	taxLines := make([]docdomain.DocumentTaxLine, 0, len(totals.TaxGroups))
	taxAmount := 0.0
	for _, group := range totals.TaxGroups {
		taxAmount += group.Amount
		taxLines = append(taxLines, docdomain.DocumentTaxLine{
			ID:         s.genID.Generate(),
			DocumentID: doc.ID,
			Rate:       group.Rate,
			Label:      group.Label,
			Amount:     pricing.RoundCurrency(group.Amount),
		})
	}
	if err := s.repo.ReplaceTaxLines(ctx, tx, doc.ID, taxLines); err != nil {
		return err
	}

	doc.Subtotal = pricing.RoundCurrency(totals.Subtotal)
	doc.TaxAmount = pricing.RoundCurrency(taxAmount)
	doc.Total = pricing.RoundCurrency(totals.Total)
	doc.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, tx, doc)
}

// assignNumber stamps the next number for the kind and sets the issue
// and due dates from the document config.
func (s *Service) assignNumber(ctx context.Context, tx *gorm.DB, doc *docdomain.Document) error {
	cfg := s.docCfg.Get()

	now := time.Now().UTC()
	issueDate := now
	if doc.IssueDate != nil {
		issueDate = *doc.IssueDate
	}

	seq, err := s.repo.NextSequence(ctx, tx, doc.Kind, issueDate.Year())
	if err != nil {
		return err
	}

	var template string
	switch doc.Kind {
	case docdomain.KindQuote:
		template = cfg.Numbering.Quote
	case docdomain.KindInvoice:
		template = cfg.Numbering.Invoice
	case docdomain.KindPurchaseOrder:
		template = cfg.Numbering.PurchaseOrder
	}

	number, err := format.FormatDocumentNumber(template, issueDate, seq)
	if err != nil {
		return err
	}

	doc.Number = &number
	doc.IssueDate = &issueDate
	if doc.DueDate == nil {
		switch doc.Kind {
		case docdomain.KindQuote:
			due := issueDate.AddDate(0, 0, cfg.QuoteValidityDays)
			doc.DueDate = &due
		case docdomain.KindInvoice:
			due := issueDate.AddDate(0, 0, cfg.InvoiceDueDays)
			doc.DueDate = &due
		}
	}

	return nil
}

func (s *Service) loadFull(ctx context.Context, db *gorm.DB, id snowflake.ID) (docdomain.Document, error) {
	doc, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		return docdomain.Document{}, err
	}
	if doc == nil {
		return docdomain.Document{}, docdomain.ErrNotFound
	}

	lines, err := s.repo.FindLines(ctx, db, id)
	if err != nil {
		return docdomain.Document{}, err
	}
	active := make([]docdomain.DocumentLine, 0, len(lines))
	for _, line := range lines {
		if line.Deleted {
			continue
		}
		active = append(active, line)
	}
	doc.Lines = active

	taxLines, err := s.repo.FindTaxLines(ctx, db, id)
	if err != nil {
		return docdomain.Document{}, err
	}
	doc.TaxLines = taxLines

	payments, err := s.repo.FindPayments(ctx, db, id)
	if err != nil {
		return docdomain.Document{}, err
	}
	doc.Payments = payments

	return *doc, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, docdomain.ErrInvalidID
	}
	return id, nil
}

func (s *Service) parseOptionalID(value *string) (*snowflake.ID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(strings.TrimSpace(*value))
	if err != nil || id == 0 {
		return nil, docdomain.ErrInvalidID
	}
	return &id, nil
}
