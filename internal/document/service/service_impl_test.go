package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nexoav/nexoav/internal/config"
	docdomain "github.com/nexoav/nexoav/internal/document/domain"
	"github.com/nexoav/nexoav/internal/document/repository"
	taxdomain "github.com/nexoav/nexoav/internal/tax/domain"
	taxrepository "github.com/nexoav/nexoav/internal/tax/repository"
	taxservice "github.com/nexoav/nexoav/internal/tax/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) docdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&taxdomain.TaxOption{},
		&docdomain.Document{},
		&docdomain.DocumentLine{},
		&docdomain.DocumentTaxLine{},
		&docdomain.DocumentSequence{},
		&docdomain.Payment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	taxSvc := taxservice.New(taxservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  taxrepository.NewRepository(),
		Cfg:   config.Config{DefaultTaxRate: 21},
	})
	ctx := context.Background()
	if _, err := taxSvc.Create(ctx, taxdomain.CreateRequest{Rate: 21, Label: "IVA 21%", IsDefault: true}); err != nil {
		t.Fatalf("seed tax: %v", err)
	}
	if _, err := taxSvc.Create(ctx, taxdomain.CreateRequest{Rate: 10, Label: "IVA 10%"}); err != nil {
		t.Fatalf("seed tax: %v", err)
	}

	docCfg, err := config.NewDocumentConfigHolder()
	if err != nil {
		t.Fatalf("document config: %v", err)
	}

	return New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.NewRepository(),
		Tax:    taxSvc,
		DocCfg: docCfg,
	})
}

func strptr(v string) *string   { return &v }
func f64ptr(v float64) *float64 { return &v }

func TestCreateInvoiceComputesTotals(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, docdomain.CreateDocumentRequest{
		Kind: docdomain.KindInvoice,
		Lines: []docdomain.LineEdit{
			{
				Concept:         strptr("Alquiler equipo de sonido"),
				Quantity:        f64ptr(2),
				UnitPrice:       f64ptr(100),
				DiscountPercent: f64ptr(10),
				TaxRate:         f64ptr(21),
			},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, docdomain.StatusDraft, doc.Status)
	assert.Nil(t, doc.Number)
	assert.Equal(t, "EUR", doc.Currency)
	assert.InDelta(t, 180, doc.Subtotal, 1e-9)
	assert.InDelta(t, 37.8, doc.TaxAmount, 1e-9)
	assert.InDelta(t, 217.8, doc.Total, 1e-9)

	assert.Len(t, doc.Lines, 1)
	assert.Len(t, doc.TaxLines, 1)
	assert.Equal(t, "IVA 21%", doc.TaxLines[0].Label)
}

func TestCreateDocumentDefaultTaxRate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, docdomain.CreateDocumentRequest{
		Kind: docdomain.KindQuote,
		Lines: []docdomain.LineEdit{
			{Concept: strptr("Montaje escenario"), Quantity: f64ptr(1), UnitPrice: f64ptr(100)},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 21.0, doc.Lines[0].TaxRate)
	assert.InDelta(t, 121, doc.Total, 1e-9)
}

func TestTaxGroupsSortedByRateDescending(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, docdomain.CreateDocumentRequest{
		Kind: docdomain.KindInvoice,
		Lines: []docdomain.LineEdit{
			{Concept: strptr("Entradas"), Quantity: f64ptr(1), UnitPrice: f64ptr(50), TaxRate: f64ptr(10)},
			{Concept: strptr("Sonido"), Quantity: f64ptr(1), UnitPrice: f64ptr(100), TaxRate: f64ptr(21)},
		},
	})
	assert.NoError(t, err)

	assert.Len(t, doc.TaxLines, 2)
	assert.Equal(t, 21.0, doc.TaxLines[0].Rate)
	assert.InDelta(t, 21, doc.TaxLines[0].Amount, 1e-9)
	assert.Equal(t, 10.0, doc.TaxLines[1].Rate)
	assert.InDelta(t, 5, doc.TaxLines[1].Amount, 1e-9)
	assert.InDelta(t, 150, doc.Subtotal, 1e-9)
	assert.InDelta(t, 176, doc.Total, 1e-9)
}

func TestUpdateLinesChangeset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, docdomain.CreateDocumentRequest{
		Kind: docdomain.KindQuote,
		Lines: []docdomain.LineEdit{
			{Concept: strptr("Linea A"), Quantity: f64ptr(1), UnitPrice: f64ptr(100), TaxRate: f64ptr(21)},
			{Concept: strptr("Linea B"), Quantity: f64ptr(1), UnitPrice: f64ptr(200), TaxRate: f64ptr(21)},
		},
	})
	assert.NoError(t, err)
	assert.Len(t, doc.Lines, 2)

	lineA := doc.Lines[0].ID.String()
	lineB := doc.Lines[1].ID.String()

	updated, err := svc.UpdateLines(ctx, doc.ID.String(), []docdomain.LineEdit{
		{ID: &lineA, UnitPrice: f64ptr(150)},
		{ID: &lineB, Delete: true},
		{Concept: strptr("Linea C"), Quantity: f64ptr(2), UnitPrice: f64ptr(25), TaxRate: f64ptr(10)},
	})
	assert.NoError(t, err)

	assert.Len(t, updated.Lines, 2)
	assert.InDelta(t, 200, updated.Subtotal, 1e-9)
	assert.Len(t, updated.TaxLines, 2)
	assert.Equal(t, 21.0, updated.TaxLines[0].Rate)
	assert.Equal(t, 10.0, updated.TaxLines[1].Rate)
}

func TestUpdateLinesUnknownLine(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, docdomain.CreateDocumentRequest{Kind: docdomain.KindQuote})
	assert.NoError(t, err)

	bogus := "123456789"
	_, err = svc.UpdateLines(ctx, doc.ID.String(), []docdomain.LineEdit{
		{ID: &bogus, Delete: true},
	})
	assert.ErrorIs(t, err, docdomain.ErrLineNotFound)
}

func TestTransitionAssignsSequentialNumbers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	year := time.Now().UTC().Year()
	for i := 1; i <= 2; i++ {
		doc, err := svc.Create(ctx, docdomain.CreateDocumentRequest{
			Kind: docdomain.KindInvoice,
			Lines: []docdomain.LineEdit{
				{Concept: strptr("Servicio"), Quantity: f64ptr(1), UnitPrice: f64ptr(100)},
			},
		})
		assert.NoError(t, err)

		issued, err := svc.Transition(ctx, doc.ID.String(), docdomain.StatusIssued)
		assert.NoError(t, err)
		assert.NotNil(t, issued.Number)
		assert.Equal(t, fmt.Sprintf("FAC-%d-%04d", year, i), *issued.Number)
		assert.NotNil(t, issued.IssueDate)
		assert.NotNil(t, issued.DueDate)
	}
}

func TestInvalidTransitionRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, docdomain.CreateDocumentRequest{Kind: docdomain.KindInvoice})
	assert.NoError(t, err)

	_, err = svc.Transition(ctx, doc.ID.String(), docdomain.StatusPaid)
	assert.ErrorIs(t, err, docdomain.ErrInvalidTransition)
}

func TestIssuedDocumentNotEditable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, docdomain.CreateDocumentRequest{
		Kind: docdomain.KindInvoice,
		Lines: []docdomain.LineEdit{
			{Concept: strptr("Servicio"), Quantity: f64ptr(1), UnitPrice: f64ptr(100)},
		},
	})
	assert.NoError(t, err)

	_, err = svc.Transition(ctx, doc.ID.String(), docdomain.StatusIssued)
	assert.NoError(t, err)

	_, err = svc.UpdateLines(ctx, doc.ID.String(), []docdomain.LineEdit{
		{Concept: strptr("Extra"), Quantity: f64ptr(1), UnitPrice: f64ptr(10)},
	})
	assert.ErrorIs(t, err, docdomain.ErrNotEditable)
}

func TestRegisterPayments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, docdomain.CreateDocumentRequest{
		Kind: docdomain.KindInvoice,
		Lines: []docdomain.LineEdit{
			{Concept: strptr("Servicio"), Quantity: f64ptr(1), UnitPrice: f64ptr(100), TaxRate: f64ptr(21)},
		},
	})
	assert.NoError(t, err)

	_, err = svc.Transition(ctx, doc.ID.String(), docdomain.StatusIssued)
	assert.NoError(t, err)

	partial, err := svc.RegisterPayment(ctx, docdomain.RegisterPaymentRequest{
		DocumentID: doc.ID.String(),
		Amount:     50,
		Method:     "transfer",
	})
	assert.NoError(t, err)
	assert.Equal(t, docdomain.StatusIssued, partial.Status)
	assert.InDelta(t, 50, partial.AmountPaid, 1e-9)
	assert.Len(t, partial.Payments, 1)
	assert.NotEmpty(t, partial.Payments[0].Reference)

	_, err = svc.RegisterPayment(ctx, docdomain.RegisterPaymentRequest{
		DocumentID: doc.ID.String(),
		Amount:     100,
	})
	assert.ErrorIs(t, err, docdomain.ErrOverpayment)

	full, err := svc.RegisterPayment(ctx, docdomain.RegisterPaymentRequest{
		DocumentID: doc.ID.String(),
		Amount:     71,
	})
	assert.NoError(t, err)
	assert.Equal(t, docdomain.StatusPaid, full.Status)
	assert.InDelta(t, 121, full.AmountPaid, 1e-9)
	assert.Len(t, full.Payments, 2)
}

func TestRegisterPaymentValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, docdomain.CreateDocumentRequest{Kind: docdomain.KindQuote})
	assert.NoError(t, err)

	_, err = svc.RegisterPayment(ctx, docdomain.RegisterPaymentRequest{
		DocumentID: quote.ID.String(),
		Amount:     10,
	})
	assert.ErrorIs(t, err, docdomain.ErrNotInvoice)

	invoice, err := svc.Create(ctx, docdomain.CreateDocumentRequest{Kind: docdomain.KindInvoice})
	assert.NoError(t, err)

	_, err = svc.RegisterPayment(ctx, docdomain.RegisterPaymentRequest{
		DocumentID: invoice.ID.String(),
		Amount:     0,
	})
	assert.ErrorIs(t, err, docdomain.ErrInvalidAmount)
}

func TestConvertQuote(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	quote, err := svc.Create(ctx, docdomain.CreateDocumentRequest{
		Kind: docdomain.KindQuote,
		Lines: []docdomain.LineEdit{
			{Concept: strptr("Iluminacion"), Quantity: f64ptr(1), UnitPrice: f64ptr(300), TaxRate: f64ptr(21)},
			{Concept: strptr("Descartada"), Quantity: f64ptr(1), UnitPrice: f64ptr(50), TaxRate: f64ptr(21)},
		},
	})
	assert.NoError(t, err)

	discarded := quote.Lines[1].ID.String()
	quote, err = svc.UpdateLines(ctx, quote.ID.String(), []docdomain.LineEdit{
		{ID: &discarded, Delete: true},
	})
	assert.NoError(t, err)

	_, err = svc.ConvertQuote(ctx, quote.ID.String())
	assert.ErrorIs(t, err, docdomain.ErrQuoteNotAccepted)

	_, err = svc.Transition(ctx, quote.ID.String(), docdomain.StatusSent)
	assert.NoError(t, err)
	_, err = svc.Transition(ctx, quote.ID.String(), docdomain.StatusAccepted)
	assert.NoError(t, err)

	invoice, err := svc.ConvertQuote(ctx, quote.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, docdomain.KindInvoice, invoice.Kind)
	assert.Equal(t, docdomain.StatusDraft, invoice.Status)
	assert.NotNil(t, invoice.QuoteID)
	assert.Equal(t, quote.ID, *invoice.QuoteID)
	assert.Len(t, invoice.Lines, 1)
	assert.InDelta(t, 363, invoice.Total, 1e-9)

	converted, err := svc.GetByID(ctx, quote.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, docdomain.StatusInvoiced, converted.Status)
}
