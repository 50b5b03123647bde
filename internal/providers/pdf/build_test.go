package pdf

import (
	"testing"
	"time"

	clientdomain "github.com/nexoav/nexoav/internal/client/domain"
	companydomain "github.com/nexoav/nexoav/internal/company/domain"
	docdomain "github.com/nexoav/nexoav/internal/document/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildDocumentData(t *testing.T) {
	number := "FAC-2026-0007"
	issue := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	doc := docdomain.Document{
		Kind:      docdomain.KindInvoice,
		Number:    &number,
		IssueDate: &issue,
		Currency:  "EUR",
		Subtotal:  1234.5,
		TaxAmount: 259.25,
		Total:     1493.75,
		Lines: []docdomain.DocumentLine{
			{
				Concept:         "Alquiler equipo",
				Quantity:        2,
				UnitPrice:       617.25,
				DiscountPercent: 0,
				TaxRate:         21,
				Subtotal:        1234.5,
			},
		},
		TaxLines: []docdomain.DocumentTaxLine{
			{Rate: 21, Label: "IVA 21%", Amount: 259.25},
		},
	}
	profile := companydomain.Profile{Name: "NEXO AV SL", TaxID: "B00000000", BankAccount: "ES00 0000"}
	client := &clientdomain.Client{Name: "Teatro Real", TaxID: "A11111111"}

	data := BuildDocumentData(doc, profile, client)

	assert.Equal(t, "FACTURA", data.Title)
	assert.Equal(t, "FAC-2026-0007", data.Number)
	assert.Equal(t, "07/03/2026", data.IssueDate)
	assert.Equal(t, "NEXO AV SL", data.CompanyName)
	assert.Equal(t, "Teatro Real", data.ClientName)
	assert.Equal(t, "1.234,5 €", data.Subtotal)
	assert.Equal(t, "1.493,75 €", data.Total)
	assert.Len(t, data.Items, 1)
	assert.Equal(t, "617,25 €", data.Items[0].UnitPrice)
	assert.Equal(t, "21%", data.Items[0].TaxRate)
	assert.Empty(t, data.Items[0].Discount)
	assert.Len(t, data.TaxGroups, 1)
	assert.Equal(t, "IVA 21%", data.TaxGroups[0].Label)
	assert.Empty(t, data.AmountDue)
}

func TestBuildDocumentDataSkipsDeletedLines(t *testing.T) {
	doc := docdomain.Document{
		Kind:     docdomain.KindQuote,
		Currency: "EUR",
		Lines: []docdomain.DocumentLine{
			{Concept: "Activa", Quantity: 1, UnitPrice: 10, Subtotal: 10},
			{Concept: "Borrada", Quantity: 1, UnitPrice: 99, Subtotal: 99, Deleted: true},
		},
	}

	data := BuildDocumentData(doc, companydomain.Profile{}, nil)

	assert.Equal(t, "PRESUPUESTO", data.Title)
	assert.Len(t, data.Items, 1)
	assert.Equal(t, "Activa", data.Items[0].Concept)
}

func TestBuildDocumentDataPartialPayment(t *testing.T) {
	doc := docdomain.Document{
		Kind:       docdomain.KindInvoice,
		Currency:   "EUR",
		Total:      121,
		AmountPaid: 50,
	}

	data := BuildDocumentData(doc, companydomain.Profile{}, nil)
	assert.Equal(t, "71 €", data.AmountDue)
}
