package pdf

import (
	clientdomain "github.com/nexoav/nexoav/internal/client/domain"
	companydomain "github.com/nexoav/nexoav/internal/company/domain"
	docdomain "github.com/nexoav/nexoav/internal/document/domain"
	"github.com/nexoav/nexoav/pkg/numfmt"
)

const dateLayout = "02/01/2006"

var kindTitles = map[docdomain.Kind]string{
	docdomain.KindQuote:         "PRESUPUESTO",
	docdomain.KindInvoice:       "FACTURA",
	docdomain.KindPurchaseOrder: "PEDIDO",
}

// BuildDocumentData flattens a document plus company and client records
// into the strings the renderer prints. All amounts go through numfmt
// so the PDF shows Spanish-style numbers.
func BuildDocumentData(doc docdomain.Document, profile companydomain.Profile, client *clientdomain.Client) DocumentData {
	data := DocumentData{
		Title:    kindTitles[doc.Kind],
		Currency: doc.Currency,

		CompanyName:    profile.Name,
		CompanyTaxID:   profile.TaxID,
		CompanyAddress: profile.Address,
		CompanyEmail:   profile.Email,
		CompanyPhone:   profile.Phone,
		BankAccount:    profile.BankAccount,

		Subtotal: money(doc.Subtotal, doc.Currency),
		Total:    money(doc.Total, doc.Currency),
		Notes:    doc.Notes,
	}

	if doc.Number != nil {
		data.Number = *doc.Number
	}
	if doc.IssueDate != nil {
		data.IssueDate = doc.IssueDate.Format(dateLayout)
	}
	if doc.DueDate != nil {
		data.DueDate = doc.DueDate.Format(dateLayout)
	}

	if client != nil {
		data.ClientName = client.Name
		data.ClientTaxID = client.TaxID
		data.ClientAddress = client.Address
	} else if doc.Supplier != "" {
		data.ClientName = doc.Supplier
	}

	for _, line := range doc.Lines {
		if line.Deleted {
			continue
		}
		item := DocumentItem{
			Concept:     line.Concept,
			Description: line.Description,
			Quantity:    numfmt.Format(line.Quantity),
			UnitPrice:   money(line.UnitPrice, doc.Currency),
			TaxRate:     percent(line.TaxRate),
			Amount:      money(line.Subtotal, doc.Currency),
		}
		if line.DiscountPercent != 0 {
			item.Discount = percent(line.DiscountPercent)
		}
		data.Items = append(data.Items, item)
	}

	for _, taxLine := range doc.TaxLines {
		data.TaxGroups = append(data.TaxGroups, TaxGroupData{
			Label:  taxLine.Label,
			Amount: money(taxLine.Amount, doc.Currency),
		})
	}

	if doc.Kind == docdomain.KindInvoice && doc.AmountPaid > 0 && doc.AmountPaid < doc.Total {
		data.AmountDue = money(doc.Total-doc.AmountPaid, doc.Currency)
	}

	return data
}

func percent(v float64) string {
	formatted := numfmt.Format(v)
	if formatted == "" {
		formatted = "0"
	}
	return formatted + "%"
}

func money(v float64, currency string) string {
	formatted := numfmt.Format(v)
	if formatted == "" {
		formatted = "0"
	}
	if currency == "EUR" {
		return formatted + " €"
	}
	return formatted + " " + currency
}
