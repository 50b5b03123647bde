package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type DocumentData struct {
	Title  string
	Number string

	IssueDate string
	DueDate   string

	CompanyName    string
	CompanyTaxID   string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string

	ClientName    string
	ClientTaxID   string
	ClientAddress string

	Items []DocumentItem

	Subtotal  string
	TaxGroups []TaxGroupData
	Total     string
	AmountDue string

	Currency    string
	BankAccount string
	Notes       string
}

type DocumentItem struct {
	Concept     string
	Description string
	Quantity    string
	UnitPrice   string
	Discount    string
	TaxRate     string
	Amount      string
}

type TaxGroupData struct {
	Label  string
	Amount string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) RenderDocument(ctx context.Context, data DocumentData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Pagina {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	title := data.Title
	if data.Number != "" {
		title = fmt.Sprintf("%s %s", data.Title, data.Number)
	}
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(12,
		col.New(6).Add(
			text.New("Fecha de emision: "+data.IssueDate, props.Text{Top: 0, Size: 9}),
			text.New("Fecha de vencimiento: "+data.DueDate, props.Text{Top: 4, Size: 9}),
		),
		col.New(6),
	)

	m.AddRow(35,
		col.New(6).Add(
			text.New(data.CompanyName, props.Text{Style: fontstyle.Bold}),
			text.New(data.CompanyTaxID, props.Text{Top: 5, Size: 9}),
			text.New(data.CompanyAddress, props.Text{Top: 9, Size: 9}),
			text.New(data.CompanyEmail, props.Text{Top: 13, Size: 9}),
			text.New(data.CompanyPhone, props.Text{Top: 17, Size: 9}),
		),
		col.New(6).Add(
			text.New("Cliente", props.Text{Style: fontstyle.Bold}),
			text.New(data.ClientName, props.Text{Top: 5, Size: 9}),
			text.New(data.ClientTaxID, props.Text{Top: 9, Size: 9}),
			text.New(data.ClientAddress, props.Text{Top: 13, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(4, "Concepto", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Cant.", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Precio", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Dto.", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "IVA", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Importe", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		height := float64(8)
		if item.Description != "" {
			height = 12
		}
		concept := col.New(4).Add(text.New(item.Concept, props.Text{Size: 9}))
		if item.Description != "" {
			concept.Add(text.New(item.Description, props.Text{Top: 4, Size: 8}))
		}
		m.AddRow(height,
			concept,
			text.NewCol(1, item.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, item.Discount, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.TaxRate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Base imponible", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	for _, group := range data.TaxGroups {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, group.Label, props.Text{Size: 9}),
			text.NewCol(2, group.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
	if data.AmountDue != "" {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, "Pendiente", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, data.AmountDue, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
	}

	if data.BankAccount != "" {
		m.AddRow(12,
			text.NewCol(12, "Pago por transferencia: "+data.BankAccount, props.Text{Size: 8, Top: 4}),
		)
	}
	if data.Notes != "" {
		m.AddRow(15,
			text.NewCol(12, data.Notes, props.Text{Size: 8, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
