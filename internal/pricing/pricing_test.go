package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func line(quantity, unitPrice, discount, taxRate float64) Line {
	in := LineInput{Quantity: quantity, UnitPrice: unitPrice, DiscountPercent: discount, TaxRate: taxRate}
	return Line{LineInput: in, LineTotals: ComputeLine(in)}
}

func TestComputeLineFormula(t *testing.T) {
	totals := ComputeLine(LineInput{Quantity: 2, UnitPrice: 100, DiscountPercent: 10, TaxRate: 21})

	assert.InDelta(t, 180, totals.Subtotal, 1e-9)
	assert.InDelta(t, 37.8, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 217.8, totals.Total, 1e-9)
}

func TestComputeLineIsPure(t *testing.T) {
	in := LineInput{Quantity: 3, UnitPrice: 19.99, DiscountPercent: 5, TaxRate: 10}
	assert.Equal(t, ComputeLine(in), ComputeLine(in))
}

func TestComputeLineFullDiscount(t *testing.T) {
	totals := ComputeLine(LineInput{Quantity: 7, UnitPrice: 3500, DiscountPercent: 100, TaxRate: 21})

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.TaxAmount)
	assert.Zero(t, totals.Total)
}

func TestApplyDefaults(t *testing.T) {
	qty := 2.0
	in := ApplyDefaults(&qty, nil, nil, nil, 21)

	assert.Equal(t, 2.0, in.Quantity)
	assert.Zero(t, in.UnitPrice)
	assert.Zero(t, in.DiscountPercent)
	assert.Equal(t, 21.0, in.TaxRate)

	rate := 10.0
	in = ApplyDefaults(nil, nil, nil, &rate, 21)
	assert.Equal(t, 10.0, in.TaxRate)
}

func TestAggregateDocumentGroupsByRateDescending(t *testing.T) {
	lines := []Line{
		line(1, 50, 0, 10),
		line(1, 100, 0, 21),
	}

	totals := AggregateDocument(lines, map[float64]string{21: "IVA 21%", 10: "IVA 10%"})

	assert.InDelta(t, 150, totals.Subtotal, 1e-9)
	assert.InDelta(t, 176, totals.Total, 1e-9)
	if assert.Len(t, totals.TaxGroups, 2) {
		assert.Equal(t, 21.0, totals.TaxGroups[0].Rate)
		assert.InDelta(t, 21, totals.TaxGroups[0].Amount, 1e-9)
		assert.Equal(t, "IVA 21%", totals.TaxGroups[0].Label)
		assert.Equal(t, 10.0, totals.TaxGroups[1].Rate)
		assert.InDelta(t, 5, totals.TaxGroups[1].Amount, 1e-9)
	}
}

func TestAggregateDocumentExcludesZeroTaxFromGroups(t *testing.T) {
	lines := []Line{
		line(1, 100, 0, 0),
		line(1, 100, 0, 21),
	}

	totals := AggregateDocument(lines, nil)

	assert.InDelta(t, 200, totals.Subtotal, 1e-9)
	assert.InDelta(t, 221, totals.Total, 1e-9)
	if assert.Len(t, totals.TaxGroups, 1) {
		assert.Equal(t, 21.0, totals.TaxGroups[0].Rate)
	}
}

func TestAggregateDocumentExcludesDeletedLines(t *testing.T) {
	deleted := line(99, 1000, 0, 21)
	deleted.Deleted = true
	lines := []Line{deleted, line(1, 100, 0, 21)}

	totals := AggregateDocument(lines, nil)

	assert.InDelta(t, 100, totals.Subtotal, 1e-9)
	assert.InDelta(t, 121, totals.Total, 1e-9)
	if assert.Len(t, totals.TaxGroups, 1) {
		assert.InDelta(t, 21, totals.TaxGroups[0].Amount, 1e-9)
	}
}

func TestAggregateDocumentSynthesizesLabel(t *testing.T) {
	totals := AggregateDocument([]Line{line(1, 100, 0, 4)}, nil)

	if assert.Len(t, totals.TaxGroups, 1) {
		assert.Equal(t, "4%", totals.TaxGroups[0].Label)
	}
	assert.Equal(t, "7.5%", RateLabel(7.5))
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 37.8, RoundCurrency(37.800000000000004))
	assert.Equal(t, 0.13, RoundCurrency(0.125))
	assert.Equal(t, -0.13, RoundCurrency(-0.125))
	assert.Equal(t, 100.0, RoundCurrency(100))
}
