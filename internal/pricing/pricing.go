// Package pricing computes line-level and document-level monetary totals
// for quotes, invoices and purchase orders. All functions are pure; the
// caller owns the line collection and recomputes on every mutation so no
// stale derived value can survive a partial edit.
package pricing

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// LineInput carries the four raw inputs every derived amount is a
// function of.
type LineInput struct {
	Quantity        float64
	UnitPrice       float64
	DiscountPercent float64
	TaxRate         float64
}

// LineTotals holds the derived amounts for one line. They are never set
// independently of ComputeLine.
type LineTotals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// Line is the aggregation input: inputs, derived totals and the
// soft-delete flag owned by the document editor.
type Line struct {
	LineInput
	LineTotals
	Deleted bool
}

// TaxGroup sums tax amounts across all lines sharing one rate.
type TaxGroup struct {
	Rate   float64
	Label  string
	Amount float64
}

// DocumentTotals is recomputed on demand and never stored as-is.
type DocumentTotals struct {
	Subtotal  float64
	TaxGroups []TaxGroup
	Total     float64
}

// ApplyDefaults builds a LineInput from optional fields. Absent quantity,
// price and discount default to zero; an absent tax rate defaults to the
// configured rate (commonly 21).
func ApplyDefaults(quantity, unitPrice, discountPercent, taxRate *float64, defaultTaxRate float64) LineInput {
	in := LineInput{TaxRate: defaultTaxRate}
	if quantity != nil {
		in.Quantity = *quantity
	}
	if unitPrice != nil {
		in.UnitPrice = *unitPrice
	}
	if discountPercent != nil {
		in.DiscountPercent = *discountPercent
	}
	if taxRate != nil {
		in.TaxRate = *taxRate
	}
	return in
}

// ComputeLine derives subtotal, tax amount and total from the raw inputs.
// No rounding happens here; values keep full float precision so repeated
// edits do not compound rounding error. Callers round at the
// persistence/display boundary with RoundCurrency.
func ComputeLine(in LineInput) LineTotals {
	subtotal := in.Quantity * in.UnitPrice * (1 - in.DiscountPercent/100)
	taxAmount := subtotal * (in.TaxRate / 100)
	return LineTotals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount,
	}
}

// AggregateDocument sums the active lines of a document and groups tax
// amounts by exact rate. Soft-deleted lines are excluded entirely; lines
// whose tax amount is zero contribute to subtotal/total but produce no
// tax group. Groups are ordered by rate descending.
//
// Rates come from the small configured set of tax options, so grouping
// by exact float equality is deliberate, not an approximation.
func AggregateDocument(lines []Line, labels map[float64]string) DocumentTotals {
	var out DocumentTotals

	amounts := make(map[float64]float64)
	rates := make([]float64, 0, len(labels))
	for _, ln := range lines {
		if ln.Deleted {
			continue
		}
		out.Subtotal += ln.Subtotal
		out.Total += ln.Total
		if ln.TaxAmount == 0 {
			continue
		}
		if _, seen := amounts[ln.TaxRate]; !seen {
			rates = append(rates, ln.TaxRate)
		}
		amounts[ln.TaxRate] += ln.TaxAmount
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(rates)))
	for _, rate := range rates {
		label, ok := labels[rate]
		if !ok {
			label = RateLabel(rate)
		}
		out.TaxGroups = append(out.TaxGroups, TaxGroup{
			Rate:   rate,
			Label:  label,
			Amount: amounts[rate],
		})
	}
	return out
}

// RateLabel synthesizes the display label for a rate with no configured
// tax option, e.g. "21%".
func RateLabel(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// RoundCurrency rounds a monetary value to two decimals (half away from
// zero) for storage and display. The engine itself never rounds.
func RoundCurrency(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}
