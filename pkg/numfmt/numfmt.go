// Package numfmt converts between locale-formatted numeric text and
// canonical float values. Input follows the Spanish convention where "."
// and "," are used ambiguously as thousands and decimal separators;
// output uses "." for thousands grouping and "," as the decimal mark.
//
// Parsing never fails: unparseable input degrades to 0 so data-entry
// forms stay in a valid state while the user is still typing.
package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts free-form numeric text into a canonical float64.
//
// Disambiguation rules, applied after trimming:
//   - any "," present: "," is the decimal mark, every "." is grouping
//   - single ".": decimal mark only when followed by 1-2 digits
//   - multiple ".": all grouping
//
// Empty or invalid input returns 0.
func Parse(input string) float64 {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0
	}

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	switch {
	case commas > 0:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dots == 1:
		frac := s[strings.Index(s, ".")+1:]
		if !isDecimalFraction(frac) {
			s = strings.ReplaceAll(s, ".", "")
		}
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Format renders a canonical value as display text with "." thousands
// grouping, "," decimal mark and at most two fraction digits (trailing
// zeros are not forced). Zero and non-finite values render as the empty
// string so blank inputs stay blank.
func Format(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}

	d := decimal.NewFromFloat(value).Round(2)
	if d.IsZero() {
		return ""
	}

	s := d.String()
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(intPart))
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatString normalizes user-typed text back into display form.
func FormatString(input string) string {
	return Format(Parse(input))
}

func isDecimalFraction(frac string) bool {
	if len(frac) < 1 || len(frac) > 2 {
		return false
	}
	for i := 0; i < len(frac); i++ {
		if frac[i] < '0' || frac[i] > '9' {
			return false
		}
	}
	return true
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
