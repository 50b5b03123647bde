package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeparatorDisambiguation(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"1.234,56", 1234.56},
		{"1234.56", 1234.56},
		{"1.234", 1234},
		{"1.234.567", 1234567},
		{"1.234.567,89", 1234567.89},
		{"1234,5", 1234.5},
		{",5", 0.5},
		{"12.3", 12.3},
		{"0,00", 0},
		{"  42  ", 42},
		{"-1.234,5", -1234.5},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"12,34,56", 0},
		// comma wins: dots are grouping no matter how odd the input looks
		{"1.2.3,4.5", 123.45},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Parse(tc.input), "input %q", tc.input)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0, ""},
		{1234.5, "1.234,5"},
		{1234.56, "1.234,56"},
		{1234567.89, "1.234.567,89"},
		{100, "100"},
		{1000, "1.000"},
		{-9876.5, "-9.876,5"},
		{0.5, "0,5"},
		{21.005, "21,01"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.value), "value %v", tc.value)
	}

	assert.Equal(t, "", Format(math.NaN()))
	assert.Equal(t, "", Format(math.Inf(1)))
}

func TestFormatZeroRendersBlank(t *testing.T) {
	assert.Equal(t, "", Format(0))
	assert.Equal(t, "", FormatString("garbage"))
	assert.Equal(t, "", FormatString("0"))
}

func TestRoundTripIdempotence(t *testing.T) {
	for _, v := range []float64{1234.5, 0.5, 21, 1000000, -42.42} {
		assert.InDelta(t, v, Parse(Format(v)), 1e-9)
	}

	for _, input := range []string{"1.234,56", "1234.56", "1.234", "7,5"} {
		once := Parse(input)
		assert.InDelta(t, once, Parse(FormatString(input)), 1e-9, "input %q", input)
	}
}
