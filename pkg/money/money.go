// Package money formats calculator amounts for display.
//
// Values are rounded half away from zero to the code's decimals and grouped in
// thousands with a comma, e.g. 1234.5 becomes "1,234.50".
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders v with two decimals and thousands separators.
func Format(v float64) string {
	return FormatPlaces(v, 2)
}

// FormatCode renders v using the decimals of code followed by the code itself.
func FormatCode(v float64, code Code) string {
	return FormatPlaces(v, code.Decimals()) + " " + code.String()
}

// FormatPlaces renders v rounded to places decimals with thousands separators.
// NaN and infinities are rendered as "-".
func FormatPlaces(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	if places < 0 {
		places = 0
	}
	s := decimal.NewFromFloat(v).Round(places).StringFixed(places)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if strings.Trim(intPart+frac, "0") == "" {
		sign = ""
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Parse reads a user supplied amount. Both "1234.5" and "1,234.5" are accepted.
func Parse(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}
