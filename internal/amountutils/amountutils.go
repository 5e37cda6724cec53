// Package amountutils normalizes Indonesian-formatted money strings into
// decimal values. Statements and receipts use '.' as the thousands separator
// and ',' as the decimal separator ("1.250.000,50"); OCR output additionally
// mixes in currency prefixes and stray whitespace.
package amountutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	rupiahPrefixRE = regexp.MustCompile(`(?i)^(rp\.?|idr)\s*`)
	centsSuffixRE  = regexp.MustCompile(`[.,]\d{2}$`)
	nonNumericRE   = regexp.MustCompile(`[^\d.,-]`)
)

// Parse converts an Indonesian-formatted amount string into a decimal.
// The boolean result is false when no numeric value could be extracted.
//
//	"Rp 45.000"     -> 45000
//	"1.250.000,50"  -> 1250000.50
//	"500000"        -> 500000
//	"-25.000"       -> -25000
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = rupiahPrefixRE.ReplaceAllString(s, "")
	s = nonNumericRE.ReplaceAllString(s, "")
	if s == "" || s == "-" {
		return decimal.Zero, false
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.ReplaceAll(s, "-", "")

	var fraction string
	if centsSuffixRE.MatchString(s) {
		// A trailing two-digit group after the last separator is a decimal
		// part; everything before it is the integer part.
		fraction = s[len(s)-2:]
		s = s[:len(s)-3]
	}

	// Remaining separators are thousands separators.
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	if fraction != "" {
		s = s + "." + fraction
	}
	if negative {
		s = "-" + s
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseMagnitude parses like Parse but returns the absolute value.
func ParseMagnitude(s string) (decimal.Decimal, bool) {
	d, ok := Parse(s)
	if !ok {
		return decimal.Zero, false
	}
	return d.Abs(), true
}
