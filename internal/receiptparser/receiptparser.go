// Package receiptparser extracts a best-effort transaction from raw receipt
// OCR text: total amount, date, merchant name, provider and line items.
//
// Every extraction step is independent and tolerant of failure. The parser
// never returns an error; a field that cannot be guessed is simply left
// empty for the user to fill in.
package receiptparser

import (
	"regexp"
	"strings"

	"kiyotrack/struk-csv/internal/amountutils"
	"kiyotrack/struk-csv/internal/dateutils"
	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/provider"

	"github.com/shopspring/decimal"
)

// Amount candidates outside [MinPlausibleAmount, MaxPlausibleAmount) are
// discarded: below are item codes and quantities, above are phone numbers
// and barcodes that OCR happily reads as prices.
var (
	MinPlausibleAmount = decimal.NewFromInt(100)
	MaxPlausibleAmount = decimal.NewFromInt(100_000_000)

	fallbackFloor = decimal.NewFromInt(1000)
)

var (
	// Layered amount patterns, in priority order: a total-keyword line, an
	// Rp-prefixed number, and any thousand-separated number.
	totalKeywordRE = regexp.MustCompile(`(?i)\b(grand\s*total|subtotal|total|jumlah|bayar|tunai|cash|debit|kredit)\b[^0-9-]*([0-9][0-9.,]*)`)
	rupiahRE       = regexp.MustCompile(`(?i)\brp\.?\s*([0-9][0-9.,]*)`)
	separatedRE    = regexp.MustCompile(`\b\d{1,3}(?:[.,]\d{3})+\b`)

	numberRE    = regexp.MustCompile(`[0-9][0-9.,]*`)
	allDigitsRE = regexp.MustCompile(`^[\d\s.,:/-]+$`)

	lineItemRE = regexp.MustCompile(`^(.+?)\s+([0-9][0-9.,]{2,})$`)
)

// noiseTokens mark structural receipt lines that can never be a merchant
// name or a line item.
var noiseTokens = []string{
	"struk", "receipt", "nota", "invoice", "kasir", "cashier",
	"tanggal", "date", "waktu", "time",
}

// knownMerchants are literal names checked in a stricter second pass over
// the header lines. A hit here overrides the generic first-line guess.
var knownMerchants = []string{
	"INDOMARET", "ALFAMART", "ALFAMIDI", "SUPERINDO", "HYPERMART",
	"TRANSMART", "FAMILYMART", "LAWSON", "CIRCLE K",
	"MCDONALD", "KFC", "BURGER KING", "STARBUCKS", "GOJEK", "GRAB",
}

// Parse extracts a ParsedReceipt from raw OCR text. It is a pure function:
// no I/O, no retained state, and it never fails on malformed input.
func Parse(rawText string) models.ParsedReceipt {
	lines := splitLines(rawText)

	receipt := models.ParsedReceipt{
		RawText:  rawText,
		Provider: provider.Detect(rawText),
	}

	if total, ok := extractTotal(lines); ok {
		receipt.Total = total
		receipt.TotalFound = true
	}

	if date, ok := dateutils.ExtractDate(rawText); ok {
		receipt.Date = date
	} else {
		receipt.Date = models.Today()
	}

	receipt.Merchant = extractMerchant(lines)
	receipt.Items = extractLineItems(lines, receipt.Total, receipt.TotalFound)

	return receipt
}

// extractTotal pools the numeric matches of all three layered patterns,
// filters them to the plausible range and picks the maximum. Receipts print
// the grand total as the largest number near the item lines; subtotal and
// tax lines are smaller. When no pattern yields a candidate, the last five
// lines are scanned for the single largest number >= 1000.
func extractTotal(lines []string) (decimal.Decimal, bool) {
	var pool []decimal.Decimal

	for _, line := range lines {
		for _, m := range totalKeywordRE.FindAllStringSubmatch(line, -1) {
			if d, ok := amountutils.Parse(m[2]); ok {
				pool = append(pool, d)
			}
		}
		for _, m := range rupiahRE.FindAllStringSubmatch(line, -1) {
			if d, ok := amountutils.Parse(m[1]); ok {
				pool = append(pool, d)
			}
		}
		for _, m := range separatedRE.FindAllString(line, -1) {
			if d, ok := amountutils.Parse(m); ok {
				pool = append(pool, d)
			}
		}
	}

	if best, ok := maxInRange(pool, MinPlausibleAmount, MaxPlausibleAmount); ok {
		return best, true
	}

	return lastLinesFallback(lines)
}

// lastLinesFallback scans only the last 5 lines for any number >= 1000 and
// returns the largest.
func lastLinesFallback(lines []string) (decimal.Decimal, bool) {
	start := len(lines) - 5
	if start < 0 {
		start = 0
	}

	var pool []decimal.Decimal
	for _, line := range lines[start:] {
		for _, m := range numberRE.FindAllString(line, -1) {
			if d, ok := amountutils.Parse(m); ok {
				pool = append(pool, d)
			}
		}
	}

	return maxInRange(pool, fallbackFloor, decimal.Decimal{})
}

// maxInRange returns the largest candidate with min <= d, and d < max when
// max is set.
func maxInRange(pool []decimal.Decimal, min, max decimal.Decimal) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, d := range pool {
		if d.Cmp(min) < 0 {
			continue
		}
		if !max.IsZero() && d.Cmp(max) >= 0 {
			continue
		}
		if !found || d.Cmp(best) > 0 {
			best = d
			found = true
		}
	}
	return best, found
}

// extractMerchant guesses the merchant from the receipt header. The first 5
// lines are scanned; structural noise lines and pure-digit lines are
// skipped, and the first remaining line of length 3-50 wins. A stricter
// second pass upgrades the guess to a known merchant literal when one
// appears anywhere in the header.
func extractMerchant(lines []string) string {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	header := lines[:limit]

	guess := ""
	for _, line := range header {
		if isNoiseLine(line) || allDigitsRE.MatchString(line) {
			continue
		}
		if len(line) >= 3 && len(line) <= 50 {
			guess = line
			break
		}
	}

	upper := strings.ToUpper(strings.Join(header, "\n"))
	for _, merchant := range knownMerchants {
		if strings.Contains(upper, merchant) {
			return merchant
		}
	}

	return guess
}

// extractLineItems collects "<name> <price>" lines. A candidate qualifies
// when the trailing number is below the detected total and the name part is
// longer than 2 characters. This is advisory data only.
func extractLineItems(lines []string, total decimal.Decimal, totalFound bool) []models.LineItem {
	var items []models.LineItem

	for _, line := range lines {
		if isNoiseLine(line) || totalKeywordRE.MatchString(line) {
			continue
		}
		m := lineItemRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) <= 2 || allDigitsRE.MatchString(name) {
			continue
		}
		price, ok := amountutils.Parse(m[2])
		if !ok || price.Sign() <= 0 {
			continue
		}
		if totalFound && price.Cmp(total) >= 0 {
			continue
		}
		items = append(items, models.LineItem{Name: name, Price: price})
	}

	return items
}

func isNoiseLine(line string) bool {
	lower := strings.ToLower(line)
	for _, token := range noiseTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
