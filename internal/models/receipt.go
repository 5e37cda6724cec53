// Package models defines the domain types shared by the extraction pipeline:
// recognized text, parsed receipts, statement rows and candidate transactions.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecognizedText is the raw output of a text recognition run over one image.
// Confidence is a 0-100 estimate of how readable the source was.
type RecognizedText struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// LineItem is a single purchased item guessed from a receipt body.
// Line items are advisory data only; correctness of the receipt does not
// depend on them.
type LineItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ParsedReceipt holds the best-effort fields extracted from receipt text.
// Every field is a guess; a missing extraction leaves the field empty rather
// than producing an error.
type ParsedReceipt struct {
	Merchant   string          `json:"merchant,omitempty"`
	Date       string          `json:"date"` // ISO YYYY-MM-DD, defaults to the scan date
	Total      decimal.Decimal `json:"total"`
	TotalFound bool            `json:"total_found"`
	Provider   string          `json:"provider,omitempty"`
	Items      []LineItem      `json:"items,omitempty"`
	RawText    string          `json:"raw_text"`
}

// ToCandidate converts a parsed receipt into a candidate transaction for
// review. Receipts are always expenses; the category is left for the
// categorizer to fill in.
func (r ParsedReceipt) ToCandidate() CandidateTransaction {
	desc := r.Merchant
	if desc == "" {
		desc = "Struk belanja"
	}
	return CandidateTransaction{
		Date:        r.Date,
		Description: desc,
		Amount:      r.Total,
		Type:        TypeExpense,
	}
}

// Today returns the current date in ISO form. Receipt parsing assumes the
// capture date is today when no date can be read from the text.
func Today() string {
	return time.Now().Format("2006-01-02")
}
