// Package dateutils parses the date formats found on Indonesian receipts and
// bank statements.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayoutISO is the canonical output layout used across the application.
const DateLayoutISO = "2006-01-02"

// Statement date layouts, tried in order.
var statementLayouts = []string{
	DateLayoutISO,
	"02/01/2006",
	"02-01-2006",
	"02/01/06",
}

// Permissive fallback layouts tried after the primary statement layouts.
var fallbackLayouts = []string{
	"2006/01/02",
	"02.01.2006",
	"2 January 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
}

var (
	numericDateRE   = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
	monthNameDateRE = regexp.MustCompile(`(?i)(\d{1,2})\s+([a-z]{3,9})\.?\s+(\d{2,4})`)
)

// monthsByName maps lowercase month-name prefixes (Indonesian and English)
// to month numbers. Three letters are enough to disambiguate both languages.
var monthsByName = map[string]time.Month{
	"jan": time.January, "feb": time.February, "peb": time.February,
	"mar": time.March, "apr": time.April, "mei": time.May, "may": time.May,
	"jun": time.June, "jul": time.July, "agu": time.August, "ags": time.August,
	"aug": time.August, "sep": time.September, "okt": time.October,
	"oct": time.October, "nov": time.November, "des": time.December,
	"dec": time.December,
}

// ExtractDate scans free text for the first plausible date. Numeric
// DD/MM/YYYY and DD-MM-YYYY forms are tried before month-name forms
// ("17 Agu 2025", "3 Jan 24"). Two-digit years are normalized by adding
// 2000. Candidates with day outside [1,31] or month outside [1,12] are
// rejected and scanning continues with the next candidate.
func ExtractDate(text string) (string, bool) {
	for _, m := range numericDateRE.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := normalizeYear(m[3])
		if !validDayMonth(day, month) {
			continue
		}
		return isoDate(year, time.Month(month), day), true
	}

	for _, m := range monthNameDateRE.FindAllStringSubmatch(text, -1) {
		month, ok := monthByName(m[2])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		year := normalizeYear(m[3])
		if !validDayMonth(day, int(month)) {
			continue
		}
		return isoDate(year, month, day), true
	}

	return "", false
}

// ParseStatementDate parses a statement cell into a time value. The primary
// layouts cover the exports of the major Indonesian banks; a permissive
// fallback list is attempted last.
func ParseStatementDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range statementLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return normalizeCentury(t), nil
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return normalizeCentury(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// ToISO formats a time value as YYYY-MM-DD.
func ToISO(t time.Time) string {
	return t.Format(DateLayoutISO)
}

func monthByName(name string) (time.Month, bool) {
	name = strings.ToLower(name)
	if len(name) > 3 {
		name = name[:3]
	}
	m, ok := monthsByName[name]
	return m, ok
}

func validDayMonth(day, month int) bool {
	return day >= 1 && day <= 31 && month >= 1 && month <= 12
}

// normalizeYear adds 2000 to two-digit years.
func normalizeYear(s string) int {
	year, _ := strconv.Atoi(s)
	if year < 100 {
		year += 2000
	}
	return year
}

func normalizeCentury(t time.Time) time.Time {
	if t.Year() < 100 {
		return t.AddDate(2000, 0, 0)
	}
	return t
}

// isoDate formats the components directly: day validation is range-based
// only, so a "31 Apr" candidate stays 31 Apr instead of rolling over.
func isoDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
