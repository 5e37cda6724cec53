// Package provider identifies Indonesian banks and e-wallets from free text
// and suggests a matching account for a detected provider.
//
// Detection is an ordered first-match-wins rule table. Catalog order is
// business logic, not an implementation detail: more specific names must
// come before shorter ones so that a substring pattern cannot shadow a more
// specific provider, and reordering entries changes results for texts that
// mention several providers.
package provider

import (
	"regexp"
	"strings"

	"kiyotrack/struk-csv/internal/models"
)

// Pattern is one entry in the detection catalog.
type Pattern struct {
	// Name is the display name returned on a match.
	Name string
	// Matcher is applied case-insensitively anywhere in the text.
	Matcher *regexp.Regexp
	// Keywords are used for account suggestion, not for detection.
	Keywords []string
}

// Catalog is the ordered provider rule table. Banks are listed before
// e-wallets, so a transfer slip mentioning both ("Transfer via GoPay ke
// BCA") resolves to the bank.
var Catalog = []Pattern{
	{"Bank Syariah Indonesia", re(`\bBSI\b|BANK\s+SYARIAH\s+INDONESIA`), []string{"bsi", "syariah"}},
	{"CIMB Niaga", re(`\bCIMB(\s+NIAGA)?\b`), []string{"cimb", "niaga", "octo"}},
	{"Bank Danamon", re(`\bDANAMON\b`), []string{"danamon"}},
	{"Bank Permata", re(`\bPERMATA\s*(BANK)?\b`), []string{"permata"}},
	{"Bank Mandiri", re(`\bMANDIRI\b|LIVIN`), []string{"mandiri", "livin"}},
	{"BCA", re(`\bBCA\b|KLIKBCA|MYBCA`), []string{"bca", "tahapan"}},
	{"BRI", re(`\bBRI\b|\bBRIMO\b`), []string{"bri", "brimo", "simpedes"}},
	{"BNI", re(`\bBNI\b`), []string{"bni", "taplus"}},
	{"BTN", re(`\bBTN\b`), []string{"btn"}},
	{"Maybank", re(`\bMAYBANK\b`), []string{"maybank"}},
	{"OCBC", re(`\bOCBC(\s+NISP)?\b`), []string{"ocbc", "nisp"}},
	{"Jenius", re(`\bJENIUS\b`), []string{"jenius", "btpn"}},
	{"Bank Jago", re(`\bJAGO\b`), []string{"jago"}},
	{"SeaBank", re(`\bSEABANK\b`), []string{"seabank"}},
	{"GoPay", re(`\bGO\s?-?\s?PAY\b`), []string{"gopay", "gojek"}},
	{"OVO", re(`\bOVO\b`), []string{"ovo"}},
	{"ShopeePay", re(`\bSHOPEE\s?-?\s?PAY\b`), []string{"shopeepay", "shopee"}},
	{"LinkAja", re(`\bLINK\s?AJA\b`), []string{"linkaja"}},
	{"DANA", re(`\bDANA\b`), []string{"dana"}},
	{"Flip", re(`\bFLIP\b`), []string{"flip"}},
}

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

// Detect returns the display name of the first catalog entry whose pattern
// matches anywhere in the text, or "" when nothing matches. There is no
// scoring and no multi-match resolution.
func Detect(text string) string {
	for _, p := range Catalog {
		if p.Matcher.MatchString(text) {
			return p.Name
		}
	}
	return ""
}

// SuggestAccount picks the account that best matches a detected provider
// name. It first checks the provider's keyword list against each account's
// display name, then falls back to a direct substring match of the provider
// name itself. The first account satisfying either test wins; ties resolve
// in input list order.
func SuggestAccount(providerName string, accounts []models.Account) (models.Account, bool) {
	if providerName == "" || len(accounts) == 0 {
		return models.Account{}, false
	}

	var keywords []string
	for _, p := range Catalog {
		if p.Name == providerName {
			keywords = p.Keywords
			break
		}
	}

	for _, account := range accounts {
		name := strings.ToLower(account.Name)
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				return account, true
			}
		}
		if strings.Contains(name, strings.ToLower(providerName)) {
			return account, true
		}
	}

	return models.Account{}, false
}
