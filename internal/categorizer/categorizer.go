// Package categorizer suggests a category for a transaction description.
//
// The primary mechanism is an ordered keyword rule table, checked first
// match wins: rule order is part of the business logic and must stay
// visible. An optional AI strategy can refine descriptions the keyword
// table cannot place; it is advisory and never blocking.
package categorizer

import (
	"context"
	"strings"

	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Rule maps a category to the keywords that select it. Rules are evaluated
// in declaration order against the uppercased description.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// defaultIncomeRules cover the credit side of Indonesian statements.
var defaultIncomeRules = []Rule{
	{models.CategorySalary, []string{"GAJI", "SALARY", "PAYROLL", "UPAH", "THR"}},
	{models.CategoryInterest, []string{"BUNGA", "INTEREST"}},
	{models.CategoryTransferIn, []string{"TRANSFER", "TRF", "KIRIMAN"}},
}

// defaultExpenseRules cover the debit side. Specific merchant chains come
// before generic terms so the narrower rule wins.
var defaultExpenseRules = []Rule{
	{models.CategoryGroceries, []string{"INDOMARET", "ALFAMART", "ALFAMIDI", "SUPERINDO", "HYPERMART", "TRANSMART"}},
	{models.CategoryTransport, []string{"GOJEK", "GRAB", "MRT", "KRL", "TRANSJAKARTA", "PERTAMINA", "SPBU", "BENSIN", "PARKIR", "TOL"}},
	{models.CategoryOnlineShop, []string{"TOKOPEDIA", "SHOPEE", "LAZADA", "BUKALAPAK", "BLIBLI"}},
	{models.CategoryUtilities, []string{"PLN", "PDAM", "LISTRIK", "TELKOM", "INDIHOME", "BPJS", "PULSA", "WIFI"}},
	{models.CategoryWithdrawal, []string{"TARIK TUNAI", "ATM", "WITHDRAWAL"}},
	{models.CategoryInstallment, []string{"CICILAN", "ANGSURAN", "PINJAMAN", "KREDIT"}},
	{models.CategoryFood, []string{"MCD", "KFC", "RESTO", "WARUNG", "KOPI", "CAFE", "BAKERY"}},
	{models.CategoryHealth, []string{"APOTEK", "KIMIA FARMA", "RUMAH SAKIT", "KLINIK"}},
}

// SuggestCategory matches a description against the built-in rule tables
// for the given transaction direction. It always returns a category; when
// nothing matches, the fallback is "Lainnya".
func SuggestCategory(description string, txType models.TransactionType) string {
	rules := defaultExpenseRules
	if txType == models.TypeIncome {
		rules = defaultIncomeRules
	}
	if category, ok := matchRules(rules, description); ok {
		return category
	}
	return models.CategoryOther
}

func matchRules(rules []Rule, description string) (string, bool) {
	upper := strings.ToUpper(description)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(upper, keyword) {
				return rule.Category, true
			}
		}
	}
	return "", false
}

// RuleStore loads user-defined rule overrides.
type RuleStore interface {
	LoadRules() (income []Rule, expense []Rule, err error)
}

// Categorizer combines configurable keyword rules with an optional AI
// fallback strategy.
type Categorizer struct {
	incomeRules  []Rule
	expenseRules []Rule
	ai           Strategy
	logger       logging.Logger
}

// New creates a Categorizer. The store may be nil (built-in rules only);
// the AI strategy may be nil (keyword matching only). Store failures are
// logged and fall back to the built-in tables.
func New(store RuleStore, ai Strategy, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = log
	}
	c := &Categorizer{
		incomeRules:  defaultIncomeRules,
		expenseRules: defaultExpenseRules,
		ai:           ai,
		logger:       logger,
	}

	if store != nil {
		income, expense, err := store.LoadRules()
		if err != nil {
			logger.WithError(err).Warn("Failed to load category rules, using defaults")
		} else {
			if len(income) > 0 {
				c.incomeRules = income
			}
			if len(expense) > 0 {
				c.expenseRules = expense
			}
		}
	}

	return c
}

// Suggest returns a category for the description. The keyword rules decide
// first; only an unmatched description is offered to the AI strategy, and
// an AI failure degrades to the fallback category rather than surfacing.
func (c *Categorizer) Suggest(ctx context.Context, description string, txType models.TransactionType) string {
	rules := c.expenseRules
	if txType == models.TypeIncome {
		rules = c.incomeRules
	}
	if category, ok := matchRules(rules, description); ok {
		c.logger.WithFields(
			logging.Field{Key: logging.FieldCategory, Value: category},
			logging.Field{Key: "strategy", Value: "keyword"},
		).Debug("Categorized by keyword rule")
		return category
	}

	if c.ai != nil {
		category, ok, err := c.ai.Categorize(ctx, description, txType)
		if err != nil {
			c.logger.WithError(err).Warn("AI categorization failed, using fallback category")
		} else if ok {
			c.logger.WithFields(
				logging.Field{Key: logging.FieldCategory, Value: category},
				logging.Field{Key: "strategy", Value: c.ai.Name()},
			).Debug("Categorized by AI strategy")
			return category
		}
	}

	return models.CategoryOther
}
