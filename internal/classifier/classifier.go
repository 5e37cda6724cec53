// Package classifier converts canonical statement rows into typed candidate
// transactions. Rows that cannot produce a valid candidate (unparseable
// date, non-positive amount, empty description) are silently dropped and
// reported only through the returned summary counts.
package classifier

import (
	"strings"

	"kiyotrack/struk-csv/internal/amountutils"
	"kiyotrack/struk-csv/internal/categorizer"
	"kiyotrack/struk-csv/internal/dateutils"
	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"

	"github.com/shopspring/decimal"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Summary counts the outcome of one classification run.
type Summary struct {
	Candidates int
	Skipped    int
}

// Classify iterates the rows after the header row and emits one candidate
// per classifiable row. It is stateless and deterministic: running it twice
// over the same input yields identical output.
func Classify(rows [][]string, columns models.ColumnMap) ([]models.CandidateTransaction, Summary) {
	var candidates []models.CandidateTransaction
	var summary Summary

	for i := columns.Header + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		candidate, ok := classifyRow(row, columns)
		if !ok {
			summary.Skipped++
			log.WithField(logging.FieldRow, i).Debug("Row skipped during classification")
			continue
		}
		candidates = append(candidates, candidate)
		summary.Candidates++
	}

	log.WithFields(
		logging.Field{Key: logging.FieldCount, Value: summary.Candidates},
		logging.Field{Key: "skipped", Value: summary.Skipped},
	).Info("Classified statement rows")

	return candidates, summary
}

func classifyRow(row []string, columns models.ColumnMap) (models.CandidateTransaction, bool) {
	date, ok := parseRowDate(cell(row, columns.Date))
	if !ok {
		return models.CandidateTransaction{}, false
	}

	description := strings.TrimSpace(cell(row, columns.Description))
	if description == "" {
		// A transaction without a description is unusable for duplicate
		// detection and review.
		return models.CandidateTransaction{}, false
	}

	amount, txType, ok := resolveAmount(row, columns)
	if !ok || amount.Sign() <= 0 {
		return models.CandidateTransaction{}, false
	}

	return models.CandidateTransaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txType,
		Category:    categorizer.SuggestCategory(description, txType),
		Raw:         append([]string{}, row...),
	}, true
}

// resolveAmount applies the two amount strategies in priority order: a
// debit/credit column pair decides both magnitude and direction; otherwise a
// single combined mutation column is used, with a CR marker selecting income
// and expense as the default direction.
func resolveAmount(row []string, columns models.ColumnMap) (decimal.Decimal, models.TransactionType, bool) {
	if columns.HasSplitAmounts() {
		if debit, ok := amountutils.ParseMagnitude(cell(row, columns.Debit)); ok && debit.Sign() > 0 {
			return debit, models.TypeExpense, true
		}
		if credit, ok := amountutils.ParseMagnitude(cell(row, columns.Credit)); ok && credit.Sign() > 0 {
			return credit, models.TypeIncome, true
		}
		return decimal.Zero, models.TypeExpense, false
	}

	if columns.Amount >= 0 {
		raw := cell(row, columns.Amount)
		amount, ok := amountutils.ParseMagnitude(raw)
		if !ok {
			return decimal.Zero, models.TypeExpense, false
		}
		txType := models.TypeExpense
		if strings.Contains(strings.ToUpper(raw), "CR") {
			txType = models.TypeIncome
		}
		return amount, txType, true
	}

	return decimal.Zero, models.TypeExpense, false
}

func parseRowDate(raw string) (string, bool) {
	t, err := dateutils.ParseStatementDate(raw)
	if err != nil {
		return "", false
	}
	return dateutils.ToISO(t), true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
