package classifier

import (
	"testing"

	"kiyotrack/struk-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitColumns() models.ColumnMap {
	return models.ColumnMap{Header: 0, Date: 0, Description: 1, Debit: 2, Credit: 3, Amount: -1}
}

func combinedColumns() models.ColumnMap {
	return models.ColumnMap{Header: 0, Date: 0, Description: 1, Debit: -1, Credit: -1, Amount: 2}
}

func TestClassifySplitColumns(t *testing.T) {
	rows := [][]string{
		{"TANGGAL", "KETERANGAN", "DEBIT", "KREDIT"},
		{"09/05/2025", "Belanja harian", "500000", ""},
		{"10/05/2025", "GAJI MEI", "", "12.000.000"},
	}

	candidates, summary := Classify(rows, splitColumns())
	require.Len(t, candidates, 2)
	assert.Equal(t, 2, summary.Candidates)
	assert.Equal(t, 0, summary.Skipped)

	expense := candidates[0]
	assert.Equal(t, "2025-05-09", expense.Date)
	assert.Equal(t, "Belanja harian", expense.Description)
	assert.Equal(t, "500000", expense.Amount.String())
	assert.Equal(t, models.TypeExpense, expense.Type)
	assert.Equal(t, models.CategoryOther, expense.Category)
	assert.Equal(t, []string{"09/05/2025", "Belanja harian", "500000", ""}, expense.Raw)

	income := candidates[1]
	assert.Equal(t, "2025-05-10", income.Date)
	assert.Equal(t, models.TypeIncome, income.Type)
	assert.Equal(t, "12000000", income.Amount.String())
	assert.Equal(t, models.CategorySalary, income.Category)
}

func TestClassifyCombinedColumn(t *testing.T) {
	rows := [][]string{
		{"TANGGAL", "KETERANGAN", "MUTASI"},
		{"09/05/2025", "Belanja harian", "500.000"},
		{"10/05/2025", "Transfer masuk", "250.000 CR"},
	}

	candidates, _ := Classify(rows, combinedColumns())
	require.Len(t, candidates, 2)

	assert.Equal(t, models.TypeExpense, candidates[0].Type)
	assert.Equal(t, "500000", candidates[0].Amount.String())

	// The CR marker flips the direction to income.
	assert.Equal(t, models.TypeIncome, candidates[1].Type)
	assert.Equal(t, "250000", candidates[1].Amount.String())
}

func TestClassifyDropsUnusableRows(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"unparseable date", []string{"bukan tanggal", "Belanja", "500000", ""}},
		{"empty description", []string{"09/05/2025", "   ", "500000", ""}},
		{"zero amount", []string{"09/05/2025", "Belanja", "0", ""}},
		{"no amount at all", []string{"09/05/2025", "Belanja", "", ""}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := [][]string{
				{"TANGGAL", "KETERANGAN", "DEBIT", "KREDIT"},
				tc.row,
			}
			candidates, summary := Classify(rows, splitColumns())
			assert.Empty(t, candidates)
			assert.Equal(t, 1, summary.Skipped)
		})
	}
}

func TestClassifySkipsBlankRowsSilently(t *testing.T) {
	rows := [][]string{
		{"TANGGAL", "KETERANGAN", "DEBIT", "KREDIT"},
		{"", "", "", ""},
		{},
		{"09/05/2025", "Belanja", "500000", ""},
	}

	candidates, summary := Classify(rows, splitColumns())
	require.Len(t, candidates, 1)
	// Blank rows are structural, not data: they do not count as skipped.
	assert.Equal(t, 0, summary.Skipped)
}

func TestClassifyShortRows(t *testing.T) {
	// Rows shorter than the column map must not panic; missing cells read
	// as empty.
	rows := [][]string{
		{"TANGGAL", "KETERANGAN", "DEBIT", "KREDIT"},
		{"09/05/2025"},
	}

	candidates, summary := Classify(rows, splitColumns())
	assert.Empty(t, candidates)
	assert.Equal(t, 1, summary.Skipped)
}

func TestClassifyIsDeterministic(t *testing.T) {
	rows := [][]string{
		{"TANGGAL", "KETERANGAN", "DEBIT", "KREDIT"},
		{"09/05/2025", "Belanja harian", "500000", ""},
		{"10/05/2025", "GAJI MEI", "", "12.000.000"},
	}

	first, firstSummary := Classify(rows, splitColumns())
	second, secondSummary := Classify(rows, splitColumns())
	assert.Equal(t, first, second)
	assert.Equal(t, firstSummary, secondSummary)
}

func TestClassifyHeaderOffset(t *testing.T) {
	columns := models.ColumnMap{Header: 2, Date: 0, Description: 1, Debit: 2, Credit: 3, Amount: -1}
	rows := [][]string{
		{"Laporan Mutasi Rekening"},
		{"Periode Mei 2025"},
		{"TGL", "URAIAN", "DEBIT", "KREDIT"},
		{"09/05/2025", "Belanja", "500000", ""},
	}

	candidates, _ := Classify(rows, columns)
	require.Len(t, candidates, 1)
	assert.Equal(t, "2025-05-09", candidates[0].Date)
}
