package common

import (
	"os"
	"path/filepath"
	"testing"

	"kiyotrack/struk-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCandidates() []models.CandidateTransaction {
	return []models.CandidateTransaction{
		{
			Date:        "2025-05-09",
			Description: "Belanja harian",
			Amount:      decimal.NewFromInt(500000),
			Type:        models.TypeExpense,
			Category:    models.CategoryGroceries,
			AccountID:   "acc-1",
		},
		{
			Date:        "2025-05-10",
			Description: "GAJI MEI",
			Amount:      decimal.NewFromInt(12000000),
			Type:        models.TypeIncome,
			Category:    models.CategorySalary,
			AccountID:   "acc-1",
		},
	}
}

func TestWriteCandidatesToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "candidates.csv")

	err := WriteCandidatesToCSV(sampleCandidates(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Date,Description,Amount,Type,Category,Account")
	assert.Contains(t, content, "2025-05-09,Belanja harian,500000,expense,Belanja,acc-1")
	assert.Contains(t, content, "2025-05-10,GAJI MEI,12000000,income,Gaji,acc-1")
}

func TestWriteCandidatesToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	// An empty (non-nil) slice writes just the header row.
	err := WriteCandidatesToCSV([]models.CandidateTransaction{}, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date")
}

func TestWriteCandidatesToCSVNil(t *testing.T) {
	err := WriteCandidatesToCSV(nil, filepath.Join(t.TempDir(), "nil.csv"))
	assert.Error(t, err)
}

func TestWriteCandidatesToCSVDelimiter(t *testing.T) {
	original := Delimiter
	defer SetDelimiter(original)
	SetDelimiter(';')

	path := filepath.Join(t.TempDir(), "semicolon.csv")
	require.NoError(t, WriteCandidatesToCSV(sampleCandidates(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-05-09;Belanja harian;500000;expense")
}
