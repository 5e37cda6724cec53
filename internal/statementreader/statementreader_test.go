package statementreader

import (
	"os"
	"path/filepath"
	"testing"

	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func writeTempXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "TANGGAL,KETERANGAN,DEBIT,KREDIT\n09/05/2025,Belanja harian,500000,\n")

	rows, err := Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"TANGGAL", "KETERANGAN", "DEBIT", "KREDIT"}, rows[0])
	assert.Equal(t, "Belanja harian", rows[1][1])
}

func TestReadCSVRaggedRows(t *testing.T) {
	// Bank exports frequently have ragged rows; the reader must not reject
	// them.
	path := writeTempCSV(t, "TANGGAL,KETERANGAN\n09/05/2025\n09/05/2025,a,b,c\n")

	rows, err := Read(path)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestReadXLSX(t *testing.T) {
	path := writeTempXLSX(t, [][]interface{}{
		{"Laporan Mutasi Rekening BCA"},
		{"TANGGAL", "KETERANGAN", "DEBIT", "KREDIT"},
		{"09/05/2025", "Belanja harian", "500000", ""},
	})

	rows, err := Read(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "TANGGAL", rows[1][0])
}

func TestReadUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0600))

	_, err := Read(path)
	require.Error(t, err)
	var unreadable *parsererror.UnreadableFileError
	assert.ErrorAs(t, err, &unreadable)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	var unreadable *parsererror.UnreadableFileError
	assert.ErrorAs(t, err, &unreadable)
}

func TestDetectColumns(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected models.ColumnMap
	}{
		{
			name: "header on first row",
			rows: [][]string{
				{"TANGGAL", "KETERANGAN", "DEBIT", "KREDIT"},
				{"09/05/2025", "Belanja", "500000", ""},
			},
			expected: models.ColumnMap{Header: 0, Date: 0, Description: 1, Debit: 2, Credit: 3, Amount: -1},
		},
		{
			name: "header after preamble",
			rows: [][]string{
				{"Laporan Mutasi Rekening"},
				{"Periode Mei 2025"},
				{"TGL", "URAIAN", "MUTASI"},
				{"09/05/2025", "Belanja", "500000"},
			},
			expected: models.ColumnMap{Header: 2, Date: 0, Description: 1, Debit: -1, Credit: -1, Amount: 2},
		},
		{
			name: "english headers",
			rows: [][]string{
				{"DATE", "DESCRIPTION", "AMOUNT"},
			},
			expected: models.ColumnMap{Header: 0, Date: 0, Description: 1, Debit: -1, Credit: -1, Amount: 2},
		},
		{
			name: "no header tokens falls back to row zero",
			rows: [][]string{
				{"09/05/2025", "Belanja", "500000"},
				{"10/05/2025", "Pulsa", "50000"},
			},
			expected: models.ColumnMap{Header: 0, Date: -1, Description: -1, Debit: -1, Credit: -1, Amount: -1},
		},
		{
			name:     "empty sheet",
			rows:     nil,
			expected: models.ColumnMap{Header: 0, Date: -1, Description: -1, Debit: -1, Credit: -1, Amount: -1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectColumns(tc.rows))
		})
	}
}

func TestDetectColumnsScanWindow(t *testing.T) {
	// A header row beyond the scan window is not found; row zero is assumed.
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = []string{"preamble"}
	}
	rows[11] = []string{"TANGGAL", "KETERANGAN"}

	columns := DetectColumns(rows)
	assert.Equal(t, 0, columns.Header)
	assert.Equal(t, -1, columns.Date)
}

func TestIdentifyBank(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected string
	}{
		{"BCA", [][]string{{"Laporan Mutasi"}, {"PT Bank Central Asia - BCA"}}, "BCA"},
		{"Mandiri", [][]string{{"MANDIRI e-statement"}}, "MANDIRI"},
		{"Keyword in any cell", [][]string{{"a", "b"}, {"c", "rekening bri"}}, "BRI"},
		{"First match wins", [][]string{{"BCA dan MANDIRI"}}, "BCA"},
		{"Unknown", [][]string{{"Rekening Koran"}}, models.BankUnknown},
		{"Empty", nil, models.BankUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IdentifyBank(tc.rows))
		})
	}
}
