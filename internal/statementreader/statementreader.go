// Package statementreader loads bank-statement spreadsheets and resolves
// their heterogeneous layouts into a canonical column map.
//
// Reading a file is the one step of the import pipeline that may fail hard:
// a garbled workbook cannot be degraded gracefully. Header detection and
// column resolution never fail; missing columns are simply left unset.
package statementreader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// headerScanRows caps how many leading rows are examined for a header row.
const headerScanRows = 10

// headerTokens mark a row as the header row when any of them appears in a
// cell.
var headerTokens = []string{
	"TANGGAL", "DATE", "TGL", "KETERANGAN", "DESCRIPTION", "DEBIT", "KREDIT", "CREDIT",
}

// statementBanks is the ordered catalog used to identify the issuing bank
// from the whole sheet. First match wins; UNKNOWN is a valid outcome.
var statementBanks = []struct {
	Name    string
	Keyword string
}{
	{"BCA", "BCA"},
	{"MANDIRI", "MANDIRI"},
	{"BRI", "BRI"},
	{"BNI", "BNI"},
	{"CIMB", "CIMB"},
	{"DANAMON", "DANAMON"},
	{"BSI", "BSI"},
	{"PERMATA", "PERMATA"},
}

// Read loads a statement file into a 2-D cell array. For spreadsheets only
// the first sheet is used; empty cells default to "". CSV exports are
// accepted for convenience. Unreadable input yields an UnreadableFileError.
func Read(path string) ([][]string, error) {
	log.WithField(logging.FieldFile, path).Info("Reading statement file")

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSV(path)
	}
	return readWorkbook(path)
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &parsererror.UnreadableFileError{Path: path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &parsererror.UnreadableFileError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &parsererror.UnreadableFileError{Path: path, Err: err}
	}

	log.WithFields(
		logging.Field{Key: "sheet", Value: sheets[0]},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
	).Debug("Loaded statement sheet")
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &parsererror.UnreadableFileError{Path: path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.UnreadableFileError{Path: path, Err: err}
	}
	return rows, nil
}

// DetectColumns scans at most the first 10 rows for a header row and
// resolves column indices from it. When no row carries a header token, row 0
// is assumed to be the header; this is a deliberate permissive fallback, not
// an error.
func DetectColumns(rows [][]string) models.ColumnMap {
	columns := models.NewColumnMap()
	if len(rows) == 0 {
		return columns
	}

	headerIdx := 0
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

scan:
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			upper := strings.ToUpper(cell)
			for _, token := range headerTokens {
				if strings.Contains(upper, token) {
					headerIdx = i
					break scan
				}
			}
		}
	}

	columns.Header = headerIdx
	for idx, cell := range rows[headerIdx] {
		upper := strings.ToUpper(strings.TrimSpace(cell))
		switch {
		case columns.Date < 0 && (strings.Contains(upper, "TANGGAL") || strings.Contains(upper, "TGL") || strings.Contains(upper, "DATE")):
			columns.Date = idx
		case columns.Description < 0 && (strings.Contains(upper, "KETERANGAN") || strings.Contains(upper, "DESCRIPTION") || strings.Contains(upper, "URAIAN") || strings.Contains(upper, "TRANSAKSI")):
			columns.Description = idx
		case columns.Debit < 0 && strings.Contains(upper, "DEBIT"):
			columns.Debit = idx
		case columns.Credit < 0 && (strings.Contains(upper, "KREDIT") || strings.Contains(upper, "CREDIT")):
			columns.Credit = idx
		case columns.Amount < 0 && (strings.Contains(upper, "MUTASI") || strings.Contains(upper, "AMOUNT") || strings.Contains(upper, "JUMLAH")):
			columns.Amount = idx
		}
	}

	log.WithFields(
		logging.Field{Key: "header_row", Value: columns.Header},
		logging.Field{Key: "date", Value: columns.Date},
		logging.Field{Key: "description", Value: columns.Description},
		logging.Field{Key: "debit", Value: columns.Debit},
		logging.Field{Key: "credit", Value: columns.Credit},
		logging.Field{Key: "amount", Value: columns.Amount},
	).Debug("Resolved statement columns")

	return columns
}

// IdentifyBank concatenates every cell of the sheet and tests the statement
// bank catalog in order. The first match wins; UNKNOWN is returned when no
// bank keyword appears.
func IdentifyBank(rows [][]string) string {
	var sb strings.Builder
	for _, row := range rows {
		for _, cell := range row {
			sb.WriteString(cell)
			sb.WriteByte(' ')
		}
	}
	haystack := strings.ToUpper(sb.String())

	for _, bank := range statementBanks {
		if strings.Contains(haystack, bank.Keyword) {
			return bank.Name
		}
	}
	return models.BankUnknown
}
