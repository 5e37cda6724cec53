// Package common provides shared CSV output for the receipt and statement
// pipelines.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"

	"github.com/gocarina/gocsv"
)

var log = logging.GetLogger()

// Delimiter is the output CSV delimiter - configurable via config or the
// CSV_DELIMITER environment variable.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		// Use first rune only
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return // Don't change the logger if nil is passed
	}
	log = logger
}

// WriteCandidatesToCSV writes candidate transactions to a CSV file in the
// standard output format. Both the receipt and the statement pipelines
// funnel through this function so the output stays uniform.
func WriteCandidatesToCSV(candidates []models.CandidateTransaction, csvFile string) error {
	if candidates == nil {
		return fmt.Errorf("cannot write nil candidates to CSV")
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(candidates)},
	).Info("Writing candidate transactions to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	// Amounts are written with two decimal places regardless of how they
	// were parsed.
	for i := range candidates {
		candidates[i].Amount = candidates[i].Amount.Round(2)
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(candidates, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal candidates to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(candidates)},
	).Info("Successfully wrote candidate transactions to CSV file")

	return nil
}
