// Package batch handles batch processing of statement files
package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	cmdcommon "kiyotrack/struk-csv/cmd/common"
	"kiyotrack/struk-csv/cmd/root"
	"kiyotrack/struk-csv/internal/dupguard"
	"kiyotrack/struk-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch convert statement files from a directory",
	Long: `Batch convert every XLSX and CSV statement export in the input directory.

Each file is converted independently; a file that cannot be read is logged
and skipped so the remaining files still convert.

Example:
  struk-csv batch -i statements/ -o candidates/`,
	Run: batchFunc,
}

var accountID string

func init() {
	Cmd.Flags().StringVarP(&accountID, "account", "a", "", "Account ID to stamp on candidates (default from config)")
}

func batchFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	log.Info("Batch command called")

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		log.Fatal("Input and output directories must be specified")
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		log.WithError(err).Fatal("Failed to create output directory")
	}

	opts := cmdcommon.StatementOptions{AccountID: accountID}
	if opts.AccountID == "" {
		opts.AccountID = root.Cfg.Import.DefaultAccount
	}

	if ledgerPath := root.Cfg.Import.LedgerPath; ledgerPath != "" {
		ledger, err := dupguard.OpenLedger(ledgerPath)
		if err != nil {
			log.WithError(err).Fatal("Failed to open import ledger")
		}
		defer func() {
			if err := ledger.Close(); err != nil {
				log.WithError(err).Warn("Failed to close import ledger")
			}
		}()
		opts.Guard = dupguard.New(ledger, log)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		log.WithError(err).Fatal("Failed to read input directory")
	}

	converted := 0
	for _, entry := range entries {
		if entry.IsDir() || !isStatementFile(entry.Name()) {
			continue
		}

		inputFile := filepath.Join(inputDir, entry.Name())
		outputFile := filepath.Join(outputDir, outputName(entry.Name()))

		result, err := cmdcommon.ConvertStatement(context.Background(), inputFile, outputFile, opts, log)
		if err != nil {
			log.WithError(err).WithField(logging.FieldFile, entry.Name()).Error("Skipping unconvertible file")
			continue
		}

		log.WithFields(
			logging.Field{Key: logging.FieldFile, Value: entry.Name()},
			logging.Field{Key: logging.FieldBank, Value: result.Bank},
			logging.Field{Key: logging.FieldCount, Value: result.Candidates},
		).Info("Converted statement file")
		converted++
	}

	if converted == 0 {
		log.Warn("No supported statement files found in input directory")
		return
	}
	log.WithField(logging.FieldCount, converted).Info("Batch processing completed")
}

func isStatementFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls", ".csv":
		return true
	}
	return false
}

func outputName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + ".csv"
}
