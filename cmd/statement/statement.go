// Package statement handles bank statement conversion commands
package statement

import (
	"context"

	cmdcommon "kiyotrack/struk-csv/cmd/common"
	"kiyotrack/struk-csv/cmd/root"
	"kiyotrack/struk-csv/internal/dupguard"
	"kiyotrack/struk-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the statement command
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "Convert a bank statement export to candidate transactions",
	Long: `Convert an XLSX or CSV bank statement export into candidate transactions.

The statement is read from the first sheet, the header row and columns are
detected automatically, and each data row becomes a candidate transaction.
Rows without a usable date, amount or description are skipped. When an import
ledger is configured, presumed duplicates are dropped from the output.`,
	Run: statementFunc,
}

var (
	accountID    string
	markImported bool
)

func init() {
	Cmd.Flags().StringVarP(&accountID, "account", "a", "", "Account ID to stamp on candidates (default from config)")
	Cmd.Flags().BoolVar(&markImported, "mark-imported", false, "Record written candidates in the import ledger")
}

func statementFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	log.Info("Statement command called")

	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	if input == "" || output == "" {
		log.Fatal("Input and output files must be specified")
	}

	opts := cmdcommon.StatementOptions{
		AccountID:    accountID,
		MarkImported: markImported,
	}
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
		opts.Ledger = ledger
	} else if markImported {
		log.Fatal("--mark-imported requires import.ledger_path to be configured")
	}

	result, err := cmdcommon.ConvertStatement(context.Background(), input, output, opts, log)
	if err != nil {
		log.WithError(err).Fatal("Statement conversion failed")
	}

	log.WithFields(
		logging.Field{Key: logging.FieldBank, Value: result.Bank},
		logging.Field{Key: logging.FieldCount, Value: result.Candidates},
		logging.Field{Key: "skipped", Value: result.Skipped},
		logging.Field{Key: "duplicates", Value: result.Duplicates},
	).Info("Statement conversion completed successfully!")
}
