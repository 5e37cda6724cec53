// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"

	"kiyotrack/struk-csv/internal/classifier"
	"kiyotrack/struk-csv/internal/common"
	"kiyotrack/struk-csv/internal/dupguard"
	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/statementreader"
)

// StatementOptions configure one statement conversion.
type StatementOptions struct {
	// AccountID is stamped on every candidate and used for duplicate
	// matching.
	AccountID string
	// Guard is the duplicate check; nil disables duplicate filtering.
	Guard *dupguard.Guard
	// Ledger records candidates as imported when MarkImported is set. It may
	// be nil.
	Ledger *dupguard.BoltLedger
	// MarkImported records every written candidate in the ledger.
	MarkImported bool
}

// StatementResult summarizes one statement conversion.
type StatementResult struct {
	Bank       string
	Candidates int
	Skipped    int
	Duplicates int
}

// ConvertStatement runs the full statement pipeline for one file: read the
// sheet, resolve columns, identify the issuing bank, classify rows, filter
// duplicates and write the surviving candidates to CSV.
func ConvertStatement(ctx context.Context, inputFile, outputFile string, opts StatementOptions, log logging.Logger) (StatementResult, error) {
	rows, err := statementreader.Read(inputFile)
	if err != nil {
		return StatementResult{}, err
	}

	columns := statementreader.DetectColumns(rows)
	bank := statementreader.IdentifyBank(rows)
	log.WithField(logging.FieldBank, bank).Info("Identified statement bank")

	candidates, summary := classifier.Classify(rows, columns)

	result := StatementResult{
		Bank:    bank,
		Skipped: summary.Skipped,
	}

	kept := make([]models.CandidateTransaction, 0, len(candidates))
	for _, candidate := range candidates {
		candidate.AccountID = opts.AccountID
		if opts.Guard != nil && opts.Guard.IsDuplicate(ctx, candidate.Date, candidate.Amount, candidate.AccountID) {
			result.Duplicates++
			log.WithFields(
				logging.Field{Key: "date", Value: candidate.Date},
				logging.Field{Key: logging.FieldAmount, Value: candidate.Amount.String()},
			).Debug("Dropping presumed duplicate")
			continue
		}
		kept = append(kept, candidate)
	}
	result.Candidates = len(kept)

	if err := common.WriteCandidatesToCSV(kept, outputFile); err != nil {
		return result, err
	}

	if opts.MarkImported && opts.Ledger != nil {
		for _, candidate := range kept {
			if err := opts.Ledger.Record(ctx, candidate); err != nil {
				return result, fmt.Errorf("recording imported transaction: %w", err)
			}
		}
		log.WithField(logging.FieldCount, len(kept)).Info("Recorded candidates in import ledger")
	}

	return result, nil
}
