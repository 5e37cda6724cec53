// Package receipt handles receipt scanning commands
package receipt

import (
	"context"
	"fmt"
	"os"
	"time"

	"kiyotrack/struk-csv/cmd/root"
	"kiyotrack/struk-csv/internal/categorizer"
	"kiyotrack/struk-csv/internal/common"
	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/recognizer"
	"kiyotrack/struk-csv/internal/session"
	"kiyotrack/struk-csv/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the receipt command
var Cmd = &cobra.Command{
	Use:   "receipt",
	Short: "Scan a receipt image into a candidate transaction",
	Long: `Scan a receipt photo, gallery image or PDF and extract a candidate
transaction from the recognized text.

Extraction is best effort: a receipt where the total or date cannot be read
still produces a candidate with the fields that could be extracted. Only a
failed text recognition aborts the scan.`,
	Run: receiptFunc,
}

var contentType string

func init() {
	Cmd.Flags().StringVarP(&contentType, "type", "t", "", "MIME type of the input (default guessed from content)")
}

func receiptFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	log.Info("Receipt command called")

	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	if input == "" || output == "" {
		log.Fatal("Input and output files must be specified")
	}

	image, err := os.ReadFile(input) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		log.WithError(err).Fatal("Failed to read input image")
	}

	fileStore := store.NewFileStore(root.Cfg.Import.RulesFile, root.Cfg.Import.AccountsFile)
	accounts, err := fileStore.LoadAccounts()
	if err != nil {
		log.WithError(err).Warn("Failed to load accounts, provider suggestions disabled")
	}

	opts := []recognizer.TesseractOption{
		recognizer.WithLanguage(root.Cfg.OCR.Language),
		recognizer.WithLogger(log),
	}
	if root.Cfg.OCR.Progress {
		opts = append(opts, recognizer.WithProgress(func(percent int) {
			fmt.Printf("\rRecognizing... %d%%", percent)
			if percent >= 100 {
				fmt.Println()
			}
		}))
	}

	scanner := session.NewScanner(recognizer.NewTesseract(opts...), accounts, log)
	result, err := scanner.Scan(context.Background(), image, detectContentType(image, contentType))
	if err != nil {
		log.WithError(err).Fatal("Text recognition failed")
	}

	candidate := result.Receipt.ToCandidate()
	if result.HasSuggestion {
		candidate.AccountID = result.SuggestedAccount.ID
	} else {
		candidate.AccountID = root.Cfg.Import.DefaultAccount
	}
	candidate.Category = buildCategorizer(fileStore, log).Suggest(
		context.Background(), candidate.Description, candidate.Type)

	if !result.Receipt.TotalFound {
		log.Warn("No total amount could be extracted, review the candidate before importing")
	}

	if err := common.WriteCandidatesToCSV([]models.CandidateTransaction{candidate}, output); err != nil {
		log.WithError(err).Fatal("Failed to write candidate CSV")
	}

	log.WithFields(
		logging.Field{Key: logging.FieldProvider, Value: result.Receipt.Provider},
		logging.Field{Key: logging.FieldCategory, Value: candidate.Category},
		logging.Field{Key: logging.FieldAmount, Value: candidate.Amount.String()},
	).Info("Receipt scan completed successfully!")
}

// buildCategorizer wires the keyword categorizer with the optional Gemini
// fallback.
func buildCategorizer(fileStore *store.FileStore, log logging.Logger) *categorizer.Categorizer {
	var ai categorizer.Strategy
	if root.Cfg.AI.Enabled {
		strategy, err := categorizer.NewGeminiStrategy(
			context.Background(),
			root.Cfg.AI.APIKey,
			root.Cfg.AI.Model,
			time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second,
		)
		if err != nil {
			log.WithError(err).Warn("AI categorization unavailable")
		} else {
			ai = strategy
		}
	}
	return categorizer.New(fileStore, ai, log)
}

// detectContentType picks the MIME type: an explicit flag wins, otherwise a
// PDF magic-byte check, otherwise the recognizer's JPEG default applies.
func detectContentType(data []byte, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if len(data) >= 4 && string(data[:4]) == "%PDF" {
		return "application/pdf"
	}
	return ""
}
