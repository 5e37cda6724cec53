// Package categorize handles transaction categorization commands
package categorize

import (
	"context"
	"time"

	"kiyotrack/struk-csv/cmd/root"
	"kiyotrack/struk-csv/internal/categorizer"
	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Suggest a category for a transaction description",
	Long: `Suggest a category for a transaction description using the keyword rule
tables, with an optional Gemini fallback for descriptions no rule matches.`,
	Run: categorizeFunc,
}

var (
	description string
	txTypeFlag  string
)

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&txTypeFlag, "type", "t", "expense", "Transaction type: income or expense")
	if err := Cmd.MarkFlagRequired("description"); err != nil {
		panic(err)
	}
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	log.Info("Categorize command called")

	txType := models.TypeExpense
	if txTypeFlag == string(models.TypeIncome) {
		txType = models.TypeIncome
	}

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
			defer func() {
				if err := strategy.Close(); err != nil {
					log.WithError(err).Warn("Failed to close AI client")
				}
			}()
			ai = strategy
		}
	}

	fileStore := store.NewFileStore(root.Cfg.Import.RulesFile, root.Cfg.Import.AccountsFile)
	c := categorizer.New(fileStore, ai, log)
	category := c.Suggest(context.Background(), description, txType)

	log.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: "type", Value: string(txType)},
	).Info("Suggested category")
}
