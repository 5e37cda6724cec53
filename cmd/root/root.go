// Package root contains the root command for the application
package root

import (
	"kiyotrack/struk-csv/internal/categorizer"
	"kiyotrack/struk-csv/internal/classifier"
	"kiyotrack/struk-csv/internal/common"
	"kiyotrack/struk-csv/internal/config"
	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/statementreader"
	"kiyotrack/struk-csv/internal/store"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg is the loaded application configuration, available to all
	// subcommands after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "struk-csv",
		Short: "A CLI tool to extract candidate transactions from receipts and bank statements.",
		Long: `struk-csv reads receipt images and Indonesian bank or e-wallet statement
exports and produces candidate transactions in CSV format for review.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to struk-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Failed to initialize configuration")
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Fan the configured logger out to every package-level logger.
			statementreader.SetLogger(Log)
			classifier.SetLogger(Log)
			categorizer.SetLogger(Log)
			common.SetLogger(Log)
			store.SetLogger(Log)

			if cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
		},
	}

	// SharedFlags holds the common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
