// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"kiyotrack/struk-csv/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	OCR struct {
		Language string `mapstructure:"language" yaml:"language"`
		Progress bool   `mapstructure:"progress" yaml:"progress"`
	} `mapstructure:"ocr" yaml:"ocr"`

	Import struct {
		LedgerPath     string `mapstructure:"ledger_path" yaml:"ledger_path"`
		DefaultAccount string `mapstructure:"default_account" yaml:"default_account"`
		RulesFile      string `mapstructure:"rules_file" yaml:"rules_file"`
		AccountsFile   string `mapstructure:"accounts_file" yaml:"accounts_file"`
	} `mapstructure:"import" yaml:"import"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then STRUK_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.struk-csv")
	v.AddConfigPath(".struk-csv")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STRUK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key is always read from the unprefixed environment variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("ocr.language", "ind+eng")
	v.SetDefault("ocr.progress", false)

	v.SetDefault("import.ledger_path", "")
	v.SetDefault("import.default_account", "")
	v.SetDefault("import.rules_file", "")
	v.SetDefault("import.accounts_file", "")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.OCR.Language == "" {
		return fmt.Errorf("ocr.language must not be empty")
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config
// struct and installs it as the package defaults everywhere.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	logger := logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), config.Log.Format)
	logging.SetDefaultLogger(logger)
	return logger
}
