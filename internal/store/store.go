// Package store loads user-editable YAML data files: category keyword
// rules and the account list. Files are optional; a missing file is never
// an error so the tool stays usable out of the box.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"kiyotrack/struk-csv/internal/categorizer"
	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"

	"gopkg.in/yaml.v3"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileStore resolves and reads the YAML data files. Empty file names fall
// back to the defaults (rules.yaml, accounts.yaml).
type FileStore struct {
	RulesFile    string
	AccountsFile string
}

// NewFileStore creates a store over the given file names.
func NewFileStore(rulesFile, accountsFile string) *FileStore {
	return &FileStore{
		RulesFile:    rulesFile,
		AccountsFile: accountsFile,
	}
}

// rulesFile is the on-disk shape of the category rules document.
type rulesFile struct {
	Income  []categorizer.Rule `yaml:"income"`
	Expense []categorizer.Rule `yaml:"expense"`
}

// accountsFile is the on-disk shape of the accounts document.
type accountsFile struct {
	Accounts []models.Account `yaml:"accounts"`
}

// FindConfigFile looks for a data file in the standard locations: the
// working directory, ./config/, and ~/.config/struk-csv/.
func (s *FileStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "struk-csv", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules reads the category rule overrides. A missing file returns empty
// slices, which keeps the built-in rule tables in effect.
func (s *FileStore) LoadRules() ([]categorizer.Rule, []categorizer.Rule, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = "rules.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField(logging.FieldFile, filename).Debug("Rules file not found, using built-in rules")
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("resolving rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading rules file: %w", err)
	}

	var doc rulesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing rules file: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(doc.Income) + len(doc.Expense)},
	).Debug("Loaded category rules")
	return doc.Income, doc.Expense, nil
}

// LoadAccounts reads the account list used for provider suggestions. A
// missing file returns an empty list.
func (s *FileStore) LoadAccounts() ([]models.Account, error) {
	filename := s.AccountsFile
	if filename == "" {
		filename = "accounts.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField(logging.FieldFile, filename).Debug("Accounts file not found")
			return []models.Account{}, nil
		}
		return nil, fmt.Errorf("resolving accounts file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading accounts file: %w", err)
	}

	var doc accountsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing accounts file: %w", err)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(doc.Accounts)},
	).Debug("Loaded accounts")
	return doc.Accounts, nil
}

var _ categorizer.RuleStore = (*FileStore)(nil)
