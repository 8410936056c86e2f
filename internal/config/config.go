// =============================================================================
// Bill Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading the main application configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults
//   2. Main Config (config.yaml): store locations, invoice prefix, logging,
//      company header printed on rendered bills
//   3. Environment variables, optionally seeded from a .env file:
//        BILLING_DATA_DIR, BILLING_REPORTS_DIR,
//        BILLING_INVOICE_PREFIX, BILLING_LOG_LEVEL
//
// A missing config file is not an error (defaults are used). A config file
// that exists but cannot be parsed is.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// STORE SETTINGS
	// =========================================================================

	// DataDir is the directory holding the ledger, counter and transaction
	// files. Relative store file names are resolved against it.
	// Default: "./data"
	DataDir string `yaml:"data_dir"`

	// LedgerFile is the JSON document of saved bills.
	// Default: "bills.json"
	LedgerFile string `yaml:"ledger_file"`

	// CounterFile holds the invoice counter record.
	// Default: "invoice_counter.json"
	CounterFile string `yaml:"counter_file"`

	// TransactionsFile is the per-line-item xlsx ledger.
	// Default: "transactions.xlsx"
	TransactionsFile string `yaml:"transactions_file"`

	// ReportsDir is where monthly export workbooks are written.
	// Default: "./monthly_reports"
	ReportsDir string `yaml:"reports_dir"`

	// =========================================================================
	// INVOICE SETTINGS
	// =========================================================================

	// InvoicePrefix is placed before the zero-padded counter: "<PREFIX>-0001".
	// Default: "SS"
	InvoicePrefix string `yaml:"invoice_prefix"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the path to the application log file. Empty means stderr.
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// COMPANY SETTINGS
	// =========================================================================

	// Company is printed in the header of rendered bills.
	Company Company `yaml:"company"`
}

// Company describes the business issuing the invoices.
type Company struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	GSTIN   string `yaml:"gstin"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

// =============================================================================
// DERIVED PATHS
// =============================================================================

// LedgerPath returns the resolved path of the ledger file.
func (c *MainConfig) LedgerPath() string { return c.resolve(c.LedgerFile) }

// CounterPath returns the resolved path of the invoice counter file.
func (c *MainConfig) CounterPath() string { return c.resolve(c.CounterFile) }

// TransactionsPath returns the resolved path of the transaction workbook.
func (c *MainConfig) TransactionsPath() string { return c.resolve(c.TransactionsFile) }

func (c *MainConfig) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the main configuration from a YAML file, applies
// environment overrides and defaults, and validates the result.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file exists but cannot be read or parsed, or if the
//     configured directories cannot be created.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&config); err != nil {
		return nil, err
	}
	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyEnvOverrides reads BILLING_* variables. A .env file in the working
// directory is loaded first if present; real environment variables win over
// it. A missing .env is fine; one that cannot be parsed is an error.
func applyEnvOverrides(config *MainConfig) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if v := os.Getenv("BILLING_DATA_DIR"); v != "" {
		config.DataDir = v
	}
	if v := os.Getenv("BILLING_REPORTS_DIR"); v != "" {
		config.ReportsDir = v
	}
	if v := os.Getenv("BILLING_INVOICE_PREFIX"); v != "" {
		config.InvoicePrefix = v
	}
	if v := os.Getenv("BILLING_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	return nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.DataDir == "" {
		config.DataDir = "./data"
	}
	if config.LedgerFile == "" {
		config.LedgerFile = "bills.json"
	}
	if config.CounterFile == "" {
		config.CounterFile = "invoice_counter.json"
	}
	if config.TransactionsFile == "" {
		config.TransactionsFile = "transactions.xlsx"
	}
	if config.ReportsDir == "" {
		config.ReportsDir = "./monthly_reports"
	}
	if config.InvoicePrefix == "" {
		config.InvoicePrefix = "SS"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Company.Name == "" {
		config.Company.Name = "SS EQUIPMENTS"
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if strings.ContainsAny(config.InvoicePrefix, `/\ `) {
		return fmt.Errorf("invoice_prefix %q must not contain spaces or path separators", config.InvoicePrefix)
	}

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	// Create the store directories if they don't exist.
	for _, dir := range []string{config.DataDir, config.ReportsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
