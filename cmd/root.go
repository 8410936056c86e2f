// =============================================================================
// Bill Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every subcommand
// hangs off it and shares the application wiring built here.
//
// COBRA CLI STRUCTURE:
//   rootCmd (billgen)
//   ├── invoiceCmd       (billgen invoice current|next)
//   ├── billCmd          (billgen bill save|show)
//   ├── searchCmd        (billgen search)
//   ├── exportCmd        (billgen export monthly)
//   ├── transactionsCmd  (billgen transactions list)
//   └── versionCmd       (billgen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the main configuration
//   3. Setting up logging
//   4. Wiring the stores and services used by the subcommands
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/godopgaming/bill-genertor/internal/billing"
	"github.com/godopgaming/bill-genertor/internal/config"
	"github.com/godopgaming/bill-genertor/internal/export"
	"github.com/godopgaming/bill-genertor/internal/invoice"
	"github.com/godopgaming/bill-genertor/internal/ledger"
	"github.com/godopgaming/bill-genertor/internal/logging"
	"github.com/godopgaming/bill-genertor/internal/render"
	"github.com/godopgaming/bill-genertor/internal/search"
	"github.com/godopgaming/bill-genertor/internal/transactions"
	"github.com/godopgaming/bill-genertor/internal/types"
	"github.com/godopgaming/bill-genertor/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose forces debug logging when set to true.
var verbose bool

// application is built by the root PersistentPreRunE before any subcommand
// runs.
var application *app

// app holds the wired components shared by the subcommands.
type app struct {
	config   *config.MainConfig
	logger   logging.Logger
	logClose io.Closer

	files    *utils.FileManager
	ledger   *ledger.Store
	mirror   *transactions.Mirror
	numberer *invoice.Numberer
	service  *billing.Service
	index    *search.Index
	monthly  *export.Monthly
	renderer *render.PDF
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "billgen",
	Short: "Bill Generator - GST invoices with a JSON ledger and XLSX transaction records",
	Long: `Bill Generator issues sequentially numbered GST invoices, keeps every saved
bill in a JSON ledger, and mirrors each line item into an XLSX transaction
workbook for bookkeeping.

Key Features:
  - Sequential invoice numbers (SS-0001, SS-0002, ...) that survive restarts
  - Per-line-item GST totals computed with exact decimal arithmetic
  - Independent ledger and transaction writes, each reported separately
  - Search by invoice number, customer name, or date range
  - Monthly summary workbooks and PDF invoices

Example Usage:
  billgen invoice current
  billgen bill save --customer "Ravi Traders" --item "Hose pipe|4009|2|100|18" --reset
  billgen search --customer ravi --this-month
  billgen bill show SS-0001 --pdf SS-0001.pdf`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfgFile, verbose)
		if err != nil {
			return err
		}
		application = a
		return nil
	},

	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application == nil {
			return nil
		}
		return application.logClose.Close()
	},

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	// A missing file at this path means "use defaults".
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// newApp loads the configuration and builds every component from it.
func newApp(configPath string, verbose bool) (*app, error) {
	cfg, err := config.LoadMainConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, closer, err := logging.NewFile(cfg.LogFile, level)
	if err != nil {
		return nil, err
	}

	// LoadMainConfig has already created the store directories.
	files := utils.NewFileManager(cfg.DataDir, cfg.ReportsDir)

	ledgerStore := ledger.New(cfg.LedgerPath(), logger)
	mirror := transactions.New(cfg.TransactionsPath(), logger)
	numberer := invoice.NewNumberer(invoice.NewFileCounterStore(cfg.CounterPath()), cfg.InvoicePrefix, logger)

	logger.Debug("configuration loaded",
		"config", configPath,
		"ledger", ledgerStore.Path(),
		"transactions", mirror.Path(),
		"reports", cfg.ReportsDir,
		"invoice", numberer.Current(),
	)

	return &app{
		config:   cfg,
		logger:   logger,
		logClose: closer,
		files:    files,
		ledger:   ledgerStore,
		mirror:   mirror,
		numberer: numberer,
		service:  billing.NewService(ledgerStore, mirror, numberer, logger),
		index:    search.New(ledgerStore),
		monthly:  export.NewMonthly(files, logger),
		renderer: render.NewPDF(cfg.Company),
	}, nil
}

// writePDF renders the bill into path.
func (a *app) writePDF(path string, bill types.Bill) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := a.renderer.Render(f, bill); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	a.logger.Info("invoice rendered", "path", path)
	return nil
}
