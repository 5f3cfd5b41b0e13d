// =============================================================================
// Sales Analytics - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (analyze, inspect, version) are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salescli)
//   ├── analyzeCmd (salescli analyze)
//   ├── inspectCmd (salescli inspect)
//   └── versionCmd (salescli version)
//
// The root command owns the global flags (--config, --verbose) and the
// logger setup; individual commands load the configuration themselves.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logger is the application logger, configured before any command runs.
var logger zerolog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "salescli",
	Short: "Sales Analytics - Batch analytics over delimited sales feeds",

	Long: `Sales Analytics is a CLI tool that ingests loosely-structured,
pipe-delimited sales transaction feeds, cleans and validates them, and
produces aggregate analytics plus a formatted text report.

Key Features:
  - Tolerant parsing of legacy feeds (encoding fallback, malformed rows)
  - Business-rule validation with auditable filter counts
  - Region, product, customer and daily aggregate views
  - Optional product metadata enrichment from a catalog API
  - Automatic feed archival on successful processing

Example Usage:
  salescli analyze                       # Process all feeds in the input directory
  salescli analyze --file ./dec.txt      # Process a single feed
  salescli analyze --region North        # Keep only one region
  salescli inspect ./dec.txt             # Validate a feed without writing output`,

	// With no subcommand, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},

	// PersistentPreRun configures logging before any subcommand executes.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// LOGGING
// =============================================================================

// setupLogger configures the application logger: human-readable console
// output with timestamps, debug level when --verbose is set.
func setupLogger() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
}

// applyLogLevel lowers or raises the log level from the configuration.
// The --verbose flag always wins.
func applyLogLevel(configLevel string) {
	if verbose {
		return
	}
	if level, err := zerolog.ParseLevel(configLevel); err == nil && level != zerolog.NoLevel {
		logger = logger.Level(level)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
