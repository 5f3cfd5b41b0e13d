// =============================================================================
// Sales Analytics - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. Configuration comes from three layers, lowest precedence
// first:
//   1. Built-in defaults
//   2. The YAML configuration file (config.yaml by default)
//   3. Environment variables (optionally loaded from a .env file)
//
// ARCHITECTURE:
//   The configuration system is designed to be:
//   - Optional: the application runs with defaults when no file is present
//   - Layered: environment variables override the file for deploy-time knobs
//   - Validated: required directories are created on load
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for sales feed files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where reports and enriched dumps are
	// written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where feed files are moved after
	// successful processing.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// =========================================================================
	// OUTPUT NAMING
	// =========================================================================

	// ReportName is the file name template for generated reports.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {feed}      - Base name of the source feed file
	// Default: "sales_report_{feed}.txt"
	ReportName string `yaml:"report_name"`

	// DumpName is the file name template for enriched record dumps.
	// Same placeholders as ReportName.
	// Default: "enriched_{feed}.txt"
	DumpName string `yaml:"dump_name"`

	// =========================================================================
	// LOGGING AND PROCESSING
	// =========================================================================

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// MaxConcurrency is the maximum number of feed files processed
	// concurrently. Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// =========================================================================
	// SUBSYSTEM SETTINGS
	// =========================================================================

	// Enrichment configures the product catalog lookup.
	Enrichment EnrichmentConfig `yaml:"enrichment"`

	// Filters holds default filter values, overridable per run by flags.
	Filters FilterDefaults `yaml:"filters"`
}

// EnrichmentConfig configures the product catalog API client.
type EnrichmentConfig struct {
	// BaseURL is the catalog API root, without a trailing slash.
	// Default: "https://dummyjson.com"
	BaseURL string `yaml:"base_url"`

	// Limit is the maximum number of catalog products to fetch.
	// Default: 100
	Limit int `yaml:"limit"`

	// TimeoutSeconds bounds the catalog request.
	// Default: 10
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Disabled turns the enrichment step off. When off, every record is
	// dumped with enriched=false. Enrichment is on by default.
	Disabled bool `yaml:"disabled"`
}

// FilterDefaults holds default validate/filter parameters. A zero value
// disables the corresponding filter.
type FilterDefaults struct {
	// Region keeps only records with this exact region label.
	Region string `yaml:"region"`

	// MinAmount is the inclusive lower bound on quantity x unit price.
	MinAmount float64 `yaml:"min_amount"`

	// MaxAmount is the inclusive upper bound on quantity x unit price.
	MaxAmount float64 `yaml:"max_amount"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file and applies environment
// overrides.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file exists but cannot be read or parsed.
//
// A missing configuration file is not an error; the built-in defaults are
// used instead so the tool works out of the box.
func Load(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// Run on defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&config)
	applyEnvOverrides(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ArchiveDir == "" {
		config.ArchiveDir = "./archive"
	}
	if config.ReportName == "" {
		config.ReportName = "sales_report_{feed}.txt"
	}
	if config.DumpName == "" {
		config.DumpName = "enriched_{feed}.txt"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}

	if config.Enrichment.BaseURL == "" {
		config.Enrichment.BaseURL = "https://dummyjson.com"
	}
	if config.Enrichment.Limit == 0 {
		config.Enrichment.Limit = 100
	}
	if config.Enrichment.TimeoutSeconds == 0 {
		config.Enrichment.TimeoutSeconds = 10
	}
}

// applyEnvOverrides overlays environment variables onto the configuration.
// A .env file in the working directory is honoured when present.
//
// SUPPORTED VARIABLES:
//   - SALES_INPUT_DIR
//   - SALES_OUTPUT_DIR
//   - SALES_ARCHIVE_DIR
//   - SALES_LOG_LEVEL
//   - SALES_ENRICHMENT_URL
//   - SALES_ENRICHMENT_LIMIT
func applyEnvOverrides(config *Config) {
	// Ignore the error: a missing .env file simply means there is nothing
	// to load.
	_ = godotenv.Load()

	if v := os.Getenv("SALES_INPUT_DIR"); v != "" {
		config.InputDir = v
	}
	if v := os.Getenv("SALES_OUTPUT_DIR"); v != "" {
		config.OutputDir = v
	}
	if v := os.Getenv("SALES_ARCHIVE_DIR"); v != "" {
		config.ArchiveDir = v
	}
	if v := os.Getenv("SALES_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("SALES_ENRICHMENT_URL"); v != "" {
		config.Enrichment.BaseURL = v
	}
	if v := os.Getenv("SALES_ENRICHMENT_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			config.Enrichment.Limit = limit
		}
	}
}

// validate checks the configuration and creates missing directories.
func validate(config *Config) error {
	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1 (got %d)", config.MaxConcurrency)
	}

	if config.Filters.MinAmount < 0 || config.Filters.MaxAmount < 0 {
		return fmt.Errorf("filter amounts must not be negative")
	}

	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.ArchiveDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
