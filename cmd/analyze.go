// =============================================================================
// Sales Analytics - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, which runs the full pipeline.
//
// COMMAND USAGE:
//   salescli analyze [flags]
//
// FLAGS:
//   --file            : Process a single feed file instead of scanning the input directory
//   --region          : Keep only records from this region (exact match)
//   --min-amount      : Keep only records with amount >= this value
//   --max-amount      : Keep only records with amount <= this value
//   --dry-run         : Run the pipeline without writing output files
//   --skip-enrichment : Skip the catalog API lookup for this run
//
// PROCESSING PIPELINE (per feed, strictly sequential):
//   1. Read raw lines (encoding fallback, header skip)
//   2. Parse records (malformed rows silently dropped)
//   3. Validate and filter (counted; summary logged)
//   4. Compute the aggregate views
//   5. Enrich with catalog metadata
//   6. Compose and write the report and the enriched dump
//   7. Archive the processed feed
//
// Feeds are independent; multiple feeds are processed concurrently, bounded
// by max_concurrency. An error in one feed does not stop the others.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/sales-analytics/internal/analytics"
	"github.com/ginjaninja78/sales-analytics/internal/config"
	"github.com/ginjaninja78/sales-analytics/internal/enrichment"
	"github.com/ginjaninja78/sales-analytics/internal/feed"
	"github.com/ginjaninja78/sales-analytics/internal/report"
	"github.com/ginjaninja78/sales-analytics/internal/types"
	"github.com/ginjaninja78/sales-analytics/internal/validation"
	"github.com/ginjaninja78/sales-analytics/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// feedFile is the path to a single feed to process instead of scanning.
var feedFile string

// regionFilter keeps only records from one region.
var regionFilter string

// minAmount and maxAmount bound the transaction amount filter.
var minAmount float64
var maxAmount float64

// dryRun runs the pipeline without writing output files.
var dryRun bool

// skipEnrichment skips the catalog API lookup.
var skipEnrichment bool

// =============================================================================
// ANALYZE COMMAND DEFINITION
// =============================================================================

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the analytics pipeline over sales feeds",
	Long: `The analyze command scans the input directory for sales feed files (or
takes a single feed via --file), runs each through the cleaning, validation
and aggregation pipeline, and writes one report and one enriched dump per
feed to the output directory.

On successful processing the feed file is moved to the archive directory.
On error the feed stays where it is and processing continues for the other
feeds.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the analyze command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&feedFile, "file", "",
		"Path to a single feed file to process")
	analyzeCmd.Flags().StringVar(&regionFilter, "region", "",
		"Keep only records from this region (exact, case-sensitive)")
	analyzeCmd.Flags().Float64Var(&minAmount, "min-amount", 0,
		"Keep only records with amount >= this value")
	analyzeCmd.Flags().Float64Var(&maxAmount, "max-amount", 0,
		"Keep only records with amount <= this value")
	analyzeCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Run the pipeline without writing output files")
	analyzeCmd.Flags().BoolVar(&skipEnrichment, "skip-enrichment", false,
		"Skip the catalog API lookup for this run")
}

// =============================================================================
// RUN
// =============================================================================

// feedOutcome records what happened to one feed.
type feedOutcome struct {
	feedPath   string
	summary    types.FilterSummary
	reportPath string
	dumpPath   string
	err        error
}

// runAnalyze executes the analyze command.
func runAnalyze(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyLogLevel(cfg.LogLevel)

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	feeds, err := collectFeeds(fm)
	if err != nil {
		return err
	}
	if len(feeds) == 0 {
		logger.Warn().Str("dir", cfg.InputDir).Msg("no feed files found")
		return nil
	}

	opts := buildFilterOptions(cmd, cfg)
	ctx := context.Background()

	// The catalog is fetched once and shared by every feed in the run.
	mapping := map[string]types.ProductInfo{}
	if !skipEnrichment && !cfg.Enrichment.Disabled {
		mapping = enrichment.NewClient(cfg.Enrichment, logger).FetchProductMapping(ctx)
	} else {
		logger.Info().Msg("enrichment disabled for this run")
	}

	// Fan out over the feeds; each feed's pipeline stays sequential.
	outcomes := make([]feedOutcome, len(feeds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrency)

	for i, feedPath := range feeds {
		g.Go(func() error {
			outcomes[i] = processFeed(ctx, feedPath, cfg, fm, opts, mapping)
			// Per-feed failures are recorded, not propagated: one bad
			// feed must not cancel the rest of the run.
			return nil
		})
	}
	_ = g.Wait()

	return summarizeRun(outcomes)
}

// collectFeeds resolves the set of feed files for this run.
func collectFeeds(fm *utils.FileManager) ([]string, error) {
	if feedFile != "" {
		if !utils.FileExists(feedFile) {
			return nil, fmt.Errorf("feed file not found: %s", feedFile)
		}
		return []string{feedFile}, nil
	}
	return fm.DiscoverFeedFiles()
}

// buildFilterOptions merges the command flags with the configured filter
// defaults. An explicitly passed flag always wins; a zero-valued config
// default leaves the corresponding filter off.
func buildFilterOptions(cmd *cobra.Command, cfg *config.Config) validation.FilterOptions {
	opts := validation.FilterOptions{Region: cfg.Filters.Region}
	if cmd.Flags().Changed("region") {
		opts.Region = regionFilter
	}

	switch {
	case cmd.Flags().Changed("min-amount"):
		opts.MinAmount = &minAmount
	case cfg.Filters.MinAmount > 0:
		opts.MinAmount = &cfg.Filters.MinAmount
	}

	switch {
	case cmd.Flags().Changed("max-amount"):
		opts.MaxAmount = &maxAmount
	case cfg.Filters.MaxAmount > 0:
		opts.MaxAmount = &cfg.Filters.MaxAmount
	}

	return opts
}

// =============================================================================
// PER-FEED PIPELINE
// =============================================================================

// processFeed runs the full pipeline for one feed file.
func processFeed(
	ctx context.Context,
	feedPath string,
	cfg *config.Config,
	fm *utils.FileManager,
	opts validation.FilterOptions,
	mapping map[string]types.ProductInfo,
) feedOutcome {
	outcome := feedOutcome{feedPath: feedPath}
	log := logger.With().Str("feed", filepath.Base(feedPath)).Logger()

	if err := ctx.Err(); err != nil {
		outcome.err = err
		return outcome
	}

	// Step 1-2: read and parse.
	rawLines, err := feed.ReadFeed(feedPath)
	if err != nil {
		outcome.err = err
		log.Error().Err(err).Msg("failed to read feed")
		return outcome
	}
	log.Info().Int("lines", len(rawLines)).Msg("read feed")

	transactions := feed.ParseTransactions(rawLines)
	log.Debug().Int("parsed", len(transactions)).Msg("parsed records")

	// Step 3: validate and filter.
	result := validation.ValidateAndFilter(transactions, opts)
	outcome.summary = result.Summary

	log.Info().
		Int("total", result.Summary.TotalInput).
		Int("invalid", result.Summary.Invalid).
		Int("filtered_by_region", result.Summary.FilteredByRegion).
		Int("filtered_by_amount", result.Summary.FilteredByAmount).
		Int("final", result.Summary.FinalCount).
		Msg("validation summary")

	if result.Insights.HasData {
		log.Info().
			Strs("regions", result.Insights.Regions).
			Float64("min_amount", result.Insights.MinAmount).
			Float64("max_amount", result.Insights.MaxAmount).
			Msg("dataset insights")
	}

	if len(result.Valid) == 0 {
		log.Warn().Msg("no valid transactions to analyze")
		return outcome
	}

	// Step 4: aggregate views. The report recomputes its own; this is the
	// console narration of the headline numbers.
	logHeadlines(log, result.Valid)

	// Step 5: enrichment.
	enriched := enrichment.EnrichTransactions(result.Valid, mapping)

	// Step 6: compose and write outputs.
	reportText := report.Compose(result.Valid, enriched, report.DefaultOptions())
	dumpText := report.ComposeEnrichedDump(enriched)

	if dryRun {
		log.Info().Msg("dry run: skipping output files and archival")
		return outcome
	}

	outcome.reportPath = filepath.Join(cfg.OutputDir,
		utils.GenerateOutputFileName(cfg.ReportName, feedPath))
	if err := os.WriteFile(outcome.reportPath, []byte(reportText), 0644); err != nil {
		outcome.err = fmt.Errorf("failed to write report: %w", err)
		return outcome
	}

	outcome.dumpPath = filepath.Join(cfg.OutputDir,
		utils.GenerateOutputFileName(cfg.DumpName, feedPath))
	if err := os.WriteFile(outcome.dumpPath, []byte(dumpText), 0644); err != nil {
		outcome.err = fmt.Errorf("failed to write enriched dump: %w", err)
		return outcome
	}

	// Step 7: archive the processed feed.
	archivePath, err := fm.ArchiveFeedFile(feedPath)
	if err != nil {
		outcome.err = err
		return outcome
	}

	log.Info().
		Str("report", outcome.reportPath).
		Str("dump", outcome.dumpPath).
		Str("archive", archivePath).
		Msg("feed processed")

	return outcome
}

// logHeadlines narrates the headline aggregate numbers for one feed.
func logHeadlines(log zerolog.Logger, valid []types.Transaction) {
	log.Info().
		Float64("total_revenue", analytics.Round2(analytics.TotalRevenue(valid))).
		Int("regions", len(analytics.RegionBreakdown(valid))).
		Msg("analytics computed")

	if top := analytics.TopSellingProducts(valid, 1); len(top) > 0 {
		log.Info().
			Str("product", top[0].Name).
			Int("quantity", top[0].Quantity).
			Msg("top selling product")
	}

	if customers := analytics.CustomerAnalysis(valid); len(customers) > 0 {
		log.Info().
			Str("customer", customers[0].CustomerID).
			Float64("total_spent", customers[0].TotalSpent).
			Int("purchases", customers[0].PurchaseCount).
			Msg("top customer")
	}

	if peak, ok := analytics.FindPeakSalesDay(valid); ok {
		log.Info().
			Str("date", peak.Date).
			Float64("revenue", peak.Revenue).
			Int("transactions", peak.TransactionCount).
			Msg("peak sales day")
	}
}

// summarizeRun logs the run totals and reports failure if any feed failed.
func summarizeRun(outcomes []feedOutcome) error {
	processed := 0
	failed := 0

	for _, o := range outcomes {
		if o.err != nil {
			failed++
			logger.Error().Err(o.err).Str("feed", o.feedPath).Msg("feed failed")
		} else {
			processed++
		}
	}

	logger.Info().
		Int("processed", processed).
		Int("failed", failed).
		Msg("run complete")

	if failed > 0 {
		return fmt.Errorf("%d of %d feeds failed", failed, len(outcomes))
	}
	return nil
}
