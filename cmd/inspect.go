// =============================================================================
// Sales Analytics - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which runs the parse and
// validation stages of the pipeline against a single feed and prints the
// findings without writing any output. Useful for checking a feed before a
// real run, and for discovering sensible filter values.
//
// COMMAND USAGE:
//   salescli inspect <feed-file>
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sales-analytics/internal/feed"
	"github.com/ginjaninja78/sales-analytics/internal/validation"
)

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect <feed-file>",
	Short: "Parse and validate a feed without producing output",
	Long: `The inspect command reads a single feed file, parses it and applies the
business-rule validation, then prints the counts and dataset insights.
Nothing is written to the output directory and the feed is not archived.`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

// init registers the inspect command with the root command.
func init() {
	rootCmd.AddCommand(inspectCmd)
}

// runInspect executes the inspect command against one feed file.
func runInspect(feedPath string) error {
	rawLines, err := feed.ReadFeed(feedPath)
	if err != nil {
		return err
	}

	transactions := feed.ParseTransactions(rawLines)
	result := validation.ValidateAndFilter(transactions, validation.FilterOptions{})

	fmt.Printf("Feed:            %s\n", feedPath)
	fmt.Printf("Raw lines:       %d\n", len(rawLines))
	fmt.Printf("Parsed records:  %d\n", result.Summary.TotalInput)
	fmt.Printf("Invalid records: %d\n", result.Summary.Invalid)
	fmt.Printf("Valid records:   %d\n", result.Summary.FinalCount)

	if result.Insights.HasData {
		fmt.Printf("Regions:         %s\n", strings.Join(result.Insights.Regions, ", "))
		fmt.Printf("Amount range:    %.2f - %.2f\n",
			result.Insights.MinAmount, result.Insights.MaxAmount)
	} else {
		fmt.Println("Amount range:    N/A (no valid transactions)")
	}

	return nil
}
