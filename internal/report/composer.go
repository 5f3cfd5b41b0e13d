// =============================================================================
// Sales Analytics - Report Composer
// =============================================================================
//
// This module assembles the aggregate views into the final plain-text
// report. It owns nothing but layout: all numbers come from the analytics
// engine, all enrichment flags from the enricher, and the composed document
// is returned as a string for the caller to write wherever it wants.
//
// DOCUMENT LAYOUT (fixed order):
//   1. Header (title, generation timestamp, record count)
//   2. Overall summary
//   3. Region-wise performance
//   4. Top 5 products
//   5. Top 5 customers
//   6. Daily sales trend
//   7. Product performance analysis
//   8. API enrichment summary
//
// Every section has a title line and a fixed-width dashed rule; currency
// renders with thousands separators and 2 decimal places.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/sales-analytics/internal/analytics"
	"github.com/ginjaninja78/sales-analytics/internal/enrichment"
	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// headerRule and sectionRule are the fixed-width rules used throughout the
// document.
const (
	headerRule  = "=========================================="
	sectionRule = "------------------------------------------"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls the cuts applied by the composer. The engine returns
// full sorted views; the composer decides how much of each to show.
type Options struct {
	// Now supplies the generation timestamp. Overridable for tests.
	Now func() time.Time

	// TopProducts is the number of products shown in the product table.
	TopProducts int

	// TopCustomers is the number of customers shown in the customer table.
	TopCustomers int

	// BottomProducts is the number of low performers listed in the
	// performance section.
	BottomProducts int

	// UnenrichedSampleLimit caps the sample of unenriched product ids.
	UnenrichedSampleLimit int
}

// DefaultOptions returns the standard report cuts.
func DefaultOptions() Options {
	return Options{
		Now:                   time.Now,
		TopProducts:           5,
		TopCustomers:          5,
		BottomProducts:        3,
		UnenrichedSampleLimit: 10,
	}
}

// =============================================================================
// COMPOSE
// =============================================================================

// Compose builds the full report document.
//
// PARAMETERS:
//   - transactions: The validated transaction set the aggregates describe.
//   - enriched: The same set with enrichment flags attached.
//   - opts: Layout cuts; use DefaultOptions() for the standard report.
//
// RETURNS:
//   - The complete report text, ready to be written to a file.
func Compose(transactions []types.Transaction, enriched []types.EnrichedTransaction, opts Options) string {
	var b strings.Builder

	writeHeader(&b, transactions, opts)
	writeOverallSummary(&b, transactions)
	regionStats := writeRegionPerformance(&b, transactions)
	writeTopProducts(&b, transactions, opts)
	writeTopCustomers(&b, transactions, opts)
	writeDailyTrend(&b, transactions)
	writePerformanceAnalysis(&b, transactions, regionStats, opts)
	writeEnrichmentSummary(&b, transactions, enriched, opts)

	return b.String()
}

// =============================================================================
// SECTIONS
// =============================================================================

func writeHeader(b *strings.Builder, transactions []types.Transaction, opts Options) {
	b.WriteString(headerRule + "\n")
	b.WriteString("          SALES ANALYTICS REPORT\n")
	fmt.Fprintf(b, "          Generated: %s\n", opts.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "          Records Processed: %d\n", len(transactions))
	b.WriteString(headerRule + "\n\n")
}

func writeOverallSummary(b *strings.Builder, transactions []types.Transaction) {
	totalRevenue := analytics.TotalRevenue(transactions)
	totalTransactions := len(transactions)

	avgOrderValue := 0.0
	if totalTransactions > 0 {
		avgOrderValue = totalRevenue / float64(totalTransactions)
	}

	dateRange := "N/A"
	if totalTransactions > 0 {
		minDate, maxDate := transactions[0].Date, transactions[0].Date
		for _, t := range transactions[1:] {
			if t.Date < minDate {
				minDate = t.Date
			}
			if t.Date > maxDate {
				maxDate = t.Date
			}
		}
		dateRange = minDate + " to " + maxDate
	}

	b.WriteString("OVERALL SUMMARY\n")
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(b, "Total Revenue:       $%s\n", formatAmount(totalRevenue))
	fmt.Fprintf(b, "Total Transactions:  %d\n", totalTransactions)
	fmt.Fprintf(b, "Average Order Value: $%s\n", formatAmount(avgOrderValue))
	fmt.Fprintf(b, "Date Range:          %s\n\n", dateRange)
}

// writeRegionPerformance renders the region table and returns the stats so
// the performance section can reuse them without recomputing.
func writeRegionPerformance(b *strings.Builder, transactions []types.Transaction) []analytics.RegionStats {
	b.WriteString("REGION-WISE PERFORMANCE\n")
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(b, "%-15s %-15s %-15s %-15s\n", "Region", "Sales", "% of Total", "Transactions")

	regionStats := analytics.RegionBreakdown(transactions)
	for _, rs := range regionStats {
		fmt.Fprintf(b, "%-15s $%-14s %-14s%% %-15d\n",
			rs.Region,
			formatAmount(rs.TotalSales),
			formatPercent(rs.Percentage),
			rs.TransactionCount,
		)
	}
	b.WriteString("\n")

	return regionStats
}

func writeTopProducts(b *strings.Builder, transactions []types.Transaction, opts Options) {
	fmt.Fprintf(b, "TOP %d PRODUCTS\n", opts.TopProducts)
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(b, "%-5s %-30s %-10s %-15s\n", "Rank", "Product Name", "Quantity", "Revenue")

	for i, p := range analytics.TopSellingProducts(transactions, opts.TopProducts) {
		fmt.Fprintf(b, "%-5d %-30s %-10d $%-15s\n",
			i+1, p.Name, p.Quantity, formatAmount(p.Revenue))
	}
	b.WriteString("\n")
}

func writeTopCustomers(b *strings.Builder, transactions []types.Transaction, opts Options) {
	fmt.Fprintf(b, "TOP %d CUSTOMERS\n", opts.TopCustomers)
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(b, "%-5s %-15s %-20s %-10s\n", "Rank", "Customer ID", "Total Spent", "Order Count")

	customers := analytics.CustomerAnalysis(transactions)
	if opts.TopCustomers < len(customers) {
		customers = customers[:opts.TopCustomers]
	}
	for i, c := range customers {
		fmt.Fprintf(b, "%-5d %-15s $%-19s %-10d\n",
			i+1, c.CustomerID, formatAmount(c.TotalSpent), c.PurchaseCount)
	}
	b.WriteString("\n")
}

func writeDailyTrend(b *strings.Builder, transactions []types.Transaction) {
	b.WriteString("DAILY SALES TREND\n")
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(b, "%-15s %-20s %-15s %-20s\n", "Date", "Revenue", "Transactions", "Unique Customers")

	for _, d := range analytics.DailySalesTrend(transactions) {
		fmt.Fprintf(b, "%-15s $%-19s %-14d %-20d\n",
			d.Date, formatAmount(d.Revenue), d.TransactionCount, d.UniqueCustomers)
	}
	b.WriteString("\n")
}

func writePerformanceAnalysis(b *strings.Builder, transactions []types.Transaction, regionStats []analytics.RegionStats, opts Options) {
	b.WriteString("PRODUCT PERFORMANCE ANALYSIS\n")
	b.WriteString(sectionRule + "\n")

	bestDay := "N/A"
	if peak, ok := analytics.FindPeakSalesDay(transactions); ok {
		bestDay = fmt.Sprintf("%s ($%s with %d txns)",
			peak.Date, formatAmount(peak.Revenue), peak.TransactionCount)
	}
	fmt.Fprintf(b, "Best Selling Day: %s\n", bestDay)

	fmt.Fprintf(b, "Low Performing Products (Bottom %d by Qty):\n", opts.BottomProducts)
	for _, p := range analytics.BottomProductsByQuantity(transactions, opts.BottomProducts) {
		fmt.Fprintf(b, "  - %s: %d units\n", p.Name, p.Quantity)
	}

	// Average transaction value per region, computed from the rounded
	// region totals exactly as displayed above.
	b.WriteString("Avg Transaction Value per Region:\n")
	for _, rs := range regionStats {
		avg := 0.0
		if rs.TransactionCount > 0 {
			avg = rs.TotalSales / float64(rs.TransactionCount)
		}
		fmt.Fprintf(b, "  - %s: $%s\n", rs.Region, formatAmount(avg))
	}
	b.WriteString("\n")
}

func writeEnrichmentSummary(b *strings.Builder, transactions []types.Transaction, enriched []types.EnrichedTransaction, opts Options) {
	b.WriteString("API ENRICHMENT SUMMARY\n")
	b.WriteString(sectionRule + "\n")

	totalEnriched := enrichment.CountEnriched(enriched)

	successRate := 0.0
	if len(transactions) > 0 {
		successRate = float64(totalEnriched) / float64(len(transactions)) * 100
	}

	fmt.Fprintf(b, "Total Products Enriched: %d\n", totalEnriched)
	fmt.Fprintf(b, "Success Rate:            %.2f%%\n", successRate)
	b.WriteString("Unenriched Products (Sample IDs):\n")

	// Distinct unenriched product ids in first-encountered order, capped
	// at the sample limit with an overflow note.
	seen := make(map[string]bool)
	var unenrichedIDs []string
	for _, e := range enriched {
		if !e.Enriched && !seen[e.ProductID] {
			seen[e.ProductID] = true
			unenrichedIDs = append(unenrichedIDs, e.ProductID)
		}
	}

	limit := opts.UnenrichedSampleLimit
	if limit > len(unenrichedIDs) {
		limit = len(unenrichedIDs)
	}
	for _, id := range unenrichedIDs[:limit] {
		fmt.Fprintf(b, "  - %s\n", id)
	}
	if len(unenrichedIDs) > opts.UnenrichedSampleLimit {
		fmt.Fprintf(b, "  ... (+%d more)\n", len(unenrichedIDs)-opts.UnenrichedSampleLimit)
	}
}
