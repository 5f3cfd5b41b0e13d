// =============================================================================
// Sales Analytics - Aggregation Engine
// =============================================================================
//
// This module computes the six analytical views over a validated
// transaction set:
//   - Total revenue
//   - Region-wise breakdown
//   - Top-N products by quantity
//   - Customer analysis
//   - Daily sales trend
//   - Peak sales day
//
// Every view is a pure function of its input: no external state, no
// caching, recomputed from scratch on every call. Grouping is done with an
// explicit accumulator per grouping key, collected in first-encountered
// order, and converted to the final ordering with a stable sort. Ties
// therefore retain first-encountered order everywhere.
//
// ROUNDING:
//   The rounding placement is a contract, not a formatting nicety. Region
//   percentages are computed against the UNROUNDED total revenue before
//   the region total itself is rounded for display; customer spend and
//   average order value are rounded independently; top-product revenue is
//   returned unrounded. Do not consolidate these into one rounding pass.
//
// =============================================================================

package analytics

import (
	"math"
	"sort"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// =============================================================================
// VIEW TYPES
// =============================================================================

// RegionStats summarizes one region's share of the business.
type RegionStats struct {
	Region string

	// TotalSales is the region's revenue, rounded to 2 decimals.
	TotalSales float64

	// TransactionCount is the number of transactions in the region.
	TransactionCount int

	// Percentage is the region's share of total revenue, rounded to
	// 2 decimals. Computed against the unrounded total.
	Percentage float64
}

// ProductStats summarizes one product's sales.
type ProductStats struct {
	Name string

	// Quantity is the total units sold.
	Quantity int

	// Revenue is the total revenue for the product, unrounded.
	Revenue float64
}

// ProductQuantity pairs a product name with its total units sold.
type ProductQuantity struct {
	Name     string
	Quantity int
}

// CustomerStats summarizes one customer's purchase pattern.
type CustomerStats struct {
	CustomerID string

	// TotalSpent is the customer's total spend, rounded to 2 decimals.
	TotalSpent float64

	// PurchaseCount is the number of transactions for the customer.
	PurchaseCount int

	// AvgOrderValue is TotalSpent/PurchaseCount before rounding, rounded
	// to 2 decimals, 0 when there are no purchases.
	AvgOrderValue float64

	// ProductsBought lists the distinct product names the customer
	// purchased. Set semantics: iteration order is NOT specified, and
	// callers must not depend on it.
	ProductsBought []string
}

// DailyStats summarizes one day of trading.
type DailyStats struct {
	// Date is the YYYY-MM-DD date string.
	Date string

	// Revenue is the day's revenue, rounded to 2 decimals.
	Revenue float64

	// TransactionCount is the number of transactions on the day.
	TransactionCount int

	// UniqueCustomers is the number of distinct customer ids on the day.
	UniqueCustomers int
}

// PeakDay identifies the date with the highest revenue.
type PeakDay struct {
	Date             string
	Revenue          float64
	TransactionCount int
}

// =============================================================================
// TOTAL REVENUE
// =============================================================================

// TotalRevenue sums quantity x unit price over all transactions.
// Floating-point accumulation with no intermediate rounding.
func TotalRevenue(transactions []types.Transaction) float64 {
	var total float64
	for _, t := range transactions {
		total += t.Amount()
	}
	return total
}

// =============================================================================
// REGION BREAKDOWN
// =============================================================================

// RegionBreakdown groups transactions by region and computes each region's
// sales, transaction count and share of total revenue.
//
// RETURNS:
//   - Regions ordered by rounded total sales, descending; ties keep
//     first-encountered order.
//   - An empty result when total revenue is exactly zero.
func RegionBreakdown(transactions []types.Transaction) []RegionStats {
	totalRevenue := TotalRevenue(transactions)
	if totalRevenue == 0 {
		return nil
	}

	index := make(map[string]int)
	var stats []RegionStats

	for _, t := range transactions {
		i, ok := index[t.Region]
		if !ok {
			i = len(stats)
			index[t.Region] = i
			stats = append(stats, RegionStats{Region: t.Region})
		}
		stats[i].TotalSales += t.Amount()
		stats[i].TransactionCount++
	}

	// Percentage against the unrounded total, then round the region total
	// for display.
	for i := range stats {
		stats[i].Percentage = Round2(stats[i].TotalSales / totalRevenue * 100)
		stats[i].TotalSales = Round2(stats[i].TotalSales)
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].TotalSales > stats[b].TotalSales
	})

	return stats
}

// =============================================================================
// TOP PRODUCTS
// =============================================================================

// TopSellingProducts finds the n products with the highest total quantity
// sold. Revenue is accumulated alongside and returned unrounded.
//
// Ordering is descending by quantity; ties keep first-encountered order.
func TopSellingProducts(transactions []types.Transaction, n int) []ProductStats {
	stats := productStats(transactions)

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Quantity > stats[b].Quantity
	})

	if n < len(stats) {
		stats = stats[:n]
	}
	return stats
}

// BottomProductsByQuantity finds the n products with the lowest total
// quantity sold, ascending. Used by the report's performance section.
func BottomProductsByQuantity(transactions []types.Transaction, n int) []ProductQuantity {
	stats := productStats(transactions)

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Quantity < stats[b].Quantity
	})

	if n > len(stats) {
		n = len(stats)
	}

	bottom := make([]ProductQuantity, 0, n)
	for _, s := range stats[:n] {
		bottom = append(bottom, ProductQuantity{Name: s.Name, Quantity: s.Quantity})
	}
	return bottom
}

// productStats accumulates per-product quantity and revenue in
// first-encountered order.
func productStats(transactions []types.Transaction) []ProductStats {
	index := make(map[string]int)
	var stats []ProductStats

	for _, t := range transactions {
		i, ok := index[t.ProductName]
		if !ok {
			i = len(stats)
			index[t.ProductName] = i
			stats = append(stats, ProductStats{Name: t.ProductName})
		}
		stats[i].Quantity += t.Quantity
		stats[i].Revenue += t.Amount()
	}

	return stats
}

// =============================================================================
// CUSTOMER ANALYSIS
// =============================================================================

// customerAccumulator collects a customer's raw totals before rounding.
type customerAccumulator struct {
	customerID    string
	totalSpent    float64
	purchaseCount int
	products      map[string]struct{}
}

// CustomerAnalysis groups transactions by customer id and computes spend,
// purchase count, average order value and the distinct products bought.
//
// RETURNS:
//   - Customers ordered by rounded total spend, descending; ties keep
//     first-encountered order.
func CustomerAnalysis(transactions []types.Transaction) []CustomerStats {
	index := make(map[string]int)
	var accs []*customerAccumulator

	for _, t := range transactions {
		i, ok := index[t.CustomerID]
		if !ok {
			i = len(accs)
			index[t.CustomerID] = i
			accs = append(accs, &customerAccumulator{
				customerID: t.CustomerID,
				products:   make(map[string]struct{}),
			})
		}
		accs[i].totalSpent += t.Amount()
		accs[i].purchaseCount++
		accs[i].products[t.ProductName] = struct{}{}
	}

	stats := make([]CustomerStats, 0, len(accs))
	for _, acc := range accs {
		avg := 0.0
		if acc.purchaseCount > 0 {
			avg = acc.totalSpent / float64(acc.purchaseCount)
		}

		products := make([]string, 0, len(acc.products))
		for name := range acc.products {
			products = append(products, name)
		}

		stats = append(stats, CustomerStats{
			CustomerID:     acc.customerID,
			TotalSpent:     Round2(acc.totalSpent),
			PurchaseCount:  acc.purchaseCount,
			AvgOrderValue:  Round2(avg),
			ProductsBought: products,
		})
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].TotalSpent > stats[b].TotalSpent
	})

	return stats
}

// =============================================================================
// DAILY TREND
// =============================================================================

// dailyAccumulator collects a day's raw totals before rounding.
type dailyAccumulator struct {
	date             string
	revenue          float64
	transactionCount int
	customers        map[string]struct{}
}

// DailySalesTrend groups transactions by date and computes revenue,
// transaction count and distinct customers per day.
//
// RETURNS:
//   - Days ordered ascending by date string. Lexicographic order is
//     correct because dates are in YYYY-MM-DD form; no calendar parsing
//     is performed.
func DailySalesTrend(transactions []types.Transaction) []DailyStats {
	index := make(map[string]int)
	var accs []*dailyAccumulator

	for _, t := range transactions {
		i, ok := index[t.Date]
		if !ok {
			i = len(accs)
			index[t.Date] = i
			accs = append(accs, &dailyAccumulator{
				date:      t.Date,
				customers: make(map[string]struct{}),
			})
		}
		accs[i].revenue += t.Amount()
		accs[i].transactionCount++
		accs[i].customers[t.CustomerID] = struct{}{}
	}

	stats := make([]DailyStats, 0, len(accs))
	for _, acc := range accs {
		stats = append(stats, DailyStats{
			Date:             acc.date,
			Revenue:          Round2(acc.revenue),
			TransactionCount: acc.transactionCount,
			UniqueCustomers:  len(acc.customers),
		})
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Date < stats[b].Date
	})

	return stats
}

// =============================================================================
// PEAK SALES DAY
// =============================================================================

// FindPeakSalesDay selects the day with the highest revenue from the daily
// trend. The comparison is exact, on the already-rounded daily revenue.
//
// RETURNS:
//   - The peak day and true, or a zero value and false for an empty input.
//
// On a revenue tie the earliest date wins: the trend is scanned in
// ascending date order and only a strictly greater revenue replaces the
// current peak.
func FindPeakSalesDay(transactions []types.Transaction) (PeakDay, bool) {
	trend := DailySalesTrend(transactions)
	if len(trend) == 0 {
		return PeakDay{}, false
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue > peak.Revenue {
			peak = day
		}
	}

	return PeakDay{
		Date:             peak.Date,
		Revenue:          peak.Revenue,
		TransactionCount: peak.TransactionCount,
	}, true
}

// =============================================================================
// HELPERS
// =============================================================================

// Round2 rounds to 2 decimal places (half away from zero, not truncation).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
