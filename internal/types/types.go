// =============================================================================
// Sales Analytics - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - feed
//   - validation
//   - analytics
//   - enrichment
//   - report
//
// =============================================================================

package types

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents one parsed sales record from the feed.
//
// A Transaction is created exactly once by the feed parser and is never
// mutated afterwards. Records that fail a business rule are dropped by the
// validator, never repaired.
type Transaction struct {
	// TransactionID is the transaction identifier (expected prefix "T").
	TransactionID string

	// Date is the transaction date in YYYY-MM-DD form. It is treated as an
	// opaque sortable string; no calendar validation is performed.
	Date string

	// ProductID is the product identifier (expected prefix "P").
	ProductID string

	// ProductName is the cleaned product name. Commas in the raw field are
	// replaced with spaces during parsing.
	ProductName string

	// Quantity is the number of units sold.
	Quantity int

	// UnitPrice is the price per unit.
	UnitPrice float64

	// CustomerID is the customer identifier (expected prefix "C").
	CustomerID string

	// Region is the free-form region label.
	Region string
}

// Amount returns the transaction amount (quantity x unit price).
// The amount is never stored on the record; it is recomputed wherever needed.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// =============================================================================
// ENRICHMENT TYPES
// =============================================================================

// ProductInfo holds the product metadata returned by the catalog API.
type ProductInfo struct {
	Title    string
	Category string
	Brand    string
	Rating   float64
}

// EnrichedTransaction is a transaction paired with its catalog metadata.
// Enriched is false when no catalog entry matched the product id; Product
// is then the zero value.
type EnrichedTransaction struct {
	Transaction

	Product  ProductInfo
	Enriched bool
}

// =============================================================================
// FILTER SUMMARY
// =============================================================================

// FilterSummary describes one validate/filter run. It is purely
// informational and created fresh per invocation.
//
// Counting invariants:
//
//	TotalInput = Invalid + valid count before filters
//	valid count before filters = FinalCount + FilteredByRegion + FilteredByAmount
//
// Each filter count reflects removals from the set as it stood entering
// that stage, not from the original valid set.
type FilterSummary struct {
	// TotalInput is the number of parsed records handed to the validator.
	TotalInput int

	// Invalid is the number of records that failed a business rule.
	Invalid int

	// FilteredByRegion is the number of records removed by the region
	// filter (0 if the filter was not applied).
	FilteredByRegion int

	// FilteredByAmount is the number of records removed by the amount
	// filter (0 if the filter was not applied).
	FilteredByAmount int

	// FinalCount is the number of records surviving all stages.
	FinalCount int
}
