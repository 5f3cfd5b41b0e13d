// =============================================================================
// Sales Analytics - Validation and Filtering Engine
// =============================================================================
//
// This module classifies parsed transactions against the business rules and
// applies the optional region/amount filters, keeping auditable counts at
// every stage.
//
// VALIDATION STRATEGY:
//   The run is organized as three passes:
//   1. Validation: every record is checked against the business rules.
//      Failures are dropped and counted; they never reach a later stage.
//   2. Insights: the valid set is inspected (distinct regions, amount
//      range). Purely observational; produces no side effect on the data.
//   3. Filtering: the optional region filter runs first, then the combined
//      amount filter, each on the output of the previous stage.
//
// COUNTING:
//   Each filter's removal count is relative to the set as it stood entering
//   that stage, not to the original valid set. Changing that would be a
//   behavior change for downstream consumers of the summary, not a cleanup.
//
// =============================================================================

package validation

import (
	"sort"
	"strings"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// =============================================================================
// OPTIONS AND RESULTS
// =============================================================================

// FilterOptions holds the optional filter parameters for one run. Each
// parameter toggles independently; the zero value disables all filters.
type FilterOptions struct {
	// Region, when non-empty, keeps only records whose region matches it
	// exactly (case-sensitive).
	Region string

	// MinAmount, when set, is the inclusive lower bound on the transaction
	// amount.
	MinAmount *float64

	// MaxAmount, when set, is the inclusive upper bound on the transaction
	// amount.
	MaxAmount *float64
}

// Insights describes the valid set before filtering. It is surfaced so the
// caller can show the user what filter values make sense.
type Insights struct {
	// Regions is the sorted list of distinct non-empty regions.
	Regions []string

	// MinAmount and MaxAmount span the transaction amounts of the valid
	// set. Meaningless when HasData is false.
	MinAmount float64
	MaxAmount float64

	// HasData is false when the valid set is empty.
	HasData bool
}

// Result is the outcome of one validate/filter run.
type Result struct {
	// Valid contains the surviving records, in input order.
	Valid []types.Transaction

	// InvalidCount is the number of records that failed a business rule.
	InvalidCount int

	// Summary holds the stage-by-stage counts.
	Summary types.FilterSummary

	// Insights describes the valid set before filtering.
	Insights Insights
}

// =============================================================================
// VALIDATE AND FILTER
// =============================================================================

// ValidateAndFilter validates transactions and applies the optional
// filters.
//
// PARAMETERS:
//   - transactions: The parsed records to classify.
//   - opts: The optional filter parameters.
//
// RETURNS:
//   - A Result with the surviving records, the invalid count, the filter
//     summary and the dataset insights.
func ValidateAndFilter(transactions []types.Transaction, opts FilterOptions) Result {
	// Pass 1: validation.
	valid := make([]types.Transaction, 0, len(transactions))
	invalidCount := 0

	for _, t := range transactions {
		if IsValid(t) {
			valid = append(valid, t)
		} else {
			invalidCount++
		}
	}

	// Pass 2: insights over the valid set, before any filtering.
	insights := computeInsights(valid)

	// Pass 3: filtering. Region first, then the combined amount check,
	// each stage shrinking the previous stage's output.
	current := valid
	filteredByRegion := 0
	filteredByAmount := 0

	if opts.Region != "" {
		next := make([]types.Transaction, 0, len(current))
		for _, t := range current {
			if t.Region == opts.Region {
				next = append(next, t)
			}
		}
		filteredByRegion = len(current) - len(next)
		current = next
	}

	if opts.MinAmount != nil || opts.MaxAmount != nil {
		next := make([]types.Transaction, 0, len(current))
		for _, t := range current {
			if amountInRange(t.Amount(), opts) {
				next = append(next, t)
			}
		}
		filteredByAmount = len(current) - len(next)
		current = next
	}

	return Result{
		Valid:        current,
		InvalidCount: invalidCount,
		Summary: types.FilterSummary{
			TotalInput:       len(transactions),
			Invalid:          invalidCount,
			FilteredByRegion: filteredByRegion,
			FilteredByAmount: filteredByAmount,
			FinalCount:       len(current),
		},
		Insights: insights,
	}
}

// =============================================================================
// BUSINESS RULES
// =============================================================================

// IsValid reports whether a transaction passes all business rules:
//   - Quantity and UnitPrice must be positive.
//   - All six identifying fields must be non-empty.
//   - TransactionID must start with "T", ProductID with "P", and
//     CustomerID with "C".
//
// A record violating any rule is excluded; it is never mutated to fix it.
func IsValid(t types.Transaction) bool {
	if t.Quantity <= 0 {
		return false
	}
	if t.UnitPrice <= 0 {
		return false
	}

	required := []string{
		t.TransactionID,
		t.Date,
		t.ProductID,
		t.ProductName,
		t.CustomerID,
		t.Region,
	}
	for _, field := range required {
		if field == "" {
			return false
		}
	}

	if !strings.HasPrefix(t.TransactionID, "T") {
		return false
	}
	if !strings.HasPrefix(t.ProductID, "P") {
		return false
	}
	if !strings.HasPrefix(t.CustomerID, "C") {
		return false
	}

	return true
}

// =============================================================================
// INSIGHTS
// =============================================================================

// computeInsights surveys the valid set: which regions occur, and what the
// amount range looks like.
func computeInsights(valid []types.Transaction) Insights {
	seen := make(map[string]bool)
	var regions []string

	for _, t := range valid {
		if t.Region != "" && !seen[t.Region] {
			seen[t.Region] = true
			regions = append(regions, t.Region)
		}
	}
	sort.Strings(regions)

	insights := Insights{Regions: regions}

	for i, t := range valid {
		amount := t.Amount()
		if i == 0 {
			insights.MinAmount = amount
			insights.MaxAmount = amount
			insights.HasData = true
			continue
		}
		if amount < insights.MinAmount {
			insights.MinAmount = amount
		}
		if amount > insights.MaxAmount {
			insights.MaxAmount = amount
		}
	}

	return insights
}

// amountInRange checks the combined amount bounds, inclusive on both ends
// and open-ended on whichever bound is unset.
func amountInRange(amount float64, opts FilterOptions) bool {
	if opts.MinAmount != nil && amount < *opts.MinAmount {
		return false
	}
	if opts.MaxAmount != nil && amount > *opts.MaxAmount {
		return false
	}
	return true
}
