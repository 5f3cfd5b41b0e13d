// =============================================================================
// Sales Analytics - Transaction Enricher
// =============================================================================
//
// Attaches catalog metadata to validated transactions by product id.
//
// LOOKUP STRATEGY:
//   Feed product ids look like "P101" while catalog ids are plain integers.
//   The "P" characters are stripped and the remainder tried as an integer
//   key; if that fails the original product id string is tried verbatim.
//   A transaction with no match is flagged enriched=false and keeps zero
//   metadata.
//
// =============================================================================

package enrichment

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// EnrichTransactions pairs every transaction with its catalog metadata.
// The input is not modified; a fresh slice is returned in input order.
// An empty mapping is valid and yields enriched=false throughout.
func EnrichTransactions(transactions []types.Transaction, mapping map[string]types.ProductInfo) []types.EnrichedTransaction {
	enriched := make([]types.EnrichedTransaction, 0, len(transactions))

	for _, t := range transactions {
		info, ok := lookup(t.ProductID, mapping)
		enriched = append(enriched, types.EnrichedTransaction{
			Transaction: t,
			Product:     info,
			Enriched:    ok,
		})
	}

	return enriched
}

// lookup resolves a feed product id against the catalog mapping.
func lookup(productID string, mapping map[string]types.ProductInfo) (types.ProductInfo, bool) {
	stripped := strings.ReplaceAll(productID, "P", "")

	if n, err := strconv.Atoi(stripped); err == nil {
		info, ok := mapping[strconv.Itoa(n)]
		return info, ok
	}

	// Non-numeric remainder: fall back to the raw product id.
	info, ok := mapping[productID]
	return info, ok
}

// CountEnriched returns the number of records flagged enriched.
func CountEnriched(enriched []types.EnrichedTransaction) int {
	count := 0
	for _, e := range enriched {
		if e.Enriched {
			count++
		}
	}
	return count
}
