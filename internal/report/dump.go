// =============================================================================
// Sales Analytics - Enriched Record Dump
// =============================================================================
//
// Renders the enriched transaction set back into pipe-delimited text: one
// header line, then one line per record. The dump keeps the base feed
// columns and appends the enrichment columns; records that did not enrich
// render empty strings for the metadata they lack.
//
// =============================================================================

package report

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/sales-analytics/internal/feed"
	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// baseColumns is the fixed base column set, in feed order.
var baseColumns = []string{
	"TransactionID",
	"Date",
	"ProductID",
	"ProductName",
	"Quantity",
	"UnitPrice",
	"CustomerID",
	"Region",
}

// enrichmentColumns are appended whenever at least one record enriched.
var enrichmentColumns = []string{"title", "category", "brand", "rating"}

// ComposeEnrichedDump builds the enriched-record dump.
//
// RETURNS:
//   - The dump text: a header line listing the columns, then one line per
//     record. An empty input yields an empty string.
func ComposeEnrichedDump(enriched []types.EnrichedTransaction) string {
	if len(enriched) == 0 {
		return ""
	}

	withMetadata := false
	for _, e := range enriched {
		if e.Enriched {
			withMetadata = true
			break
		}
	}

	columns := baseColumns
	if withMetadata {
		columns = append(append([]string{}, baseColumns...), enrichmentColumns...)
	}
	columns = append(append([]string{}, columns...), "enriched")

	var b strings.Builder
	b.WriteString(strings.Join(columns, feed.Delimiter) + "\n")

	for _, e := range enriched {
		b.WriteString(strings.Join(dumpValues(e, withMetadata), feed.Delimiter) + "\n")
	}

	return b.String()
}

// dumpValues renders one record's column values, matching the header
// produced by ComposeEnrichedDump.
func dumpValues(e types.EnrichedTransaction, withMetadata bool) []string {
	values := []string{
		e.TransactionID,
		e.Date,
		e.ProductID,
		e.ProductName,
		strconv.Itoa(e.Quantity),
		strconv.FormatFloat(e.UnitPrice, 'f', -1, 64),
		e.CustomerID,
		e.Region,
	}

	if withMetadata {
		if e.Enriched {
			values = append(values,
				e.Product.Title,
				e.Product.Category,
				e.Product.Brand,
				strconv.FormatFloat(e.Product.Rating, 'f', -1, 64),
			)
		} else {
			values = append(values, "", "", "", "")
		}
	}

	return append(values, strconv.FormatBool(e.Enriched))
}
