// =============================================================================
// Sales Analytics - Record Parser
// =============================================================================
//
// This module turns raw feed lines into typed transaction records. The feed
// is loosely structured: numeric fields may carry thousands-separator
// commas, product names may contain commas of their own, and malformed rows
// appear routinely.
//
// PARSING RULES:
//   - Fields are separated by a pipe ("|"); a line must have exactly 8.
//   - Field order: TransactionID, Date, ProductID, ProductName, Quantity,
//     UnitPrice, CustomerID, Region.
//   - Commas in the product name are replaced with single spaces.
//   - Commas in Quantity and UnitPrice are stripped before conversion.
//   - Every field is trimmed after cleaning.
//
// Lines that cannot be parsed (wrong field count, non-numeric quantity or
// price) are silently omitted. That is deliberate: "could not parse" and
// "failed validation" are different tiers, and only the latter is counted.
// See the validation package for the counted tier.
//
// =============================================================================

package feed

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// FieldCount is the exact number of pipe-delimited fields in a feed record.
const FieldCount = 8

// Delimiter separates fields within a feed line.
const Delimiter = "|"

// =============================================================================
// PARSING
// =============================================================================

// ParseTransactions parses raw feed lines into a clean slice of
// transactions.
//
// PARAMETERS:
//   - rawLines: The data lines of a feed, header already excluded.
//
// RETURNS:
//   - Every record that parsed successfully, in feed order. Unparseable
//     lines are dropped without error; no partially populated record is
//     ever emitted.
func ParseTransactions(rawLines []string) []types.Transaction {
	transactions := make([]types.Transaction, 0, len(rawLines))

	for _, line := range rawLines {
		t, ok := ParseLine(line)
		if !ok {
			continue
		}
		transactions = append(transactions, t)
	}

	return transactions
}

// ParseLine parses a single feed line. The second return value is false
// when the line is malformed.
func ParseLine(line string) (types.Transaction, bool) {
	fields := strings.Split(line, Delimiter)
	if len(fields) != FieldCount {
		return types.Transaction{}, false
	}

	// Product names such as "Mouse,Wireless" are normalized to
	// "Mouse Wireless" before trimming.
	productName := strings.ReplaceAll(fields[3], ",", " ")

	quantity, err := strconv.Atoi(stripThousands(fields[4]))
	if err != nil {
		return types.Transaction{}, false
	}

	unitPrice, err := strconv.ParseFloat(stripThousands(fields[5]), 64)
	if err != nil {
		return types.Transaction{}, false
	}

	return types.Transaction{
		TransactionID: strings.TrimSpace(fields[0]),
		Date:          strings.TrimSpace(fields[1]),
		ProductID:     strings.TrimSpace(fields[2]),
		ProductName:   strings.TrimSpace(productName),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    strings.TrimSpace(fields[6]),
		Region:        strings.TrimSpace(fields[7]),
	}, true
}

// stripThousands prepares a numeric field for conversion: surrounding
// whitespace and thousands-separator commas are removed.
func stripThousands(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}
