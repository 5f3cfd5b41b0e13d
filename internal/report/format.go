// =============================================================================
// Sales Analytics - Report Formatting Helpers
// =============================================================================

package report

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// currencyPrinter renders numbers the way the report contract demands:
// thousands separators, US grouping.
var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// formatAmount renders a currency value with thousands separators and
// exactly 2 decimal places, e.g. 1234567.891 -> "1,234,567.89".
// The leading "$" is the caller's business.
func formatAmount(v float64) string {
	return currencyPrinter.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// formatPercent renders an already-rounded percentage with its natural
// number of decimals, keeping at least one so whole numbers read as
// "100.0" rather than "100".
func formatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
