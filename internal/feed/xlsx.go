// =============================================================================
// Sales Analytics - XLSX Feed Reader
// =============================================================================
//
// Some upstream teams export the sales feed as a spreadsheet instead of
// delimited text. This reader flattens the first worksheet back into the
// same pipe-delimited lines the text reader produces, so the rest of the
// pipeline is unaware of the source format.
//
// =============================================================================

package feed

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXFeed reads a spreadsheet feed and returns its data lines in the
// standard pipe-delimited form.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//
// RETURNS:
//   - One pipe-joined line per data row of the first sheet, header row
//     excluded, empty rows removed.
//   - An error if the workbook cannot be opened or read.
//
// Rows with an unexpected cell count are returned as-is; the record parser
// rejects them the same way it rejects malformed text lines.
func ReadXLSXFeed(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	var lines []string
	for i, row := range rows {
		// Row 0 is the header.
		if i == 0 || isRowEmpty(row) {
			continue
		}
		lines = append(lines, strings.Join(row, "|"))
	}

	return lines, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
