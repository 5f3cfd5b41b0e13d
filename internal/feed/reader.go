// =============================================================================
// Sales Analytics - Feed Reader Module
// =============================================================================
//
// This module reads raw sales feed files and produces the sequence of data
// lines consumed by the record parser. It handles:
//   - Encoding fallback for legacy exports (UTF-8, Latin-1, Windows-1252)
//   - Removal of blank lines
//   - The single header line at the top of every feed
//
// The reader deals purely in text; it never interprets field contents. That
// is the record parser's job.
//
// =============================================================================

package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fallbackEncodings are tried in order when a feed is not valid UTF-8.
// Legacy exports from the reporting system are usually Latin-1; a few
// Windows boxes produce Windows-1252.
var fallbackEncodings = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// =============================================================================
// READING
// =============================================================================

// ReadFeed reads a sales feed file and returns its raw data lines.
// Spreadsheet feeds (.xlsx) are routed to the XLSX reader; everything else
// is treated as delimited text.
//
// PARAMETERS:
//   - path: The path to the feed file.
//
// RETURNS:
//   - The data lines of the feed, header excluded, blank lines removed.
//   - An error if the file cannot be read or decoded.
func ReadFeed(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSXFeed(path)
	}
	return ReadSalesData(path)
}

// ReadSalesData reads a delimited text feed, handling encoding issues.
//
// The first non-blank line is assumed to be the header and is skipped; the
// remaining lines are trimmed and returned. An empty feed (or a feed
// containing only the header) yields an empty slice, not an error.
func ReadSalesData(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file: %w", err)
	}

	text, err := decodeFeed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode feed file %s: %w", path, err)
	}

	lines := cleanLines(strings.Split(text, "\n"))

	// Skip the header row.
	if len(lines) > 0 {
		return lines[1:], nil
	}
	return nil, nil
}

// decodeFeed converts raw feed bytes to a UTF-8 string. Valid UTF-8 input
// is used as-is; otherwise the fallback encodings are tried in order.
func decodeFeed(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, enc := range fallbackEncodings {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		return string(decoded), nil
	}

	return "", fmt.Errorf("no supported encoding matched")
}

// cleanLines trims whitespace and drops blank lines.
func cleanLines(lines []string) []string {
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	return cleaned
}
