package enrichment

import (
	"testing"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

func TestLookup(t *testing.T) {
	mapping := map[string]types.ProductInfo{
		"1":   {Title: "Essence Mascara"},
		"101": {Title: "Wireless Mouse"},
		"ABC": {Title: "Raw Key Product"},
	}

	tests := []struct {
		name      string
		productID string
		wantTitle string
		wantOK    bool
	}{
		{"strips P prefix", "P101", "Wireless Mouse", true},
		{"leading zeros normalize", "P001", "Essence Mascara", true},
		{"plain integer id", "101", "Wireless Mouse", true},
		{"non-numeric falls back to raw id", "ABC", "Raw Key Product", true},
		{"numeric miss", "P999", "", false},
		{"raw miss", "XYZ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := lookup(tt.productID, mapping)
			if ok != tt.wantOK {
				t.Fatalf("lookup(%q) ok = %v, want %v", tt.productID, ok, tt.wantOK)
			}
			if info.Title != tt.wantTitle {
				t.Errorf("lookup(%q) title = %q, want %q", tt.productID, info.Title, tt.wantTitle)
			}
		})
	}
}

func TestEnrichTransactions(t *testing.T) {
	mapping := map[string]types.ProductInfo{
		"101": {Title: "Wireless Mouse", Category: "electronics", Brand: "Logi", Rating: 4.5},
	}
	transactions := []types.Transaction{
		{TransactionID: "T001", ProductID: "P101", ProductName: "Mouse"},
		{TransactionID: "T002", ProductID: "P999", ProductName: "Desk"},
	}

	enriched := EnrichTransactions(transactions, mapping)
	if len(enriched) != 2 {
		t.Fatalf("expected 2 enriched records, got %d", len(enriched))
	}

	if !enriched[0].Enriched {
		t.Error("T001 should have enriched")
	}
	if enriched[0].Product.Title != "Wireless Mouse" {
		t.Errorf("T001 title = %q, want %q", enriched[0].Product.Title, "Wireless Mouse")
	}
	if enriched[0].TransactionID != "T001" {
		t.Error("enrichment must preserve the base transaction")
	}

	if enriched[1].Enriched {
		t.Error("T002 should not have enriched")
	}
	if enriched[1].Product != (types.ProductInfo{}) {
		t.Errorf("unenriched record should carry zero metadata, got %+v", enriched[1].Product)
	}
}

func TestEnrichTransactionsEmptyMapping(t *testing.T) {
	transactions := []types.Transaction{
		{TransactionID: "T001", ProductID: "P101"},
	}

	enriched := EnrichTransactions(transactions, map[string]types.ProductInfo{})
	if len(enriched) != 1 {
		t.Fatalf("expected 1 record, got %d", len(enriched))
	}
	if enriched[0].Enriched {
		t.Error("empty mapping must yield enriched=false")
	}
}

func TestCountEnriched(t *testing.T) {
	enriched := []types.EnrichedTransaction{
		{Enriched: true},
		{Enriched: false},
		{Enriched: true},
	}
	if got := CountEnriched(enriched); got != 2 {
		t.Errorf("CountEnriched = %d, want 2", got)
	}
	if got := CountEnriched(nil); got != 0 {
		t.Errorf("CountEnriched(nil) = %d, want 0", got)
	}
}
