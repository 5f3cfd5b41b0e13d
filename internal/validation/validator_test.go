package validation

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// tx builds a valid transaction; tests mutate single fields to break rules.
func tx() types.Transaction {
	return types.Transaction{
		TransactionID: "T001",
		Date:          "2024-12-01",
		ProductID:     "P101",
		ProductName:   "Mouse",
		Quantity:      10,
		UnitPrice:     25.00,
		CustomerID:    "C001",
		Region:        "North",
	}
}

func f64(v float64) *float64 { return &v }

func TestIsValid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Transaction)
		want   bool
	}{
		{"valid record", func(t *types.Transaction) {}, true},
		{"zero quantity", func(t *types.Transaction) { t.Quantity = 0 }, false},
		{"negative quantity", func(t *types.Transaction) { t.Quantity = -3 }, false},
		{"zero unit price", func(t *types.Transaction) { t.UnitPrice = 0 }, false},
		{"negative unit price", func(t *types.Transaction) { t.UnitPrice = -1.50 }, false},
		{"empty transaction id", func(t *types.Transaction) { t.TransactionID = "" }, false},
		{"empty date", func(t *types.Transaction) { t.Date = "" }, false},
		{"empty product id", func(t *types.Transaction) { t.ProductID = "" }, false},
		{"empty product name", func(t *types.Transaction) { t.ProductName = "" }, false},
		{"empty customer id", func(t *types.Transaction) { t.CustomerID = "" }, false},
		{"empty region", func(t *types.Transaction) { t.Region = "" }, false},
		{"wrong transaction prefix", func(t *types.Transaction) { t.TransactionID = "X001" }, false},
		{"wrong product prefix", func(t *types.Transaction) { t.ProductID = "Q101" }, false},
		{"wrong customer prefix", func(t *types.Transaction) { t.CustomerID = "K001" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := tx()
			tt.mutate(&record)
			if got := IsValid(record); got != tt.want {
				t.Errorf("IsValid = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateAndFilterCountConservation(t *testing.T) {
	invalid := tx()
	invalid.Quantity = 0

	records := []types.Transaction{tx(), invalid, tx(), tx()}

	result := ValidateAndFilter(records, FilterOptions{})

	if result.Summary.TotalInput != 4 {
		t.Errorf("TotalInput = %d, want 4", result.Summary.TotalInput)
	}
	if result.Summary.Invalid != 1 {
		t.Errorf("Invalid = %d, want 1", result.Summary.Invalid)
	}
	if result.InvalidCount != result.Summary.Invalid {
		t.Errorf("InvalidCount %d disagrees with summary %d",
			result.InvalidCount, result.Summary.Invalid)
	}

	validBefore := result.Summary.TotalInput - result.Summary.Invalid
	got := result.Summary.FinalCount + result.Summary.FilteredByRegion + result.Summary.FilteredByAmount
	if validBefore != got {
		t.Errorf("count conservation broken: valid=%d, final+filtered=%d", validBefore, got)
	}
}

func TestValidateAndFilterRegion(t *testing.T) {
	// 10 valid records, 4 of them North.
	var records []types.Transaction
	for i := 0; i < 10; i++ {
		r := tx()
		r.TransactionID = fmt.Sprintf("T%03d", i)
		if i >= 4 {
			r.Region = "South"
		}
		records = append(records, r)
	}

	result := ValidateAndFilter(records, FilterOptions{Region: "North"})

	if result.Summary.FilteredByRegion != 6 {
		t.Errorf("FilteredByRegion = %d, want 6", result.Summary.FilteredByRegion)
	}
	if result.Summary.FinalCount != 4 {
		t.Errorf("FinalCount = %d, want 4", result.Summary.FinalCount)
	}
	for _, r := range result.Valid {
		if r.Region != "North" {
			t.Errorf("record %s leaked through the region filter", r.TransactionID)
		}
	}
}

func TestValidateAndFilterRegionIsCaseSensitive(t *testing.T) {
	result := ValidateAndFilter([]types.Transaction{tx()}, FilterOptions{Region: "north"})

	if result.Summary.FinalCount != 0 {
		t.Errorf("FinalCount = %d, want 0 for a case mismatch", result.Summary.FinalCount)
	}
	if result.Summary.FilteredByRegion != 1 {
		t.Errorf("FilteredByRegion = %d, want 1", result.Summary.FilteredByRegion)
	}
}

func TestValidateAndFilterAmountBounds(t *testing.T) {
	cheap := tx()
	cheap.Quantity = 1
	cheap.UnitPrice = 10 // amount 10

	mid := tx()
	mid.Quantity = 2
	mid.UnitPrice = 50 // amount 100

	expensive := tx()
	expensive.Quantity = 10
	expensive.UnitPrice = 100 // amount 1000

	records := []types.Transaction{cheap, mid, expensive}

	tests := []struct {
		name      string
		opts      FilterOptions
		wantFinal int
		wantCut   int
	}{
		{"no bounds", FilterOptions{}, 3, 0},
		{"min only", FilterOptions{MinAmount: f64(100)}, 2, 1},
		{"max only", FilterOptions{MaxAmount: f64(100)}, 2, 1},
		{"both bounds", FilterOptions{MinAmount: f64(50), MaxAmount: f64(500)}, 1, 2},
		{"bounds are inclusive", FilterOptions{MinAmount: f64(10), MaxAmount: f64(1000)}, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateAndFilter(records, tt.opts)
			if result.Summary.FinalCount != tt.wantFinal {
				t.Errorf("FinalCount = %d, want %d", result.Summary.FinalCount, tt.wantFinal)
			}
			if result.Summary.FilteredByAmount != tt.wantCut {
				t.Errorf("FilteredByAmount = %d, want %d", result.Summary.FilteredByAmount, tt.wantCut)
			}
		})
	}
}

// Removal counts are relative to the shrinking set: the amount filter only
// sees what survived the region filter.
func TestValidateAndFilterSequentialCounts(t *testing.T) {
	north := tx() // amount 250, North

	northBig := tx()
	northBig.Quantity = 100 // amount 2500, North

	south := tx()
	south.Region = "South"
	south.Quantity = 100 // amount 2500, South

	records := []types.Transaction{north, northBig, south}

	result := ValidateAndFilter(records, FilterOptions{
		Region:    "North",
		MaxAmount: f64(500),
	})

	if result.Summary.FilteredByRegion != 1 {
		t.Errorf("FilteredByRegion = %d, want 1", result.Summary.FilteredByRegion)
	}
	// south was already gone; only northBig is cut by amount.
	if result.Summary.FilteredByAmount != 1 {
		t.Errorf("FilteredByAmount = %d, want 1", result.Summary.FilteredByAmount)
	}
	if result.Summary.FinalCount != 1 {
		t.Errorf("FinalCount = %d, want 1", result.Summary.FinalCount)
	}
}

func TestInsights(t *testing.T) {
	west := tx()
	west.Region = "West"
	west.Quantity = 1
	west.UnitPrice = 5 // amount 5

	east := tx()
	east.Region = "East"
	east.Quantity = 4
	east.UnitPrice = 100 // amount 400

	result := ValidateAndFilter([]types.Transaction{tx(), west, east}, FilterOptions{})

	if !result.Insights.HasData {
		t.Fatal("Insights.HasData = false, want true")
	}
	if want := []string{"East", "North", "West"}; !reflect.DeepEqual(result.Insights.Regions, want) {
		t.Errorf("Regions = %v, want %v", result.Insights.Regions, want)
	}
	if result.Insights.MinAmount != 5 {
		t.Errorf("MinAmount = %v, want 5", result.Insights.MinAmount)
	}
	if result.Insights.MaxAmount != 400 {
		t.Errorf("MaxAmount = %v, want 400", result.Insights.MaxAmount)
	}
}

func TestInsightsEmptyValidSet(t *testing.T) {
	invalid := tx()
	invalid.Quantity = 0

	result := ValidateAndFilter([]types.Transaction{invalid}, FilterOptions{})

	if result.Insights.HasData {
		t.Error("Insights.HasData = true for an empty valid set")
	}
	if len(result.Insights.Regions) != 0 {
		t.Errorf("Regions = %v, want empty", result.Insights.Regions)
	}
}

// Insights describe the valid set BEFORE filtering, not the filtered one.
func TestInsightsComputedBeforeFilters(t *testing.T) {
	south := tx()
	south.Region = "South"

	result := ValidateAndFilter([]types.Transaction{tx(), south}, FilterOptions{Region: "North"})

	if want := []string{"North", "South"}; !reflect.DeepEqual(result.Insights.Regions, want) {
		t.Errorf("Regions = %v, want %v", result.Insights.Regions, want)
	}
}
