package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/sales-analytics/internal/config"
)

func testClient(baseURL string) *Client {
	return NewClient(config.EnrichmentConfig{
		BaseURL:        baseURL,
		Limit:          100,
		TimeoutSeconds: 5,
	}, zerolog.Nop())
}

func TestFetchProductMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit query = %q, want %q", got, "100")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products": [
			{"id": 1, "title": "Essence Mascara", "category": "beauty", "brand": "Essence", "rating": 4.94},
			{"id": 2, "title": "Eyeshadow Palette", "category": "beauty", "brand": "Glamour", "rating": 3.28}
		]}`))
	}))
	defer server.Close()

	mapping := testClient(server.URL).FetchProductMapping(context.Background())
	if len(mapping) != 2 {
		t.Fatalf("expected 2 products, got %d", len(mapping))
	}

	info, ok := mapping["1"]
	if !ok {
		t.Fatal("product id 1 missing from mapping")
	}
	if info.Title != "Essence Mascara" || info.Category != "beauty" || info.Brand != "Essence" || info.Rating != 4.94 {
		t.Errorf("unexpected product info: %+v", info)
	}
}

func TestFetchProductMappingServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	mapping := testClient(server.URL).FetchProductMapping(context.Background())
	if len(mapping) != 0 {
		t.Errorf("server error must yield empty mapping, got %d entries", len(mapping))
	}
}

func TestFetchProductMappingMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": not json`))
	}))
	defer server.Close()

	mapping := testClient(server.URL).FetchProductMapping(context.Background())
	if len(mapping) != 0 {
		t.Errorf("malformed payload must yield empty mapping, got %d entries", len(mapping))
	}
}

func TestFetchProductMappingUnreachable(t *testing.T) {
	// Reserve a port, then close it so the request is refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	mapping := testClient(url).FetchProductMapping(context.Background())
	if len(mapping) != 0 {
		t.Errorf("unreachable catalog must yield empty mapping, got %d entries", len(mapping))
	}
}
