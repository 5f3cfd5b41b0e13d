// =============================================================================
// Sales Analytics - Product Catalog Client
// =============================================================================
//
// This module fetches product metadata from the catalog API and shapes it
// into the id -> info mapping the enricher consumes.
//
// FAILURE POLICY:
//   The catalog is a best-effort collaborator. Network errors, bad status
//   codes and malformed payloads all degrade to an EMPTY mapping plus a
//   warning log; they never surface as an error to the pipeline. The
//   pipeline must produce its report with or without enrichment.
//
// =============================================================================

package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/sales-analytics/internal/config"
	"github.com/ginjaninja78/sales-analytics/internal/types"
)

// Client fetches product metadata from the catalog API.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a catalog client from the enrichment configuration.
func NewClient(cfg config.EnrichmentConfig, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		limit:   cfg.Limit,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger.With().Str("component", "enrichment").Logger(),
	}
}

// =============================================================================
// API PAYLOAD
// =============================================================================

// productsResponse mirrors the catalog payload:
//
//	{"products": [{"id": 1, "title": ..., "category": ..., "brand": ..., "rating": ...}, ...]}
type productsResponse struct {
	Products []apiProduct `json:"products"`
}

type apiProduct struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// =============================================================================
// FETCHING
// =============================================================================

// FetchProductMapping fetches the catalog and returns a product-id ->
// metadata mapping. Keys are the decimal string form of the catalog's
// integer ids.
//
// On any failure an empty mapping is returned; the error is logged, not
// propagated.
func (c *Client) FetchProductMapping(ctx context.Context) map[string]types.ProductInfo {
	products, err := c.fetchProducts(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("catalog fetch failed, continuing without enrichment")
		return map[string]types.ProductInfo{}
	}

	c.logger.Info().Int("products", len(products)).Msg("fetched product catalog")

	mapping := make(map[string]types.ProductInfo, len(products))
	for _, p := range products {
		mapping[strconv.Itoa(p.ID)] = types.ProductInfo{
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}

	return mapping
}

// fetchProducts performs the catalog request.
func (c *Client) fetchProducts(ctx context.Context) ([]apiProduct, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload.Products, nil
}
