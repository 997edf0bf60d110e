package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/favoritesapp/favorites-api/pkg/logger"
)

// Client is a thin client for the external product catalog (Fake Store API).
// Every call is bounded by the client timeout and never retried; failures are
// logged here and reported to callers as an error they treat as absence.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client with a bounded timeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// GetAllProducts fetches the full catalog listing
func (c *Client) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID fetches a single product by its upstream id
func (c *Client) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}
	// Fake Store returns 200 with an empty body for unknown ids
	if product.ID == 0 {
		return nil, fmt.Errorf("product %d not found in catalog", id)
	}
	return &product, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error(ctx).
			Err(err).
			Str("endpoint", endpoint).
			Str("url", url).
			Msg("Catalog request failed")
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error(ctx).
			Str("endpoint", endpoint).
			Str("url", url).
			Int("status", resp.StatusCode).
			Msg("Catalog returned non-success status")
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("endpoint", endpoint).
			Msg("Failed to decode catalog response")
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return nil
}
