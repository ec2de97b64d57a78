package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rafaeltorres/rocketcart-backend/pkg/config"
	pkgerrors "github.com/rafaeltorres/rocketcart-backend/pkg/errors"
	"github.com/rafaeltorres/rocketcart-backend/pkg/metrics"
)

const (
	oracleStock   = "stock"
	oracleCatalog = "catalog"

	outcomeOK    = "ok"
	outcomeError = "error"
)

// Client queries the storefront's stock and catalog oracles over HTTP.
// Queries are never retried; a failure aborts the cart operation that
// issued it.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.CartMetrics
}

// NewClient builds an oracle client for the configured upstream. A zero
// request timeout leaves queries unbounded.
func NewClient(cfg config.CatalogConfig, m *metrics.CartMetrics) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		metrics: m,
	}, nil
}

// GetStock returns the available amount for the product at query time.
func (c *Client) GetStock(ctx context.Context, productID string) (int, error) {
	var payload stockResponse
	if err := c.getJSON(ctx, oracleStock, "/stock/"+url.PathEscape(productID), &payload); err != nil {
		return 0, err
	}
	return payload.Amount, nil
}

// GetProduct returns the static attributes for the product.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var payload Product
	if err := c.getJSON(ctx, oracleCatalog, "/products/"+url.PathEscape(productID), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) getJSON(ctx context.Context, oracle, path string, dest any) error {
	start := time.Now()
	err := c.doJSON(ctx, path, dest)
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}
	c.metrics.ObserveOracle(oracle, outcome, time.Since(start))
	return err
}

func (c *Client) doJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build oracle request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query oracle")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("oracle returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode oracle response")
	}
	return nil
}
