package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/volantino/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the remote flyer catalog/compare API.
// Failures are surfaced to the caller as distinguishable errors and never
// retried here; every retry in this system is user-initiated.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// The scraper backend is a small shared instance; stay polite at a few
	// requests per second with a short burst for pager clicks.
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request/response logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[CATALOG] "+format, args...)
	}
}

// SearchProducts queries GET /products with the given filters. Empty filter
// values are stripped before transmission: the remote API treats an
// explicitly empty filter as a parse error, not as "no filter".
func (c *Client) SearchProducts(ctx context.Context, filters domain.SearchFilters) (*domain.SearchResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	pageSize := filters.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	params := url.Values{}
	params.Add("page", strconv.Itoa(page))
	params.Add("page_size", strconv.Itoa(pageSize))
	addIfSet(params, "q", filters.Query)
	addIfSet(params, "supermarket", filters.Supermarket)
	addIfSet(params, "marca", filters.Marca)
	addIfSet(params, "categoria", filters.Categoria)
	addIfSet(params, "price_min", filters.PriceMin)
	addIfSet(params, "price_max", filters.PriceMax)

	reqURL := fmt.Sprintf("%s/products?%s", c.baseURL, params.Encode())
	c.debugLog("GET %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Volantino/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[CATALOG] products error - status: %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var result domain.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.debugLog("got %d products (total %d)", len(result.Products), result.Total)
	return &result, nil
}

// Compare submits the batched cart projection to POST /compare. The caller
// is expected to short-circuit an empty cart before reaching this method.
func (c *Client) Compare(ctx context.Context, compareReq domain.CompareRequest) (*domain.CompareResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	payload, err := json.Marshal(compareReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode compare request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/compare", c.baseURL)
	c.debugLog("POST %s (%d items)", reqURL, len(compareReq.Items))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Volantino/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCompareFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Printf("[CATALOG] compare error - status: %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrCompareFailed, resp.StatusCode)
	}

	var result domain.CompareResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// ImageURL resolves a relative image path against the API image endpoint.
// Leading slashes and backslashes are stripped before concatenation, the
// same normalization the scraped paths require.
func (c *Client) ImageURL(relative string) string {
	if relative == "" {
		return ""
	}
	return fmt.Sprintf("%s/images/%s", c.baseURL, strings.TrimLeft(relative, "/\\"))
}

// addIfSet adds a query parameter only when the value is non-empty
func addIfSet(params url.Values, key, value string) {
	if value != "" {
		params.Add(key, value)
	}
}
