// Package client is a typed wrapper around the inventory HTTP API.
// It performs no validation of its own; the server is authoritative.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/01moynul/inventory-dashboard/internal/models"
)

// Re-exported so callers outside this module can name the payloads.
type (
	Product         = models.Product
	Price           = models.Price
	InsertProduct   = models.InsertProduct
	UpdateProduct   = models.UpdateProduct
	ProductStats    = models.ProductStats
	InventoryReport = models.InventoryReport
	FieldError      = models.FieldError
)

// ParsePrice converts "12.5" into a two-decimal Price.
func ParsePrice(s string) (Price, error) {
	return models.NewPrice(s)
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int          `json:"-"`
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%d %s (%s)", e.StatusCode, e.Message, strings.Join(parts, "; "))
}

// Client talks to one API base URL, e.g. "http://localhost:5000".
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListParams mirrors the query string of GET /api/products.
// Empty fields are omitted.
type ListParams struct {
	Search    string
	SortBy    string
	SortOrder string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		v.Set("sortOrder", p.SortOrder)
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, params ListParams) ([]Product, error) {
	var out []Product
	err := c.do(ctx, http.MethodGet, "/api/products", params.values(), nil, &out)
	return out, err
}

func (c *Client) GetProductStats(ctx context.Context) (ProductStats, error) {
	var out ProductStats
	err := c.do(ctx, http.MethodGet, "/api/products/stats", nil, nil, &out)
	return out, err
}

func (c *Client) GetInventoryReport(ctx context.Context) (InventoryReport, error) {
	var out InventoryReport
	err := c.do(ctx, http.MethodGet, "/api/products/reports", nil, nil, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, id int64) (Product, error) {
	var out Product
	err := c.do(ctx, http.MethodGet, productPath(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, in InsertProduct) (Product, error) {
	var out Product
	err := c.do(ctx, http.MethodPost, "/api/products", nil, in, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, up UpdateProduct) (Product, error) {
	var out Product
	err := c.do(ctx, http.MethodPut, productPath(id), nil, up, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil, nil)
}

// ExportProductsCSV copies the CSV export into w.
func (c *Client) ExportProductsCSV(ctx context.Context, search string, w io.Writer) error {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	resp, err := c.send(ctx, http.MethodGet, "/api/products/export", q, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func productPath(id int64) string {
	return "/api/products/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}
