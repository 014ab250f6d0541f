// Package client talks to the catalog HTTP API on behalf of the shopper CLI.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/elegance/jewelry-catalog/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func New(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// Products lists the catalog, applying filter on the server.
func (c *Client) Products(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if len(filter.Tags) > 0 {
		q.Set("tags", strings.Join(filter.Tags, ","))
	}
	if filter.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}

	var products []domain.Product
	if err := c.get(ctx, "/api/products", q, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Product fetches one product; an unknown id is domain.ErrProductNotFound.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := c.get(ctx, "/api/products/"+url.PathEscape(id), nil, &p)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Filters(ctx context.Context) (*domain.Facets, error) {
	var f domain.Facets
	if err := c.get(ctx, "/api/filters", nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *Client) StoreStatus(ctx context.Context) (*domain.StoreStatus, error) {
	var s domain.StoreStatus
	if err := c.get(ctx, "/api/store/status", nil, &s); err != nil {
		return nil, err
	}
	if !s.Status.Valid() {
		return nil, fmt.Errorf("store status: unexpected value %q", s.Status)
	}
	return &s, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("api request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// errorMessage extracts the message of an error envelope, falling back to the raw body.
func errorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		if envelope.Error != "" && envelope.Error != envelope.Message {
			return envelope.Message + ": " + envelope.Error
		}
		return envelope.Message
	}
	return strings.TrimSpace(string(raw))
}
