// Package catalog is the outbound HTTP client for the book catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
	"github.com/smartinix/order-service/internal/domains/orders/ports"
)

var _ ports.Catalog = (*Client)(nil)

// Client resolves book metadata by ISBN against the catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the catalog client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// bookPayload is the catalog wire representation.
type bookPayload struct {
	ISBN   string          `json:"isbn"`
	Title  string          `json:"title"`
	Author string          `json:"author"`
	Price  decimal.Decimal `json:"price"`
}

// GetBookByISBN fetches a book from the catalog. A 404 means the ISBN is
// unknown and yields (nil, nil); any other non-200 status is an error.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("catalog client not configured")
	}
	endpoint := fmt.Sprintf("%s/books/%s", c.baseURL, url.PathEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call catalog API: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var payload bookPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode catalog response: %w", err)
		}
		return &domain.Book{
			ISBN:   payload.ISBN,
			Title:  payload.Title,
			Author: payload.Author,
			Price:  payload.Price,
		}, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("catalog API unexpected status: %s", resp.Status)
	}
}
