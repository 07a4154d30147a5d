// Package catalog fetches product details from an external product API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sales-analytics/models"
	"sales-analytics/utils"
)

const descriptionLimit = 100

// ErrNotFound is returned when the catalog has no entry for a product.
var ErrNotFound = errors.New("catalog: product not found")

// Client looks products up over HTTP. Products are addressed by the last
// two characters of their id, e.g. P101 → <base>/01.
type Client struct {
	baseURL string
	http    *http.Client
	retry   *utils.RetryConfig
	logger  *utils.Logger
}

// NewClient creates a Client. timeout bounds each HTTP request, maxAttempts
// bounds retries of transient failures.
func NewClient(baseURL string, timeout time.Duration, maxAttempts int, logger *utils.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		retry: &utils.RetryConfig{
			MaxAttempts: maxAttempts,
			BaseDelay:   500 * time.Millisecond,
			Logger:      logger,
		},
		logger: logger,
	}
}

type apiProduct struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Price       *float64    `json:"price"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Rating      *struct {
		Rate *float64 `json:"rate"`
	} `json:"rating"`
}

// Lookup fetches the catalog entry for productID.
func (c *Client) Lookup(ctx context.Context, productID string) (*models.ProductInfo, error) {
	url := c.productURL(productID)

	var info *models.ProductInfo
	err := c.retry.Do(ctx, "catalog-lookup-"+productID, func(ctx context.Context) error {
		var err error
		info, err = c.fetch(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) productURL(productID string) string {
	key := productID
	if r := []rune(productID); len(r) > 2 {
		key = string(r[len(r)-2:])
	}
	return c.baseURL + "/" + key
}

func (c *Client) fetch(ctx context.Context, url string) (*models.ProductInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, utils.Permanent(fmt.Errorf("catalog: build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, utils.Permanent(ErrNotFound)
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("catalog: GET %s: status %d", url, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, utils.Permanent(fmt.Errorf("catalog: GET %s: status %d", url, resp.StatusCode))
	}

	var p apiProduct
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		// Some APIs answer 200 with an empty body for unknown ids.
		return nil, utils.Permanent(fmt.Errorf("catalog: decode %s: %w", url, err))
	}

	info := &models.ProductInfo{
		APIProductID: p.ID.String(),
		Title:        p.Title,
		Price:        p.Price,
		Category:     p.Category,
		Description:  truncateDescription(p.Description),
	}
	if info.Title == "" {
		info.Title = "Unknown"
	}
	if info.Category == "" {
		info.Category = "Unknown"
	}
	if p.Rating != nil {
		info.Rating = p.Rating.Rate
	}
	return info, nil
}

func truncateDescription(s string) string {
	r := []rune(s)
	if len(r) > descriptionLimit {
		r = r[:descriptionLimit]
	}
	return string(r) + "..."
}
