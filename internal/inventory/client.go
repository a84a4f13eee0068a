package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ClientConfig holds vendor API credentials.
type ClientConfig struct {
	BaseURL string
	User    string
	APIKey  string
}

// Client reads products from the vendor REST API.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a vendor API client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Products fetches all SKUs of a style.
func (c *Client) Products(ctx context.Context, styleID string) ([]Product, error) {
	endpoint := c.baseURL + "/v2/products/?style=" + url.QueryEscape(styleID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}
	req.SetBasicAuth(c.config.User, c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request products for style %s: %w", styleID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("style %s: %w", styleID, ErrStyleNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("products for style %s: status %d: %s", styleID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products for style %s: %w", styleID, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("style %s: %w", styleID, ErrStyleNotFound)
	}
	return products, nil
}
