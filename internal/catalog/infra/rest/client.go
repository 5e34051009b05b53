// Package rest is the storefront-side catalog reader. The API it talks to
// has historically answered both with bare payloads and with a
// {success, count, data} wrapper, so responses are normalized here before
// they reach the cart or the filter engine.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clothstore/storefront/internal/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, "/api/products")
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	body, err := c.get(ctx, "/api/products/"+url.PathEscape(id))
	if err != nil {
		return domain.Product{}, err
	}

	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.Product{}, fmt.Errorf("decode product: %w", err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

// envelope is the wrapped response shape. Data stays raw so the caller can
// decode either a single product or a list out of it.
type envelope struct {
	Success *bool           `json:"success"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog unreachable: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog read: %w", err)
	}

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, errors.New(errorMessage(body, res.StatusCode))
	}

	return unwrap(body), nil
}

// unwrap returns the wrapper's data field when present, else the payload
// itself.
func unwrap(body []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data
	}
	return body
}

func errorMessage(body []byte, status int) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return env.Error
	}
	return fmt.Sprintf("catalog request failed with status %d", status)
}
