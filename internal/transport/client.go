// Package transport provides the shared HTTP plumbing for supplier
// collectors: a timeout-bounded client, context-aware requests and
// response decoding helpers for the XML and JSON feed formats.
package transport

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/carvoy/locmerge/pkg/errors"
)

// DefaultTimeout bounds a single supplier HTTP request.
const DefaultTimeout = 30 * time.Second

// Client wraps http.Client with supplier-feed conventions.
type Client struct {
	http     *http.Client
	supplier string
}

// New creates a transport client for the named supplier.
func New(supplier string) *Client {
	return &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		supplier: supplier,
	}
}

// NewWithTimeout creates a transport client with a custom request timeout.
func NewWithTimeout(supplier string, timeout time.Duration) *Client {
	return &Client{
		http:     &http.Client{Timeout: timeout},
		supplier: supplier,
	}
}

// Get performs a GET request against the supplier endpoint and returns the
// raw body. Non-2xx responses become APIErrors.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &errors.APIError{
			Supplier: c.supplier,
			Endpoint: endpoint,
			Message:  "failed to build request",
			Err:      err,
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Supplier: c.supplier,
			Endpoint: endpoint,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.APIError{
			Supplier:   c.supplier,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	return body, nil
}

// GetXML performs a GET request and decodes the XML payload into target.
func (c *Client) GetXML(ctx context.Context, endpoint string, query url.Values, target any) error {
	body, err := c.Get(ctx, endpoint, query)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(body, target); err != nil {
		return errors.WrapParse("xml", c.supplier+" response", err)
	}
	return nil
}

// GetJSON performs a GET request and decodes the JSON payload into target.
func (c *Client) GetJSON(ctx context.Context, endpoint string, query url.Values, target any) error {
	body, err := c.Get(ctx, endpoint, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", c.supplier+" response", err)
	}
	return nil
}
