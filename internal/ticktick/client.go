package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the TickTick Open API endpoint.
	DefaultBaseURL = "https://api.ticktick.com/open/v1"

	userAgent = "ticktick-access/1.0"

	// requestTimeout bounds every API call. No automatic retries are
	// performed; callers may retry manually.
	requestTimeout = 30 * time.Second
)

// Client is an authenticated TickTick Open API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client that authenticates with the given bearer
// token.
func NewClient(ctx context.Context, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = requestTimeout

	return &Client{
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
	}
}

// NewClientWithBaseURL is NewClient with an overridden API endpoint.
// Used by tests against an httptest server.
func NewClientWithBaseURL(ctx context.Context, token, baseURL string) *Client {
	c := NewClient(ctx, token)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Request issues an authenticated API call and returns the raw response
// body. body is JSON-encoded when non-nil. Any transport or non-2xx HTTP
// outcome is returned as an error; the response body of failed calls is
// included for diagnosis.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, params url.Values) (json.RawMessage, error) {
	reqURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s returned %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	data, err := c.Request(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

// post issues a POST request with a JSON body and decodes the response
// into out when both are non-nil.
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	data, err := c.Request(ctx, http.MethodPost, endpoint, body, nil)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return nil
}

// delete issues a DELETE request. An empty success body counts as success.
func (c *Client) delete(ctx context.Context, endpoint string) error {
	_, err := c.Request(ctx, http.MethodDelete, endpoint, nil, nil)
	return err
}
