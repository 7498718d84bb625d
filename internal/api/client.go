package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/nhle/todolists/internal/logger"
)

// Client is a thin HTTP client for the todo-list REST API. It sends the
// static API-KEY header, keeps the session cookie in its own jar and
// handles JSON (de)serialization. It never retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        logger.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.log = l.With("component", "api")
	}
}

// WithHTTPClient replaces the underlying transport. The client's cookie
// jar is kept unless hc already has one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		jar := c.httpClient.Jar
		c.httpClient = hc
		if c.httpClient.Jar == nil {
			c.httpClient.Jar = jar
		}
	}
}

// NewClient creates a new API client. The baseURL includes the version
// path (e.g., https://example.com/api/1.1).
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	// cookiejar.New only fails when given a PublicSuffixList that errors.
	jar, _ := cookiejar.New(nil)

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Jar: jar,
		},
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root URL requests are issued against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodDelete, path, nil, result)
}

// do is the core HTTP method that builds the request, sets headers and
// decodes the JSON response. Non-2xx statuses are returned as *Error.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body any,
	result any,
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	c.log.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       string(respBody),
		}
		var msg errorBody
		if json.Unmarshal(respBody, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w",
			method, path, err,
		)
	}

	return nil
}
