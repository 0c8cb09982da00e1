// Package upstream provides the HTTP client used to talk to the PxWeb v2 API.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pxbridge/pxbridge/pkg/version"
	"go.uber.org/zap"
)

// Client issues GET requests against the upstream PxWeb v2 API.
// It is safe for concurrent use: every call builds its own request and
// no state is shared between invocations.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	userAgent  string
}

// NewClient creates an upstream client for the given base URL.
// A trailing slash on the base URL is dropped so path joining stays predictable.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger:    logger,
		userAgent: "pxbridge/" + version.GetVersion(),
	}
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request against the upstream API and returns the
// response body. The query values are encoded onto the URL as-is.
// Any response with a status outside [200,299] is an error carrying the
// status code and the full response body as diagnostic text.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	c.logger.Debug("upstream request", zap.String("method", http.MethodGet), zap.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("upstream request failed",
			zap.String("url", reqURL),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	// The body is read fully even on failure so the caller gets the
	// upstream's diagnostic text.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	c.logger.Debug("upstream response",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
		zap.Int("body_bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
