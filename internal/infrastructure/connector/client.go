package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

// DefaultUserAgent is sent on every outbound request. Sources serve bot
// traffic differently, so it mimics a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const (
	defaultTimeout = 20 * time.Second
	defaultRPS     = 2.0
	maxBodyBytes   = 8 << 20
)

// ClientConfig holds configuration for the shared connector HTTP client.
type ClientConfig struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
}

// Client is the HTTP client shared by the source connectors. It paces
// outbound requests with a rate limiter so bursts of searches do not hammer
// the retail sites.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// NewClient creates a connector client with sane defaults for unset fields.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(rate.Limit(rps), 5),
	}
}

// Get performs a GET with query parameters and returns the response body.
// Non-2xx statuses are errors.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := rawURL
	if len(params) > 0 {
		reqURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "es-PE,es;q=0.9")

	return c.do(req)
}

// PostJSON performs a POST with a JSON body and extra headers, returning the
// response body.
func (c *Client) PostJSON(ctx context.Context, rawURL string, headers map[string]string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrSourceFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceFailure, resp.StatusCode)
	}

	return body, nil
}
