// Package frankfurter provides a client for the Frankfurter exchange-rate API.
package frankfurter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/centsible/centsible/internal/common"
	"github.com/centsible/centsible/internal/interfaces"
	"github.com/centsible/centsible/internal/models"
)

// Compile-time interface check
var _ interfaces.RatesClient = (*Client)(nil)

const (
	DefaultBaseURL   = "https://api.frankfurter.dev/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the RatesClient interface.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger.
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Frankfurter client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:  common.NewDefaultLogger(),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, path, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// GetAllRates fetches the latest USD-relative rate table. USD itself is
// pinned at 1.
func (c *Client) GetAllRates(ctx context.Context) (models.RateTable, error) {
	var payload struct {
		Base  string                     `json:"base"`
		Date  string                     `json:"date"`
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := c.get(ctx, "/latest?base=USD", &payload); err != nil {
		return nil, err
	}

	table := models.RateTable{"USD": decimal.NewFromInt(1)}
	for code, r := range payload.Rates {
		table[code] = r
	}

	c.logger.Debug().Int("currencies", len(table)).Str("date", payload.Date).Msg("Rate table fetched")
	return table, nil
}

// GetSupportedCurrencies fetches the code -> display name mapping.
func (c *Client) GetSupportedCurrencies(ctx context.Context) (map[string]string, error) {
	currencies := map[string]string{}
	if err := c.get(ctx, "/currencies", &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}
