package okx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

const (
	defaultBaseURL = "https://www.okx.com"

	pathServerTime    = "/api/v5/public/time"
	pathInstruments   = "/api/v5/public/instruments"
	pathAccountConfig = "/api/v5/account/config"
	pathBalance       = "/api/v5/account/balance"
	pathPositions     = "/api/v5/account/positions"
	pathPlaceOrder    = "/api/v5/trade/order"

	defaultHTTPTimeout = 15 * time.Second
	serverTimeTimeout  = 5 * time.Second
)

// Credentials holds the signing material for private endpoints.
// Immutable after load.
type Credentials struct {
	APIKey     string
	APISecret  string
	Passphrase string
	// Simulated routes signed requests to the paper-trading environment.
	Simulated bool
}

// complete reports whether every signing field is present. An incomplete
// credential set is a fatal configuration error for any signed call.
func (c Credentials) complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.Passphrase != ""
}

// Client coordinates requests against the OKX v5 REST API. Public metadata
// lookups go through a bounded-retry fetcher; signed order submission is
// always a single attempt to avoid duplicate fills.
type Client struct {
	baseURL    string
	creds      Credentials
	market     string // default market for bare symbols: "swap" or "spot"
	marginMode string // default tdMode: "cross", "isolated" or "cash"
	httpClient *http.Client
	retry      *exchange.RetryHandler
	clock      func() time.Time
}

// ClientOption customises the OKX client.
type ClientOption func(*Client)

// WithBaseURL overrides the venue endpoint, primarily for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithClock overrides the local time source used when the venue clock is
// unreachable (primarily for testing).
func WithClock(clock func() time.Time) ClientOption {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRetry overrides the metadata retry policy.
func WithRetry(cfg exchange.RetryConfig) ClientOption {
	return func(c *Client) {
		c.retry = exchange.NewRetryHandler(cfg)
	}
}

// WithDefaultMarket sets the default market ("swap" or "spot").
func WithDefaultMarket(market string) ClientOption {
	return func(c *Client) {
		if m := strings.ToLower(strings.TrimSpace(market)); m != "" {
			c.market = m
		}
	}
}

// WithDefaultMarginMode sets the default tdMode for non-spot orders.
func WithDefaultMarginMode(mode string) ClientOption {
	return func(c *Client) {
		if m := strings.ToLower(strings.TrimSpace(mode)); m != "" {
			c.marginMode = m
		}
	}
}

// NewClient constructs an OKX client. Credentials may be incomplete for
// public-only use; any signed call will reject before touching the network.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		creds:      creds,
		market:     "swap",
		marginMode: "cross",
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		retry:      exchange.NewRetryHandler(exchange.RetryConfig{}),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// doSigned executes one authenticated request. Never retried: a timeout on
// an order POST must surface rather than risk a duplicate fill.
func (c *Client) doSigned(ctx context.Context, method, requestPath, body string) (*apiResponse, error) {
	headers, err := c.signedHeaders(ctx, method, requestPath, body)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+requestPath, reader)
	if err != nil {
		return nil, exchange.WrapError(exchange.KindUpstreamUnavailable, err, "okx: build %s %s", method, requestPath)
	}
	req.Header = headers

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, exchange.WrapError(exchange.KindUpstreamUnavailable, ctx.Err(), "okx: %s %s cancelled", method, requestPath)
		}
		return nil, exchange.WrapError(exchange.KindUpstreamUnavailable, err, "okx: %s %s", method, requestPath)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exchange.WrapError(exchange.KindUpstreamUnavailable, err, "okx: read %s %s response", method, requestPath)
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Code == "" {
		// No parseable venue envelope; classify by transport status.
		logx.WithContext(ctx).Errorf("okx: unparseable response path=%s status=%d", requestPath, resp.StatusCode)
		return nil, exchange.NewError(exchange.KindUpstreamUnavailable,
			"okx: %s %s returned status %d with unparseable body", method, requestPath, resp.StatusCode)
	}
	return &envelope, nil
}

// decodeData unmarshals the envelope's data array into out.
func decodeData(envelope *apiResponse, out any) error {
	if len(envelope.Data) == 0 {
		return exchange.NewError(exchange.KindUpstreamUnavailable, "okx: response carried no data")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return exchange.WrapError(exchange.KindUpstreamUnavailable, err, "okx: decode response data")
	}
	return nil
}
