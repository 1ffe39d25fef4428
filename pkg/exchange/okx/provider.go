package okx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// Provider wraps Client to satisfy the exchange.Provider interface.
type Provider struct {
	client *Client
}

// NewProvider constructs an OKX exchange provider.
func NewProvider(creds Credentials, opts ...ClientOption) *Provider {
	return &Provider{client: NewClient(creds, opts...)}
}

func init() {
	exchange.RegisterProvider("okx", func(name string, cfg *exchange.ProviderConfig) (exchange.Provider, error) {
		creds := Credentials{
			APIKey:     cfg.APIKey,
			APISecret:  cfg.APISecret,
			Passphrase: cfg.Passphrase,
			Simulated:  cfg.Simulated,
		}
		opts := []ClientOption{}
		if cfg.BaseURL != "" {
			opts = append(opts, WithBaseURL(cfg.BaseURL))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		if cfg.Market != "" {
			opts = append(opts, WithDefaultMarket(cfg.Market))
		}
		if cfg.MarginMode != "" {
			opts = append(opts, WithDefaultMarginMode(cfg.MarginMode))
		}
		if cfg.MaxAttempts > 0 {
			opts = append(opts, WithRetry(exchange.RetryConfig{MaxAttempts: cfg.MaxAttempts}))
		}
		return NewProvider(creds, opts...), nil
	})
}

// PlaceOrder delegates to the underlying client.
func (p *Provider) PlaceOrder(ctx context.Context, intent exchange.OrderIntent) (*exchange.OrderResult, error) {
	return p.client.PlaceOrder(ctx, intent)
}

// ClosePositions flattens matching legs for the symbol.
func (p *Provider) ClosePositions(ctx context.Context, symbol string, scope exchange.CloseScope) ([]*exchange.OrderResult, error) {
	return p.client.ClosePositions(ctx, symbol, scope)
}

// GetPositions fetches open positions for the symbol.
func (p *Provider) GetPositions(ctx context.Context, symbol string) ([]exchange.Position, error) {
	return p.client.GetPositions(ctx, symbol)
}

// GetAccountMode reads the account position mode.
func (p *Provider) GetAccountMode(ctx context.Context) (exchange.AccountMode, error) {
	return p.client.GetAccountMode(ctx)
}

// GetBalance proxies the raw balance payload.
func (p *Provider) GetBalance(ctx context.Context) (json.RawMessage, error) {
	return p.client.GetBalance(ctx)
}
