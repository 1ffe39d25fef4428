package exchange

import (
	"context"
	"encoding/json"
)

// Provider exposes trading capabilities in an exchange-agnostic fashion.
// Implementations must be safe for concurrent use: each call is a
// self-contained pipeline invocation with no shared mutable state beyond
// immutable configuration.
type Provider interface {
	// PlaceOrder builds and submits one order for a buy or sell intent.
	// The order call itself is never retried.
	PlaceOrder(ctx context.Context, intent OrderIntent) (*OrderResult, error)

	// ClosePositions flattens open positions for the symbol within scope,
	// one exact-size market order per matching leg. Closing with nothing
	// open succeeds with a no-op result.
	ClosePositions(ctx context.Context, symbol string, scope CloseScope) ([]*OrderResult, error)

	// GetPositions returns open position legs for the symbol.
	GetPositions(ctx context.Context, symbol string) ([]Position, error)

	// GetAccountMode reads the account's position mode.
	GetAccountMode(ctx context.Context) (AccountMode, error)

	// GetBalance proxies the venue's raw balance payload without
	// reinterpretation.
	GetBalance(ctx context.Context) (json.RawMessage, error)
}
