package okx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// GetAccountMode reads the account's position mode via a signed call.
// It is read fresh per order; the venue gives no staleness guarantee.
// On lookup failure the error is surfaced — orders are not built against a
// guessed position mode.
func (c *Client) GetAccountMode(ctx context.Context) (exchange.AccountMode, error) {
	envelope, err := c.doSigned(ctx, http.MethodGet, pathAccountConfig, "")
	if err != nil {
		return "", err
	}
	if !envelope.ok() {
		return "", exchange.NewVenueError(envelope.Code, envelope.Msg)
	}

	var configs []accountConfig
	if err := decodeData(envelope, &configs); err != nil {
		return "", err
	}
	if len(configs) == 0 {
		return "", exchange.NewError(exchange.KindUpstreamUnavailable, "okx: account config response empty")
	}
	switch configs[0].PosMode {
	case "long_short_mode":
		return exchange.AccountModeHedge, nil
	case "net_mode":
		return exchange.AccountModeNet, nil
	default:
		return "", exchange.NewError(exchange.KindUpstreamUnavailable, "okx: unknown posMode %q", configs[0].PosMode)
	}
}

// GetBalance proxies the venue's balance payload without reinterpretation.
func (c *Client) GetBalance(ctx context.Context) (json.RawMessage, error) {
	envelope, err := c.doSigned(ctx, http.MethodGet, pathBalance, "")
	if err != nil {
		return nil, err
	}
	if !envelope.ok() {
		return nil, exchange.NewVenueError(envelope.Code, envelope.Msg)
	}
	return envelope.Data, nil
}
