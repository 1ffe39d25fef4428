package okx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// PlaceOrder assembles and submits one order for a buy or sell intent.
//
// Resolution order matters: instrument rules and account mode are fetched
// before anything is signed for submission, and an unresolvable instrument
// means no order is attempted at all. The submission itself is one signed
// POST, never retried. When the venue rejects the order the result is still
// returned alongside the tagged error so callers can pass the raw payload
// through.
func (c *Client) PlaceOrder(ctx context.Context, intent exchange.OrderIntent) (*exchange.OrderResult, error) {
	if intent.Action != exchange.ActionBuy && intent.Action != exchange.ActionSell {
		return nil, exchange.NewError(exchange.KindValidation, "okx: action %q is not an order action", intent.Action)
	}

	rule, err := c.ResolveInstrument(ctx, intent.Symbol)
	if err != nil {
		return nil, err
	}

	size, err := NormalizeSize(intent.Quantity, rule.LotSize, rule.MinSize)
	if err != nil {
		return nil, err
	}

	mode, err := c.GetAccountMode(ctx)
	if err != nil {
		return nil, err
	}

	request := c.buildOrderRequest(intent, rule.Symbol, size.String(), mode)
	body, err := json.Marshal(request)
	if err != nil {
		return nil, exchange.WrapError(exchange.KindValidation, err, "okx: encode order body")
	}

	logx.WithContext(ctx).Infof("okx: place order instId=%s side=%s ordType=%s sz=%s tdMode=%s posSide=%s",
		request.InstID, request.Side, request.OrdType, request.Size, request.TdMode, request.PosSide)

	return c.submitOrder(ctx, string(body))
}

// buildOrderRequest derives the venue order body deterministically from the
// intent, the resolved rule and the account mode.
func (c *Client) buildOrderRequest(intent exchange.OrderIntent, instID, size string, mode exchange.AccountMode) exchange.OrderRequest {
	request := exchange.OrderRequest{
		InstID:  instID,
		TdMode:  c.marginModeFor(intent),
		Side:    string(intent.Action),
		OrdType: string(intent.OrderType),
		Size:    size,
	}

	// posSide belongs in the body only when the account runs separate
	// long/short legs.
	if mode == exchange.AccountModeHedge {
		if intent.Action == exchange.ActionBuy {
			request.PosSide = "long"
		} else {
			request.PosSide = "short"
		}
	}

	if intent.OrderType == exchange.OrderTypeLimit && intent.Price != "" {
		request.Price = intent.Price
	}
	return request
}

// marginModeFor resolves the tdMode: caller override first, then cash for
// spot accounts, then the configured default.
func (c *Client) marginModeFor(intent exchange.OrderIntent) string {
	if intent.MarginMode != "" {
		return intent.MarginMode
	}
	if c.market == "spot" {
		return "cash"
	}
	return c.marginMode
}

// submitOrder performs the single signed POST and maps the venue envelope
// into the pass-through result.
func (c *Client) submitOrder(ctx context.Context, body string) (*exchange.OrderResult, error) {
	envelope, err := c.doSigned(ctx, http.MethodPost, pathPlaceOrder, body)
	if err != nil {
		return nil, err
	}

	result := &exchange.OrderResult{
		Code:    envelope.Code,
		Message: envelope.Msg,
		Data:    envelope.Data,
	}
	if !envelope.ok() {
		return result, exchange.NewVenueError(envelope.Code, envelope.Msg)
	}
	return result, nil
}
