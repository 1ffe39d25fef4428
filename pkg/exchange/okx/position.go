package okx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// GetPositions returns open position legs for the symbol via a signed GET.
// Legs with a zero or unparseable size are dropped.
func (c *Client) GetPositions(ctx context.Context, symbol string) ([]exchange.Position, error) {
	requestPath := pathPositions
	if symbol != "" {
		query := url.Values{"instId": {symbol}}
		requestPath += "?" + query.Encode()
	}

	envelope, err := c.doSigned(ctx, http.MethodGet, requestPath, "")
	if err != nil {
		return nil, err
	}
	if !envelope.ok() {
		return nil, exchange.NewVenueError(envelope.Code, envelope.Msg)
	}

	var details []positionDetail
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &details); err != nil {
			return nil, exchange.WrapError(exchange.KindUpstreamUnavailable, err, "okx: decode positions")
		}
	}

	positions := make([]exchange.Position, 0, len(details))
	for _, detail := range details {
		size, err := decimal.NewFromString(detail.Pos)
		if err != nil || size.IsZero() {
			continue
		}
		positions = append(positions, exchange.Position{
			InstID:       detail.InstID,
			PositionSide: detail.PosSide,
			Size:         size,
			MarginMode:   detail.MgnMode,
		})
	}
	return positions, nil
}

// ClosePositions flattens open positions for the symbol within scope.
//
// Each matching leg gets one market order for exactly that leg's size, on
// the opposite side, carrying the leg's own margin mode. Hedge accounts
// with scope both can therefore produce two orders; net accounts at most
// one. Nothing open is a no-op success: closing is idempotent.
func (c *Client) ClosePositions(ctx context.Context, symbol string, scope exchange.CloseScope) ([]*exchange.OrderResult, error) {
	positions, err := c.GetPositions(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var results []*exchange.OrderResult
	for _, position := range positions {
		long, ok := legDirection(position)
		if !ok || !scopeMatches(scope, long) {
			continue
		}

		request := exchange.OrderRequest{
			InstID:  position.InstID,
			TdMode:  position.MarginMode,
			OrdType: string(exchange.OrderTypeMarket),
			Size:    position.Size.Abs().String(),
		}
		// Sell closes a long leg, buy closes a short leg.
		if long {
			request.Side = string(exchange.ActionSell)
		} else {
			request.Side = string(exchange.ActionBuy)
		}
		// Hedge-mode legs identify themselves; net positions carry no
		// posSide in the close body.
		if position.PositionSide == "long" || position.PositionSide == "short" {
			request.PosSide = position.PositionSide
		}

		body, err := json.Marshal(request)
		if err != nil {
			return results, exchange.WrapError(exchange.KindValidation, err, "okx: encode close body")
		}

		logx.WithContext(ctx).Infof("okx: close position instId=%s side=%s sz=%s tdMode=%s posSide=%s",
			request.InstID, request.Side, request.Size, request.TdMode, request.PosSide)

		result, err := c.submitOrder(ctx, string(body))
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			return results, err
		}
	}

	if len(results) == 0 {
		return []*exchange.OrderResult{exchange.NoopResult("no open position to close")}, nil
	}
	return results, nil
}

// legDirection reports whether the leg is long. Net positions take their
// direction from the sign of the size.
func legDirection(position exchange.Position) (long bool, ok bool) {
	switch position.PositionSide {
	case "long":
		return true, true
	case "short":
		return false, true
	default:
		if position.Size.IsZero() {
			return false, false
		}
		return position.Size.IsPositive(), true
	}
}

func scopeMatches(scope exchange.CloseScope, long bool) bool {
	switch scope {
	case exchange.CloseLong:
		return long
	case exchange.CloseShort:
		return !long
	default:
		return true
	}
}
