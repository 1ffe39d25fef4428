// Package signal turns inbound webhook payloads into canonical order
// intents. Translation is pure: it never touches the network, so malformed
// or unauthorized signals are rejected before any venue call happens.
// Quantity/lot normalization is deliberately left to the exchange layer —
// doing it here would force a metadata lookup before authentication.
package signal

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// PlaceholderToken is the documented sample token. It must never authorize
// a live signal, even when the operator forgot to change the configuration.
const PlaceholderToken = "test123"

// perpSuffix marks perpetual-swap instruments on the venue.
const perpSuffix = "-SWAP"

// noneSentinel symbols skip suffix normalization entirely.
const noneSentinel = "NONE"

// Options carries the immutable defaults translation depends on.
type Options struct {
	// DefaultMarket decides whether bare symbols get the perpetual
	// suffix: "swap" or "spot".
	DefaultMarket string
}

// payload mirrors the inbound webhook message. Numeric fields accept both
// JSON numbers and quoted strings; TradingView templates produce either.
type payload struct {
	Token        string     `json:"token"`
	Action       string     `json:"action"`
	Symbol       string     `json:"symbol"`
	Quantity     flexNumber `json:"quantity"`
	Price        flexNumber `json:"price"`
	OrderType    string     `json:"order_type"`
	PositionSide string     `json:"position_side"`
	MarginMode   string     `json:"margin_mode"`
	Message      string     `json:"message"`
}

// flexNumber decodes a JSON number or a quoted numeric string into its
// literal text form.
type flexNumber string

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexNumber(strings.TrimSpace(s))
		return nil
	}
	*f = flexNumber(trimmed)
	return nil
}

// Translate parses and validates a raw webhook body into an OrderIntent.
// The token is carried through unverified; callers must check it with
// VerifyToken before any order call.
func Translate(raw []byte, opts Options) (*exchange.OrderIntent, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, exchange.WrapError(exchange.KindValidation, err, "signal: body is not valid JSON")
	}

	action := strings.ToLower(strings.TrimSpace(p.Action))
	if action == "" {
		return nil, exchange.NewError(exchange.KindValidation, "signal: missing required field action")
	}
	symbol := strings.TrimSpace(p.Symbol)
	if symbol == "" {
		return nil, exchange.NewError(exchange.KindValidation, "signal: missing required field symbol")
	}

	intent := exchange.OrderIntent{
		Symbol:   NormalizeSymbol(symbol, opts.DefaultMarket),
		Quantity: decimal.NewFromInt(1),
		Price:    string(p.Price),
		RawToken: p.Token,
		Message:  p.Message,
	}

	switch action {
	case "buy":
		intent.Action = exchange.ActionBuy
	case "sell":
		intent.Action = exchange.ActionSell
	case "close":
		intent.Action = exchange.ActionClose
	default:
		return nil, exchange.NewError(exchange.KindValidation, "signal: unknown action %q", action)
	}

	if p.Quantity != "" {
		quantity, err := decimal.NewFromString(string(p.Quantity))
		if err != nil {
			return nil, exchange.NewError(exchange.KindValidation, "signal: invalid quantity %q", p.Quantity)
		}
		if quantity.Sign() <= 0 {
			return nil, exchange.NewError(exchange.KindValidation, "signal: quantity must be positive, got %s", quantity)
		}
		intent.Quantity = quantity
	}

	switch orderType := strings.ToLower(strings.TrimSpace(p.OrderType)); orderType {
	case "", "market":
		intent.OrderType = exchange.OrderTypeMarket
	case "limit":
		intent.OrderType = exchange.OrderTypeLimit
	default:
		return nil, exchange.NewError(exchange.KindValidation, "signal: unknown order_type %q", orderType)
	}

	switch side := strings.ToLower(strings.TrimSpace(p.PositionSide)); side {
	case "", "both":
		intent.Scope = exchange.CloseBoth
	case "long":
		intent.Scope = exchange.CloseLong
	case "short":
		intent.Scope = exchange.CloseShort
	default:
		return nil, exchange.NewError(exchange.KindValidation, "signal: unknown position_side %q", side)
	}

	switch mode := strings.ToLower(strings.TrimSpace(p.MarginMode)); mode {
	case "":
	case "cross", "isolated", "cash":
		intent.MarginMode = mode
	default:
		return nil, exchange.NewError(exchange.KindValidation, "signal: unknown margin_mode %q", mode)
	}

	return &intent, nil
}

// NormalizeSymbol appends the perpetual suffix when the default market is
// swap, unless the symbol already carries it or is the NONE sentinel.
func NormalizeSymbol(symbol, defaultMarket string) string {
	if strings.ToLower(strings.TrimSpace(defaultMarket)) != "swap" {
		return symbol
	}
	upper := strings.ToUpper(symbol)
	if strings.HasSuffix(upper, perpSuffix) || upper == noneSentinel {
		return symbol
	}
	return symbol + perpSuffix
}

// VerifyToken checks the signal token against the configured secret.
// Exact match required; the documented placeholder never authorizes.
func VerifyToken(provided, configured string) error {
	if strings.TrimSpace(configured) == "" {
		return exchange.NewError(exchange.KindConfig, "signal: webhook token is not configured")
	}
	if provided == PlaceholderToken || configured == PlaceholderToken {
		return exchange.NewError(exchange.KindAuth, "signal: placeholder token rejected")
	}
	if provided != configured {
		return exchange.NewError(exchange.KindAuth, "signal: invalid token")
	}
	return nil
}
