package exchange

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Core trading domain types shared across exchange implementations.
// String-typed numeric fields mirror the OKX wire contract; internal size
// math runs on shopspring decimals to avoid binary float drift.

// Action represents the canonical intent of an inbound signal.
type Action string

const (
	// ActionBuy opens or increases a long exposure.
	ActionBuy Action = "buy"
	// ActionSell opens or increases a short exposure.
	ActionSell Action = "sell"
	// ActionClose flattens existing positions for a symbol.
	ActionClose Action = "close"
)

// OrderType selects the execution style of an order.
type OrderType string

const (
	// OrderTypeMarket executes immediately at the prevailing price.
	OrderTypeMarket OrderType = "market"
	// OrderTypeLimit rests at the supplied price.
	OrderTypeLimit OrderType = "limit"
)

// AccountMode is the venue account's position mode.
type AccountMode string

const (
	// AccountModeNet keeps one aggregated position per symbol.
	AccountModeNet AccountMode = "net"
	// AccountModeHedge keeps separate long and short legs per symbol.
	AccountModeHedge AccountMode = "hedge"
)

// CloseScope restricts which legs a close action flattens.
type CloseScope string

const (
	// CloseLong flattens only the long leg.
	CloseLong CloseScope = "long"
	// CloseShort flattens only the short leg.
	CloseShort CloseScope = "short"
	// CloseBoth flattens every open leg for the symbol.
	CloseBoth CloseScope = "both"
)

// OrderIntent is the validated, canonical form of an inbound signal.
// Produced by the signal translator; immutable afterwards.
type OrderIntent struct {
	Action    Action
	Symbol    string
	Quantity  decimal.Decimal
	Price     string // empty unless the signal carried one
	OrderType OrderType
	// Scope applies to close actions only.
	Scope CloseScope
	// MarginMode, when non-empty, overrides the provider default.
	MarginMode string
	// RawToken is the unverified webhook token, passed through for the
	// caller to check before any order call is made.
	RawToken string
	Message  string
}

// InstrumentRule carries the venue's per-symbol sizing rules. Fetched per
// order construction and never cached beyond it.
type InstrumentRule struct {
	Symbol  string
	LotSize decimal.Decimal
	MinSize decimal.Decimal
}

// Position is a read-only snapshot of one open position leg.
type Position struct {
	InstID       string
	PositionSide string // "long", "short" or "net"
	Size         decimal.Decimal
	MarginMode   string
}

// OrderRequest is the venue order body. Field names and casing match the
// venue contract exactly; the signature covers the serialized string.
type OrderRequest struct {
	InstID  string `json:"instId"`
	TdMode  string `json:"tdMode"`
	Side    string `json:"side"`
	OrdType string `json:"ordType"`
	Size    string `json:"sz"`
	PosSide string `json:"posSide,omitempty"`
	Price   string `json:"px,omitempty"`
}

// OrderResult is the venue response, passed through opaquely. Code "0"
// is the only success discriminant.
type OrderResult struct {
	Code    string          `json:"code"`
	Message string          `json:"msg"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Ok reports whether the venue accepted the request.
func (r *OrderResult) Ok() bool {
	return r != nil && r.Code == "0"
}

// NoopResult is returned when a close action finds nothing to close.
// Closing with no open position is not an error.
func NoopResult(message string) *OrderResult {
	return &OrderResult{Code: "0", Message: message}
}
