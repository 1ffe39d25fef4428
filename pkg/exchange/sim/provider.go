// Package sim is a paper-trading exchange implementation that keeps
// positions in memory. It backs webhook logic tests and the "sim" provider
// type for local development, and counts venue calls so tests can assert
// that rejected signals never reach the exchange.
package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// Provider is an in-memory exchange.Provider.
type Provider struct {
	mu sync.Mutex

	mode      exchange.AccountMode
	positions map[string][]exchange.Position

	// Orders records every submitted order body in submission order.
	Orders []exchange.OrderRequest

	// Call counters, for instrumentation in tests.
	PlaceCalls   int
	CloseCalls   int
	ModeCalls    int
	BalanceCalls int
}

// New constructs a simulator in net mode with no open positions.
func New() *Provider {
	return &Provider{
		mode:      exchange.AccountModeNet,
		positions: make(map[string][]exchange.Position),
	}
}

func canonical(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// SetAccountMode switches the simulated account between net and hedge.
func (p *Provider) SetAccountMode(mode exchange.AccountMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

// SeedPosition installs an open position leg for later close calls.
func (p *Provider) SeedPosition(position exchange.Position) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := canonical(position.InstID)
	p.positions[key] = append(p.positions[key], position)
}

// PlaceOrder accepts any well-formed intent and records the resulting body.
func (p *Provider) PlaceOrder(ctx context.Context, intent exchange.OrderIntent) (*exchange.OrderResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.PlaceCalls++

	if intent.Action != exchange.ActionBuy && intent.Action != exchange.ActionSell {
		return nil, exchange.NewError(exchange.KindValidation, "sim: action %q is not an order action", intent.Action)
	}
	if intent.Quantity.Sign() <= 0 {
		return nil, exchange.NewError(exchange.KindValidation, "sim: quantity must be positive")
	}

	request := exchange.OrderRequest{
		InstID:  canonical(intent.Symbol),
		TdMode:  intent.MarginMode,
		Side:    string(intent.Action),
		OrdType: string(intent.OrderType),
		Size:    intent.Quantity.String(),
	}
	if request.TdMode == "" {
		request.TdMode = "cross"
	}
	if p.mode == exchange.AccountModeHedge {
		if intent.Action == exchange.ActionBuy {
			request.PosSide = "long"
		} else {
			request.PosSide = "short"
		}
	}
	if intent.OrderType == exchange.OrderTypeLimit && intent.Price != "" {
		request.Price = intent.Price
	}
	p.Orders = append(p.Orders, request)

	data, _ := json.Marshal([]map[string]string{{"ordId": fmt.Sprintf("sim-%d", len(p.Orders)), "sCode": "0"}})
	return &exchange.OrderResult{Code: "0", Message: "", Data: data}, nil
}

// ClosePositions emits one exact-size market order per matching leg.
func (p *Provider) ClosePositions(ctx context.Context, symbol string, scope exchange.CloseScope) ([]*exchange.OrderResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CloseCalls++

	key := canonical(symbol)
	var kept []exchange.Position
	var results []*exchange.OrderResult
	for _, position := range p.positions[key] {
		long := positionIsLong(position)
		if position.Size.IsZero() || !matches(scope, long) {
			kept = append(kept, position)
			continue
		}
		request := exchange.OrderRequest{
			InstID:  position.InstID,
			TdMode:  position.MarginMode,
			OrdType: string(exchange.OrderTypeMarket),
			Size:    position.Size.Abs().String(),
		}
		if long {
			request.Side = string(exchange.ActionSell)
		} else {
			request.Side = string(exchange.ActionBuy)
		}
		if position.PositionSide == "long" || position.PositionSide == "short" {
			request.PosSide = position.PositionSide
		}
		p.Orders = append(p.Orders, request)
		results = append(results, &exchange.OrderResult{Code: "0"})
	}
	p.positions[key] = kept

	if len(results) == 0 {
		return []*exchange.OrderResult{exchange.NoopResult("no open position to close")}, nil
	}
	return results, nil
}

// GetPositions returns seeded positions for the symbol.
func (p *Provider) GetPositions(ctx context.Context, symbol string) ([]exchange.Position, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]exchange.Position(nil), p.positions[canonical(symbol)]...), nil
}

// GetAccountMode reports the simulated position mode.
func (p *Provider) GetAccountMode(ctx context.Context) (exchange.AccountMode, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ModeCalls++
	return p.mode, nil
}

// GetBalance returns a fixed paper balance payload.
func (p *Provider) GetBalance(ctx context.Context) (json.RawMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.BalanceCalls++
	return json.RawMessage(`[{"totalEq":"100000","details":[]}]`), nil
}

// TotalCalls sums every venue-facing call, order-submitting or not.
func (p *Provider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.PlaceCalls + p.CloseCalls + p.ModeCalls + p.BalanceCalls
}

func positionIsLong(position exchange.Position) bool {
	switch position.PositionSide {
	case "long":
		return true
	case "short":
		return false
	default:
		return position.Size.Sign() > 0
	}
}

func matches(scope exchange.CloseScope, long bool) bool {
	switch scope {
	case exchange.CloseLong:
		return long
	case exchange.CloseShort:
		return !long
	default:
		return true
	}
}

// Registry hook for exchange.Config.
func init() {
	exchange.RegisterProvider("sim", func(name string, cfg *exchange.ProviderConfig) (exchange.Provider, error) {
		return New(), nil
	})
}
