package okx

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// instTypeFor derives the venue instrument type from an already
// suffix-normalized symbol.
func instTypeFor(symbol string) string {
	if strings.HasSuffix(strings.ToUpper(symbol), "-SWAP") {
		return "SWAP"
	}
	return "SPOT"
}

// ResolveInstrument resolves the per-symbol trading rules in two stages:
// a direct filtered lookup first, then a full-list scan. The fallback
// covers endpoints that intermittently reject single-symbol filters while
// the bulk listing stays reliable.
func (c *Client) ResolveInstrument(ctx context.Context, symbol string) (*exchange.InstrumentRule, error) {
	instType := instTypeFor(symbol)

	var direct []instrument
	query := url.Values{"instType": {instType}, "instId": {symbol}}
	if err := c.fetchPublic(ctx, pathInstruments, query, &direct); err == nil {
		if rule := matchInstrument(direct, symbol); rule != nil {
			return rule, nil
		}
	}

	var all []instrument
	if err := c.fetchPublic(ctx, pathInstruments, url.Values{"instType": {instType}}, &all); err != nil {
		return nil, err
	}
	if rule := matchInstrument(all, symbol); rule != nil {
		return rule, nil
	}
	return nil, exchange.NewError(exchange.KindInstrumentNotFound, "okx: instrument %s not found", symbol)
}

func matchInstrument(instruments []instrument, symbol string) *exchange.InstrumentRule {
	for _, inst := range instruments {
		if !strings.EqualFold(inst.InstID, symbol) {
			continue
		}
		lot, err := decimal.NewFromString(inst.LotSz)
		if err != nil || !lot.IsPositive() {
			continue
		}
		min, err := decimal.NewFromString(inst.MinSz)
		if err != nil || !min.IsPositive() {
			continue
		}
		return &exchange.InstrumentRule{
			Symbol:  inst.InstID,
			LotSize: lot,
			MinSize: min,
		}
	}
	return nil
}
