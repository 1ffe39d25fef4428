package signal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

var swapOpts = Options{DefaultMarket: "swap"}

func TestTranslateBuySignal(t *testing.T) {
	raw := []byte(`{
		"token": "secret",
		"action": "BUY",
		"symbol": "BTC-USDT",
		"quantity": 0.5,
		"order_type": "market"
	}`)

	intent, err := Translate(raw, swapOpts)
	require.NoError(t, err)
	require.Equal(t, exchange.ActionBuy, intent.Action)
	require.Equal(t, "BTC-USDT-SWAP", intent.Symbol)
	require.True(t, decimal.RequireFromString("0.5").Equal(intent.Quantity))
	require.Equal(t, exchange.OrderTypeMarket, intent.OrderType)
	require.Equal(t, "secret", intent.RawToken)
}

func TestTranslateQuantityForms(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want string
	}{
		"json number":     {`{"action":"buy","symbol":"BTC-USDT","quantity":0.25}`, "0.25"},
		"quoted string":   {`{"action":"buy","symbol":"BTC-USDT","quantity":"0.25"}`, "0.25"},
		"padded string":   {`{"action":"buy","symbol":"BTC-USDT","quantity":" 2 "}`, "2"},
		"absent defaults": {`{"action":"buy","symbol":"BTC-USDT"}`, "1"},
		"null defaults":   {`{"action":"buy","symbol":"BTC-USDT","quantity":null}`, "1"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			intent, err := Translate([]byte(tc.raw), swapOpts)
			require.NoError(t, err)
			require.True(t, decimal.RequireFromString(tc.want).Equal(intent.Quantity),
				"want %s, got %s", tc.want, intent.Quantity)
		})
	}
}

func TestTranslateCloseSignal(t *testing.T) {
	raw := []byte(`{"action":"close","symbol":"ETH-USDT","position_side":"long"}`)
	intent, err := Translate(raw, swapOpts)
	require.NoError(t, err)
	require.Equal(t, exchange.ActionClose, intent.Action)
	require.Equal(t, "ETH-USDT-SWAP", intent.Symbol)
	require.Equal(t, exchange.CloseLong, intent.Scope)
}

func TestTranslateLimitOrder(t *testing.T) {
	raw := []byte(`{"action":"sell","symbol":"BTC-USDT","order_type":"limit","price":"65000.5","quantity":"0.1"}`)
	intent, err := Translate(raw, swapOpts)
	require.NoError(t, err)
	require.Equal(t, exchange.OrderTypeLimit, intent.OrderType)
	require.Equal(t, "65000.5", intent.Price)
}

func TestTranslateMarginModeOverride(t *testing.T) {
	raw := []byte(`{"action":"buy","symbol":"BTC-USDT","margin_mode":"ISOLATED"}`)
	intent, err := Translate(raw, swapOpts)
	require.NoError(t, err)
	require.Equal(t, "isolated", intent.MarginMode)
}

func TestTranslateRejections(t *testing.T) {
	tests := map[string]string{
		"not json":              `buy BTC now`,
		"missing action":        `{"symbol":"BTC-USDT"}`,
		"missing symbol":        `{"action":"buy"}`,
		"unknown action":        `{"action":"hold","symbol":"BTC-USDT"}`,
		"zero quantity":         `{"action":"buy","symbol":"BTC-USDT","quantity":0}`,
		"negative quantity":     `{"action":"buy","symbol":"BTC-USDT","quantity":-1}`,
		"non numeric quantity":  `{"action":"buy","symbol":"BTC-USDT","quantity":"lots"}`,
		"unknown order type":    `{"action":"buy","symbol":"BTC-USDT","order_type":"stop"}`,
		"unknown position side": `{"action":"close","symbol":"BTC-USDT","position_side":"all"}`,
		"unknown margin mode":   `{"action":"buy","symbol":"BTC-USDT","margin_mode":"margin"}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Translate([]byte(raw), swapOpts)
			require.Error(t, err)
			require.True(t, exchange.IsKind(err, exchange.KindValidation), "got %v", err)
		})
	}
}

func TestNormalizeSymbol(t *testing.T) {
	tests := map[string]struct {
		symbol string
		market string
		want   string
	}{
		"bare symbol gets suffix":   {"BTC-USDT", "swap", "BTC-USDT-SWAP"},
		"suffix preserved":          {"BTC-USDT-SWAP", "swap", "BTC-USDT-SWAP"},
		"lowercase suffix detected": {"btc-usdt-swap", "swap", "btc-usdt-swap"},
		"none sentinel untouched":   {"NONE", "swap", "NONE"},
		"spot market untouched":     {"BTC-USDT", "spot", "BTC-USDT"},
		"empty market untouched":    {"BTC-USDT", "", "BTC-USDT"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeSymbol(tc.symbol, tc.market))
		})
	}
}

func TestVerifyToken(t *testing.T) {
	tests := map[string]struct {
		provided   string
		configured string
		wantKind   exchange.ErrorKind
	}{
		"match":                      {"secret", "secret", ""},
		"mismatch":                   {"wrong", "secret", exchange.KindAuth},
		"empty provided":             {"", "secret", exchange.KindAuth},
		"unconfigured":               {"secret", "", exchange.KindConfig},
		"whitespace configured":      {"secret", "   ", exchange.KindConfig},
		"placeholder provided":       {PlaceholderToken, "secret", exchange.KindAuth},
		"placeholder configured":     {"secret", PlaceholderToken, exchange.KindAuth},
		"placeholder on both sides":  {PlaceholderToken, PlaceholderToken, exchange.KindAuth},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := VerifyToken(tc.provided, tc.configured)
			if tc.wantKind == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, exchange.IsKind(err, tc.wantKind), "got %v", err)
		})
	}
}
