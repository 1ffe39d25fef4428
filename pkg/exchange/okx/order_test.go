package okx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

func buyIntent(symbol, quantity string) exchange.OrderIntent {
	return exchange.OrderIntent{
		Action:    exchange.ActionBuy,
		Symbol:    symbol,
		Quantity:  d(quantity),
		OrderType: exchange.OrderTypeMarket,
	}
}

func TestPlaceOrderNetMode(t *testing.T) {
	venue, server := newFakeVenue(t)
	venue.instruments = []instrument{swapInstrument("BTC-USDT-SWAP", "0.001", "0.001")}
	client := newTestClient(server)

	result, err := client.PlaceOrder(context.Background(), buyIntent("BTC-USDT-SWAP", "0.0035"))
	require.NoError(t, err)
	require.True(t, result.Ok())

	require.Equal(t, 1, venue.orderCount(), "order submission is a single POST")
	order := venue.order(0)
	require.Equal(t, "BTC-USDT-SWAP", order.body["instId"])
	require.Equal(t, "buy", order.body["side"])
	require.Equal(t, "market", order.body["ordType"])
	require.Equal(t, "cross", order.body["tdMode"])
	require.Equal(t, "0.004", order.body["sz"], "size is normalized before submission")
	require.NotContains(t, order.body, "posSide", "net accounts never send posSide")
	require.NotContains(t, order.body, "px", "market orders carry no price")
}

func TestPlaceOrderHedgeModeSetsPosSide(t *testing.T) {
	tests := map[string]struct {
		action  exchange.Action
		posSide string
	}{
		"buy opens long":   {exchange.ActionBuy, "long"},
		"sell opens short": {exchange.ActionSell, "short"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			venue, server := newFakeVenue(t)
			venue.posMode = "long_short_mode"
			venue.instruments = []instrument{swapInstrument("BTC-USDT-SWAP", "0.001", "0.001")}
			client := newTestClient(server)

			intent := buyIntent("BTC-USDT-SWAP", "1")
			intent.Action = tc.action
			_, err := client.PlaceOrder(context.Background(), intent)
			require.NoError(t, err)
			require.Equal(t, tc.posSide, venue.order(0).body["posSide"])
		})
	}
}

func TestPlaceOrderLimitCarriesPrice(t *testing.T) {
	venue, server := newFakeVenue(t)
	venue.instruments = []instrument{swapInstrument("ETH-USDT-SWAP", "0.1", "0.1")}
	client := newTestClient(server)

	intent := buyIntent("ETH-USDT-SWAP", "0.5")
	intent.OrderType = exchange.OrderTypeLimit
	intent.Price = "2500.5"
	_, err := client.PlaceOrder(context.Background(), intent)
	require.NoError(t, err)

	order := venue.order(0)
	require.Equal(t, "limit", order.body["ordType"])
	require.Equal(t, "2500.5", order.body["px"])
}

func TestPlaceOrderSpotUsesCash(t *testing.T) {
	venue, server := newFakeVenue(t)
	venue.instruments = []instrument{{
		InstID: "BTC-USDT", InstType: "SPOT", LotSz: "0.0001", MinSz: "0.0001", State: "live",
	}}
	client := newTestClient(server, WithDefaultMarket("spot"))

	_, err := client.PlaceOrder(context.Background(), buyIntent("BTC-USDT", "0.01"))
	require.NoError(t, err)
	require.Equal(t, "cash", venue.order(0).body["tdMode"])
}

func TestPlaceOrderMarginModeOverride(t *testing.T) {
	venue, server := newFakeVenue(t)
	venue.instruments = []instrument{swapInstrument("BTC-USDT-SWAP", "0.001", "0.001")}
	client := newTestClient(server)

	intent := buyIntent("BTC-USDT-SWAP", "1")
	intent.MarginMode = "isolated"
	_, err := client.PlaceOrder(context.Background(), intent)
	require.NoError(t, err)
	require.Equal(t, "isolated", venue.order(0).body["tdMode"])
}

func TestPlaceOrderVenueRejection(t *testing.T) {
	venue, server := newFakeVenue(t)
	venue.instruments = []instrument{swapInstrument("BTC-USDT-SWAP", "0.001", "0.001")}
	venue.orderCode = "51000"
	venue.orderMsg = "Parameter posSide error"
	venue.orderData = `[{"sCode":"51000","sMsg":"Parameter posSide error"}]`
	client := newTestClient(server)

	result, err := client.PlaceOrder(context.Background(), buyIntent("BTC-USDT-SWAP", "1"))
	require.Error(t, err)
	require.True(t, exchange.IsKind(err, exchange.KindVenue))
	require.NotNil(t, result, "venue rejection still returns the raw payload")
	require.Equal(t, "51000", result.Code)
	require.Equal(t, 1, venue.orderCount(), "rejected orders are never retried")
}

func TestPlaceOrderRejectsNonOrderActions(t *testing.T) {
	venue, server := newFakeVenue(t)
	client := newTestClient(server)

	intent := buyIntent("BTC-USDT-SWAP", "1")
	intent.Action = exchange.ActionClose
	_, err := client.PlaceOrder(context.Background(), intent)
	require.Error(t, err)
	require.True(t, exchange.IsKind(err, exchange.KindValidation))
	require.Zero(t, venue.orderCount())
}

func TestPlaceOrderUnknownInstrumentPlacesNothing(t *testing.T) {
	venue, server := newFakeVenue(t)
	client := newTestClient(server)

	_, err := client.PlaceOrder(context.Background(), buyIntent("DOGE-USDT-SWAP", "1"))
	require.Error(t, err)
	require.True(t, exchange.IsKind(err, exchange.KindInstrumentNotFound))
	require.Zero(t, venue.orderCount())
}
