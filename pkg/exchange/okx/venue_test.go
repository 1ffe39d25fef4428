package okx

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// fakeVenue is an in-process stand-in for the venue REST API. Tests
// configure its payloads and inspect the requests it captured.
type fakeVenue struct {
	t  *testing.T
	mu sync.Mutex

	timeMillis int64
	timeStatus int

	instruments        []instrument
	failFilteredLookup bool
	instrumentCalls    int
	instrumentStatus   int

	posMode   string
	positions []positionDetail

	orderCode string
	orderMsg  string
	orderData string

	balanceData string

	orders        []capturedRequest
	positionCalls []string
}

type capturedRequest struct {
	header http.Header
	body   map[string]any
	raw    string
}

func newFakeVenue(t *testing.T) (*fakeVenue, *httptest.Server) {
	v := &fakeVenue{
		t:           t,
		timeMillis:  time.Date(2023, 8, 15, 2, 31, 47, 0, time.UTC).UnixMilli(),
		posMode:     "net_mode",
		orderCode:   "0",
		orderData:   `[{"ordId":"123","sCode":"0","sMsg":""}]`,
		balanceData: `[{"totalEq":"1000"}]`,
	}
	server := httptest.NewServer(v.handler())
	t.Cleanup(server.Close)
	return v, server
}

func (v *fakeVenue) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(pathServerTime, v.serveTime)
	mux.HandleFunc(pathInstruments, v.serveInstruments)
	mux.HandleFunc(pathAccountConfig, v.serveAccountConfig)
	mux.HandleFunc(pathPositions, v.servePositions)
	mux.HandleFunc(pathPlaceOrder, v.servePlaceOrder)
	mux.HandleFunc(pathBalance, v.serveBalance)
	return mux
}

func (v *fakeVenue) serveTime(w http.ResponseWriter, _ *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.timeStatus != 0 {
		w.WriteHeader(v.timeStatus)
		return
	}
	writeEnvelope(w, "0", "", fmt.Sprintf(`[{"ts":"%d"}]`, v.timeMillis))
}

func (v *fakeVenue) serveInstruments(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.instrumentCalls++
	if v.instrumentStatus != 0 {
		w.WriteHeader(v.instrumentStatus)
		return
	}

	instID := r.URL.Query().Get("instId")
	if instID != "" && v.failFilteredLookup {
		writeEnvelope(w, "0", "", "[]")
		return
	}

	matched := v.instruments
	if instID != "" {
		matched = nil
		for _, inst := range v.instruments {
			if inst.InstID == instID {
				matched = append(matched, inst)
			}
		}
	}
	data, err := json.Marshal(matched)
	if err != nil {
		v.t.Fatalf("marshal instruments: %v", err)
	}
	writeEnvelope(w, "0", "", string(data))
}

func (v *fakeVenue) serveAccountConfig(w http.ResponseWriter, _ *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()
	writeEnvelope(w, "0", "", fmt.Sprintf(`[{"acctLv":"2","posMode":"%s"}]`, v.posMode))
}

func (v *fakeVenue) servePositions(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.positionCalls = append(v.positionCalls, r.URL.RawQuery)
	data, err := json.Marshal(v.positions)
	if err != nil {
		v.t.Fatalf("marshal positions: %v", err)
	}
	writeEnvelope(w, "0", "", string(data))
}

func (v *fakeVenue) servePlaceOrder(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		v.t.Fatalf("read order body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		v.t.Fatalf("unmarshal order body %q: %v", raw, err)
	}
	v.orders = append(v.orders, capturedRequest{
		header: r.Header.Clone(),
		body:   body,
		raw:    string(raw),
	})
	writeEnvelope(w, v.orderCode, v.orderMsg, v.orderData)
}

func (v *fakeVenue) serveBalance(w http.ResponseWriter, _ *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()
	writeEnvelope(w, "0", "", v.balanceData)
}

func (v *fakeVenue) orderCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.orders)
}

func (v *fakeVenue) order(i int) capturedRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.orders[i]
}

func writeEnvelope(w http.ResponseWriter, code, msg, data string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"code":%q,"msg":%q,"data":%s}`, code, msg, data)
}

func testCredentials() Credentials {
	return Credentials{
		APIKey:     "test-key",
		APISecret:  "secret-key",
		Passphrase: "test-pass",
	}
}

func newTestClient(server *httptest.Server, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithBaseURL(server.URL),
		WithRetry(exchange.RetryConfig{
			MaxAttempts:    2,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     2 * time.Millisecond,
		}),
	}
	return NewClient(testCredentials(), append(base, opts...)...)
}

func swapInstrument(instID, lotSz, minSz string) instrument {
	return instrument{
		InstID:   instID,
		InstType: "SWAP",
		LotSz:    lotSz,
		MinSz:    minSz,
		State:    "live",
	}
}
