package okx

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// signingTimestampLayout is the ISO-8601 UTC millisecond format the venue
// expects in OK-ACCESS-TIMESTAMP. The trailing Z is literal.
const signingTimestampLayout = "2006-01-02T15:04:05.000Z"

const simulatedTradingHeader = "x-simulated-trading"

// sign computes base64(HMAC-SHA256(secret, timestamp+method+path+body)).
// The path must include the query string; the signature covers the literal
// serialized body.
func sign(secret, timestamp, method, requestPath, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + method + requestPath + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// signingTimestamp prefers the venue's clock: the signing protocol rejects
// requests whose timestamp drifts outside a small window, so local skew is
// only acceptable as a fallback.
func (c *Client) signingTimestamp(ctx context.Context) string {
	if ts, err := c.fetchServerTime(ctx); err == nil {
		return ts
	} else {
		logx.WithContext(ctx).Slowf("okx: server time unavailable, using local clock: %v", err)
	}
	return c.clock().UTC().Format(signingTimestampLayout)
}

// fetchServerTime performs one short-timeout lookup of the venue clock.
// Not retried; any failure falls back to the local clock.
func (c *Client) fetchServerTime(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, serverTimeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathServerTime, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", exchange.NewError(exchange.KindUpstreamUnavailable, "okx: server time status %d", resp.StatusCode)
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", err
	}
	if !envelope.ok() {
		return "", exchange.NewVenueError(envelope.Code, envelope.Msg)
	}
	var times []serverTime
	if err := json.Unmarshal(envelope.Data, &times); err != nil {
		return "", err
	}
	if len(times) == 0 {
		return "", exchange.NewError(exchange.KindUpstreamUnavailable, "okx: server time response empty")
	}
	millis, err := strconv.ParseInt(times[0].TS, 10, 64)
	if err != nil {
		return "", err
	}
	return time.UnixMilli(millis).UTC().Format(signingTimestampLayout), nil
}

// signedHeaders produces the full authenticated header set. The credential
// check happens before any network call: a fresh timestamp (which may hit
// the venue clock endpoint) is only fetched for a signable request.
func (c *Client) signedHeaders(ctx context.Context, method, requestPath, body string) (http.Header, error) {
	if !c.creds.complete() {
		return nil, exchange.NewError(exchange.KindConfig, "okx: api key, secret and passphrase are required for signed calls")
	}

	timestamp := c.signingTimestamp(ctx)
	headers := http.Header{}
	headers.Set("OK-ACCESS-KEY", c.creds.APIKey)
	headers.Set("OK-ACCESS-SIGN", sign(c.creds.APISecret, timestamp, method, requestPath, body))
	headers.Set("OK-ACCESS-TIMESTAMP", timestamp)
	headers.Set("OK-ACCESS-PASSPHRASE", c.creds.Passphrase)
	headers.Set("Content-Type", "application/json")
	if c.creds.Simulated {
		headers.Set(simulatedTradingHeader, "1")
	}
	return headers, nil
}
