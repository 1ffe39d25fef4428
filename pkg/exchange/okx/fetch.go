package okx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
)

// fetchPublic executes a bounded-retry GET against a public endpoint and
// decodes the envelope's data array into out. A non-200 status, an empty
// body or a parse failure all count as retryable; the budget comes from the
// client's retry policy. Only metadata lookups go through here — signed,
// side-effecting calls must not, so a retried request can never place a
// duplicate order.
func (c *Client) fetchPublic(ctx context.Context, requestPath string, query url.Values, out any) error {
	target := c.baseURL + requestPath
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	err := c.retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("okx: %s status %d", requestPath, resp.StatusCode)
		}
		if len(raw) == 0 {
			return fmt.Errorf("okx: %s returned empty body", requestPath)
		}

		var envelope apiResponse
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return fmt.Errorf("okx: decode %s: %w", requestPath, err)
		}
		if !envelope.ok() {
			return fmt.Errorf("okx: %s code %s: %s", requestPath, envelope.Code, envelope.Msg)
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("okx: decode %s data: %w", requestPath, err)
		}
		return nil
	})
	if err != nil {
		logx.WithContext(ctx).Errorf("okx: public fetch exhausted retries path=%s err=%v", requestPath, err)
		return exchange.WrapError(exchange.KindUpstreamUnavailable, err,
			"okx: %s unavailable after %d attempts", requestPath, c.retry.MaxAttempts())
	}
	return nil
}
