package types

import "encoding/json"

// WebhookResponse is the structured result of one signal invocation. Data
// carries the venue's raw response on success and failure alike.
type WebhookResponse struct {
	Status  string          `json:"status"` // "success" or "error"
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// StatusResponse reports process liveness and trading defaults.
type StatusResponse struct {
	Market    string `json:"market"`
	Simulated bool   `json:"simulated"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// IndexResponse lists the available endpoints.
type IndexResponse struct {
	OK  bool     `json:"ok"`
	Use []string `json:"use"`
}

// BalanceResponse proxies the venue's balance payload.
type BalanceResponse struct {
	Data json.RawMessage `json:"data"`
}

// PositionsResponse lists open position legs.
type PositionsResponse struct {
	Positions []PositionView `json:"positions"`
}

// PositionView is one open leg in readable form.
type PositionView struct {
	InstID       string `json:"instId"`
	PositionSide string `json:"posSide"`
	Size         string `json:"size"`
	MarginMode   string `json:"mgnMode"`
}
