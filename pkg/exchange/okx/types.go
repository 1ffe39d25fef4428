package okx

import "encoding/json"

// OKX v5 wire types. All numeric fields are strings on the wire; they are
// parsed into decimals only where the pipeline does arithmetic.

// apiResponse is the uniform OKX envelope: a business code, a message and
// an endpoint-specific data array.
type apiResponse struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (r *apiResponse) ok() bool { return r.Code == "0" }

type serverTime struct {
	TS string `json:"ts"` // millisecond epoch
}

type instrument struct {
	InstID   string `json:"instId"`
	InstType string `json:"instType"`
	LotSz    string `json:"lotSz"`
	MinSz    string `json:"minSz"`
	TickSz   string `json:"tickSz"`
	State    string `json:"state"`
}

type accountConfig struct {
	AcctLv string `json:"acctLv"`
	// PosMode is "net_mode" or "long_short_mode".
	PosMode string `json:"posMode"`
}

type positionDetail struct {
	InstID  string `json:"instId"`
	MgnMode string `json:"mgnMode"`
	Pos     string `json:"pos"` // signed in net mode
	PosSide string `json:"posSide"`
	AvgPx   string `json:"avgPx"`
}
