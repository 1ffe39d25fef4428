package logic

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/types"
	"github.com/goodvill0413/piona-auto-trade-bot/pkg/exchange"
	"github.com/goodvill0413/piona-auto-trade-bot/pkg/signal"
)

type WebhookLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewWebhookLogic(ctx context.Context, svcCtx *svc.ServiceContext) *WebhookLogic {
	return &WebhookLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Webhook runs the full pipeline for one raw signal body. Every failure is
// converted into a structured result; nothing propagates as an unhandled
// fault past this boundary.
func (l *WebhookLogic) Webhook(raw []byte) (*types.WebhookResponse, int) {
	intent, err := signal.Translate(raw, signal.Options{
		DefaultMarket: l.defaultMarket(),
	})
	if err != nil {
		l.Errorf("webhook: rejected signal: %v", err)
		return errorResponse(err, nil)
	}

	// Token verification precedes every venue call; an unauthorized
	// signal must trigger zero outbound orders.
	if err := signal.VerifyToken(intent.RawToken, l.svcCtx.Config.Webhook.Token); err != nil {
		l.Errorf("webhook: auth failed for symbol=%s: %v", intent.Symbol, err)
		return errorResponse(err, nil)
	}

	switch intent.Action {
	case exchange.ActionClose:
		return l.close(intent)
	default:
		return l.place(intent)
	}
}

func (l *WebhookLogic) place(intent *exchange.OrderIntent) (*types.WebhookResponse, int) {
	result, err := l.svcCtx.DefaultExchange.PlaceOrder(l.ctx, *intent)
	if err != nil {
		l.Errorf("webhook: order failed action=%s symbol=%s: %v", intent.Action, intent.Symbol, err)
		return errorResponse(err, rawData(result))
	}
	l.Infof("webhook: order accepted action=%s symbol=%s", intent.Action, intent.Symbol)
	return &types.WebhookResponse{
		Status:  "success",
		Message: "order placed",
		Data:    rawData(result),
	}, http.StatusOK
}

func (l *WebhookLogic) close(intent *exchange.OrderIntent) (*types.WebhookResponse, int) {
	results, err := l.svcCtx.DefaultExchange.ClosePositions(l.ctx, intent.Symbol, intent.Scope)
	data, marshalErr := json.Marshal(results)
	if marshalErr != nil {
		data = nil
	}
	if err != nil {
		l.Errorf("webhook: close failed symbol=%s scope=%s: %v", intent.Symbol, intent.Scope, err)
		return errorResponse(err, data)
	}
	l.Infof("webhook: close done symbol=%s scope=%s orders=%d", intent.Symbol, intent.Scope, len(results))
	return &types.WebhookResponse{
		Status:  "success",
		Message: "close processed",
		Data:    data,
	}, http.StatusOK
}

func (l *WebhookLogic) defaultMarket() string {
	if cfg := l.svcCtx.DefaultProviderConfig; cfg != nil && cfg.Market != "" {
		return cfg.Market
	}
	return "swap"
}

func rawData(result *exchange.OrderResult) json.RawMessage {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil
	}
	return data
}

// errorResponse maps the error taxonomy onto transport statuses. A venue
// rejection is a processed request, so it keeps 200 with status "error"
// and the venue's verbatim message.
func errorResponse(err error, data json.RawMessage) (*types.WebhookResponse, int) {
	return &types.WebhookResponse{
		Status:  "error",
		Message: err.Error(),
		Data:    data,
	}, statusForError(err)
}

func statusForError(err error) int {
	switch exchange.KindOf(err) {
	case exchange.KindValidation, exchange.KindInstrumentNotFound:
		return http.StatusBadRequest
	case exchange.KindAuth:
		return http.StatusForbidden
	case exchange.KindUpstreamUnavailable:
		return http.StatusBadGateway
	case exchange.KindVenue:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
