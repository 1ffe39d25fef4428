package handler

import (
	"io"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/logic"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/types"
)

// WebhookHandler reads the raw body itself instead of binding a typed
// request. Signal sources send loosely shaped JSON and the translation
// layer owns all interpretation of it.
func WebhookHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			httpx.WriteJson(w, http.StatusBadRequest, &types.WebhookResponse{
				Status:  "error",
				Message: "failed to read request body",
			})
			return
		}

		l := logic.NewWebhookLogic(r.Context(), svcCtx)
		resp, status := l.Webhook(body)
		httpx.WriteJson(w, status, resp)
	}
}
