package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/logic"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/types"
)

func BalanceHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewBalanceLogic(r.Context(), svcCtx)
		resp, status := l.Balance()
		if resp == nil {
			httpx.WriteJson(w, status, &types.WebhookResponse{
				Status:  "error",
				Message: "failed to fetch balance",
			})
			return
		}
		httpx.WriteJson(w, status, resp)
	}
}
