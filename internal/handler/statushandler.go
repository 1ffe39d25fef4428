package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/logic"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
)

func StatusHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewStatusLogic(r.Context(), svcCtx)
		httpx.OkJson(w, l.Status())
	}
}
