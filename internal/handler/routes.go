// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/",
				Handler: IndexHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/status",
				Handler: StatusHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/balance",
				Handler: BalanceHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/positions",
				Handler: PositionsHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/webhook",
				Handler: WebhookHandler(serverCtx),
			},
		},
	)
}
