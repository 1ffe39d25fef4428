package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/types"
)

type IndexLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewIndexLogic(ctx context.Context, svcCtx *svc.ServiceContext) *IndexLogic {
	return &IndexLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *IndexLogic) Index() *types.IndexResponse {
	return &types.IndexResponse{
		OK: true,
		Use: []string{
			"GET /status",
			"GET /balance",
			"GET /positions",
			"POST /webhook",
		},
	}
}
