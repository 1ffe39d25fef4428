package logic

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/types"
)

type StatusLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStatusLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StatusLogic {
	return &StatusLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *StatusLogic) Status() *types.StatusResponse {
	resp := &types.StatusResponse{
		Market:    "swap",
		Status:    "running",
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05"),
	}
	if cfg := l.svcCtx.DefaultProviderConfig; cfg != nil {
		if cfg.Market != "" {
			resp.Market = cfg.Market
		}
		resp.Simulated = cfg.Simulated
	}
	return resp
}
