package logic

import (
	"context"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/types"
)

type BalanceLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewBalanceLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BalanceLogic {
	return &BalanceLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Balance proxies the venue's balance payload without reshaping it.
func (l *BalanceLogic) Balance() (*types.BalanceResponse, int) {
	data, err := l.svcCtx.DefaultExchange.GetBalance(l.ctx)
	if err != nil {
		l.Errorf("balance: %v", err)
		return nil, statusForError(err)
	}
	return &types.BalanceResponse{Data: data}, http.StatusOK
}
