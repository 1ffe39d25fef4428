package logic

import (
	"context"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/goodvill0413/piona-auto-trade-bot/internal/svc"
	"github.com/goodvill0413/piona-auto-trade-bot/internal/types"
)

type PositionsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPositionsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PositionsLogic {
	return &PositionsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Positions lists open legs, optionally filtered to one symbol.
func (l *PositionsLogic) Positions(symbol string) (*types.PositionsResponse, int) {
	positions, err := l.svcCtx.DefaultExchange.GetPositions(l.ctx, symbol)
	if err != nil {
		l.Errorf("positions: %v", err)
		return nil, statusForError(err)
	}
	resp := &types.PositionsResponse{Positions: make([]types.PositionView, 0, len(positions))}
	for _, p := range positions {
		resp.Positions = append(resp.Positions, types.PositionView{
			InstID:       p.InstID,
			PositionSide: p.PositionSide,
			Size:         p.Size.String(),
			MarginMode:   p.MarginMode,
		})
	}
	return resp, http.StatusOK
}
