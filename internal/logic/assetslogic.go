package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptopanel-api/internal/svc"
	"cryptopanel-api/internal/types"
)

type AssetsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAssetsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AssetsLogic {
	return &AssetsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *AssetsLogic) Assets() (resp *types.AssetsResp, err error) {
	periods := l.svcCtx.Panel.Periods()
	resp = &types.AssetsResp{
		Assets:  l.svcCtx.Panel.Assets(),
		Periods: make([]string, 0, len(periods)),
	}
	for _, p := range periods {
		resp.Periods = append(resp.Periods, string(p))
	}
	return resp, nil
}
