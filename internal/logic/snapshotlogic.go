package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptopanel-api/internal/svc"
	"cryptopanel-api/internal/types"
)

type SnapshotLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSnapshotLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SnapshotLogic {
	return &SnapshotLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SnapshotLogic) Snapshot(req *types.SnapshotReq) (resp *types.SnapshotResp, err error) {
	snap, err := l.svcCtx.Panel.GetSnapshot(l.ctx, req.Coin)
	if err != nil {
		return nil, err
	}
	return &types.SnapshotResp{
		Coin:     req.Coin,
		Snapshot: snap,
		Display:  snap.Display(),
	}, nil
}
