package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptopanel-api/internal/svc"
	"cryptopanel-api/internal/types"
	"cryptopanel-api/pkg/market"
)

// ErrInvalidDate rejects range bounds that are not YYYY-MM-DD dates.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

type SeriesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSeriesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SeriesLogic {
	return &SeriesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// History serves the periodic series with synthesized OHLC.
func (l *SeriesLogic) History(req *types.SeriesReq) (*types.SeriesResp, error) {
	if err := validateMA(req.MA); err != nil {
		return nil, err
	}
	table, err := l.svcCtx.Panel.GetHistoricalSeries(l.ctx, req.Coin, market.PeriodSelector(req.Period))
	if err != nil {
		return nil, err
	}
	return l.respond(req.Coin, table, req.MA)
}

// Candles serves provider candles.
func (l *SeriesLogic) Candles(req *types.SeriesReq) (*types.SeriesResp, error) {
	if err := validateMA(req.MA); err != nil {
		return nil, err
	}
	table, err := l.svcCtx.Panel.GetCandles(l.ctx, req.Coin, market.PeriodSelector(req.Period))
	if err != nil {
		return nil, err
	}
	return l.respond(req.Coin, table, req.MA)
}

// Range serves the close-only series between two calendar dates.
func (l *SeriesLogic) Range(req *types.RangeReq) (*types.SeriesResp, error) {
	start, err := parseDate("start", req.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end", req.End)
	if err != nil {
		return nil, err
	}
	if err := validateMA(req.MA); err != nil {
		return nil, err
	}
	table, err := l.svcCtx.Panel.GetRangeSeries(l.ctx, req.Coin, start, end)
	if err != nil {
		return nil, err
	}
	return l.respond(req.Coin, table, req.MA)
}

func (l *SeriesLogic) respond(coin string, table *market.Table, ma int) (*types.SeriesResp, error) {
	if ma != 0 {
		withMA, err := l.svcCtx.Panel.WithMovingAverage(table, ma)
		if err != nil {
			return nil, err
		}
		table = withMA
	}
	return &types.SeriesResp{Coin: coin, Table: table}, nil
}

// validateMA runs before any fetch. Zero means no moving average.
func validateMA(ma int) error {
	if ma == 0 {
		return nil
	}
	return market.ValidateWindow(ma)
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s=%q", ErrInvalidDate, field, value)
	}
	return t, nil
}
