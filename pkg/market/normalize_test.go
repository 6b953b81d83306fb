package market_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"cryptopanel-api/pkg/market"
)

var btc = market.AssetRef{DisplayName: "Bitcoin", ProviderID: "bitcoin"}

const dayMs = int64(24 * time.Hour / time.Millisecond)

func pt(ts int64, v string) market.Point {
	return market.Point{Timestamp: ts, Value: decimal.RequireFromString(v)}
}

func dailyPoints(n int, base int64, start float64) []market.Point {
	out := make([]market.Point, n)
	for i := range out {
		v := start + float64(i%7)*3 - float64(i%3)*5
		out[i] = market.Point{Timestamp: base + int64(i)*dayMs, Value: decimal.NewFromFloat(v)}
	}
	return out
}

func TestFromCloseVolumeReconstruction(t *testing.T) {
	base := int64(1704067200000)
	prices := dailyPoints(30, base, 100)
	volumes := dailyPoints(30, base, 5000)

	table := market.FromCloseVolume(btc, market.PeriodWindow(market.Period30d), prices, volumes)
	require.Equal(t, market.ShapeSyntheticOHLC, table.Shape)
	require.Len(t, table.Rows, 29)

	for i, row := range table.Rows {
		require.NotNil(t, row.Open)
		require.NotNil(t, row.High)
		require.NotNil(t, row.Low)
		require.NotNil(t, row.Volume)
		require.True(t, row.Open.Equal(prices[i].Value), "open[%d] must equal previous close", i)
		require.True(t, row.Close.Equal(prices[i+1].Value))
		require.True(t, row.Low.LessThanOrEqual(decimal.Min(*row.Open, row.Close)))
		require.True(t, row.High.GreaterThanOrEqual(decimal.Max(*row.Open, row.Close)))
		require.True(t, row.Low.LessThanOrEqual(*row.High))
		if i > 0 {
			require.True(t, row.Timestamp.After(table.Rows[i-1].Timestamp))
		}
	}
	require.Equal(t, time.UnixMilli(base+dayMs).UTC(), table.Rows[0].Timestamp)
}

func TestFromCloseVolumeInnerJoin(t *testing.T) {
	prices := []market.Point{pt(1000, "10"), pt(2000, "12"), pt(3000, "11"), pt(4000, "15")}
	volumes := []market.Point{pt(1000, "1"), pt(3000, "3"), pt(4000, "4"), pt(5000, "5")}

	table := market.FromCloseVolume(btc, market.QueryWindow{}, prices, volumes)
	require.Len(t, table.Rows, 2)

	first := table.Rows[0]
	require.Equal(t, int64(3000), first.Timestamp.UnixMilli())
	require.Equal(t, "10", first.Open.String())
	require.Equal(t, "11", first.High.String())
	require.Equal(t, "10", first.Low.String())
	require.Equal(t, "3", first.Volume.String())

	second := table.Rows[1]
	require.Equal(t, "11", second.Open.String())
	require.Equal(t, "15", second.High.String())
	require.Equal(t, "11", second.Low.String())
}

func TestFromCloseVolumeUnsortedAndDuplicates(t *testing.T) {
	prices := []market.Point{pt(3000, "30"), pt(1000, "10"), pt(2000, "20"), pt(2000, "22")}
	volumes := []market.Point{pt(2000, "2"), pt(1000, "1"), pt(3000, "3")}

	a := market.FromCloseVolume(btc, market.QueryWindow{}, prices, volumes)
	b := market.FromCloseVolume(btc, market.QueryWindow{}, prices, volumes)
	require.Equal(t, a, b)

	require.Len(t, a.Rows, 2)
	require.Equal(t, "22", a.Rows[0].Close.String(), "last duplicate wins")
	require.Equal(t, "22", a.Rows[1].Open.String())
}

func TestFromLine(t *testing.T) {
	prices := []market.Point{pt(2000, "2"), pt(1000, "1"), pt(3000, "3")}
	table := market.FromLine(btc, market.QueryWindow{}, prices)
	require.Equal(t, market.ShapeLine, table.Shape)
	require.Len(t, table.Rows, 3)
	for i, row := range table.Rows {
		require.Nil(t, row.Open)
		require.Nil(t, row.High)
		require.Nil(t, row.Low)
		require.Equal(t, int64(i+1)*1000, row.Timestamp.UnixMilli())
	}
}

func TestFromCandles(t *testing.T) {
	candles := []market.Candle{
		{Timestamp: 2000, Open: decimal.NewFromInt(2), High: decimal.NewFromInt(4), Low: decimal.NewFromInt(1), Close: decimal.NewFromInt(3)},
		{Timestamp: 1000, Open: decimal.NewFromInt(1), High: decimal.NewFromInt(2), Low: decimal.NewFromInt(1), Close: decimal.NewFromInt(2)},
	}
	table := market.FromCandles(btc, market.QueryWindow{}, candles)
	require.Equal(t, market.ShapeOHLC, table.Shape)
	require.Len(t, table.Rows, 2)
	require.Equal(t, int64(1000), table.Rows[0].Timestamp.UnixMilli())
	require.Equal(t, "4", table.Rows[1].High.String())
	require.Nil(t, table.Rows[1].Volume)
}

func TestNormalizeEmptyPayloads(t *testing.T) {
	window := market.PeriodWindow(market.Period7d)
	tables := []*market.Table{
		market.FromCandles(btc, window, nil),
		market.FromCloseVolume(btc, window, nil, nil),
		market.FromCloseVolume(btc, window, []market.Point{pt(1000, "1")}, []market.Point{pt(1000, "1")}),
		market.FromCloseVolume(btc, window, []market.Point{pt(1000, "1"), pt(2000, "2")}, nil),
		market.FromLine(btc, window, []market.Point{}),
	}
	for _, table := range tables {
		require.NotNil(t, table)
		require.NotNil(t, table.Rows)
		require.Zero(t, table.Len())
		require.Equal(t, btc, table.Asset)
		require.Equal(t, market.Period7d, table.Window.Period)
	}
}

func TestTableTail(t *testing.T) {
	table := market.FromLine(btc, market.QueryWindow{}, dailyPoints(10, 0, 1))
	require.Zero(t, table.Tail(20))
	require.Equal(t, 4, table.Tail(6))
	require.Len(t, table.Rows, 6)
	require.Equal(t, 4*dayMs, table.Rows[0].Timestamp.UnixMilli())
}
