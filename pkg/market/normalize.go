package market

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// FromCandles passes provider candles through as OHLC rows.
func FromCandles(asset AssetRef, window QueryWindow, candles []Candle) *Table {
	table := newTable(asset, window, ShapeOHLC)
	if len(candles) == 0 {
		return table
	}
	latest := make(map[int64]Candle, len(candles))
	stamps := make([]int64, 0, len(candles))
	for _, c := range candles {
		if _, seen := latest[c.Timestamp]; !seen {
			stamps = append(stamps, c.Timestamp)
		}
		latest[c.Timestamp] = c
	}
	sortStamps(stamps)
	table.Rows = make([]Row, 0, len(stamps))
	for _, ts := range stamps {
		c := latest[ts]
		table.Rows = append(table.Rows, Row{
			Timestamp: msToTime(ts),
			Open:      decimalPtr(c.Open),
			High:      decimalPtr(c.High),
			Low:       decimalPtr(c.Low),
			Close:     c.Close,
		})
	}
	return table
}

// FromCloseVolume joins close and volume points on timestamp and synthesizes
// OHLC from consecutive closes. open[i] is close[i-1]; high and low bracket
// open and close. The first joined row has no predecessor and is dropped.
func FromCloseVolume(asset AssetRef, window QueryWindow, prices, volumes []Point) *Table {
	table := newTable(asset, window, ShapeSyntheticOHLC)
	closes, stamps := latestByTimestamp(prices)
	vols, _ := latestByTimestamp(volumes)

	joined := make([]int64, 0, len(stamps))
	for _, ts := range stamps {
		if _, ok := vols[ts]; ok {
			joined = append(joined, ts)
		}
	}
	if len(joined) < 2 {
		return table
	}

	table.Rows = make([]Row, 0, len(joined)-1)
	prev := closes[joined[0]]
	for _, ts := range joined[1:] {
		open, closeVal := prev, closes[ts]
		table.Rows = append(table.Rows, Row{
			Timestamp: msToTime(ts),
			Open:      decimalPtr(open),
			High:      decimalPtr(decimal.Max(open, closeVal)),
			Low:       decimalPtr(decimal.Min(open, closeVal)),
			Close:     closeVal,
			Volume:    decimalPtr(vols[ts]),
		})
		prev = closeVal
	}
	return table
}

// FromLine keeps close-only rows; no OHLC is synthesized.
func FromLine(asset AssetRef, window QueryWindow, prices []Point) *Table {
	table := newTable(asset, window, ShapeLine)
	closes, stamps := latestByTimestamp(prices)
	if len(stamps) == 0 {
		return table
	}
	table.Rows = make([]Row, 0, len(stamps))
	for _, ts := range stamps {
		table.Rows = append(table.Rows, Row{Timestamp: msToTime(ts), Close: closes[ts]})
	}
	return table
}

func newTable(asset AssetRef, window QueryWindow, shape Shape) *Table {
	return &Table{Asset: asset, Window: window, Shape: shape, Rows: []Row{}}
}

// latestByTimestamp indexes points by timestamp, the last occurrence in
// payload order winning, and returns the distinct timestamps sorted ascending.
func latestByTimestamp(points []Point) (map[int64]decimal.Decimal, []int64) {
	values := make(map[int64]decimal.Decimal, len(points))
	stamps := make([]int64, 0, len(points))
	for _, p := range points {
		if _, seen := values[p.Timestamp]; !seen {
			stamps = append(stamps, p.Timestamp)
		}
		values[p.Timestamp] = p.Value
	}
	sortStamps(stamps)
	return values, stamps
}

func sortStamps(stamps []int64) {
	sort.Slice(stamps, func(i, j int) bool { return stamps[i] < stamps[j] })
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
