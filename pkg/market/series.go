package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// Point is a [timestamp_ms, value] pair as delivered by the provider.
type Point struct {
	Timestamp int64
	Value     decimal.Decimal
}

// Candle is a [timestamp_ms, open, high, low, close] tuple.
type Candle struct {
	Timestamp int64
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
}

// RawPayload is a decoded provider response prior to normalization. Range
// endpoints fill Prices and Volumes, the candle endpoint fills Candles.
type RawPayload struct {
	Prices  []Point
	Volumes []Point
	Candles []Candle
}

// Shape records which conversion path produced a table.
type Shape string

const (
	ShapeLine          Shape = "line"
	ShapeOHLC          Shape = "ohlc"
	ShapeSyntheticOHLC Shape = "synthetic_ohlc"
)

// HasOHLC reports whether rows of this shape carry open, high and low.
func (s Shape) HasOHLC() bool {
	return s == ShapeOHLC || s == ShapeSyntheticOHLC
}

// Row is one observation of a normalized table.
type Row struct {
	Timestamp     time.Time        `json:"timestamp" msgpack:"ts"`
	Open          *decimal.Decimal `json:"open,omitempty" msgpack:"o"`
	High          *decimal.Decimal `json:"high,omitempty" msgpack:"h"`
	Low           *decimal.Decimal `json:"low,omitempty" msgpack:"l"`
	Close         decimal.Decimal  `json:"close" msgpack:"c"`
	Volume        *decimal.Decimal `json:"volume,omitempty" msgpack:"v"`
	MovingAverage *decimal.Decimal `json:"moving_average,omitempty" msgpack:"ma"`
}

// QueryWindow is the request that produced a table: either a period selector
// or an explicit From/To range.
type QueryWindow struct {
	Period PeriodSelector `json:"period,omitempty" msgpack:"period"`
	From   *time.Time     `json:"from,omitempty" msgpack:"from"`
	To     *time.Time     `json:"to,omitempty" msgpack:"to"`
}

// PeriodWindow builds a QueryWindow for a period selector.
func PeriodWindow(selector PeriodSelector) QueryWindow {
	return QueryWindow{Period: selector}
}

// RangeWindow builds a QueryWindow for an explicit range.
func RangeWindow(from, to time.Time) QueryWindow {
	from, to = from.UTC(), to.UTC()
	return QueryWindow{From: &from, To: &to}
}

// Table is a normalized time series. Rows are strictly ascending by timestamp.
type Table struct {
	Asset    AssetRef    `json:"asset" msgpack:"asset"`
	Window   QueryWindow `json:"window" msgpack:"window"`
	Shape    Shape       `json:"shape" msgpack:"shape"`
	MAWindow int         `json:"ma_window,omitempty" msgpack:"ma_window"`
	Rows     []Row       `json:"rows" msgpack:"rows"`
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Closes returns the close column in row order.
func (t *Table) Closes() []decimal.Decimal {
	out := make([]decimal.Decimal, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Close
	}
	return out
}

// Clone returns a deep copy so callers can add columns without touching
// shared (cached) tables.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := *t
	out.Window = QueryWindow{Period: t.Window.Period, From: copyTime(t.Window.From), To: copyTime(t.Window.To)}
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = Row{
			Timestamp:     row.Timestamp,
			Open:          copyDecimal(row.Open),
			High:          copyDecimal(row.High),
			Low:           copyDecimal(row.Low),
			Close:         row.Close,
			Volume:        copyDecimal(row.Volume),
			MovingAverage: copyDecimal(row.MovingAverage),
		}
	}
	return &out
}

// Tail keeps at most n of the most recent rows. It returns the number of rows dropped.
func (t *Table) Tail(n int) int {
	if n <= 0 || len(t.Rows) <= n {
		return 0
	}
	dropped := len(t.Rows) - n
	t.Rows = append([]Row(nil), t.Rows[dropped:]...)
	return dropped
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func copyTime(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	v := *ts
	return &v
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
