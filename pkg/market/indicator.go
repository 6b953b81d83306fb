package market

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cryptopanel-api/pkg/market/indicators"
)

// Moving average window bounds accepted from callers.
const (
	MinMAWindow     = 5
	MaxMAWindow     = 200
	DefaultMAWindow = 20
)

// MAPoint is one moving average observation; Value is invalid while history
// is shorter than the window.
type MAPoint struct {
	Timestamp time.Time
	Value     decimal.NullDecimal
}

// ValidateWindow rejects windows outside [MinMAWindow, MaxMAWindow].
func ValidateWindow(window int) error {
	if window < MinMAWindow || window > MaxMAWindow {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidWindow, window, MinMAWindow, MaxMAWindow)
	}
	return nil
}

// MovingAverage computes the trailing simple moving average of the close column.
func MovingAverage(table *Table, window int) []MAPoint {
	if table == nil {
		return nil
	}
	values := indicators.SMA(table.Closes(), window)
	out := make([]MAPoint, len(values))
	for i, v := range values {
		out[i] = MAPoint{Timestamp: table.Rows[i].Timestamp, Value: v}
	}
	return out
}

// WithMovingAverage returns a copy of table with the MovingAverage column set.
// The input table is left untouched.
func WithMovingAverage(table *Table, window int) *Table {
	out := table.Clone()
	if out == nil {
		return nil
	}
	for i, v := range indicators.SMA(out.Closes(), window) {
		if v.Valid {
			out.Rows[i].MovingAverage = decimalPtr(v.Decimal)
		}
	}
	out.MAWindow = window
	return out
}
