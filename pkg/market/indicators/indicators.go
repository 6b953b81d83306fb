package indicators

import "github.com/shopspring/decimal"

// SMA produces the trailing simple moving average of values over window.
// Positions with fewer than window observations are left invalid; the value at
// index i >= window-1 is the mean of values[i-window+1..i].
func SMA(values []decimal.Decimal, window int) []decimal.NullDecimal {
	result := make([]decimal.NullDecimal, len(values))
	if window <= 0 || len(values) < window {
		return result
	}
	size := decimal.NewFromInt(int64(window))
	sum := decimal.Zero
	for i, v := range values {
		sum = sum.Add(v)
		if i >= window {
			sum = sum.Sub(values[i-window])
		}
		if i >= window-1 {
			result[i] = decimal.NewNullDecimal(sum.Div(size))
		}
	}
	return result
}

// Defined counts the valid positions of series.
func Defined(series []decimal.NullDecimal) int {
	n := 0
	for _, v := range series {
		if v.Valid {
			n++
		}
	}
	return n
}
