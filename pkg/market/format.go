package market

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	trillion = decimal.New(1, 12)
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
)

// FormatUSD renders a dollar amount with thousands separators and two decimals.
func FormatUSD(v decimal.Decimal) string {
	f, _ := v.Round(2).Float64()
	if f < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -f)
	}
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// FormatPercent renders a percentage with two decimals, e.g. "2.50%".
func FormatPercent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}

// FormatLargeUSD abbreviates market caps and volumes to T, B or M. A nil value renders as "$0".
func FormatLargeUSD(v *decimal.Decimal) string {
	if v == nil {
		return "$0"
	}
	switch {
	case v.GreaterThan(trillion):
		return "$" + v.Div(trillion).StringFixed(2) + " T"
	case v.GreaterThan(billion):
		return "$" + v.Div(billion).StringFixed(2) + " B"
	case v.GreaterThan(million):
		return "$" + v.Div(million).StringFixed(2) + " M"
	default:
		return FormatUSD(*v)
	}
}

// FormatSupply renders a token supply with separators followed by the upper-cased symbol.
func FormatSupply(v decimal.Decimal, symbol string) string {
	f, _ := v.Round(0).Float64()
	out := humanize.Commaf(f)
	if symbol = strings.ToUpper(strings.TrimSpace(symbol)); symbol != "" {
		out += " " + symbol
	}
	return out
}

// FormatOptionalSupply is FormatSupply that renders "N/A" for missing or zero supplies.
func FormatOptionalSupply(v *decimal.Decimal, symbol string) string {
	if v == nil || v.IsZero() {
		return "N/A"
	}
	return FormatSupply(*v, symbol)
}
