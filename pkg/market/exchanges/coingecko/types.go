package coingecko

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"cryptopanel-api/pkg/market"
)

// CoinMarket mirrors an element of the /coins/markets response.
type CoinMarket struct {
	ID                       string           `json:"id"`
	Symbol                   string           `json:"symbol"`
	Name                     string           `json:"name"`
	Image                    string           `json:"image"`
	CurrentPrice             *decimal.Decimal `json:"current_price"`
	MarketCap                *decimal.Decimal `json:"market_cap"`
	TotalVolume              *decimal.Decimal `json:"total_volume"`
	High24h                  *decimal.Decimal `json:"high_24h"`
	Low24h                   *decimal.Decimal `json:"low_24h"`
	PriceChangePercentage24h *decimal.Decimal `json:"price_change_percentage_24h"`
	CirculatingSupply        *decimal.Decimal `json:"circulating_supply"`
	TotalSupply              *decimal.Decimal `json:"total_supply"`
	LastUpdated              time.Time        `json:"last_updated"`
}

// Tuple is a [timestamp_ms, value] pair. A JSON null element decodes to "".
type Tuple []json.Number

// OHLCTuple is a [timestamp_ms, open, high, low, close] tuple.
type OHLCTuple []json.Number

// MarketChart mirrors the /market_chart and /market_chart/range responses.
type MarketChart struct {
	Prices       []Tuple `json:"prices"`
	MarketCaps   []Tuple `json:"market_caps"`
	TotalVolumes []Tuple `json:"total_volumes"`
}

func (m CoinMarket) toSnapshot() *market.SnapshotRecord {
	return &market.SnapshotRecord{
		ProviderID:        m.ID,
		Symbol:            m.Symbol,
		ImageURL:          m.Image,
		Price:             valueOrZero(m.CurrentPrice),
		Change24hPct:      valueOrZero(m.PriceChangePercentage24h),
		MarketCap:         valueOrZero(m.MarketCap),
		Volume24h:         valueOrZero(m.TotalVolume),
		High24h:           valueOrZero(m.High24h),
		Low24h:            valueOrZero(m.Low24h),
		CirculatingSupply: valueOrZero(m.CirculatingSupply),
		TotalSupply:       m.TotalSupply,
		UpdatedAt:         m.LastUpdated.UTC(),
	}
}

func (m *MarketChart) toPayload() (*market.RawPayload, error) {
	prices, err := toPoints("prices", m.Prices)
	if err != nil {
		return nil, err
	}
	volumes, err := toPoints("total_volumes", m.TotalVolumes)
	if err != nil {
		return nil, err
	}
	return &market.RawPayload{Prices: prices, Volumes: volumes}, nil
}

func toPoints(field string, tuples []Tuple) ([]market.Point, error) {
	out := make([]market.Point, 0, len(tuples))
	for i, t := range tuples {
		if len(t) < 2 {
			return nil, fmt.Errorf("coingecko: %s[%d]: malformed tuple of length %d", field, i, len(t))
		}
		if t[0] == "" || t[1] == "" {
			continue
		}
		ts, err := parseTimestamp(t[0])
		if err != nil {
			return nil, fmt.Errorf("coingecko: %s[%d]: %w", field, i, err)
		}
		v, err := decimal.NewFromString(t[1].String())
		if err != nil {
			return nil, fmt.Errorf("coingecko: %s[%d]: %w", field, i, err)
		}
		out = append(out, market.Point{Timestamp: ts, Value: v})
	}
	return out, nil
}

func toCandles(tuples []OHLCTuple) ([]market.Candle, error) {
	out := make([]market.Candle, 0, len(tuples))
	for i, t := range tuples {
		if len(t) < 5 {
			return nil, fmt.Errorf("coingecko: ohlc[%d]: malformed tuple of length %d", i, len(t))
		}
		if t[0] == "" || t[1] == "" || t[2] == "" || t[3] == "" || t[4] == "" {
			continue
		}
		ts, err := parseTimestamp(t[0])
		if err != nil {
			return nil, fmt.Errorf("coingecko: ohlc[%d]: %w", i, err)
		}
		var vals [4]decimal.Decimal
		for j := range vals {
			if vals[j], err = decimal.NewFromString(t[j+1].String()); err != nil {
				return nil, fmt.Errorf("coingecko: ohlc[%d]: %w", i, err)
			}
		}
		out = append(out, market.Candle{Timestamp: ts, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3]})
	}
	return out, nil
}

func parseTimestamp(n json.Number) (int64, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", n, err)
	}
	return d.IntPart(), nil
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
