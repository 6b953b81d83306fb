package market

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Provider exposes the remote market data endpoints the panel consumes.
// Every failure is reported as an error wrapping ErrUnavailable.
type Provider interface {
	// FetchSnapshot returns the current market snapshot for one asset.
	FetchSnapshot(ctx context.Context, providerID string) (*SnapshotRecord, error)
	// FetchPeriodicRange returns daily price and volume points for the trailing period.
	FetchPeriodicRange(ctx context.Context, providerID string, period Period) (*RawPayload, error)
	// FetchArbitraryRange returns price and volume points between from and to.
	// Callers guarantee from is before to.
	FetchArbitraryRange(ctx context.Context, providerID string, from, to time.Time) (*RawPayload, error)
	// FetchOHLC returns provider-native candles for the trailing period.
	FetchOHLC(ctx context.Context, providerID string, period Period) (*RawPayload, error)
}

// SnapshotRecord is the current market view of one asset.
type SnapshotRecord struct {
	ProviderID        string           `json:"id" msgpack:"id"`
	Symbol            string           `json:"symbol" msgpack:"symbol"`
	ImageURL          string           `json:"image,omitempty" msgpack:"image"`
	Price             decimal.Decimal  `json:"price" msgpack:"price"`
	Change24hPct      decimal.Decimal  `json:"change_24h_pct" msgpack:"change_24h_pct"`
	MarketCap         decimal.Decimal  `json:"market_cap" msgpack:"market_cap"`
	Volume24h         decimal.Decimal  `json:"volume_24h" msgpack:"volume_24h"`
	High24h           decimal.Decimal  `json:"high_24h" msgpack:"high_24h"`
	Low24h            decimal.Decimal  `json:"low_24h" msgpack:"low_24h"`
	CirculatingSupply decimal.Decimal  `json:"circulating_supply" msgpack:"circulating_supply"`
	TotalSupply       *decimal.Decimal `json:"total_supply,omitempty" msgpack:"total_supply"`
	UpdatedAt         time.Time        `json:"updated_at" msgpack:"updated_at"`
}

// SnapshotDisplay carries the human readable strings shown next to a snapshot.
type SnapshotDisplay struct {
	Price             string `json:"price"`
	Change24h         string `json:"change_24h"`
	MarketCap         string `json:"market_cap"`
	Volume24h         string `json:"volume_24h"`
	High24h           string `json:"high_24h"`
	Low24h            string `json:"low_24h"`
	CirculatingSupply string `json:"circulating_supply"`
	TotalSupply       string `json:"total_supply"`
}

// Display renders the snapshot fields for presentation.
func (s *SnapshotRecord) Display() SnapshotDisplay {
	return SnapshotDisplay{
		Price:             FormatUSD(s.Price),
		Change24h:         FormatPercent(s.Change24hPct),
		MarketCap:         FormatLargeUSD(&s.MarketCap),
		Volume24h:         FormatLargeUSD(&s.Volume24h),
		High24h:           FormatUSD(s.High24h),
		Low24h:            FormatUSD(s.Low24h),
		CirculatingSupply: FormatSupply(s.CirculatingSupply, s.Symbol),
		TotalSupply:       FormatOptionalSupply(s.TotalSupply, s.Symbol),
	}
}
