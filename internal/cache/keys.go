package cache

import (
	"strconv"
	"strings"
	"time"

	"cryptopanel-api/internal/config"
	"cryptopanel-api/pkg/market"
)

// Namespace is the shared-tier key prefix.
const Namespace = "cryptopanel"

// Kind identifies the endpoint a cached value came from. Each kind has its own TTL.
type Kind string

const (
	KindSnapshot Kind = "snapshot"
	KindHistory  Kind = "history"
	KindRange    Kind = "range"
	KindOHLC     Kind = "ohlc"
)

// Key identifies a cached value. Two keys match only when every field matches.
type Key struct {
	Kind    Kind
	AssetID string
	Params  string
}

// String renders the key as used by the shared tier and single flight.
func (k Key) String() string {
	return formatKey(string(k.Kind), k.AssetID, k.Params)
}

// SnapshotKey keys the current snapshot of an asset.
func SnapshotKey(assetID string) Key {
	return Key{Kind: KindSnapshot, AssetID: assetID}
}

// HistoryKey keys the periodic range of an asset.
func HistoryKey(assetID string, period market.Period) Key {
	return Key{Kind: KindHistory, AssetID: assetID, Params: period.Param()}
}

// OHLCKey keys the provider candles of an asset.
func OHLCKey(assetID string, period market.Period) Key {
	return Key{Kind: KindOHLC, AssetID: assetID, Params: period.Param()}
}

// RangeKey keys an arbitrary range by its unix second bounds.
func RangeKey(assetID string, from, to time.Time) Key {
	params := strconv.FormatInt(from.Unix(), 10) + "-" + strconv.FormatInt(to.Unix(), 10)
	return Key{Kind: KindRange, AssetID: assetID, Params: params}
}

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Snapshot time.Duration
	History  time.Duration
	Range    time.Duration
	OHLC     time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Snapshot: durationOrDefault(cfg.Snapshot, config.DefaultSnapshotTTL*time.Second),
		History:  durationOrDefault(cfg.History, config.DefaultSeriesTTL*time.Second),
		Range:    durationOrDefault(cfg.Range, config.DefaultSeriesTTL*time.Second),
		OHLC:     durationOrDefault(cfg.OHLC, config.DefaultSeriesTTL*time.Second),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given kind.
func (t TTLSet) Duration(kind Kind) time.Duration {
	switch kind {
	case KindSnapshot:
		return t.Snapshot
	case KindHistory:
		return t.History
	case KindRange:
		return t.Range
	case KindOHLC:
		return t.OHLC
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}
