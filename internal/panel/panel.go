package panel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptopanel-api/internal/cache"
	"cryptopanel-api/internal/config"
	"cryptopanel-api/pkg/market"
)

//go:generate mockgen -package=panel_test -destination=mock_provider_test.go cryptopanel-api/pkg/market Provider

// DefaultMaxRows caps normalized tables when no limit is configured.
const DefaultMaxRows = 5000

// Service answers panel queries through the result cache.
type Service struct {
	catalog  *market.Catalog
	provider market.Provider
	periods  []market.PeriodSelector
	enabled  map[market.PeriodSelector]struct{}
	ttl      cache.TTLSet
	maxRows  int

	snapshots *cache.Cache[*market.SnapshotRecord]
	tables    *cache.Cache[*market.Table]
}

// Option customises a Service.
type Option func(*settings)

type settings struct {
	periods      []market.PeriodSelector
	ttl          *cache.TTLSet
	maxRows      int
	cacheOptions []cache.Option
}

// WithPeriods restricts the selectors accepted by history and candle queries.
func WithPeriods(periods []market.PeriodSelector) Option {
	return func(s *settings) {
		if len(periods) > 0 {
			s.periods = periods
		}
	}
}

// WithTTL sets per-kind cache lifetimes.
func WithTTL(ttl cache.TTLSet) Option {
	return func(s *settings) {
		s.ttl = &ttl
	}
}

// WithMaxRows caps every normalized table, keeping the most recent rows.
func WithMaxRows(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxRows = n
		}
	}
}

// WithCacheOptions passes options to both result caches.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(s *settings) {
		s.cacheOptions = append(s.cacheOptions, opts...)
	}
}

// New constructs a Service over catalog and provider.
func New(catalog *market.Catalog, provider market.Provider, opts ...Option) *Service {
	s := &settings{periods: market.DefaultPeriods(), maxRows: DefaultMaxRows}
	for _, opt := range opts {
		opt(s)
	}
	ttl := cache.NewTTLSet(config.CacheTTL{})
	if s.ttl != nil {
		ttl = *s.ttl
	}
	periods := make([]market.PeriodSelector, 0, len(s.periods))
	enabled := make(map[market.PeriodSelector]struct{}, len(s.periods))
	for _, raw := range s.periods {
		p, err := market.ParsePeriod(string(raw))
		if err != nil {
			continue
		}
		sel := market.SelectorFor(p)
		if _, dup := enabled[sel]; !dup {
			enabled[sel] = struct{}{}
			periods = append(periods, sel)
		}
	}
	return &Service{
		catalog:   catalog,
		provider:  provider,
		periods:   periods,
		enabled:   enabled,
		ttl:       ttl,
		maxRows:   s.maxRows,
		snapshots: cache.New[*market.SnapshotRecord](s.cacheOptions...),
		tables:    cache.New[*market.Table](s.cacheOptions...),
	}
}

// Assets lists the catalog in configured order.
func (s *Service) Assets() []market.AssetRef {
	return s.catalog.Assets()
}

// Periods lists the enabled period selectors.
func (s *Service) Periods() []market.PeriodSelector {
	out := make([]market.PeriodSelector, len(s.periods))
	copy(out, s.periods)
	return out
}

// GetSnapshot returns the current market snapshot of the named asset.
func (s *Service) GetSnapshot(ctx context.Context, displayName string) (*market.SnapshotRecord, error) {
	asset, err := s.catalog.Lookup(displayName)
	if err != nil {
		return nil, err
	}
	key := cache.SnapshotKey(asset.ProviderID)
	snap, err := s.snapshots.Get(ctx, key, s.ttl.Snapshot, func(ctx context.Context) (*market.SnapshotRecord, error) {
		return s.provider.FetchSnapshot(ctx, asset.ProviderID)
	})
	if err != nil {
		return nil, s.failure(ctx, key, err)
	}
	return snap, nil
}

// GetHistoricalSeries returns the daily series of the named asset over the
// trailing period with synthesized OHLC.
func (s *Service) GetHistoricalSeries(ctx context.Context, displayName string, selector market.PeriodSelector) (*market.Table, error) {
	asset, period, err := s.resolve(displayName, selector)
	if err != nil {
		return nil, err
	}
	key := cache.HistoryKey(asset.ProviderID, period)
	table, err := s.tables.Get(ctx, key, s.ttl.History, func(ctx context.Context) (*market.Table, error) {
		payload, err := s.provider.FetchPeriodicRange(ctx, asset.ProviderID, period)
		if err != nil {
			return nil, err
		}
		return s.capRows(ctx, market.FromCloseVolume(asset, market.PeriodWindow(market.SelectorFor(period)), payload.Prices, payload.Volumes)), nil
	})
	if err != nil {
		return nil, s.failure(ctx, key, err)
	}
	return table, nil
}

// GetCandles returns provider-native candles of the named asset.
func (s *Service) GetCandles(ctx context.Context, displayName string, selector market.PeriodSelector) (*market.Table, error) {
	asset, period, err := s.resolve(displayName, selector)
	if err != nil {
		return nil, err
	}
	key := cache.OHLCKey(asset.ProviderID, period)
	table, err := s.tables.Get(ctx, key, s.ttl.OHLC, func(ctx context.Context) (*market.Table, error) {
		payload, err := s.provider.FetchOHLC(ctx, asset.ProviderID, period)
		if err != nil {
			return nil, err
		}
		return s.capRows(ctx, market.FromCandles(asset, market.PeriodWindow(market.SelectorFor(period)), payload.Candles)), nil
	})
	if err != nil {
		return nil, s.failure(ctx, key, err)
	}
	return table, nil
}

// GetRangeSeries returns the close-only series between the start of startDate
// and the end of endDate (UTC). startDate must be before endDate.
func (s *Service) GetRangeSeries(ctx context.Context, displayName string, startDate, endDate time.Time) (*market.Table, error) {
	from, to, err := DayBounds(startDate, endDate)
	if err != nil {
		return nil, err
	}
	asset, err := s.catalog.Lookup(displayName)
	if err != nil {
		return nil, err
	}
	key := cache.RangeKey(asset.ProviderID, from, to)
	table, err := s.tables.Get(ctx, key, s.ttl.Range, func(ctx context.Context) (*market.Table, error) {
		payload, err := s.provider.FetchArbitraryRange(ctx, asset.ProviderID, from, to)
		if err != nil {
			return nil, err
		}
		return s.capRows(ctx, market.FromLine(asset, market.RangeWindow(from, to), payload.Prices)), nil
	})
	if err != nil {
		return nil, s.failure(ctx, key, err)
	}
	return table, nil
}

// WithMovingAverage returns a copy of table carrying the moving average column.
func (s *Service) WithMovingAverage(table *market.Table, window int) (*market.Table, error) {
	if err := market.ValidateWindow(window); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fmt.Errorf("panel: nil table")
	}
	return market.WithMovingAverage(table, window), nil
}

// DayBounds expands calendar dates to [start 00:00:00, end 23:59:59] in UTC.
// It rejects start dates that are not before the end date.
func DayBounds(startDate, endDate time.Time) (time.Time, time.Time, error) {
	start := truncateDay(startDate)
	end := truncateDay(endDate)
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s >= %s", market.ErrInvalidRange,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return start, end.Add(24*time.Hour - time.Second), nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) resolve(displayName string, selector market.PeriodSelector) (market.AssetRef, market.Period, error) {
	asset, err := s.catalog.Lookup(displayName)
	if err != nil {
		return market.AssetRef{}, 0, err
	}
	period, err := market.ParsePeriod(string(selector))
	if err != nil {
		return market.AssetRef{}, 0, err
	}
	if _, ok := s.enabled[market.SelectorFor(period)]; !ok {
		return market.AssetRef{}, 0, fmt.Errorf("%w: %q is not enabled", market.ErrUnsupportedPeriod, selector)
	}
	return asset, period, nil
}

func (s *Service) capRows(ctx context.Context, table *market.Table) *market.Table {
	if dropped := table.Tail(s.maxRows); dropped > 0 {
		logx.WithContext(ctx).Infof("panel: %s %s capped to %d rows, dropped %d oldest",
			table.Asset.ProviderID, table.Shape, s.maxRows, dropped)
	}
	return table
}

func (s *Service) failure(ctx context.Context, key cache.Key, err error) error {
	if !errors.Is(err, market.ErrUnavailable) {
		err = fmt.Errorf("%w: %w", market.ErrUnavailable, err)
	}
	logx.WithContext(ctx).Errorf("panel: fetch %s err=%v", key, err)
	return err
}
