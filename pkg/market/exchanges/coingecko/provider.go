package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cryptopanel-api/pkg/market"
)

const defaultProviderTimeout = 15 * time.Second

// Provider wraps Client calls behind the market.Provider contract. Every
// failure it returns wraps market.ErrUnavailable.
type Provider struct {
	client     *Client
	timeout    time.Duration
	providerID string
}

type providerConfig struct {
	timeout      time.Duration
	clientConfig []Option
}

// ProviderOption customises the CoinGecko provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientConfig = append(cfg.clientConfig, options...)
	}
}

// NewProvider constructs a CoinGecko market provider.
func NewProvider(opts ...ProviderOption) *Provider {
	cfg := &providerConfig{timeout: defaultProviderTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Provider{
		client:     NewClient(cfg.clientConfig...),
		timeout:    cfg.timeout,
		providerID: "coingecko",
	}
}

func init() {
	market.RegisterProvider("coingecko", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{
			WithAPIKey(cfg.APIKey),
			WithPlan(cfg.Plan),
			WithQuoteCurrency(cfg.QuoteCurrency),
			WithBaseURL(cfg.BaseURL),
		}
		if cfg.Plan != "" && cfg.Plan != PlanDemo && cfg.Plan != PlanPro {
			return nil, fmt.Errorf("coingecko: unknown plan %q", cfg.Plan)
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		opts = append(opts, WithClientOptions(clientOptions...))
		provider := NewProvider(opts...)
		provider.providerID = name
		return provider, nil
	})
}

// Name returns the configured provider name.
func (p *Provider) Name() string {
	return p.providerID
}

// FetchSnapshot implements market.Provider.
func (p *Provider) FetchSnapshot(ctx context.Context, providerID string) (*market.SnapshotRecord, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	rows, err := p.client.GetCoinMarkets(ctx, providerID)
	if err != nil {
		return nil, unavailable(err)
	}
	for _, row := range rows {
		if row.ID == providerID {
			return row.toSnapshot(), nil
		}
	}
	return nil, unavailable(fmt.Errorf("coingecko: no market data for %q", providerID))
}

// FetchPeriodicRange implements market.Provider.
func (p *Provider) FetchPeriodicRange(ctx context.Context, providerID string, period market.Period) (*market.RawPayload, error) {
	if !period.Valid() {
		return nil, unavailable(fmt.Errorf("coingecko: invalid period %d", period))
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	chart, err := p.client.GetMarketChart(ctx, providerID, period.Param())
	if err != nil {
		return nil, unavailable(err)
	}
	payload, err := chart.toPayload()
	if err != nil {
		return nil, unavailable(err)
	}
	return payload, nil
}

// FetchArbitraryRange implements market.Provider.
func (p *Provider) FetchArbitraryRange(ctx context.Context, providerID string, from, to time.Time) (*market.RawPayload, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	chart, err := p.client.GetMarketChartRange(ctx, providerID, from, to)
	if err != nil {
		return nil, unavailable(err)
	}
	payload, err := chart.toPayload()
	if err != nil {
		return nil, unavailable(err)
	}
	return payload, nil
}

// FetchOHLC implements market.Provider.
func (p *Provider) FetchOHLC(ctx context.Context, providerID string, period market.Period) (*market.RawPayload, error) {
	if !period.Valid() {
		return nil, unavailable(fmt.Errorf("coingecko: invalid period %d", period))
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	tuples, err := p.client.GetOHLC(ctx, providerID, period.Param())
	if err != nil {
		return nil, unavailable(err)
	}
	candles, err := toCandles(tuples)
	if err != nil {
		return nil, unavailable(err)
	}
	return &market.RawPayload{Candles: candles}, nil
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, p.timeout)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", market.ErrUnavailable, err)
}

var _ market.Provider = (*Provider)(nil)
