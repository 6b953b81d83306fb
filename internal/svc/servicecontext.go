package svc

import (
	"fmt"
	"log"

	"cryptopanel-api/internal/cache"
	"cryptopanel-api/internal/config"
	"cryptopanel-api/internal/panel"
	marketpkg "cryptopanel-api/pkg/market"
	_ "cryptopanel-api/pkg/market/exchanges/coingecko"
)

type ServiceContext struct {
	Config config.Config

	MarketConfig  *marketpkg.Config
	Catalog       *marketpkg.Catalog
	DefaultMarket marketpkg.Provider

	Panel *panel.Service
}

// NewServiceContext wires the panel service and exits the process on
// configuration errors.
func NewServiceContext(c config.Config) *ServiceContext {
	svc, err := New(c)
	if err != nil {
		log.Fatalf("failed to build service context: %v", err)
	}
	return svc
}

// New wires the panel service from a loaded configuration.
func New(c config.Config) (*ServiceContext, error) {
	marketCfg := c.Market.Value
	if marketCfg == nil {
		return nil, fmt.Errorf("market config not loaded")
	}
	catalog, err := marketCfg.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	provider, err := marketCfg.DefaultProvider()
	if err != nil {
		return nil, fmt.Errorf("build market provider: %w", err)
	}

	opts := []panel.Option{
		panel.WithPeriods(marketCfg.EnabledPeriods()),
		panel.WithTTL(cache.NewTTLSet(c.TTL)),
		panel.WithMaxRows(c.MaxRows),
	}
	// Shared tier only when Redis is configured; the local tier always applies.
	if c.HasRedis() {
		opts = append(opts, panel.WithCacheOptions(cache.WithStore(cache.MustNewRedisStore(c.Redis))))
	}

	return &ServiceContext{
		Config:        c,
		MarketConfig:  marketCfg,
		Catalog:       catalog,
		DefaultMarket: provider,
		Panel:         panel.New(catalog, provider, opts...),
	}, nil
}
