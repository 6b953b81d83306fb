package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cryptopanel-api/internal/config"
	"cryptopanel-api/pkg/confkit"
	"cryptopanel-api/pkg/market"
)

func TestConfigSummaryLines(t *testing.T) {
	require.Equal(t, []string{"Configuration: <nil>"}, ConfigSummaryLines(nil))

	cfg := &config.Config{
		Env:     "dev",
		MaxRows: 5000,
		TTL:     config.CacheTTL{Snapshot: 600, History: 3600, Range: 3600, OHLC: 3600},
		Market: confkit.Section[market.Config]{
			File: "/etc/cryptopanel/market.yaml",
			Value: &market.Config{
				Default:       "coingecko",
				QuoteCurrency: "usd",
				Periods:       []string{"30d", "all"},
				Catalog:       market.DefaultAssets(),
				Providers: map[string]*market.ProviderConfig{
					"coingecko": {Type: "coingecko", APIKey: "secret"},
				},
			},
		},
	}

	lines := ConfigSummaryLines(cfg)
	require.Contains(t, lines, "Environment: dev")
	require.Contains(t, lines, "Redis: not configured")
	require.Contains(t, lines, "TTL (snapshot/history/range/ohlc): 600s / 3600s / 3600s / 3600s")
	require.Contains(t, lines, "Market config: /etc/cryptopanel/market.yaml")
	require.Contains(t, lines, "Market provider: coingecko (quote usd)")
	require.Contains(t, lines, "Catalog: 7 assets")
	require.Contains(t, lines, "Periods: 30d, all")
	require.Contains(t, lines, "API key: configured")
	for _, line := range lines {
		require.NotContains(t, line, "secret")
	}
}
