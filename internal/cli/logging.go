package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"cryptopanel-api/internal/config"
	"cryptopanel-api/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Redis: %s", presence(cfg.HasRedis())),
		fmt.Sprintf("TTL (snapshot/history/range/ohlc): %ds / %ds / %ds / %ds",
			cfg.TTL.Snapshot, cfg.TTL.History, cfg.TTL.Range, cfg.TTL.OHLC),
		fmt.Sprintf("Max rows: %d", cfg.MaxRows),
		sectionLine("Market config", cfg.Market),
	}
	if m := cfg.Market.Value; m != nil {
		lines = append(lines,
			fmt.Sprintf("Market provider: %s (quote %s)", m.Default, m.QuoteCurrency),
			fmt.Sprintf("Catalog: %d assets", len(m.Catalog)),
			fmt.Sprintf("Periods: %s", strings.Join(m.Periods, ", ")),
		)
		if p := m.Providers[m.Default]; p != nil {
			lines = append(lines, fmt.Sprintf("API key: %s", presence(p.APIKey != "")))
		}
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Loaded():
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: not configured", name)
	}
}
