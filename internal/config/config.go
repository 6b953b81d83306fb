package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"

	"cryptopanel-api/pkg/confkit"
	marketpkg "cryptopanel-api/pkg/market"
)

// Stock cache lifetimes in seconds.
const (
	DefaultSnapshotTTL = 600
	DefaultSeriesTTL   = 3600
)

// CacheTTL holds per-kind cache lifetimes in seconds. A negative value disables
// caching for that kind.
type CacheTTL struct {
	Snapshot int `json:",default=600"`
	History  int `json:",default=3600"`
	Range    int `json:",default=3600"`
	OHLC     int `json:",default=3600"`
}

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod
	Env string `json:",default=test"`
	// MaxRows caps every normalized table; the most recent rows are kept.
	MaxRows int             `json:",default=5000"`
	TTL     CacheTTL        `json:",optional"`
	Redis   redis.RedisConf `json:",optional"`

	Market confkit.Section[marketpkg.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

// HasRedis reports whether the shared cache tier is configured.
func (c *Config) HasRedis() bool {
	return strings.TrimSpace(c.Redis.Host) != ""
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "test"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if c.MaxRows <= 0 {
		return errors.New("config: maxRows must be positive")
	}
	if c.HasRedis() {
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("config: redis: %w", err)
		}
	}
	c.normaliseTTL()
	return nil
}

// normaliseTTL fills unset lifetimes so a config without a TTL block still
// caches with the stock windows.
func (c *Config) normaliseTTL() {
	c.TTL.Snapshot = secondsOrDefault(c.TTL.Snapshot, DefaultSnapshotTTL)
	c.TTL.History = secondsOrDefault(c.TTL.History, DefaultSeriesTTL)
	c.TTL.Range = secondsOrDefault(c.TTL.Range, DefaultSeriesTTL)
	c.TTL.OHLC = secondsOrDefault(c.TTL.OHLC, DefaultSeriesTTL)
}

func secondsOrDefault(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func (c *Config) hydrateSections() error {
	if err := c.Market.Hydrate(c.baseDir, marketpkg.LoadConfig); err != nil {
		return fmt.Errorf("load market config: %w", err)
	}
	return c.Market.Require("market")
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
