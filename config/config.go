package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/updown/internal/domain"
	"github.com/alejandrodnm/updown/internal/rotation"
	"github.com/alejandrodnm/updown/internal/sim"
	"github.com/alejandrodnm/updown/internal/strategy"
)

// Config is the full scanner configuration.
type Config struct {
	Scanner   ScannerConfig   `yaml:"scanner"`
	Strategy  StrategyConfig  `yaml:"strategy"`
	Sim       SimConfig       `yaml:"sim"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	API       APIConfig       `yaml:"api"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// ScannerConfig controls the scan loop and market rotation.
type ScannerConfig struct {
	IntervalSeconds  int      `yaml:"interval_seconds"`
	Symbols          []string `yaml:"symbols"`
	PeriodSeconds    int      `yaml:"period_seconds"`
	FetchDelayMillis int      `yaml:"fetch_delay_millis"`
}

// StrategyConfig holds detector thresholds and the cost model.
type StrategyConfig struct {
	ArbThresholdBPS  float64 `yaml:"arb_threshold_bps"`
	SnipeThreshold   float64 `yaml:"snipe_threshold"`
	SnipeWindowSecs  float64 `yaml:"snipe_window_secs"`
	MispricedRatio   float64 `yaml:"mispriced_ratio"`
	MispricedMinSize float64 `yaml:"mispriced_min_size"`
	MinTradeUSD      float64 `yaml:"min_trade_usd"`
	MaxTradeUSD      float64 `yaml:"max_trade_usd"`

	ClobFeeRate    float64 `yaml:"clob_fee_rate"`
	GasMergeUSD    float64 `yaml:"gas_merge_usd"`
	SwapSpreadRate float64 `yaml:"swap_spread_rate"`
	BufferBPS      float64 `yaml:"buffer_bps"`
}

// SimConfig controls the execution simulator.
type SimConfig struct {
	SlippagePct float64 `yaml:"slippage_pct"`
}

// DiscoveryConfig controls the general binary market universe.
type DiscoveryConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MinVolumeUSD float64 `yaml:"min_volume_usd"`
	MaxMarkets   int     `yaml:"max_markets"`
	PinnedSlug   string  `yaml:"pinned_slug"`
}

// APIConfig holds the API base URLs.
type APIConfig struct {
	CLOBBase  string `yaml:"clob_base"`
	GammaBase string `yaml:"gamma_base"`
}

// StorageConfig controls where session data is persisted.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path or ":memory:"
}

// LogConfig controls log format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML config plus an optional .env file. Environment
// variables override YAML for the keys they cover. An empty path yields
// a default config.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// ScanInterval returns the scan interval as a time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.IntervalSeconds) * time.Second
}

// StrategyParams maps the config onto detector parameters.
func (c *Config) StrategyParams() strategy.Params {
	return strategy.Params{
		Fees: domain.FeeParams{
			ClobFeeRate:    c.Strategy.ClobFeeRate,
			GasMergeUSD:    c.Strategy.GasMergeUSD,
			SwapSpreadRate: c.Strategy.SwapSpreadRate,
			BufferBPS:      c.Strategy.BufferBPS,
		},
		ArbThresholdBPS:  c.Strategy.ArbThresholdBPS,
		SnipeThreshold:   c.Strategy.SnipeThreshold,
		SnipeWindowSecs:  c.Strategy.SnipeWindowSecs,
		MispricedRatio:   c.Strategy.MispricedRatio,
		MispricedMinSize: c.Strategy.MispricedMinSize,
		MinTradeUSD:      c.Strategy.MinTradeUSD,
		MaxTradeUSD:      c.Strategy.MaxTradeUSD,
	}
}

// SimParams maps the config onto simulator parameters.
func (c *Config) SimParams() sim.Params {
	return sim.Params{
		MinTradeUSD: c.Strategy.MinTradeUSD,
		MaxTradeUSD: c.Strategy.MaxTradeUSD,
		SlippagePct: c.Sim.SlippagePct,
		GasMergeUSD: c.Strategy.GasMergeUSD,
	}
}

// RotationConfig maps the config onto the rotation controller.
func (c *Config) RotationConfig() rotation.Config {
	return rotation.Config{
		Symbols:         c.Scanner.Symbols,
		PeriodLength:    time.Duration(c.Scanner.PeriodSeconds) * time.Second,
		FetchDelay:      time.Duration(c.Scanner.FetchDelayMillis) * time.Millisecond,
		DiscoverGeneral: c.Discovery.Enabled,
		MinVolumeUSD:    c.Discovery.MinVolumeUSD,
		MaxMarkets:      c.Discovery.MaxMarkets,
		PinnedSlug:      c.Discovery.PinnedSlug,
	}
}

// applyEnvOverrides overrides values with environment variables when set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("SCAN_SYMBOLS"); v != "" {
		cfg.Scanner.Symbols = splitList(v)
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("PINNED_SLUG"); v != "" {
		cfg.Discovery.PinnedSlug = v
	}
}

// setDefaults ensures required values carry sensible defaults.
func setDefaults(cfg *Config) {
	if cfg.Scanner.IntervalSeconds <= 0 {
		cfg.Scanner.IntervalSeconds = 3
	}
	if len(cfg.Scanner.Symbols) == 0 {
		cfg.Scanner.Symbols = []string{"BTC", "ETH", "SOL", "XRP"}
	}
	if cfg.Scanner.PeriodSeconds <= 0 {
		cfg.Scanner.PeriodSeconds = domain.DefaultPeriodSeconds
	}
	if cfg.Scanner.FetchDelayMillis <= 0 {
		cfg.Scanner.FetchDelayMillis = 100
	}

	def := strategy.DefaultParams()
	if cfg.Strategy.ArbThresholdBPS <= 0 {
		cfg.Strategy.ArbThresholdBPS = def.ArbThresholdBPS
	}
	if cfg.Strategy.SnipeThreshold <= 0 {
		cfg.Strategy.SnipeThreshold = def.SnipeThreshold
	}
	if cfg.Strategy.SnipeWindowSecs <= 0 {
		cfg.Strategy.SnipeWindowSecs = def.SnipeWindowSecs
	}
	if cfg.Strategy.MispricedRatio <= 0 {
		cfg.Strategy.MispricedRatio = def.MispricedRatio
	}
	if cfg.Strategy.MispricedMinSize <= 0 {
		cfg.Strategy.MispricedMinSize = def.MispricedMinSize
	}
	if cfg.Strategy.MinTradeUSD <= 0 {
		cfg.Strategy.MinTradeUSD = def.MinTradeUSD
	}
	if cfg.Strategy.MaxTradeUSD <= 0 {
		cfg.Strategy.MaxTradeUSD = def.MaxTradeUSD
	}
	if cfg.Strategy.ClobFeeRate <= 0 {
		cfg.Strategy.ClobFeeRate = def.Fees.ClobFeeRate
	}
	if cfg.Strategy.GasMergeUSD <= 0 {
		cfg.Strategy.GasMergeUSD = def.Fees.GasMergeUSD
	}
	if cfg.Strategy.SwapSpreadRate <= 0 {
		cfg.Strategy.SwapSpreadRate = def.Fees.SwapSpreadRate
	}
	if cfg.Strategy.BufferBPS <= 0 {
		cfg.Strategy.BufferBPS = def.Fees.BufferBPS
	}

	if cfg.Sim.SlippagePct <= 0 {
		cfg.Sim.SlippagePct = 0.3
	}

	if cfg.Discovery.MinVolumeUSD <= 0 {
		cfg.Discovery.MinVolumeUSD = 10_000
	}
	if cfg.Discovery.MaxMarkets <= 0 {
		cfg.Discovery.MaxMarkets = 20
	}

	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "updown.db"
	}
	if cfg.API.CLOBBase == "" {
		cfg.API.CLOBBase = "https://clob.polymarket.com"
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
