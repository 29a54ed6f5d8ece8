package infra

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds every recognized session option. Loaded once at startup;
// environment variables override the file for the endpoints.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Feed struct {
		Symbol      string `yaml:"symbol"`
		WSURL       string `yaml:"ws_url"`
		SnapshotURL string `yaml:"snapshot_url"`
		UpdateLog   string `yaml:"update_log"`
	} `yaml:"feed"`

	Strategy struct {
		TradeQty           string  `yaml:"trade_qty"` // decimal string, parsed on load
		UpperThreshold     float64 `yaml:"upper_threshold"`
		LowerThreshold     float64 `yaml:"lower_threshold"`
		DepthWindow        int     `yaml:"depth_window"`
		CooldownPostTrade  int     `yaml:"cooldown_post_trade"`
		CooldownPostReject int     `yaml:"cooldown_post_reject"`
	} `yaml:"strategy"`

	Risk struct {
		MaxOrderNotional float64 `yaml:"max_order_notional"`
		MaxPosition      float64 `yaml:"max_position"`
	} `yaml:"risk"`

	Backtest struct {
		StartingBalance   float64 `yaml:"starting_balance"`
		FallbackMarkPrice float64 `yaml:"fallback_mark_price"`
	} `yaml:"backtest"`

	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig reads and validates the yaml config, applying defaults and
// environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Strategy.TradeQty == "" {
		c.Strategy.TradeQty = "0.002"
	}
	if c.Strategy.UpperThreshold == 0 {
		c.Strategy.UpperThreshold = 0.8
	}
	if c.Strategy.LowerThreshold == 0 {
		c.Strategy.LowerThreshold = 0.2
	}
	if c.Strategy.DepthWindow == 0 {
		c.Strategy.DepthWindow = 5
	}
	if c.Strategy.CooldownPostTrade == 0 {
		c.Strategy.CooldownPostTrade = 2000
	}
	if c.Strategy.CooldownPostReject == 0 {
		c.Strategy.CooldownPostReject = 5000
	}
	if c.Risk.MaxOrderNotional == 0 {
		c.Risk.MaxOrderNotional = 2000
	}
	if c.Risk.MaxPosition == 0 {
		c.Risk.MaxPosition = 0.01
	}
	if c.Backtest.StartingBalance == 0 {
		c.Backtest.StartingBalance = 10000
	}
	if c.Backtest.FallbackMarkPrice == 0 {
		c.Backtest.FallbackMarkPrice = 90000
	}
	if c.Feed.UpdateLog == "" {
		c.Feed.UpdateLog = "market_data.log"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) overrideWithEnv() {
	if v := os.Getenv("HFT_WS_URL"); v != "" {
		c.Feed.WSURL = v
	}
	if v := os.Getenv("HFT_SNAPSHOT_URL"); v != "" {
		c.Feed.SnapshotURL = v
	}
	if v := os.Getenv("HFT_UPDATE_LOG"); v != "" {
		c.Feed.UpdateLog = v
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Feed.Symbol == "" {
		return fmt.Errorf("feed symbol is required")
	}
	if c.Feed.WSURL != "" && !strings.HasPrefix(c.Feed.WSURL, "ws://") && !strings.HasPrefix(c.Feed.WSURL, "wss://") {
		return fmt.Errorf("invalid ws url: %s", c.Feed.WSURL)
	}
	if _, err := c.TradeQty(); err != nil {
		return fmt.Errorf("invalid trade qty %q: %w", c.Strategy.TradeQty, err)
	}
	if c.Strategy.UpperThreshold <= c.Strategy.LowerThreshold {
		return fmt.Errorf("upper threshold %v must exceed lower threshold %v",
			c.Strategy.UpperThreshold, c.Strategy.LowerThreshold)
	}
	if c.Strategy.DepthWindow <= 0 {
		return fmt.Errorf("depth window must be positive")
	}
	if c.Risk.MaxOrderNotional <= 0 || c.Risk.MaxPosition <= 0 {
		return fmt.Errorf("risk limits must be positive")
	}
	return nil
}

// TradeQty parses the configured trade size. Kept as a decimal string in
// the file so the value survives yaml round-trips exactly.
func (c *Config) TradeQty() (float64, error) {
	d, err := decimal.NewFromString(c.Strategy.TradeQty)
	if err != nil {
		return 0, err
	}
	if d.Sign() <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d.InexactFloat64(), nil
}
