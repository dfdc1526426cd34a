package config

import (
	"fmt"
	"os"
	"strconv"

	"StockScreener/internal/model"
	"StockScreener/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Universe struct {
		BaseURL       string `yaml:"base_url"`
		APIKey        string `yaml:"api_key"`
		Category      string `yaml:"category"`
		CacheTTLHours int    `yaml:"cache_ttl_hours"`
		StateFile     string `yaml:"state_file"`
	} `yaml:"universe"`
	DataSource struct {
		BaseURL     string `yaml:"base_url"`
		APIKey      string `yaml:"api_key"`
		YahooSuffix string `yaml:"yahoo_suffix"`
	} `yaml:"data_source"`
	Scan struct {
		Workers       int      `yaml:"workers"`
		LookbackWeeks int      `yaml:"lookback_weeks"`
		MinPrice      float64  `yaml:"min_price"`
		MaxPrice      float64  `yaml:"max_price"`
		Strategies    []string `yaml:"strategies"`
	} `yaml:"scan"`
	Schedule struct {
		ScanCron    string `yaml:"scan_cron"`
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("UNIVERSE_BASE_URL"); v != "" {
		cfg.Universe.BaseURL = v
	}
	if v := os.Getenv("UNIVERSE_API_KEY"); v != "" {
		cfg.Universe.APIKey = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Workers = n
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Universe.CacheTTLHours == 0 {
		cfg.Universe.CacheTTLHours = 24
	}
	if cfg.Universe.StateFile == "" {
		cfg.Universe.StateFile = "data/universe_state.json"
	}
	if cfg.DataSource.YahooSuffix == "" {
		cfg.DataSource.YahooSuffix = ".TW"
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 10
	}
	if cfg.Scan.LookbackWeeks == 0 {
		cfg.Scan.LookbackWeeks = 104
	}
	if cfg.Scan.MinPrice == 0 && cfg.Scan.MaxPrice == 0 {
		cfg.Scan.MinPrice = 10
		cfg.Scan.MaxPrice = 500
	}
	if len(cfg.Scan.Strategies) == 0 {
		cfg.Scan.Strategies = []string{"S8"}
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 8 * * 1"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 30 7 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/screener.db"
	}

	return cfg, nil
}

// StrategyIDs converts the configured strategy names to typed IDs.
func (c *Config) StrategyIDs() []model.StrategyID {
	ids := make([]model.StrategyID, len(c.Scan.Strategies))
	for i, s := range c.Scan.Strategies {
		ids[i] = model.StrategyID(s)
	}
	return ids
}

// Validate checks that all required fields are set and the scan criteria are
// usable. Invalid criteria are rejected here, before any scan is scheduled.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Universe.BaseURL == "" {
		return fmt.Errorf("universe.base_url is required")
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be at least 1")
	}
	if c.Scan.MinPrice < 0 {
		return fmt.Errorf("scan.min_price must not be negative")
	}
	if c.Scan.MaxPrice < c.Scan.MinPrice {
		return fmt.Errorf("scan price range inverted: min %.2f > max %.2f", c.Scan.MinPrice, c.Scan.MaxPrice)
	}
	if err := strategy.ValidateSelection(c.StrategyIDs()); err != nil {
		return fmt.Errorf("scan.strategies: %w", err)
	}
	return nil
}
