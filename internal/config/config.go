package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"PortfolioLens/internal/leverage"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Feeds struct {
		TradeLogPath      string `yaml:"trade_log_path"`
		AccountPath       string `yaml:"account_path"`
		ExecutionsPath    string `yaml:"executions_path"`
		ClosePricesPath   string `yaml:"close_prices_path"`
		CurrentPricesPath string `yaml:"current_prices_path"`
		ClosePriceDays    int    `yaml:"close_price_days"`
	} `yaml:"feeds"`
	Leverage struct {
		Ratios     []float64 `yaml:"ratios"`
		Calculator struct {
			MaxDrawdown map[string]float64 `yaml:"max_drawdown"`
			ShockCare   map[string]float64 `yaml:"shock_care"`
			StockType   map[string]float64 `yaml:"stock_type"`
			Drawdown    map[string]float64 `yaml:"drawdown"`
		} `yaml:"calculator"`
	} `yaml:"leverage"`
	Schedule struct {
		RefreshCron  string `yaml:"refresh_cron"`
		ReloadCron   string `yaml:"reload_cron"`
		RolloverCron string `yaml:"rollover_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
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
	if v := os.Getenv("TRADE_LOG_PATH"); v != "" {
		cfg.Feeds.TradeLogPath = v
	}
	if v := os.Getenv("ACCOUNT_PATH"); v != "" {
		cfg.Feeds.AccountPath = v
	}
	if v := os.Getenv("EXECUTIONS_PATH"); v != "" {
		cfg.Feeds.ExecutionsPath = v
	}
	if v := os.Getenv("CLOSE_PRICES_PATH"); v != "" {
		cfg.Feeds.ClosePricesPath = v
	}
	if v := os.Getenv("CURRENT_PRICES_PATH"); v != "" {
		cfg.Feeds.CurrentPricesPath = v
	}
	if v := os.Getenv("CLOSE_PRICE_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Feeds.ClosePriceDays = days
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Feeds.ClosePriceDays == 0 {
		cfg.Feeds.ClosePriceDays = 15
	}
	if len(cfg.Leverage.Ratios) == 0 {
		cfg.Leverage.Ratios = []float64{1.5, 1.35, 1.2}
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */10 9-14 * * 1-5"
	}
	if cfg.Schedule.ReloadCron == "" {
		cfg.Schedule.ReloadCron = "0 30 8 * * 1-5"
	}
	if cfg.Schedule.RolloverCron == "" {
		cfg.Schedule.RolloverCron = "0 0 6 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/portfolio_lens.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Feeds.ClosePriceDays <= 0 {
		return fmt.Errorf("feeds.close_price_days must be positive")
	}
	for _, ratio := range c.Leverage.Ratios {
		if ratio <= 0 {
			return fmt.Errorf("leverage.ratios must be positive, got %v", ratio)
		}
	}
	return nil
}

// LeverageTables builds the calculator factor tables, keeping the
// built-in table for any section the config leaves out.
func (c *Config) LeverageTables() leverage.Tables {
	tables := leverage.DefaultTables()
	if len(c.Leverage.Calculator.MaxDrawdown) > 0 {
		tables.MaxDrawdown = c.Leverage.Calculator.MaxDrawdown
	}
	if len(c.Leverage.Calculator.ShockCare) > 0 {
		tables.ShockCare = c.Leverage.Calculator.ShockCare
	}
	if len(c.Leverage.Calculator.StockType) > 0 {
		tables.StockType = c.Leverage.Calculator.StockType
	}
	if len(c.Leverage.Calculator.Drawdown) > 0 {
		tables.Drawdown = c.Leverage.Calculator.Drawdown
	}
	return tables
}
