package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"StockDatasets/internal/model"
)

// Supported data providers.
const (
	ProviderYahoo       = "yahoo"
	ProviderMarketStack = "marketstack"
	ProviderStatic      = "static"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider   string          `yaml:"provider"`
		Ticker     string          `yaml:"ticker"`
		Frequency  string          `yaml:"frequency"`
		Training   model.DateRange `yaml:"training"`
		Validation model.DateRange `yaml:"validation"`
	} `yaml:"data_source"`
	Yahoo struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"yahoo"`
	MarketStack struct {
		BaseURL   string `yaml:"base_url"`
		AccessKey string `yaml:"access_key"`
		PageLimit int    `yaml:"page_limit"`
	} `yaml:"marketstack"`
	Output struct {
		Dir      string `yaml:"dir"`
		HeadRows int    `yaml:"head_rows"`
	} `yaml:"output"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
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
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("TICKER"); v != "" {
		cfg.DataSource.Ticker = v
	}
	if v := os.Getenv("FREQUENCY"); v != "" {
		cfg.DataSource.Frequency = v
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Yahoo.BaseURL = v
	}
	if v := os.Getenv("MARKETSTACK_BASE_URL"); v != "" {
		cfg.MarketStack.BaseURL = v
	}
	if v := os.Getenv("MARKETSTACK_ACCESS_KEY"); v != "" {
		cfg.MarketStack.AccessKey = v
	}
	if v := os.Getenv("MARKETSTACK_PAGE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse MARKETSTACK_PAGE_LIMIT: %w", err)
		}
		cfg.MarketStack.PageLimit = n
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderYahoo
	}
	if cfg.DataSource.Ticker == "" && cfg.DataSource.Provider != ProviderMarketStack {
		cfg.DataSource.Ticker = "PFE"
	}
	if cfg.DataSource.Frequency == "" {
		cfg.DataSource.Frequency = string(model.Daily)
	}
	if cfg.DataSource.Training.IsZero() {
		cfg.DataSource.Training = model.DefaultTrainingRange
	}
	if cfg.DataSource.Validation.IsZero() {
		cfg.DataSource.Validation = model.DefaultValidationRange
	}
	if cfg.MarketStack.PageLimit == 0 {
		cfg.MarketStack.PageLimit = 500
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "charts"
	}
	if cfg.Output.HeadRows == 0 {
		cfg.Output.HeadRows = 5
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderMarketStack, ProviderStatic:
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if _, err := model.ParseFrequency(c.DataSource.Frequency); err != nil {
		return fmt.Errorf("data_source.frequency: %w", err)
	}
	if c.DataSource.Provider == ProviderMarketStack && c.DataSource.Ticker != "" && c.MarketStack.AccessKey == "" {
		return fmt.Errorf("marketstack.access_key is required")
	}
	if c.MarketStack.PageLimit <= 0 {
		return fmt.Errorf("marketstack.page_limit must be positive")
	}
	if c.Output.HeadRows < 0 {
		return fmt.Errorf("output.head_rows must not be negative")
	}
	return nil
}

// Frequency returns the parsed data_source.frequency. Call after Validate.
func (c *Config) Frequency() model.Frequency {
	f, _ := model.ParseFrequency(c.DataSource.Frequency)
	return f
}
