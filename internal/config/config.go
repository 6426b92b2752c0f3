package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Known candle source names, in the order they may appear in sources.live.
const (
	SourceYahoo  = "yahoo"
	SourceAlpaca = "alpaca"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Sources struct {
		Live          []string `yaml:"live"`
		Deterministic *bool    `yaml:"deterministic"`
		TimeoutSec    int      `yaml:"timeout_sec"`
	} `yaml:"sources"`
	Alpaca struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		DataURL   string `yaml:"data_url"`
		Feed      string `yaml:"feed"`
	} `yaml:"alpaca"`
	News struct {
		ScrapeURL string `yaml:"scrape_url"`
		Selector  string `yaml:"selector"`
		Disabled  bool   `yaml:"disabled"`
	} `yaml:"news"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		RefreshCron string   `yaml:"refresh_cron"`
		Symbols     []string `yaml:"symbols"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the defaults.
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
	if v := os.Getenv("STOCKPULSE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		cfg.Schedule.Symbols = splitList(v)
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Sources.Live == nil {
		cfg.Sources.Live = []string{SourceYahoo}
	}
	if cfg.Sources.Deterministic == nil {
		deterministic := true
		cfg.Sources.Deterministic = &deterministic
	}
	if cfg.Sources.TimeoutSec == 0 {
		cfg.Sources.TimeoutSec = 15
	}
	if cfg.Alpaca.Feed == "" {
		cfg.Alpaca.Feed = "iex"
	}
	if cfg.News.ScrapeURL == "" {
		cfg.News.ScrapeURL = "https://finviz.com/quote.ashx?t=%s"
	}
	if cfg.News.Selector == "" {
		cfg.News.Selector = "#news-table tr"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 8 * * 1"
	}
	if len(cfg.Schedule.Symbols) == 0 {
		cfg.Schedule.Symbols = []string{"AAPL"}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	return cfg, nil
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	for _, name := range c.Sources.Live {
		switch name {
		case SourceYahoo:
		case SourceAlpaca:
			if c.Alpaca.APIKey == "" || c.Alpaca.APISecret == "" {
				return fmt.Errorf("alpaca.api_key and alpaca.api_secret are required when alpaca is a live source")
			}
		default:
			return fmt.Errorf("sources.live: unknown source %q", name)
		}
	}
	if c.Sources.TimeoutSec < 0 {
		return fmt.Errorf("sources.timeout_sec must not be negative")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	if !strings.Contains(c.News.ScrapeURL, "%s") {
		return fmt.Errorf("news.scrape_url must contain a %%s symbol placeholder")
	}
	return nil
}

// IsDeterministic reports whether synthetic candles follow the symbol seed.
func (c *Config) IsDeterministic() bool {
	return c.Sources.Deterministic == nil || *c.Sources.Deterministic
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, strings.ToUpper(s))
		}
	}
	return out
}
