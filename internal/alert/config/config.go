package config

import (
	"time"

	"golang-investment-alert/pkg/config"
)

// Telegram holds configuration for the Telegram notifier. ChatIDs is a
// comma-separated list of chat identifiers.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatIDs  string `mapstructure:"chat_ids"`
}

// Alert holds batch behavior configuration.
type Alert struct {
	Language    string `mapstructure:"language"`
	TickersFile string `mapstructure:"tickers_file"`
	MaxTickers  int    `mapstructure:"max_tickers"`
	FilingCount int    `mapstructure:"filing_count"`
	NewsCount   int    `mapstructure:"news_count"`
}

// Score holds the opportunity score weights.
type Score struct {
	PriceMoveWeight       int     `mapstructure:"price_move_weight"`
	FilingWeight          int     `mapstructure:"filing_weight"`
	NewsWeight            int     `mapstructure:"news_weight"`
	TradeWeight           int     `mapstructure:"trade_weight"`
	PriceMoveThresholdPct float64 `mapstructure:"price_move_threshold_pct"`
}

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Edgar holds the configuration for the SEC EDGAR current-filings pages.
type Edgar struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
	UserAgent           string        `mapstructure:"user_agent"`
}

// News holds the configuration for the news search feed.
type News struct {
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
	Country  string `mapstructure:"country"`
}

// Scheduler holds the cron expression used by serve mode.
type Scheduler struct {
	Cron string `mapstructure:"cron"`
}

// Config holds the full configuration for the alert service.
type Config struct {
	App          config.App    `mapstructure:"app"`
	Logger       config.Logger `mapstructure:"logger"`
	Telegram     Telegram      `mapstructure:"telegram"`
	Alert        Alert         `mapstructure:"alert"`
	Score        Score         `mapstructure:"score"`
	YahooFinance YahooFinance  `mapstructure:"yahoo_finance"`
	Edgar        Edgar         `mapstructure:"edgar"`
	News         News          `mapstructure:"news"`
	Scheduler    Scheduler     `mapstructure:"scheduler"`
}

// Load loads the alert configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
