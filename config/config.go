package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config is the full service configuration
type Config struct {
	Server       ServerConfig       `json:"server"`
	Market       MarketConfig       `json:"market"`
	Analysis     AnalysisConfig     `json:"analysis"`
	Risk         RiskConfig         `json:"risk"`
	Database     DatabaseConfig     `json:"database"`
	Redis        RedisConfig        `json:"redis"`
	Auth         AuthConfig         `json:"auth"`
	Notification NotificationConfig `json:"notification"`
	Logging      LoggingConfig      `json:"logging"`
}

// ServerConfig holds the HTTP surface configuration
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// MarketConfig holds market data provider configuration
type MarketConfig struct {
	BinanceBaseURL     string `json:"binance_base_url"`
	TwelveDataBaseURL  string `json:"twelve_data_base_url"`
	TwelveDataAPIKey   string `json:"twelve_data_api_key"`
	NewsFeedURL        string `json:"news_feed_url"`
	CacheTTLSeconds    int    `json:"cache_ttl_seconds"`
	FetchLimit         int    `json:"fetch_limit"`
}

// AnalysisConfig holds the evaluation pipeline constants
type AnalysisConfig struct {
	MinCandles          int     `json:"min_candles"`
	ATRPeriod           int     `json:"atr_period"`
	SLMult              float64 `json:"sl_mult"`
	TPMult              float64 `json:"tp_mult"`
	MinRR               float64 `json:"min_rr"`
	MinSLPips           float64 `json:"min_sl_pips"`
	SpreadRatio         float64 `json:"spread_ratio"`
	StopHuntWindow      int     `json:"stop_hunt_window"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	ATRThreshold        float64 `json:"atr_threshold"`
	NewsBufferMinutes   int     `json:"news_buffer_minutes"`
	EMAFastPeriod       int     `json:"ema_fast_period"`
	EMASlowPeriod       int     `json:"ema_slow_period"`
	RSIPeriod           int     `json:"rsi_period"`
	TrendMAPeriod       int     `json:"trend_ma_period"`
}

// RiskConfig holds the sizing defaults and bounds
type RiskConfig struct {
	DefaultRiskPercent float64 `json:"default_risk_percent"`
	MinRiskPercent     float64 `json:"min_risk_percent"`
	MaxRiskPercent     float64 `json:"max_risk_percent"`
	MinLot             float64 `json:"min_lot"`
	MaxLot             float64 `json:"max_lot"`
	DefaultBalance     float64 `json:"default_balance"`
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"ssl_mode"`
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// AuthConfig holds authentication settings
type AuthConfig struct {
	JWTSecret          string `json:"jwt_secret"`
	TokenDurationHours int    `json:"token_duration_hours"`
	BcryptCost         int    `json:"bcrypt_cost"`
}

// NotificationConfig holds notification channel settings
type NotificationConfig struct {
	Enabled  bool           `json:"enabled"`
	Telegram TelegramConfig `json:"telegram"`
	Discord  DiscordConfig  `json:"discord"`
}

// TelegramConfig holds Telegram bot settings
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
}

// DiscordConfig holds Discord webhook settings
type DiscordConfig struct {
	Enabled    bool   `json:"enabled"`
	WebhookURL string `json:"webhook_url"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level      string `json:"level"`
	JSONFormat bool   `json:"json_format"`
}

// Load reads configuration from the given file (optional) and applies
// environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Market: MarketConfig{
			BinanceBaseURL:    "https://api.binance.com",
			TwelveDataBaseURL: "https://api.twelvedata.com",
			CacheTTLSeconds:   30,
			FetchLimit:        500,
		},
		Analysis: AnalysisConfig{
			MinCandles:          60,
			ATRPeriod:           14,
			SLMult:              1.5,
			TPMult:              3.0,
			MinRR:               2.0,
			MinSLPips:           10,
			SpreadRatio:         0.25,
			StopHuntWindow:      12,
			ConfidenceThreshold: 60,
			ATRThreshold:        0.001,
			NewsBufferMinutes:   30,
			EMAFastPeriod:       50,
			EMASlowPeriod:       200,
			RSIPeriod:           14,
			TrendMAPeriod:       50,
		},
		Risk: RiskConfig{
			DefaultRiskPercent: 1.0,
			MinRiskPercent:     0.1,
			MaxRiskPercent:     10.0,
			MinLot:             0.001,
			MaxLot:             100.0,
			DefaultBalance:     100000,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Database: "trading_analysis",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Auth: AuthConfig{
			TokenDurationHours: 24,
			BcryptCost:         12,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TWELVE_DATA_API_KEY"); v != "" {
		cfg.Market.TwelveDataAPIKey = v
	}
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Notification.Telegram.BotToken = v
		cfg.Notification.Telegram.Enabled = true
		cfg.Notification.Enabled = true
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Notification.Telegram.ChatID = v
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Notification.Discord.WebhookURL = v
		cfg.Notification.Discord.Enabled = true
		cfg.Notification.Enabled = true
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate rejects configurations that cannot run
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Risk.MinLot <= 0 {
		return fmt.Errorf("min_lot must be positive")
	}
	if c.Risk.MaxLot < c.Risk.MinLot {
		return fmt.Errorf("max_lot must be >= min_lot")
	}
	if c.Risk.MinRiskPercent <= 0 || c.Risk.MaxRiskPercent > 100 ||
		c.Risk.MinRiskPercent > c.Risk.MaxRiskPercent {
		return fmt.Errorf("invalid risk percent bounds")
	}
	if c.Analysis.SLMult <= 0 || c.Analysis.TPMult <= 0 {
		return fmt.Errorf("ATR multipliers must be positive")
	}
	return nil
}
