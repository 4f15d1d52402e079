package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"quote-history/internal/datafeed"
	"quote-history/internal/provider"
	"quote-history/internal/provider/eastmoney"
)

// Config holds application configuration from env
type Config struct {
	BaseURL     string        `validate:"required,url"`
	Token       string
	Adjust      string        `validate:"required"`
	WindowDays  int           `validate:"gte=0"`
	MaxPages    int
	MaxElapsed  time.Duration `validate:"gte=0"`
	RatePerSec  float64       `validate:"gte=0"`
	RetryMax    int           `validate:"gte=0,lte=20"`
	Workers     int           `validate:"gte=1,lte=64"`
	DataDir     string        `validate:"required"`
	SaveFormat  string        `validate:"oneof=csv json json.gz gzip parquet"`
	LogLevel    string        `validate:"oneof=debug info warn warning error"` // debug | info | warn | error
	LogFile     string
	SymbolsFile string
	RunHour     int           `validate:"gte=0,lte=23"`
	RunMinute   int           `validate:"gte=0,lte=59"`
}

// LoadConfig reads config from environment. A non-empty envFile is loaded first; variables
// already set in the environment win.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	cfg := &Config{
		BaseURL:     getEnv("EASTMONEY_BASE_URL", "https://push2his.eastmoney.com"),
		Token:       os.Getenv("EASTMONEY_TOKEN"),
		Adjust:      getEnv("ADJUST", "0"),
		WindowDays:  getEnvInt("WINDOW_DAYS", 0),
		MaxPages:    getEnvInt("MAX_PAGES", 0),
		MaxElapsed:  getEnvDuration("MAX_ELAPSED", 0),
		RatePerSec:  getEnvFloat("RATE_PER_SEC", 5),
		RetryMax:    getEnvInt("RETRY_MAX", 3),
		Workers:     getEnvInt("WORKERS", 4),
		DataDir:     getEnv("DATA_DIR", "data"),
		SaveFormat:  strings.ToLower(getEnv("SAVE_FORMAT", "parquet")),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:     os.Getenv("LOG_FILE"),
		SymbolsFile: os.Getenv("SYMBOLS_FILE"),
		RunHour:     getEnvInt("RUN_HOUR", 16),
		RunMinute:   getEnvInt("RUN_MINUTE", 30),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field ranges and the adjust selector.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := eastmoney.ParseAdjust(c.Adjust); err != nil {
		return fmt.Errorf("invalid config: ADJUST: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

// SaveBaseDir returns data/EastMoney
func (c *Config) SaveBaseDir() string {
	return filepath.Join(c.DataDir, "EastMoney")
}

// ProgressPath returns path to .lastday.json
func (c *Config) ProgressPath() string {
	return filepath.Join(c.SaveBaseDir(), ".lastday.json")
}

// FetchOptions returns the Window Driver bounds.
func (c *Config) FetchOptions() datafeed.Options {
	return datafeed.Options{
		WindowDays: c.WindowDays,
		MaxPages:   c.MaxPages,
		MaxElapsed: c.MaxElapsed,
	}
}

// RetryPolicy returns the provider retry policy; RetryMax counts retries after the first attempt.
func (c *Config) RetryPolicy() provider.RetryPolicy {
	p := provider.DefaultRetryPolicy()
	p.MaxAttempts = c.RetryMax + 1
	return p
}
