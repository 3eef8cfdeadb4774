package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"MacroPulse/pkg/cache"
	"MacroPulse/pkg/clickhouse"
	"MacroPulse/pkg/kafka"
	"MacroPulse/pkg/logger"
)

type Config struct {
	Environment string               `yaml:"environment" default:"development" validate:"oneof=development staging production"`
	Server      ServerConfig         `yaml:"server"`
	Log         logger.Config        `yaml:"log"`
	Metrics     MetricsConfig        `yaml:"metrics"`
	FRED        FREDConfig           `yaml:"fred"`
	Market      MarketConfig         `yaml:"market"`
	News        NewsConfig           `yaml:"news"`
	HTTPClient  HTTPClientConfig     `yaml:"http_client"`
	Cache       cache.Config         `yaml:"cache"`
	ClickHouse  clickhouse.Config    `yaml:"clickhouse"`
	Kafka       kafka.ProducerConfig `yaml:"kafka"`
	Scheduler   SchedulerConfig      `yaml:"scheduler"`
	RateLimit   RateLimitConfig      `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	CORS            bool          `yaml:"cors"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" default:"/metrics"`
}

type FREDConfig struct {
	APIKey           string `yaml:"api_key" validate:"required"`
	BaseURL          string `yaml:"base_url" default:"https://api.stlouisfed.org/fred" validate:"url"`
	ObservationStart string `yaml:"observation_start" default:"2000-01-01" validate:"datetime=2006-01-02"`
	Concurrency      int    `yaml:"concurrency" default:"4" validate:"min=1,max=14"`
}

type MarketConfig struct {
	BaseURL string `yaml:"base_url" default:"https://query1.finance.yahoo.com" validate:"url"`
	Range   string `yaml:"range" default:"1d"`
}

type NewsConfig struct {
	URL       string `yaml:"url" default:"https://tw.stock.yahoo.com" validate:"url"`
	Selector  string `yaml:"selector" default:"li.js-stream-content h3" validate:"required"`
	Limit     int    `yaml:"limit" default:"5" validate:"min=1,max=5"`
	UserAgent string `yaml:"user_agent" default:"Mozilla/5.0 (compatible; MacroPulse/1.0)"`
}

// HTTPClientConfig applies to every upstream provider.
type HTTPClientConfig struct {
	Timeout          time.Duration `yaml:"timeout" default:"10s"`
	MaxRetries       uint64        `yaml:"max_retries" default:"3" validate:"max=10"`
	RetryMaxInterval time.Duration `yaml:"retry_max_interval" default:"5s"`
	RatePerSecond    float64       `yaml:"rate_per_second" default:"5" validate:"gt=0"`
	Burst            int           `yaml:"burst" default:"5" validate:"min=1"`
	BreakerFailures  uint32        `yaml:"breaker_failures" default:"5" validate:"min=1"`
	BreakerTimeout   time.Duration `yaml:"breaker_timeout" default:"30s"`
}

type SchedulerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Spec    string `yaml:"spec" default:"0 30 8 * * 1-5" validate:"required_if=Enabled true"`
}

// RateLimitConfig bounds /report and /api/signals requests per client.
type RateLimitConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Capacity int     `yaml:"capacity" default:"5" validate:"min=1"`
	Refill   float64 `yaml:"refill_per_second" default:"0.1" validate:"gt=0"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file, fills defaults and validates.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadWithEnv reads an optional .env file, loads YAML and overrides it with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.finalize(); err != nil {
		return nil, err
	}
	return c, nil
}

func parse(path string) (*Config, error) {
	var c Config
	if path == "" {
		return &c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.FRED.APIKey = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, err := net.SplitHostPort(v)
		if err != nil {
			return fmt.Errorf("REDIS_ADDR: %w", err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("REDIS_ADDR port: %w", err)
		}
		c.Cache.Redis.Host, c.Cache.Redis.Port = host, p
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	return nil
}

func (c *Config) finalize() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("config defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return validate.Struct(c)
}
