package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"CoinSignals/pkg/util"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"oneof=development staging production test"`

	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
		AllowOrigins    []string      `yaml:"allow_origins"`
		RateLimit       struct {
			Burst        float64 `yaml:"burst" default:"30"`
			RefillPerSec float64 `yaml:"refill_per_sec" default:"5"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`

	Logging struct {
		Level      string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error fatal panic"`
		Format     string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output     string `yaml:"output" default:"stdout"`
		TimeFormat string `yaml:"time_format"`
		Collector  struct {
			Enabled        bool          `yaml:"enabled"`
			Topic          string        `yaml:"topic" default:"coinsignals.logs"`
			Interval       time.Duration `yaml:"interval" default:"30s"`
			CountThreshold int           `yaml:"count_threshold" default:"100"`
			MinLevel       string        `yaml:"min_level" default:"error" validate:"oneof=warn error"`
		} `yaml:"collector"`
	} `yaml:"logging"`

	CoinGecko struct {
		BaseURL    string        `yaml:"base_url" default:"https://api.coingecko.com/api/v3" validate:"required,url"`
		APIKey     string        `yaml:"api_key"`
		APIKeyHdr  string        `yaml:"api_key_header" default:"x-cg-demo-api-key"`
		VsCurrency string        `yaml:"vs_currency" default:"usd"`
		Timeout    time.Duration `yaml:"timeout" default:"15s"`
		UserAgent  string        `yaml:"user_agent" default:"coinsignals/1.0"`
		RateLimit  struct {
			Burst        float64 `yaml:"burst" default:"10"`
			RefillPerSec float64 `yaml:"refill_per_sec" default:"0.5"`
		} `yaml:"rate_limit"`
	} `yaml:"coingecko"`

	Signals struct {
		PerPage        int     `yaml:"per_page" default:"250" validate:"gte=1,lte=250"`
		MinMarketCap   float64 `yaml:"min_market_cap" default:"5000000"`
		MinAbsGainPct  float64 `yaml:"min_abs_gain_pct" default:"3"`
		TopN           int     `yaml:"top_n" default:"20" validate:"gte=1,lte=250"`
		TopMarketsCap  float64 `yaml:"top_markets_min_cap" default:"50000000"`
		TopMarketsPage int     `yaml:"top_markets_per_page" default:"250" validate:"gte=1,lte=250"`
		Classifier     struct {
			PriceChangePct   float64 `yaml:"price_change_pct" default:"7"`
			MinVolumeRatio   float64 `yaml:"min_volume_ratio" default:"0.001"`
			ConfidenceFactor float64 `yaml:"confidence_factor" default:"3"`
			MaxConfidence    float64 `yaml:"max_confidence" default:"95" validate:"gte=0,lte=100"`
		} `yaml:"classifier"`
		Indicators struct {
			SMAPeriod       int     `yaml:"sma_period" default:"20"`
			EMAPeriod       int     `yaml:"ema_period" default:"50"`
			RSIPeriod       int     `yaml:"rsi_period" default:"14"`
			BollingerPeriod int     `yaml:"bollinger_period" default:"20"`
			BollingerK      float64 `yaml:"bollinger_k" default:"2"`
		} `yaml:"indicators"`
		DashboardConcurrency int `yaml:"dashboard_concurrency" default:"4" validate:"gte=1,lte=32"`
	} `yaml:"signals"`

	Cache struct {
		Enabled    bool          `yaml:"enabled" default:"true"`
		Prefix     string        `yaml:"prefix" default:"coinsignals:"`
		MarketsTTL time.Duration `yaml:"markets_ttl" default:"60s"`
		HistoryTTL time.Duration `yaml:"history_ttl" default:"5m"`
		Redis      struct {
			Enabled  bool          `yaml:"enabled"`
			Addr     string        `yaml:"addr" default:"localhost:6379"`
			Password string        `yaml:"password"`
			DB       int           `yaml:"db"`
			Timeout  time.Duration `yaml:"timeout" default:"500ms"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	Kafka struct {
		Enabled     bool     `yaml:"enabled"`
		Brokers     []string `yaml:"brokers"`
		Topic       string   `yaml:"topic" default:"coinsignals.signals"`
		ClientID    string   `yaml:"client_id" default:"coinsignals"`
		Compression string   `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		Producer    struct {
			RequiredAcks int           `yaml:"required_acks" default:"-1"`
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"1s"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`

	Scheduler struct {
		Enabled    bool   `yaml:"enabled" default:"true"`
		Spec       string `yaml:"spec" default:"0 */5 * * * *"`
		RunOnStart bool   `yaml:"run_on_start" default:"true"`
	} `yaml:"scheduler"`

	WebSocket struct {
		Path         string        `yaml:"path" default:"/ws/signals"`
		PingInterval time.Duration `yaml:"ping_interval" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		SendBuffer   int           `yaml:"send_buffer" default:"16"`
	} `yaml:"websocket"`
}

var validate = validator.New()

// Default returns a configuration populated from struct defaults only.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads a .env file next to the YAML (if any), then the YAML,
// and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		c.CoinGecko.APIKey = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		c.CoinGecko.BaseURL = v
	}
	if v := os.Getenv("SIGNALS_TOP_N"); v != "" {
		c.Signals.TopN = util.ParseIntDefault(v, c.Signals.TopN)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = util.SplitAndTrim(v, ",")
		c.Kafka.Enabled = len(c.Kafka.Brokers) > 0
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Logging.Collector.Enabled && !c.Kafka.Enabled {
		return fmt.Errorf("logging.collector requires kafka to be enabled")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when redis is enabled")
	}
	return nil
}
