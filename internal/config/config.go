package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

// DefaultBaseURL is the upstream host all page paths are resolved against.
const DefaultBaseURL = "https://www.imdb.com"

// DefaultChartPath is the path of the ranked top-TV listing page.
const DefaultChartPath = "/chart/toptv/"

type Config struct {
	BaseURL       string `mapstructure:"base_url"`
	ChartPath     string `mapstructure:"chart_path"`
	UserAgent     string `mapstructure:"user_agent"`
	ClientTimeout string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	LogLevel      string `mapstructure:"log_level"`
	SentryDSN     string `mapstructure:"sentry_dsn"`
	Throttle      struct {
		// Provider selects the pacing policy toward the upstream host:
		// "random" (uniform whole-second delay before every fetch),
		// "smooth" (rate limiter), or "none".
		Provider          string `mapstructure:"provider"`
		MinDelaySeconds   int    `mapstructure:"min_delay_seconds"`
		MaxDelaySeconds   int    `mapstructure:"max_delay_seconds"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	} `mapstructure:"throttle"`
	Retry struct {
		MaxRetries     int    `mapstructure:"max_retries"`
		InitialBackoff string `mapstructure:"initial_backoff"` // Go duration string
		MaxBackoff     string `mapstructure:"max_backoff"`     // Go duration string
	} `mapstructure:"retry"`
	Cache struct {
		Provider      string `mapstructure:"provider"` // "memory", "redis" or "none"
		Size          int    `mapstructure:"size"`     // Maximum number of pages in the LRU cache
		TTL           string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		RedisAddress  string `mapstructure:"redis_address"`
		RedisPassword string `mapstructure:"redis_password"`
		RedisDB       int    `mapstructure:"redis_db"`
	} `mapstructure:"cache"`
	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Address string `mapstructure:"address"`
		Port    int    `mapstructure:"port"`
	} `mapstructure:"metrics"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)

	// Update logger with the configured level
	logger = logger.Level(level)

	globalConfig = config
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("TVTALLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	// Defaults reproduce the original collector's behavior: uniform random
	// 5-15s delay before every fetch, retries on transient failures, an
	// in-memory page cache for the run.
	viper.SetDefault("base_url", DefaultBaseURL)
	viper.SetDefault("chart_path", DefaultChartPath)
	viper.SetDefault("client_timeout", "30s")
	viper.SetDefault("throttle.provider", "random")
	viper.SetDefault("throttle.min_delay_seconds", 5)
	viper.SetDefault("throttle.max_delay_seconds", 15)
	viper.SetDefault("throttle.requests_per_minute", 6)
	viper.SetDefault("retry.max_retries", 3)
	viper.SetDefault("retry.initial_backoff", "2s")
	viper.SetDefault("retry.max_backoff", "30s")
	viper.SetDefault("cache.provider", "memory")
	viper.SetDefault("cache.size", 64)
	viper.SetDefault("cache.ttl", "1h")
	viper.SetDefault("metrics.address", "localhost")
	viper.SetDefault("metrics.port", 9090)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
