package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment" validate:"oneof=development production"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Extractor   ExtractorConfig `toml:"extractor"`
	Refresh     RefreshConfig   `toml:"refresh"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"`
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Output []string `toml:"output"` // "stdout", "file"
}

// ExtractorConfig contains the statistics extraction pipeline configuration
type ExtractorConfig struct {
	LocalRelayURL string        `toml:"local_relay_url"` // Trusted local passthrough, tried before public relays
	RelayTimeout  time.Duration `toml:"relay_timeout"`   // Per-relay attempt timeout
	CacheTTL      time.Duration `toml:"cache_ttl"`       // Vendor statistics memo window
	TickerMapPath string        `toml:"ticker_map_path"` // JSON asset mapping tickers to vendor symbols
	UserAgent     string        `toml:"user_agent"`
}

// RefreshConfig contains the scheduled watchlist refresh configuration
type RefreshConfig struct {
	Enabled  bool          `toml:"enabled"`
	Schedule string        `toml:"schedule"` // Cron schedule format
	Delay    time.Duration `toml:"delay"`    // Fixed inter-symbol delay (vendor rate limits)
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are expected in stockd.toml; everything here is a
// working default.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8090,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/db",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Extractor: ExtractorConfig{
			LocalRelayURL: "http://localhost:8080",
			RelayTimeout:  10 * time.Second,
			CacheTTL:      5 * time.Minute,
			TickerMapPath: "./data/tickers.json",
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Refresh: RefreshConfig{
			Enabled:  false,           // User must explicitly opt in to scheduled sweeps
			Schedule: "30 9 * * 1-5", // Weekday mornings after market open
			Delay:    2 * time.Second, // Manually tuned for vendor rate limits, not adaptive
		},
	}
}

// LoadFromFiles loads configuration starting from defaults, applying each TOML
// file in order (later files override earlier ones), then environment
// overrides, then validates the result.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies STOCKD_* environment variables on top of file
// configuration.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("STOCKD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("STOCKD_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("STOCKD_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("STOCKD_DATA_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("STOCKD_LOCAL_RELAY_URL"); v != "" {
		config.Extractor.LocalRelayURL = v
	}
}

// ApplyFlagOverrides applies command-line flag values (highest priority).
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
