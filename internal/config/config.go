// Package config provides configuration management for the Alexander presign
// server. Configuration can be loaded from YAML files and environment
// variables.
package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Signing  SigningConfig  `mapstructure:"signing"`
	Keystore KeystoreConfig `mapstructure:"keystore"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address in host:port format.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SigningConfig holds the target object store and presigning policy.
type SigningConfig struct {
	// Endpoint is the base URL of the object store, e.g.
	// https://s3.amazonaws.com or http://minio:9000.
	Endpoint string `mapstructure:"endpoint"`

	// Region is the credential scope region.
	Region string `mapstructure:"region"`

	// URLStyle selects bucket addressing: "path" or "virtual-host".
	URLStyle string `mapstructure:"url_style"`

	// DefaultExpiry is used when a request does not name an expiry.
	DefaultExpiry time.Duration `mapstructure:"default_expiry"`

	// MinExpiry and MaxExpiry bound requested expiries.
	MinExpiry time.Duration `mapstructure:"min_expiry"`
	MaxExpiry time.Duration `mapstructure:"max_expiry"`
}

// KeystoreConfig holds the credential store settings.
// Supports both PostgreSQL and SQLite backends.
type KeystoreConfig struct {
	// Driver specifies the store driver: "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`

	// PostgreSQL settings (used when Driver is "postgres")
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`

	// SQLite settings (used when Driver is "sqlite")
	Path            string `mapstructure:"path"`
	JournalMode     string `mapstructure:"journal_mode"`
	BusyTimeout     int    `mapstructure:"busy_timeout"`
	SynchronousMode string `mapstructure:"synchronous_mode"`

	// CacheTTL is how long a fetched credential stays in the in-memory
	// cache. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// MasterKey is the hex-encoded 32-byte master key. Secret keys are
	// encrypted at rest with a key derived from it via HKDF.
	MasterKey string `mapstructure:"master_key"`
}

// DSN returns the PostgreSQL connection string.
// Only valid when Driver is "postgres".
func (c KeystoreConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// GetMasterKey decodes the hex master key.
// Returns an error unless it decodes to exactly 32 bytes.
func (c KeystoreConfig) GetMasterKey() ([]byte, error) {
	key, err := hex.DecodeString(c.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("keystore.master_key is not valid hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("keystore.master_key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled determines if metrics collection is active.
	Enabled bool `mapstructure:"enabled"`

	// Path is the URL path for the metrics endpoint.
	Path string `mapstructure:"path"`
}

// Load reads configuration from the specified file and environment variables.
// Environment variables take precedence over file values.
// Environment variables are prefixed with PRESIGN_ and use _ as separator.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Environment variable configuration
	v.SetEnvPrefix("PRESIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file configuration
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/alexander-presign")
	}

	// Read config file (optional - environment variables can be used instead)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8480)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	// Signing defaults
	v.SetDefault("signing.endpoint", "https://s3.amazonaws.com")
	v.SetDefault("signing.region", "us-east-1")
	v.SetDefault("signing.url_style", "virtual-host")
	v.SetDefault("signing.default_expiry", 15*time.Minute)
	v.SetDefault("signing.min_expiry", 1*time.Second)
	v.SetDefault("signing.max_expiry", 7*24*time.Hour)

	// Keystore defaults
	v.SetDefault("keystore.driver", "sqlite")
	v.SetDefault("keystore.host", "localhost")
	v.SetDefault("keystore.port", 5432)
	v.SetDefault("keystore.user", "presign")
	v.SetDefault("keystore.password", "")
	v.SetDefault("keystore.database", "presign")
	v.SetDefault("keystore.ssl_mode", "prefer")
	v.SetDefault("keystore.path", "./data/presign.db")
	v.SetDefault("keystore.journal_mode", "WAL")
	v.SetDefault("keystore.busy_timeout", 5000)
	v.SetDefault("keystore.synchronous_mode", "NORMAL")
	v.SetDefault("keystore.cache_ttl", 1*time.Minute)
	v.SetDefault("keystore.master_key", "") // Must be provided

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate checks the configuration for required values and valid ranges.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Signing.Endpoint == "" {
		return fmt.Errorf("signing.endpoint is required")
	}
	if c.Signing.Region == "" {
		return fmt.Errorf("signing.region is required")
	}
	if c.Signing.URLStyle != "path" && c.Signing.URLStyle != "virtual-host" {
		return fmt.Errorf("signing.url_style must be 'path' or 'virtual-host'")
	}
	if c.Signing.MinExpiry < time.Second {
		return fmt.Errorf("signing.min_expiry must be at least 1s")
	}
	if c.Signing.MaxExpiry > 7*24*time.Hour {
		return fmt.Errorf("signing.max_expiry must not exceed 7 days")
	}
	if c.Signing.MinExpiry > c.Signing.MaxExpiry {
		return fmt.Errorf("signing.min_expiry must not exceed signing.max_expiry")
	}

	validDrivers := map[string]bool{"postgres": true, "sqlite": true}
	if !validDrivers[c.Keystore.Driver] {
		return fmt.Errorf("keystore.driver must be 'postgres' or 'sqlite'")
	}
	if c.Keystore.Driver == "postgres" {
		if c.Keystore.Host == "" {
			return fmt.Errorf("keystore.host is required for postgres driver")
		}
		if c.Keystore.User == "" {
			return fmt.Errorf("keystore.user is required for postgres driver")
		}
		if c.Keystore.Database == "" {
			return fmt.Errorf("keystore.database is required for postgres driver")
		}
	} else if c.Keystore.Driver == "sqlite" {
		if c.Keystore.Path == "" {
			return fmt.Errorf("keystore.path is required for sqlite driver")
		}
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, fatal, panic")
	}

	return nil
}

// MustLoad loads configuration or panics on error.
// Useful for main function initialization.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
