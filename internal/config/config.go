package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	CORS      CORSConfig      `json:"cors" yaml:"cors"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Analytics AnalyticsConfig `json:"analytics" yaml:"analytics"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port            int    `json:"port" yaml:"port"`
	Host            string `json:"host" yaml:"host"`
	ReadTimeout     int    `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeout    int    `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	ShutdownTimeout int    `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

// CORSConfig represents CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// StoreConfig represents in-memory store configuration
type StoreConfig struct {
	SeedDefaults bool `json:"seed_defaults" yaml:"seed_defaults"`
}

// AnalyticsConfig represents analytics endpoint configuration
type AnalyticsConfig struct {
	DefaultDailyDays int `json:"default_daily_days" yaml:"default_daily_days"`
	MaxDailyDays     int `json:"max_daily_days" yaml:"max_daily_days"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "localhost",
			ReadTimeout:     30,
			WriteTimeout:    30,
			ShutdownTimeout: 10,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Store: StoreConfig{
			SeedDefaults: true,
		},
		Analytics: AnalyticsConfig{
			DefaultDailyDays: 7,
			MaxDailyDays:     365,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig loads configuration from an optional YAML file, then environment
// variables, on top of defaults.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := DefaultConfig()

	if path := os.Getenv("ZERIM_CONFIG_FILE"); path != "" {
		if err := loadFromFile(config, path); err != nil {
			return nil, err
		}
	}

	loadFromEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile overlays configuration from a YAML file
func loadFromFile(config *Config, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

// loadFromEnv loads configuration overrides from environment variables
func loadFromEnv(config *Config) {
	loadServerConfig(config)
	loadCORSConfig(config)
	loadStoreConfig(config)
	loadAnalyticsConfig(config)
	loadLoggingConfig(config)
}

func loadServerConfig(config *Config) {
	if port := os.Getenv("ZERIM_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("ZERIM_HOST"); host != "" {
		config.Server.Host = host
	}
	if readTimeout := os.Getenv("ZERIM_READ_TIMEOUT_SECONDS"); readTimeout != "" {
		if rt, err := strconv.Atoi(readTimeout); err == nil {
			config.Server.ReadTimeout = rt
		}
	}
	if writeTimeout := os.Getenv("ZERIM_WRITE_TIMEOUT_SECONDS"); writeTimeout != "" {
		if wt, err := strconv.Atoi(writeTimeout); err == nil {
			config.Server.WriteTimeout = wt
		}
	}
	if shutdownTimeout := os.Getenv("ZERIM_SHUTDOWN_TIMEOUT_SECONDS"); shutdownTimeout != "" {
		if st, err := strconv.Atoi(shutdownTimeout); err == nil {
			config.Server.ShutdownTimeout = st
		}
	}
}

func loadCORSConfig(config *Config) {
	if origins := os.Getenv("ZERIM_CORS_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		allowed := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				allowed = append(allowed, trimmed)
			}
		}
		if len(allowed) > 0 {
			config.CORS.AllowedOrigins = allowed
		}
	}
}

func loadStoreConfig(config *Config) {
	if seed := os.Getenv("ZERIM_SEED_DEFAULTS"); seed != "" {
		if s, err := strconv.ParseBool(seed); err == nil {
			config.Store.SeedDefaults = s
		}
	}
}

func loadAnalyticsConfig(config *Config) {
	if days := os.Getenv("ZERIM_ANALYTICS_DEFAULT_DAILY_DAYS"); days != "" {
		if d, err := strconv.Atoi(days); err == nil {
			config.Analytics.DefaultDailyDays = d
		}
	}
	if days := os.Getenv("ZERIM_ANALYTICS_MAX_DAILY_DAYS"); days != "" {
		if d, err := strconv.Atoi(days); err == nil {
			config.Analytics.MaxDailyDays = d
		}
	}
}

func loadLoggingConfig(config *Config) {
	if level := os.Getenv("ZERIM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("ZERIM_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %d", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write timeout: %d", c.Server.WriteTimeout)
	}
	if c.Analytics.DefaultDailyDays < 1 || c.Analytics.DefaultDailyDays > c.Analytics.MaxDailyDays {
		return fmt.Errorf("invalid default daily days: %d", c.Analytics.DefaultDailyDays)
	}
	if c.Analytics.MaxDailyDays < 1 || c.Analytics.MaxDailyDays > 365 {
		return fmt.Errorf("invalid max daily days: %d", c.Analytics.MaxDailyDays)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}
	return nil
}

// Address returns the host:port pair the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
