package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the console
type Config struct {
	// API configuration
	API APIConfig `mapstructure:"api"`

	// Session configuration
	Session SessionConfig `mapstructure:"session"`

	// Directory fetch configuration
	Directory DirectoryConfig `mapstructure:"directory"`

	// Tracing configuration
	Tracing TracingConfig `mapstructure:"tracing"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
}

// APIConfig holds backend API configuration
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	RequestTimeout int    `mapstructure:"request_timeout"`
}

// SessionConfig holds session persistence configuration
type SessionConfig struct {
	// TokenFile is the durable store for the bearer token. Absence of
	// the file means unauthenticated.
	TokenFile string `mapstructure:"token_file"`
}

// TracingConfig holds distributed tracing configuration. Disabled by
// default; spans then go to the no-op provider.
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	ServiceName    string  `mapstructure:"service_name"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

// DirectoryConfig holds page caps for reference-data fetches
type DirectoryConfig struct {
	PatientPageSize int `mapstructure:"patient_page_size"`
	DoctorPageSize  int `mapstructure:"doctor_page_size"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(defaultConfigDir())

	setDefaults()

	viper.SetEnvPrefix("hms")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:5000/api")
	viper.SetDefault("api.request_timeout", 30)

	viper.SetDefault("session.token_file", filepath.Join(defaultConfigDir(), "token"))

	viper.SetDefault("directory.patient_page_size", 100)
	viper.SetDefault("directory.doctor_page_size", 100)

	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.service_name", "hms-console")
	viper.SetDefault("tracing.jaeger_endpoint", "http://localhost:14268/api/traces")
	viper.SetDefault("tracing.sampling_rate", 1.0)

	viper.SetDefault("log_level", "info")
}

// validate validates the loaded configuration
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.API.RequestTimeout <= 0 {
		return fmt.Errorf("api.request_timeout must be positive")
	}
	if cfg.Session.TokenFile == "" {
		return fmt.Errorf("session.token_file is required")
	}
	if cfg.Directory.PatientPageSize <= 0 || cfg.Directory.DoctorPageSize <= 0 {
		return fmt.Errorf("directory page sizes must be positive")
	}
	if cfg.Tracing.Enabled {
		if cfg.Tracing.JaegerEndpoint == "" {
			return fmt.Errorf("tracing.jaeger_endpoint is required when tracing is enabled")
		}
		if cfg.Tracing.SamplingRate <= 0 || cfg.Tracing.SamplingRate > 1 {
			return fmt.Errorf("tracing.sampling_rate must be in (0, 1]")
		}
	}
	return nil
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".hms-console")
}
