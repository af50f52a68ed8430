package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application. It is built once at
// startup and passed into every component constructor.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Catalog CatalogConfig
	Storage StorageConfig
	Cache   CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// APIConfig holds remote catalog/compare API configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig holds browsing defaults: the supermarket list shown at
// startup and the default selection
type CatalogConfig struct {
	DefaultSupermarket string   `mapstructure:"default_supermarket"`
	Supermarkets       []string `mapstructure:"supermarkets"`
	PageSize           int      `mapstructure:"page_size"`
}

// StorageConfig holds cart persistence configuration
type StorageConfig struct {
	Type string `mapstructure:"type"` // "file" or "sqlite"
	Path string `mapstructure:"path"`
}

// CacheConfig holds catalog response cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/volantino/")

	// Environment variable settings, e.g. VOLANTINO_SERVER_PORT -> server.port
	v.SetEnvPrefix("VOLANTINO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Remote API defaults
	v.SetDefault("api.timeout", "30s")

	// Catalog defaults
	v.SetDefault("catalog.page_size", 20)

	// Storage defaults
	v.SetDefault("storage.type", "file")
	v.SetDefault("storage.path", "./data/cart.json")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.API.BaseURL == "" {
		return fmt.Errorf("catalog API base URL is required (set VOLANTINO_API_BASE_URL)")
	}

	if config.Storage.Type != "file" && config.Storage.Type != "sqlite" {
		return fmt.Errorf("storage type must be 'file' or 'sqlite', got: %s", config.Storage.Type)
	}

	if config.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}

	if config.Catalog.PageSize < 1 {
		return fmt.Errorf("catalog page size must be >= 1, got: %d", config.Catalog.PageSize)
	}

	return nil
}
