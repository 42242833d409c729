package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Search    SearchConfig
	Connector ConnectorConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds persistence configuration
type CatalogConfig struct {
	Driver string `mapstructure:"driver"` // "memory" or "postgres"
	DSN    string `mapstructure:"dsn"`
}

// SearchConfig holds the aggregation pipeline tuning knobs
type SearchConfig struct {
	MaxResults          int      `mapstructure:"max_results"`
	IntentLimit         int      `mapstructure:"intent_limit"`
	RecommendLimit      int      `mapstructure:"recommend_limit"`
	CorrectionThreshold int      `mapstructure:"correction_threshold"`
	Vocabulary          []string `mapstructure:"vocabulary"`
	TrustedStores       []string `mapstructure:"trusted_stores"`
}

// ConnectorConfig holds the outbound HTTP client configuration
type ConnectorConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	HTMLTimeout       time.Duration `mapstructure:"html_timeout"`
	APITimeout        time.Duration `mapstructure:"api_timeout"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Disabled          []string      `mapstructure:"disabled"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/simple-backend/")

	v.SetEnvPrefix("SIMPLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("catalog.driver", "memory")
	v.SetDefault("catalog.dsn", "")

	v.SetDefault("search.max_results", 50)
	v.SetDefault("search.intent_limit", 10)
	v.SetDefault("search.recommend_limit", 10)
	v.SetDefault("search.correction_threshold", 80)
	v.SetDefault("search.vocabulary", []string{})
	v.SetDefault("search.trusted_stores", []string{})

	v.SetDefault("connector.user_agent", "")
	v.SetDefault("connector.html_timeout", "20s")
	v.SetDefault("connector.api_timeout", "25s")
	v.SetDefault("connector.fetch_timeout", "25s")
	v.SetDefault("connector.requests_per_second", 2.0)
	v.SetDefault("connector.disabled", []string{})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Driver != "memory" && config.Catalog.Driver != "postgres" {
		return fmt.Errorf("catalog driver must be 'memory' or 'postgres', got: %s", config.Catalog.Driver)
	}

	if config.Catalog.Driver == "postgres" && config.Catalog.DSN == "" {
		return fmt.Errorf("catalog DSN is required when driver is 'postgres' (set SIMPLE_CATALOG_DSN)")
	}

	if config.Search.MaxResults <= 0 {
		return fmt.Errorf("search max_results must be positive, got: %d", config.Search.MaxResults)
	}

	if config.Connector.RequestsPerSecond <= 0 {
		return fmt.Errorf("connector requests_per_second must be positive, got: %v", config.Connector.RequestsPerSecond)
	}

	return nil
}
