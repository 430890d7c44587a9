package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Search   SearchConfig   `mapstructure:"search"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port          int    `mapstructure:"port"`
	Host          string `mapstructure:"host"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig holds the remote product API configuration
type CatalogConfig struct {
	BaseURLs             []string `mapstructure:"base_urls"`
	HealthPath           string   `mapstructure:"health_path"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	CooldownSeconds      int      `mapstructure:"cooldown_seconds"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN returns the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

// SearchConfig holds search service tuning
type SearchConfig struct {
	CatalogCacheTTL int `mapstructure:"catalog_cache_ttl"` // seconds
	EventWorkers    int `mapstructure:"event_workers"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads config.yaml from the given directories (the current directory when
// none are given), applies defaults and environment overrides. A missing
// config file is not an error: defaults and environment are enough to run.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Warn("config.yaml not found, using defaults and environment")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if len(c.Catalog.BaseURLs) == 0 {
		return errors.New("catalog.base_urls must list at least one URL")
	}
	if c.Catalog.MaxRequestsPerSecond <= 0 {
		return fmt.Errorf("catalog.max_requests_per_second must be positive, got %d", c.Catalog.MaxRequestsPerSecond)
	}
	if c.Search.CatalogCacheTTL <= 0 {
		return fmt.Errorf("search.catalog_cache_ttl must be positive, got %d", c.Search.CatalogCacheTTL)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.allowed_origin", "http://localhost:5173")

	v.SetDefault("catalog.base_urls", []string{"http://localhost:8081"})
	v.SetDefault("catalog.health_path", "/api/admin/products/test")
	v.SetDefault("catalog.timeout", 10)
	v.SetDefault("catalog.max_retries", 2)
	v.SetDefault("catalog.max_requests_per_second", 20)
	v.SetDefault("catalog.cooldown_seconds", 60)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "storefront")
	v.SetDefault("database.user", "storefront_user")
	v.SetDefault("database.password", "storefront_pass")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.consumer_group", "search_events_consumer")
	v.SetDefault("redis.min_idle_time", 120)

	v.SetDefault("search.catalog_cache_ttl", 300)
	v.SetDefault("search.event_workers", 2)

	v.SetDefault("log.level", "info")
}
