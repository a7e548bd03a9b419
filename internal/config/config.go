// Package config loads service configuration from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Auth       AuthConfig       `koanf:"auth"`
	Weather    WeatherConfig    `koanf:"weather"`
	Places     PlacesConfig     `koanf:"places"`
	Enrichment EnrichmentConfig `koanf:"enrichment"`
	Logging    LoggingConfig    `koanf:"logging"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	Environment     string        `koanf:"environment"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     string        `koanf:"cors_origins"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
	LogQueries      bool          `koanf:"log_queries"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type WeatherConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Units   string        `koanf:"units"`
	Timeout time.Duration `koanf:"timeout"`
}

type PlacesConfig struct {
	BaseURL       string        `koanf:"base_url"`
	APIKey        string        `koanf:"api_key"`
	Timeout       time.Duration `koanf:"timeout"`
	PhotoMaxWidth int           `koanf:"photo_max_width"`
	// PhotoURLPrefix is prepended to a photo reference to build the primary
	// image URL handed to clients. The default points at the photo proxy,
	// which requires a bearer token: clients that cannot send one, such as a
	// plain <img> tag, must fetch the bytes themselves or use the fallback URL.
	PhotoURLPrefix string `koanf:"photo_url_prefix"`
	PlaceholderURL string `koanf:"placeholder_url"`
}

type EnrichmentConfig struct {
	Query        string `koanf:"query"`
	ListPlaces   int    `koanf:"list_places"`
	DetailPlaces int    `koanf:"detail_places"`
	ForecastDays int    `koanf:"forecast_days"`
	Concurrency  int    `koanf:"concurrency"`

	// PlacesCacheTTL keeps successful places lookups per location. Zero
	// disables the cache.
	PlacesCacheTTL time.Duration `koanf:"places_cache_ttl"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
	// Development switches zap to the console encoder.
	Development bool `koanf:"development"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Environment:     "development",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     "*",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
			AutoMigrate:     true,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5",
			Units:   "metric",
			Timeout: 10 * time.Second,
		},
		Places: PlacesConfig{
			BaseURL:        "https://maps.googleapis.com/maps/api/place",
			Timeout:        10 * time.Second,
			PhotoMaxWidth:  400,
			PhotoURLPrefix: "/api/places/photos/",
			PlaceholderURL: "https://via.placeholder.com/400x300",
		},
		Enrichment: EnrichmentConfig{
			Query:          "tourist attractions",
			ListPlaces:     3,
			DetailPlaces:   5,
			ForecastDays:   5,
			Concurrency:    4,
			PlacesCacheTTL: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads .env (if present), then layers defaults, the config file and
// environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Server.Port))
	}
	if c.Enrichment.Concurrency < 1 {
		errs = append(errs, errors.New("enrichment concurrency must be at least 1"))
	}
	return errors.Join(errs...)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings keeps the variable names the deployment already uses.
var envMappings = map[string]string{
	"port":                  "server.port",
	"node_env":              "server.environment",
	"app_env":               "server.environment",
	"cors_origins":          "server.cors_origins",
	"database_url":          "database.url",
	"postgres_url":          "database.url",
	"db_auto_migrate":       "database.auto_migrate",
	"jwt_secret":            "auth.jwt_secret",
	"jwt_ttl":               "auth.token_ttl",
	"openweather_api_key":   "weather.api_key",
	"google_places_api_key": "places.api_key",
	"log_level":             "logging.level",
	"log_development":       "logging.development",
}

// envTransformFunc maps legacy names, and WQ_SECTION__KEY style names, to
// koanf paths. Everything else is ignored.
func envTransformFunc(key string) string {
	lower := strings.ToLower(key)
	if path, ok := envMappings[lower]; ok {
		return path
	}
	if rest, ok := strings.CutPrefix(lower, "wq_"); ok {
		return strings.ReplaceAll(rest, "__", ".")
	}
	return ""
}
