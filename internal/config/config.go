// Package config provides configuration management for the forecaster.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App         AppConfig          `mapstructure:"app" validate:"required"`
	Analysis    AnalysisConfig     `mapstructure:"analysis" validate:"required"`
	DataSources []DataSourceConfig `mapstructure:"data_sources" validate:"dive"`
	Settings    SettingsConfig     `mapstructure:"settings" validate:"required"`
	Server      ServerConfig       `mapstructure:"server" validate:"required"`
	Metrics     MetricsConfig      `mapstructure:"metrics" validate:"required"`
	Scheduler   SchedulerConfig    `mapstructure:"scheduler"`
	Secrets     SecretsConfig      `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// AnalysisConfig represents forecasting and value detection configuration
type AnalysisConfig struct {
	MinEdge       float64            `mapstructure:"min_edge" validate:"gte=0"`
	KellyFraction float64            `mapstructure:"kelly_fraction" validate:"gt=0,lte=1"`
	MinOdds       float64            `mapstructure:"min_odds" validate:"gte=0"`
	MaxOdds       float64            `mapstructure:"max_odds" validate:"gte=0"`
	Workers       int                `mapstructure:"workers" validate:"gte=1,lte=64"`
	CacheTTL      time.Duration      `mapstructure:"cache_ttl"`
	CacheMaxSize  int                `mapstructure:"cache_max_size" validate:"gte=0"`
	Weights       map[string]float64 `mapstructure:"weights"`
}

// DataSourceConfig represents a single fixture source
type DataSourceConfig struct {
	Name       string        `mapstructure:"name" validate:"required"`
	Kind       string        `mapstructure:"kind" validate:"required,sourcekind"`
	Enabled    bool          `mapstructure:"enabled"`
	Path       string        `mapstructure:"path"`
	BaseURL    string        `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey     string        `mapstructure:"api_key"`
	Sports     []string      `mapstructure:"sports"`
	Regions    string        `mapstructure:"regions"`
	RateLimit  float64       `mapstructure:"rate_limit" validate:"gte=0"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0"`
}

// SettingsConfig represents the persisted settings store
type SettingsConfig struct {
	Backend        string `mapstructure:"backend" validate:"required,oneof=file postgres"`
	Path           string `mapstructure:"path"`
	DSN            string `mapstructure:"dsn"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig represents periodic batch analysis
type SchedulerConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	AnalysisSchedule string `mapstructure:"analysis_schedule"`
}

// SecretsConfig represents the AWS Secrets Manager overlay
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// EnabledSources returns the data sources switched on
func (c *Config) EnabledSources() []DataSourceConfig {
	var out []DataSourceConfig
	for _, s := range c.DataSources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
