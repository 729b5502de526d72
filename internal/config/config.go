// Package config provides configuration management for the MLB predictions dashboard.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	ScheduleAPI ScheduleAPIConfig `mapstructure:"schedule_api" validate:"required"`
	Predictor   PredictorConfig   `mapstructure:"predictor" validate:"required"`
	Dashboard   DashboardConfig   `mapstructure:"dashboard" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Sync        SyncConfig        `mapstructure:"sync"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ScheduleAPIConfig represents the MLB schedule service configuration
type ScheduleAPIConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	SportID        int     `mapstructure:"sport_id" validate:"required,gt=0"`
	GameType       string  `mapstructure:"game_type" validate:"required"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
}

// PredictorConfig represents the matchup scorer configuration
type PredictorConfig struct {
	SeasonStart         string `mapstructure:"season_start" validate:"required,datetime"`
	CompletedStatus     string `mapstructure:"completed_status" validate:"required"`
	QueryTimeoutSeconds int    `mapstructure:"query_timeout_seconds" validate:"required,gt=0"`
}

// DashboardConfig represents the web dashboard configuration
type DashboardConfig struct {
	Port        int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	Timezone    string   `mapstructure:"timezone" validate:"required,timezone"`
	PastDays    int      `mapstructure:"past_days" validate:"gte=0"`
	FutureDays  int      `mapstructure:"future_days" validate:"gte=0"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// SyncConfig represents the game log sync job configuration
type SyncConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Cron         string `mapstructure:"cron" validate:"required_if=Enabled true"`
	LookbackDays int    `mapstructure:"lookback_days" validate:"gte=0"`
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

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN builds a postgres:// URL with the credentials escaped
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// GetSeasonStart returns the first official date counted as recent form
func (c *Config) GetSeasonStart() (time.Time, error) {
	return time.Parse("2006-01-02", c.Predictor.SeasonStart)
}

// GetLocation returns the time zone used for dates and start times on the dashboard
func (c *Config) GetLocation() (*time.Location, error) {
	return time.LoadLocation(c.Dashboard.Timezone)
}

// GetScheduleTimeout returns the schedule request timeout
func (c *Config) GetScheduleTimeout() time.Duration {
	return time.Duration(c.ScheduleAPI.TimeoutSeconds) * time.Second
}

// GetQueryTimeout returns the per-matchup query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return time.Duration(c.Predictor.QueryTimeoutSeconds) * time.Second
}

// GetListenAddress returns the dashboard listen address
func (c *Config) GetListenAddress() string {
	return fmt.Sprintf(":%d", c.Dashboard.Port)
}
