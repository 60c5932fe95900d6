package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable names.
const (
	KeyPort                   = "PORT"
	KeyDatabaseURL            = "DATABASE_URL"
	KeyDatabaseName           = "DATABASE_NAME"
	KeyDatabaseConnectTimeout = "DATABASE_CONNECT_TIMEOUT"
	KeyRabbitMQURL            = "RABBITMQ_URL"
	KeyOrderEventsQueue       = "ORDER_EVENTS_QUEUE"
	KeyOrderEventsConsume     = "ORDER_EVENTS_CONSUME"
	KeyAppEnv                 = "APP_ENV"
	KeyLogLevel               = "LOG_LEVEL"
	KeyShutdownTimeout        = "SHUTDOWN_TIMEOUT"
)

// Config holds the settings read at startup.
type Config struct {
	Port     string
	Database DatabaseConfig
	Events   EventsConfig
	Env      string
	LogLevel string

	ShutdownTimeout time.Duration

	v *viper.Viper
}

// DatabaseConfig selects and names the document store.
type DatabaseConfig struct {
	URL            string
	Name           string
	ConnectTimeout time.Duration
}

// Configured reports whether both the connection string and the database name are set.
func (d DatabaseConfig) Configured() bool {
	return d.URL != "" && d.Name != ""
}

// EventsConfig controls order event publishing over RabbitMQ.
type EventsConfig struct {
	RabbitMQURL string
	Queue       string
	Consume     bool
}

// Enabled reports whether a broker URL was provided.
func (e EventsConfig) Enabled() bool {
	return e.RabbitMQURL != ""
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyPort, "8000")
	v.SetDefault(KeyDatabaseConnectTimeout, "5s")
	v.SetDefault(KeyOrderEventsQueue, "order_queue")
	v.SetDefault(KeyOrderEventsConsume, false)
	v.SetDefault(KeyAppEnv, "development")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyShutdownTimeout, "10s")
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port: strings.TrimPrefix(v.GetString(KeyPort), ":"),
		Database: DatabaseConfig{
			URL:            v.GetString(KeyDatabaseURL),
			Name:           v.GetString(KeyDatabaseName),
			ConnectTimeout: v.GetDuration(KeyDatabaseConnectTimeout),
		},
		Events: EventsConfig{
			RabbitMQURL: v.GetString(KeyRabbitMQURL),
			Queue:       v.GetString(KeyOrderEventsQueue),
			Consume:     v.GetBool(KeyOrderEventsConsume),
		},
		Env:             v.GetString(KeyAppEnv),
		LogLevel:        v.GetString(KeyLogLevel),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		v:               v,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that would prevent the server from starting.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%s is required", KeyPort)
	}
	if c.Events.Enabled() && c.Events.Queue == "" {
		return fmt.Errorf("%s is required when %s is set", KeyOrderEventsQueue, KeyRabbitMQURL)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Present reports whether key currently has a non-empty value.
// The environment is consulted on every call, not only at startup.
func (c *Config) Present(key string) bool {
	if c.v == nil {
		return false
	}
	return c.v.GetString(key) != ""
}
