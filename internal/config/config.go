package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// SelectionScope controls whether selections survive filter changes.
type SelectionScope string

// Selection scopes.
const (
	ScopeGlobal SelectionScope = "global"
	ScopeFilter SelectionScope = "filter"
)

// Config stores all runtime settings of the painel and the worker.
type Config struct {
	Port        int
	API         API
	Gateway     Gateway
	DB          DB
	Kafka       Kafka
	RateLimit   RateLimit
	Session     Session
	Bulk        Bulk
	Selection   SelectionScope
	Location    *time.Location
	CatalogPath string
	Debug       bool
}

// API points at the external social-services REST API.
type API struct {
	BaseURL string
	Timeout time.Duration
}

// Gateway holds retry settings for idempotent gateway reads.
type Gateway struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DB holds Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres:// connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		d.User, d.Pass, net.JoinHostPort(d.Host, d.Port), d.Name)
}

// Kafka holds the status-event topic settings. No brokers disables publishing.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Enabled reports whether Kafka is configured.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && strings.TrimSpace(k.Topic) != ""
}

// RateLimit configures login throttling.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Session configures operator sessions.
type Session struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// Bulk configures bulk order transitions.
type Bulk struct {
	Concurrency      int
	CancelStampsDate bool
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      defaultPort,
		API:       defaultAPI,
		Gateway:   defaultGateway,
		DB:        defaultDB,
		Kafka:     defaultKafka,
		RateLimit: defaultRateLimit,
		Session:   defaultSession,
		Bulk:      defaultBulk,
		Selection: defaultSelectionScope,
	}
	zone := defaultTimeZone

	var errs []error
	envInt(&errs, "PORT", &cfg.Port)
	envString("API_BASE_URL", &cfg.API.BaseURL)
	envDuration(&errs, "API_TIMEOUT", &cfg.API.Timeout)
	envInt(&errs, "GATEWAY_MAX_ATTEMPTS", &cfg.Gateway.MaxAttempts)
	envDuration(&errs, "GATEWAY_BASE_DELAY", &cfg.Gateway.BaseDelay)
	envDuration(&errs, "GATEWAY_MAX_DELAY", &cfg.Gateway.MaxDelay)
	envString("POSTGRES_HOST", &cfg.DB.Host)
	envString("POSTGRES_PORT", &cfg.DB.Port)
	envString("POSTGRES_USER", &cfg.DB.User)
	envString("POSTGRES_PASSWORD", &cfg.DB.Pass)
	envString("POSTGRES_DB", &cfg.DB.Name)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	envString("KAFKA_TOPIC", &cfg.Kafka.Topic)
	envString("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	envBool(&errs, "RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	envFloat(&errs, "RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	envInt(&errs, "RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	envDuration(&errs, "SESSION_TTL", &cfg.Session.TTL)
	envDuration(&errs, "SESSION_CLEANUP_INTERVAL", &cfg.Session.CleanupInterval)
	envInt(&errs, "BULK_CONCURRENCY", &cfg.Bulk.Concurrency)
	envBool(&errs, "BULK_CANCEL_STAMPS_DATE", &cfg.Bulk.CancelStampsDate)
	if v := os.Getenv("SELECTION_SCOPE"); v != "" {
		cfg.Selection = SelectionScope(strings.ToLower(strings.TrimSpace(v)))
	}
	envString("TZ_PAINEL", &zone)
	envString("CATALOG_PATH", &cfg.CatalogPath)
	envBool(&errs, "LOG_DEBUG", &cfg.Debug)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.API.BaseURL, "api", cfg.API.BaseURL, "base URL of the social-services API")
	pflag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "path to the services catalog YAML")
	pflag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log at debug level")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", zone, err)
	}
	cfg.Location = loc

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid postgres port: %q", c.DB.Port)
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api base url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid api timeout: %s", c.API.Timeout)
	}
	if c.Gateway.MaxAttempts < 1 {
		return fmt.Errorf("invalid gateway max attempts: %d", c.Gateway.MaxAttempts)
	}
	if c.Bulk.Concurrency < 1 {
		return fmt.Errorf("invalid bulk concurrency: %d", c.Bulk.Concurrency)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl: %s", c.Session.TTL)
	}
	switch c.Selection {
	case ScopeGlobal, ScopeFilter:
	default:
		return fmt.Errorf("invalid selection scope: %q", c.Selection)
	}
	return nil
}

func envString(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envInt(errs *[]error, key string, dst *int) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func envFloat(errs *[]error, key string, dst *float64) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = f
}

func envBool(errs *[]error, key string, dst *bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = b
}

func envDuration(errs *[]error, key string, dst *time.Duration) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = d
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
