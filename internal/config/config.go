package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	// pages must never show data older than this
	MaxRefreshInterval = 30 * time.Second
)

var DefaultOrderCollections = []string{"orders", "pearlifyOrders", "customerOrders"}

// Config is the whole process configuration.
type Config struct {
	Port string

	StoreDriver string // memory / postgres
	DatabaseURL string // used as-is when set

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string

	// first entry is the primary collection, the rest are mirrored aliases
	OrderCollections []string

	RefreshInterval time.Duration
	SessionTTL      time.Duration
	Location        *time.Location
	LogLevel        string
}

// LoadDotEnv loads .env when present; a missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the environment.
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", StoreDriverMemory)),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "pearlify"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getenv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "info")),
	}

	switch cfg.StoreDriver {
	case StoreDriverMemory, StoreDriverPostgres:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be memory or postgres, got %q", cfg.StoreDriver)
	}

	cfg.OrderCollections = DefaultOrderCollections
	if v := os.Getenv("ORDER_COLLECTIONS"); v != "" {
		cols, err := parseCollections(v)
		if err != nil {
			return Config{}, err
		}
		cfg.OrderCollections = cols
	}

	var err error
	cfg.RefreshInterval, err = durationEnv("REFRESH_INTERVAL", MaxRefreshInterval)
	if err != nil {
		return Config{}, err
	}
	if cfg.RefreshInterval <= 0 || cfg.RefreshInterval > MaxRefreshInterval {
		return Config{}, fmt.Errorf("REFRESH_INTERVAL must be within (0, %s]", MaxRefreshInterval)
	}

	cfg.SessionTTL, err = durationEnv("SESSION_TTL", 2*time.Hour)
	if err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive")
	}

	cfg.Location, err = time.LoadLocation(getenv("TIMEZONE", "Asia/Manila"))
	if err != nil {
		return Config{}, fmt.Errorf("TIMEZONE: %w", err)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", cfg.LogLevel)
	}

	return cfg, nil
}

// PostgresDSN prefers DATABASE_URL.
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func parseCollections(v string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, part := range strings.Split(v, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ORDER_COLLECTIONS must name at least one collection")
	}
	return out, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
