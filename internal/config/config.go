package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MigrationsPath  string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type UploadConfig struct {
	Endpoint string
	Preset   string
}

type Config struct {
	App struct {
		Port string
		Env  string
	}
	Postgres PostgresConfig
	Auth     AuthConfig
	Upload   UploadConfig
}

// Load reads configuration from the environment, optionally seeding it from
// a .env file first. Missing required variables are reported together.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getenv("APP_PORT", "5000")
	cfg.App.Env = getenv("APP_ENV", "development")

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg.Postgres.Host = required("DB_HOST")
	cfg.Postgres.Port = required("DB_PORT")
	cfg.Postgres.User = required("DB_USER")
	cfg.Postgres.Password = required("DB_PASSWORD")
	cfg.Postgres.DBName = required("DB_NAME")
	cfg.Postgres.SSLMode = getenv("DB_SSLMODE", "disable")
	cfg.Postgres.MigrationsPath = getenv("DB_MIGRATIONS_PATH", "migrations")

	maxConns, err := getenvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	minConns, err := getenvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}
	cfg.Postgres.MaxConns = int32(maxConns)
	cfg.Postgres.MinConns = int32(minConns)
	cfg.Postgres.MaxConnLifetime = 30 * time.Minute

	cfg.Auth.JWTSecret = required("JWT_SECRET")
	ttl, err := getenvDuration("JWT_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.Auth.TokenTTL = ttl

	cfg.Upload.Endpoint = os.Getenv("UPLOAD_ENDPOINT")
	cfg.Upload.Preset = os.Getenv("UPLOAD_PRESET")

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	return cfg, nil
}

// IsDevelopment reports whether error details may be included in responses.
func (c *Config) IsDevelopment() bool {
	return c.App.Env != "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return d, nil
}
