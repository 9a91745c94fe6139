package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	App      AppConfig
	Auth     AuthConfig
	Postgres PostgresConfig
	SSH      SSHConfig
}

type AppConfig struct {
	Env         string
	ListenPort  string
	LogLevel    string
	CORSOrigins []string
}

// AuthConfig keeps expiry values as raw strings; the token service parses
// them so that "7d" style values are accepted.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  string
	RefreshExpiry string
}

type PostgresConfig struct {
	DatabaseURL   string
	Host          string
	Port          string
	User          string
	Password      string
	Database      string
	SSLMode       string
	MaxConns      int32
	QueryTimeout  time.Duration
	RetryAttempts uint64
	RetryBackoff  time.Duration
}

type SSHConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	PrivateKeyPath string
	KnownHostsPath string
}

// Enabled reports whether the database must be reached through an SSH tunnel.
func (c SSHConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

func (c AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c AppConfig) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

var requiredVars = []string{
	"JWT_ACCESS_SECRET",
	"JWT_REFRESH_SECRET",
	"ACCESS_TOKEN_EXPIRY",
	"REFRESH_TOKEN_EXPIRY",
}

var ErrMissingEnv = errors.New("missing required environment variables")

// Load reads an optional .env file and builds Config from the environment.
// Every missing required variable is reported in a single error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var missing []string
	for _, key := range requiredVars {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	maxConns, err := getenvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	retryAttempts, err := getenvInt("DB_RETRY_ATTEMPTS", 3)
	if err != nil {
		return Config{}, err
	}
	if retryAttempts < 0 {
		return Config{}, fmt.Errorf("invalid DB_RETRY_ATTEMPTS: must not be negative")
	}
	queryTimeout, err := getenvDuration("DB_QUERY_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	retryBackoff, err := getenvDuration("DB_RETRY_BACKOFF", time.Second)
	if err != nil {
		return Config{}, err
	}

	env := strings.ToLower(getenv("APP_ENV", EnvDevelopment))
	switch env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q", env)
	}

	return Config{
		App: AppConfig{
			Env:         env,
			ListenPort:  getenv("LISTEN_PORT", "8080"),
			LogLevel:    getenv("LOG_LEVEL", "info"),
			CORSOrigins: splitList(os.Getenv("CORS_ORIGIN")),
		},
		Auth: AuthConfig{
			AccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
			RefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
			AccessExpiry:  os.Getenv("ACCESS_TOKEN_EXPIRY"),
			RefreshExpiry: os.Getenv("REFRESH_TOKEN_EXPIRY"),
		},
		Postgres: PostgresConfig{
			DatabaseURL:   os.Getenv("DATABASE_URL"),
			Host:          getenv("PGHOST", "localhost"),
			Port:          getenv("PGPORT", "5432"),
			User:          os.Getenv("PGUSER"),
			Password:      os.Getenv("PGPASSWORD"),
			Database:      os.Getenv("PGDATABASE"),
			SSLMode:       getenv("PGSSLMODE", "disable"),
			MaxConns:      int32(maxConns),
			QueryTimeout:  queryTimeout,
			RetryAttempts: uint64(retryAttempts),
			RetryBackoff:  retryBackoff,
		},
		SSH: SSHConfig{
			Host:           os.Getenv("SSH_HOST"),
			Port:           getenv("SSH_PORT", "22"),
			User:           os.Getenv("SSH_USER"),
			Password:       os.Getenv("SSH_PASSWORD"),
			PrivateKeyPath: os.Getenv("SSH_PRIVATE_KEY_PATH"),
			KnownHostsPath: os.Getenv("SSH_KNOWN_HOSTS"),
		},
	}, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
