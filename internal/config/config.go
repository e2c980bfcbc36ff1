package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr           string
	DBDriver       string
	DBPath         string
	DatabaseURL    string
	DefaultUserID  int64
	SeedDemo       bool
	CORSOrigins    []string
	RequestTimeout time.Duration
}

func Default() Config {
	return Config{
		Addr:           ":8080",
		DBDriver:       DriverSQLite,
		DBPath:         "quiz.db",
		DefaultUserID:  1,
		CORSOrigins:    []string{"*"},
		RequestTimeout: 10 * time.Second,
	}
}

// Load reads .env when present and then the process environment. Unset keys
// keep their defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		glog.Warning(".env file not found, reading from system environment variables")
	}
	return FromLookup(os.LookupEnv)
}

func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if value, ok := get("ADDR"); ok {
		cfg.Addr = value
	}
	if value, ok := get("DB_DRIVER"); ok {
		cfg.DBDriver = strings.ToLower(value)
	}
	if value, ok := get("DB_PATH"); ok {
		cfg.DBPath = value
	}
	if value, ok := get("DATABASE_URL"); ok {
		cfg.DatabaseURL = value
	}
	if value, ok := get("DEFAULT_USER_ID"); ok {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Config{}, errors.Wrap(err, "DEFAULT_USER_ID")
		}
		cfg.DefaultUserID = parsed
	}
	if value, ok := get("SEED_DEMO"); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return Config{}, errors.Wrap(err, "SEED_DEMO")
		}
		cfg.SeedDemo = parsed
	}
	if value, ok := get("CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitList(value)
	}
	if value, ok := get("REQUEST_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, errors.Wrap(err, "REQUEST_TIMEOUT")
		}
		cfg.RequestTimeout = parsed
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return errors.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.DefaultUserID <= 0 {
		return errors.Errorf("DEFAULT_USER_ID must be positive, got %d", c.DefaultUserID)
	}
	if c.RequestTimeout <= 0 {
		return errors.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
