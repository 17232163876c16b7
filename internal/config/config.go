package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"github.com/subosito/gotenv"
	"golang.org/x/text/currency"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	AppEnv   string
	LogLevel string

	Backend    string
	StorageKey string
	DataDir    string

	PostgresDSN string

	RedisAddr      string
	RedisKeyPrefix string

	DisplayCurrency currency.Unit
}

// Load reads the environment, falling back to envFile when it exists.
// A variable that is unset or empty in the environment takes the file value.
func Load(envFile string) (Config, error) {
	var fileEnv gotenv.Env
	if envFile != "" {
		env, err := gotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("gotenv.Read: %w", err)
		}
		fileEnv = env
	}

	getEnv := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := fileEnv[key]; v != "" {
			return v
		}
		return def
	}

	unit, err := currency.ParseISO(getEnv("DISPLAY_CURRENCY", "USD"))
	if err != nil {
		return Config{}, fmt.Errorf("DISPLAY_CURRENCY is not valid: %w", err)
	}

	cfg := Config{
		AppEnv:          getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Backend:         strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		StorageKey:      getEnv("CART_STORAGE_KEY", "@GoMarketplace:cart:products"),
		DataDir:         getEnv("CART_DATA_DIR", defaultDataDir()),
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisKeyPrefix:  getEnv("REDIS_KEY_PREFIX", ""),
		DisplayCurrency: unit,
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("CART_DATA_DIR is required for the %s backend", c.Backend)
		}
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the %s backend", c.Backend)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the %s backend", c.Backend)
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND[%s] is not supported", c.Backend)
	}

	if c.StorageKey == "" {
		return fmt.Errorf("CART_STORAGE_KEY is empty")
	}

	return nil
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir + string(os.PathSeparator) + "gomarket-cart"
}
