package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	// BaseURL is the CarFixIT backend the client talks to.
	BaseURL string

	// StateDir holds the local mirror database (session, cart, vehicle).
	StateDir string

	HTTPTimeout time.Duration
}

func Load() Config {
	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BaseURL:     getEnv("CARFIXIT_BASE_URL", "https://api.carfixit.mgridtech.com"),
		StateDir:    getEnv("CARFIXIT_STATE_DIR", defaultStateDir()),
		HTTPTimeout: time.Duration(getEnvInt("CARFIXIT_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".carfixit"
	}
	return filepath.Join(home, ".carfixit")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
