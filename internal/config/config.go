package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath   string
	BindAddr string
	Port     string
	Timezone string
	Location *time.Location
	Log      LogConfig
}

// LogConfig controls the optional rotating log file. An empty File keeps
// logging on stderr only.
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func Load() (*Config, error) {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	port, err := resolvePort()
	if err != nil {
		return nil, err
	}
	logConfig, err := resolveLogConfig()
	if err != nil {
		return nil, err
	}

	timezone := getEnv("TZ", "UTC")
	return &Config{
		DBPath:   getEnv("BLOOM_DB_PATH", filepath.Join("data", "bloom.db")),
		BindAddr: getEnv("BIND_ADDR", "127.0.0.1"),
		Port:     port,
		Timezone: timezone,
		Location: loadLocation(timezone),
		Log:      logConfig,
	}, nil
}

// ApplyOverrides replaces the database path and time zone when non-empty,
// e.g. from command line flags.
func (cfg *Config) ApplyOverrides(dbPath string, timezone string) {
	if strings.TrimSpace(dbPath) != "" {
		cfg.DBPath = dbPath
	}
	if strings.TrimSpace(timezone) != "" {
		cfg.Timezone = timezone
		cfg.Location = loadLocation(timezone)
	}
}

func (cfg *Config) ListenAddr() string {
	return cfg.BindAddr + ":" + cfg.Port
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return raw, nil
}

func resolveLogConfig() (LogConfig, error) {
	cfg := LogConfig{File: getEnv("BLOOM_LOG_FILE", "")}

	var err error
	if cfg.MaxSizeMB, err = getEnvInt("BLOOM_LOG_MAX_SIZE_MB", 10); err != nil {
		return LogConfig{}, err
	}
	if cfg.MaxBackups, err = getEnvInt("BLOOM_LOG_MAX_BACKUPS", 3); err != nil {
		return LogConfig{}, err
	}
	if cfg.MaxAgeDays, err = getEnvInt("BLOOM_LOG_MAX_AGE_DAYS", 28); err != nil {
		return LogConfig{}, err
	}
	return cfg, nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}
