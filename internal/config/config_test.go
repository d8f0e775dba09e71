package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("BLOOM_CFG_VALUE", "custom")
	if got := getEnv("BLOOM_CFG_VALUE", "default"); got != "custom" {
		t.Fatalf("getEnv returned %q, want custom", got)
	}

	t.Setenv("BLOOM_CFG_EMPTY", "")
	if got := getEnv("BLOOM_CFG_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("getEnv returned %q, want fallback", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLOOM_DB_PATH", "")
	t.Setenv("BIND_ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("TZ", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBPath != filepath.Join("data", "bloom.db") {
		t.Fatalf("unexpected default db path %q", cfg.DBPath)
	}
	if cfg.ListenAddr() != "127.0.0.1:8080" {
		t.Fatalf("unexpected default listen address %q", cfg.ListenAddr())
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Location)
	}
}

func TestLoadOverridesAndInvalidValues(t *testing.T) {
	t.Setenv("BLOOM_DB_PATH", "/tmp/custom.db")
	t.Setenv("BIND_ADDR", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("TZ", "Not/AZone")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" || cfg.ListenAddr() != "0.0.0.0:9090" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected invalid TZ to fall back to UTC, got %v", cfg.Location)
	}

	for _, port := range []string{"0", "70000", "not-a-number"} {
		t.Setenv("PORT", port)
		if _, err := Load(); err == nil {
			t.Fatalf("expected PORT=%q to fail", port)
		}
	}
}

func TestLoadLogConfig(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BLOOM_LOG_FILE", "")
	t.Setenv("BLOOM_LOG_MAX_SIZE_MB", "")
	t.Setenv("BLOOM_LOG_MAX_BACKUPS", "")
	t.Setenv("BLOOM_LOG_MAX_AGE_DAYS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Log.File != "" || cfg.Log.MaxSizeMB != 10 || cfg.Log.MaxBackups != 3 || cfg.Log.MaxAgeDays != 28 {
		t.Fatalf("unexpected default log config: %+v", cfg.Log)
	}

	t.Setenv("BLOOM_LOG_FILE", "/tmp/bloom.log")
	t.Setenv("BLOOM_LOG_MAX_BACKUPS", "7")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Log.File != "/tmp/bloom.log" || cfg.Log.MaxBackups != 7 {
		t.Fatalf("log overrides not applied: %+v", cfg.Log)
	}

	t.Setenv("BLOOM_LOG_MAX_SIZE_MB", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected negative log size to fail")
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{DBPath: "data/bloom.db", Timezone: "UTC", Location: time.UTC}

	cfg.ApplyOverrides("", "  ")
	if cfg.DBPath != "data/bloom.db" || cfg.Location != time.UTC {
		t.Fatalf("blank overrides should keep values: %+v", cfg)
	}

	cfg.ApplyOverrides("/tmp/other.db", "Europe/Berlin")
	if cfg.DBPath != "/tmp/other.db" || cfg.Timezone != "Europe/Berlin" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Location.String() != "Europe/Berlin" {
		t.Fatalf("expected Europe/Berlin location, got %v", cfg.Location)
	}
}
