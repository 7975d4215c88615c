package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"finpro/internal/platform/config"
)

var envKeys = []string{
	"FINPRO_PROGRESS_ENDPOINT",
	"FINPRO_CATALOG",
	"FINPRO_HTTP_TIMEOUT",
	"FINPRO_HTTP_MAX_RETRIES",
	"FINPRO_LOG_MODE",
	"FINPRO_LOG_FILE",
	"FINPRO_LOG_REDACT",
	"FINPRO_TELEGRAM_ID",
	"FINPRO_TELEGRAM_FIRST_NAME",
	"FINPRO_TELEGRAM_LAST_NAME",
	"FINPRO_TELEGRAM_USERNAME",
}

// clearEnv unsets every key for the duration of the test; t.Setenv restores
// the previous state on cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestNewRequiresEndpoint(t *testing.T) {
	clearEnv(t)
	if _, err := config.New(config.Options{Identity: config.Identity{TelegramID: 42}}); err == nil {
		t.Fatalf("missing endpoint with an identity should fail")
	}
	if _, err := config.New(config.Options{Endpoint: "ftp://example.com"}); err == nil {
		t.Fatalf("non-http endpoint should fail")
	}
	if _, err := config.New(config.Options{Endpoint: "/relative"}); err == nil {
		t.Fatalf("relative endpoint should fail")
	}
}

func TestNewReadsEnvironmentAndFlagsWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("FINPRO_PROGRESS_ENDPOINT", "https://env.example.com/progress")
	t.Setenv("FINPRO_HTTP_TIMEOUT", "5s")
	t.Setenv("FINPRO_HTTP_MAX_RETRIES", "4")
	t.Setenv("FINPRO_TELEGRAM_ID", "42")
	t.Setenv("FINPRO_TELEGRAM_FIRST_NAME", "Ivan")

	cfg, err := config.New(config.Options{})
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Endpoint != "https://env.example.com/progress" || cfg.HTTPTimeout != 5*time.Second || cfg.MaxRetries != 4 {
		t.Fatalf("unexpected config from env: %+v", cfg)
	}
	if cfg.Identity.TelegramID != 42 || cfg.Identity.FirstName != "Ivan" {
		t.Fatalf("unexpected identity from env: %+v", cfg.Identity)
	}

	cfg, err = config.New(config.Options{
		Endpoint: "http://flag.example.com/p",
		Identity: config.Identity{TelegramID: 7, Username: "flaguser"},
	})
	if err != nil {
		t.Fatalf("new config with flags: %v", err)
	}
	if cfg.Endpoint != "http://flag.example.com/p" || cfg.Identity.TelegramID != 7 {
		t.Fatalf("flags should override env, got %+v", cfg)
	}
	if cfg.Identity.FirstName != "Ivan" || cfg.Identity.Username != "flaguser" {
		t.Fatalf("identity fields should merge, got %+v", cfg.Identity)
	}
}

func TestNewLoadsEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "FINPRO_PROGRESS_ENDPOINT=https://file.example.com/progress\nFINPRO_TELEGRAM_ID=99\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	cfg, err := config.New(config.Options{EnvFile: path})
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Endpoint != "https://file.example.com/progress" || cfg.Identity.TelegramID != 99 {
		t.Fatalf("env file values not applied: %+v", cfg)
	}
	if cfg.HTTPTimeout != config.DefaultHTTPTimeout || cfg.MaxRetries != config.DefaultMaxRetries {
		t.Fatalf("expected defaults, got timeout=%s retries=%d", cfg.HTTPTimeout, cfg.MaxRetries)
	}
}

func TestNewRejectsBadValues(t *testing.T) {
	clearEnv(t)
	if _, err := config.New(config.Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")}); err == nil {
		t.Fatalf("explicit missing env file should fail")
	}
	t.Setenv("FINPRO_PROGRESS_ENDPOINT", "https://example.com")
	t.Setenv("FINPRO_HTTP_TIMEOUT", "soon")
	if _, err := config.New(config.Options{}); err == nil {
		t.Fatalf("bad timeout should fail")
	}
	t.Setenv("FINPRO_HTTP_TIMEOUT", "")
	t.Setenv("FINPRO_HTTP_MAX_RETRIES", "-1")
	if _, err := config.New(config.Options{}); err == nil {
		t.Fatalf("negative retries should fail")
	}
	t.Setenv("FINPRO_HTTP_MAX_RETRIES", "")
	t.Setenv("FINPRO_TELEGRAM_ID", "abc")
	if _, err := config.New(config.Options{}); err == nil {
		t.Fatalf("non-numeric telegram id should fail")
	}
}

func TestNewAllowsLocalModeWithoutEndpoint(t *testing.T) {
	clearEnv(t)
	cfg, err := config.New(config.Options{})
	if err != nil {
		t.Fatalf("local mode needs no endpoint: %v", err)
	}
	if cfg.Endpoint != "" || cfg.Identity.TelegramID != 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
