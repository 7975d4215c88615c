package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEnvFile     = ".env"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultMaxRetries  = 2
)

type Identity struct {
	TelegramID int64
	FirstName  string
	LastName   string
	Username   string
}

type Config struct {
	Endpoint    string
	CatalogPath string
	HTTPTimeout time.Duration
	MaxRetries  int
	LogMode     string
	LogPath     string
	Redact      bool
	Identity    Identity
}

// Options carries CLI flag values. Non-zero fields win over the environment.
type Options struct {
	EnvFile     string
	Endpoint    string
	CatalogPath string
	LogPath     string
	Identity    Identity
}

func New(opts Options) (Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Config{}, err
	}

	timeout, err := getDuration("FINPRO_HTTP_TIMEOUT", DefaultHTTPTimeout)
	if err != nil {
		return Config{}, err
	}
	retries, err := getInt("FINPRO_HTTP_MAX_RETRIES", DefaultMaxRetries)
	if err != nil {
		return Config{}, err
	}
	if retries < 0 {
		return Config{}, fmt.Errorf("FINPRO_HTTP_MAX_RETRIES must be non-negative")
	}
	telegramID, err := getInt64("FINPRO_TELEGRAM_ID", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Endpoint:    firstNonEmpty(opts.Endpoint, getEnv("FINPRO_PROGRESS_ENDPOINT", "")),
		CatalogPath: firstNonEmpty(opts.CatalogPath, getEnv("FINPRO_CATALOG", "")),
		HTTPTimeout: timeout,
		MaxRetries:  retries,
		LogMode:     getEnv("FINPRO_LOG_MODE", "dev"),
		LogPath:     firstNonEmpty(opts.LogPath, getEnv("FINPRO_LOG_FILE", "")),
		Redact:      getEnv("FINPRO_LOG_REDACT", "true") != "false",
		Identity: Identity{
			TelegramID: telegramID,
			FirstName:  getEnv("FINPRO_TELEGRAM_FIRST_NAME", ""),
			LastName:   getEnv("FINPRO_TELEGRAM_LAST_NAME", ""),
			Username:   getEnv("FINPRO_TELEGRAM_USERNAME", ""),
		},
	}
	if opts.Identity.TelegramID != 0 {
		cfg.Identity.TelegramID = opts.Identity.TelegramID
	}
	cfg.Identity.FirstName = firstNonEmpty(opts.Identity.FirstName, cfg.Identity.FirstName)
	cfg.Identity.LastName = firstNonEmpty(opts.Identity.LastName, cfg.Identity.LastName)
	cfg.Identity.Username = firstNonEmpty(opts.Identity.Username, cfg.Identity.Username)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the endpoint. Without an identity nothing is synced, so the
// endpoint may be left empty.
func (c Config) Validate() error {
	if c.Identity.TelegramID < 0 {
		return fmt.Errorf("telegram id must be positive")
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		if c.Identity.TelegramID > 0 {
			return fmt.Errorf("progress endpoint is required with a telegram id (--endpoint or FINPRO_PROGRESS_ENDPOINT)")
		}
		return nil
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("parse progress endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("progress endpoint must be an absolute http(s) url, got %q", c.Endpoint)
	}
	return nil
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. The default file is optional; an explicit
// one must exist.
func loadEnvFile(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return i, nil
}

func getInt64(key string, def int64) (int64, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return i, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must be non-negative", key)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
