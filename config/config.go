package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Config holds all configuration for the sync service
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Remote   RemoteConfig
	Session  SessionConfig
	Sync     SyncConfig
}

type AppConfig struct {
	Port               string
	GinMode            string
	Debug              bool
	CORSOrigins        []string
	LoginRatePerMinute int
}

type DatabaseConfig struct {
	Driver   string
	DSN      string
	LogLevel string
}

type RemoteConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ProbeHost    string
	ProbeTimeout time.Duration
}

type SessionConfig struct {
	File   string
	Secret string
}

type SyncConfig struct {
	FanOutLimit       int
	OutboxEnabled     bool
	OutboxInterval    time.Duration
	OutboxMaxAttempts int
}

// Load loads configuration from .env and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8787"),
			GinMode:            getEnv("GIN_MODE", "debug"),
			Debug:              getBool("APP_DEBUG", false),
			CORSOrigins:        getList("CORS_ORIGINS", []string{"http://localhost:8888", "http://127.0.0.1:8888"}),
			LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			DSN:      getEnv("DB_DSN", "pos-cache.db"),
			LogLevel: strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		},
		Remote: RemoteConfig{
			BaseURL:      strings.TrimRight(getEnv("REMOTE_BASE_URL", "http://localhost:8000/api/v1"), "/"),
			Timeout:      getDuration("REMOTE_TIMEOUT", 0),
			ProbeHost:    getEnv("PROBE_HOST", "google.com"),
			ProbeTimeout: getDuration("PROBE_TIMEOUT", 3*time.Second),
		},
		Session: SessionConfig{
			File:   getEnv("SESSION_FILE", "session.jwt"),
			Secret: getEnv("SESSION_SECRET", ""),
		},
		Sync: SyncConfig{
			FanOutLimit:       getInt("SYNC_FANOUT_LIMIT", 4),
			OutboxEnabled:     getBool("OUTBOX_ENABLED", true),
			OutboxInterval:    getDuration("OUTBOX_INTERVAL", 30*time.Second),
			OutboxMaxAttempts: getInt("OUTBOX_MAX_ATTEMPTS", 10),
		},
	}

	if cfg.Session.Secret == "" {
		utils.ErrorLogger.Println("Warning: SESSION_SECRET not set, using development secret")
		cfg.Session.Secret = "restaurant-pos-dev-session"
	}
	if cfg.Sync.FanOutLimit < 1 {
		cfg.Sync.FanOutLimit = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
