package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"bneibrit/persistence"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   persistence.DatabaseConfig
	Document   DocumentConfig
	Compliance ComplianceConfig
	Archive    ArchiveConfig
	Tracing    TracingConfig
}

type AppConfig struct {
	Port         string
	LogFormat    string
	LogLevel     string
	RateCacheTTL time.Duration
}

type DocumentConfig struct {
	FontDir       string
	DefaultLocale string
}

type ComplianceConfig struct {
	DueDay       int
	ReminderDays int
	PolicyCron   string
}

type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

func (c ArchiveConfig) Enabled() bool {
	return c.Endpoint != ""
}

type TracingConfig struct {
	Enabled bool
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cacheTTL, err := time.ParseDuration(getEnv("RATE_CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_CACHE_TTL: %w", err)
	}
	dueDay, err := getIntEnv("DEPOSIT_DUE_DAY", 15)
	if err != nil {
		return nil, err
	}
	if dueDay < 1 || dueDay > 28 {
		return nil, fmt.Errorf("DEPOSIT_DUE_DAY must be within [1, 28], got %d", dueDay)
	}
	reminderDays, err := getIntEnv("DEPOSIT_REMINDER_DAYS", 5)
	if err != nil {
		return nil, err
	}
	tracingEnabled, err := strconv.ParseBool(getEnv("TRACING_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Port:         getEnv("APP_PORT", "8080"),
			LogFormat:    getEnv("LOG_FORMAT", "text"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			RateCacheTTL: cacheTTL,
		},
		Database: persistence.DatabaseConfig{
			DriverType: getEnv("DB_DRIVER", persistence.DriverSqlite),
			DriverArgs: getEnv("DB_ARGS", "bneibrit.db"),
			LogMode:    getEnv("APP_ENV", "development") != "production",
		},
		Document: DocumentConfig{
			FontDir:       getEnv("FONT_DIR", "fonts"),
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
		Compliance: ComplianceConfig{
			DueDay:       dueDay,
			ReminderDays: reminderDays,
			PolicyCron:   getEnv("DEPOSIT_POLICY_CRON", "0 0 6 * * *"),
		},
		Archive: ArchiveConfig{
			Endpoint:  os.ExpandEnv(os.Getenv("OSS_ENDPOINT")),
			AccessKey: os.Getenv("OSS_ACCESS_KEY"),
			SecretKey: os.Getenv("OSS_SECRET_KEY"),
			Bucket:    getEnv("OSS_BUCKET", "bneibrit"),
		},
		Tracing: TracingConfig{Enabled: tracingEnabled},
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
