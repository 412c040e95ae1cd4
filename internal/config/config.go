package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/log"
)

// Backends lists the accepted DATA_BACKEND values.
var Backends = []string{"memory", "file", "sqlite", "azure", "postgres"}

type Config struct {
	// HTTP server
	Port     string
	LogLevel string

	// Storage
	DataBackend   string
	DataDirectory string
	SQLiteDBPath  string

	AzureConnectionString string
	AzureServiceURL       string
	AzureContainer        string

	DatabaseURL string

	// AMQP; notifications are only logged when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Reminder delivery
	TelegramBotToken string
	TelegramChatID   int64

	AnalysisCacheTTL time.Duration
	ShutdownTimeout  time.Duration
}

func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataBackend:   getEnv("DATA_BACKEND", "file"),
		DataDirectory: getEnv("DATA_DIRECTORY", "./data"),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),

		AzureConnectionString: getEnv("AZURE_STORAGE_CONNECTION_STRING", ""),
		AzureServiceURL:       getEnv("AZURE_BLOB_SERVICE_URL", ""),
		AzureContainer:        getEnv("AZURE_BLOB_CONTAINER", "fintrack"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "reminder_notifications"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),

		AnalysisCacheTTL: getEnvDuration("ANALYSIS_CACHE_TTL", time.Minute),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate reports every problem at once rather than stopping at the first.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if !slices.Contains(Backends, c.DataBackend) {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, Backends))
	}

	switch c.DataBackend {
	case "file":
		if c.DataDirectory == "" {
			errs = append(errs, "data directory cannot be empty when using file backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	case "azure":
		if c.AzureConnectionString == "" && c.AzureServiceURL == "" {
			errs = append(errs, "either AZURE_STORAGE_CONNECTION_STRING or AZURE_BLOB_SERVICE_URL must be provided for azure backend")
		}
		if c.AzureServiceURL != "" && c.AzureConnectionString == "" {
			if u, err := url.Parse(c.AzureServiceURL); err != nil || (u.Scheme != "https" && u.Scheme != "http") {
				errs = append(errs, fmt.Sprintf("invalid Azure blob service URL '%s'", c.AzureServiceURL))
			}
		}
		if c.AzureContainer == "" {
			errs = append(errs, "Azure blob container cannot be empty when using azure backend")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when using postgres backend")
		} else if u, err := url.Parse(c.DatabaseURL); err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
			errs = append(errs, "invalid DATABASE_URL: scheme must be 'postgres' or 'postgresql'")
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.TelegramBotToken != "" && c.TelegramChatID == 0 {
		errs = append(errs, "TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}

	if c.AnalysisCacheTTL < 0 || c.AnalysisCacheTTL > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid analysis cache TTL %v: must be between 0 and 24 hours", c.AnalysisCacheTTL))
	}
	if c.ShutdownTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
