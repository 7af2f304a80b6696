package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	LogJSON     bool

	DatabaseURL string

	RedisURL       string
	UnreadCacheTTL time.Duration

	SessionTTL time.Duration

	CORSOrigins string

	RealtimeAddr           string
	RealtimePingPeriod     time.Duration
	RealtimePongWait       time.Duration
	RealtimeWriteTimeout   time.Duration
	RealtimeSendBuffer     int
	RealtimeAllowedOrigins []string

	ResendAPIKey string
	FromEmail    string
	AppURL       string

	DefaultLocale string
	LocalesPath   string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogJSON:     getBoolEnv("LOG_JSON", false),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:       getEnv("REDIS_URL", ""),
		UnreadCacheTTL: getDurationEnv("UNREAD_CACHE_TTL", 2*time.Minute),

		SessionTTL: getDurationEnv("SESSION_TTL", 30*24*time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		RealtimeAddr:           getEnv("REALTIME_ADDR", ":8081"),
		RealtimePingPeriod:     getDurationEnv("REALTIME_PING_PERIOD", 54*time.Second),
		RealtimePongWait:       getDurationEnv("REALTIME_PONG_WAIT", 60*time.Second),
		RealtimeWriteTimeout:   getDurationEnv("REALTIME_WRITE_TIMEOUT", 10*time.Second),
		RealtimeSendBuffer:     getIntEnv("REALTIME_SEND_BUFFER", 32),
		RealtimeAllowedOrigins: getListEnv("REALTIME_ALLOWED_ORIGINS", nil),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		AppURL:       getEnv("APP_URL", "http://localhost:5173"),

		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		LocalesPath:   getEnv("LOCALES_PATH", "locales"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
