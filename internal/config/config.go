package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     int
	LogLevel string

	NatsURL     string
	NatsToken   string
	DatabaseURL string
	RedisAddr   string

	CacheTTL           time.Duration
	EligibilityLatency time.Duration
	DecisionLatency    time.Duration
	VerifyLatency      time.Duration

	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     envInt("LOANPILOT_PORT", 8650),
		LogLevel: envStr("LOG_LEVEL", "info"),

		NatsURL:     envStr("NATS_URL", ""),
		NatsToken:   envStr("NATS_TOKEN", ""),
		DatabaseURL: envStr("DATABASE_URL", ""),
		RedisAddr:   envStr("REDIS_ADDR", ""),

		CacheTTL:           envMillis("CACHE_TTL_MS", 15*60*1000),
		EligibilityLatency: envMillis("ELIGIBILITY_LATENCY_MS", 2000),
		DecisionLatency:    envMillis("DECISION_LATENCY_MS", 1000),
		VerifyLatency:      envMillis("VERIFY_LATENCY_MS", 1000),

		AllowedOrigins: strings.Split(envStr("CORS_ALLOWED_ORIGINS", "*"), ","),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}
