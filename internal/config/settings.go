// internal/config/settings.go
package config

import (
	"os"
	"strconv"
	"time"
)

// Settings holds process-level configuration read from the environment.
type Settings struct {
	LogLevel         string
	RedisAddr        string
	RedisDB          int
	HistoryQueue     string
	DatabaseURL      string
	Seed             int64
	HistoryBatchSize int
	HistoryFlush     time.Duration
	Inactivity       time.Duration
	// RulesJSON holds rule overrides as a JSON object, e.g. {"startingMoney": 80}.
	RulesJSON string
}

// Load reads Settings from environment variables:
//   - LOG_LEVEL (default "info")
//   - REDIS_ADDR (empty disables action history publishing)
//   - REDIS_DB (default 0)
//   - HISTORY_QUEUE_NAME (default "modernart_actions")
//   - DATABASE_URL (empty disables result persistence)
//   - GAME_SEED (default: current time)
//   - HISTORIAN_BATCH_SIZE (default 20)
//   - HISTORIAN_FLUSH_MS (default 500)
//   - GAME_INACTIVITY_TIMEOUT_SEC (default 600)
//   - GAME_RULES (optional JSON rule overrides)
func Load() Settings {
	return Settings{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		HistoryQueue:     getEnv("HISTORY_QUEUE_NAME", "modernart_actions"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		Seed:             getEnvInt64("GAME_SEED", time.Now().UnixNano()),
		HistoryBatchSize: getEnvInt("HISTORIAN_BATCH_SIZE", 20),
		HistoryFlush:     time.Duration(getEnvInt("HISTORIAN_FLUSH_MS", 500)) * time.Millisecond,
		Inactivity:       time.Duration(getEnvInt("GAME_INACTIVITY_TIMEOUT_SEC", 600)) * time.Second,
		RulesJSON:        getEnv("GAME_RULES", ""),
	}
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getEnvInt64(key string, def int64) int64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}
