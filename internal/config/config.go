// Package config loads server configuration from the environment, with a
// .env file applied first when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	ListenAddr  string
	DatabaseURL string
	RedisURL    string
	TokenSecret string
	LogLevel    string

	NumDecks         int
	StartingChips    int
	BetUnit          int
	DealerHitsSoft17 bool

	SessionIdleTimeout time.Duration
}

// Load reads configuration from the environment. Missing values fall back
// to development defaults; DATABASE_URL and REDIS_URL default to empty,
// which disables persistence and action history.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		logrus.Info("loaded environment from .env")
	}

	return Config{
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		TokenSecret: getEnv("TOKEN_SECRET", "dev-secret-change-me"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		NumDecks:         getEnvInt("NUM_DECKS", 6),
		StartingChips:    getEnvInt("STARTING_CHIPS", 1000),
		BetUnit:          getEnvInt("BET_UNIT", 25),
		DealerHitsSoft17: getEnvBool("DEALER_HITS_SOFT_17", false),

		SessionIdleTimeout: getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid integer %q, using %d", v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid boolean %q, using %v", v, fallback)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid duration %q, using %s", v, fallback)
		return fallback
	}
	return d
}
