package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every runtime setting the API reads from the environment.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTExpire string

	LogLevel  string
	LogFormat string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LoginRateLimit  int
	LoginRateWindow time.Duration

	RedactInternalErrors bool
	RunMigrations        bool
}

// LoadDotEnv reads a .env file into the process environment.
// The file is optional.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}
}

// Load builds a Config from environment variables.
func Load() Config {
	return Config{
		Port:        GetString("APP_PORT", "8001"),
		DatabaseURL: GetString("DATABASE_URL", ""),

		JWTSecret: firstOf("JWT_SECRET", "SECRET"),
		JWTExpire: firstOf("JWT_EXPIRE", "TOKEN_EXPIRY"),

		LogLevel:  GetString("LOG_LEVEL", "info"),
		LogFormat: GetString("LOG_FORMAT", "console"),

		RedisAddr:     GetString("REDIS_ADDR", ""),
		RedisPassword: GetString("REDIS_PASSWORD", ""),
		RedisDB:       GetInt("REDIS_DB", 0),

		LoginRateLimit:  GetInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: GetDuration("LOGIN_RATE_WINDOW", time.Minute),

		RedactInternalErrors: GetBool("REDACT_INTERNAL_ERRORS", false),
		RunMigrations:        GetBool("RUN_MIGRATIONS", true),
	}
}

// firstOf returns the first non-empty value among the given keys.
func firstOf(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// GetString returns the value of key, or fallback when it is unset or empty.
func GetString(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}

func GetInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		warnFallback(key, val, fallback)
		return fallback
	}
	return n
}

func GetBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		warnFallback(key, val, fallback)
		return fallback
	}
	return b
}

// GetDuration parses Go duration syntax ("90s", "15m", "24h"). Units
// larger than an hour are not accepted.
func GetDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		warnFallback(key, val, fallback)
		return fallback
	}
	return d
}

func warnFallback(key, val string, fallback interface{}) {
	log.Warn().Str("key", key).Str("value", val).Interface("using", fallback).Msg("invalid config value, using default")
}
