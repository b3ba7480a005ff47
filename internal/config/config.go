package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	HTTPAddr       string
	Environment    string
	MigrationsPath string

	JWTSecret string
	JWTTTL    time.Duration

	// Upper bound on waiting for a slot row lock inside a booking transaction.
	LockTimeout time.Duration

	// Bootstrap admin account created at startup when not present.
	AdminName     string
	AdminEmail    string
	AdminPassword string

	// Optional booking notifications.
	TelegramToken  string
	TelegramChatID int64
}

func Load() (*Config, error) {
	// A missing .env file is fine, plain environment variables still apply.
	if err := godotenv.Load(".env"); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		Environment:    getEnv("ENV", "development"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminName:      getEnv("ADMIN_NAME", "Administrator"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	var err error
	if cfg.JWTTTL, err = getEnvDuration("JWT_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.LockTimeout, err = getEnvDuration("LOCK_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.TelegramChatID, err = getEnvInt64("TELEGRAM_ADMIN_CHAT_ID", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return parsed, nil
}
