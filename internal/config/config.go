// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	APIURL     string
	APITimeout time.Duration

	ConfirmSecret    string
	ConfirmExpiresIn time.Duration

	TelegramBotToken     string
	TelegramAllowedUsers []int64
	PublicURL            string

	LogLevel slog.Level
}

// Load reads .env (when present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")

	apiTimeout, err := getDuration("API_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	confirmExpiresIn, err := getDuration("CONFIRM_EXPIRES_IN", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}

	allowed, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USERS"))
	if err != nil {
		return Config{}, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	return Config{
		ServerPort:           ":" + strings.TrimPrefix(port, ":"),
		APIURL:               strings.TrimRight(getEnv("API_URL", "http://localhost:3000"), "/"),
		APITimeout:           apiTimeout,
		ConfirmSecret:        getEnv("CONFIRM_SECRET", "change-me-site-manager-confirm-secret"),
		ConfirmExpiresIn:     confirmExpiresIn,
		TelegramBotToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAllowedUsers: allowed,
		PublicURL:            strings.TrimRight(os.Getenv("PUBLIC_URL"), "/"),
		LogLevel:             level,
	}, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		slog.Error("Не удалось загрузить конфигурацию", "error", err)
		os.Exit(1)
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse %s: must be positive, got %s", key, d)
	}
	return d, nil
}

func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TELEGRAM_ALLOWED_USERS: %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
