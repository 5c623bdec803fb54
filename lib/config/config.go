package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds every runtime setting the bot reads at startup.
// All values come from environment variables; DB fields have local-dev
// defaults so the bot can run against a local PostgreSQL out of the box.
type Config struct {
	BotToken    string
	DBHost      string
	DBPort      string
	DBName      string
	DBUser      string
	DBPass      string
	SSLMode     string
	GroupChatID int64
	LogLevel    string
	PhotoDir    string
	IsLocal     bool
}

// GetOrDefault returns the value of the environment variable key, or
// defaultValue when it is unset.
func GetOrDefault(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

// Load reads the full configuration from the environment. It fails when
// BOT_TOKEN is missing, since the bot cannot start without it.
func Load() (Config, error) {
	var cfg Config

	cfg.BotToken = os.Getenv("BOT_TOKEN")
	if cfg.BotToken == "" {
		return cfg, fmt.Errorf("BOT_TOKEN is not set")
	}

	cfg.DBHost = GetOrDefault("DB_HOST", "localhost")
	cfg.DBPort = GetOrDefault("DB_PORT", "5432")
	cfg.DBName = GetOrDefault("DB_NAME", "obrabot")
	cfg.DBUser = GetOrDefault("DB_USER", "postgres")
	cfg.DBPass = GetOrDefault("DB_PASS", "")
	cfg.SSLMode = GetOrDefault("SSL_MODE", "disable")
	cfg.LogLevel = GetOrDefault("LOG_LEVEL", "info")
	cfg.PhotoDir = GetOrDefault("PHOTO_DIR", "fotos")
	cfg.IsLocal, _ = strconv.ParseBool(os.Getenv("IS_LOCAL"))

	if raw := os.Getenv("GROUP_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid GROUP_CHAT_ID %q: %w", raw, err)
		}
		cfg.GroupChatID = id
	}

	return cfg, nil
}
