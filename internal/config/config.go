// Package config loads the process configuration from environment variables,
// with an optional .env file for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Gmail    GmailConfig
	Notion   NotionConfig
	Telegram TelegramConfig
	Sync     SyncConfig
	LogLevel string
}

type GmailConfig struct {
	CredentialsPath string
	TokenPath       string
	Senders         string   // Gmail from:(...) expression
	Subjects        []string // one query per subject filter
}

type NotionConfig struct {
	Token      string
	DatabaseID string
	PageSize   int // recent-records window size; bounds duplicate detection
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

type SyncConfig struct {
	Lookback   time.Duration // mailbox lookback window
	Until      time.Duration // near edge of the window, usually 0
	Timezone   string        // zone implied when an alert omits its token
	RunTimeout time.Duration
}

// Load reads the configuration. A .env file in the working directory is
// loaded first if present; real environment variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Gmail: GmailConfig{
			CredentialsPath: getEnv("GMAIL_CREDS_FILE_PATH", "secrets/credentials.json"),
			TokenPath:       getEnv("GMAIL_TOKEN_FILE_PATH", "secrets/gmail_token.json"),
			Senders:         getEnv("ALERT_SENDERS", "paylah.alert@dbs.com OR ibanking.alert@dbs.com"),
			Subjects:        getEnvList("ALERT_SUBJECTS", []string{"card transaction alert", "alerts"}),
		},
		Notion: NotionConfig{
			Token:      os.Getenv("NOTION_API_TOKEN"),
			DatabaseID: os.Getenv("NOTION_DB_ID"),
			PageSize:   getEnvInt("NOTION_RECENT_PAGE_SIZE", 50),
		},
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		Sync: SyncConfig{
			Lookback:   getEnvDuration("ALERTS_LOOKBACK", 48*time.Hour),
			Until:      getEnvDuration("ALERTS_UNTIL", 0),
			Timezone:   getEnv("ALERTS_TIMEZONE", "Asia/Singapore"),
			RunTimeout: getEnvDuration("SYNC_RUN_TIMEOUT", 10*time.Minute),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	var missing []string
	if cfg.Notion.Token == "" {
		missing = append(missing, "NOTION_API_TOKEN")
	}
	if cfg.Notion.DatabaseID == "" {
		missing = append(missing, "NOTION_DB_ID")
	}
	if cfg.Telegram.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}

	chatStr := os.Getenv("CHAT_ID")
	if chatStr == "" {
		missing = append(missing, "CHAT_ID")
	} else {
		chatID, err := strconv.ParseInt(chatStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("Load: invalid CHAT_ID %q: %w", chatStr, err)
		}
		cfg.Telegram.ChatID = chatID
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("Load: missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// Location resolves the configured default alert timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Sync.Timezone)
	if err != nil {
		return nil, fmt.Errorf("Location: %w", err)
	}
	return loc, nil
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
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
