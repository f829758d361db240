package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults mirror the backend's settings
const (
	DefaultAPIBaseURL = "http://localhost:8000/api"

	DefaultHealthPollInterval   = 15 * time.Second
	DefaultTelegramPollInterval = 3 * time.Second
)

type Config struct {
	APIBaseURL string

	TelegramBotToken string
	TelegramChatID   string

	// DesktopNotifications enables the native notification side channel
	DesktopNotifications bool

	HealthPollInterval   time.Duration
	TelegramPollInterval time.Duration

	LogPath string
}

type tomlConfig struct {
	APIBaseURL           string `toml:"api_url"`
	TelegramBotToken     string `toml:"telegram_bot_token"`
	TelegramChatID       string `toml:"telegram_chat_id"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
	HealthPollSeconds    int    `toml:"health_poll_seconds"`
	TelegramPollSeconds  int    `toml:"telegram_poll_seconds"`
}

// Load reads config from ~/.config/nexus/config.toml, then applies
// environment overrides (NEXUS_API_URL, TELEGRAM_BOT_TOKEN,
// TELEGRAM_CHAT_ID). Missing file or unreadable values fall back to
// defaults; Load never fails the caller.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:           DefaultAPIBaseURL,
		HealthPollInterval:   DefaultHealthPollInterval,
		TelegramPollInterval: DefaultTelegramPollInterval,
	}

	home, err := os.UserHomeDir()
	if err != nil {
		applyEnv(cfg)
		return cfg, nil // Use defaults
	}

	configDir := filepath.Join(home, ".config", "nexus")
	cfg.LogPath = filepath.Join(configDir, "nexus.log")
	tomlPath := filepath.Join(configDir, "config.toml")

	// Load TOML config if it exists
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			applyFile(cfg, tc)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyFile(cfg *Config, tc tomlConfig) {
	if tc.APIBaseURL != "" {
		cfg.APIBaseURL = tc.APIBaseURL
	}
	cfg.TelegramBotToken = tc.TelegramBotToken
	cfg.TelegramChatID = tc.TelegramChatID
	cfg.DesktopNotifications = tc.DesktopNotifications
	if tc.HealthPollSeconds > 0 {
		cfg.HealthPollInterval = time.Duration(tc.HealthPollSeconds) * time.Second
	}
	if tc.TelegramPollSeconds > 0 {
		cfg.TelegramPollInterval = time.Duration(tc.TelegramPollSeconds) * time.Second
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NEXUS_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramBotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.TelegramChatID = v
	}
}

// TelegramConfigured reports whether the bot integration can run
func (c *Config) TelegramConfigured() bool {
	return c.TelegramBotToken != ""
}
