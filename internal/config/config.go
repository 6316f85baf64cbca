// Package config loads and validates the monitor configuration.
//
// The notification backend is an explicit tagged Method chosen once at
// construction time. Validation rejects any configuration whose selected
// backend is missing required credentials, so a misconfiguration can never
// silently route notifications to the wrong backend or to none.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mjaros/housing-monitor/internal/scraper"
)

// Method selects the notification backend.
type Method string

const (
	MethodTelegram Method = "telegram"
	MethodDiscord  Method = "discord"
	MethodNtfy     Method = "ntfy"
)

// ParseMethod validates a backend name from the environment or a flag.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodTelegram, MethodDiscord, MethodNtfy:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown notification method %q (must be telegram, discord, or ntfy)", s)
	}
}

const (
	DefaultStateFile  = "housing_monitor_state.json"
	DefaultInterval   = 30 * time.Minute
	DefaultNtfyServer = "https://ntfy.sh"
)

// TelegramConfig holds bot credentials for the telegram backend.
type TelegramConfig struct {
	Token  string
	ChatID string
}

// DiscordConfig holds the webhook URL for the discord backend.
type DiscordConfig struct {
	WebhookURL string
}

// NtfyConfig holds the publish target for the ntfy backend.
type NtfyConfig struct {
	Server string
	Topic  string
}

// Config is the immutable process configuration, assembled once at startup
// from environment variables, flags, or interactive input.
type Config struct {
	Method        Method
	TargetURL     string
	StateFile     string
	CheckInterval time.Duration

	Telegram TelegramConfig
	Discord  DiscordConfig
	Ntfy     NtfyConfig
}

// LoadDotenv loads a .env file from the working directory into the process
// environment. A missing file is not an error.
func LoadDotenv() {
	_ = godotenv.Load()
}

// getenv returns the value of key, or def when unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// FromEnv builds a Config from environment variables. Per-backend
// credentials are read for the selected method only. The result is validated.
func FromEnv() (*Config, error) {
	return FromEnvWithMethod("")
}

// FromEnvWithMethod builds a Config from environment variables with an
// explicit method override (from a flag). An empty override falls back to
// NOTIFICATION_METHOD, then to telegram.
func FromEnvWithMethod(methodName string) (*Config, error) {
	if methodName == "" {
		methodName = getenv("NOTIFICATION_METHOD", string(MethodTelegram))
	}
	method, err := ParseMethod(methodName)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Method:        method,
		TargetURL:     scraper.HousingURL,
		StateFile:     getenv("STATE_FILE", DefaultStateFile),
		CheckInterval: DefaultInterval,
	}

	if v := os.Getenv("CHECK_INTERVAL"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CHECK_INTERVAL must be an integer number of minutes: %w", err)
		}
		cfg.CheckInterval = time.Duration(minutes) * time.Minute
	}

	switch method {
	case MethodTelegram:
		cfg.Telegram = TelegramConfig{
			Token:  os.Getenv("TELEGRAM_TOKEN"),
			ChatID: os.Getenv("TELEGRAM_CHAT_ID"),
		}
	case MethodDiscord:
		cfg.Discord = DiscordConfig{
			WebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
		}
	case MethodNtfy:
		cfg.Ntfy = NtfyConfig{
			Server: getenv("NTFY_SERVER", DefaultNtfyServer),
			Topic:  os.Getenv("NTFY_TOPIC"),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the selected backend has its required credentials and
// that the general settings are usable. A failure here is fatal before the
// monitoring loop starts.
func (c *Config) Validate() error {
	if c.StateFile == "" {
		return fmt.Errorf("state file path must not be empty")
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("check interval must be positive, got %s", c.CheckInterval)
	}
	if c.TargetURL == "" {
		return fmt.Errorf("target URL must not be empty")
	}

	switch c.Method {
	case MethodTelegram:
		if c.Telegram.Token == "" || c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram requires TELEGRAM_TOKEN and TELEGRAM_CHAT_ID")
		}
	case MethodDiscord:
		if c.Discord.WebhookURL == "" {
			return fmt.Errorf("discord requires DISCORD_WEBHOOK_URL")
		}
	case MethodNtfy:
		if c.Ntfy.Topic == "" {
			return fmt.Errorf("ntfy requires NTFY_TOPIC")
		}
		if c.Ntfy.Server == "" {
			c.Ntfy.Server = DefaultNtfyServer
		}
	default:
		return fmt.Errorf("unknown notification method %q", c.Method)
	}

	return nil
}
