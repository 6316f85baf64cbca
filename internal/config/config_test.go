package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{"telegram", MethodTelegram, false},
		{"discord", MethodDiscord, false},
		{"ntfy", MethodNtfy, false},
		{"email", "", true},
		{"Telegram", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromEnv_Telegram(t *testing.T) {
	t.Setenv("NOTIFICATION_METHOD", "telegram")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "456")
	t.Setenv("STATE_FILE", "/tmp/test_state.json")
	t.Setenv("CHECK_INTERVAL", "10")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() failed: %v", err)
	}

	if cfg.Method != MethodTelegram {
		t.Errorf("Method = %q, want telegram", cfg.Method)
	}
	if cfg.Telegram.Token != "123:abc" || cfg.Telegram.ChatID != "456" {
		t.Errorf("Telegram credentials not loaded: %+v", cfg.Telegram)
	}
	if cfg.StateFile != "/tmp/test_state.json" {
		t.Errorf("StateFile = %q", cfg.StateFile)
	}
	if cfg.CheckInterval != 10*time.Minute {
		t.Errorf("CheckInterval = %v, want 10m", cfg.CheckInterval)
	}
}

func TestFromEnv_TelegramMissingCredentials(t *testing.T) {
	t.Setenv("NOTIFICATION_METHOD", "telegram")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	if _, err := FromEnv(); err == nil {
		t.Error("FromEnv() expected error for missing TELEGRAM_CHAT_ID, got nil")
	}
}

func TestFromEnv_Discord(t *testing.T) {
	t.Setenv("NOTIFICATION_METHOD", "discord")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/token")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() failed: %v", err)
	}
	if cfg.Method != MethodDiscord {
		t.Errorf("Method = %q, want discord", cfg.Method)
	}
	if cfg.Discord.WebhookURL != "https://discord.com/api/webhooks/1/token" {
		t.Errorf("WebhookURL = %q", cfg.Discord.WebhookURL)
	}
}

func TestFromEnv_NtfyDefaults(t *testing.T) {
	t.Setenv("NOTIFICATION_METHOD", "ntfy")
	t.Setenv("NTFY_TOPIC", "housing-updates")
	t.Setenv("NTFY_SERVER", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() failed: %v", err)
	}
	if cfg.Ntfy.Server != DefaultNtfyServer {
		t.Errorf("Ntfy.Server = %q, want default %q", cfg.Ntfy.Server, DefaultNtfyServer)
	}
	if cfg.StateFile != DefaultStateFile {
		t.Errorf("StateFile = %q, want default %q", cfg.StateFile, DefaultStateFile)
	}
	if cfg.CheckInterval != DefaultInterval {
		t.Errorf("CheckInterval = %v, want default %v", cfg.CheckInterval, DefaultInterval)
	}
}

func TestFromEnv_NtfyMissingTopic(t *testing.T) {
	t.Setenv("NOTIFICATION_METHOD", "ntfy")
	t.Setenv("NTFY_TOPIC", "")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("FromEnv() expected error for missing NTFY_TOPIC, got nil")
	}
	if !strings.Contains(err.Error(), "NTFY_TOPIC") {
		t.Errorf("error should name the missing variable, got: %v", err)
	}
}

func TestFromEnv_InvalidInterval(t *testing.T) {
	t.Setenv("NOTIFICATION_METHOD", "ntfy")
	t.Setenv("NTFY_TOPIC", "housing")
	t.Setenv("CHECK_INTERVAL", "half-an-hour")

	if _, err := FromEnv(); err == nil {
		t.Error("FromEnv() expected error for non-integer CHECK_INTERVAL, got nil")
	}
}

func TestFromEnvWithMethod_Override(t *testing.T) {
	t.Setenv("NOTIFICATION_METHOD", "telegram")
	t.Setenv("NTFY_TOPIC", "housing")

	cfg, err := FromEnvWithMethod("ntfy")
	if err != nil {
		t.Fatalf("FromEnvWithMethod() failed: %v", err)
	}
	if cfg.Method != MethodNtfy {
		t.Errorf("Method = %q, want override ntfy", cfg.Method)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Method:        MethodNtfy,
			TargetURL:     "https://example.com",
			StateFile:     "state.json",
			CheckInterval: 30 * time.Minute,
			Ntfy:          NtfyConfig{Server: DefaultNtfyServer, Topic: "housing"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid ntfy config", func(c *Config) {}, false},
		{"zero interval", func(c *Config) { c.CheckInterval = 0 }, true},
		{"negative interval", func(c *Config) { c.CheckInterval = -time.Minute }, true},
		{"empty state file", func(c *Config) { c.StateFile = "" }, true},
		{"empty target URL", func(c *Config) { c.TargetURL = "" }, true},
		{"missing ntfy topic", func(c *Config) { c.Ntfy.Topic = "" }, true},
		{"unknown method", func(c *Config) { c.Method = "pigeon" }, true},
		{
			"telegram without chat ID",
			func(c *Config) {
				c.Method = MethodTelegram
				c.Telegram = TelegramConfig{Token: "123:abc"}
			},
			true,
		},
		{
			"discord without webhook",
			func(c *Config) { c.Method = MethodDiscord },
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NtfyServerDefaulted(t *testing.T) {
	cfg := &Config{
		Method:        MethodNtfy,
		TargetURL:     "https://example.com",
		StateFile:     "state.json",
		CheckInterval: time.Minute,
		Ntfy:          NtfyConfig{Topic: "housing"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if cfg.Ntfy.Server != DefaultNtfyServer {
		t.Errorf("Ntfy.Server = %q, want defaulted %q", cfg.Ntfy.Server, DefaultNtfyServer)
	}
}
