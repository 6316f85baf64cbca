package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mjaros/housing-monitor/internal/config"
	"github.com/mjaros/housing-monitor/internal/scraper"
)

// runInteractiveSetup prompts for a notification backend and its credentials
// on in, writing prompts to out. The resulting config uses environment
// defaults for the state file and interval; flag overrides are applied by the
// caller.
func runInteractiveSetup(in io.Reader, out io.Writer) (*config.Config, error) {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "=== Bad Leonfelden Housing Monitor ===")
	fmt.Fprintln(out, "Choose notification method:")
	fmt.Fprintln(out, "1. Telegram Bot (Recommended)")
	fmt.Fprintln(out, "2. Discord Webhook")
	fmt.Fprintln(out, "3. ntfy.sh")
	fmt.Fprintln(out)

	choice, err := prompt(scanner, out, "Enter choice (1-3): ")
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		TargetURL:     scraper.HousingURL,
		StateFile:     config.DefaultStateFile,
		CheckInterval: config.DefaultInterval,
	}

	// STATE_FILE and CHECK_INTERVAL still apply in interactive mode.
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.StateFile = v
	}
	if v := os.Getenv("CHECK_INTERVAL"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CHECK_INTERVAL must be an integer number of minutes: %w", err)
		}
		cfg.CheckInterval = time.Duration(minutes) * time.Minute
	}

	switch choice {
	case "1":
		fmt.Fprintln(out, "\nTelegram Bot Setup:")
		fmt.Fprintln(out, "1. Message @BotFather on Telegram")
		fmt.Fprintln(out, "2. Create a bot with /newbot and copy its token")
		fmt.Fprintln(out, "3. Message your bot, then visit: https://api.telegram.org/bot<TOKEN>/getUpdates")
		fmt.Fprintln(out, "4. Find your chat_id in the response")
		fmt.Fprintln(out)

		token, err := prompt(scanner, out, "Enter bot token: ")
		if err != nil {
			return nil, err
		}
		chatID, err := prompt(scanner, out, "Enter your chat ID: ")
		if err != nil {
			return nil, err
		}

		cfg.Method = config.MethodTelegram
		cfg.Telegram = config.TelegramConfig{Token: token, ChatID: chatID}

	case "2":
		fmt.Fprintln(out, "\nDiscord Webhook Setup:")
		fmt.Fprintln(out, "1. Open your Discord server settings")
		fmt.Fprintln(out, "2. Integrations → Webhooks → New Webhook")
		fmt.Fprintln(out, "3. Copy the webhook URL")
		fmt.Fprintln(out)

		webhookURL, err := prompt(scanner, out, "Enter Discord webhook URL: ")
		if err != nil {
			return nil, err
		}

		cfg.Method = config.MethodDiscord
		cfg.Discord = config.DiscordConfig{WebhookURL: webhookURL}

	case "3":
		topic, err := prompt(scanner, out, "Enter ntfy.sh topic name: ")
		if err != nil {
			return nil, err
		}

		cfg.Method = config.MethodNtfy
		cfg.Ntfy = config.NtfyConfig{Server: config.DefaultNtfyServer, Topic: topic}

	default:
		return nil, fmt.Errorf("invalid choice %q (must be 1-3)", choice)
	}

	return cfg, nil
}

// prompt writes a prompt and reads one trimmed line of input.
func prompt(scanner *bufio.Scanner, out io.Writer, text string) (string, error) {
	fmt.Fprint(out, text)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", fmt.Errorf("reading input: unexpected end of input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
