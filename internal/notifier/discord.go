package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// embedColorGreen is the accent color for housing update embeds.
const embedColorGreen = 0x00ff00

// DiscordNotifier posts messages to a Discord webhook as a single embed.
type DiscordNotifier struct {
	webhookURL string
	httpClient *http.Client
	now        func() time.Time
}

// discordEmbed is the subset of Discord's embed object the monitor uses.
type discordEmbed struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Color       int                `json:"color"`
	Timestamp   string             `json:"timestamp"`
	Footer      discordEmbedFooter `json:"footer"`
}

type discordEmbedFooter struct {
	Text string `json:"text"`
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// NewDiscord creates a Discord notifier for the given webhook URL.
func NewDiscord(webhookURL string) (*DiscordNotifier, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("discord webhook URL is required")
	}

	return &DiscordNotifier{
		webhookURL: webhookURL,
		httpClient: newHTTPClient(),
		now:        time.Now,
	}, nil
}

// Send posts one embed carrying the title and message to the webhook.
func (n *DiscordNotifier) Send(message, title string) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{{
			Title:       title,
			Description: message,
			Color:       embedColorGreen,
			Timestamp:   n.now().UTC().Format(time.RFC3339),
			Footer:      discordEmbedFooter{Text: "Bad Leonfelden Housing Monitor"},
		}},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	resp, err := n.httpClient.Post(n.webhookURL, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("discord webhook error (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}
