package notifier

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier sends messages through the Telegram Bot API.
type TelegramNotifier struct {
	token      string
	chatID     string
	apiBase    string
	httpClient *http.Client
}

// NewTelegram creates a Telegram notifier. Both the bot token and the chat ID
// are required.
func NewTelegram(token, chatID string) (*TelegramNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("telegram chat ID is required")
	}

	return &TelegramNotifier{
		token:      token,
		chatID:     chatID,
		apiBase:    telegramAPIBase,
		httpClient: newHTTPClient(),
	}, nil
}

// Send posts a form-encoded sendMessage call. Messages may contain simple
// HTML markup; link previews stay enabled so the housing page link unfurls.
// The title is not used — Telegram messages carry no separate title field.
func (n *TelegramNotifier) Send(message, title string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)

	form := url.Values{
		"chat_id":                  {n.chatID},
		"text":                     {message},
		"parse_mode":               {"HTML"},
		"disable_web_page_preview": {"false"},
	}

	resp, err := n.httpClient.PostForm(endpoint, form)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}
