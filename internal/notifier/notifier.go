package notifier

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mjaros/housing-monitor/internal/config"
)

// sendTimeout bounds each outbound notification post.
const sendTimeout = 10 * time.Second

// Notifier dispatches a notification to the single configured backend.
type Notifier interface {
	// Send delivers message with the given title. A non-2xx response or
	// transport failure is returned as an error; the caller logs it and
	// continues — delivery failure never aborts the monitoring cycle.
	Send(message, title string) error
}

// FromConfig constructs the backend selected by the config's Method tag.
// There is no fallback between backends: the method is fixed for the process
// lifetime and missing credentials are a construction error.
func FromConfig(cfg *config.Config) (Notifier, error) {
	switch cfg.Method {
	case config.MethodTelegram:
		return NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
	case config.MethodDiscord:
		return NewDiscord(cfg.Discord.WebhookURL)
	case config.MethodNtfy:
		return NewNtfy(cfg.Ntfy.Server, cfg.Ntfy.Topic)
	default:
		return nil, fmt.Errorf("unknown notification method %q", cfg.Method)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: sendTimeout}
}
