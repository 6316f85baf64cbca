package notifier

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mjaros/housing-monitor/internal/config"
)

// NtfyNotifier publishes messages to an ntfy topic.
type NtfyNotifier struct {
	server     string
	topic      string
	httpClient *http.Client
}

// NewNtfy creates an ntfy notifier. The topic is required; an empty server
// falls back to the public ntfy.sh host.
func NewNtfy(server, topic string) (*NtfyNotifier, error) {
	if topic == "" {
		return nil, fmt.Errorf("ntfy topic is required")
	}
	if server == "" {
		server = config.DefaultNtfyServer
	}

	return &NtfyNotifier{
		server:     strings.TrimRight(server, "/"),
		topic:      topic,
		httpClient: newHTTPClient(),
	}, nil
}

// Send posts the raw message body to {server}/{topic}. The title, priority,
// and tags travel as headers per the ntfy publish protocol.
func (n *NtfyNotifier) Send(message, title string) error {
	endpoint := n.server + "/" + n.topic

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Title", title)
	req.Header.Set("Priority", "default")
	req.Header.Set("Tags", "house,announcement")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ntfy error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}
