package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"sciencehub-backend/internal/logger"
)

// Notifier delivers human-readable messages to an external webhook.
// Delivery is best-effort: every failure mode (missing configuration,
// transport error, non-2xx response) is logged and swallowed, so a
// broken messaging endpoint can never fail a registration.
type Notifier struct {
	client     *http.Client
	webhookURL string
	logger     *logger.Logger
}

func NewNotifier(client *http.Client, webhookURL string, log *logger.Logger) *Notifier {
	return &Notifier{
		client:     client,
		webhookURL: webhookURL,
		logger:     log,
	}
}

// Send posts the message text to the configured webhook. It never
// returns an error; callers fire it off a goroutine and move on.
func (n *Notifier) Send(text string) {
	if n.webhookURL == "" {
		n.logger.Debug("NOTIFY", "webhook URL not configured, dropping message")
		return
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		n.logger.Error("NOTIFY", fmt.Sprintf("failed to encode message: %v", err))
		return
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		n.logger.Error("NOTIFY", fmt.Sprintf("webhook delivery failed: %v", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.logger.Error("NOTIFY", fmt.Sprintf("webhook returned status %d", resp.StatusCode))
		return
	}

	n.logger.LogNotify(n.webhookURL, "message delivered")
}
