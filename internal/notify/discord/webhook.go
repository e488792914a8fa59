package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"portos/internal/port"
)

// WebhookNotifier posts portal events to a Discord webhook. Delivery is best
// effort; a failed post is logged and dropped.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier creates a notifier for the given webhook URL. An empty
// URL yields a notifier that only logs.
func NewWebhookNotifier(url string) port.Notifier {
	return &WebhookNotifier{
		url: url,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (n *WebhookNotifier) Success(ctx context.Context, message string) {
	n.post(ctx, "✅ "+message)
}

func (n *WebhookNotifier) Error(ctx context.Context, message string) {
	n.post(ctx, "❌ "+message)
}

func (n *WebhookNotifier) post(ctx context.Context, content string) {
	if n.url == "" {
		log.Printf("notify: %s", content)
		return
	}

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		log.Printf("notify: marshaling payload: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		log.Printf("notify: creating request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		log.Printf("notify: posting webhook: %v", err)
		return
	}
	_ = resp.Body.Close()
}
