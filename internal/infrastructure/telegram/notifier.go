package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PromiseDetector/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier is the messaging-platform collaborator: it publishes audit
// digests to a chat and resolves stored media references to fetchable
// links. The core stores references opaquely and never calls FileLink
// itself.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)
var _ ports.MediaLinkResolver = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishDigest posts a Markdown message to the configured chat.
func (n *Notifier) PublishDigest(ctx context.Context, digest string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", digest)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

// FileLink exchanges a stored media reference (a bot API file id) for a
// downloadable URL via getFile. This is the read-time handoff for
// evidence artifacts.
func (n *Notifier) FileLink(ctx context.Context, mediaRef string) (string, error) {
	if n.botToken == "" || n.client == nil {
		return "", fmt.Errorf("telegram notifier misconfigured")
	}
	if strings.TrimSpace(mediaRef) == "" {
		return "", fmt.Errorf("media reference is required")
	}

	endpoint := fmt.Sprintf("%s/bot%s/getFile?file_id=%s", n.apiBase, n.botToken, url.QueryEscape(mediaRef))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("telegram error: %s", resp.Status)
	}

	var payload struct {
		OK     bool `json:"ok"`
		Result struct {
			FilePath string `json:"file_path"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if !payload.OK || payload.Result.FilePath == "" {
		return "", fmt.Errorf("telegram getFile rejected reference")
	}

	return fmt.Sprintf("%s/file/bot%s/%s", n.apiBase, n.botToken, payload.Result.FilePath), nil
}
