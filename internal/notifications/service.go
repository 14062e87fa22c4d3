package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sift/internal/config"
)

const userAgent = "Sift-Go/0.1.0"

// Service defines the notification surface exposed to the dispatcher.
type Service interface {
	NotifyOrganized(ctx context.Context, filename, folder string) error
	NotifyGivingUp(ctx context.Context, path string, attempts int) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

// NewNop returns a service that silently drops every notification.
func NewNop() Service {
	return noopService{}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyOrganized(ctx context.Context, filename, folder string) error {
	filename = strings.TrimSpace(filename)
	folder = strings.TrimSpace(folder)
	data := payload{
		title:   "Sift - Organized",
		message: fmt.Sprintf("Filed %s into %s", filename, folder),
		tags:    []string{"sift", "organized"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyGivingUp(ctx context.Context, path string, attempts int) error {
	path = strings.TrimSpace(path)
	data := payload{
		title:    "Sift - Giving Up",
		message:  fmt.Sprintf("Gave up on %s after %d attempts\nManual review required", path, attempts),
		tags:     []string{"sift", "giving-up", "review"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(err.Error())
	} else {
		builder.WriteString("unknown error")
	}

	data := payload{
		title:    "Sift - Error",
		message:  builder.String(),
		tags:     []string{"sift", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Sift - Test",
		message:  "Notification system test",
		tags:     []string{"sift", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyOrganized(context.Context, string, string) error { return nil }
func (noopService) NotifyGivingUp(context.Context, string, int) error     { return nil }
func (noopService) NotifyError(context.Context, error, string) error      { return nil }
func (noopService) TestNotification(context.Context) error                { return nil }
