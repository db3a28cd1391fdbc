// Package notifications delivers fire-and-forget push events via ntfy.
// Delivery is best-effort: a missing topic yields a noop service and callers
// never let a notification failure affect organizing.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pqsoccerboy17/downloads-organizer/internal/config"
)

const userAgent = "downloads-organizer/0.1.0"

// Service defines the notification surface exposed to the pipeline.
type Service interface {
	NotifyRunCompleted(ctx context.Context, kind string, moved, skipped, errored int, duration time.Duration) error
	NotifyRunFailed(ctx context.Context, kind string, err error) error
	NotifyReviewNeeded(ctx context.Context, filename, reason string) error
	TestNotification(ctx context.Context) error
}

// NewService builds an ntfy-backed service when a topic is configured,
// otherwise a noop implementation.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:     topic,
		client:       &http.Client{Timeout: timeout},
		runSummaries: cfg.Notifications.RunSummaries,
		errorAlerts:  cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint     string
	client       *http.Client
	runSummaries bool
	errorAlerts  bool
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, kind string, moved, skipped, errored int, duration time.Duration) error {
	if !n.runSummaries {
		return nil
	}

	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	var title string
	if errored == 0 {
		title = "Organizer - Run Complete"
	} else {
		title = "Organizer - Run Complete (with errors)"
	}
	message := fmt.Sprintf("%s run: %d moved, %d skipped, %d errored in %s",
		kind, moved, skipped, errored, duration)

	return n.send(ctx, payload{
		title:   title,
		message: message,
		tags:    []string{"organizer", kind, "completed"},
	})
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, kind string, err error) error {
	if !n.errorAlerts {
		return nil
	}

	message := fmt.Sprintf("%s run failed", kind)
	if err != nil {
		message = fmt.Sprintf("%s: %s", message, strings.TrimSpace(err.Error()))
	}

	return n.send(ctx, payload{
		title:    "Organizer - Error",
		message:  message,
		tags:     []string{"organizer", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) NotifyReviewNeeded(ctx context.Context, filename, reason string) error {
	if !n.errorAlerts {
		return nil
	}

	return n.send(ctx, payload{
		title:   "Organizer - Review Needed",
		message: fmt.Sprintf("%s\n%s", strings.TrimSpace(filename), strings.TrimSpace(reason)),
		tags:    []string{"organizer", "review"},
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "Organizer - Test",
		message:  "Notification system test",
		tags:     []string{"organizer", "test"},
		priority: "low",
	})
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

func (noopService) NotifyRunCompleted(context.Context, string, int, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyRunFailed(context.Context, string, error) error     { return nil }
func (noopService) NotifyReviewNeeded(context.Context, string, string) error { return nil }
func (noopService) TestNotification(context.Context) error                   { return nil }
