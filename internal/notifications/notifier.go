// Package notifications publishes record change events to Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"postboard/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Event types published after successful writes.
const (
	UserCreated        = "user.created"
	UserEmailUpdated   = "user.email_updated"
	UserDeleted        = "user.deleted"
	PostCreated        = "post.created"
	PostContentUpdated = "post.content_updated"
	PostDeleted        = "post.deleted"
)

// Event is the JSON payload written to a resource channel.
type Event struct {
	Type       string    `json:"type"`
	Resource   string    `json:"resource"`
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is the contract services depend on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Notifier provides helpers to publish events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client yields a notifier that drops every event.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// ResourceChannel returns the channel events about a resource kind go to.
func ResourceChannel(resource string) string {
	return "postboard:events:" + resource
}

// Publish sends the event to its resource channel.
func (n *Notifier) Publish(ctx context.Context, event Event) error {
	if n == nil || n.rdb == nil {
		observability.EventsPublished.WithLabelValues(event.Type, "skipped").Inc()
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		observability.EventsPublished.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := n.rdb.Publish(ctx, ResourceChannel(event.Resource), payload).Err(); err != nil {
		observability.EventsPublished.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	observability.EventsPublished.WithLabelValues(event.Type, "ok").Inc()
	return nil
}

// Ping reports whether the backing Redis answers. A disabled notifier is healthy.
func (n *Notifier) Ping(ctx context.Context) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Ping(ctx).Err()
}

// ErrDisabled is returned by Subscribe when no Redis client is configured.
var ErrDisabled = errors.New("change events are disabled")

// Subscribe relays payloads published on the channels of the given resources
// to onEvent until ctx is cancelled or the subscription drops. It returns
// once the subscription is confirmed; delivery runs on its own goroutine and
// done is closed when it stops.
func (n *Notifier) Subscribe(ctx context.Context, resources []string, onEvent func(payload string)) (done <-chan struct{}, err error) {
	if n == nil || n.rdb == nil {
		return nil, ErrDisabled
	}

	channels := make([]string, 0, len(resources))
	for _, r := range resources {
		channels = append(channels, ResourceChannel(r))
	}

	sub := n.rdb.Subscribe(ctx, channels...)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %v: %w", channels, err)
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		defer func() { _ = sub.Close() }()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				onEvent(msg.Payload)
			}
		}
	}()
	return stopped, nil
}
