package service

import (
	"context"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/notifications"
)

// publish emits a change event. Delivery failures are logged and dropped so a
// committed write is never reported as failed.
func publish(ctx context.Context, p notifications.Publisher, event notifications.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish change event",
			slog.String("event", event.Type),
			slog.Uint64("id", uint64(event.ID)),
			slog.String("error", err.Error()),
		)
	}
}
