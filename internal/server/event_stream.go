package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"postboard/internal/middleware"
	"postboard/internal/notifications"
	"postboard/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

var streamResources = []string{"users", "posts"}

// requireWebSocketUpgrade rejects plain HTTP requests on WebSocket routes.
func requireWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// parseResources reads ?resource=users,posts. Unknown names are dropped; an
// empty result means every resource.
func parseResources(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		for _, known := range streamResources {
			if part == known {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		return streamResources
	}
	return out
}

// EventStream handles GET /ws/events
// @Summary Change event stream
// @Description WebSocket stream of user and post change events. Each text frame is one JSON event.
// @Tags events
// @Param resource query string false "Comma separated resources to follow (users, posts)"
// @Success 101 {string} string "switching protocols"
// @Failure 426 {object} models.ErrorResponse
// @Router /ws/events [get]
func (s *Server) EventStream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		observability.ActiveEventStreams.Inc()
		defer observability.ActiveEventStreams.Dec()
		defer func() { _ = conn.Close() }()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var writeMu sync.Mutex
		send := func(payload []byte) error {
			writeMu.Lock()
			defer writeMu.Unlock()
			return conn.WriteMessage(websocket.TextMessage, payload)
		}

		resources := parseResources(conn.Query("resource"))
		done, err := s.notifier.Subscribe(ctx, resources, func(payload string) {
			if err := send([]byte(payload)); err != nil {
				cancel()
			}
		})
		if err != nil {
			msg := `{"error":"event stream unavailable"}`
			if errors.Is(err, notifications.ErrDisabled) {
				msg = `{"error":"change events are disabled"}`
			} else {
				middleware.Logger.Warn("event stream subscribe failed", slog.String("error", err.Error()))
			}
			_ = send([]byte(msg))
			return
		}

		// Client frames are ignored; reading detects the close.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		<-done
	})
}
