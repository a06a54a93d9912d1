package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodOverride(t *testing.T) {
	app := fiber.New()
	app.Use(MethodOverride())
	app.Post("/items/:id", func(c *fiber.Ctx) error { return c.SendString("post") })
	app.Put("/items/:id", func(c *fiber.Ctx) error { return c.SendString("put") })
	app.Delete("/items/:id", func(c *fiber.Ctx) error { return c.SendString("delete") })

	tests := []struct {
		name        string
		body        string
		contentType string
		expected    string
	}{
		{"Form PUT override", "_method=PUT&content=hello", fiber.MIMEApplicationForm, "put"},
		{"Form DELETE override lowercase", "_method=delete", fiber.MIMEApplicationForm, "delete"},
		{"Unknown override ignored", "_method=PATCH", fiber.MIMEApplicationForm, "post"},
		{"No override", "content=hello", fiber.MIMEApplicationForm, "post"},
		{"JSON body untouched", `{"_method":"PUT"}`, fiber.MIMEApplicationJSON, "post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.expected, string(body))
		})
	}
}

func TestTracingMiddleware_SetsTraceHeader(t *testing.T) {
	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		tid, _ := c.Locals("traceID").(string)
		return c.SendString(tid)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, string(body), resp.Header.Get("X-Trace-ID"))
}

func TestContextMiddleware_PropagatesIDs(t *testing.T) {
	var got context.Context

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(TracingMiddleware())
	app.Use(ContextMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		got = c.UserContext()
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	require.NotNil(t, got)
	assert.Equal(t, "req-123", got.Value(RequestIDKey))
	assert.Equal(t, resp.Header.Get("X-Trace-ID"), got.Value(TraceIDKey))
}

func TestStructuredLogger_PassesThroughErrors(t *testing.T) {
	app := fiber.New()
	app.Use(StructuredLogger())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	logger := NewLogger("production", "warn")
	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelError))
}
