package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverrideField is the form field HTML forms use to tunnel PUT and DELETE.
const MethodOverrideField = "_method"

// MethodOverride rewrites POST form submissions carrying _method=PUT or
// _method=DELETE so they reach the matching route. It must be registered with
// app.Use before any route.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		switch strings.ToUpper(c.FormValue(MethodOverrideField)) {
		case fiber.MethodPut:
			c.Method(fiber.MethodPut)
		case fiber.MethodDelete:
			c.Method(fiber.MethodDelete)
		}
		return c.Next()
	}
}
