package server

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"postboard/internal/middleware"
	"postboard/internal/models"
	"postboard/internal/service"
	"postboard/internal/views"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePagination reads the skip and limit query parameters. Range checks
// happen in the service layer.
func parsePagination(c *fiber.Ctx) service.Page {
	return service.Page{
		Limit:  c.QueryInt("limit", service.DefaultLimit),
		Offset: c.QueryInt("skip", 0),
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseQueryID reads a required positive integer from the query string. A
// missing value yields 0 so the service reports it as a missing field.
func parseQueryID(c *fiber.Ctx, key, label string) (uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// queryOrForm returns the named value from the query string, falling back to
// a form field so HTML forms and API clients share one route. An explicitly
// empty value is present; ok is false only when neither source carries key.
func queryOrForm(c *fiber.Ctx, key string) (string, bool) {
	if args := c.Request().URI().QueryArgs(); args.Has(key) {
		return string(args.Peek(key)), true
	}
	if args := c.Request().PostArgs(); args.Has(key) {
		return string(args.Peek(key)), true
	}
	if form, err := c.MultipartForm(); err == nil {
		if vs, ok := form.Value[key]; ok && len(vs) > 0 {
			return vs[0], true
		}
	}
	return "", false
}

// requireParam is queryOrForm that answers 400 when key is absent.
func requireParam(c *fiber.Ctx, key string) (string, error) {
	v, ok := queryOrForm(c, key)
	if !ok {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(map[string]string{key: "is required"}))
		return "", errResponseWritten
	}
	return v, nil
}

// respondError writes err with the status its code maps to. Causes are only
// exposed outside production.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}

	if s.config != nil && s.config.IsProduction() {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			err = &models.AppError{Code: appErr.Code, Message: appErr.Message, Fields: appErr.Fields}
		} else {
			err = models.NewInternalError(nil)
		}
	}
	return models.RespondWithError(c, status, err)
}

// renderNotFound answers a form page whose record is missing.
func renderNotFound(c *fiber.Ctx, err error, back string) error {
	message := "Not found"
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	return c.Status(fiber.StatusNotFound).Render(views.NotFound, fiber.Map{
		"Title":   "Not found",
		"Request": views.NewRequestInfo(c),
		"Message": message,
		"Back":    back,
	})
}
