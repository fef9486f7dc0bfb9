package middlewares

import (
	"errors"

	"invoicing-backend/logger"
	"invoicing-backend/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
// Domain errors carry their channel in the type, so no message matching here.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// 1) Fiber errors (use their status code + message)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}

	// 2) Domain validation failures (422 + per-field info)
	var dve *services.ValidationError
	if errors.As(err, &dve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  dve.Fields,
		})
	}

	// 3) Integrity/not-found failures (404)
	var nfe *services.NotFoundError
	if errors.As(err, &nfe) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": nfe.Error()})
	}

	// 4) Persistence faults (503, details logged only)
	var se *services.StorageError
	if errors.As(err, &se) {
		l := logger.WithComponent("http")
		l.Error().Err(se.Cause).Str("path", c.Path()).Msg("storage failure")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "storage unavailable, please retry",
		})
	}

	// 5) Edge validation errors from the request binder (422 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		out := make(map[string]string, len(ve))
		for _, f := range ve {
			out[f.Field()] = f.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "validation failed",
			"errors":  out,
		})
	}

	// 6) Unknown errors (500)
	l := logger.WithComponent("http")
	l.Error().Err(err).Str("path", c.Path()).Msg("internal error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
	})
}
