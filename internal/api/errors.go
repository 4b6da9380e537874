package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/geosite/cms/internal/apperr"
	"github.com/geosite/cms/internal/logger"
)

var (
	errInvalidID   = apperr.Validation("Invalid id")
	errInvalidBody = apperr.Validation("Invalid request body")
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the single boundary translating errors into responses.
// Taxonomy errors keep their detail; everything else is logged in full and
// returned as an opaque 500 so no internal detail reaches the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status := statusFor(appErr.Kind)
		if appErr.Kind == apperr.KindInternal {
			logger.Get().Error().
				Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("Internal error")
			return c.Status(status).JSON(fiber.Map{"detail": "Internal server error"})
		}
		return c.Status(status).JSON(fiber.Map{"detail": appErr.Detail})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("Unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
}
