package utils

import (
	"errors"

	apperrors "amlwatch/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, fiber.Map{"error": message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, fiber.Map{"error": message})
}

// Forbidden sends a JSON error response with status 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusForbidden, fiber.Map{"error": message})
}

// Error maps err onto its HTTP status. Domain errors expose their code and
// message; anything else is reported as a generic internal error.
func Error(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return Respond(c, apperrors.HTTPStatus(de), fiber.Map{"error": de.Message, "code": de.Code})
	}
	return Respond(c, fiber.StatusInternalServerError, fiber.Map{
		"error": apperrors.ErrInternal.Message,
		"code":  apperrors.ErrInternal.Code,
	})
}
