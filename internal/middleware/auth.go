// Package middleware provides HTTP middleware components for the application.
// It includes staff authentication and permission checks for the fiber
// routes that sit behind the compliance API.
package middleware

import (
	"strings"

	"amlwatch/internal/models"
	"amlwatch/internal/services/auth"
	"amlwatch/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthMiddleware validates staff JWTs and stores their claims on the request.
type AuthMiddleware struct {
	authService auth.Service
	log         zerolog.Logger
}

func NewAuthMiddleware(authService auth.Service, log zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		log:         log,
	}
}

// Handler checks for a Bearer token in the Authorization header, validates
// it and adds the claims to the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	claims, err := m.authService.ParseStaffToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		m.log.Debug().Err(err).Str("path", c.Path()).Msg("staff token rejected")
		return utils.Unauthorized(c, "invalid token")
	}

	c.Locals("claims", claims)
	c.Locals("staffID", claims.StaffID)
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
// Admins pass every check.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetStaffClaims(c)
		if err != nil {
			return utils.Unauthorized(c, "unauthorized")
		}
		if claims.Role == models.RoleAdmin || claims.HasPermission(permission) {
			return c.Next()
		}
		return utils.Forbidden(c, "insufficient permissions")
	}
}
