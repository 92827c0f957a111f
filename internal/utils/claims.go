package utils

import (
	"errors"

	"amlwatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetStaffClaims extracts the staff claims from the Fiber context.
// It returns an error if the claims are missing or of an invalid type.
func GetStaffClaims(c *fiber.Ctx) (*models.StaffClaims, error) {
	v := c.Locals("claims")
	if v == nil {
		return nil, errors.New("claims not found in context")
	}

	claims, ok := v.(*models.StaffClaims)
	if !ok {
		return nil, errors.New("invalid claims type")
	}
	return claims, nil
}

// StaffID returns the authenticated staff id, or fallback when unauthenticated.
func StaffID(c *fiber.Ctx, fallback string) string {
	claims, err := GetStaffClaims(c)
	if err != nil || claims.StaffID == "" {
		return fallback
	}
	return claims.StaffID
}
