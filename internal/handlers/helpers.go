package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// queryBool reads an optional boolean query parameter. Missing or
// malformed values yield def.
func queryBool(c *fiber.Ctx, key string, def *bool) *bool {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return &b
}

func boolPtr(b bool) *bool { return &b }
