package handlers

import (
	"strings"

	"amlwatch/internal/models"
	"amlwatch/internal/repositories"
	"amlwatch/internal/utils"
	"amlwatch/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type LimitHandler struct {
	repo repositories.LimitRepository
}

func NewLimitHandler(repo repositories.LimitRepository) *LimitHandler {
	return &LimitHandler{repo: repo}
}

// SetLimit creates or updates the limit for a (channel, type) pair.
func (h *LimitHandler) SetLimit(c *fiber.Ctx) error {
	var req models.LimitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	req.Channel = strings.ToUpper(strings.TrimSpace(req.Channel))
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))

	v := validation.New()
	v.Limit(&req)
	if err := v.Err(); err != nil {
		return utils.Error(c, err)
	}

	limit := &models.TransactionLimit{
		Channel:    req.Channel,
		Type:       req.Type,
		Limit:      req.Limit,
		FlagReason: req.FlagReason,
		IsActive:   req.IsActive == nil || *req.IsActive,
	}
	if err := h.repo.Upsert(c.UserContext(), limit); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, limit)
}

func (h *LimitHandler) GetLimits(c *fiber.Ctx) error {
	limits, err := h.repo.List(c.UserContext(), repositories.LimitFilter{
		Channel:  strings.ToUpper(c.Query("channel")),
		Type:     strings.ToUpper(c.Query("type")),
		IsActive: queryBool(c, "is_active", boolPtr(true)),
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, limits)
}
