package handlers

import (
	"amlwatch/internal/models"
	"amlwatch/internal/repositories"
	"amlwatch/internal/utils"
	"amlwatch/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type WatchlistHandler struct {
	repo repositories.WatchlistRepository
}

func NewWatchlistHandler(repo repositories.WatchlistRepository) *WatchlistHandler {
	return &WatchlistHandler{repo: repo}
}

// AddToWatchlist adds an account or updates and reactivates its entry.
func (h *WatchlistHandler) AddToWatchlist(c *fiber.Ctx) error {
	var req models.WatchlistRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	v := validation.New()
	v.Watchlist(&req)
	if err := v.Err(); err != nil {
		return utils.Error(c, err)
	}

	entry := &models.Watchlist{
		AccountNumber:       req.AccountNumber,
		AccountName:         req.AccountName,
		ReasonForMonitoring: req.ReasonForMonitoring,
		Category:            req.Category,
		AddedBy:             utils.StaffID(c, "system"),
		IsActive:            true,
	}
	if err := h.repo.Upsert(c.UserContext(), entry); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, entry)
}

func (h *WatchlistHandler) GetWatchlist(c *fiber.Ctx) error {
	p := utils.GetPagination(c, defaultPageSize, maxPageSize)
	entries, err := h.repo.List(c.UserContext(), repositories.ListFilter{
		IsActive: queryBool(c, "is_active", boolPtr(true)),
		Offset:   p.Skip,
		Limit:    p.Limit,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, entries)
}

// RemoveFromWatchlist soft-deletes the entry for :account.
func (h *WatchlistHandler) RemoveFromWatchlist(c *fiber.Ctx) error {
	acct := c.Params("account")
	if err := h.repo.Deactivate(c.UserContext(), acct); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "Account " + acct + " removed from watchlist"})
}
