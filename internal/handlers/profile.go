package handlers

import (
	"amlwatch/internal/repositories"
	"amlwatch/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const recentTransactions = 20

type ProfileHandler struct {
	profiles repositories.ProfileRepository
	raw      repositories.RawTransactionRepository
}

func NewProfileHandler(profiles repositories.ProfileRepository, raw repositories.RawTransactionRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, raw: raw}
}

// GetProfile returns the stored profile for :account with its most recent
// raw transactions.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	acct := c.Params("account")
	profile, err := h.profiles.FindByAccount(c.UserContext(), acct)
	if err != nil {
		return utils.Error(c, err)
	}

	txs, err := h.raw.ListByAccount(c.UserContext(), acct, recentTransactions)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{
		"profile":             profile,
		"recent_transactions": txs,
	})
}
