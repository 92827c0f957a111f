package handlers

import (
	"time"

	"amlwatch/internal/models"
	"amlwatch/internal/repositories"
	"amlwatch/internal/utils"
	"amlwatch/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type ExemptionHandler struct {
	repo repositories.ExemptionRepository
	now  func() time.Time
}

func NewExemptionHandler(repo repositories.ExemptionRepository) *ExemptionHandler {
	return &ExemptionHandler{repo: repo, now: time.Now}
}

func (h *ExemptionHandler) AddExemption(c *fiber.Ctx) error {
	var req models.ExemptionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	v := validation.New()
	v.Exemption(&req)
	if req.ExpiryDate != nil {
		v.Future("expiry_date", *req.ExpiryDate, h.now())
	}
	if err := v.Err(); err != nil {
		return utils.Error(c, err)
	}

	exemption := &models.TransactionExemption{
		AccountNumber:   req.AccountNumber,
		AccountName:     req.AccountName,
		ExemptionReason: req.ExemptionReason,
		ExemptedBy:      utils.StaffID(c, "system"),
		IsActive:        true,
		ExpiryDate:      req.ExpiryDate,
	}
	if err := h.repo.Upsert(c.UserContext(), exemption); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, exemption)
}

func (h *ExemptionHandler) GetExemptions(c *fiber.Ctx) error {
	p := utils.GetPagination(c, defaultPageSize, maxPageSize)
	exemptions, err := h.repo.List(c.UserContext(), repositories.ListFilter{
		IsActive: queryBool(c, "is_active", boolPtr(true)),
		Offset:   p.Skip,
		Limit:    p.Limit,
	})
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, exemptions)
}

func (h *ExemptionHandler) RemoveExemption(c *fiber.Ctx) error {
	acct := c.Params("account")
	if err := h.repo.Deactivate(c.UserContext(), acct); err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "Exemption removed for account " + acct})
}
