package handlers

import (
	"amlwatch/internal/models"
	"amlwatch/internal/repositories"
	"amlwatch/internal/utils"
	"amlwatch/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CaseHandler struct {
	repo repositories.CaseRepository
}

func NewCaseHandler(repo repositories.CaseRepository) *CaseHandler {
	return &CaseHandler{repo: repo}
}

// ListCases returns cases newest first, filtered by account_number,
// status and a from/to window on the transaction date.
func (h *CaseHandler) ListCases(c *fiber.Ctx) error {
	p := utils.GetPagination(c, defaultPageSize, maxPageSize)
	filter := repositories.CaseFilter{
		AccountNumber: c.Query("account_number"),
		Status:        models.CaseStatus(c.Query("status")),
		Offset:        p.Skip,
		Limit:         p.Limit,
	}

	v := validation.New()
	if filter.Status != "" {
		v.Check(filter.Status.Valid(), "status", "unknown case status")
	}
	if raw := c.Query("from_date"); raw != "" {
		filter.From = utils.ParseFeedDatePtr(raw)
		v.Check(filter.From != nil, "from_date", "must be a valid date")
	}
	if raw := c.Query("to_date"); raw != "" {
		filter.To = utils.ParseFeedDatePtr(raw)
		v.Check(filter.To != nil, "to_date", "must be a valid date")
	}
	if err := v.Err(); err != nil {
		return utils.Error(c, err)
	}

	cases, total, err := h.repo.List(c.UserContext(), filter)
	if err != nil {
		return utils.Error(c, err)
	}
	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(cases, p))
}

func (h *CaseHandler) GetCase(c *fiber.Ctx) error {
	sc, err := h.repo.FindByNumber(c.UserContext(), c.Params("case"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, sc)
}

func (h *CaseHandler) UpdateCaseStatus(c *fiber.Ctx) error {
	var req models.CaseStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	v := validation.New()
	v.CaseStatus(&req)
	if err := v.Err(); err != nil {
		return utils.Error(c, err)
	}

	caseNumber := c.Params("case")
	sc, err := h.repo.UpdateStatus(c.UserContext(), caseNumber, req.Status)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{
		"message": "Case " + caseNumber + " status updated to " + string(req.Status),
		"case":    sc,
	})
}
