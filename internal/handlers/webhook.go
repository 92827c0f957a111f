package handlers

import (
	"amlwatch/internal/models"
	"amlwatch/internal/services/auth"
	"amlwatch/internal/services/monitoring"
	"amlwatch/internal/utils"
	"amlwatch/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type WebhookHandler struct {
	authService auth.Service
	pipeline    monitoring.Service
	log         zerolog.Logger
}

func NewWebhookHandler(authService auth.Service, pipeline monitoring.Service, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		authService: authService,
		pipeline:    pipeline,
		log:         log,
	}
}

// ProcessSuspiciousTransaction handles POST /webhook/suspicious.
func (h *WebhookHandler) ProcessSuspiciousTransaction(c *fiber.Ctx) error {
	var req models.SuspiciousTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.authService.VerifyWebhookToken(req.Perm); err != nil {
		return utils.Unauthorized(c, "invalid webhook token")
	}

	v := validation.New()
	v.SuspiciousTransaction(&req)
	if err := v.Err(); err != nil {
		return utils.Error(c, err)
	}

	h.log.Info().
		Str("case_number", req.CaseNumber).
		Str("acct_no", req.CurrentTransaction.AcctNo).
		Msg("processing transaction")

	result := h.pipeline.Process(c.UserContext(), &req)
	if !result.Success {
		return utils.Respond(c, fiber.StatusInternalServerError, result)
	}
	if result.Message == "" {
		result.Message = "Transaction processed successfully"
	}
	return utils.Success(c, result)
}
