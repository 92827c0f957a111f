package handlers

import (
	"amlwatch/internal/config"
	"amlwatch/internal/models"
	"amlwatch/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type MonitoringHandler struct {
	settings *config.Settings
	log      zerolog.Logger
}

func NewMonitoringHandler(settings *config.Settings, log zerolog.Logger) *MonitoringHandler {
	return &MonitoringHandler{settings: settings, log: log}
}

func (h *MonitoringHandler) flagsResponse(f config.Flags) fiber.Map {
	return fiber.Map{
		"monitoring_enabled":    f.MonitoringEnabled,
		"ai_analysis_enabled":   f.AIAnalysisEnabled,
		"external_sync_enabled": f.ExternalSyncEnabled,
		"webhook_endpoint":      h.settings.WebhookPath(),
	}
}

func (h *MonitoringHandler) GetStatus(c *fiber.Ctx) error {
	return utils.Success(c, h.flagsResponse(h.settings.Flags()))
}

// Toggle applies the switches present in the body; absent ones keep their
// current value.
func (h *MonitoringHandler) Toggle(c *fiber.Ctx) error {
	var req models.MonitoringToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.MonitoringEnabled == nil && req.AIAnalysisEnabled == nil && req.ExternalSyncEnabled == nil {
		return utils.BadRequest(c, "no switches given")
	}

	next := h.settings.Flags()
	if req.MonitoringEnabled != nil {
		next.MonitoringEnabled = *req.MonitoringEnabled
	}
	if req.AIAnalysisEnabled != nil {
		next.AIAnalysisEnabled = *req.AIAnalysisEnabled
	}
	if req.ExternalSyncEnabled != nil {
		next.ExternalSyncEnabled = *req.ExternalSyncEnabled
	}
	prev := h.settings.Apply(next)

	h.log.Info().
		Str("staff_id", utils.StaffID(c, "unknown")).
		Bool("monitoring_enabled", next.MonitoringEnabled).
		Bool("ai_analysis_enabled", next.AIAnalysisEnabled).
		Bool("external_sync_enabled", next.ExternalSyncEnabled).
		Bool("was_monitoring_enabled", prev.MonitoringEnabled).
		Msg("monitoring switches updated")

	resp := h.flagsResponse(next)
	if next.MonitoringEnabled {
		resp["message"] = "Transaction monitoring enabled"
	} else {
		resp["message"] = "Transaction monitoring disabled"
	}
	return utils.Success(c, resp)
}
