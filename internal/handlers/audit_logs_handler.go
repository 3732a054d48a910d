package handlers

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logger *audit.Logger
	log    *slog.Logger
}

func NewAuditLogsHandler(logger *audit.Logger, log *slog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logger: logger, log: log}
}

// List returns the barbershop's newest entries. limit defaults to 50 and
// is capped at 200.
func (h *AuditLogsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.logger.List(c.Request.Context(), middleware.TenantID(c), limit)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, logs)
}
