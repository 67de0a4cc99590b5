package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs     audit.Store
	timezone string
}

func NewAuditLogsHandler(logs audit.Store, tz string) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, timezone: tz}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page := positiveInt(c.Query("page"), 1)
	limit := positiveInt(c.Query("limit"), auditDefaultLimit)
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}

	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Período em dias inteiros, no fuso da clínica
	// --------------------------------------------------
	if raw := c.Query("from"); raw != "" {
		from, err := timezone.ParseDate(h.timezone, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Filtro inválido: from.")
			return
		}
		q.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := timezone.ParseDate(h.timezone, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Filtro inválido: to.")
			return
		}
		end := to.AddDate(0, 0, 1)
		q.To = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.AuditLogs(logs), total, page, limit)
}

func positiveInt(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

