package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/vehicle-maintenance/internal/audit"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/dto"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httpresp"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/validators"
)

type AuditLogLister interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLogLister
	log  *zap.Logger
}

func NewAuditLogsHandler(logs AuditLogLister, log *zap.Logger) *AuditLogsHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditLogsHandler{logs: logs, log: log}
}

// List is mounted behind RequireAdmin.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	limit := queryInt(c, "limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := audit.Query{
		Action:   strings.TrimSpace(c.Query("action")),
		Entity:   strings.TrimSpace(c.Query("entity")),
		EntityID: strings.TrimSpace(c.Query("entity_id")),
		Page:     page,
		Limit:    limit,
	}

	if raw := c.Query("from"); raw != "" {
		from, err := validators.Date("from", raw)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		q.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := validators.Date("to", raw)
		if err != nil {
			httperr.Respond(c, h.log, err)
			return
		}
		end := to.Add(24 * time.Hour)
		q.To = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, h.log, httperr.ErrInternal("audit_list_failed", err))
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	httpresp.Paginated(c, dto.Page[models.AuditLog]{
		Data:       logs,
		Pagination: dto.NewPagination(page, limit, total),
	})
}
