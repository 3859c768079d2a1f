package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/repository"
)

// AuditHandler exposes the audit trail to admins.
type AuditHandler struct {
	Audits *repository.AuditRepo
}

func NewAuditHandler(audits *repository.AuditRepo) *AuditHandler {
	return &AuditHandler{Audits: audits}
}

// List handles GET /v1/audit-logs?limit=&offset=, newest first.  Limit is
// clamped inside the repository.
func (h *AuditHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	items, err := h.Audits.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch audit logs"})
	}
	if items == nil {
		items = []model.AuditLog{}
	}
	return c.JSON(http.StatusOK, items)
}
