package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/repository"
)

// The exporter only ever lists whole tables.
type scheduleSource interface {
	List(ctx context.Context, f repository.SessionFilter) ([]model.Session, error)
}

type complaintSource interface {
	List(ctx context.Context, f repository.ComplaintFilter) ([]model.Complaint, error)
}

// ExportHandler streams admin CSV exports.
type ExportHandler struct {
	sessions   scheduleSource
	complaints complaintSource
}

func NewExportHandler(sessions *repository.SessionRepo, complaints *repository.ComplaintRepo) *ExportHandler {
	return &ExportHandler{sessions: sessions, complaints: complaints}
}

func beginCSV(c echo.Context, name string) *csv.Writer {
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	c.Response().WriteHeader(http.StatusOK)
	return csv.NewWriter(c.Response())
}

// Schedules handles GET /v1/export/schedules.
func (h *ExportHandler) Schedules(c echo.Context) error {
	sessions, err := h.sessions.List(c.Request().Context(), repository.SessionFilter{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch schedules"})
	}

	w := beginCSV(c, "schedules.csv")
	_ = w.Write([]string{"id", "title", "authors", "hall", "startTime", "endTime", "status", "tags", "isPlenary"})
	for _, s := range sessions {
		hall := strconv.FormatUint(s.HallID, 10)
		if s.Hall != nil {
			hall = s.Hall.Name
		}
		_ = w.Write([]string{
			strconv.FormatUint(s.ID, 10),
			s.Title,
			s.Authors,
			hall,
			s.StartsAt.UTC().Format(time.RFC3339),
			s.EndsAt.UTC().Format(time.RFC3339),
			string(s.Status),
			strings.Join(s.Tags, ";"),
			strconv.FormatBool(s.IsPlenary),
		})
	}
	w.Flush()
	return w.Error()
}

// Complaints handles GET /v1/export/complaints.
func (h *ExportHandler) Complaints(c echo.Context) error {
	complaints, err := h.complaints.List(c.Request().Context(), repository.ComplaintFilter{})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch complaints"})
	}

	w := beginCSV(c, "complaints.csv")
	_ = w.Write([]string{"id", "category", "priority", "title", "status", "contactEmail", "assignedTo", "createdAt"})
	for _, cm := range complaints {
		email := ""
		if cm.ContactEmail != nil {
			email = *cm.ContactEmail
		}
		assignee := ""
		if cm.AssignedTo != nil {
			assignee = strconv.FormatUint(*cm.AssignedTo, 10)
		}
		_ = w.Write([]string{
			strconv.FormatUint(cm.ID, 10),
			cm.Category,
			cm.Priority,
			cm.Title,
			cm.Status,
			email,
			assignee,
			cm.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
	return w.Error()
}
