package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/realtime"
	"github.com/iliyamo/conference-companion/internal/repository"
)

// AnnouncementHandler serves the broadcast notice feed.
type AnnouncementHandler struct {
	Announcements *repository.AnnouncementRepo
	FX            *Effects
}

func NewAnnouncementHandler(announcements *repository.AnnouncementRepo, fx *Effects) *AnnouncementHandler {
	return &AnnouncementHandler{Announcements: announcements, FX: fx}
}

type announcementReq struct {
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	Priority string  `json:"priority"`
	Content  string  `json:"content"`
	Link     *string `json:"link"`
	File     *string `json:"file"`
}

// List handles GET /v1/announcements with an optional type filter.  Newest
// entries come first.
func (h *AnnouncementHandler) List(c echo.Context) error {
	typ := c.QueryParam("type")
	if typ != "" && !model.ValidAnnouncementType(typ) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type filter"})
	}
	items, err := h.Announcements.List(c.Request().Context(), typ)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch announcements"})
	}
	if items == nil {
		items = []model.Announcement{}
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/announcements/:id.
func (h *AnnouncementHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Announcements.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch announcement"})
	}
	return c.JSON(http.StatusOK, a)
}

// Create handles POST /v1/announcements.
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var body announcementReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and content are required"})
	}
	if body.Type == "" {
		body.Type = model.AnnouncementTypeGeneral
	}
	if !model.ValidAnnouncementType(body.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type"})
	}
	if body.Priority == "" {
		body.Priority = model.PriorityNormal
	}
	if !model.ValidPriority(body.Priority) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid priority"})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	a := &model.Announcement{
		Title:     strings.TrimSpace(body.Title),
		Type:      body.Type,
		Priority:  body.Priority,
		Content:   body.Content,
		Link:      body.Link,
		File:      body.File,
		CreatedBy: userID,
	}
	if err := h.Announcements.Create(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create announcement"})
	}

	h.FX.Audit(c, "create", "announcement", a.ID, body)
	h.FX.Emit(realtime.AnnouncementNew, a)
	return c.JSON(http.StatusCreated, a)
}

// Update handles PUT /v1/announcements/:id.
func (h *AnnouncementHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Announcements.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Title    *string `json:"title"`
		Type     *string `json:"type"`
		Priority *string `json:"priority"`
		Content  *string `json:"content"`
		Link     *string `json:"link"`
		File     *string `json:"file"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title != nil {
		cur.Title = strings.TrimSpace(*body.Title)
	}
	if body.Type != nil {
		if !model.ValidAnnouncementType(*body.Type) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type"})
		}
		cur.Type = *body.Type
	}
	if body.Priority != nil {
		if !model.ValidPriority(*body.Priority) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid priority"})
		}
		cur.Priority = *body.Priority
	}
	if body.Content != nil {
		cur.Content = *body.Content
	}
	if body.Link != nil {
		cur.Link = body.Link
	}
	if body.File != nil {
		cur.File = body.File
	}

	if err := h.Announcements.Update(c.Request().Context(), cur); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update announcement"})
	}

	h.FX.Audit(c, "update", "announcement", cur.ID, body)
	h.FX.Emit(realtime.AnnouncementUpdate, cur)
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /v1/announcements/:id.
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Announcements.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete announcement"})
	}
	h.FX.Audit(c, "delete", "announcement", id, echo.Map{"id": id})
	h.FX.Emit(realtime.AnnouncementDelete, realtime.DeletePayload{ID: id})
	return c.JSON(http.StatusOK, echo.Map{"message": "announcement deleted"})
}
