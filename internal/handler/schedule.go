package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/realtime"
	"github.com/iliyamo/conference-companion/internal/repository"
	"github.com/iliyamo/conference-companion/internal/status"
	"github.com/iliyamo/conference-companion/internal/utils"
)

// ScheduleHandler bundles dependencies for session endpoints.  Mutations
// wake the status sweeper so its precise timer is recomputed against the
// changed list.
type ScheduleHandler struct {
	Sessions *repository.SessionRepo
	Halls    *repository.HallRepo
	Sweeper  *status.Sweeper
	FX       *Effects
}

func NewScheduleHandler(sessions *repository.SessionRepo, halls *repository.HallRepo, sweeper *status.Sweeper, fx *Effects) *ScheduleHandler {
	return &ScheduleHandler{Sessions: sessions, Halls: halls, Sweeper: sweeper, FX: fx}
}

type scheduleReq struct {
	Title       string          `json:"title"`
	Authors     string          `json:"authors"`
	HallID      uint64          `json:"hall"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	Status      string          `json:"status"`
	Tags        []string        `json:"tags"`
	SlideLink   *string         `json:"slideLink"`
	Description *string         `json:"description"`
	IsPlenary   *utils.FlexBool `json:"isPlenary"`
}

// List handles GET /v1/schedules with optional hall, status, day and tags
// filters.
func (h *ScheduleHandler) List(c echo.Context) error {
	var f repository.SessionFilter
	if v := c.QueryParam("hall"); v != "" {
		id, err := parseUintParam(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall filter"})
		}
		f.HallID = id
	}
	if v := c.QueryParam("status"); v != "" {
		st := model.SessionStatus(v)
		if !model.ValidSessionStatus(st) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
		}
		f.Status = st
	}
	if v := c.QueryParam("day"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid day filter, want YYYY-MM-DD"})
		}
		f.Day = day
	}
	if v := c.QueryParam("tags"); v != "" {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}

	sessions, err := h.Sessions.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch schedules"})
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	return c.JSON(http.StatusOK, sessions)
}

// Get handles GET /v1/schedules/:id.
func (h *ScheduleHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.Sessions.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch schedule"})
	}
	return c.JSON(http.StatusOK, s)
}

// Create handles POST /v1/schedules.
func (h *ScheduleHandler) Create(c echo.Context) error {
	var body scheduleReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Authors) == "" ||
		body.HallID == 0 || body.StartTime == "" || body.EndTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, authors, hall, startTime and endTime are required"})
	}
	startsAt, err := parseRFC3339(body.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startTime format"})
	}
	endsAt, err := parseRFC3339(body.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid endTime format"})
	}
	if !endsAt.After(startsAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endTime must be after startTime"})
	}
	st := model.StatusUpcoming
	if body.Status != "" {
		st = model.SessionStatus(body.Status)
		if !model.ValidSessionStatus(st) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
	}
	if _, err := h.Halls.GetByID(c.Request().Context(), body.HallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify hall"})
	}

	s := &model.Session{
		Title:       strings.TrimSpace(body.Title),
		Authors:     strings.TrimSpace(body.Authors),
		HallID:      body.HallID,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Status:      st,
		Tags:        body.Tags,
		SlideLink:   body.SlideLink,
		Description: body.Description,
		IsPlenary:   body.IsPlenary != nil && body.IsPlenary.Bool(),
	}
	if err := h.Sessions.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create schedule"})
	}

	h.FX.Audit(c, "create", "schedule", s.ID, body)
	h.FX.Emit(realtime.ScheduleNew, s)
	h.Sweeper.Resync()
	return c.JSON(http.StatusCreated, s)
}

// Update handles PUT /v1/schedules/:id.  Partial bodies merge onto the
// stored record; two admins editing concurrently race last-write-wins.
func (h *ScheduleHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Sessions.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Title       *string         `json:"title"`
		Authors     *string         `json:"authors"`
		HallID      *uint64         `json:"hall"`
		StartTime   *string         `json:"startTime"`
		EndTime     *string         `json:"endTime"`
		Status      *string         `json:"status"`
		Tags        []string        `json:"tags"`
		SlideLink   *string         `json:"slideLink"`
		Description *string         `json:"description"`
		IsPlenary   *utils.FlexBool `json:"isPlenary"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title != nil {
		cur.Title = strings.TrimSpace(*body.Title)
	}
	if body.Authors != nil {
		cur.Authors = strings.TrimSpace(*body.Authors)
	}
	if body.HallID != nil {
		if _, err := h.Halls.GetByID(c.Request().Context(), *body.HallID); err != nil {
			if errors.Is(err, repository.ErrHallNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify hall"})
		}
		cur.HallID = *body.HallID
	}
	if body.StartTime != nil {
		t, err := parseRFC3339(*body.StartTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startTime format"})
		}
		cur.StartsAt = t
	}
	if body.EndTime != nil {
		t, err := parseRFC3339(*body.EndTime)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid endTime format"})
		}
		cur.EndsAt = t
	}
	if !cur.EndsAt.After(cur.StartsAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "endTime must be after startTime"})
	}
	if body.Status != nil {
		st := model.SessionStatus(*body.Status)
		if !model.ValidSessionStatus(st) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		cur.Status = st
	}
	if body.Tags != nil {
		cur.Tags = body.Tags
	}
	if body.SlideLink != nil {
		cur.SlideLink = body.SlideLink
	}
	if body.Description != nil {
		cur.Description = body.Description
	}
	if body.IsPlenary != nil {
		cur.IsPlenary = body.IsPlenary.Bool()
	}

	if err := h.Sessions.Update(c.Request().Context(), cur); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update schedule"})
	}

	h.FX.Audit(c, "update", "schedule", cur.ID, body)
	h.FX.Emit(realtime.ScheduleUpdate, cur)
	h.Sweeper.Resync()
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /v1/schedules/:id.  The delete event carries only
// the identifier; clients remove exactly that entry from their lists.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Sessions.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete schedule"})
	}
	h.FX.Audit(c, "delete", "schedule", id, echo.Map{"id": id})
	h.FX.Emit(realtime.ScheduleDelete, realtime.DeletePayload{ID: id})
	h.Sweeper.Resync()
	return c.JSON(http.StatusOK, echo.Map{"message": "schedule deleted"})
}
