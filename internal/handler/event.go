package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/realtime"
	"github.com/iliyamo/conference-companion/internal/repository"
	"github.com/iliyamo/conference-companion/internal/utils"
)

// EventHandler serves social events (dinner, cultural evening and custom
// kinds).
type EventHandler struct {
	Events *repository.EventRepo
	FX     *Effects
}

func NewEventHandler(events *repository.EventRepo, fx *Effects) *EventHandler {
	return &EventHandler{Events: events, FX: fx}
}

type eventReq struct {
	Title        string          `json:"title"`
	Type         string          `json:"type"`
	Description  string          `json:"description"`
	Venue        string          `json:"venue"`
	StartTime    string          `json:"startTime"`
	EndTime      string          `json:"endTime"`
	RSVPRequired *utils.FlexBool `json:"rsvpRequired"`
	TicketInfo   *string         `json:"ticketInfo"`
	ImageURL     *string         `json:"imageUrl"`
}

// List handles GET /v1/events with an optional type filter.  The filter is
// normalized the same way stored values are, so "Dinner" matches "dinner".
func (h *EventHandler) List(c echo.Context) error {
	typ := ""
	if raw := c.QueryParam("type"); raw != "" {
		et, ok := model.NormalizeEventType(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type filter"})
		}
		typ = et.String()
	}
	items, err := h.Events.List(c.Request().Context(), typ)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch events"})
	}
	if items == nil {
		items = []model.Event{}
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ev, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch event"})
	}
	return c.JSON(http.StatusOK, ev)
}

// Create handles POST /v1/events.
func (h *EventHandler) Create(c echo.Context) error {
	var body eventReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Venue) == "" ||
		body.StartTime == "" || body.EndTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, venue, startTime and endTime are required"})
	}
	et, ok := model.NormalizeEventType(body.Type)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type is required"})
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

	ev := &model.Event{
		Title:        strings.TrimSpace(body.Title),
		Type:         et.String(),
		Description:  body.Description,
		Venue:        strings.TrimSpace(body.Venue),
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		RSVPRequired: body.RSVPRequired != nil && body.RSVPRequired.Bool(),
		TicketInfo:   body.TicketInfo,
		ImageURL:     body.ImageURL,
	}
	if err := h.Events.Create(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create event"})
	}

	h.FX.Audit(c, "create", "event", ev.ID, body)
	h.FX.Emit(realtime.EventNew, ev)
	return c.JSON(http.StatusCreated, ev)
}

// Update handles PUT /v1/events/:id.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Title        *string         `json:"title"`
		Type         *string         `json:"type"`
		Description  *string         `json:"description"`
		Venue        *string         `json:"venue"`
		StartTime    *string         `json:"startTime"`
		EndTime      *string         `json:"endTime"`
		RSVPRequired *utils.FlexBool `json:"rsvpRequired"`
		TicketInfo   *string         `json:"ticketInfo"`
		ImageURL     *string         `json:"imageUrl"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title != nil {
		cur.Title = strings.TrimSpace(*body.Title)
	}
	if body.Type != nil {
		et, ok := model.NormalizeEventType(*body.Type)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type"})
		}
		cur.Type = et.String()
	}
	if body.Description != nil {
		cur.Description = *body.Description
	}
	if body.Venue != nil {
		cur.Venue = strings.TrimSpace(*body.Venue)
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
	if body.RSVPRequired != nil {
		cur.RSVPRequired = body.RSVPRequired.Bool()
	}
	if body.TicketInfo != nil {
		cur.TicketInfo = body.TicketInfo
	}
	if body.ImageURL != nil {
		cur.ImageURL = body.ImageURL
	}

	if err := h.Events.Update(c.Request().Context(), cur); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update event"})
	}

	h.FX.Audit(c, "update", "event", cur.ID, body)
	h.FX.Emit(realtime.EventUpdate, cur)
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /v1/events/:id.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Events.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete event"})
	}
	h.FX.Audit(c, "delete", "event", id, echo.Map{"id": id})
	h.FX.Emit(realtime.EventDelete, realtime.DeletePayload{ID: id})
	return c.JSON(http.StatusOK, echo.Map{"message": "event deleted"})
}
