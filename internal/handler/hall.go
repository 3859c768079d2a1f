package handler // handler package contains hall endpoints including the live status board

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/repository"
	"github.com/iliyamo/conference-companion/internal/status"
)

// HallHandler bundles dependencies for hall endpoints.
type HallHandler struct {
	Halls    *repository.HallRepo
	Resolver *status.Resolver
	FX       *Effects
}

func NewHallHandler(halls *repository.HallRepo, resolver *status.Resolver, fx *Effects) *HallHandler {
	return &HallHandler{Halls: halls, Resolver: resolver, FX: fx}
}

type hallReq struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Capacity uint32 `json:"capacity"`
	Location string `json:"location"`
}

func (b hallReq) validate() string {
	if strings.TrimSpace(b.Name) == "" || strings.TrimSpace(b.Code) == "" || strings.TrimSpace(b.Location) == "" {
		return "name, code and location are required"
	}
	if b.Capacity == 0 {
		return "capacity must be greater than zero"
	}
	return ""
}

// List handles GET /v1/halls.
func (h *HallHandler) List(c echo.Context) error {
	halls, err := h.Halls.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch halls"})
	}
	if halls == nil {
		halls = []model.Hall{}
	}
	return c.JSON(http.StatusOK, halls)
}

// Get handles GET /v1/halls/:id.
func (h *HallHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	hall, err := h.Halls.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch hall"})
	}
	return c.JSON(http.StatusOK, hall)
}

// Status handles GET /v1/halls/status: the derived current/next/remaining
// view of every hall at this instant.  The response is a snapshot; caching
// is disabled end to end so the board never shows a stale session.
func (h *HallHandler) Status(c echo.Context) error {
	statuses, err := h.Resolver.Statuses(c.Request().Context())
	if err != nil {
		c.Response().Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch hall status"})
	}
	hdr := c.Response().Header()
	hdr.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate, max-age=0")
	hdr.Set("Pragma", "no-cache")
	hdr.Set("Expires", "0")
	return c.JSON(http.StatusOK, statuses)
}

// Create handles POST /v1/halls.
func (h *HallHandler) Create(c echo.Context) error {
	var body hallReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	hall := &model.Hall{
		Name:     strings.TrimSpace(body.Name),
		Code:     body.Code,
		Capacity: body.Capacity,
		Location: strings.TrimSpace(body.Location),
	}
	if err := h.Halls.Create(c.Request().Context(), hall); err != nil {
		if errors.Is(err, repository.ErrHallCodeExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create hall"})
	}
	h.FX.Audit(c, "create", "hall", hall.ID, body)
	return c.JSON(http.StatusCreated, hall)
}

// Update handles PUT /v1/halls/:id.
func (h *HallHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Halls.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body struct {
		Name     *string `json:"name"`
		Code     *string `json:"code"`
		Capacity *uint32 `json:"capacity"`
		Location *string `json:"location"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name != nil {
		cur.Name = strings.TrimSpace(*body.Name)
	}
	if body.Code != nil {
		cur.Code = *body.Code
	}
	if body.Capacity != nil {
		cur.Capacity = *body.Capacity
	}
	if body.Location != nil {
		cur.Location = strings.TrimSpace(*body.Location)
	}
	if msg := (hallReq{Name: cur.Name, Code: cur.Code, Capacity: cur.Capacity, Location: cur.Location}).validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Halls.Update(c.Request().Context(), cur); err != nil {
		if errors.Is(err, repository.ErrHallCodeExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall code already exists"})
		}
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update hall"})
	}
	h.FX.Audit(c, "update", "hall", cur.ID, body)
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /v1/halls/:id.
func (h *HallHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Halls.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete hall"})
	}
	h.FX.Audit(c, "delete", "hall", id, echo.Map{"id": id})
	return c.JSON(http.StatusOK, echo.Map{"message": "hall deleted"})
}
