package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/realtime"
	"github.com/iliyamo/conference-companion/internal/repository"
)

// MenuHandler serves the daily meal menus.
type MenuHandler struct {
	Menus *repository.MenuRepo
	FX    *Effects
}

func NewMenuHandler(menus *repository.MenuRepo, fx *Effects) *MenuHandler {
	return &MenuHandler{Menus: menus, FX: fx}
}

type menuReq struct {
	Day         uint8    `json:"day"`
	MealType    string   `json:"mealType"`
	Items       []string `json:"items"`
	Description *string  `json:"description"`
}

// List handles GET /v1/menus with an optional day filter.  Results come
// back ordered by day then meal slot (breakfast, lunch, tea).
func (h *MenuHandler) List(c echo.Context) error {
	var day uint8
	if v := c.QueryParam("day"); v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil || n == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid day filter"})
		}
		day = uint8(n)
	}
	items, err := h.Menus.List(c.Request().Context(), day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch menus"})
	}
	if items == nil {
		items = []model.Menu{}
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/menus/:id.
func (h *MenuHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	m, err := h.Menus.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch menu"})
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /v1/menus.  One menu per (day, mealType) slot; a
// duplicate slot returns 409.
func (h *MenuHandler) Create(c echo.Context) error {
	var body menuReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Day == 0 || len(body.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day and items are required"})
	}
	if !model.ValidMenuDay(body.Day) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be between 1 and 3"})
	}
	if !model.ValidMealType(body.MealType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mealType"})
	}

	m := &model.Menu{
		Day:         body.Day,
		MealType:    body.MealType,
		Items:       body.Items,
		Description: body.Description,
	}
	if err := h.Menus.Create(c.Request().Context(), m); err != nil {
		if errors.Is(err, repository.ErrMenuSlotExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "menu already exists for this day and meal"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create menu"})
	}

	h.FX.Audit(c, "create", "menu", m.ID, body)
	h.FX.Emit(realtime.MenuNew, m)
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /v1/menus/:id.
func (h *MenuHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Menus.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Day         *uint8   `json:"day"`
		MealType    *string  `json:"mealType"`
		Items       []string `json:"items"`
		Description *string  `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Day != nil {
		if !model.ValidMenuDay(*body.Day) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "day must be between 1 and 3"})
		}
		cur.Day = *body.Day
	}
	if body.MealType != nil {
		if !model.ValidMealType(*body.MealType) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mealType"})
		}
		cur.MealType = *body.MealType
	}
	if body.Items != nil {
		cur.Items = body.Items
	}
	if body.Description != nil {
		cur.Description = body.Description
	}

	if err := h.Menus.Update(c.Request().Context(), cur); err != nil {
		if errors.Is(err, repository.ErrMenuSlotExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "menu already exists for this day and meal"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update menu"})
	}

	h.FX.Audit(c, "update", "menu", cur.ID, body)
	h.FX.Emit(realtime.MenuUpdate, cur)
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /v1/menus/:id.
func (h *MenuHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Menus.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete menu"})
	}
	h.FX.Audit(c, "delete", "menu", id, echo.Map{"id": id})
	h.FX.Emit(realtime.MenuDelete, realtime.DeletePayload{ID: id})
	return c.JSON(http.StatusOK, echo.Map{"message": "menu deleted"})
}
