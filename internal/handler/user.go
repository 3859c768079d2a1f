package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/repository"
)

// UserHandler lets admins review accounts and adjust roles.
type UserHandler struct {
	Users *repository.UserRepo
	FX    *Effects
}

func NewUserHandler(users *repository.UserRepo, fx *Effects) *UserHandler {
	return &UserHandler{Users: users, FX: fx}
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch users"})
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRole handles PUT /v1/users/:id/role.  Admins cannot demote
// themselves; losing the last admin would lock the panel.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidRole(body.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}
	if self, err := getUserID(c); err == nil && self == id && body.Role != model.RoleAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot change your own role"})
	}

	if err := h.Users.UpdateRole(c.Request().Context(), id, body.Role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update role"})
	}

	h.FX.Audit(c, "update", "user", id, body)
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "role updated"})
	}
	return c.JSON(http.StatusOK, u)
}
