package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/handler"
	"github.com/iliyamo/conference-companion/internal/middleware"
	"github.com/iliyamo/conference-companion/internal/model"
)

// RegisterStaff registers endpoints shared by admins and volunteers:
// publishing announcements and working the complaint queue.
func RegisterStaff(e *echo.Echo, announcements *handler.AnnouncementHandler,
	complaints *handler.ComplaintHandler, jwtSecret string) {

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleVolunteer),
	)

	g.POST("/announcements", announcements.Create)
	g.PUT("/announcements/:id", announcements.Update)
	g.DELETE("/announcements/:id", announcements.Delete)

	g.GET("/complaints", complaints.List)
	g.GET("/complaints/:id", complaints.Get)
	g.PUT("/complaints/:id", complaints.Update)
}
