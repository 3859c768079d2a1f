package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/handler"
	"github.com/iliyamo/conference-companion/internal/middleware"
	"github.com/iliyamo/conference-companion/internal/model"
)

// RegisterAdmin registers the admin-only management surface under /v1.
// All routes require a valid JWT and the admin role.
func RegisterAdmin(e *echo.Echo, halls *handler.HallHandler, schedules *handler.ScheduleHandler,
	events *handler.EventHandler, menus *handler.MenuHandler, complaints *handler.ComplaintHandler,
	exports *handler.ExportHandler, audits *handler.AuditHandler, users *handler.UserHandler,
	jwtSecret string) {

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Halls ----
	g.POST("/halls", halls.Create)
	g.PUT("/halls/:id", halls.Update)
	g.DELETE("/halls/:id", halls.Delete)

	// ---- Schedules ----
	g.POST("/schedules", schedules.Create)
	g.PUT("/schedules/:id", schedules.Update)
	g.DELETE("/schedules/:id", schedules.Delete)

	// ---- Events ----
	g.POST("/events", events.Create)
	g.PUT("/events/:id", events.Update)
	g.DELETE("/events/:id", events.Delete)

	// ---- Menus ----
	g.POST("/menus", menus.Create)
	g.PUT("/menus/:id", menus.Update)
	g.DELETE("/menus/:id", menus.Delete)

	// ---- Complaints (destructive ops stay admin-only) ----
	g.DELETE("/complaints/:id", complaints.Delete)

	// ---- Exports ----
	g.GET("/export/schedules", exports.Schedules)
	g.GET("/export/complaints", exports.Complaints)

	// ---- Audit trail ----
	g.GET("/audit-logs", audits.List)

	// ---- Users ----
	g.GET("/users", users.List)
	g.PUT("/users/:id/role", users.UpdateRole)
}
