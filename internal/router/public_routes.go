package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/handler"
)

// RegisterPublic registers the unauthenticated read surface plus the open
// complaint form.  Everything the attendee app shows comes from these
// routes; no JWT or role middleware applies.
func RegisterPublic(e *echo.Echo, halls *handler.HallHandler, schedules *handler.ScheduleHandler,
	announcements *handler.AnnouncementHandler, events *handler.EventHandler,
	menus *handler.MenuHandler, complaints *handler.ComplaintHandler) {

	e.GET("/v1/halls", halls.List)
	// Live per-hall status; responses carry no-store headers and the path
	// is excluded from the response cache.
	e.GET("/v1/halls/status", halls.Status)
	e.GET("/v1/halls/:id", halls.Get)

	e.GET("/v1/schedules", schedules.List)
	e.GET("/v1/schedules/:id", schedules.Get)

	e.GET("/v1/announcements", announcements.List)
	e.GET("/v1/announcements/:id", announcements.Get)

	e.GET("/v1/events", events.List)
	e.GET("/v1/events/:id", events.Get)

	e.GET("/v1/menus", menus.List)
	e.GET("/v1/menus/:id", menus.Get)

	// The complaint form is open to guests; the public list is anonymized.
	e.POST("/v1/complaints", complaints.Create)
	e.GET("/v1/complaints/public", complaints.ListPublic)
}
