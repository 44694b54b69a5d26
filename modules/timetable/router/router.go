package router

import (
	"moim-api/core/middleware"
	"moim-api/modules/timetable/controller"

	"github.com/labstack/echo/v4"
)

// TimetableRouter handles external timetable routes
type TimetableRouter struct {
	Controller *controller.TimetableController
}

// NewTimetableRouter creates a new router
func NewTimetableRouter(ctrl *controller.TimetableController) *TimetableRouter {
	return &TimetableRouter{Controller: ctrl}
}

// Setup registers timetable routes
func (r *TimetableRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	routes := privateRoutes.Group("/timetable", mw.AuthMiddleware())
	routes.POST("/fetch", r.Controller.Fetch)
	routes.POST("/import", r.Controller.Import)
}
