package router

import (
	"moim-api/core/middleware"
	"moim-api/modules/fixedschedule/controller"

	"github.com/labstack/echo/v4"
)

// FixedScheduleRouter handles fixed schedule routes
type FixedScheduleRouter struct {
	Controller *controller.FixedScheduleController
}

// NewFixedScheduleRouter creates a new router
func NewFixedScheduleRouter(ctrl *controller.FixedScheduleController) *FixedScheduleRouter {
	return &FixedScheduleRouter{Controller: ctrl}
}

// Setup registers fixed schedule routes
func (r *FixedScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	routes := privateRoutes.Group("/fixed-schedule", mw.AuthMiddleware())
	routes.GET("", r.Controller.Get)
	routes.PUT("", r.Controller.Update)
}
