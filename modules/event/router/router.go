package router

import (
	"moim-api/core/middleware"
	"moim-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event routes
type EventRouter struct {
	EventController *controller.EventController
}

// NewEventRouter creates a new router
func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{
		EventController: eventController,
	}
}

// Setup registers event routes
func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	publicRoutes := v1.Group("/public")

	eventRoutes := publicRoutes.Group("/events")
	eventRoutes.POST("", r.EventController.CreateEvent)
	eventRoutes.GET("/:code", r.EventController.GetEvent)
	eventRoutes.DELETE("/:code", r.EventController.DeleteEvent)
	eventRoutes.POST("/:code/ranges", r.EventController.CreateRange)
	eventRoutes.GET("/:code/slots", r.EventController.GetSlots)
	eventRoutes.POST("/:code/members", r.EventController.JoinMember)
	eventRoutes.GET("/:code/candidates", r.EventController.GetCandidates)

	// Routes needing a participant identity (member or user token)
	participantRoutes := publicRoutes.Group("/events", mw.ParticipantMiddleware())
	participantRoutes.PUT("/:code/selections", r.EventController.SubmitSelections)

	// User-only join
	privateRoutes := v1.Group("/private")
	userEventRoutes := privateRoutes.Group("/events", mw.AuthMiddleware())
	userEventRoutes.POST("/:code/join", r.EventController.JoinUser)
}
