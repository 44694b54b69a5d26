package event

import (
	"moim-api/core/database"
	"moim-api/core/middleware"
	"moim-api/modules/event/controller"
	"moim-api/modules/event/repository"
	"moim-api/modules/event/router"
	"moim-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
}
