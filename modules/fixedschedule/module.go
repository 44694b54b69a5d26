package fixedschedule

import (
	"moim-api/core/database"
	"moim-api/core/middleware"
	"moim-api/modules/fixedschedule/controller"
	"moim-api/modules/fixedschedule/repository"
	"moim-api/modules/fixedschedule/router"
	"moim-api/modules/fixedschedule/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the fixed schedule module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewFixedScheduleRepository(db)
	svc := service.NewFixedScheduleService(repo)
	ctrl := controller.NewFixedScheduleController(svc)
	rtr := router.NewFixedScheduleRouter(ctrl)

	rtr.Setup(e, mw)
}
