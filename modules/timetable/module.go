package timetable

import (
	"moim-api/core/cache"
	"moim-api/core/database"
	"moim-api/core/middleware"
	fixedRepository "moim-api/modules/fixedschedule/repository"
	fixedService "moim-api/modules/fixedschedule/service"
	"moim-api/modules/timetable/client"
	"moim-api/modules/timetable/controller"
	"moim-api/modules/timetable/router"
	"moim-api/modules/timetable/service"
	"moim-api/modules/timetable/worker"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Init initializes the timetable module and registers routes
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, redisClient *redis.Client, tasks *asynq.Client) {
	fixedRepo := fixedRepository.NewFixedScheduleRepository(db)
	fixedSvc := fixedService.NewFixedScheduleService(fixedRepo)

	feed := client.NewHTTPFeedClient()
	svc := service.NewTimetableService(feed, cache.NewRedisCache(redisClient), tasks, fixedSvc)
	ctrl := controller.NewTimetableController(svc)
	rtr := router.NewTimetableRouter(ctrl)

	rtr.Setup(e, mw)
}

// RegisterWorker mounts the background refresh handler on an asynq mux.
func RegisterWorker(mux *asynq.ServeMux, redisClient *redis.Client) {
	feed := client.NewHTTPFeedClient()
	svc := service.NewTimetableService(feed, cache.NewRedisCache(redisClient), nil, nil)
	mux.Handle(service.TypeTimetableRefresh, worker.NewRefreshHandler(svc))
}
