package service

import (
	"context"
	"encoding/json"
	"time"

	"moim-api/core/cache"
	"moim-api/core/constants"
	"moim-api/core/errors"
	"moim-api/core/logger"
	fixedDto "moim-api/modules/fixedschedule/dto"
	fixedService "moim-api/modules/fixedschedule/service"
	"moim-api/modules/timetable/client"
	"moim-api/modules/timetable/dto"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TimetableService fetches and normalizes external timetables.
type TimetableService interface {
	GetTimetable(ctx context.Context, identifier string) (*dto.TimetableResponse, *errors.AppError)
	RefreshTimetable(ctx context.Context, identifier string) (*dto.TimetableResponse, *errors.AppError)
	ImportToFixedSchedule(ctx context.Context, userID uuid.UUID, identifier string) (*dto.TimetableResponse, *errors.AppError)
}

type timetableService struct {
	feed     client.FeedClient
	cache    cache.Cache
	tasks    *asynq.Client
	fixedSvc fixedService.FixedScheduleServiceInterface
}

// NewTimetableService creates a new timetable service. tasks may be nil when
// background refresh is not wanted (worker context).
func NewTimetableService(feed client.FeedClient, c cache.Cache, tasks *asynq.Client, fixedSvc fixedService.FixedScheduleServiceInterface) TimetableService {
	return &timetableService{
		feed:     feed,
		cache:    c,
		tasks:    tasks,
		fixedSvc: fixedSvc,
	}
}

// GetTimetable returns the normalized timetable for an identifier, serving
// from cache when possible. A cache miss fetches synchronously and schedules
// a background refresh so the entry stays warm.
func (s *timetableService) GetTimetable(ctx context.Context, identifier string) (*dto.TimetableResponse, *errors.AppError) {
	key := constants.TimetableCacheKeyPrefix + identifier

	if cached, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		var result dto.TimetableResponse
		if unmarshalErr := json.Unmarshal([]byte(cached), &result); unmarshalErr == nil {
			return &result, nil
		}
		// Unreadable cache entries are dropped and refetched.
		_ = s.cache.Delete(ctx, key)
	}

	result, appErr := s.RefreshTimetable(ctx, identifier)
	if appErr != nil {
		return nil, appErr
	}

	s.scheduleRefresh(identifier)
	return result, nil
}

// RefreshTimetable fetches the feed, normalizes it and rewrites the cache,
// bypassing any cached value.
func (s *timetableService) RefreshTimetable(ctx context.Context, identifier string) (*dto.TimetableResponse, *errors.AppError) {
	raw, err := s.feed.Fetch(ctx, identifier)
	if err != nil {
		logger.Error("TimetableService:RefreshTimetable:Fetch", err)
		return nil, errors.NewAppError(errors.ErrTimetableParse, "Timetable feed unavailable", err)
	}

	result, appErr := NormalizeTimetable(raw)
	if appErr != nil {
		return nil, appErr
	}
	if result.Skipped > 0 {
		logger.Warn("TimetableService:RefreshTimetable:SkippedEntries", "identifier", identifier, "skipped", result.Skipped)
	}

	if encoded, err := json.Marshal(result); err == nil {
		ttl := time.Duration(constants.TimetableCacheTTLHours) * time.Hour
		if cacheErr := s.cache.Set(ctx, constants.TimetableCacheKeyPrefix+identifier, string(encoded), ttl); cacheErr != nil {
			logger.Warn("TimetableService:RefreshTimetable:CacheSet", "error", cacheErr)
		}
	}

	return result, nil
}

// ImportToFixedSchedule normalizes the external timetable and stores it as
// the user's fixed schedule in one step.
func (s *timetableService) ImportToFixedSchedule(ctx context.Context, userID uuid.UUID, identifier string) (*dto.TimetableResponse, *errors.AppError) {
	result, appErr := s.GetTimetable(ctx, identifier)
	if appErr != nil {
		return nil, appErr
	}

	days := make([]fixedDto.DayTimes, len(result.Days))
	for i, d := range result.Days {
		days[i] = fixedDto.DayTimes{Day: d.Day, Times: d.Times}
	}

	if appErr := s.fixedSvc.Consolidate(ctx, userID, days); appErr != nil {
		return nil, appErr
	}

	return result, nil
}

// scheduleRefresh enqueues a delayed re-fetch halfway through the cache TTL.
func (s *timetableService) scheduleRefresh(identifier string) {
	if s.tasks == nil {
		return
	}
	delay := time.Duration(constants.TimetableCacheTTLHours) * time.Hour / 2
	task, opts, err := NewRefreshTask(identifier, delay)
	if err != nil {
		logger.Warn("TimetableService:ScheduleRefresh:Build", "error", err)
		return
	}
	if _, err := s.tasks.Enqueue(task, opts...); err != nil {
		logger.Warn("TimetableService:ScheduleRefresh:Enqueue", "error", err)
	}
}
