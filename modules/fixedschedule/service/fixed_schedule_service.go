package service

import (
	"context"
	"fmt"

	"moim-api/core/errors"
	"moim-api/core/logger"
	"moim-api/modules/fixedschedule/dto"
	"moim-api/modules/fixedschedule/repository"

	"github.com/google/uuid"
)

// FixedScheduleService consolidates a user's recurring weekly availability
// against the static reference slot grid.
type FixedScheduleService struct {
	repo repository.FixedScheduleRepositoryInterface
}

// FixedScheduleServiceInterface defines the service contract.
type FixedScheduleServiceInterface interface {
	Consolidate(ctx context.Context, userID uuid.UUID, days []dto.DayTimes) *errors.AppError
	Read(ctx context.Context, userID uuid.UUID) (*dto.FixedScheduleResponse, *errors.AppError)
}

// NewFixedScheduleService creates a new fixed schedule service.
func NewFixedScheduleService(repo repository.FixedScheduleRepositoryInterface) FixedScheduleServiceInterface {
	return &FixedScheduleService{repo: repo}
}

// Consolidate replaces the user's stored fixed selections with the submitted
// weekday/time pairs. Times with no matching reference slot are dropped
// silently; a weekday with no reference slots at all aborts the update.
func (s *FixedScheduleService) Consolidate(ctx context.Context, userID uuid.UUID, days []dto.DayTimes) *errors.AppError {
	scheduleIDs := make([]uuid.UUID, 0)
	dropped := 0

	for _, day := range days {
		reference, err := s.repo.GetReferenceSlotsByDay(ctx, day.Day)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to load reference slots", err)
		}
		if len(reference) == 0 {
			return errors.NewAppError(errors.ErrReferenceSlotMissing,
				fmt.Sprintf("No reference slots configured for %q", day.Day), nil)
		}

		byTime := make(map[string]uuid.UUID, len(reference))
		for _, slot := range reference {
			byTime[slot.SlotTime] = slot.ID
		}

		for _, t := range day.Times {
			id, ok := byTime[t]
			if !ok {
				dropped++
				continue
			}
			scheduleIDs = append(scheduleIDs, id)
		}
	}

	if dropped > 0 {
		logger.Warn("FixedScheduleService:Consolidate:DroppedUnknownTimes", "user_id", userID, "dropped", dropped)
	}

	if err := s.repo.ReplaceSelections(ctx, userID, scheduleIDs); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save fixed schedule", err)
	}

	return nil
}

// Read returns the user's stored fixed slots grouped by weekday, in the
// order weekdays are first encountered.
func (s *FixedScheduleService) Read(ctx context.Context, userID uuid.UUID) (*dto.FixedScheduleResponse, *errors.AppError) {
	rows, err := s.repo.ListSelectionRows(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load fixed schedule", err)
	}

	order := make([]string, 0)
	grouped := make(map[string][]string)
	for _, row := range rows {
		if _, seen := grouped[row.Day]; !seen {
			order = append(order, row.Day)
		}
		grouped[row.Day] = append(grouped[row.Day], row.SlotTime)
	}

	days := make([]dto.DayTimes, 0, len(order))
	for _, day := range order {
		days = append(days, dto.DayTimes{Day: day, Times: grouped[day]})
	}

	return &dto.FixedScheduleResponse{Days: days}, nil
}
