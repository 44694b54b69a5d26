package service

import (
	"context"
	"fmt"
	"time"

	"moim-api/core/constants"
	"moim-api/core/errors"
	"moim-api/core/logger"
	"moim-api/core/utils"
	"moim-api/modules/event/dto"
	"moim-api/modules/event/entity"
	"moim-api/modules/event/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

// EventService handles event business logic.
type EventService struct {
	repo       repository.EventRepositoryInterface
	aggregator *Aggregator
}

// EventServiceInterface defines the service contract.
type EventServiceInterface interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetEventByShareCode(ctx context.Context, code string) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, code string) *errors.AppError
	CreateRange(ctx context.Context, code string, req *dto.CreateRangeRequest) ([]dto.SlotResponse, *errors.AppError)
	GetSlots(ctx context.Context, code string) ([]dto.SlotResponse, *errors.AppError)
	JoinMember(ctx context.Context, code string, req *dto.JoinMemberRequest) (*dto.MemberTokenResponse, *errors.AppError)
	JoinUser(ctx context.Context, code string, userID uuid.UUID, nickname string) (*dto.EventResponse, *errors.AppError)
	SubmitSelections(ctx context.Context, code string, participant Participant, req *dto.SubmitSelectionsRequest) *errors.AppError
	GetCandidates(ctx context.Context, code string) (*dto.CandidatesResponse, *errors.AppError)
}

// NewEventService creates a new event service.
func NewEventService(repo repository.EventRepositoryInterface) EventServiceInterface {
	return &EventService{
		repo:       repo,
		aggregator: NewAggregator(),
	}
}

// CreateEvent creates an event with a public share code and slug.
func (s *EventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	startMin, err := utils.ClockToMinutes(req.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time must be HH:MM", err)
	}
	endMin, err := utils.ClockToMinutes(req.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be HH:MM", err)
	}
	if startMin%constants.SlotIntervalMinutes != 0 || endMin%constants.SlotIntervalMinutes != 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "times must fall on the 30-minute grid", nil)
	}
	if startMin >= endMin {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "start_time must be before end_time", nil)
	}

	code := utils.GenerateShareCode()
	event := &entity.Event{
		Title:     req.Title,
		ShareCode: code,
		ShareSlug: fmt.Sprintf("%s-%s", slug.Make(req.Title), code),
		Category:  req.Category,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create event", err)
	}

	return dto.ToEventResponse(created), nil
}

// GetEventByShareCode retrieves an event by its public code.
func (s *EventService) GetEventByShareCode(ctx context.Context, code string) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.findEvent(ctx, code)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToEventResponse(event), nil
}

// DeleteEvent deletes an event and all of its dependents.
func (s *EventService) DeleteEvent(ctx context.Context, code string) *errors.AppError {
	event, appErr := s.findEvent(ctx, code)
	if appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteEvent(ctx, event.ID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete event", err)
	}
	return nil
}

// CreateRange registers new time points for the event and generates their
// 30-minute slots. Slots are reference data: generated once, never mutated.
func (s *EventService) CreateRange(ctx context.Context, code string, req *dto.CreateRangeRequest) ([]dto.SlotResponse, *errors.AppError) {
	event, appErr := s.findEvent(ctx, code)
	if appErr != nil {
		return nil, appErr
	}

	for _, tp := range req.TimePoints {
		if err := validateTimePoint(event.Category, tp); err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
		}
	}

	startMin, _ := utils.ClockToMinutes(event.StartTime)
	endMin, _ := utils.ClockToMinutes(event.EndTime)

	position, err := s.repo.MaxSlotPosition(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate slots", err)
	}

	slots := make([]entity.Slot, 0)
	for _, tp := range req.TimePoints {
		for m := startMin; m < endMin; m += constants.SlotIntervalMinutes {
			position++
			slots = append(slots, entity.Slot{
				EventID:   event.ID,
				TimePoint: tp,
				SlotTime:  utils.MinutesToClock(m),
				Position:  position,
			})
		}
	}

	if err := s.repo.CreateSlots(ctx, slots); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate slots", err)
	}

	logger.Info("EventService:CreateRange", "event_id", event.ID, "time_points", len(req.TimePoints), "slots", len(slots))

	result := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		result[i] = dto.SlotResponse{TimePoint: slot.TimePoint, Time: slot.SlotTime}
	}
	return result, nil
}

// GetSlots returns the event's generated slots in generation order.
func (s *EventService) GetSlots(ctx context.Context, code string) ([]dto.SlotResponse, *errors.AppError) {
	event, appErr := s.findEvent(ctx, code)
	if appErr != nil {
		return nil, appErr
	}

	slots, err := s.repo.GetSlotsByEventID(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slots", err)
	}

	result := make([]dto.SlotResponse, len(slots))
	for i, slot := range slots {
		result[i] = dto.SlotResponse{TimePoint: slot.TimePoint, Time: slot.SlotTime}
	}
	return result, nil
}

// JoinMember creates an anonymous member for the event, or logs an existing
// member back in when the PIN matches.
func (s *EventService) JoinMember(ctx context.Context, code string, req *dto.JoinMemberRequest) (*dto.MemberTokenResponse, *errors.AppError) {
	event, appErr := s.findEvent(ctx, code)
	if appErr != nil {
		return nil, appErr
	}

	member, err := s.repo.GetMemberByEventAndName(ctx, event.ID, req.Name)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up member", err)
	}

	if member != nil {
		if bcrypt.CompareHashAndPassword([]byte(member.PinHash), []byte(req.Pin)) != nil {
			return nil, errors.NewAppError(errors.ErrUnauthorized, "Wrong PIN for this name", nil)
		}
	} else {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to join event", hashErr)
		}
		member, err = s.repo.CreateMember(ctx, &entity.Member{
			EventID: event.ID,
			Name:    req.Name,
			PinHash: string(hash),
		})
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to join event", err)
		}
	}

	token, err := utils.GenerateMemberToken(member.ID, event.ID, member.Name)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to issue token", err)
	}

	return &dto.MemberTokenResponse{Token: token, Name: member.Name}, nil
}

// JoinUser adds a registered user to the event roster.
func (s *EventService) JoinUser(ctx context.Context, code string, userID uuid.UUID, nickname string) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.findEvent(ctx, code)
	if appErr != nil {
		return nil, appErr
	}

	eu := &entity.EventUser{EventID: event.ID, UserID: userID, Nickname: nickname}
	if err := s.repo.AddEventUser(ctx, eu); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to join event", err)
	}

	return dto.ToEventResponse(event), nil
}

// SubmitSelections replaces the participant's availability for the event.
// Resubmission is a full overwrite, not a patch; references to slots the
// event never generated are dropped.
func (s *EventService) SubmitSelections(ctx context.Context, code string, participant Participant, req *dto.SubmitSelectionsRequest) *errors.AppError {
	event, appErr := s.findEvent(ctx, code)
	if appErr != nil {
		return appErr
	}

	slots, err := s.repo.GetSlotsByEventID(ctx, event.ID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load slots", err)
	}

	byKey := make(map[SlotKey]uuid.UUID, len(slots))
	for _, slot := range slots {
		byKey[SlotKey{TimePoint: slot.TimePoint, Time: slot.SlotTime}] = slot.ID
	}

	slotIDs := make([]uuid.UUID, 0, len(req.Selections))
	dropped := 0
	for _, ref := range req.Selections {
		id, ok := byKey[SlotKey{TimePoint: ref.TimePoint, Time: ref.Time}]
		if !ok {
			dropped++
			continue
		}
		slotIDs = append(slotIDs, id)
	}
	if dropped > 0 {
		logger.Warn("EventService:SubmitSelections:DroppedUnknownSlots", "event_id", event.ID, "dropped", dropped)
	}

	switch participant.Kind {
	case ParticipantMember:
		err = s.repo.ReplaceMemberSelections(ctx, event.ID, participant.ID, slotIDs)
	case ParticipantUser:
		err = s.repo.ReplaceUserSelections(ctx, event.ID, participant.ID, slotIDs)
	default:
		return errors.NewAppError(errors.ErrForbidden, "Unknown participant kind", nil)
	}
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to save selections", err)
	}

	return nil
}

// GetCandidates computes the merged windows of maximal availability for the
// event. An event with no selections yields an empty block list; that is a
// success, not a failure.
func (s *EventService) GetCandidates(ctx context.Context, code string) (*dto.CandidatesResponse, *errors.AppError) {
	event, appErr := s.findEvent(ctx, code)
	if appErr != nil {
		return nil, appErr
	}

	rows, err := s.repo.ListSelectionRows(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load selections", err)
	}
	roster, err := s.repo.GetRosterNames(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load roster", err)
	}

	index := BuildSelectionIndex(rows)
	blocks := s.aggregator.Aggregate(index, roster, event.Category)

	result := make([]dto.CandidateBlockResponse, len(blocks))
	for i, b := range blocks {
		result[i] = dto.CandidateBlockResponse{
			TimePoint:       b.TimePoint,
			StartTime:       b.StartTime,
			EndTime:         b.EndTime,
			PossibleCount:   b.PossibleCount,
			PossibleNames:   b.PossibleNames,
			ImpossibleNames: b.ImpossibleNames,
		}
	}

	return &dto.CandidatesResponse{
		EventID:  event.ID.String(),
		Category: event.Category,
		Blocks:   result,
	}, nil
}

func (s *EventService) findEvent(ctx context.Context, code string) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetEventByShareCode(ctx, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return event, nil
}

// validateTimePoint checks that a time point matches the event's category:
// "YYYY.MM.DD" for date events, a weekday label for day events.
func validateTimePoint(category, timePoint string) error {
	switch category {
	case constants.CategoryDate:
		if _, err := time.Parse("2006.01.02", timePoint); err != nil {
			return fmt.Errorf("time point %q is not a YYYY.MM.DD date", timePoint)
		}
	case constants.CategoryDay:
		if constants.WeekdayIndex(timePoint) < 0 {
			return fmt.Errorf("time point %q is not a weekday label", timePoint)
		}
	default:
		return fmt.Errorf("unknown event category %q", category)
	}
	return nil
}
