package service

import (
	"context"
	"reflect"
	"testing"

	"moim-api/core/constants"
	"moim-api/core/errors"
	"moim-api/modules/event/dto"
	"moim-api/modules/event/entity"

	"github.com/google/uuid"
)

type mockEventRepository struct {
	CreateEventFunc             func(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByIDFunc            func(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventByShareCodeFunc     func(ctx context.Context, code string) (*entity.Event, error)
	DeleteEventFunc             func(ctx context.Context, id uuid.UUID) error
	CreateSlotsFunc             func(ctx context.Context, slots []entity.Slot) error
	GetSlotsByEventIDFunc       func(ctx context.Context, eventID uuid.UUID) ([]entity.Slot, error)
	MaxSlotPositionFunc         func(ctx context.Context, eventID uuid.UUID) (int, error)
	GetMemberByEventAndNameFunc func(ctx context.Context, eventID uuid.UUID, name string) (*entity.Member, error)
	CreateMemberFunc            func(ctx context.Context, member *entity.Member) (*entity.Member, error)
	AddEventUserFunc            func(ctx context.Context, eu *entity.EventUser) error
	GetRosterNamesFunc          func(ctx context.Context, eventID uuid.UUID) ([]string, error)
	ListSelectionRowsFunc       func(ctx context.Context, eventID uuid.UUID) ([]entity.SelectionRow, error)
	ReplaceMemberSelectionsFunc func(ctx context.Context, eventID, memberID uuid.UUID, slotIDs []uuid.UUID) error
	ReplaceUserSelectionsFunc   func(ctx context.Context, eventID, userID uuid.UUID, slotIDs []uuid.UUID) error
}

func (m *mockEventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	return m.CreateEventFunc(ctx, event)
}

func (m *mockEventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return m.GetEventByIDFunc(ctx, id)
}

func (m *mockEventRepository) GetEventByShareCode(ctx context.Context, code string) (*entity.Event, error) {
	return m.GetEventByShareCodeFunc(ctx, code)
}

func (m *mockEventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return m.DeleteEventFunc(ctx, id)
}

func (m *mockEventRepository) CreateSlots(ctx context.Context, slots []entity.Slot) error {
	return m.CreateSlotsFunc(ctx, slots)
}

func (m *mockEventRepository) GetSlotsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Slot, error) {
	return m.GetSlotsByEventIDFunc(ctx, eventID)
}

func (m *mockEventRepository) MaxSlotPosition(ctx context.Context, eventID uuid.UUID) (int, error) {
	return m.MaxSlotPositionFunc(ctx, eventID)
}

func (m *mockEventRepository) GetMemberByEventAndName(ctx context.Context, eventID uuid.UUID, name string) (*entity.Member, error) {
	return m.GetMemberByEventAndNameFunc(ctx, eventID, name)
}

func (m *mockEventRepository) CreateMember(ctx context.Context, member *entity.Member) (*entity.Member, error) {
	return m.CreateMemberFunc(ctx, member)
}

func (m *mockEventRepository) AddEventUser(ctx context.Context, eu *entity.EventUser) error {
	return m.AddEventUserFunc(ctx, eu)
}

func (m *mockEventRepository) GetRosterNames(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	return m.GetRosterNamesFunc(ctx, eventID)
}

func (m *mockEventRepository) ListSelectionRows(ctx context.Context, eventID uuid.UUID) ([]entity.SelectionRow, error) {
	return m.ListSelectionRowsFunc(ctx, eventID)
}

func (m *mockEventRepository) ReplaceMemberSelections(ctx context.Context, eventID, memberID uuid.UUID, slotIDs []uuid.UUID) error {
	return m.ReplaceMemberSelectionsFunc(ctx, eventID, memberID, slotIDs)
}

func (m *mockEventRepository) ReplaceUserSelections(ctx context.Context, eventID, userID uuid.UUID, slotIDs []uuid.UUID) error {
	return m.ReplaceUserSelectionsFunc(ctx, eventID, userID, slotIDs)
}

func dayEvent(code string) *entity.Event {
	return &entity.Event{
		ID:        uuid.New(),
		Title:     "스터디 모임",
		ShareCode: code,
		Category:  constants.CategoryDay,
		StartTime: "09:00",
		EndTime:   "11:00",
	}
}

func TestCreateEventRejectsOffGridTimes(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"off grid start", "09:15", "11:00"},
		{"off grid end", "09:00", "10:45"},
		{"inverted range", "11:00", "09:00"},
		{"equal times", "09:00", "09:00"},
		{"not a clock", "nine", "11:00"},
	}

	svc := NewEventService(&mockEventRepository{
		CreateEventFunc: func(_ context.Context, _ *entity.Event) (*entity.Event, error) {
			t.Fatal("CreateEvent must not reach the repository on invalid input")
			return nil, nil
		},
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.CreateEvent(context.Background(), &dto.CreateEventRequest{
				Title:     "스터디 모임",
				Category:  constants.CategoryDay,
				StartTime: tt.start,
				EndTime:   tt.end,
			})
			if appErr == nil || appErr.Code != errors.ErrInvalidInput {
				t.Errorf("expected invalid input, got %+v", appErr)
			}
		})
	}
}

func TestCreateRangeGeneratesSlotsInOrder(t *testing.T) {
	event := dayEvent("abcd1234")
	var created []entity.Slot

	svc := NewEventService(&mockEventRepository{
		GetEventByShareCodeFunc: func(_ context.Context, _ string) (*entity.Event, error) {
			return event, nil
		},
		MaxSlotPositionFunc: func(_ context.Context, _ uuid.UUID) (int, error) {
			return 0, nil
		},
		CreateSlotsFunc: func(_ context.Context, slots []entity.Slot) error {
			created = slots
			return nil
		},
	})

	result, appErr := svc.CreateRange(context.Background(), event.ShareCode, &dto.CreateRangeRequest{
		TimePoints: []string{"월", "수"},
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	// 09:00-11:00 yields four 30-minute slots per time point.
	if len(created) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(created))
	}
	for i, slot := range created {
		if slot.Position != i+1 {
			t.Errorf("slot %d has position %d", i, slot.Position)
		}
	}
	if created[0].TimePoint != "월" || created[0].SlotTime != "09:00" {
		t.Errorf("unexpected first slot %+v", created[0])
	}
	if created[3].SlotTime != "10:30" || created[4].TimePoint != "수" {
		t.Errorf("unexpected slot boundary %+v / %+v", created[3], created[4])
	}
	if len(result) != 8 {
		t.Errorf("expected 8 slot responses, got %d", len(result))
	}
}

func TestCreateRangeContinuesPositionsAcrossCalls(t *testing.T) {
	event := dayEvent("abcd1234")
	var created []entity.Slot

	svc := NewEventService(&mockEventRepository{
		GetEventByShareCodeFunc: func(_ context.Context, _ string) (*entity.Event, error) {
			return event, nil
		},
		MaxSlotPositionFunc: func(_ context.Context, _ uuid.UUID) (int, error) {
			return 8, nil
		},
		CreateSlotsFunc: func(_ context.Context, slots []entity.Slot) error {
			created = slots
			return nil
		},
	})

	_, appErr := svc.CreateRange(context.Background(), event.ShareCode, &dto.CreateRangeRequest{
		TimePoints: []string{"금"},
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if created[0].Position != 9 {
		t.Errorf("expected positions to continue at 9, got %d", created[0].Position)
	}
}

func TestCreateRangeRejectsMismatchedTimePoints(t *testing.T) {
	event := dayEvent("abcd1234")
	svc := NewEventService(&mockEventRepository{
		GetEventByShareCodeFunc: func(_ context.Context, _ string) (*entity.Event, error) {
			return event, nil
		},
	})

	// A date string on a DAY event must be refused.
	_, appErr := svc.CreateRange(context.Background(), event.ShareCode, &dto.CreateRangeRequest{
		TimePoints: []string{"2026.01.28"},
	})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("expected invalid input, got %+v", appErr)
	}
}

func TestSubmitSelectionsReplacesAndDropsUnknownSlots(t *testing.T) {
	event := dayEvent("abcd1234")
	slotA := entity.Slot{ID: uuid.New(), EventID: event.ID, TimePoint: "월", SlotTime: "09:00", Position: 1}
	slotB := entity.Slot{ID: uuid.New(), EventID: event.ID, TimePoint: "월", SlotTime: "09:30", Position: 2}
	memberID := uuid.New()
	var replaced []uuid.UUID

	svc := NewEventService(&mockEventRepository{
		GetEventByShareCodeFunc: func(_ context.Context, _ string) (*entity.Event, error) {
			return event, nil
		},
		GetSlotsByEventIDFunc: func(_ context.Context, _ uuid.UUID) ([]entity.Slot, error) {
			return []entity.Slot{slotA, slotB}, nil
		},
		ReplaceMemberSelectionsFunc: func(_ context.Context, eventID, id uuid.UUID, slotIDs []uuid.UUID) error {
			if eventID != event.ID || id != memberID {
				t.Errorf("unexpected replace target %s/%s", eventID, id)
			}
			replaced = slotIDs
			return nil
		},
	})

	appErr := svc.SubmitSelections(context.Background(), event.ShareCode,
		Participant{Kind: ParticipantMember, ID: memberID, Name: "지은"},
		&dto.SubmitSelectionsRequest{Selections: []dto.SlotRef{
			{TimePoint: "월", Time: "09:30"},
			{TimePoint: "월", Time: "23:00"},
			{TimePoint: "토", Time: "09:00"},
		}},
	)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if !reflect.DeepEqual(replaced, []uuid.UUID{slotB.ID}) {
		t.Errorf("unexpected replaced set %v", replaced)
	}
}

func TestGetCandidatesAssemblesEngineOutput(t *testing.T) {
	event := dayEvent("abcd1234")
	svc := NewEventService(&mockEventRepository{
		GetEventByShareCodeFunc: func(_ context.Context, _ string) (*entity.Event, error) {
			return event, nil
		},
		ListSelectionRowsFunc: func(_ context.Context, _ uuid.UUID) ([]entity.SelectionRow, error) {
			return []entity.SelectionRow{
				memberRow("월", "09:00", "지은"),
				memberRow("월", "09:00", "민수"),
				memberRow("월", "09:30", "지은"),
				memberRow("월", "09:30", "민수"),
				memberRow("월", "10:00", "민수"),
			}, nil
		},
		GetRosterNamesFunc: func(_ context.Context, _ uuid.UUID) ([]string, error) {
			return []string{"지은", "민수", "하늘"}, nil
		},
	})

	result, appErr := svc.GetCandidates(context.Background(), event.ShareCode)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if result.Category != constants.CategoryDay {
		t.Errorf("unexpected category %q", result.Category)
	}
	if len(result.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(result.Blocks))
	}

	block := result.Blocks[0]
	if block.StartTime != "09:00" || block.EndTime != "10:00" {
		t.Errorf("unexpected window %s-%s", block.StartTime, block.EndTime)
	}
	if block.PossibleCount != 2 {
		t.Errorf("unexpected count %d", block.PossibleCount)
	}
	if !reflect.DeepEqual(block.PossibleNames, []string{"지은", "민수"}) {
		t.Errorf("unexpected possible names %v", block.PossibleNames)
	}
	if !reflect.DeepEqual(block.ImpossibleNames, []string{"하늘"}) {
		t.Errorf("unexpected impossible names %v", block.ImpossibleNames)
	}
}

func TestGetCandidatesEmptyEventSucceeds(t *testing.T) {
	event := dayEvent("abcd1234")
	svc := NewEventService(&mockEventRepository{
		GetEventByShareCodeFunc: func(_ context.Context, _ string) (*entity.Event, error) {
			return event, nil
		},
		ListSelectionRowsFunc: func(_ context.Context, _ uuid.UUID) ([]entity.SelectionRow, error) {
			return nil, nil
		},
		GetRosterNamesFunc: func(_ context.Context, _ uuid.UUID) ([]string, error) {
			return []string{"지은"}, nil
		},
	})

	result, appErr := svc.GetCandidates(context.Background(), event.ShareCode)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result.Blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(result.Blocks))
	}
}

func TestGetEventByShareCodeNotFound(t *testing.T) {
	svc := NewEventService(&mockEventRepository{
		GetEventByShareCodeFunc: func(_ context.Context, _ string) (*entity.Event, error) {
			return nil, nil
		},
	})

	_, appErr := svc.GetEventByShareCode(context.Background(), "missing1")
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Errorf("expected not found, got %+v", appErr)
	}
}
