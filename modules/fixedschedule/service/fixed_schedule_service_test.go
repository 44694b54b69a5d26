package service

import (
	"context"
	"reflect"
	"testing"

	"moim-api/core/errors"
	"moim-api/modules/fixedschedule/dto"
	"moim-api/modules/fixedschedule/entity"

	"github.com/google/uuid"
)

type mockFixedScheduleRepository struct {
	GetReferenceSlotsByDayFunc func(ctx context.Context, day string) ([]entity.FixedSchedule, error)
	ReplaceSelectionsFunc      func(ctx context.Context, userID uuid.UUID, scheduleIDs []uuid.UUID) error
	ListSelectionRowsFunc      func(ctx context.Context, userID uuid.UUID) ([]entity.FixedSelectionRow, error)
}

func (m *mockFixedScheduleRepository) GetReferenceSlotsByDay(ctx context.Context, day string) ([]entity.FixedSchedule, error) {
	return m.GetReferenceSlotsByDayFunc(ctx, day)
}

func (m *mockFixedScheduleRepository) ReplaceSelections(ctx context.Context, userID uuid.UUID, scheduleIDs []uuid.UUID) error {
	return m.ReplaceSelectionsFunc(ctx, userID, scheduleIDs)
}

func (m *mockFixedScheduleRepository) ListSelectionRows(ctx context.Context, userID uuid.UUID) ([]entity.FixedSelectionRow, error) {
	return m.ListSelectionRowsFunc(ctx, userID)
}

func referenceGrid(day string, times ...string) []entity.FixedSchedule {
	slots := make([]entity.FixedSchedule, len(times))
	for i, t := range times {
		slots[i] = entity.FixedSchedule{ID: uuid.New(), Day: day, SlotTime: t, Position: i}
	}
	return slots
}

func TestConsolidateResolvesTimesToReferenceSlots(t *testing.T) {
	grid := referenceGrid("월", "09:00", "09:30", "10:00")
	var saved []uuid.UUID

	repo := &mockFixedScheduleRepository{
		GetReferenceSlotsByDayFunc: func(_ context.Context, day string) ([]entity.FixedSchedule, error) {
			if day != "월" {
				t.Fatalf("unexpected day lookup %q", day)
			}
			return grid, nil
		},
		ReplaceSelectionsFunc: func(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
			saved = ids
			return nil
		},
	}

	svc := NewFixedScheduleService(repo)
	appErr := svc.Consolidate(context.Background(), uuid.New(), []dto.DayTimes{
		{Day: "월", Times: []string{"09:00", "10:00"}},
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	want := []uuid.UUID{grid[0].ID, grid[2].ID}
	if !reflect.DeepEqual(saved, want) {
		t.Errorf("saved %v, want %v", saved, want)
	}
}

func TestConsolidateDropsUnknownTimes(t *testing.T) {
	grid := referenceGrid("화", "09:00")
	var saved []uuid.UUID

	repo := &mockFixedScheduleRepository{
		GetReferenceSlotsByDayFunc: func(_ context.Context, _ string) ([]entity.FixedSchedule, error) {
			return grid, nil
		},
		ReplaceSelectionsFunc: func(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
			saved = ids
			return nil
		},
	}

	svc := NewFixedScheduleService(repo)
	appErr := svc.Consolidate(context.Background(), uuid.New(), []dto.DayTimes{
		{Day: "화", Times: []string{"09:00", "09:07", "25:00"}},
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(saved) != 1 || saved[0] != grid[0].ID {
		t.Errorf("unexpected saved set %v", saved)
	}
}

func TestConsolidateFailsWhenWeekdayHasNoReferenceSlots(t *testing.T) {
	repo := &mockFixedScheduleRepository{
		GetReferenceSlotsByDayFunc: func(_ context.Context, _ string) ([]entity.FixedSchedule, error) {
			return nil, nil
		},
		ReplaceSelectionsFunc: func(_ context.Context, _ uuid.UUID, _ []uuid.UUID) error {
			t.Fatal("ReplaceSelections must not run when the grid is missing")
			return nil
		},
	}

	svc := NewFixedScheduleService(repo)
	appErr := svc.Consolidate(context.Background(), uuid.New(), []dto.DayTimes{
		{Day: "일", Times: []string{"09:00"}},
	})
	if appErr == nil || appErr.Code != errors.ErrReferenceSlotMissing {
		t.Errorf("expected reference slot error, got %+v", appErr)
	}
}

func TestConsolidateEmptySubmissionClearsSelections(t *testing.T) {
	called := false
	repo := &mockFixedScheduleRepository{
		GetReferenceSlotsByDayFunc: func(_ context.Context, _ string) ([]entity.FixedSchedule, error) {
			t.Fatal("no weekday lookup expected for an empty submission")
			return nil, nil
		},
		ReplaceSelectionsFunc: func(_ context.Context, _ uuid.UUID, ids []uuid.UUID) error {
			called = true
			if len(ids) != 0 {
				t.Errorf("expected empty selection set, got %v", ids)
			}
			return nil
		},
	}

	svc := NewFixedScheduleService(repo)
	if appErr := svc.Consolidate(context.Background(), uuid.New(), nil); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if !called {
		t.Error("expected stored selections to be replaced")
	}
}

func TestReadGroupsRowsByDay(t *testing.T) {
	repo := &mockFixedScheduleRepository{
		ListSelectionRowsFunc: func(_ context.Context, _ uuid.UUID) ([]entity.FixedSelectionRow, error) {
			return []entity.FixedSelectionRow{
				{Day: "월", SlotTime: "09:00"},
				{Day: "월", SlotTime: "09:30"},
				{Day: "목", SlotTime: "14:00"},
			}, nil
		},
	}

	svc := NewFixedScheduleService(repo)
	result, appErr := svc.Read(context.Background(), uuid.New())
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	want := []dto.DayTimes{
		{Day: "월", Times: []string{"09:00", "09:30"}},
		{Day: "목", Times: []string{"14:00"}},
	}
	if !reflect.DeepEqual(result.Days, want) {
		t.Errorf("unexpected days %+v", result.Days)
	}
}
