package repository

import (
	"context"

	"moim-api/core/database"
	"moim-api/core/logger"
	"moim-api/modules/fixedschedule/entity"

	"github.com/google/uuid"
)

// FixedScheduleRepository handles fixed schedule database operations.
type FixedScheduleRepository struct {
	DB database.Database
}

// NewFixedScheduleRepository creates a new repository instance.
func NewFixedScheduleRepository(db database.Database) *FixedScheduleRepository {
	return &FixedScheduleRepository{DB: db}
}

// FixedScheduleRepositoryInterface defines the repository contract.
type FixedScheduleRepositoryInterface interface {
	GetReferenceSlotsByDay(ctx context.Context, day string) ([]entity.FixedSchedule, error)
	ReplaceSelections(ctx context.Context, userID uuid.UUID, scheduleIDs []uuid.UUID) error
	ListSelectionRows(ctx context.Context, userID uuid.UUID) ([]entity.FixedSelectionRow, error)
}

// GetReferenceSlotsByDay returns the static reference slots of one weekday
// in grid order.
func (r *FixedScheduleRepository) GetReferenceSlotsByDay(ctx context.Context, day string) ([]entity.FixedSchedule, error) {
	query := `
		SELECT id, day, slot_time, position
		FROM fixed_schedules
		WHERE day = $1
		ORDER BY position
	`

	var slots []entity.FixedSchedule
	err := r.DB.SelectContext(ctx, &slots, query, day)
	if err != nil {
		logger.Error("FixedScheduleRepository:GetReferenceSlotsByDay", err)
		return nil, err
	}

	return slots, nil
}

// ReplaceSelections swaps the user's fixed selections wholesale: delete all,
// then insert the new set, in one transaction.
func (r *FixedScheduleRepository) ReplaceSelections(ctx context.Context, userID uuid.UUID, scheduleIDs []uuid.UUID) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("FixedScheduleRepository:ReplaceSelections:Begin", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fixed_selections WHERE user_id = $1`, userID); err != nil {
		logger.Error("FixedScheduleRepository:ReplaceSelections:Delete", err)
		return err
	}

	insertQuery := `INSERT INTO fixed_selections (user_id, fixed_schedule_id) VALUES ($1, $2)`
	for _, scheduleID := range scheduleIDs {
		if _, err := tx.ExecContext(ctx, insertQuery, userID, scheduleID); err != nil {
			logger.Error("FixedScheduleRepository:ReplaceSelections:Insert", err)
			return err
		}
	}

	return tx.Commit()
}

// ListSelectionRows returns the user's selections resolved to weekday and
// time, in reference grid order.
func (r *FixedScheduleRepository) ListSelectionRows(ctx context.Context, userID uuid.UUID) ([]entity.FixedSelectionRow, error) {
	query := `
		SELECT fs.day, fs.slot_time
		FROM fixed_selections sel
		JOIN fixed_schedules fs ON fs.id = sel.fixed_schedule_id
		WHERE sel.user_id = $1
		ORDER BY fs.position
	`

	var rows []entity.FixedSelectionRow
	err := r.DB.SelectContext(ctx, &rows, query, userID)
	if err != nil {
		logger.Error("FixedScheduleRepository:ListSelectionRows", err)
		return nil, err
	}

	return rows, nil
}
