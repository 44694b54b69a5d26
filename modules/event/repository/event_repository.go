package repository

import (
	"context"
	"database/sql"

	"moim-api/core/database"
	"moim-api/core/logger"
	"moim-api/modules/event/entity"

	"github.com/google/uuid"
)

// EventRepository handles event, slot and selection database operations.
type EventRepository struct {
	DB database.Database
}

// NewEventRepository creates a new repository instance.
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract.
type EventRepositoryInterface interface {
	// Events
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventByShareCode(ctx context.Context, code string) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// Slots (immutable reference data, generated at range creation)
	CreateSlots(ctx context.Context, slots []entity.Slot) error
	GetSlotsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Slot, error)
	MaxSlotPosition(ctx context.Context, eventID uuid.UUID) (int, error)

	// Members and roster
	GetMemberByEventAndName(ctx context.Context, eventID uuid.UUID, name string) (*entity.Member, error)
	CreateMember(ctx context.Context, member *entity.Member) (*entity.Member, error)
	AddEventUser(ctx context.Context, eu *entity.EventUser) error
	GetRosterNames(ctx context.Context, eventID uuid.UUID) ([]string, error)

	// Selections
	ListSelectionRows(ctx context.Context, eventID uuid.UUID) ([]entity.SelectionRow, error)
	ReplaceMemberSelections(ctx context.Context, eventID, memberID uuid.UUID, slotIDs []uuid.UUID) error
	ReplaceUserSelections(ctx context.Context, eventID, userID uuid.UUID, slotIDs []uuid.UUID) error
}

// ===================== Events =====================

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (title, share_code, share_slug, category, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, share_code, share_slug, category, start_time, end_time, created_at, updated_at
	`

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.Title, event.ShareCode, event.ShareSlug, event.Category, event.StartTime, event.EndTime)
	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `
		SELECT id, title, share_code, share_slug, category, start_time, end_time, created_at, updated_at
		FROM events WHERE id = $1
	`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}

	return &event, nil
}

func (r *EventRepository) GetEventByShareCode(ctx context.Context, code string) (*entity.Event, error) {
	query := `
		SELECT id, title, share_code, share_slug, category, start_time, end_time, created_at, updated_at
		FROM events WHERE share_code = $1
	`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByShareCode", err)
		return nil, err
	}

	return &event, nil
}

// DeleteEvent removes an event and its dependents. Selections referencing a
// slot go before the slot itself.
func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent:Begin", err)
		return err
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM selections WHERE slot_id IN (SELECT id FROM slots WHERE event_id = $1)`,
		`DELETE FROM slots WHERE event_id = $1`,
		`DELETE FROM members WHERE event_id = $1`,
		`DELETE FROM event_users WHERE event_id = $1`,
		`DELETE FROM events WHERE id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			logger.Error("EventRepository:DeleteEvent", err)
			return err
		}
	}

	return tx.Commit()
}

// ===================== Slots =====================

func (r *EventRepository) CreateSlots(ctx context.Context, slots []entity.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	query := `
		INSERT INTO slots (event_id, time_point, slot_time, position)
		VALUES (:event_id, :time_point, :slot_time, :position)
	`
	for _, slot := range slots {
		if _, err := r.DB.NamedExecContext(ctx, query, slot); err != nil {
			logger.Error("EventRepository:CreateSlots", err)
			return err
		}
	}
	return nil
}

func (r *EventRepository) GetSlotsByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Slot, error) {
	query := `
		SELECT id, event_id, time_point, slot_time, position, created_at
		FROM slots
		WHERE event_id = $1
		ORDER BY position
	`

	var slots []entity.Slot
	err := r.DB.SelectContext(ctx, &slots, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetSlotsByEventID", err)
		return nil, err
	}

	return slots, nil
}

func (r *EventRepository) MaxSlotPosition(ctx context.Context, eventID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(position), 0) FROM slots WHERE event_id = $1`

	var max int
	if err := r.DB.GetContext(ctx, &max, query, eventID); err != nil {
		logger.Error("EventRepository:MaxSlotPosition", err)
		return 0, err
	}
	return max, nil
}

// ===================== Members and roster =====================

func (r *EventRepository) GetMemberByEventAndName(ctx context.Context, eventID uuid.UUID, name string) (*entity.Member, error) {
	query := `
		SELECT id, event_id, name, pin_hash, created_at
		FROM members WHERE event_id = $1 AND name = $2
	`

	var member entity.Member
	err := r.DB.GetContext(ctx, &member, query, eventID, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetMemberByEventAndName", err)
		return nil, err
	}

	return &member, nil
}

func (r *EventRepository) CreateMember(ctx context.Context, member *entity.Member) (*entity.Member, error) {
	query := `
		INSERT INTO members (event_id, name, pin_hash)
		VALUES ($1, $2, $3)
		RETURNING id, event_id, name, pin_hash, created_at
	`

	var created entity.Member
	err := r.DB.GetContext(ctx, &created, query, member.EventID, member.Name, member.PinHash)
	if err != nil {
		logger.Error("EventRepository:CreateMember", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) AddEventUser(ctx context.Context, eu *entity.EventUser) error {
	query := `
		INSERT INTO event_users (event_id, user_id, nickname)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`

	if err := r.DB.ExecContext(ctx, query, eu.EventID, eu.UserID, eu.Nickname); err != nil {
		logger.Error("EventRepository:AddEventUser", err)
		return err
	}
	return nil
}

// GetRosterNames returns every participant display name of the event in join
// order, independent of who actually selected anything.
func (r *EventRepository) GetRosterNames(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	query := `
		SELECT name FROM (
			SELECT name, created_at FROM members WHERE event_id = $1
			UNION ALL
			SELECT nickname AS name, created_at FROM event_users WHERE event_id = $1
		) roster
		ORDER BY created_at
	`

	var names []string
	err := r.DB.SelectContext(ctx, &names, query, eventID)
	if err != nil {
		logger.Error("EventRepository:GetRosterNames", err)
		return nil, err
	}

	return names, nil
}

// ===================== Selections =====================

// ListSelectionRows loads the event's selections resolved to slot coordinates
// and display names, ordered by slot generation order. The aggregation engine
// depends on this ordering.
func (r *EventRepository) ListSelectionRows(ctx context.Context, eventID uuid.UUID) ([]entity.SelectionRow, error) {
	query := `
		SELECT s.time_point, s.slot_time, sel.member_id, sel.user_id,
		       COALESCE(m.name, eu.nickname) AS display_name
		FROM selections sel
		JOIN slots s ON s.id = sel.slot_id
		LEFT JOIN members m ON m.id = sel.member_id
		LEFT JOIN event_users eu ON eu.event_id = s.event_id AND eu.user_id = sel.user_id
		WHERE s.event_id = $1
		ORDER BY s.position, sel.created_at
	`

	var rows []entity.SelectionRow
	err := r.DB.SelectContext(ctx, &rows, query, eventID)
	if err != nil {
		logger.Error("EventRepository:ListSelectionRows", err)
		return nil, err
	}

	return rows, nil
}

// ReplaceMemberSelections swaps a member's selections for the event in one
// transaction: full delete, then insert.
func (r *EventRepository) ReplaceMemberSelections(ctx context.Context, eventID, memberID uuid.UUID, slotIDs []uuid.UUID) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("EventRepository:ReplaceMemberSelections:Begin", err)
		return err
	}
	defer tx.Rollback()

	deleteQuery := `
		DELETE FROM selections
		WHERE member_id = $1
		  AND slot_id IN (SELECT id FROM slots WHERE event_id = $2)
	`
	if _, err := tx.ExecContext(ctx, deleteQuery, memberID, eventID); err != nil {
		logger.Error("EventRepository:ReplaceMemberSelections:Delete", err)
		return err
	}

	insertQuery := `INSERT INTO selections (slot_id, member_id) VALUES ($1, $2)`
	for _, slotID := range slotIDs {
		if _, err := tx.ExecContext(ctx, insertQuery, slotID, memberID); err != nil {
			logger.Error("EventRepository:ReplaceMemberSelections:Insert", err)
			return err
		}
	}

	return tx.Commit()
}

// ReplaceUserSelections mirrors ReplaceMemberSelections for registered users.
func (r *EventRepository) ReplaceUserSelections(ctx context.Context, eventID, userID uuid.UUID, slotIDs []uuid.UUID) error {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("EventRepository:ReplaceUserSelections:Begin", err)
		return err
	}
	defer tx.Rollback()

	deleteQuery := `
		DELETE FROM selections
		WHERE user_id = $1
		  AND slot_id IN (SELECT id FROM slots WHERE event_id = $2)
	`
	if _, err := tx.ExecContext(ctx, deleteQuery, userID, eventID); err != nil {
		logger.Error("EventRepository:ReplaceUserSelections:Delete", err)
		return err
	}

	insertQuery := `INSERT INTO selections (slot_id, user_id) VALUES ($1, $2)`
	for _, slotID := range slotIDs {
		if _, err := tx.ExecContext(ctx, insertQuery, slotID, userID); err != nil {
			logger.Error("EventRepository:ReplaceUserSelections:Insert", err)
			return err
		}
	}

	return tx.Commit()
}
