package entity

import (
	"time"

	"github.com/google/uuid"
)

// FixedSchedule is one reference slot of the event-independent weekly grid:
// a weekday label crossed with a 30-minute start time. Rows are static
// reference data; users select against them, never create them.
type FixedSchedule struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Day      string    `db:"day" json:"day"`
	SlotTime string    `db:"slot_time" json:"slot_time"`
	Position int       `db:"position" json:"position"`
}

// FixedSelection binds a user to one reference slot, meaning "recurringly
// unavailable here". Updates are full delete-then-insert.
type FixedSelection struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	FixedScheduleID uuid.UUID `db:"fixed_schedule_id" json:"fixed_schedule_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// FixedSelectionRow is a user's selection resolved to its slot coordinates.
type FixedSelectionRow struct {
	Day      string `db:"day"`
	SlotTime string `db:"slot_time"`
}
