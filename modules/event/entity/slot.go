package entity

import (
	"time"

	"github.com/google/uuid"
)

// Slot is the atomic 30-minute bookable unit of an event. Slots are created
// once when a schedule range is registered and never mutated afterwards.
// Position records generation order (time point major, time of day minor);
// the aggregation engine depends on traversing slots in this order.
type Slot struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	TimePoint string    `db:"time_point" json:"time_point"` // "YYYY.MM.DD" or weekday label
	SlotTime  string    `db:"slot_time" json:"slot_time"`   // "HH:MM"
	Position  int       `db:"position" json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Selection marks one participant as available at one slot. Exactly one of
// MemberID or UserID is set.
type Selection struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	SlotID    uuid.UUID  `db:"slot_id" json:"slot_id"`
	MemberID  *uuid.UUID `db:"member_id" json:"member_id,omitempty"`
	UserID    *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// SelectionRow is one selection joined to its slot coordinates and
// participant references, as loaded from storage in slot generation order.
type SelectionRow struct {
	TimePoint string     `db:"time_point"`
	SlotTime  string     `db:"slot_time"`
	MemberID  *uuid.UUID `db:"member_id"`
	UserID    *uuid.UUID `db:"user_id"`
	Name      *string    `db:"display_name"`
}
