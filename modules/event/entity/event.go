package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a schedulable unit. Its category fixes the kind of time point
// every slot of the event uses: calendar dates or weekday labels.
type Event struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	ShareCode string    `db:"share_code" json:"share_code"`
	ShareSlug string    `db:"share_slug" json:"share_slug"`
	Category  string    `db:"category" json:"category"` // DATE | DAY
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Member is an anonymous, PIN-protected participant scoped to one event.
type Member struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	Name      string    `db:"name" json:"name"`
	PinHash   string    `db:"pin_hash" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EventUser links a registered user into an event's roster. The nickname is
// snapshotted at join time and used as the user's display name in results.
type EventUser struct {
	EventID   uuid.UUID `db:"event_id" json:"event_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Nickname  string    `db:"nickname" json:"nickname"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
