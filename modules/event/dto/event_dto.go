package dto

import (
	"time"

	"moim-api/modules/event/entity"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event
type CreateEventRequest struct {
	Title     string `json:"title" validate:"required,max=100"`
	Category  string `json:"category" validate:"required,oneof=DATE DAY"`
	StartTime string `json:"start_time" validate:"required"` // HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // HH:MM
}

// CreateRangeRequest registers schedule time points and generates their slots
type CreateRangeRequest struct {
	TimePoints []string `json:"time_points" validate:"required,min=1"`
}

// JoinMemberRequest for an anonymous member joining (or logging back into) an event
type JoinMemberRequest struct {
	Name string `json:"name" validate:"required,max=20"`
	Pin  string `json:"pin" validate:"required,len=4,numeric"`
}

// SlotRef addresses one slot by its display coordinates
type SlotRef struct {
	TimePoint string `json:"time_point" validate:"required"`
	Time      string `json:"time" validate:"required"`
}

// SubmitSelectionsRequest replaces the caller's availability for the event
type SubmitSelectionsRequest struct {
	Selections []SlotRef `json:"selections"`
}

// ===================== Response DTOs =====================

// EventResponse for event details
type EventResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ShareCode string    `json:"share_code"`
	ShareSlug string    `json:"share_slug"`
	Category  string    `json:"category"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// SlotResponse for one generated slot
type SlotResponse struct {
	TimePoint string `json:"time_point"`
	Time      string `json:"time"`
}

// MemberTokenResponse returned after a member joins
type MemberTokenResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// CandidateBlockResponse is one merged window of maximal availability
type CandidateBlockResponse struct {
	TimePoint       string   `json:"time_point"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	PossibleCount   int      `json:"possible_count"`
	PossibleNames   []string `json:"possible_names"`
	ImpossibleNames []string `json:"impossible_names"`
}

// CandidatesResponse for the aggregation result
type CandidatesResponse struct {
	EventID  string                   `json:"event_id"`
	Category string                   `json:"category"`
	Blocks   []CandidateBlockResponse `json:"blocks"`
}

// ===================== Mapper Functions =====================

// ToEventResponse maps entity to DTO
func ToEventResponse(e *entity.Event) *EventResponse {
	return &EventResponse{
		ID:        e.ID.String(),
		Title:     e.Title,
		ShareCode: e.ShareCode,
		ShareSlug: e.ShareSlug,
		Category:  e.Category,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		CreatedAt: e.CreatedAt,
	}
}
