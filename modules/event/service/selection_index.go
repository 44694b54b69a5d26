package service

import (
	"moim-api/modules/event/entity"

	"github.com/google/uuid"
)

// SlotKey identifies a slot by its display coordinates.
type SlotKey struct {
	TimePoint string
	Time      string
}

// ParticipantKind tags which side of the member/user union a participant is.
type ParticipantKind int

const (
	ParticipantMember ParticipantKind = iota
	ParticipantUser
)

// Participant is the resolved identity behind a selection: an anonymous
// event member or a registered user, never both.
type Participant struct {
	Kind ParticipantKind
	ID   uuid.UUID
	Name string
}

// participantFromRow resolves the member/user union of a row. Rows with
// neither side set are data-integrity violations and report false.
func participantFromRow(row entity.SelectionRow) (Participant, bool) {
	name := ""
	if row.Name != nil {
		name = *row.Name
	}
	if name == "" {
		return Participant{}, false
	}
	if row.MemberID != nil {
		return Participant{Kind: ParticipantMember, ID: *row.MemberID, Name: name}, true
	}
	if row.UserID != nil {
		return Participant{Kind: ParticipantUser, ID: *row.UserID, Name: name}, true
	}
	return Participant{}, false
}

// SelectionIndex maps each slot to the display names of the participants who
// selected it. Key order is first-seen order of each slot in the input,
// which must match slot generation order; the aggregator's merge step relies
// on this and an unordered map would silently corrupt its results.
type SelectionIndex struct {
	keys  []SlotKey
	names map[SlotKey][]string
}

func NewSelectionIndex() *SelectionIndex {
	return &SelectionIndex{
		names: make(map[SlotKey][]string),
	}
}

// BuildSelectionIndex indexes an ordered stream of selection rows, skipping
// rows whose participant cannot be resolved.
func BuildSelectionIndex(rows []entity.SelectionRow) *SelectionIndex {
	idx := NewSelectionIndex()
	for _, row := range rows {
		p, ok := participantFromRow(row)
		if !ok {
			continue
		}
		idx.Add(SlotKey{TimePoint: row.TimePoint, Time: row.SlotTime}, p.Name)
	}
	return idx
}

// Add appends a name to a slot's list, registering the slot on first sight.
func (x *SelectionIndex) Add(slot SlotKey, name string) {
	if _, seen := x.names[slot]; !seen {
		x.keys = append(x.keys, slot)
	}
	x.names[slot] = append(x.names[slot], name)
}

func (x *SelectionIndex) Len() int {
	return len(x.keys)
}

// Keys returns the slots in first-seen order.
func (x *SelectionIndex) Keys() []SlotKey {
	return x.keys
}

// Names returns the participant names recorded for a slot.
func (x *SelectionIndex) Names(slot SlotKey) []string {
	return x.names[slot]
}
