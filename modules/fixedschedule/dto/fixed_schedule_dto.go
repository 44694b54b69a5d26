package dto

// DayTimes is the per-weekday slot list shared by reads and writes. It is
// shape-compatible with the normalized external timetable so both sources
// feed one response format.
type DayTimes struct {
	Day   string   `json:"day"`
	Times []string `json:"times"`
}

// UpdateFixedScheduleRequest replaces the user's recurring availability.
type UpdateFixedScheduleRequest struct {
	Days []DayTimes `json:"days" validate:"required"`
}

// FixedScheduleResponse is the user's stored recurring availability.
type FixedScheduleResponse struct {
	Days []DayTimes `json:"days"`
}
