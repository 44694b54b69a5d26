package dto

// DayTimes is the normalized slot set for one weekday. The same shape is
// produced for fixed schedules, so callers cannot tell an imported timetable
// from a hand-entered one.
type DayTimes struct {
	Day   string   `json:"day"`
	Times []string `json:"times"`
}

// TimetableResponse is the normalized external timetable.
type TimetableResponse struct {
	Days []DayTimes `json:"days"`
	// Skipped counts feed entries dropped for per-entry defects (bad weekday
	// code, non-numeric or out-of-range times). They are not failures.
	Skipped int `json:"skipped"`
}

// FetchTimetableRequest identifies a timetable at the external provider.
type FetchTimetableRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}
