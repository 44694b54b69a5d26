package constants

// Context keys set by middleware
const (
	ContextTokenData = "token_data"
)

// Database pool defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Scheduling
const (
	// SlotIntervalMinutes is the width of one bookable slot.
	SlotIntervalMinutes = 30
	// MaxCandidateBlocks caps how many merged availability blocks are returned.
	MaxCandidateBlocks = 6
)

// Event categories
const (
	CategoryDate = "DATE"
	CategoryDay  = "DAY"
)

// Weekdays is the fixed weekday label set, Monday first. The external
// timetable feed indexes days 0-6 in this same order.
var Weekdays = []string{"월", "화", "수", "목", "금", "토", "일"}

// WeekdayIndex returns the position of a weekday label in Weekdays,
// or -1 for an unknown label.
func WeekdayIndex(label string) int {
	for i, d := range Weekdays {
		if d == label {
			return i
		}
	}
	return -1
}

// Timetable cache
const (
	TimetableCacheKeyPrefix = "timetable:"
	TimetableCacheTTLHours  = 6
)
