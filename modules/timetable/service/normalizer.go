package service

import (
	"encoding/xml"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"moim-api/core/constants"
	"moim-api/core/errors"
	"moim-api/core/logger"
	"moim-api/core/utils"
	"moim-api/modules/timetable/dto"
)

// Feed status codes reported when a timetable has no subjects.
const (
	feedStatusPrivate = "-2"
	feedStatusEmpty   = "1"
)

// Feed times are expressed in 5-minute units from midnight.
const feedUnitMinutes = 5

var statusAttrPattern = regexp.MustCompile(`status="([^"]*)"`)

// feedResponse mirrors the provider's XML layout. Every field is treated as
// untrusted: attributes are read as strings and validated by hand.
type feedResponse struct {
	XMLName  xml.Name      `xml:"response"`
	Subjects []feedSubject `xml:"table>subject"`
}

type feedSubject struct {
	Periods []feedPeriod `xml:"time>data"`
}

type feedPeriod struct {
	Day   string `xml:"day,attr"`
	Start string `xml:"starttime,attr"`
	End   string `xml:"endtime,attr"`
}

// NormalizeTimetable converts the provider's raw XML into the weekday/time
// slot vocabulary used by fixed schedules.
//
// Per-entry defects (unknown weekday code, missing or non-numeric fields,
// inverted or out-of-range times) skip that entry and bump the skipped
// counter. Structural failures abort with a typed error so the caller can
// tell a private timetable from an empty one from a malformed feed.
func NormalizeTimetable(raw string) (result *dto.TimetableResponse, appErr *errors.AppError) {
	// The feed is third-party and undocumented; never let a surprise in its
	// shape escape as anything but a parse failure.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("TimetableNormalizer:Panic", "recovered", r)
			result = nil
			appErr = errors.NewAppError(errors.ErrTimetableParse, "Failed to parse timetable feed", nil)
		}
	}()

	if !strings.Contains(raw, "<subject") {
		return nil, classifyEmptyFeed(raw)
	}

	var feed feedResponse
	if err := xml.Unmarshal([]byte(raw), &feed); err != nil {
		return nil, errors.NewAppError(errors.ErrTimetableParse, "Failed to parse timetable feed", err)
	}

	// Per-weekday ordered unique minute sets, keyed by weekday index.
	minutes := make(map[int]map[int]struct{})
	skipped := 0

	for _, subject := range feed.Subjects {
		for _, period := range subject.Periods {
			dayIdx, ok := parseDayCode(period.Day)
			if !ok {
				skipped++
				continue
			}
			start, end, ok := parsePeriodRange(period.Start, period.End)
			if !ok {
				skipped++
				continue
			}
			if minutes[dayIdx] == nil {
				minutes[dayIdx] = make(map[int]struct{})
			}
			// Expand [start, end) into 30-minute-aligned slot starts.
			for m := start - start%constants.SlotIntervalMinutes; m < end; m += constants.SlotIntervalMinutes {
				minutes[dayIdx][m] = struct{}{}
			}
		}
	}

	days := make([]dto.DayTimes, 0, len(minutes))
	for dayIdx, label := range constants.Weekdays {
		set, ok := minutes[dayIdx]
		if !ok {
			continue
		}
		sorted := make([]int, 0, len(set))
		for m := range set {
			sorted = append(sorted, m)
		}
		sort.Ints(sorted)

		times := make([]string, len(sorted))
		for i, m := range sorted {
			times[i] = utils.MinutesToClock(m)
		}
		days = append(days, dto.DayTimes{Day: label, Times: times})
	}

	return &dto.TimetableResponse{Days: days, Skipped: skipped}, nil
}

// classifyEmptyFeed inspects the raw text of a subject-less payload for the
// provider's status attribute and maps it to a typed failure.
func classifyEmptyFeed(raw string) *errors.AppError {
	match := statusAttrPattern.FindStringSubmatch(raw)
	if match == nil {
		return errors.NewAppError(errors.ErrTimetableParse, "Failed to parse timetable feed", nil)
	}
	switch match[1] {
	case feedStatusPrivate:
		return errors.NewAppError(errors.ErrTimetableNotPublic, "Timetable is not public", nil)
	case feedStatusEmpty:
		return errors.NewAppError(errors.ErrTimetableEmpty, "Timetable has no classes", nil)
	default:
		return errors.NewAppError(errors.ErrTimetableParse, "Unrecognized timetable status", nil)
	}
}

// parseDayCode maps the feed's numeric weekday code (0-6, Monday first) to a
// weekday index. Unknown codes are skipped, not fatal.
func parseDayCode(value string) (int, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || idx < 0 || idx >= len(constants.Weekdays) {
		return 0, false
	}
	return idx, true
}

// parsePeriodRange reads the start/end fields as integers in 5-minute units
// and converts them to minutes of day, rejecting impossible ranges.
func parsePeriodRange(startValue, endValue string) (int, int, bool) {
	if strings.TrimSpace(startValue) == "" || strings.TrimSpace(endValue) == "" {
		return 0, 0, false
	}
	startUnits, err := strconv.Atoi(strings.TrimSpace(startValue))
	if err != nil {
		return 0, 0, false
	}
	endUnits, err := strconv.Atoi(strings.TrimSpace(endValue))
	if err != nil {
		return 0, 0, false
	}

	start := startUnits * feedUnitMinutes
	end := endUnits * feedUnitMinutes
	if start < 0 || end > 24*60 || start >= end {
		return 0, 0, false
	}
	return start, end, true
}
