package service

import (
	"reflect"
	"testing"

	"moim-api/core/errors"
)

func feedXML(periods string) string {
	return `<response><table><subject><time>` + periods + `</time></subject></table></response>`
}

func TestNormalizeTimetableExpandsPeriods(t *testing.T) {
	// One class on Monday, 09:00-10:00 in 5-minute units (108..120).
	raw := feedXML(`<data day="0" starttime="108" endtime="120"/>`)

	result, appErr := NormalizeTimetable(raw)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(result.Days))
	}
	if result.Days[0].Day != "월" {
		t.Errorf("unexpected day %q", result.Days[0].Day)
	}
	if !reflect.DeepEqual(result.Days[0].Times, []string{"09:00", "09:30"}) {
		t.Errorf("unexpected times %v", result.Days[0].Times)
	}
	if result.Skipped != 0 {
		t.Errorf("expected no skipped entries, got %d", result.Skipped)
	}
}

func TestNormalizeTimetableAlignsUnalignedStart(t *testing.T) {
	// 09:10-09:50 covers the 09:00 and 09:30 slots.
	raw := feedXML(`<data day="2" starttime="110" endtime="118"/>`)

	result, appErr := NormalizeTimetable(raw)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if result.Days[0].Day != "수" {
		t.Errorf("unexpected day %q", result.Days[0].Day)
	}
	if !reflect.DeepEqual(result.Days[0].Times, []string{"09:00", "09:30"}) {
		t.Errorf("unexpected times %v", result.Days[0].Times)
	}
}

func TestNormalizeTimetableMergesOverlapsAndOrdersDays(t *testing.T) {
	raw := feedXML(
		`<data day="4" starttime="108" endtime="120"/>` +
			`<data day="0" starttime="114" endtime="126"/>` +
			`<data day="0" starttime="108" endtime="120"/>`,
	)

	result, appErr := NormalizeTimetable(raw)
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(result.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(result.Days))
	}
	if result.Days[0].Day != "월" || result.Days[1].Day != "금" {
		t.Errorf("days out of weekday order: %q, %q", result.Days[0].Day, result.Days[1].Day)
	}
	if !reflect.DeepEqual(result.Days[0].Times, []string{"09:00", "09:30", "10:00"}) {
		t.Errorf("unexpected monday times %v", result.Days[0].Times)
	}
}

func TestNormalizeTimetableSkipsDefectiveEntries(t *testing.T) {
	tests := []struct {
		name   string
		period string
	}{
		{"unknown day code", `<data day="7" starttime="108" endtime="120"/>`},
		{"non-numeric day", `<data day="mon" starttime="108" endtime="120"/>`},
		{"missing start", `<data day="0" starttime="" endtime="120"/>`},
		{"non-numeric end", `<data day="0" starttime="108" endtime="noon"/>`},
		{"inverted range", `<data day="0" starttime="120" endtime="108"/>`},
		{"end past midnight", `<data day="0" starttime="108" endtime="300"/>`},
		{"negative start", `<data day="0" starttime="-6" endtime="120"/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := feedXML(tt.period + `<data day="1" starttime="108" endtime="114"/>`)

			result, appErr := NormalizeTimetable(raw)
			if appErr != nil {
				t.Fatalf("unexpected error: %v", appErr)
			}
			if result.Skipped != 1 {
				t.Errorf("expected 1 skipped entry, got %d", result.Skipped)
			}
			if len(result.Days) != 1 || result.Days[0].Day != "화" {
				t.Errorf("expected only the valid tuesday entry, got %+v", result.Days)
			}
		})
	}
}

func TestNormalizeTimetableClassifiesSubjectlessFeeds(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		code errors.ErrorCode
	}{
		{"private", `<response status="-2"></response>`, errors.ErrTimetableNotPublic},
		{"empty", `<response status="1"></response>`, errors.ErrTimetableEmpty},
		{"unknown status", `<response status="9"></response>`, errors.ErrTimetableParse},
		{"no status at all", `<response></response>`, errors.ErrTimetableParse},
		{"not xml", `upstream maintenance page`, errors.ErrTimetableParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, appErr := NormalizeTimetable(tt.raw)
			if result != nil {
				t.Fatalf("expected no result, got %+v", result)
			}
			if appErr == nil || appErr.Code != tt.code {
				t.Errorf("expected code %s, got %+v", tt.code, appErr)
			}
		})
	}
}

func TestNormalizeTimetableMalformedXML(t *testing.T) {
	result, appErr := NormalizeTimetable(`<response><table><subject><time><data day="0"`)
	if result != nil {
		t.Fatalf("expected no result, got %+v", result)
	}
	if appErr == nil || appErr.Code != errors.ErrTimetableParse {
		t.Errorf("expected parse error, got %+v", appErr)
	}
}
