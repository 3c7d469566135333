package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// farFuture is the sentinel for unparseable start times: such events compare
// later than any real time, so they merge-lose and sort last instead of
// erroring inside comparators.
var farFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// ParsedTime is the tagged result of parsing a feed start-time string.
type ParsedTime struct {
	Time time.Time
	OK   bool
}

// SortValue returns the wall-clock value used in comparisons, substituting
// the far-future sentinel when the string did not parse.
func (p ParsedTime) SortValue() time.Time {
	if !p.OK {
		return farFuture
	}
	return p.Time
}

// ParseStartTime parses the start-time formats the feeds emit:
// "YYYY-MM-DD HH:MM", "DD-MM-YYYY HH:MM", and bare "HH:MM" (completed with
// the current local date). Anything else yields ParsedTime{OK: false}.
func ParseStartTime(s string) ParsedTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParsedTime{}
	}

	// Bare clock time: complete with today's date.
	if strings.Contains(s, ":") && !strings.Contains(s, "-") {
		s = ComposeToday(s)
	}

	datePart, timePart, found := strings.Cut(s, " ")
	if !found || datePart == "" || timePart == "" {
		return ParsedTime{}
	}

	dp := strings.Split(datePart, "-")
	if len(dp) != 3 {
		return ParsedTime{}
	}
	a, errA := strconv.Atoi(dp[0])
	b, errB := strconv.Atoi(dp[1])
	c, errC := strconv.Atoi(dp[2])
	if errA != nil || errB != nil || errC != nil {
		return ParsedTime{}
	}

	var yyyy, mm, dd int
	if a > 1000 { // YYYY-MM-DD
		yyyy, mm, dd = a, b, c
	} else { // DD-MM-YYYY
		dd, mm, yyyy = a, b, c
		if yyyy < 1000 {
			yyyy += 2000
		}
	}

	hh, min, ok := splitClock(timePart)
	if !ok {
		return ParsedTime{}
	}

	t := time.Date(yyyy, time.Month(mm), dd, hh, min, 0, 0, time.Local)
	return ParsedTime{Time: t, OK: true}
}

// ClockTime extracts the zero-padded "HH:MM" display portion of a start-time
// string, or "--:--" when there is none. The fixed-width form makes lexical
// comparison equivalent to chronological comparison within a day.
func ClockTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "--:--"
	}
	candidate := s
	if _, t, found := strings.Cut(s, " "); found {
		candidate = t
	}
	if _, _, ok := splitClock(candidate); !ok {
		return "--:--"
	}
	return candidate
}

// ComposeToday completes a bare "HH:MM" with the current local calendar date.
func ComposeToday(clock string) string {
	now := time.Now()
	return fmt.Sprintf("%04d-%02d-%02d %s", now.Year(), int(now.Month()), now.Day(), clock)
}

// ShiftUTC5ToUTC3 applies the fixed +2h correction for feeds that report in
// UTC-5, normalizing to the site's UTC-3 target offset. This deliberately
// ignores daylight-saving transitions; callers accept the occasional hour of
// drift around transitions (known limitation, kept from the original site).
// Unparseable input is returned unchanged.
func ShiftUTC5ToUTC3(s string) string {
	p := ParseStartTime(s)
	if !p.OK {
		return s
	}
	t := p.Time.Add(2 * time.Hour)
	return fmt.Sprintf("%02d-%02d-%04d %02d:%02d", t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute())
}

func splitClock(s string) (hh, mm int, ok bool) {
	h, m, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	hh, errH := strconv.Atoi(h)
	mm, errM := strconv.Atoi(m)
	if errH != nil || errM != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}
