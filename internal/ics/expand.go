package ics

import (
	"regexp"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	appLog "classcal/internal/log"
)

// DefaultUntil is the fallback end date for weekly rules that carry no
// UNTIL part: the end of the academic year the importer targets.
var DefaultUntil = time.Date(2025, time.December, 31, 0, 0, 0, 0, time.Local)

// WeeklyRecurrence describes the only recurrence form the importer
// expands: a weekly repeat on a set of weekdays up to an inclusive end
// date. Any other FREQ is treated as a single occurrence.
type WeeklyRecurrence struct {
	Weekdays []rrule.Weekday
	Until    time.Time
}

var (
	untilRe = regexp.MustCompile(`UNTIL=(\d{8})`)
	bydayRe = regexp.MustCompile(`BYDAY=([^;]+)`)
)

var weekdayCodes = map[string]rrule.Weekday{
	"MO": rrule.MO,
	"TU": rrule.TU,
	"WE": rrule.WE,
	"TH": rrule.TH,
	"FR": rrule.FR,
	"SA": rrule.SA,
	"SU": rrule.SU,
}

// ParseWeeklyRule extracts the weekly recurrence descriptor from a raw
// RRULE value. ok is false when the value is empty or not FREQ=WEEKLY, in
// which case the event occurs exactly once at its start.
//
// Unknown BYDAY codes are ignored; a weekly rule whose BYDAY is absent or
// names no known weekday yields zero occurrences on expansion.
func ParseWeeklyRule(raw string) (WeeklyRecurrence, bool) {
	if raw == "" || !strings.Contains(raw, "FREQ=WEEKLY") {
		return WeeklyRecurrence{}, false
	}

	rec := WeeklyRecurrence{Until: DefaultUntil}

	if m := untilRe.FindStringSubmatch(raw); m != nil {
		if t, err := time.ParseInLocation("20060102", m[1], time.Local); err == nil {
			rec.Until = t
		}
	}

	if m := bydayRe.FindStringSubmatch(raw); m != nil {
		for _, code := range strings.Split(m[1], ",") {
			if wd, ok := weekdayCodes[strings.TrimSpace(code)]; ok {
				rec.Weekdays = append(rec.Weekdays, wd)
			}
		}
	}

	return rec, true
}

// Expand returns the concrete start instant of every occurrence of the
// event, one per calendar date, in chronological order.
//
// Non-recurring events (and any FREQ other than WEEKLY) yield exactly
// their seed start. Weekly events yield one occurrence per matching
// weekday from the seed date through the UNTIL date inclusive, with the
// clock time held constant across all occurrences.
func Expand(ev ImportedEvent) []time.Time {
	rule, ok := ParseWeeklyRule(ev.RRule)
	if !ok {
		return []time.Time{ev.Start}
	}
	if len(rule.Weekdays) == 0 {
		return nil
	}

	// UNTIL is a bare date; pushing it to end of day keeps occurrences on
	// that date inclusive regardless of the event's clock time.
	until := time.Date(rule.Until.Year(), rule.Until.Month(), rule.Until.Day(),
		23, 59, 59, 0, time.Local)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   ev.Start,
		Until:     until,
		Byweekday: rule.Weekdays,
	})
	if err != nil {
		appLog.Error("expand: building weekly rule failed", err, "rrule", ev.RRule)
		return []time.Time{ev.Start}
	}

	return r.All()
}
