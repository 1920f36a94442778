package ics

import (
	"fmt"
	"os"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "classcal/internal/log"
	"classcal/internal/model"
)

// Export serializes the event store into an RFC-shaped VCALENDAR at path
// and returns the number of events written.
//
// Unlike the import side, the export leans on the iCalendar library for
// correct folding and escaping; round-tripping through Export therefore
// produces a stricter file than the ones the importer accepts.
func Export(events map[string][]model.Event, path string) (int, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//classcal//calendar export//EN")

	dates := make([]string, 0, len(events))
	for date := range events {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	now := time.Now()
	count := 0

	for _, date := range dates {
		day, err := time.ParseInLocation(model.DateLayout, date, time.Local)
		if err != nil {
			appLog.Error("export: skipping malformed date key", err, "date", date)
			continue
		}

		for i, ev := range events[date] {
			ve := cal.AddEvent(fmt.Sprintf("%s-%d@classcal", date, i))
			ve.SetDtStampTime(now)
			ve.SetSummary(ev.Title)
			if ev.Description != "" {
				ve.SetDescription(ev.Description)
			}
			if ev.Location != "" {
				ve.SetLocation(ev.Location)
			}

			if ev.AllDay {
				ve.SetAllDayStartAt(day)
				ve.SetAllDayEndAt(day.Add(24 * time.Hour))
			} else {
				ve.SetStartAt(clockOn(day, ev.StartTime))
				ve.SetEndAt(clockOn(day, ev.EndTime))
			}
			count++
		}
	}

	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return 0, fmt.Errorf("write calendar: %w", err)
	}
	return count, nil
}

// clockOn places an "HH:MM" wall-clock time on the given day; a malformed
// clock string degrades to midnight.
func clockOn(day time.Time, hhmm string) time.Time {
	t, err := time.Parse(model.ClockLayout, hhmm)
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
