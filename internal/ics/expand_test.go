package ics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classcal/internal/model"
)

func seedEvent(rrule string) ImportedEvent {
	// 2025-01-01 is a Wednesday.
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local)
	return ImportedEvent{
		Title: "Applied Parallel Programming ECE 408 AL1",
		Start: start,
		End:   start.Add(75 * time.Minute),
		RRule: rrule,
	}
}

func occurrenceDates(occurrences []time.Time) []string {
	dates := make([]string, 0, len(occurrences))
	for _, occ := range occurrences {
		dates = append(dates, occ.Format(model.DateLayout))
	}
	return dates
}

func TestExpandWeekly(t *testing.T) {
	occurrences := Expand(seedEvent("FREQ=WEEKLY;BYDAY=MO,WE;UNTIL=20250115"))

	want := []string{
		"2025-01-01", // Wed (seed)
		"2025-01-06", // Mon
		"2025-01-08", // Wed
		"2025-01-13", // Mon
		"2025-01-15", // Wed (UNTIL is inclusive)
	}
	if diff := cmp.Diff(want, occurrenceDates(occurrences)); diff != "" {
		t.Errorf("occurrence dates mismatch (-want +got):\n%s", diff)
	}

	for _, occ := range occurrences {
		assert.Equal(t, "09:00", occ.Format(model.ClockLayout), "clock time held constant across occurrences")
	}
}

func TestExpandNoRule(t *testing.T) {
	occurrences := Expand(seedEvent(""))
	require.Len(t, occurrences, 1)
	assert.Equal(t, "2025-01-01", occurrences[0].Format(model.DateLayout))
}

func TestExpandNonWeeklyFrequency(t *testing.T) {
	// Only weekly rules are expanded; anything else is a single occurrence.
	occurrences := Expand(seedEvent("FREQ=DAILY;UNTIL=20250110"))
	require.Len(t, occurrences, 1)
	assert.Equal(t, "2025-01-01", occurrences[0].Format(model.DateLayout))
}

func TestExpandWeeklyWithoutByday(t *testing.T) {
	assert.Empty(t, Expand(seedEvent("FREQ=WEEKLY;UNTIL=20250131")))
}

func TestExpandWeeklyUnknownCodes(t *testing.T) {
	assert.Empty(t, Expand(seedEvent("FREQ=WEEKLY;BYDAY=XX,YY;UNTIL=20250131")))
}

func TestExpandUntilBeforeStart(t *testing.T) {
	assert.Empty(t, Expand(seedEvent("FREQ=WEEKLY;BYDAY=WE;UNTIL=20241220")))
}

func TestParseWeeklyRule(t *testing.T) {
	t.Run("non-weekly is not recurring", func(t *testing.T) {
		_, ok := ParseWeeklyRule("FREQ=MONTHLY;BYDAY=MO")
		assert.False(t, ok)

		_, ok = ParseWeeklyRule("")
		assert.False(t, ok)
	})

	t.Run("until defaults to year end", func(t *testing.T) {
		rule, ok := ParseWeeklyRule("FREQ=WEEKLY;BYDAY=TU,TH")
		require.True(t, ok)
		assert.Equal(t, DefaultUntil, rule.Until)
		assert.Len(t, rule.Weekdays, 2)
	})

	t.Run("unknown byday codes ignored", func(t *testing.T) {
		rule, ok := ParseWeeklyRule("FREQ=WEEKLY;BYDAY=MO,QQ,FR;UNTIL=20250601")
		require.True(t, ok)
		assert.Len(t, rule.Weekdays, 2)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), rule.Until)
	})
}
