package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classcal/internal/store"
)

// 2025-01-01 is a Wednesday, so the weekly MO,WE rule through 2025-01-15
// expands to exactly five dates.
const fallCalendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test University//EN
BEGIN:VEVENT
UID:lecture-408
SUMMARY:Applied Parallel Programming ECE 408 AL1
DTSTART;TZID=America/Chicago:20250101T090000
DTEND;TZID=America/Chicago:20250101T101500
LOCATION:1002 ECE Building
RRULE:FREQ=WEEKLY;BYDAY=MO,WE;UNTIL=20250115
END:VEVENT
BEGIN:VEVENT
UID:oneoff
SUMMARY:Team Meeting
DTSTART:20250102T140000
DTEND:20250102T150000
END:VEVENT
BEGIN:VEVENT
UID:broken
SUMMARY:No start time here
END:VEVENT
END:VCALENDAR
`

func newTestImporter(t *testing.T) (*Importer, string) {
	t.Helper()
	dir := t.TempDir()
	imp := &Importer{
		Events:    store.OpenEvents(filepath.Join(dir, "calendar_events.json"), false),
		Templates: store.OpenTemplates(dir, false),
	}
	return imp, dir
}

func writeCalendar(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "fall.ics")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImportEndToEnd(t *testing.T) {
	imp, dir := newTestImporter(t)
	path := writeCalendar(t, dir, fallCalendar)

	res, err := imp.Import(path)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Parsed)
	assert.Equal(t, 6, res.Imported, "five weekly occurrences plus one single event")

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 2, res.Skipped[0].Index)
	assert.Contains(t, res.Skipped[0].Reason, "no usable start time")

	wantDates := []string{"2025-01-01", "2025-01-02", "2025-01-06", "2025-01-08", "2025-01-13", "2025-01-15"}
	if diff := cmp.Diff(wantDates, imp.Events.Dates()); diff != "" {
		t.Errorf("store dates mismatch (-want +got):\n%s", diff)
	}

	lectures := imp.Events.EventsOn("2025-01-06")
	require.Len(t, lectures, 1)
	assert.Equal(t, "09:00", lectures[0].StartTime)
	assert.Equal(t, "10:15", lectures[0].EndTime)
	assert.Equal(t, "class", lectures[0].Category)
	assert.Equal(t, "ics", lectures[0].ImportedFrom)

	// "Team Meeting" has no class pattern, so only the lecture derives a
	// class template.
	assert.Equal(t, []string{"ECE 408 - Applied Parallel Programming"}, res.Classes)
	tasks, ok := imp.Templates.Tasks("ECE 408 - Applied Parallel Programming")
	require.True(t, ok)
	assert.Len(t, tasks, 4)

	// The derived classes land in the review file and the event store is
	// persisted.
	derived, err := os.ReadFile(filepath.Join(dir, "classes_from_ics.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(derived), "ECE 408 - Applied Parallel Programming")
	_, err = os.Stat(filepath.Join(dir, "calendar_events.json"))
	require.NoError(t, err)
}

func TestImportIsIdempotent(t *testing.T) {
	imp, dir := newTestImporter(t)
	path := writeCalendar(t, dir, fallCalendar)

	first, err := imp.Import(path)
	require.NoError(t, err)
	require.Equal(t, 6, first.Imported)
	total := imp.Events.Len()

	second, err := imp.Import(path)
	require.NoError(t, err)
	assert.Zero(t, second.Imported, "re-importing the same file adds nothing")
	assert.Equal(t, total, imp.Events.Len())

	// Classes are still reported: they derive from the whole store, not
	// just this run's additions.
	assert.Equal(t, first.Classes, second.Classes)
}

func TestImportSurvivesRestartBetweenRuns(t *testing.T) {
	imp, dir := newTestImporter(t)
	path := writeCalendar(t, dir, fallCalendar)

	_, err := imp.Import(path)
	require.NoError(t, err)

	// Fresh stores loaded from disk, as after an app restart.
	reopened := &Importer{
		Events:    store.OpenEvents(filepath.Join(dir, "calendar_events.json"), false),
		Templates: store.OpenTemplates(dir, false),
	}
	res, err := reopened.Import(path)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
}

func TestImportSameOccurrenceOnDifferentDatesKept(t *testing.T) {
	imp, dir := newTestImporter(t)
	path := writeCalendar(t, dir, `BEGIN:VEVENT
SUMMARY:Office Hours
DTSTART:20250106T150000
END:VEVENT
BEGIN:VEVENT
SUMMARY:Office Hours
DTSTART:20250107T150000
END:VEVENT
BEGIN:VEVENT
SUMMARY:Office Hours
DTSTART:20250106T150000
END:VEVENT
`)

	res, err := imp.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported, "same title+time on two dates is two events; the exact duplicate is dropped")
}

func TestImportMissingFile(t *testing.T) {
	imp, dir := newTestImporter(t)

	_, err := imp.Import(filepath.Join(dir, "nope.ics"))
	require.Error(t, err)
	assert.Zero(t, imp.Events.Len())
}

func TestImportEmptyCalendar(t *testing.T) {
	imp, dir := newTestImporter(t)
	path := writeCalendar(t, dir, "BEGIN:VCALENDAR\nEND:VCALENDAR\n")

	res, err := imp.Import(path)
	require.NoError(t, err)
	assert.Zero(t, res.Parsed)
	assert.Zero(t, res.Imported)
	assert.Empty(t, res.Classes)
}
