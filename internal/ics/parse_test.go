package ics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCalendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test University//EN
BEGIN:VEVENT
UID:abc-123
SUMMARY:Applied Parallel Programming ECE 408 AL1
DTSTART;TZID=America/Chicago:20250826T110000
DTEND;TZID=America/Chicago:20250826T121500
LOCATION:1002 ECE Building
DESCRIPTION:Lecture\nBring a laptop
END:VEVENT
BEGIN:VEVENT
SUMMARY:Advising
DTSTART:20250827T140000
END:VEVENT
END:VCALENDAR
`

func TestParseBlocksFields(t *testing.T) {
	records := ParseBlocks(sampleCalendar)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Applied Parallel Programming ECE 408 AL1", first.Summary)
	assert.Equal(t, "20250826T110000", first.DTStart, "TZID parameter should be stripped from the key")
	assert.Equal(t, "20250826T121500", first.DTEnd)
	assert.Equal(t, "1002 ECE Building", first.Location)
	assert.Equal(t, `Lecture\nBring a laptop`, first.Description)
	assert.Equal(t, 1, first.Other, "UID is counted, not kept")

	second := records[1]
	assert.Equal(t, "Advising", second.Summary)
	assert.Empty(t, second.DTEnd)
}

func TestParseBlocksContinuationDropped(t *testing.T) {
	content := "BEGIN:VEVENT\n" +
		"DESCRIPTION:First part of a long\n" +
		" description that was folded\n" +
		"DTSTART:20250101T090000\n" +
		"END:VEVENT\n"

	records := ParseBlocks(content)
	require.Len(t, records, 1)
	// The folded continuation is dropped, not appended. Known limitation.
	assert.Equal(t, "First part of a long", records[0].Description)
}

func TestParseBlocksEdgeCases(t *testing.T) {
	t.Run("empty block not emitted", func(t *testing.T) {
		records := ParseBlocks("BEGIN:VEVENT\nEND:VEVENT\n")
		assert.Empty(t, records)
	})

	t.Run("partial block discarded by new BEGIN", func(t *testing.T) {
		content := "BEGIN:VEVENT\nSUMMARY:lost\nBEGIN:VEVENT\nSUMMARY:kept\nEND:VEVENT\n"
		records := ParseBlocks(content)
		require.Len(t, records, 1)
		assert.Equal(t, "kept", records[0].Summary)
	})

	t.Run("lines outside blocks ignored", func(t *testing.T) {
		content := "SUMMARY:outside\nBEGIN:VEVENT\nSUMMARY:inside\nEND:VEVENT\nX-FOOTER:1\n"
		records := ParseBlocks(content)
		require.Len(t, records, 1)
		assert.Equal(t, "inside", records[0].Summary)
	})

	t.Run("colonless lines inside block ignored", func(t *testing.T) {
		records := ParseBlocks("BEGIN:VEVENT\nnot a property\nSUMMARY:ok\nEND:VEVENT\n")
		require.Len(t, records, 1)
		assert.Equal(t, "ok", records[0].Summary)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		records := ParseBlocks("BEGIN:VEVENT\r\nSUMMARY:ok\r\nEND:VEVENT\r\n")
		require.Len(t, records, 1)
		assert.Equal(t, "ok", records[0].Summary)
	})
}

func TestInterpretDefaults(t *testing.T) {
	ev, err := Interpret(RawEventRecord{DTStart: "20250826T110000"})
	require.NoError(t, err)

	assert.Equal(t, UntitledEvent, ev.Title)
	assert.Equal(t, time.Date(2025, 8, 26, 11, 0, 0, 0, time.Local), ev.Start)
	assert.Equal(t, ev.Start, ev.End, "missing DTEND falls back to start")
}

func TestInterpretDescriptionEscapes(t *testing.T) {
	ev, err := Interpret(RawEventRecord{
		Summary:     "Advising",
		Description: `Line one\nLine two`,
		DTStart:     "20250826",
	})
	require.NoError(t, err)
	assert.Equal(t, "Line one\nLine two", ev.Description)
	assert.Equal(t, time.Date(2025, 8, 26, 0, 0, 0, 0, time.Local), ev.Start, "date-only start is midnight")
}

func TestInterpretMissingStart(t *testing.T) {
	_, err := Interpret(RawEventRecord{Summary: "Broken"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoStart))
}

func TestInterpretBadEndFallsBackToStart(t *testing.T) {
	ev, err := Interpret(RawEventRecord{
		DTStart: "20250826T110000",
		DTEnd:   "garbage",
	})
	require.NoError(t, err)
	assert.Equal(t, ev.Start, ev.End)
}

func TestParseDatetime(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "date-time", in: "20250101T093000", want: time.Date(2025, 1, 1, 9, 30, 0, 0, time.Local)},
		{name: "utc suffix ignored", in: "20250101T093000Z", want: time.Date(2025, 1, 1, 9, 30, 0, 0, time.Local)},
		{name: "date only", in: "20250101", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)},
		{name: "tzid prefix in value", in: "TZID=America/Chicago:20250101T093000", want: time.Date(2025, 1, 1, 9, 30, 0, 0, time.Local)},
		{name: "empty", in: "", wantErr: true},
		{name: "short date-time", in: "20250101T09", wantErr: true},
		{name: "not a date", in: "tomorrowish", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDatetime(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
