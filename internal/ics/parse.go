// Package ics implements the calendar import pipeline: a line-oriented
// VEVENT block parser, field interpretation into typed events, weekly
// recurrence expansion, and an RFC-shaped export of the event store.
//
// The import side deliberately targets the practical subset common in
// university calendar exports rather than full RFC 5545: folded
// continuation lines are dropped, timezone parameters are ignored (all
// times are local wall-clock), and malformed blocks degrade to skipped
// records instead of failing the file.
package ics

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RawEventRecord holds the fields of one VEVENT block that the importer
// understands, still as raw strings. Unrecognized properties are not kept;
// only their count is, so callers can tell a sparse block from an empty one.
type RawEventRecord struct {
	Summary     string
	Description string
	Location    string
	DTStart     string
	DTEnd       string
	RRule       string

	// Other counts properties that were structurally valid but are not
	// interpreted by this importer (UID, SEQUENCE, STATUS, ...).
	Other int

	fields int
}

func (r *RawEventRecord) set(key, value string) {
	switch key {
	case "SUMMARY":
		r.Summary = value
	case "DESCRIPTION":
		r.Description = value
	case "LOCATION":
		r.Location = value
	case "DTSTART":
		r.DTStart = value
	case "DTEND":
		r.DTEnd = value
	case "RRULE":
		r.RRule = value
	default:
		r.Other++
	}
	r.fields++
}

func (r *RawEventRecord) empty() bool {
	return r.fields == 0
}

const (
	beginVEvent = "BEGIN:VEVENT"
	endVEvent   = "END:VEVENT"
)

// ParseBlocks scans the raw text of a calendar file and returns one record
// per well-delimited VEVENT block, in file order.
//
// Rules, applied per line after trimming trailing whitespace:
//   - beginVEvent opens a new block, discarding any partially-built one
//   - endVEvent emits the current block if it captured at least one field
//   - inside a block, a line starting with a space or tab is a folded
//     continuation and is dropped (no RFC unfolding; the content is lost)
//   - inside a block, any other line containing a colon is split on the
//     first colon; the key keeps only the part before the first ';'
//     (DTSTART;TZID=America/Chicago -> DTSTART)
//   - everything outside a BEGIN/END pair is ignored
func ParseBlocks(content string) []RawEventRecord {
	var (
		records  []RawEventRecord
		current  RawEventRecord
		inVEvent bool
	)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, " \t\r")

		switch {
		case line == beginVEvent:
			inVEvent = true
			current = RawEventRecord{}
		case line == endVEvent:
			if inVEvent && !current.empty() {
				records = append(records, current)
			}
			inVEvent = false
			current = RawEventRecord{}
		case inVEvent:
			if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
				// Folded continuation line; dropped by design.
				continue
			}
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			if i := strings.Index(key, ";"); i >= 0 {
				key = key[:i]
			}
			current.set(key, value)
		}
	}

	return records
}

// ImportedEvent is the normalized representation of a VEVENT before
// recurrence expansion.
type ImportedEvent struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	RRule       string
}

// ErrNoStart marks records without a usable DTSTART; such records cannot
// be placed on the calendar and are skipped by the importer.
var ErrNoStart = errors.New("no usable start time")

// UntitledEvent is the title assigned when SUMMARY is absent.
const UntitledEvent = "Untitled Event"

// Interpret converts one raw record into a typed event.
//
// SUMMARY falls back to UntitledEvent and DESCRIPTION has its literal \n
// escape sequences decoded. DTSTART is required: a record whose DTSTART
// does not parse is rejected with ErrNoStart. DTEND falls back to the
// resolved start on any parse failure, so End == Start for records
// without a usable end.
func Interpret(rec RawEventRecord) (ImportedEvent, error) {
	ev := ImportedEvent{
		Title:       rec.Summary,
		Description: strings.ReplaceAll(rec.Description, `\n`, "\n"),
		Location:    rec.Location,
		RRule:       rec.RRule,
	}
	if ev.Title == "" {
		ev.Title = UntitledEvent
	}

	start, err := parseDatetime(rec.DTStart)
	if err != nil {
		return ImportedEvent{}, fmt.Errorf("%w: %v", ErrNoStart, err)
	}
	ev.Start = start

	end, err := parseDatetime(rec.DTEnd)
	if err != nil {
		end = start
	}
	ev.End = end

	return ev, nil
}

// parseDatetime parses an ICS date or date-time value into local time.
//
// A TZID parameter prefix, if one leaked into the value, is discarded: the
// offset is never applied and times are taken as local wall-clock. Values
// containing 'T' are read as YYYYMMDDTHHMMSS from their first 15
// characters (a trailing Z is thereby ignored); otherwise the first 8
// characters are read as YYYYMMDD, interpreted as midnight.
func parseDatetime(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	if strings.Contains(v, "TZID=") {
		if _, rest, ok := strings.Cut(v, ":"); ok {
			v = rest
		}
	}

	if strings.Contains(v, "T") {
		if len(v) < 15 {
			return time.Time{}, fmt.Errorf("date-time value %q too short", raw)
		}
		return time.ParseInLocation("20060102T150405", v[:15], time.Local)
	}

	if len(v) < 8 {
		return time.Time{}, fmt.Errorf("date value %q too short", raw)
	}
	return time.ParseInLocation("20060102", v[:8], time.Local)
}
