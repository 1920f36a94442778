package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sort"

	appLog "classcal/internal/log"
	"classcal/internal/model"
)

// EventStore maps ISO calendar dates ("2006-01-02") to the ordered events
// of that day. Order within a day is insertion order; callers that display
// a day sort by time themselves (see EventsOn).
//
// The store is loaded once, mutated in memory, and flushed with Save. It
// is not safe for concurrent use; callers serialize access.
type EventStore struct {
	path    string
	backups bool
	events  map[string][]model.Event
}

// OpenEvents loads the event store at path. A missing file yields an empty
// store; an unreadable or undecodable file is logged and likewise yields
// an empty store rather than failing startup.
func OpenEvents(path string, backups bool) *EventStore {
	s := &EventStore{
		path:    path,
		backups: backups,
		events:  map[string][]model.Event{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			appLog.Error("event store read failed, starting empty", err, "path", path)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.events); err != nil {
		appLog.Error("event store decode failed, starting empty", err, "path", path)
		s.events = map[string][]model.Event{}
	}
	if s.events == nil {
		s.events = map[string][]model.Event{}
	}
	return s
}

// Insert appends ev to the given date unless that date already holds the
// same occurrence (same title and start time). It reports whether the
// event was added. Dedup is scoped strictly to the date key: identical
// occurrences on different dates are distinct events.
func (s *EventStore) Insert(date string, ev model.Event) bool {
	for _, existing := range s.events[date] {
		if existing.SameOccurrence(ev) {
			return false
		}
	}
	s.events[date] = append(s.events[date], ev)
	return true
}

// Append adds ev to the given date unconditionally (manual event
// creation bypasses import dedup).
func (s *EventStore) Append(date string, ev model.Event) {
	s.events[date] = append(s.events[date], ev)
}

// displayOrder returns the raw indices of a day's events in display
// order: all-day events first, then by start time, stable between equals.
func displayOrder(events []model.Event) []int {
	idx := make([]int, len(events))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ea, eb := events[idx[a]], events[idx[b]]
		if ea.AllDay != eb.AllDay {
			return ea.AllDay
		}
		return ea.StartTime < eb.StartTime
	})
	return idx
}

// Remove deletes the event at index in display order (the order EventsOn
// returns), dropping the date key entirely when its last event goes.
func (s *EventStore) Remove(date string, index int) bool {
	events, ok := s.events[date]
	if !ok || index < 0 || index >= len(events) {
		return false
	}
	i := displayOrder(events)[index]
	s.events[date] = append(events[:i], events[i+1:]...)
	if len(s.events[date]) == 0 {
		delete(s.events, date)
	}
	return true
}

// Update replaces the event at index in display order within the given
// date.
func (s *EventStore) Update(date string, index int, ev model.Event) bool {
	events, ok := s.events[date]
	if !ok || index < 0 || index >= len(events) {
		return false
	}
	events[displayOrder(events)[index]] = ev
	return true
}

// EventsOn returns a copy of the given date's events in display order.
// The underlying store keeps insertion order; only views and the
// index-taking mutators use this ordering.
func (s *EventStore) EventsOn(date string) []model.Event {
	raw := s.events[date]
	out := make([]model.Event, 0, len(raw))
	for _, i := range displayOrder(raw) {
		out = append(out, raw[i])
	}
	return out
}

// Dates returns every date key holding at least one event, sorted.
func (s *EventStore) Dates() []string {
	dates := make([]string, 0, len(s.events))
	for date := range s.events {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Len is the total number of stored events across all dates.
func (s *EventStore) Len() int {
	n := 0
	for _, events := range s.events {
		n += len(events)
	}
	return n
}

// Snapshot returns a copy of the full date -> events mapping.
func (s *EventStore) Snapshot() map[string][]model.Event {
	out := make(map[string][]model.Event, len(s.events))
	for date, events := range s.events {
		out[date] = append([]model.Event(nil), events...)
	}
	return out
}

// Save flushes the whole store to disk as a single atomic replace, plus a
// timestamped backup copy when backups are enabled.
func (s *EventStore) Save() error {
	data, err := json.MarshalIndent(s.events, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	if s.backups {
		if err := writeBackup(s.path, data); err != nil {
			appLog.Error("event store backup failed", err, "path", s.path)
		}
	}
	return nil
}
