// Package model defines the persisted domain types shared across the
// application: calendar events, class task templates, and the daily task
// checklists materialized from them.
package model

// Categories assigned to events.
const (
	CategoryClass    = "class"
	CategoryPersonal = "personal"
)

// SourceICS marks events created by the calendar import.
const SourceICS = "ics"

// Layouts for the store's date keys and event clock times.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Event is one fully resolved calendar event as stored in the per-date
// event store. The calendar date is the store key, not a field; times are
// wall-clock "HH:MM" strings.
type Event struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	AllDay       bool   `json:"all_day"`
	Category     string `json:"category"`
	ImportedFrom string `json:"imported_from,omitempty"`
}

// SameOccurrence reports whether two events on the same date count as the
// same occurrence. Only title and start time take part; description and
// location may legitimately differ between exports of the same series.
func (e Event) SameOccurrence(other Event) bool {
	return e.Title == other.Title && e.StartTime == other.StartTime
}

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TaskTemplate is one entry of a class task checklist template.
type TaskTemplate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// DailyTask is a template task materialized for a specific date.
type DailyTask struct {
	TaskTemplate
	Completed   bool   `json:"completed"`
	DateCreated string `json:"date_created"`
}
