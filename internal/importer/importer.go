// Package importer sequences the calendar import pipeline: parse VEVENT
// blocks, interpret fields, expand weekly recurrences, merge into the
// event store without duplicates, and derive class task templates from
// the imported event titles.
package importer

import (
	"fmt"
	"os"
	"sort"

	"classcal/internal/classify"
	"classcal/internal/ics"
	appLog "classcal/internal/log"
	"classcal/internal/model"
	"classcal/internal/store"
)

// SkippedRecord explains why one VEVENT block did not import.
type SkippedRecord struct {
	Index  int
	Reason string
}

// Result summarizes one import run.
type Result struct {
	// Parsed is the number of VEVENT blocks found in the file.
	Parsed int
	// Imported is the number of concrete events actually added to the
	// store; re-importing the same file yields 0 here.
	Imported int
	// Skipped lists records dropped with their reasons.
	Skipped []SkippedRecord
	// Classes holds every class identifier derived from imported events,
	// sorted.
	Classes []string
}

// Importer runs imports against the application's stores. It is not safe
// for concurrent use; callers serialize import runs.
type Importer struct {
	Events    *store.EventStore
	Templates *store.TemplateStore
}

// Import reads the calendar file at path and merges its events into the
// store. A file-level read failure is the only returned pipeline error;
// per-record problems are absorbed into Result.Skipped so one malformed
// entry never blocks the rest. The event store is persisted exactly once
// at the end of a successful run.
func (imp *Importer) Import(path string) (Result, error) {
	var res Result

	content, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read calendar file: %w", err)
	}

	records := ics.ParseBlocks(string(content))
	res.Parsed = len(records)
	appLog.Info("import started", "path", path, "records", len(records))

	for i, rec := range records {
		ev, err := ics.Interpret(rec)
		if err != nil {
			appLog.Info("import: skipping record", "index", i, "reason", err)
			res.Skipped = append(res.Skipped, SkippedRecord{Index: i, Reason: err.Error()})
			continue
		}

		concrete := model.Event{
			Title:        ev.Title,
			Description:  ev.Description,
			Location:     ev.Location,
			StartTime:    ev.Start.Format(model.ClockLayout),
			EndTime:      ev.End.Format(model.ClockLayout),
			AllDay:       false,
			Category:     model.CategoryClass,
			ImportedFrom: model.SourceICS,
		}

		for _, occ := range ics.Expand(ev) {
			if imp.Events.Insert(occ.Format(model.DateLayout), concrete) {
				res.Imported++
			}
		}
	}

	if err := imp.Events.Save(); err != nil {
		return res, fmt.Errorf("save events: %w", err)
	}

	derived := imp.deriveClassTemplates()
	if len(derived) > 0 {
		imp.Templates.MergeDerived(derived)
		if err := imp.Templates.WriteDerived(derived); err != nil {
			appLog.Error("import: writing derived classes file failed", err)
		}
		for class := range derived {
			res.Classes = append(res.Classes, class)
		}
		sort.Strings(res.Classes)
	}

	appLog.Info("import finished",
		"path", path,
		"imported", res.Imported,
		"skipped", len(res.Skipped),
		"classes", len(res.Classes),
	)
	return res, nil
}

// deriveClassTemplates scans every ICS-imported event in the store (not
// just this run's) and synthesizes the default checklist for each class
// identifier the titles classify to.
func (imp *Importer) deriveClassTemplates() map[string][]model.TaskTemplate {
	derived := map[string][]model.TaskTemplate{}

	for _, date := range imp.Events.Dates() {
		for _, ev := range imp.Events.EventsOn(date) {
			if ev.ImportedFrom != model.SourceICS {
				continue
			}
			class, ok := classify.Classify(ev.Title)
			if !ok {
				continue
			}
			if _, seen := derived[class]; !seen {
				derived[class] = classify.DefaultTasks(class)
			}
		}
	}

	return derived
}
