package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	appLog "classcal/internal/log"
	"classcal/internal/model"
)

// File names under the data directory.
const (
	classesFile    = "classes.txt"
	icsClassesFile = "classes_from_ics.txt"
	dailyTasksFile = "calendar_tasks.json"
)

// TemplateStore holds class task templates and the per-date task
// checklists materialized from them.
//
// Templates load from two layered text files: classes.txt (hand-edited)
// and classes_from_ics.txt (auto-derived by the calendar import, written
// for human review). A derived class replaces a same-named manual one.
// Daily tasks persist separately as JSON.
type TemplateStore struct {
	classesPath string
	derivedPath string
	tasksPath   string
	backups     bool

	templates map[string][]model.TaskTemplate
	daily     map[string]map[string][]model.DailyTask
}

// OpenTemplates loads the template store rooted at dataDir. Missing files
// are a normal first run; unreadable ones are logged and skipped.
func OpenTemplates(dataDir string, backups bool) *TemplateStore {
	t := &TemplateStore{
		classesPath: filepath.Join(dataDir, classesFile),
		derivedPath: filepath.Join(dataDir, icsClassesFile),
		tasksPath:   filepath.Join(dataDir, dailyTasksFile),
		backups:     backups,
		templates:   map[string][]model.TaskTemplate{},
		daily:       map[string]map[string][]model.DailyTask{},
	}
	t.loadClassesFile(t.classesPath, false)
	t.loadClassesFile(t.derivedPath, true)
	t.loadDaily()
	return t
}

// loadClassesFile parses one classes text file into the template map.
// When replace is set (the derived file), a class already known from the
// manual file is reset before its tasks load, so derived classes win.
//
// Format: a non-indented line names a class; indented lines under it are
// tasks written as "[priority] Title - Description". Blank lines and
// #-comments are skipped.
func (t *TemplateStore) loadClassesFile(path string, replace bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			appLog.Error("class templates read failed", err, "path", path)
		}
		return
	}

	current := ""
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			current = strings.TrimSpace(line)
			if current == "" {
				continue
			}
			if _, known := t.templates[current]; !known || replace {
				t.templates[current] = nil
			}
			continue
		}

		if current != "" {
			t.templates[current] = append(t.templates[current], parseTaskLine(strings.TrimSpace(line)))
		}
	}
}

// parseTaskLine reads "[priority] Title - Description"; lines without the
// priority prefix become medium-priority tasks titled by the whole line.
func parseTaskLine(s string) model.TaskTemplate {
	task := model.TaskTemplate{Title: s, Priority: model.PriorityMedium}

	if !strings.HasPrefix(s, "[") {
		return task
	}
	end := strings.Index(s, "]")
	if end < 0 {
		return task
	}

	if p := strings.TrimSpace(s[1:end]); p != "" {
		task.Priority = p
	}
	rest := strings.TrimSpace(s[end+1:])
	if title, desc, ok := strings.Cut(rest, " - "); ok {
		task.Title = strings.TrimSpace(title)
		task.Description = strings.TrimSpace(desc)
	} else {
		task.Title = rest
	}
	return task
}

// Classes returns all known class identifiers, sorted.
func (t *TemplateStore) Classes() []string {
	names := make([]string, 0, len(t.templates))
	for name := range t.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tasks returns the template checklist for one class.
func (t *TemplateStore) Tasks(class string) ([]model.TaskTemplate, bool) {
	tasks, ok := t.templates[class]
	return tasks, ok
}

// Has reports whether a class identifier is already known.
func (t *TemplateStore) Has(class string) bool {
	_, ok := t.templates[class]
	return ok
}

// MergeDerived folds import-derived templates into the store; derived
// classes overwrite same-named existing ones.
func (t *TemplateStore) MergeDerived(derived map[string][]model.TaskTemplate) {
	for class, tasks := range derived {
		t.templates[class] = tasks
	}
}

// WriteDerived rewrites the classes_from_ics.txt review file with the
// given derived classes, sorted by name for stable output.
func (t *TemplateStore) WriteDerived(derived map[string][]model.TaskTemplate) error {
	var b strings.Builder
	b.WriteString("# Classes extracted from ICS calendar import\n")
	b.WriteString("# This file was auto-generated from your imported calendar\n\n")

	names := make([]string, 0, len(derived))
	for name := range derived {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.WriteString(name + "\n")
		for _, task := range derived[name] {
			b.WriteString("  [" + task.Priority + "] " + task.Title + " - " + task.Description + "\n")
		}
		b.WriteString("\n")
	}

	return writeFileAtomic(t.derivedPath, []byte(b.String()))
}

// dailyFile is the on-disk shape of the daily task store.
type dailyFile struct {
	DailyTasks map[string]map[string][]model.DailyTask `json:"daily_tasks"`
}

func (t *TemplateStore) loadDaily() {
	data, err := os.ReadFile(t.tasksPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			appLog.Error("daily tasks read failed, starting empty", err, "path", t.tasksPath)
		}
		return
	}

	var file dailyFile
	if err := json.Unmarshal(data, &file); err != nil {
		appLog.Error("daily tasks decode failed, starting empty", err, "path", t.tasksPath)
		return
	}
	if file.DailyTasks != nil {
		t.daily = file.DailyTasks
	}
}

// SaveDaily flushes the daily task store, with a timestamped backup when
// backups are enabled.
func (t *TemplateStore) SaveDaily() error {
	data, err := json.MarshalIndent(dailyFile{DailyTasks: t.daily}, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(t.tasksPath, data); err != nil {
		return err
	}
	if t.backups {
		if err := writeBackup(t.tasksPath, data); err != nil {
			appLog.Error("daily tasks backup failed", err, "path", t.tasksPath)
		}
	}
	return nil
}

// TasksForDate returns the checklists for one date, materializing them
// from the class templates (each task copied uncompleted) on first access.
func (t *TemplateStore) TasksForDate(date string) map[string][]model.DailyTask {
	if existing, ok := t.daily[date]; ok {
		return existing
	}

	day := map[string][]model.DailyTask{}
	for class, tasks := range t.templates {
		list := make([]model.DailyTask, 0, len(tasks))
		for _, task := range tasks {
			list = append(list, model.DailyTask{TaskTemplate: task, DateCreated: date})
		}
		day[class] = list
	}
	t.daily[date] = day

	if err := t.SaveDaily(); err != nil {
		appLog.Error("daily tasks save failed", err, "path", t.tasksPath)
	}
	return day
}

// SetCompleted updates one task's completion flag and persists the store.
// It reports false when the date, class, or index does not exist.
func (t *TemplateStore) SetCompleted(date, class string, index int, completed bool) bool {
	day, ok := t.daily[date]
	if !ok {
		return false
	}
	tasks, ok := day[class]
	if !ok || index < 0 || index >= len(tasks) {
		return false
	}

	tasks[index].Completed = completed
	if err := t.SaveDaily(); err != nil {
		appLog.Error("daily tasks save failed", err, "path", t.tasksPath)
	}
	return true
}
