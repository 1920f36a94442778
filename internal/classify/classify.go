// Package classify extracts canonical class identifiers from free-form
// calendar event titles and synthesizes the default task checklist for a
// class.
//
// University exports disagree on field order ("Applied Parallel
// Programming ECE 408 AL1" vs "ECE 408 Applied Parallel Programming"), so
// classification runs a prioritized cascade of independent matchers and
// degrades to "no classification" rather than guessing when nothing
// matches confidently.
package classify

import (
	"html"
	"regexp"
	"strings"

	"classcal/internal/model"
)

// A matcher tries to extract a class identifier from a cleaned title.
type matcher func(title string) (string, bool)

// Cascade order matters: the first matcher to succeed wins.
var matchers = []matcher{
	matchSubjectFirst,
	matchCodeFirst,
	matchCodeAnywhere,
	matchLooseCode,
}

var (
	// "Intro to Algs & Models of Comp ECE 374 BYA" — subject, then course
	// code (2-4 uppercase letters + 3 digits), then a section token.
	subjectFirstRe = regexp.MustCompile(`^(.+?)\s+([A-Z]{2,4}\s+\d{3})\s+[A-Z]{1,3}\d*$`)

	// "ECE374 Applied Programming AL1" — course code first, optional
	// trailing section token.
	codeFirstRe = regexp.MustCompile(`^([A-Z]{2,4}\s*\d{3})\s+(.+?)(\s+[A-Z]{1,3}\d*)?$`)

	// Section-like suffixes stripped from the tail of a subject.
	sectionSuffixRe = regexp.MustCompile(`\s+(AL\d*|AD\d*|Lab|Discussion|Lecture|BYA|BL\d*|AB\d*).*$`)

	// Bare course code anywhere in the title.
	codeRe = regexp.MustCompile(`[A-Z]{2,4}\s+\d{3}`)

	// Looser code form (2-3 digits) used only by the fallback.
	looseCodeRe = regexp.MustCompile(`[A-Z]{2,4}\s+\d{2,3}`)

	// Trailing section code, e.g. " A3", " AL1", " BYA".
	trailingSectionRe = regexp.MustCompile(`\s+[A-Z]{1,3}\d*$`)
)

// Classify derives a canonical class identifier ("CODE - Subject", or a
// bare "CODE") from an event title. ok is false when no pattern matches;
// such events contribute no class.
func Classify(title string) (string, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", false
	}
	title = html.UnescapeString(title)

	for _, m := range matchers {
		if id, ok := m(title); ok {
			return id, true
		}
	}
	return "", false
}

func matchSubjectFirst(title string) (string, bool) {
	m := subjectFirstRe.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[2]) + " - " + strings.TrimSpace(m[1]), true
}

func matchCodeFirst(title string) (string, bool) {
	m := codeFirstRe.FindStringSubmatch(title)
	if m == nil {
		return "", false
	}
	code := strings.TrimSpace(m[1])
	subject := sectionSuffixRe.ReplaceAllString(strings.TrimSpace(m[2]), "")
	return code + " - " + subject, true
}

func matchCodeAnywhere(title string) (string, bool) {
	code := codeRe.FindString(title)
	if code == "" {
		return "", false
	}
	remaining := strings.TrimSpace(strings.ReplaceAll(title, code, ""))
	remaining = trailingSectionRe.ReplaceAllString(remaining, "")
	if len(remaining) > 2 {
		return code + " - " + remaining, true
	}
	return code, true
}

// matchLooseCode is the last-resort matcher: the title merely contains
// something code-shaped, so it is returned whole minus any section token.
func matchLooseCode(title string) (string, bool) {
	if !looseCodeRe.MatchString(title) {
		return "", false
	}
	return strings.TrimSpace(trailingSectionRe.ReplaceAllString(title, "")), true
}

// DefaultTasks is the fixed checklist synthesized for a newly derived
// class, with descriptions interpolating the class identifier.
func DefaultTasks(class string) []model.TaskTemplate {
	return []model.TaskTemplate{
		{
			Title:       "Review today's material",
			Description: "Review notes and materials from " + class,
			Priority:    model.PriorityMedium,
		},
		{
			Title:       "Complete homework/assignments",
			Description: "Work on any assignments for " + class,
			Priority:    model.PriorityHigh,
		},
		{
			Title:       "Prepare for next class",
			Description: "Read ahead and prepare for next " + class + " session",
			Priority:    model.PriorityMedium,
		},
		{
			Title:       "Study/practice problems",
			Description: "Practice problems or study concepts from " + class,
			Priority:    model.PriorityMedium,
		},
	}
}
