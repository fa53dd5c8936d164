// Package report renders an advising summary from a student's progress and
// semester plan. Rendering is a pure function of its inputs.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/alexanderramin/advisor/internal/planner"
	"github.com/alexanderramin/advisor/internal/progress"
)

// Disclaimer is printed on every report.
const Disclaimer = "This summary is an advising aid, not an official degree audit. " +
	"Confirm your requirements with your academic advisor."

type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts "csv" or "pdf", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("report format %q must be %q or %q", s, FormatCSV, FormatPDF)
}

// Summary is everything a report shows.
type Summary struct {
	Record      domain.StudentRecord
	Progress    *progress.DegreeProgress
	Plan        []planner.Semester
	GeneratedAt time.Time
}

// Dataset is a table whose rows are keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

const (
	colCategory  = "Category"
	colType      = "Type"
	colRequired  = "Required"
	colCompleted = "Completed"
	colRemaining = "Remaining"
	colStatus    = "Status"
	colCourses   = "Courses"

	colTerm  = "Term"
	colCode  = "Course"
	colTitle = "Title"
	colFor   = "Counts Toward"
)

// ProgressDataset tabulates category progress in report order. A nil progress
// (no degree chosen) yields a table with headers only.
func ProgressDataset(p *progress.DegreeProgress) Dataset {
	ds := Dataset{Headers: []string{colCategory, colType, colRequired, colCompleted, colRemaining, colStatus, colCourses}}
	if p == nil {
		return ds
	}
	for _, c := range p.Categories {
		ds.Rows = append(ds.Rows, map[string]string{
			colCategory:  c.Name,
			colType:      c.Kind.String(),
			colRequired:  strconv.Itoa(c.Required),
			colCompleted: strconv.Itoa(c.Completed),
			colRemaining: strconv.Itoa(c.Remaining()),
			colStatus:    status(c),
			colCourses:   countedCourses(c),
		})
	}
	return ds
}

// PlanDataset tabulates the semester plan, one row per course. Titles are
// looked up in cat when it is non-nil.
func PlanDataset(plan []planner.Semester, cat *catalog.Catalog) Dataset {
	ds := Dataset{Headers: []string{colTerm, colCode, colTitle, colFor}}
	for _, s := range plan {
		for _, c := range s.Courses {
			title := "To be determined"
			if !c.Placeholder() {
				title = ""
				if cat != nil {
					title = cat.Title(c.Code)
				}
			}
			ds.Rows = append(ds.Rows, map[string]string{
				colTerm:  s.Term.String(),
				colCode:  c.Code,
				colTitle: title,
				colFor:   c.Category,
			})
		}
	}
	return ds
}

func status(c progress.CategoryProgress) string {
	switch {
	case c.IsComplete:
		return "Complete"
	case c.Completed > 0:
		return "In progress"
	}
	return "Not started"
}

func countedCourses(c progress.CategoryProgress) string {
	parts := append([]string(nil), c.CompletedCourses...)
	if c.CreditCount > 0 {
		parts = append(parts, fmt.Sprintf("%d special credit(s)", c.CreditCount))
	}
	return strings.Join(parts, "; ")
}
