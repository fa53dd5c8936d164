// Package progress computes how far a student is through the requirement
// tree of their degree. Everything here is a pure function of the student
// record and the catalog: no caching, no mutation, identical output for
// identical input.
package progress

import (
	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/domain"
)

type CategoryProgress struct {
	ID       string
	Name     string
	Kind     catalog.Kind
	Capstone bool

	Required int
	// Completed is capped at Required; IsComplete is decided on the uncapped
	// total of matched courses plus special credits.
	Completed   int
	CreditCount int
	IsComplete  bool

	// Courses is every code eligible for the category; CompletedCourses is the
	// subset actually counted, capped at Required. Special credits never appear
	// here.
	Courses          []string
	CompletedCourses []string
}

// Remaining is the number of courses still needed.
func (c CategoryProgress) Remaining() int {
	if c.IsComplete {
		return 0
	}
	return c.Required - c.Completed
}

type DegreeProgress struct {
	DegreeType     domain.DegreeType
	TotalHours     int
	CompletedHours int
	Categories     []CategoryProgress
	IsComplete     bool
}

// Category returns the progress of the category with the given ID.
func (d *DegreeProgress) Category(id string) (CategoryProgress, bool) {
	for _, c := range d.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryProgress{}, false
}

// Incomplete lists the categories that still need courses, in report order.
func (d *DegreeProgress) Incomplete() []CategoryProgress {
	var out []CategoryProgress
	for _, c := range d.Categories {
		if c.Remaining() > 0 {
			out = append(out, c)
		}
	}
	return out
}

// CountedIn returns the category whose counted courses include code.
func (d *DegreeProgress) CountedIn(code string) (CategoryProgress, bool) {
	for _, c := range d.Categories {
		for _, counted := range c.CompletedCourses {
			if counted == code {
				return c, true
			}
		}
	}
	return CategoryProgress{}, false
}

// PercentComplete is CompletedHours / TotalHours in [0, 1].
func (d *DegreeProgress) PercentComplete() float64 {
	if d.TotalHours <= 0 {
		return 0
	}
	return float64(d.CompletedHours) / float64(d.TotalHours)
}
