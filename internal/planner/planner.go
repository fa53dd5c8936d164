// Package planner spreads a student's remaining requirements over the
// semesters left before graduation. The output is a suggestion: distributed
// slots carry a placeholder code rather than a concrete course.
package planner

import (
	"github.com/alexanderramin/advisor/internal/progress"
)

// Placeholder is the code shown for a slot with no concrete course yet.
const Placeholder = "—"

// maxCapstoneExtras is how many non-capstone slots may share the capstone
// semester.
const maxCapstoneExtras = 2

// Need is a category that still needs Remaining courses.
type Need struct {
	CategoryID string
	Name       string
	Remaining  int
	Capstone   bool
}

type Input struct {
	// Start is the next term with known offerings.
	Start     Term
	Scheduled []string
	// ScheduledCategories maps a scheduled code to the category name it
	// counts toward.
	ScheduledCategories map[string]string
	Needed              []Need
	ExpectedGraduation  string
	IncludeSummer       bool
}

type PlannedCourse struct {
	Code       string
	CategoryID string
	Category   string
	Scheduled  bool
	Capstone   bool
}

// Placeholder reports whether the course is a to-be-determined slot.
func (c PlannedCourse) Placeholder() bool {
	return c.Code == Placeholder
}

type Semester struct {
	Term    Term
	Courses []PlannedCourse
}

// NeedsFrom converts the incomplete categories of p into planner needs.
func NeedsFrom(p *progress.DegreeProgress) []Need {
	if p == nil {
		return nil
	}
	var needs []Need
	for _, c := range p.Incomplete() {
		needs = append(needs, Need{
			CategoryID: c.ID,
			Name:       c.Name,
			Remaining:  c.Remaining(),
			Capstone:   c.Capstone,
		})
	}
	return needs
}

// Plan builds the semester-by-semester plan. Scheduled courses go in the first
// semester, a capstone slot is pinned to its Spring, and the remaining slots
// are spread evenly across the other semesters. Empty semesters are dropped.
func Plan(in Input) []Semester {
	var regular []PlannedCourse
	var capstone []PlannedCourse
	for _, n := range in.Needed {
		for i := 0; i < n.Remaining; i++ {
			slot := PlannedCourse{Code: Placeholder, CategoryID: n.CategoryID, Category: n.Name, Capstone: n.Capstone}
			if n.Capstone {
				capstone = append(capstone, slot)
			} else {
				regular = append(regular, slot)
			}
		}
	}
	if len(in.Scheduled) == 0 && len(regular) == 0 && len(capstone) == 0 {
		return nil
	}

	terms := Semesters(in.Start, in.ExpectedGraduation, in.IncludeSummer)
	semesters := make([]Semester, len(terms))
	for i, t := range terms {
		semesters[i].Term = t
	}

	for _, code := range in.Scheduled {
		semesters[0].Courses = append(semesters[0].Courses, PlannedCourse{
			Code:      code,
			Category:  in.ScheduledCategories[code],
			Scheduled: true,
		})
	}

	capIdx := -1
	if len(capstone) > 0 {
		capIdx = capstoneIndex(terms, in.ExpectedGraduation)
		if capIdx < 0 {
			// No Spring in the window: plan the capstone like any other slot.
			regular = append(regular, capstone...)
		} else {
			semesters[capIdx].Courses = append(semesters[capIdx].Courses, capstone...)
		}
	}

	distribute(semesters, regular, len(in.Scheduled) > 0, capIdx)

	var out []Semester
	for _, s := range semesters {
		if len(s.Courses) > 0 {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		out = append(out, Semester{Term: terms[0]})
	}
	return out
}

// capstoneIndex locates the capstone semester in terms. When the target
// Spring lies outside the window the last Spring in the window is used.
func capstoneIndex(terms []Term, graduation string) int {
	if target, ok := CapstoneTerm(graduation); ok {
		for i, t := range terms {
			if t == target {
				return i
			}
		}
	}
	for i := len(terms) - 1; i >= 0; i-- {
		if terms[i].Season == Spring {
			return i
		}
	}
	return -1
}

// distribute places slots evenly over the available semesters, at most
// ceil(len(slots)/available) per semester. The capstone semester takes at
// most maxCapstoneExtras; what it cannot take spills into the later
// non-capstone semesters, then the earlier ones.
func distribute(semesters []Semester, slots []PlannedCourse, firstReserved bool, capIdx int) {
	if len(slots) == 0 {
		return
	}

	var available []int
	for i := range semesters {
		if i == 0 && firstReserved && len(semesters) > 1 {
			continue
		}
		available = append(available, i)
	}

	per := (len(slots) + len(available) - 1) / len(available)
	next := 0
	for _, i := range available {
		quota := per
		if i == capIdx {
			quota = min(per, maxCapstoneExtras)
		}
		for q := 0; q < quota && next < len(slots); q++ {
			semesters[i].Courses = append(semesters[i].Courses, slots[next])
			next++
		}
	}
	if next == len(slots) {
		return
	}

	var spill []int
	for _, i := range available {
		if i > capIdx {
			spill = append(spill, i)
		}
	}
	for _, i := range available {
		if i < capIdx {
			spill = append(spill, i)
		}
	}
	if len(spill) == 0 {
		spill = available
	}
	for k := 0; next < len(slots); k++ {
		i := spill[k%len(spill)]
		semesters[i].Courses = append(semesters[i].Courses, slots[next])
		next++
	}
}
