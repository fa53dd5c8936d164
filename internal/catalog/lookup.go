package catalog

import (
	"slices"
	"strings"

	"github.com/alexanderramin/advisor/internal/domain"
)

// CourseByCode finds a course by its exact code.
func (c *Catalog) CourseByCode(code string) (Course, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return Course{}, false
	}
	return c.courses[i], true
}

// Title returns the course title, or the code itself for unknown courses.
func (c *Catalog) Title(code string) string {
	if course, ok := c.CourseByCode(code); ok {
		return course.Title
	}
	return code
}

// RequiredCodes lists every code named by a required category of d, in
// declared order without duplicates.
func (c *Catalog) RequiredCodes(d domain.DegreeType) []string {
	deg := c.Degree(d)
	if deg == nil {
		return nil
	}
	var out []string
	for _, rc := range deg.Required.Categories {
		for _, code := range rc.Courses {
			if !slices.Contains(out, code) {
				out = append(out, code)
			}
		}
	}
	return out
}

// CoursesForCategory lists the courses that can fill categoryID for degree d.
// excludeCodes only applies to elective pools; callers pass the required
// codes there so a course never counts twice. Unknown categories and
// undecided degrees yield nil.
func (c *Catalog) CoursesForCategory(categoryID string, d domain.DegreeType, excludeCodes []string) []Course {
	deg := c.Degree(d)
	if deg == nil {
		return nil
	}
	slot, ok := deg.Resolve(categoryID)
	if !ok {
		return nil
	}
	return slot.Eligible(c, toSet(excludeCodes))
}

// IsOffered reports whether code is offered in the catalog's term.
func (c *Catalog) IsOffered(code string) bool {
	return c.offered[code]
}

// OfferedCoursesForCategory narrows CoursesForCategory to courses offered this
// term that are not already selected or scheduled.
func (c *Catalog) OfferedCoursesForCategory(categoryID string, d domain.DegreeType, excludeCodes, selected []string) []Course {
	taken := toSet(selected)
	var out []Course
	for _, course := range c.CoursesForCategory(categoryID, d, excludeCodes) {
		if c.offered[course.Code] && !taken[course.Code] {
			out = append(out, course)
		}
	}
	return out
}

// IsMutuallyExcluded reports whether some rule names both candidate and a
// different code in selected.
func (c *Catalog) IsMutuallyExcluded(candidate string, selected []string) bool {
	_, ok := c.MutualExclusionMessage(candidate, selected)
	return ok
}

// MutualExclusionMessage returns the message of the first rule that excludes
// candidate given selected.
func (c *Catalog) MutualExclusionMessage(candidate string, selected []string) (string, bool) {
	for _, rule := range c.requirements.MutuallyExclusive {
		if !slices.Contains(rule.Courses, candidate) {
			continue
		}
		for _, s := range selected {
			if s != candidate && slices.Contains(rule.Courses, s) {
				return rule.Message, true
			}
		}
	}
	return "", false
}

// EnrollmentWarning returns the warning configured for code's department
// prefix, but only when code is listed under it.
func (c *Catalog) EnrollmentWarning(code string) (string, bool) {
	w, ok := c.requirements.EnrollmentWarnings[domain.CoursePrefix(code)]
	if !ok || !slices.Contains(w.Courses, code) {
		return "", false
	}
	return w.Message, true
}

// IsFlexible reports whether code may be assigned to more than one elective
// category.
func (c *Catalog) IsFlexible(code string) bool {
	course, ok := c.CourseByCode(code)
	return ok && course.Flexible
}

// Prerequisites lists the course-level prerequisites configured for code.
func (c *Catalog) Prerequisites(code string) []string {
	return slices.Clone(c.requirements.Prerequisites[code])
}

// SectionsFor lists this term's sections of code.
func (c *Catalog) SectionsFor(code string) []Section {
	var out []Section
	for _, s := range c.offerings.Sections {
		if s.Code == code {
			out = append(out, s)
		}
	}
	return out
}

// Search matches query case-insensitively against course codes and titles.
// An empty query returns the whole catalog.
func (c *Catalog) Search(query string) []Course {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Course
	for _, course := range c.courses {
		if q == "" ||
			strings.Contains(strings.ToLower(course.Code), q) ||
			strings.Contains(strings.ToLower(course.Title), q) {
			out = append(out, course)
		}
	}
	return out
}

func toSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, code := range codes {
		set[code] = true
	}
	return set
}
