package domain

import (
	"fmt"
	"slices"
	"time"
)

// SpecialCredit is credit earned outside the course list (transfer, AP,
// waivers). It counts toward the category named by CountsAs but never
// appears in that category's course list.
type SpecialCredit struct {
	ID          string     `json:"id"`
	Type        CreditType `json:"type"`
	Description string     `json:"description"`
	CountsAs    string     `json:"countsAs"`
}

// StudentRecord is everything the student has told the advisor. The progress
// engine reads it and never mutates it.
type StudentRecord struct {
	ID                 string
	Name               string
	DegreeType         DegreeType
	ExpectedGraduation string
	IncludeSummer      bool

	CompletedCourses []string
	ScheduledCourses []string
	SpecialCredits   []SpecialCredit

	// CourseCategories maps flexible course codes to one of FlexibleAssignments.
	CourseCategories map[string]string

	// GeneralElectives is only meaningful when GeneralElectivesSet is true.
	// An explicitly set empty list means "confirmed zero", not "infer".
	GeneralElectives    []string
	GeneralElectivesSet bool

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExplicitGeneralElectives returns the student's affirmed general electives and
// whether the list was supplied at all.
func (r *StudentRecord) ExplicitGeneralElectives() ([]string, bool) {
	if !r.GeneralElectivesSet {
		return nil, false
	}
	return r.GeneralElectives, true
}

// HasCompleted reports whether code is in the completed list.
func (r *StudentRecord) HasCompleted(code string) bool {
	return slices.Contains(r.CompletedCourses, code)
}

// HasScheduled reports whether code is in the scheduled list.
func (r *StudentRecord) HasScheduled(code string) bool {
	return slices.Contains(r.ScheduledCourses, code)
}

// AddCompleted appends code to the completed list and drops it from the
// schedule. Returns false when the course was already recorded.
func (r *StudentRecord) AddCompleted(code string) bool {
	r.ScheduledCourses = slices.DeleteFunc(r.ScheduledCourses, func(c string) bool { return c == code })
	if r.HasCompleted(code) {
		return false
	}
	r.CompletedCourses = append(r.CompletedCourses, code)
	return true
}

// RemoveCompleted drops code from the completed list together with any
// category assignment or general-elective selection that referenced it.
func (r *StudentRecord) RemoveCompleted(code string) bool {
	if !r.HasCompleted(code) {
		return false
	}
	r.CompletedCourses = slices.DeleteFunc(r.CompletedCourses, func(c string) bool { return c == code })
	delete(r.CourseCategories, code)
	r.GeneralElectives = slices.DeleteFunc(r.GeneralElectives, func(c string) bool { return c == code })
	return true
}

// AddScheduled appends code to next term's schedule. Completed courses and
// duplicates are ignored.
func (r *StudentRecord) AddScheduled(code string) bool {
	if r.HasCompleted(code) || r.HasScheduled(code) {
		return false
	}
	r.ScheduledCourses = append(r.ScheduledCourses, code)
	return true
}

// RemoveScheduled drops code from the schedule.
func (r *StudentRecord) RemoveScheduled(code string) bool {
	if !r.HasScheduled(code) {
		return false
	}
	r.ScheduledCourses = slices.DeleteFunc(r.ScheduledCourses, func(c string) bool { return c == code })
	return true
}

// AssignCategory records which elective pool a flexible course counts toward.
// An empty categoryID clears the assignment.
func (r *StudentRecord) AssignCategory(code, categoryID string) error {
	if categoryID == "" {
		delete(r.CourseCategories, code)
		return nil
	}
	if !FlexibleAssignments[categoryID] {
		return fmt.Errorf("category %q cannot be assigned to a flexible course", categoryID)
	}
	if r.CourseCategories == nil {
		r.CourseCategories = make(map[string]string)
	}
	r.CourseCategories[code] = categoryID
	return nil
}

// SetGeneralElectives marks codes as the student's affirmed general electives.
// Duplicates are dropped; an empty list confirms zero.
func (r *StudentRecord) SetGeneralElectives(codes []string) {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	r.GeneralElectives = out
	r.GeneralElectivesSet = true
}

// ClearGeneralElectives returns general electives to inference mode.
func (r *StudentRecord) ClearGeneralElectives() {
	r.GeneralElectives = nil
	r.GeneralElectivesSet = false
}

// AddSpecialCredit appends c. The caller assigns the ID.
func (r *StudentRecord) AddSpecialCredit(c SpecialCredit) error {
	if c.ID == "" {
		return fmt.Errorf("special credit ID is required")
	}
	if c.CountsAs == "" {
		return fmt.Errorf("special credit %q must name the category it counts as", c.ID)
	}
	for _, existing := range r.SpecialCredits {
		if existing.ID == c.ID {
			return fmt.Errorf("special credit %q already recorded", c.ID)
		}
	}
	r.SpecialCredits = append(r.SpecialCredits, c)
	return nil
}

// RemoveSpecialCredit drops the credit with the given ID.
func (r *StudentRecord) RemoveSpecialCredit(id string) bool {
	n := len(r.SpecialCredits)
	r.SpecialCredits = slices.DeleteFunc(r.SpecialCredits, func(c SpecialCredit) bool { return c.ID == id })
	return len(r.SpecialCredits) != n
}

// Clone returns a deep copy that shares no slices or maps with r.
func (r StudentRecord) Clone() StudentRecord {
	out := r
	out.CompletedCourses = slices.Clone(r.CompletedCourses)
	out.ScheduledCourses = slices.Clone(r.ScheduledCourses)
	out.SpecialCredits = slices.Clone(r.SpecialCredits)
	out.GeneralElectives = slices.Clone(r.GeneralElectives)
	if r.CourseCategories != nil {
		out.CourseCategories = make(map[string]string, len(r.CourseCategories))
		for k, v := range r.CourseCategories {
			out.CourseCategories[k] = v
		}
	}
	return out
}

// DisplayID returns the first 8 characters of the record ID.
func (r *StudentRecord) DisplayID() string {
	if len(r.ID) >= 8 {
		return r.ID[:8]
	}
	return r.ID
}
