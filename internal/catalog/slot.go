package catalog

import (
	"slices"

	"github.com/alexanderramin/advisor/internal/domain"
)

// Kind tells how a requirement slot decides which courses fill it.
type Kind int

const (
	// KindRequired slots accept only their explicit course list.
	KindRequired Kind = iota + 1
	// KindElective slots accept any course carrying their catalog tag, plus
	// flexible courses that list the slot as eligible.
	KindElective
	// KindGeneral is the catch-all general-electives slot.
	KindGeneral
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindElective:
		return "elective"
	case KindGeneral:
		return "general"
	}
	return "unknown"
}

// Slot is a requirement category resolved against one degree.
type Slot struct {
	Kind     Kind
	ID       string
	Name     string
	Required int
	Category RequirementCategory
}

// Slots returns every slot of the degree: required categories in declared
// order, then electives, then general electives.
func (d *Degree) Slots() []Slot {
	out := make([]Slot, 0, len(d.Required.Categories)+len(d.ElectiveCategories())+1)
	for _, rc := range d.Required.Categories {
		out = append(out, Slot{Kind: KindRequired, ID: rc.ID, Name: rc.Name, Required: rc.RequiredCount(), Category: rc})
	}
	for _, ec := range d.ElectiveCategories() {
		out = append(out, Slot{Kind: KindElective, ID: ec.ID, Name: ec.Name, Required: ec.RequiredCount(), Category: ec})
	}
	out = append(out, d.generalSlot())
	return out
}

// Resolve finds the slot with the given category ID.
func (d *Degree) Resolve(id string) (Slot, bool) {
	if id == domain.CategoryGeneralElectives {
		return d.generalSlot(), true
	}
	for _, s := range d.Slots() {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

func (d *Degree) generalSlot() Slot {
	return Slot{
		Kind:     KindGeneral,
		ID:       domain.CategoryGeneralElectives,
		Name:     d.GeneralElectives.Name,
		Required: d.GeneralElectives.Count,
	}
}

// Accepts reports whether course can fill the slot, ignoring exclusions.
func (s Slot) Accepts(course Course) bool {
	switch s.Kind {
	case KindRequired:
		return slices.Contains(s.Category.Courses, course.Code)
	case KindElective:
		if course.Flexible && slices.Contains(course.EligibleCategories, s.ID) {
			return true
		}
		return course.Category == s.Category.Category
	case KindGeneral:
		return true
	}
	return false
}

// Eligible lists the catalog courses that can fill the slot. Required slots
// keep their declared order and skip codes missing from the catalog; other
// slots follow catalog order and drop anything in exclude.
func (s Slot) Eligible(c *Catalog, exclude map[string]bool) []Course {
	var out []Course
	switch s.Kind {
	case KindRequired:
		for _, code := range s.Category.Courses {
			if course, ok := c.CourseByCode(code); ok {
				out = append(out, course)
			}
		}
	case KindElective:
		for _, course := range c.courses {
			if s.Accepts(course) && !exclude[course.Code] {
				out = append(out, course)
			}
		}
	case KindGeneral:
		out = append(out, c.courses...)
	}
	return out
}
