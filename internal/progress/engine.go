package progress

import (
	"slices"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/domain"
)

// Compute builds the degree progress report for rec. It returns nil while the
// student has not chosen a degree type.
func Compute(cat *catalog.Catalog, rec domain.StudentRecord) *DegreeProgress {
	deg := cat.Degree(rec.DegreeType)
	if deg == nil {
		return nil
	}

	in := newEngineInput(cat, rec)

	required, requiredOverflow := requiredStage(in, deg)
	electives, electiveOverflow := electiveStage(in, deg)
	general := generalStage(in, deg, requiredOverflow, electiveOverflow)

	categories := make([]CategoryProgress, 0, len(required)+len(electives)+1)
	categories = append(categories, required...)
	categories = append(categories, electives...)
	categories = append(categories, general)

	hours := 0
	complete := true
	for _, c := range categories {
		hours += c.Completed * catalog.HoursPerCourse
		complete = complete && c.IsComplete
	}

	return &DegreeProgress{
		DegreeType:     rec.DegreeType,
		TotalHours:     deg.TotalHours,
		CompletedHours: min(hours, deg.TotalHours),
		Categories:     categories,
		IsComplete:     complete,
	}
}

// engineInput is the read-only view of the record shared by every stage.
type engineInput struct {
	cat         *catalog.Catalog
	completed   []string
	credits     map[string]int
	assignments map[string]string

	explicitGE    []string
	explicitGESet bool
	explicit      map[string]bool

	// consumed holds the codes counted toward a required category.
	consumed map[string]bool
	// requiredCodes holds every code named by a required category; elective
	// pools never contain them.
	requiredCodes []string
	// pools holds the eligible codes of each elective category.
	pools map[string]map[string]bool
}

func newEngineInput(cat *catalog.Catalog, rec domain.StudentRecord) *engineInput {
	in := &engineInput{
		cat:           cat,
		completed:     rec.CompletedCourses,
		credits:       make(map[string]int),
		assignments:   rec.CourseCategories,
		explicit:      make(map[string]bool),
		consumed:      make(map[string]bool),
		requiredCodes: cat.RequiredCodes(rec.DegreeType),
		pools:         make(map[string]map[string]bool),
	}
	for _, c := range rec.SpecialCredits {
		in.credits[c.CountsAs]++
	}
	if codes, ok := rec.ExplicitGeneralElectives(); ok {
		in.explicitGESet = true
		// Only completed courses can be credited.
		for _, code := range codes {
			if !rec.HasCompleted(code) {
				continue
			}
			in.explicitGE = append(in.explicitGE, code)
			in.explicit[code] = true
		}
	}
	return in
}

// tally applies the capped counting rule shared by every category.
func tally(slot catalog.Slot, eligible []string, matched []string, credits int) CategoryProgress {
	raw := len(matched) + credits
	counted := matched[:min(len(matched), slot.Required)]
	return CategoryProgress{
		ID:               slot.ID,
		Name:             slot.Name,
		Kind:             slot.Kind,
		Capstone:         slot.Category.Capstone,
		Required:         slot.Required,
		Completed:        min(raw, slot.Required),
		CreditCount:      credits,
		IsComplete:       raw >= slot.Required,
		Courses:          eligible,
		CompletedCourses: slices.Clone(counted),
	}
}

// requiredStage counts completed courses against each required category in
// declared order. Matches beyond the required count overflow toward general
// electives.
func requiredStage(in *engineInput, deg *catalog.Degree) ([]CategoryProgress, []string) {
	var results []CategoryProgress
	var overflow []string
	for _, slot := range deg.Slots() {
		if slot.Kind != catalog.KindRequired {
			continue
		}
		var matched []string
		for _, code := range in.completed {
			if slices.Contains(slot.Category.Courses, code) && !slices.Contains(matched, code) {
				matched = append(matched, code)
			}
		}
		res := tally(slot, slices.Clone(slot.Category.Courses), matched, in.credits[slot.ID])
		for _, code := range res.CompletedCourses {
			in.consumed[code] = true
		}
		overflow = append(overflow, matched[len(res.CompletedCourses):]...)
		results = append(results, res)
	}
	return results, overflow
}

// electiveStage counts completed courses against each elective category.
// Courses the student marked as general electives are skipped, and flexible
// courses only count where the student assigned them.
func electiveStage(in *engineInput, deg *catalog.Degree) ([]CategoryProgress, []string) {
	exclude := make(map[string]bool, len(in.requiredCodes))
	for _, code := range in.requiredCodes {
		exclude[code] = true
	}

	var results []CategoryProgress
	var overflow []string
	for _, slot := range deg.Slots() {
		if slot.Kind != catalog.KindElective {
			continue
		}
		pool := slot.Eligible(in.cat, exclude)
		eligible := make([]string, 0, len(pool))
		poolSet := make(map[string]bool, len(pool))
		for _, course := range pool {
			eligible = append(eligible, course.Code)
			poolSet[course.Code] = true
		}
		in.pools[slot.ID] = poolSet

		var matched []string
		for _, code := range in.completed {
			if !poolSet[code] || in.explicit[code] || slices.Contains(matched, code) {
				continue
			}
			if in.cat.IsFlexible(code) && in.assignments[code] != slot.ID {
				continue
			}
			matched = append(matched, code)
		}
		res := tally(slot, eligible, matched, in.credits[slot.ID])
		overflow = append(overflow, matched[len(res.CompletedCourses):]...)
		results = append(results, res)
	}
	return results, overflow
}

// generalStage fills general electives. With an explicit selection the
// selection plus both overflow lists count; otherwise general electives are
// inferred from the completed courses no other category can use.
func generalStage(in *engineInput, deg *catalog.Degree, requiredOverflow, electiveOverflow []string) CategoryProgress {
	slot, _ := deg.Resolve(domain.CategoryGeneralElectives)

	var matched []string
	add := func(code string) {
		if !in.consumed[code] && !slices.Contains(matched, code) {
			matched = append(matched, code)
		}
	}

	if in.explicitGESet {
		for _, code := range in.explicitGE {
			add(code)
		}
		for _, code := range requiredOverflow {
			add(code)
		}
		for _, code := range electiveOverflow {
			add(code)
		}
	} else {
		for _, code := range in.completed {
			if in.consumed[code] {
				continue
			}
			if in.cat.IsFlexible(code) {
				if in.assignments[code] == domain.CategoryGeneralElectives {
					add(code)
				}
				continue
			}
			if !in.inElectivePool(code) {
				add(code)
			}
		}
	}

	all := in.cat.Courses()
	eligible := make([]string, 0, len(all))
	for _, course := range all {
		eligible = append(eligible, course.Code)
	}
	return tally(slot, eligible, matched, in.credits[slot.ID])
}

func (in *engineInput) inElectivePool(code string) bool {
	for _, pool := range in.pools {
		if pool[code] {
			return true
		}
	}
	return false
}
