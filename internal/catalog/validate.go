package catalog

import (
	"fmt"

	"github.com/alexanderramin/advisor/internal/domain"
)

// Validate checks the structural invariants of the reference data and
// returns every problem found.
func Validate(c *Catalog) []error {
	var errs []error

	errs = append(errs, validateCourses(c.courses)...)

	for _, d := range []domain.DegreeType{domain.DegreeMajor, domain.DegreeMinor} {
		errs = append(errs, validateDegree(c, string(d), c.Degree(d))...)
	}

	for i, rule := range c.requirements.MutuallyExclusive {
		if len(rule.Courses) < 2 {
			errs = append(errs, fmt.Errorf("mutuallyExclusive[%d]: needs at least two courses", i))
		}
		errs = append(errs, unknownCodes(c, fmt.Sprintf("mutuallyExclusive[%d]", i), rule.Courses)...)
	}
	for prefix, w := range c.requirements.EnrollmentWarnings {
		for _, code := range w.Courses {
			if domain.CoursePrefix(code) != prefix {
				errs = append(errs, fmt.Errorf("enrollmentWarnings.%s: %q does not carry prefix %s", prefix, code, prefix))
			}
		}
		if w.Message == "" {
			errs = append(errs, fmt.Errorf("enrollmentWarnings.%s: message is required", prefix))
		}
	}
	for code, prereqs := range c.requirements.Prerequisites {
		errs = append(errs, unknownCodes(c, "prerequisites."+code, append([]string{code}, prereqs...))...)
	}
	for _, code := range c.offerings.OfferedCodes {
		if _, ok := c.CourseByCode(code); !ok {
			errs = append(errs, fmt.Errorf("offerings: offered course %q not in catalog", code))
		}
	}

	return errs
}

func validateCourses(courses []Course) []error {
	var errs []error
	seen := make(map[string]bool, len(courses))
	for i, course := range courses {
		if course.Code == "" {
			errs = append(errs, fmt.Errorf("courses[%d].code is required", i))
			continue
		}
		if seen[course.Code] {
			errs = append(errs, fmt.Errorf("courses[%d]: duplicate code %q", i, course.Code))
		}
		seen[course.Code] = true
		if !ValidCourseCategories[course.Category] {
			errs = append(errs, fmt.Errorf("course %s: invalid category %q", course.Code, course.Category))
		}
		if course.Flexible {
			if len(course.EligibleCategories) < 2 {
				errs = append(errs, fmt.Errorf("course %s: flexible courses need at least two eligible categories", course.Code))
			}
			for _, id := range course.EligibleCategories {
				if !domain.FlexibleAssignments[id] {
					errs = append(errs, fmt.Errorf("course %s: eligible category %q is not assignable", course.Code, id))
				}
			}
		}
	}
	return errs
}

func validateDegree(c *Catalog, name string, d *Degree) []error {
	var errs []error
	ids := make(map[string]bool)
	hours := 0

	for _, rc := range d.Required.Categories {
		prefix := fmt.Sprintf("%s.required.%s", name, rc.ID)
		errs = append(errs, validateCategoryCommon(prefix, rc, ids)...)
		if len(rc.Courses) == 0 {
			errs = append(errs, fmt.Errorf("%s: required categories need an explicit course list", prefix))
		}
		errs = append(errs, unknownCodes(c, prefix, rc.Courses)...)
		hours += rc.RequiredCount() * HoursPerCourse
	}
	for _, rc := range d.Required.Categories {
		for _, p := range rc.Prerequisites {
			if !ids[p] {
				errs = append(errs, fmt.Errorf("%s.required.%s: prerequisite %q is not a category of this degree", name, rc.ID, p))
			}
		}
	}
	for _, ec := range d.ElectiveCategories() {
		prefix := fmt.Sprintf("%s.electives.%s", name, ec.ID)
		errs = append(errs, validateCategoryCommon(prefix, ec, ids)...)
		if !ValidCourseCategories[ec.Category] {
			errs = append(errs, fmt.Errorf("%s: invalid catalog tag %q", prefix, ec.Category))
		}
		hours += ec.RequiredCount() * HoursPerCourse
	}
	if d.GeneralElectives.Count <= 0 {
		errs = append(errs, fmt.Errorf("%s.generalElectives.count must be positive", name))
	}
	hours += d.GeneralElectives.Count * HoursPerCourse

	if hours != d.TotalHours {
		errs = append(errs, fmt.Errorf("%s: category hours sum to %d, totalHours is %d", name, hours, d.TotalHours))
	}
	return errs
}

func validateCategoryCommon(prefix string, rc RequirementCategory, ids map[string]bool) []error {
	var errs []error
	if rc.ID == "" {
		errs = append(errs, fmt.Errorf("%s: id is required", prefix))
	}
	if ids[rc.ID] {
		errs = append(errs, fmt.Errorf("%s: duplicate category id", prefix))
	}
	ids[rc.ID] = true
	if rc.Hours != 0 && rc.Hours != HoursPerCourse {
		errs = append(errs, fmt.Errorf("%s: hours must be %d, got %d", prefix, HoursPerCourse, rc.Hours))
	}
	return errs
}

func unknownCodes(c *Catalog, prefix string, codes []string) []error {
	var errs []error
	for _, code := range codes {
		if _, ok := c.CourseByCode(code); !ok {
			errs = append(errs, fmt.Errorf("%s: course %q not in catalog", prefix, code))
		}
	}
	return errs
}
