// Package catalog holds the static reference data the advisor works from:
// the course list, the requirement tree for each degree type and the current
// term's offerings. A Catalog is built once and never mutated.
package catalog

import (
	"github.com/alexanderramin/advisor/internal/domain"
)

// CourseCategory is the catalog tag elective categories match against.
type CourseCategory string

const (
	DigitalCulture            CourseCategory = "DigitalCulture"
	DataAnalytics             CourseCategory = "DataAnalytics"
	HonorsSeminarsAndCapstone CourseCategory = "HonorsSeminarsAndCapstone"
	MultimediaAuthoring       CourseCategory = "MultimediaAuthoring"
)

// ValidCourseCategories is the canonical set of catalog tags.
var ValidCourseCategories = map[CourseCategory]bool{
	DigitalCulture: true, DataAnalytics: true,
	HonorsSeminarsAndCapstone: true, MultimediaAuthoring: true,
}

// HoursPerCourse is the fixed credit assumption used for every requirement.
const HoursPerCourse = 3

type Course struct {
	Code        string         `json:"code"`
	Title       string         `json:"title"`
	Category    CourseCategory `json:"category"`
	College     string         `json:"college"`
	Description string         `json:"description,omitempty"`

	// Flexible courses can satisfy every category in EligibleCategories and
	// count toward one only when the student assigns it.
	Flexible           bool     `json:"flexible,omitempty"`
	EligibleCategories []string `json:"eligibleCategories,omitempty"`
}

// RequirementCategory is one slot in a degree's requirement tree.
type RequirementCategory struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Hours         int            `json:"hours"`
	Courses       []string       `json:"courses,omitempty"`
	Category      CourseCategory `json:"category,omitempty"`
	Count         int            `json:"count,omitempty"`
	SelectOne     bool           `json:"selectOne,omitempty"`
	Prerequisites []string       `json:"prerequisites,omitempty"`
	Capstone      bool           `json:"capstone,omitempty"`
}

// RequiredCount is the number of courses that satisfy the slot. SelectOne
// forces 1 regardless of Count; a missing Count means 1.
func (c RequirementCategory) RequiredCount() int {
	if c.SelectOne || c.Count <= 0 {
		return 1
	}
	return c.Count
}

type CategoryGroup struct {
	Categories []RequirementCategory `json:"categories"`
}

type GeneralElectives struct {
	Name  string `json:"name"`
	Hours int    `json:"hours"`
	Count int    `json:"count"`
}

type Degree struct {
	TotalHours       int              `json:"totalHours"`
	Required         CategoryGroup    `json:"required"`
	Electives        *CategoryGroup   `json:"electives,omitempty"`
	GeneralElectives GeneralElectives `json:"generalElectives"`
}

// ElectiveCategories returns the elective slots, or nil for degrees without any.
func (d *Degree) ElectiveCategories() []RequirementCategory {
	if d.Electives == nil {
		return nil
	}
	return d.Electives.Categories
}

type EnrollmentWarning struct {
	Courses []string `json:"courses"`
	Message string   `json:"message"`
}

type MutualExclusion struct {
	Courses []string `json:"courses"`
	Message string   `json:"message"`
}

type Requirements struct {
	Major              Degree                       `json:"major"`
	Minor              Degree                       `json:"minor"`
	EnrollmentWarnings map[string]EnrollmentWarning `json:"enrollmentWarnings,omitempty"`
	MutuallyExclusive  []MutualExclusion            `json:"mutuallyExclusive,omitempty"`
	Prerequisites      map[string][]string          `json:"prerequisites,omitempty"`
}

type Section struct {
	Code       string `json:"code"`
	Section    string `json:"section"`
	Title      string `json:"title"`
	Schedule   string `json:"schedule"`
	Modality   string `json:"modality"`
	Enrollment string `json:"enrollment"`
	Status     string `json:"status"`
}

type Offerings struct {
	Term         string    `json:"term"`
	OfferedCodes []string  `json:"offeredCodes"`
	Sections     []Section `json:"sections,omitempty"`
}

// Catalog bundles the reference data with lookup indexes.
type Catalog struct {
	courses      []Course
	byCode       map[string]int
	requirements Requirements
	offerings    Offerings
	offered      map[string]bool
}

// New indexes the given data. The slices are copied; callers may reuse theirs.
func New(courses []Course, reqs Requirements, offerings Offerings) *Catalog {
	c := &Catalog{
		courses:      append([]Course(nil), courses...),
		byCode:       make(map[string]int, len(courses)),
		requirements: reqs,
		offerings:    offerings,
		offered:      make(map[string]bool, len(offerings.OfferedCodes)),
	}
	for i, course := range c.courses {
		c.byCode[course.Code] = i
	}
	for _, code := range offerings.OfferedCodes {
		c.offered[code] = true
	}
	return c
}

// Courses returns a copy of the full course list in catalog order.
func (c *Catalog) Courses() []Course {
	return append([]Course(nil), c.courses...)
}

func (c *Catalog) Requirements() *Requirements { return &c.requirements }

func (c *Catalog) Offerings() Offerings { return c.offerings }

// Term is the label of the term the offerings describe, e.g. "Spring 2026".
func (c *Catalog) Term() string { return c.offerings.Term }

// Degree returns the requirement tree for d, or nil when d is undecided.
func (c *Catalog) Degree(d domain.DegreeType) *Degree {
	switch d {
	case domain.DegreeMajor:
		return &c.requirements.Major
	case domain.DegreeMinor:
		return &c.requirements.Minor
	}
	return nil
}
