package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/advisor/internal/catalog"
)

// FormatCourseList renders courses with their catalog tag and flags.
func FormatCourseList(courses []catalog.Course, cat *catalog.Catalog) string {
	if len(courses) == 0 {
		return Dim("No matching courses.")
	}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		var flags []string
		if cat.IsOffered(c.Code) {
			flags = append(flags, StyleGreen.Render("offered"))
		}
		if c.Flexible {
			flags = append(flags, StyleBlue.Render("flexible"))
		}
		rows = append(rows, []string{Bold(c.Code), c.Title, Dim(string(c.Category)), strings.Join(flags, " ")})
	}
	return RenderTable([]string{"CODE", "TITLE", "CATEGORY", ""}, rows)
}

// FormatSections lists the sections offered for a course this term.
func FormatSections(sections []catalog.Section) string {
	if len(sections) == 0 {
		return Dim("No sections listed.")
	}
	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		rows = append(rows, []string{s.Section, OrDash(s.Schedule), OrDash(s.Modality), OrDash(s.Enrollment), sectionStatus(s.Status)})
	}
	return RenderTable([]string{"SECTION", "SCHEDULE", "MODALITY", "ENROLLED", "STATUS"}, rows)
}

func sectionStatus(status string) string {
	switch strings.ToLower(status) {
	case "open":
		return StyleGreen.Render(status)
	case "closed", "full":
		return StyleRed.Render(status)
	case "":
		return Dim("--")
	}
	return StyleYellow.Render(status)
}

// FormatValidation renders catalog data problems, or a success line.
func FormatValidation(errs []error) string {
	if len(errs) == 0 {
		return StyleGreen.Render("✔ Catalog data is consistent.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", StyleRed.Render(fmt.Sprintf("✖ %d problem(s) found:", len(errs))))
	for _, err := range errs {
		fmt.Fprintf(&b, "  - %s\n", err)
	}
	return b.String()
}
