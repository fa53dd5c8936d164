package formatter

import (
	"strings"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/planner"
)

// FormatPlan renders one block per planned semester.
func FormatPlan(plan []planner.Semester, cat *catalog.Catalog) string {
	if len(plan) == 0 {
		return Dim("Nothing left to plan.")
	}

	var b strings.Builder
	for i, sem := range plan {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(sem.Term.String()) + "\n")
		if len(sem.Courses) == 0 {
			b.WriteString(Dim("  no courses") + "\n")
			continue
		}
		rows := make([][]string, 0, len(sem.Courses))
		for _, c := range sem.Courses {
			code, title := c.Code, cat.Title(c.Code)
			if c.Placeholder() {
				title = Dim("To be determined")
			}
			tag := ""
			switch {
			case c.Scheduled:
				tag = StyleGreen.Render("scheduled")
			case c.Capstone:
				tag = StylePurple.Render("capstone")
			}
			rows = append(rows, []string{code, title, OrDash(c.Category), tag})
		}
		b.WriteString(RenderTable([]string{"CODE", "TITLE", "COUNTS TOWARD", ""}, rows))
	}
	return RenderBox("Plan", b.String())
}
