package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/domain"
)

// DegreeBadge renders the degree type, or "undecided".
func DegreeBadge(d domain.DegreeType) string {
	if !d.Decided() {
		return Dim("undecided")
	}
	return StylePurple.Render(strings.ToUpper(string(d)[:1]) + string(d)[1:])
}

// FormatStudentList renders the saved students inside a bordered box.
func FormatStudentList(students []*domain.StudentRecord) string {
	headers := []string{"ID", "NAME", "DEGREE", "COMPLETED", "SCHEDULED", "UPDATED"}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Name),
			DegreeBadge(s.DegreeType),
			fmt.Sprintf("%d", len(s.CompletedCourses)),
			fmt.Sprintf("%d", len(s.ScheduledCourses)),
			Dim(RelativeTime(s.UpdatedAt)),
		})
	}
	return RenderBox("Students", RenderTable(headers, rows))
}

// FormatStudent renders every field of a record. Course titles come from cat
// when it knows the code.
func FormatStudent(s *domain.StudentRecord, cat *catalog.Catalog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold(s.Name), TruncID(s.ID))
	fmt.Fprintf(&b, "Degree:      %s\n", DegreeBadge(s.DegreeType))
	fmt.Fprintf(&b, "Graduation:  %s\n", OrDash(s.ExpectedGraduation))
	summer := "no"
	if s.IncludeSummer {
		summer = "yes"
	}
	fmt.Fprintf(&b, "Summer:      %s\n", summer)
	fmt.Fprintf(&b, "Updated:     %s\n", Dim(RelativeTime(s.UpdatedAt)))

	writeCourses(&b, "Completed", s.CompletedCourses, s.CourseCategories, cat)
	writeCourses(&b, "Scheduled", s.ScheduledCourses, s.CourseCategories, cat)

	if len(s.SpecialCredits) > 0 {
		b.WriteString("\n" + Header("Special credits") + "\n")
		rows := make([][]string, 0, len(s.SpecialCredits))
		for _, c := range s.SpecialCredits {
			rows = append(rows, []string{TruncID(c.ID), string(c.Type), c.CountsAs, OrDash(c.Description)})
		}
		b.WriteString(RenderTable([]string{"ID", "TYPE", "COUNTS AS", "DESCRIPTION"}, rows))
	}

	b.WriteString("\n" + Header("General electives") + "\n")
	switch ge, ok := s.ExplicitGeneralElectives(); {
	case !ok:
		b.WriteString(Dim("inferred from courses outside the required and elective lists") + "\n")
	case len(ge) == 0:
		b.WriteString(Dim("none (confirmed)") + "\n")
	default:
		b.WriteString(strings.Join(ge, ", ") + "\n")
	}

	if s.Notes != "" {
		b.WriteString("\n" + Header("Notes") + "\n" + s.Notes + "\n")
	}
	return b.String()
}

func writeCourses(b *strings.Builder, title string, codes []string, assigned map[string]string, cat *catalog.Catalog) {
	b.WriteString("\n" + Header(title) + "\n")
	if len(codes) == 0 {
		b.WriteString(Dim("none") + "\n")
		return
	}
	for _, code := range codes {
		line := fmt.Sprintf("  %-11s %s", code, cat.Title(code))
		if category, ok := assigned[code]; ok {
			line += " " + StyleBlue.Render("→ "+category)
		}
		b.WriteString(line + "\n")
	}
}
