package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/advisor/internal/progress"
)

// FormatProgress renders the category table and overall bar for a degree.
func FormatProgress(name string, p *progress.DegreeProgress) string {
	headers := []string{"CATEGORY", "TYPE", "PROGRESS", "STATUS", "COUNTED"}
	rows := make([][]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		counted := strings.Join(c.CompletedCourses, ", ")
		if c.CreditCount > 0 {
			extra := fmt.Sprintf("+%d credit", c.CreditCount)
			if counted != "" {
				extra = ", " + extra
			}
			counted += extra
		}
		rows = append(rows, []string{
			c.Name,
			Dim(c.Kind.String()),
			RenderCount(c.Completed, c.Required),
			CategoryPill(c),
			OrDash(counted),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s of %s  %s\n",
		Hours(p.CompletedHours), Hours(p.TotalHours), RenderProgress(p.PercentComplete(), 20))
	if p.IsComplete {
		b.WriteString(StyleGreen.Render("All requirements satisfied.") + "\n")
	}

	return RenderBox(fmt.Sprintf("%s · %s", name, p.DegreeType), b.String())
}
