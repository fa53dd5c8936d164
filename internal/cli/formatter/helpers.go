package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + strings.TrimRight(content, "\n")
	}
	return boxStyle.Render(content)
}

// RelativeTime renders t relative to now, e.g. "3 days ago".
func RelativeTime(t time.Time) string {
	return RelativeTimeFrom(t, time.Now())
}

func RelativeTimeFrom(t, now time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// OrDash renders s, or a dim placeholder when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}

// Hours renders a credit-hour count, e.g. "12 hrs".
func Hours(n int) string {
	return humanize.Comma(int64(n)) + " hrs"
}
