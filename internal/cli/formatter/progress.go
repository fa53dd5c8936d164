package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] 45%, colored green above two
// thirds, yellow above one third and red otherwise.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.33:
		style = StyleRed
	case pct < 0.66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderCount renders completed/required as a row of boxes, e.g. ■■□ 2/3.
func RenderCount(completed, required int) string {
	if required <= 0 {
		return Dim("--")
	}
	completed = min(max(completed, 0), required)
	boxes := StyleGreen.Render(strings.Repeat("■", completed)) + StyleDim.Render(strings.Repeat("□", required-completed))
	return fmt.Sprintf("%s %d/%d", boxes, completed, required)
}
