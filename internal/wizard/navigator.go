package wizard

import (
	"slices"

	"github.com/alexanderramin/advisor/internal/domain"
)

// Navigator walks the step list. Moving past either end is a no-op.
type Navigator struct {
	steps []Step
	idx   int
}

func NewNavigator(d domain.DegreeType) *Navigator {
	return &Navigator{steps: Steps(d)}
}

func (n *Navigator) Current() Step {
	return n.steps[n.idx]
}

// Next advances one step and returns the new current step.
func (n *Navigator) Next() Step {
	if n.idx < len(n.steps)-1 {
		n.idx++
	}
	return n.Current()
}

// Back returns to the previous step and returns the new current step.
func (n *Navigator) Back() Step {
	if n.idx > 0 {
		n.idx--
	}
	return n.Current()
}

func (n *Navigator) AtStart() bool { return n.idx == 0 }
func (n *Navigator) AtEnd() bool   { return n.idx == len(n.steps)-1 }

// Progress returns the 1-based position of the current step and the total.
func (n *Navigator) Progress() (int, int) {
	return n.idx + 1, len(n.steps)
}

// SetDegree rebuilds the step list for d. The current step is kept when it is
// still in the list; otherwise the navigator lands on the nearest earlier step
// that is.
func (n *Navigator) SetDegree(d domain.DegreeType) {
	current := n.steps[:n.idx+1]
	n.steps = Steps(d)
	for i := len(current) - 1; i >= 0; i-- {
		if j := slices.Index(n.steps, current[i]); j >= 0 {
			n.idx = j
			return
		}
	}
	n.idx = 0
}

// Ready reports whether rec has what the current step needs before moving on.
// Only the degree type step gates progress.
func (n *Navigator) Ready(rec domain.StudentRecord) bool {
	if n.Current() == StepDegreeType {
		return rec.DegreeType.Decided()
	}
	return true
}
