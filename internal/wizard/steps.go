// Package wizard sequences the guided data-entry steps. It knows nothing about
// rendering; the CLI draws each step as a form.
package wizard

import "github.com/alexanderramin/advisor/internal/domain"

type Step string

const (
	StepWelcome          Step = "welcome"
	StepDegreeType       Step = "degreeType"
	StepIntro            Step = "intro"
	StepRequired         Step = "required"
	StepElectives        Step = "electives"
	StepGeneralElectives Step = "generalElectives"
	StepSpecialCredits   Step = "specialCredits"
	StepGraduation       Step = "graduation"
	StepSchedule         Step = "schedule"
	StepReview           Step = "review"
)

type stepDef struct {
	step      Step
	title     string
	majorOnly bool
}

var sequence = []stepDef{
	{StepWelcome, "Welcome", false},
	{StepDegreeType, "Major or Minor", false},
	{StepIntro, "Introductory Course", true},
	{StepRequired, "Required Courses", false},
	{StepElectives, "DC and DA Electives", true},
	{StepGeneralElectives, "General Electives", false},
	{StepSpecialCredits, "Transfer and Special Credit", false},
	{StepGraduation, "Expected Graduation", false},
	{StepSchedule, "Next Semester", false},
	{StepReview, "Review", false},
}

// Title is the heading shown for the step.
func (s Step) Title() string {
	for _, d := range sequence {
		if d.step == s {
			return d.title
		}
	}
	return string(s)
}

// Steps lists the steps for a degree type in order. Major-only steps are
// dropped for minors; an undecided student sees the full sequence until a
// degree type is chosen.
func Steps(d domain.DegreeType) []Step {
	out := make([]Step, 0, len(sequence))
	for _, def := range sequence {
		if def.majorOnly && d == domain.DegreeMinor {
			continue
		}
		out = append(out, def.step)
	}
	return out
}
