package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/cli/formatter"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/alexanderramin/advisor/internal/planner"
	"github.com/alexanderramin/advisor/internal/progress"
	"github.com/alexanderramin/advisor/internal/wizard"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// advisorHuhTheme styles huh forms with the formatter palette.
func advisorHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	fg := lipgloss.NewStyle().Foreground(formatter.ColorFg)
	dim := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	accent := lipgloss.NewStyle().Foreground(formatter.ColorHeader)

	t.Focused.Title = accent.Bold(true)
	t.Focused.Description = dim
	t.Focused.SelectSelector = accent
	t.Focused.MultiSelectSelector = accent
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[✔] ")
	t.Focused.UnselectedOption = fg
	t.Focused.UnselectedPrefix = dim.SetString("[ ] ")
	t.Focused.FocusedButton = fg.Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = dim.Padding(0, 1)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.TextInput.Cursor = accent
	t.Focused.TextInput.Prompt = accent
	t.Focused.TextInput.Text = fg
	t.Focused.TextInput.Placeholder = dim

	t.Blurred.Title = dim
	t.Blurred.SelectSelector = dim
	t.Blurred.SelectedOption = dim
	t.Blurred.UnselectedOption = dim
	t.Blurred.TextInput.Prompt = dim
	t.Blurred.TextInput.Text = dim

	return t
}

// stepDraft holds form-bound values for the step on screen. It is rebuilt
// from the record every time a step's form is created.
type stepDraft struct {
	name       string
	degree     domain.DegreeType
	selected   []string
	flexible   map[string]*string
	geMode     string
	graduation string
	summer     bool

	addCredit      bool
	creditType     domain.CreditType
	creditCategory string
	creditDesc     string

	confirm bool
}

const (
	geInfer = "infer"
	gePick  = "pick"
	geNone  = "none"
)

func courseOption(c catalog.Course, selected []string) huh.Option[string] {
	label := fmt.Sprintf("%s  %s", c.Code, c.Title)
	if c.Flexible {
		label += " (flexible)"
	}
	return huh.NewOption(label, c.Code).Selected(slices.Contains(selected, c.Code))
}

func courseOptions(courses []catalog.Course, selected []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(courses))
	for _, c := range courses {
		opts = append(opts, courseOption(c, selected))
	}
	return opts
}

func codesOf(courses []catalog.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Code)
	}
	return out
}

// stepCourses lists the courses a course-picking step offers.
func stepCourses(cat *catalog.Catalog, rec *domain.StudentRecord, step wizard.Step) []catalog.Course {
	d := rec.DegreeType
	switch step {
	case wizard.StepIntro:
		return cat.CoursesForCategory(domain.CategoryIntro, d, nil)
	case wizard.StepRequired:
		var intro []string
		if d == domain.DegreeMajor {
			intro = codesOf(cat.CoursesForCategory(domain.CategoryIntro, d, nil))
		}
		var out []catalog.Course
		for _, code := range cat.RequiredCodes(d) {
			if c, ok := cat.CourseByCode(code); ok && !slices.Contains(intro, code) {
				out = append(out, c)
			}
		}
		return out
	case wizard.StepElectives:
		seen := map[string]bool{}
		var out []catalog.Course
		for _, ec := range cat.Degree(d).ElectiveCategories() {
			for _, c := range cat.CoursesForCategory(ec.ID, d, cat.RequiredCodes(d)) {
				if !seen[c.Code] {
					seen[c.Code] = true
					out = append(out, c)
				}
			}
		}
		return out
	case wizard.StepGeneralElectives:
		required := cat.RequiredCodes(d)
		var out []catalog.Course
		for _, code := range rec.CompletedCourses {
			if slices.Contains(required, code) {
				continue
			}
			c, ok := cat.CourseByCode(code)
			if !ok {
				c = catalog.Course{Code: code, Title: "not in catalog"}
			}
			out = append(out, c)
		}
		return out
	case wizard.StepSchedule:
		var out []catalog.Course
		for _, c := range cat.Courses() {
			if cat.IsOffered(c.Code) && !rec.HasCompleted(c.Code) {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

func (m *wizardModel) buildForm() *huh.Form {
	step := m.nav.Current()
	rec := &m.rec
	m.draft = stepDraft{
		name:       rec.Name,
		degree:     rec.DegreeType,
		graduation: rec.ExpectedGraduation,
		summer:     rec.IncludeSummer,
		creditType: domain.CreditTransfer,
		confirm:    true,
	}
	d := &m.draft

	var groups []*huh.Group
	switch step {
	case wizard.StepWelcome:
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Description("Record the courses you have taken, plan next semester and see what is left.\nThis is an advising aid, not an official degree audit.").
				Value(&d.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		))

	case wizard.StepDegreeType:
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[domain.DegreeType]().
				Title("Are you pursuing the major or the minor?").
				Options(
					huh.NewOption("Major (33 hours)", domain.DegreeMajor),
					huh.NewOption("Minor (18 hours)", domain.DegreeMinor),
				).
				Value(&d.degree),
		))

	case wizard.StepIntro, wizard.StepRequired:
		courses := stepCourses(m.cat, rec, step)
		d.selected = intersect(codesOf(courses), rec.CompletedCourses)
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which of these have you completed?").
				Options(courseOptions(courses, d.selected)...).
				Value(&d.selected),
		))

	case wizard.StepElectives:
		courses := stepCourses(m.cat, rec, step)
		d.selected = intersect(codesOf(courses), rec.CompletedCourses)
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which electives have you completed?").
				Options(courseOptions(courses, d.selected)...).
				Value(&d.selected).
				Height(min(len(courses)+2, 14)),
		))
		d.flexible = map[string]*string{}
		for _, c := range courses {
			if !c.Flexible {
				continue
			}
			code := c.Code
			assigned := rec.CourseCategories[code]
			d.flexible[code] = &assigned
			opts := []huh.Option[string]{huh.NewOption("Decide later", "")}
			for _, id := range append(slices.Clone(c.EligibleCategories), domain.CategoryGeneralElectives) {
				opts = append(opts, huh.NewOption(id, id))
			}
			groups = append(groups, huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("Which category should %s count toward?", code)).
					Options(opts...).
					Value(d.flexible[code]),
			).WithHideFunc(func() bool { return !slices.Contains(d.selected, code) }))
		}

	case wizard.StepGeneralElectives:
		courses := stepCourses(m.cat, rec, step)
		d.geMode = geInfer
		if ge, ok := rec.ExplicitGeneralElectives(); ok {
			d.geMode = gePick
			if len(ge) == 0 {
				d.geMode = geNone
			}
			d.selected = slices.Clone(ge)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("General electives").
				Description("Courses that count toward the degree but not toward a required or elective category.").
				Options(
					huh.NewOption("Work them out from my other courses", geInfer),
					huh.NewOption("Let me pick them", gePick),
					huh.NewOption("I have none", geNone),
				).
				Value(&d.geMode),
		))
		if len(courses) > 0 {
			groups = append(groups, huh.NewGroup(
				huh.NewMultiSelect[string]().
					Title("Which completed courses are general electives?").
					Options(courseOptions(courses, d.selected)...).
					Value(&d.selected),
			).WithHideFunc(func() bool { return d.geMode != gePick }))
		}

	case wizard.StepSpecialCredits:
		desc := "None recorded."
		if len(rec.SpecialCredits) > 0 {
			lines := make([]string, 0, len(rec.SpecialCredits))
			for _, c := range rec.SpecialCredits {
				lines = append(lines, fmt.Sprintf("%s toward %s %s", c.Type, c.CountsAs, c.Description))
			}
			desc = strings.Join(lines, "\n")
		}
		slots := m.cat.Degree(rec.DegreeType).Slots()
		categoryOpts := make([]huh.Option[string], 0, len(slots))
		for _, s := range slots {
			categoryOpts = append(categoryOpts, huh.NewOption(s.Name, s.ID))
		}
		groups = append(groups,
			huh.NewGroup(
				huh.NewNote().Title("Transfer, AP and other credit").Description(desc),
				huh.NewConfirm().Title("Add a special credit?").Value(&d.addCredit),
			),
			huh.NewGroup(
				huh.NewSelect[domain.CreditType]().
					Title("Credit type").
					Options(
						huh.NewOption("Transfer", domain.CreditTransfer),
						huh.NewOption("AP", domain.CreditAP),
						huh.NewOption("Dual credit", domain.CreditDualCredit),
						huh.NewOption("Waiver", domain.CreditWaiver),
						huh.NewOption("Other", domain.CreditOther),
					).
					Value(&d.creditType),
				huh.NewSelect[string]().
					Title("Counts toward").
					Options(categoryOpts...).
					Value(&d.creditCategory),
				huh.NewInput().Title("Description").Value(&d.creditDesc),
			).WithHideFunc(func() bool { return !d.addCredit }),
		)

	case wizard.StepGraduation:
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Expected graduation").
				Placeholder("Spring 2028").
				Value(&d.graduation).
				Validate(validateGraduation),
			huh.NewConfirm().
				Title("Plan summer terms too?").
				Value(&d.summer),
		))

	case wizard.StepSchedule:
		courses := stepCourses(m.cat, rec, step)
		d.selected = intersect(codesOf(courses), rec.ScheduledCourses)
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("What are you taking in "+m.cat.Term()+"?").
				Options(courseOptions(courses, d.selected)...).
				Value(&d.selected).
				Height(min(len(courses)+2, 14)).
				Validate(func(codes []string) error {
					return checkExclusions(m.cat, rec.CompletedCourses, codes)
				}),
		))

	case wizard.StepReview:
		groups = append(groups, huh.NewGroup(
			huh.NewNote().Title("Review").Description(reviewSummary(m.cat, rec)),
			huh.NewConfirm().Title("Save this record?").Affirmative("Save").Negative("Go back").Value(&d.confirm),
		))
	}

	return huh.NewForm(groups...).WithTheme(advisorHuhTheme()).WithShowHelp(false)
}

func intersect(universe, have []string) []string {
	var out []string
	for _, code := range universe {
		if slices.Contains(have, code) {
			out = append(out, code)
		}
	}
	return out
}

// checkExclusions rejects a schedule in which two courses exclude each other,
// or one excludes a completed course.
func checkExclusions(cat *catalog.Catalog, completed, scheduled []string) error {
	for i, code := range scheduled {
		others := append(slices.Clone(completed), scheduled[:i]...)
		if msg, ok := cat.MutualExclusionMessage(code, others); ok {
			return fmt.Errorf("%s: %s", code, msg)
		}
	}
	return nil
}

// syncSelection makes the members of universe in list match selected,
// leaving entries outside universe alone.
func syncSelection(rec *domain.StudentRecord, universe, selected []string, add, remove func(*domain.StudentRecord, string) bool) {
	for _, code := range universe {
		if slices.Contains(selected, code) {
			add(rec, code)
		} else {
			remove(rec, code)
		}
	}
}

// applyStep copies the draft of the step on screen into the record.
func (m *wizardModel) applyStep(step wizard.Step) error {
	rec := &m.rec
	d := &m.draft
	switch step {
	case wizard.StepWelcome:
		rec.Name = strings.TrimSpace(d.name)

	case wizard.StepDegreeType:
		rec.DegreeType = d.degree
		m.nav.SetDegree(rec.DegreeType)

	case wizard.StepIntro, wizard.StepRequired, wizard.StepElectives:
		universe := codesOf(stepCourses(m.cat, rec, step))
		syncSelection(rec, universe, d.selected, (*domain.StudentRecord).AddCompleted, (*domain.StudentRecord).RemoveCompleted)
		for _, code := range slices.Sorted(maps.Keys(d.flexible)) {
			if !rec.HasCompleted(code) {
				continue
			}
			if err := rec.AssignCategory(code, *d.flexible[code]); err != nil {
				return fmt.Errorf("assigning %s: %w", code, err)
			}
		}

	case wizard.StepGeneralElectives:
		switch d.geMode {
		case geInfer:
			rec.ClearGeneralElectives()
		case geNone:
			rec.SetGeneralElectives(nil)
		case gePick:
			rec.SetGeneralElectives(d.selected)
		}

	case wizard.StepSpecialCredits:
		if d.addCredit && d.creditCategory != "" {
			if err := rec.AddSpecialCredit(domain.SpecialCredit{
				ID:          m.newID(),
				Type:        d.creditType,
				Description: strings.TrimSpace(d.creditDesc),
				CountsAs:    d.creditCategory,
			}); err != nil {
				return fmt.Errorf("adding special credit: %w", err)
			}
		}

	case wizard.StepGraduation:
		rec.ExpectedGraduation = strings.TrimSpace(d.graduation)
		rec.IncludeSummer = d.summer

	case wizard.StepSchedule:
		universe := codesOf(stepCourses(m.cat, rec, step))
		syncSelection(rec, universe, d.selected, (*domain.StudentRecord).AddScheduled, (*domain.StudentRecord).RemoveScheduled)
	}
	return nil
}

func reviewSummary(cat *catalog.Catalog, rec *domain.StudentRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s\n", rec.Name, rec.DegreeType)
	fmt.Fprintf(&b, "Completed: %s\n", listOrNone(rec.CompletedCourses))
	fmt.Fprintf(&b, "Scheduled: %s\n", listOrNone(rec.ScheduledCourses))
	if rec.ExpectedGraduation != "" {
		fmt.Fprintf(&b, "Graduating: %s\n", rec.ExpectedGraduation)
	}
	if p := progress.Compute(cat, *rec); p != nil {
		fmt.Fprintf(&b, "\n%d of %d hours (%.0f%%)\n", p.CompletedHours, p.TotalHours, p.PercentComplete()*100)
		for _, c := range p.Incomplete() {
			fmt.Fprintf(&b, "  %s: %d more\n", c.Name, c.Remaining())
		}
	}
	if _, ok := planner.ParseTerm(rec.ExpectedGraduation); !ok && rec.ExpectedGraduation != "" {
		b.WriteString("\nGraduation term not recognised; plans will use a four-semester window.\n")
	}
	return b.String()
}

func listOrNone(codes []string) string {
	if len(codes) == 0 {
		return "none"
	}
	return strings.Join(codes, ", ")
}
