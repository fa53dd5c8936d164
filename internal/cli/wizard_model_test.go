package cli

import (
	"strconv"
	"testing"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/alexanderramin/advisor/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWizard(t *testing.T, rec domain.StudentRecord) *wizardModel {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	m := newWizardModel(cat, rec)
	ids := 0
	m.newID = func() string {
		ids++
		return "credit-" + strconv.Itoa(ids)
	}
	return m
}

func TestWizardModel_MinorWalkthrough(t *testing.T) {
	m := testWizard(t, domain.StudentRecord{})
	require.Equal(t, wizard.StepWelcome, m.nav.Current())

	m.draft.name = "  Avery  "
	m.advance()
	assert.Equal(t, "Avery", m.rec.Name)
	require.Equal(t, wizard.StepDegreeType, m.nav.Current())

	// No degree chosen: the step repeats with a notice.
	m.advance()
	assert.Equal(t, wizard.StepDegreeType, m.nav.Current())
	assert.NotEmpty(t, m.notice)

	m.draft.degree = domain.DegreeMinor
	m.advance()
	assert.Empty(t, m.notice)
	require.Equal(t, wizard.StepRequired, m.nav.Current(), "minors skip the intro step")
	_, total := m.nav.Progress()
	assert.Equal(t, 8, total)

	m.draft.selected = []string{"MATH 10043"}
	m.advance()
	assert.Equal(t, []string{"MATH 10043"}, m.rec.CompletedCourses)
	require.Equal(t, wizard.StepGeneralElectives, m.nav.Current())

	m.draft.geMode = geNone
	m.advance()
	assert.True(t, m.rec.GeneralElectivesSet)
	assert.Empty(t, m.rec.GeneralElectives)
	require.Equal(t, wizard.StepSpecialCredits, m.nav.Current())

	m.draft.addCredit = true
	m.draft.creditType = domain.CreditAP
	m.draft.creditCategory = "coding"
	m.draft.creditDesc = "AP CS A"
	m.advance()
	require.Len(t, m.rec.SpecialCredits, 1)
	assert.Equal(t, domain.SpecialCredit{ID: "credit-1", Type: domain.CreditAP, Description: "AP CS A", CountsAs: "coding"}, m.rec.SpecialCredits[0])
	require.Equal(t, wizard.StepGraduation, m.nav.Current())

	m.draft.graduation = "Fall 2027"
	m.draft.summer = true
	m.advance()
	assert.Equal(t, "Fall 2027", m.rec.ExpectedGraduation)
	assert.True(t, m.rec.IncludeSummer)
	require.Equal(t, wizard.StepSchedule, m.nav.Current())

	m.draft.selected = []string{"JOUR 30603"}
	m.advance()
	assert.Equal(t, []string{"JOUR 30603"}, m.rec.ScheduledCourses)
	require.Equal(t, wizard.StepReview, m.nav.Current())
	assert.Contains(t, m.View(), "step 8 of 8")

	// Declining the review goes back one step with the schedule preselected.
	m.draft.confirm = false
	m.advance()
	require.Equal(t, wizard.StepSchedule, m.nav.Current())
	assert.Equal(t, []string{"JOUR 30603"}, m.draft.selected)
	assert.False(t, m.done)

	m.advance()
	m.draft.confirm = true
	cmd := m.advance()
	assert.True(t, m.done)
	assert.NotNil(t, cmd)
}

func TestWizardModel_ElectivesAssignFlexibleCourses(t *testing.T) {
	m := testWizard(t, domain.StudentRecord{Name: "Jordan", DegreeType: domain.DegreeMajor})
	m.nav.Next() // degreeType
	m.nav.Next() // intro
	m.nav.Next() // required
	m.nav.Next() // electives
	require.Equal(t, wizard.StepElectives, m.nav.Current())
	m.gotoStep()

	require.Contains(t, m.draft.flexible, "ENGL 30833")
	m.draft.selected = []string{"ENGL 30833", "INSC 30833"}
	*m.draft.flexible["ENGL 30833"] = domain.CategoryDAElective
	*m.draft.flexible["HIST 30943"] = domain.CategoryDCElective
	m.advance()

	assert.ElementsMatch(t, []string{"ENGL 30833", "INSC 30833"}, m.rec.CompletedCourses)
	assert.Equal(t, map[string]string{"ENGL 30833": domain.CategoryDAElective}, m.rec.CourseCategories,
		"only completed flexible courses keep an assignment")
}

func TestWizardModel_GeneralElectivesModes(t *testing.T) {
	rec := domain.StudentRecord{Name: "Riley", DegreeType: domain.DegreeMinor, CompletedCourses: []string{"MATH 10043", "JOUR 30603"}}
	m := testWizard(t, rec)
	for m.nav.Current() != wizard.StepGeneralElectives {
		m.nav.Next()
	}
	m.gotoStep()
	assert.Equal(t, geInfer, m.draft.geMode)

	m.draft.geMode = gePick
	m.draft.selected = []string{"JOUR 30603"}
	require.NoError(t, m.applyStep(wizard.StepGeneralElectives))
	assert.Equal(t, []string{"JOUR 30603"}, m.rec.GeneralElectives)

	m.gotoStep()
	assert.Equal(t, gePick, m.draft.geMode)
	m.draft.geMode = geInfer
	require.NoError(t, m.applyStep(wizard.StepGeneralElectives))
	assert.False(t, m.rec.GeneralElectivesSet)
}

func TestWizardModel_Keys(t *testing.T) {
	m := testWizard(t, domain.StudentRecord{})
	m.nav.Next()
	require.Equal(t, wizard.StepDegreeType, m.nav.Current())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.Equal(t, wizard.StepWelcome, m.nav.Current())

	// Back at the first step is a no-op.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.Nil(t, cmd)
	assert.Equal(t, wizard.StepWelcome, m.nav.Current())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.cancelled)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestWizardModel_DoesNotMutateInput(t *testing.T) {
	rec := domain.StudentRecord{Name: "Sam", DegreeType: domain.DegreeMinor, CompletedCourses: []string{"MATH 10043"}}
	m := testWizard(t, rec)
	m.rec.AddCompleted("COSC 10603")
	assert.Equal(t, []string{"MATH 10043"}, rec.CompletedCourses)
}

func TestCheckExclusions(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	assert.NoError(t, checkExclusions(cat, nil, []string{"MATH 10043", "COSC 10603"}))
	assert.Error(t, checkExclusions(cat, nil, []string{"MATH 10043", "INSC 20153"}))
	assert.Error(t, checkExclusions(cat, []string{"COSC 10403"}, []string{"COSC 10603"}))
}

func TestParseCourseCodes(t *testing.T) {
	codes, err := parseCourseCodes([]string{"engl", "20813", "MATH10043", "COSC 10603"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ENGL 20813", "MATH 10043", "COSC 10603"}, codes)

	_, err = parseCourseCodes([]string{"12345"})
	assert.Error(t, err)
	_, err = parseCourseCodes(nil)
	assert.Error(t, err)
}

func TestDegreeValue(t *testing.T) {
	var d domain.DegreeType
	v := newDegreeValue(&d)
	require.NoError(t, v.Set("Minor"))
	assert.Equal(t, domain.DegreeMinor, d)
	assert.Equal(t, "minor", v.String())
	assert.Error(t, v.Set("doctorate"))
	assert.Equal(t, "major|minor", v.Type())
}

func TestWizardModel_KeyboardDrivesFirstSteps(t *testing.T) {
	m := testWizard(t, domain.StudentRecord{})
	d := newTeaDriver(t, m)

	d.typeText("Avery")
	d.press(tea.KeyEnter)
	require.Equal(t, wizard.StepDegreeType, m.nav.Current())
	assert.Equal(t, "Avery", m.rec.Name)

	// The first option, the major, is highlighted.
	d.press(tea.KeyEnter)
	assert.Equal(t, domain.DegreeMajor, m.rec.DegreeType)
	assert.Equal(t, wizard.StepIntro, m.nav.Current())

	d.press(tea.KeyEsc)
	assert.True(t, d.quitting)
	assert.True(t, m.cancelled)
	assert.False(t, m.done)
}

func TestWizardModel_StepErrorsKeepTheStep(t *testing.T) {
	rec := domain.StudentRecord{
		Name:           "Jordan",
		DegreeType:     domain.DegreeMinor,
		SpecialCredits: []domain.SpecialCredit{{ID: "credit-1", Type: domain.CreditTransfer, CountsAs: domain.CategoryGeneralElectives}},
	}
	m := testWizard(t, rec)
	for m.nav.Current() != wizard.StepSpecialCredits {
		m.nav.Next()
	}
	m.gotoStep()

	// The next generated id collides with the recorded credit.
	m.draft.addCredit = true
	m.draft.creditType = domain.CreditTransfer
	m.draft.creditCategory = domain.CategoryGeneralElectives
	m.advance()

	assert.Equal(t, wizard.StepSpecialCredits, m.nav.Current())
	assert.Contains(t, m.notice, "already recorded")
	assert.Len(t, m.rec.SpecialCredits, 1)
	assert.Contains(t, m.View(), "already recorded")
}

func TestWizardModel_ApplyStepRejectsBadFlexibleAssignment(t *testing.T) {
	rec := domain.StudentRecord{Name: "Sam", DegreeType: domain.DegreeMajor, CompletedCourses: []string{"ENGL 30833"}}
	m := testWizard(t, rec)
	bogus := "capstone"
	m.draft.selected = []string{"ENGL 30833"}
	m.draft.flexible = map[string]*string{"ENGL 30833": &bogus}

	err := m.applyStep(wizard.StepElectives)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assigning ENGL 30833")
	assert.Empty(t, m.rec.CourseCategories)
}
