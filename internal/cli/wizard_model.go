package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/advisor/internal/catalog"
	"github.com/alexanderramin/advisor/internal/cli/formatter"
	"github.com/alexanderramin/advisor/internal/domain"
	"github.com/alexanderramin/advisor/internal/wizard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
)

type wizardKeyMap struct {
	Back   key.Binding
	Cancel key.Binding
}

func defaultWizardKeys() wizardKeyMap {
	return wizardKeyMap{
		Back:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "previous step")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		k.Back,
		k.Cancel,
	}
}

// wizardModel walks a student record through the wizard steps, one huh form
// per step. The record is only edited in memory; the caller saves it once
// the model reports done.
type wizardModel struct {
	cat   *catalog.Catalog
	rec   domain.StudentRecord
	nav   *wizard.Navigator
	form  *huh.Form
	draft stepDraft
	keys  wizardKeyMap
	newID func() string

	notice    string
	done      bool
	cancelled bool
}

func newWizardModel(cat *catalog.Catalog, rec domain.StudentRecord) *wizardModel {
	m := &wizardModel{
		cat:   cat,
		rec:   rec.Clone(),
		nav:   wizard.NewNavigator(rec.DegreeType),
		keys:  defaultWizardKeys(),
		newID: func() string { return uuid.New().String() },
	}
	m.form = m.buildForm()
	return m
}

func (m *wizardModel) Init() tea.Cmd {
	return m.form.Init()
}

// gotoStep rebuilds the form for the navigator's current step.
func (m *wizardModel) gotoStep() tea.Cmd {
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Back):
			if m.nav.AtStart() {
				return m, nil
			}
			m.notice = ""
			m.nav.Back()
			return m, m.gotoStep()
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.cancelled = true
		return m, tea.Quit
	case huh.StateCompleted:
		return m, tea.Batch(cmd, m.advance())
	}
	return m, cmd
}

// advance applies the finished step and moves on, or finishes on review.
func (m *wizardModel) advance() tea.Cmd {
	step := m.nav.Current()
	m.notice = ""
	if err := m.applyStep(step); err != nil {
		m.notice = err.Error()
		return m.gotoStep()
	}

	if step == wizard.StepReview {
		if m.draft.confirm {
			m.done = true
			return tea.Quit
		}
		m.nav.Back()
		return m.gotoStep()
	}
	if !m.nav.Ready(m.rec) {
		m.notice = "Choose the major or the minor to continue."
		return m.gotoStep()
	}
	m.nav.Next()
	return m.gotoStep()
}

func (m *wizardModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	pos, total := m.nav.Progress()

	var b strings.Builder
	b.WriteString(formatter.Header(m.nav.Current().Title()))
	b.WriteString("  " + formatter.Dim(fmt.Sprintf("step %d of %d", pos, total)) + "\n")
	b.WriteString(formatter.RenderProgress(float64(pos)/float64(total), 30) + "\n\n")
	if m.notice != "" {
		b.WriteString(formatter.StyleYellow.Render(m.notice) + "\n\n")
	}
	b.WriteString(m.form.View())
	b.WriteString("\n\n" + formatter.Dim(helpLine(m.keys.ShortHelp())))
	return b.String()
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
