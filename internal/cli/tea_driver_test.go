package cli

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// teaDriver runs a tea.Model without a tea.Program: messages go straight to
// Update and returned commands are executed and fed back synchronously.
type teaDriver struct {
	t        *testing.T
	model    tea.Model
	quitting bool
}

const (
	maxDrainDepth = 100
	// Commands that block longer than this (cursor blink timers) are dropped.
	teaCmdTimeout = 10 * time.Millisecond
)

func newTeaDriver(t *testing.T, model tea.Model) *teaDriver {
	t.Helper()
	d := &teaDriver{t: t, model: model}
	d.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	d.drain(model.Init(), 0)
	return d
}

func (d *teaDriver) send(msg tea.Msg) {
	d.t.Helper()
	if d.quitting {
		return
	}
	updated, cmd := d.model.Update(msg)
	d.model = updated
	d.drain(cmd, 0)
}

func (d *teaDriver) typeText(s string) {
	for _, r := range s {
		d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (d *teaDriver) press(k tea.KeyType) {
	d.send(tea.KeyMsg{Type: k})
}

func (d *teaDriver) drain(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrainDepth {
		d.t.Logf("tea driver: drain depth limit (%d) reached", maxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	if msg == nil || isBlink(msg) {
		return
	}
	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.quitting = true
		return
	}

	updated, next := d.model.Update(msg)
	d.model = updated
	d.drain(next, depth+1)
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(teaCmdTimeout):
		return nil
	}
}

func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
