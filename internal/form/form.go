// Package form implements the interactive execution-request form.
//
// The workflow tool reports which parameters a workflow accepts; the form
// presents one text input per parameter, pre-filled with defaults, and
// returns the entered values. Fetch failures upstream produce an empty
// parameter list, in which case the form is skipped entirely.
package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Param is one workflow parameter offered by the form.
type Param struct {
	Name    string
	Default string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(24)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// Model is the Bubble Tea model for the parameter form.
type Model struct {
	title     string
	params    []Param
	inputs    []textinput.Model
	focus     int
	submitted bool
	cancelled bool
}

// New creates a form for the given parameters.
func New(title string, params []Param) Model {
	inputs := make([]textinput.Model, len(params))
	for i, p := range params {
		ti := textinput.New()
		ti.Prompt = ""
		ti.SetValue(p.Default)
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}
	return Model{title: title, params: params, inputs: inputs}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "enter":
		if m.focus == len(m.inputs)-1 || len(m.inputs) == 0 {
			m.submitted = true
			return m, tea.Quit
		}
		return m.setFocus(m.focus + 1)

	case "tab", "down":
		return m.setFocus(m.focus + 1)

	case "shift+tab", "up":
		return m.setFocus(m.focus - 1)
	}

	return m.updateInputs(msg)
}

func (m Model) setFocus(target int) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	if target < 0 {
		target = len(m.inputs) - 1
	}
	if target >= len(m.inputs) {
		target = 0
	}
	m.inputs[m.focus].Blur()
	m.focus = target
	return m, m.inputs[m.focus].Focus()
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	for i, p := range m.params {
		label := labelStyle.Render(p.Name)
		if i == m.focus {
			label = focusedStyle.Render(labelStyle.Render(p.Name))
		}
		fmt.Fprintf(&b, "%s %s\n", label, m.inputs[i].View())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: next/submit · tab: next field · esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Cancelled reports whether the user dismissed the form.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Submitted reports whether the user completed the form.
func (m Model) Submitted() bool {
	return m.submitted
}

// Values returns the entered parameter values keyed by parameter name.
func (m Model) Values() map[string]string {
	out := make(map[string]string, len(m.params))
	for i, p := range m.params {
		out[p.Name] = m.inputs[i].Value()
	}
	return out
}
