// Package prompt provides a one-line text input shown below the panels.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dancefloor/internal/ui/styles"
)

// Result is sent when the user submits or cancels the prompt.
type Result struct {
	Text     string
	Context  any  // caller-provided context passed through
	Canceled bool // true if the user pressed Escape
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.T().Primary)
}

func hintStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

// Model is a text prompt. The zero value is inactive.
type Model struct {
	input   textinput.Model
	title   string
	context any
	active  bool
}

// New creates an inactive prompt.
func New() Model {
	ti := textinput.New()
	ti.Prompt = "› "
	return Model{input: ti}
}

// Start activates the prompt with a title and a character limit.
func (m *Model) Start(title, placeholder string, charLimit int, context any) tea.Cmd {
	m.title = title
	m.context = context
	m.active = true
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.CharLimit = charLimit
	m.input.Width = max(charLimit, 10)
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

// SetValue fills the input, for editing an existing value.
func (m *Model) SetValue(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
}

// Active reports whether the prompt is capturing keys.
func (m Model) Active() bool {
	return m.active
}

// Update handles keys while the prompt is active.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return m.finish(Result{Text: strings.TrimSpace(m.input.Value()), Context: m.context})
		case tea.KeyEsc:
			return m.finish(Result{Canceled: true, Context: m.context})
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) finish(res Result) (Model, tea.Cmd) {
	m.active = false
	m.context = nil
	m.input.Blur()
	return m, func() tea.Msg { return res }
}

// View renders the prompt line, or nothing when inactive.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	return titleStyle().Render(m.title) + " " + m.input.View() + "  " + hintStyle().Render("enter ok · esc cancel")
}
