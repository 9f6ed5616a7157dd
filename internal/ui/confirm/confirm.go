// Package confirm provides a yes/no confirmation box.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dancefloor/internal/ui/styles"
)

// Result is emitted when the user answers the confirmation.
type Result struct {
	Confirmed bool
	Context   any // passed through from Show
}

// Model is a yes/no confirmation box.
type Model struct {
	title   string
	message string
	context any
	active  bool
}

// New creates a new confirmation model.
func New() Model {
	return Model{}
}

// Show activates the confirmation.
func (m *Model) Show(title, message string, context any) {
	m.title = title
	m.message = message
	m.context = context
	m.active = true
}

// Reset clears the confirmation state.
func (m *Model) Reset() {
	*m = Model{}
}

// Active returns whether the confirmation is currently shown.
func (m Model) Active() bool {
	return m.active
}

// Update answers the confirmation on enter/y or esc/n. Other keys are
// swallowed while the box is shown.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var confirmed bool
	switch keyMsg.String() {
	case "enter", "y", "Y":
		confirmed = true
	case "esc", "n", "N":
	default:
		return m, nil
	}

	res := Result{Confirmed: confirmed, Context: m.context}
	m.Reset()
	return m, func() tea.Msg { return res }
}

// View renders the box, or an empty string when inactive.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	t := styles.T()

	title := t.S().Title.Render(m.title)
	message := t.S().Base.Render(m.message)
	hint := t.S().Subtle.Render("enter/y confirm · esc/n cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Warning).
		Padding(0, 2)
	return box.Render(title + "\n\n" + message + "\n\n" + hint)
}
