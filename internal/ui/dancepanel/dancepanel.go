// Package dancepanel shows the dance tree with weights and track counts
// and lets the user pick a node to queue from or re-weight.
package dancepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/ui"
	"github.com/llehouerou/dancefloor/internal/ui/cursor"
)

// Model represents the dance panel state.
type Model struct {
	ui.Base
	cursor cursor.Cursor
	rows   []Row
}

// New creates a new dance panel model.
func New() Model {
	return Model{cursor: cursor.New(ui.ScrollMargin)}
}

// SetRows replaces the displayed tree. The cursor stays on the same node
// when it still exists.
func (m *Model) SetRows(rows []Row) {
	var keep dancetree.NodeID = -1
	if r, ok := m.Selected(); ok {
		keep = r.ID
	}
	m.rows = rows
	for i, r := range rows {
		if r.ID == keep {
			m.cursor.Jump(i, len(rows), m.ListHeight())
			return
		}
	}
	m.cursor.Fit(len(rows), m.ListHeight())
}

// Rows returns the displayed rows.
func (m Model) Rows() []Row {
	return m.rows
}

// Selected returns the row under the cursor.
func (m Model) Selected() (Row, bool) {
	if len(m.rows) == 0 {
		return Row{}, false
	}
	return m.rows[m.cursor.Pos()], true
}

// Update handles cursor navigation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}
	m.cursor.HandleKey(keyMsg.String(), len(m.rows), m.ListHeight())
	return m, nil
}
