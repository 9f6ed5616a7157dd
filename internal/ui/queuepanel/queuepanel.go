// Package queuepanel renders the upcoming queue and tracks the cursor used
// to edit it.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dancefloor/internal/queue"
	"github.com/llehouerou/dancefloor/internal/ui"
	"github.com/llehouerou/dancefloor/internal/ui/cursor"
)

// Model represents the queue panel state. It renders a snapshot of the
// queue; edits go through the orchestrator.
type Model struct {
	ui.Base
	cursor cursor.Cursor
	items  []queue.Item
}

// New creates a new queue panel model.
func New() Model {
	return Model{cursor: cursor.New(ui.ScrollMargin)}
}

// SetItems replaces the displayed snapshot, keeping the cursor in range.
func (m *Model) SetItems(items []queue.Item) {
	m.items = items
	m.cursor.Fit(len(items), m.ListHeight())
}

// Items returns the displayed snapshot.
func (m Model) Items() []queue.Item {
	return m.items
}

// Selected returns the index under the cursor, or -1 when the queue is empty.
func (m Model) Selected() int {
	if len(m.items) == 0 {
		return -1
	}
	return m.cursor.Pos()
}

// Follow moves the cursor to index, typically after moving an item.
func (m *Model) Follow(index int) {
	m.cursor.Jump(index, len(m.items), m.ListHeight())
}

// Update handles cursor navigation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return m, nil
	}
	m.cursor.HandleKey(keyMsg.String(), len(m.items), m.ListHeight())
	return m, nil
}
