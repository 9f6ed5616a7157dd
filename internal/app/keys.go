package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/errmsg"
	"github.com/llehouerou/dancefloor/internal/keymap"
	"github.com/llehouerou/dancefloor/internal/orchestrator"
	"github.com/llehouerou/dancefloor/internal/queue"
	"github.com/llehouerou/dancefloor/internal/ui/confirm"
	"github.com/llehouerou/dancefloor/internal/ui/prompt"
)

const (
	maxPromptSeconds = 5
	maxMessageLength = 120
	maxNameLength    = 60
	newNodeWeight    = 1
)

// Prompt purposes carried through prompt.Result.Context.
type (
	delayPrompt        struct{}
	messageTextPrompt  struct{}
	messageDelayPrompt struct{ text string }
)

// addNodePrompt places a new category or dance relative to the row
// selected when the prompt opened.
type addNodePrompt struct {
	kind     dancetree.Kind
	near     dancetree.NodeID
	selected bool
	top      bool
}

type renamePrompt struct{ id dancetree.NodeID }

// Confirm box purposes carried through confirm.Result.Context.
type (
	clearQueueConfirm struct{}
	removeNodeConfirm struct{ id dancetree.NodeID }
)

var errInvalidSeconds = errors.New("expected a whole number of seconds")

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.Active() {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	if m.confirm.Active() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		var closed bool
		m.help, closed = m.help.Update(msg)
		m.showHelp = !closed
		return m, nil
	}

	action := m.resolver.Resolve(msg.String(),
		keymap.ContextGlobal, keymap.ContextPlayback, m.focusContext())
	if action == "" {
		var cmd tea.Cmd
		if m.focus == FocusQueue {
			m.queue, cmd = m.queue.Update(msg)
		} else {
			m.dances, cmd = m.dances.Update(msg)
		}
		return m, cmd
	}
	return m.handleAction(action)
}

func (m Model) handleAction(action keymap.Action) (tea.Model, tea.Cmd) {
	if model, cmd, ok := m.handleGlobalAction(action); ok {
		return model, cmd
	}
	if cmd, ok := m.handlePlaybackAction(action); ok {
		return m, cmd
	}
	if m.focus == FocusQueue {
		return m.handleQueueAction(action)
	}
	return m.handleDancesAction(action)
}

func (m Model) handleGlobalAction(action keymap.Action) (tea.Model, tea.Cmd, bool) {
	o := m.deps.Orchestrator
	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit, true
	case keymap.ActionSwitchFocus:
		if m.focus == FocusQueue {
			m.focus = FocusDances
		} else {
			m.focus = FocusQueue
		}
		m.applyFocus()
		return m, nil, true
	case keymap.ActionHelp:
		m.showHelp = true
		m.help.Reset()
		return m, nil, true
	case keymap.ActionToggleAutoQueue:
		enabled := !m.status.AutoQueue
		m.status.AutoQueue = enabled
		return m, run(errmsg.OpSuggest, func() error { return o.SetAutoQueue(enabled) }), true
	case keymap.ActionToggleDuplicates:
		m.duplicates = !m.duplicates
		allow := m.duplicates
		return m, run(errmsg.OpQueueAdd, func() error { return o.SetAllowDuplicates(allow) }), true
	case keymap.ActionRescan:
		return m, func() tea.Msg { return startScanMsg{} }, true
	case keymap.ActionDismissNotification:
		m.dismissToast()
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) handlePlaybackAction(action keymap.Action) (tea.Cmd, bool) {
	o := m.deps.Orchestrator
	switch action {
	case keymap.ActionAdvance:
		return run(errmsg.OpPlaybackStart, o.Advance), true
	case keymap.ActionPlayPause:
		if m.status.State == orchestrator.StatePlaying {
			return run(errmsg.OpPlaybackStart, o.TogglePause), true
		}
		return run(errmsg.OpPlaybackStart, o.Advance), true
	case keymap.ActionStop:
		return run(errmsg.OpPlaybackStart, o.Stop), true
	case keymap.ActionCancelCountdown:
		return run(errmsg.OpPlaybackStart, o.CancelCountdown), true
	case keymap.ActionRefreshSuggestion:
		return run(errmsg.OpSuggest, o.RefreshSuggestion), true
	case keymap.ActionPinSuggestion:
		return run(errmsg.OpSuggest, o.PinSuggestion), true
	}
	return nil, false
}

func (m Model) handleQueueAction(action keymap.Action) (tea.Model, tea.Cmd) {
	o := m.deps.Orchestrator
	sel := m.queue.Selected()
	n := len(m.queue.Items())

	switch action {
	case keymap.ActionDelete:
		if sel < 0 {
			return m, nil
		}
		return m, run(errmsg.OpQueueRemove, func() error { return o.RemoveAt(sel) })
	case keymap.ActionClear:
		if n == 0 {
			return m, nil
		}
		m.confirm.Show("Clear queue", fmt.Sprintf("Remove all %d items?", n), clearQueueConfirm{})
		return m, nil
	case keymap.ActionMoveItemUp:
		if sel <= 0 {
			return m, nil
		}
		m.queue.Follow(sel - 1)
		return m, run(errmsg.OpQueueMove, func() error { return o.Move(sel, sel-1) })
	case keymap.ActionMoveItemDown:
		if sel < 0 || sel >= n-1 {
			return m, nil
		}
		m.queue.Follow(sel + 1)
		return m, run(errmsg.OpQueueMove, func() error { return o.Move(sel, sel+1) })
	case keymap.ActionAddStop:
		return m, run(errmsg.OpQueueAdd, func() error { return o.Enqueue(&queue.StopMarker{}) })
	case keymap.ActionAddDelay:
		def := strconv.Itoa(int(m.deps.DefaultDelay / time.Second))
		return m, m.prompt.Start("Pause (seconds)", def, maxPromptSeconds, delayPrompt{})
	case keymap.ActionAddMessage:
		return m, m.prompt.Start("Message", "Announcement text", maxMessageLength, messageTextPrompt{})
	}
	return m, nil
}

func (m Model) handleDancesAction(action keymap.Action) (tea.Model, tea.Cmd) {
	row, ok := m.dances.Selected()
	o, hist := m.deps.Orchestrator, m.treeHist

	switch action {
	case keymap.ActionUndo:
		return m, m.reshapeTreeCmd(errmsg.OpTreeUndo, func(t *dancetree.Tree) error {
			_, err := hist.Undo(t)
			return err
		})
	case keymap.ActionRedo:
		return m, m.reshapeTreeCmd(errmsg.OpTreeRedo, func(t *dancetree.Tree) error {
			_, err := hist.Redo(t)
			return err
		})
	case keymap.ActionAddTopCategory:
		return m, m.prompt.Start("New category", "Category name", maxNameLength,
			addNodePrompt{kind: dancetree.KindCategory, top: true})
	case keymap.ActionAddCategory:
		return m, m.prompt.Start("New subcategory", "Category name", maxNameLength,
			addNodePrompt{kind: dancetree.KindCategory, near: row.ID, selected: ok})
	case keymap.ActionAddDance:
		return m, m.prompt.Start("New dance", "Dance name, as in the genre tag", maxNameLength,
			addNodePrompt{kind: dancetree.KindLeaf, near: row.ID, selected: ok})
	}
	if !ok {
		return m, nil
	}

	switch action {
	case keymap.ActionAddRandom:
		id := row.ID
		return m, run(errmsg.OpQueueAdd, func() error {
			_, err := o.EnqueueRandom(id)
			return err
		})
	case keymap.ActionWeightUp:
		return m, m.editTreeCmd(errmsg.OpTreeEdit, adjustWeight(hist, row.ID, func(w int) int { return w + 1 }))
	case keymap.ActionWeightDown:
		return m, m.editTreeCmd(errmsg.OpTreeEdit, adjustWeight(hist, row.ID, func(w int) int { return w - 1 }))
	case keymap.ActionMute:
		return m, m.editTreeCmd(errmsg.OpTreeEdit, adjustWeight(hist, row.ID, func(int) int { return 0 }))
	case keymap.ActionRename:
		cmd := m.prompt.Start("Rename", "", maxNameLength, renamePrompt{id: row.ID})
		m.prompt.SetValue(row.Name)
		return m, cmd
	case keymap.ActionRemoveNode:
		text := fmt.Sprintf("Remove dance %q?", row.Name)
		if row.Kind == dancetree.KindCategory {
			text = fmt.Sprintf("Remove %q and everything below it?", row.Name)
		}
		m.confirm.Show("Delete", text, removeNodeConfirm{id: row.ID})
		return m, nil
	}
	return m, nil
}

// parentFor returns the category a new node goes into: the selected
// category itself, or the category holding the selected dance.
func parentFor(t *dancetree.Tree, p addNodePrompt) dancetree.NodeID {
	if p.top || !p.selected {
		return dancetree.RootID
	}
	n, ok := t.Node(p.near)
	if !ok {
		return dancetree.RootID
	}
	if n.Kind == dancetree.KindLeaf {
		return n.Parent
	}
	return n.ID
}

// adjustWeight returns a tree edit recording a weight change in hist.
// Unchanged weights are not recorded.
func adjustWeight(hist *dancetree.History, id dancetree.NodeID, next func(int) int) func(*dancetree.Tree) error {
	return func(t *dancetree.Tree) error {
		n, ok := t.Node(id)
		if !ok {
			return dancetree.ErrUnknownNode
		}
		w := max(next(n.Weight), 0)
		if w == n.Weight {
			return nil
		}
		return hist.Do(t, dancetree.SetWeightCmd(id, w))
	}
}

func (m Model) handlePromptResult(res prompt.Result) (tea.Model, tea.Cmd) {
	if res.Canceled {
		return m, nil
	}
	o := m.deps.Orchestrator

	switch ctx := res.Context.(type) {
	case delayPrompt:
		secs := int(m.deps.DefaultDelay / time.Second)
		if res.Text != "" {
			n, err := parseSeconds(res.Text)
			if err != nil {
				m.pushError(errmsg.OpQueueAdd, res.Text, err)
				return m, nil
			}
			secs = n
		}
		return m, run(errmsg.OpQueueAdd, func() error { return o.Enqueue(queue.NewDelay(secs)) })

	case messageTextPrompt:
		if res.Text == "" {
			return m, nil
		}
		return m, m.prompt.Start("Show for (seconds, empty waits)", "", maxPromptSeconds, messageDelayPrompt{text: res.Text})

	case addNodePrompt:
		if res.Text == "" {
			return m, nil
		}
		hist, name := m.treeHist, res.Text
		return m, m.reshapeTreeCmd(errmsg.OpTreeEdit, func(t *dancetree.Tree) error {
			return hist.Do(t, dancetree.AddCmd(parentFor(t, ctx), ctx.kind, name, newNodeWeight))
		})

	case renamePrompt:
		if res.Text == "" {
			return m, nil
		}
		hist, name := m.treeHist, res.Text
		return m, m.reshapeTreeCmd(errmsg.OpTreeEdit, func(t *dancetree.Tree) error {
			n, ok := t.Node(ctx.id)
			if !ok {
				return dancetree.ErrUnknownNode
			}
			if n.Name == name {
				return nil
			}
			return hist.Do(t, dancetree.RenameCmd(ctx.id, name))
		})

	case messageDelayPrompt:
		var delay time.Duration
		if res.Text != "" {
			n, err := parseSeconds(res.Text)
			if err != nil {
				m.pushError(errmsg.OpQueueAdd, res.Text, err)
				return m, nil
			}
			delay = time.Duration(n) * time.Second
		}
		text := ctx.text
		return m, run(errmsg.OpQueueAdd, func() error { return o.Enqueue(queue.NewMessage(text, delay)) })
	}
	return m, nil
}

func (m Model) handleConfirmResult(res confirm.Result) (tea.Model, tea.Cmd) {
	if !res.Confirmed {
		return m, nil
	}
	switch ctx := res.Context.(type) {
	case clearQueueConfirm:
		m.queue.Follow(0)
		return m, run(errmsg.OpQueueRemove, m.deps.Orchestrator.Clear)
	case removeNodeConfirm:
		hist := m.treeHist
		return m, m.reshapeTreeCmd(errmsg.OpTreeEdit, func(t *dancetree.Tree) error {
			return hist.Do(t, dancetree.RemoveCmd(ctx.id))
		})
	}
	return m, nil
}

func parseSeconds(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, errInvalidSeconds
	}
	return n, nil
}
