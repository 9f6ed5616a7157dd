package dancetree

import "slices"

// Command is a reversible tree edit.
type Command struct {
	Name    string
	Execute func(*Tree) error
	Undo    func(*Tree) error
}

// History keeps executed commands for undo/redo.
type History struct {
	done    []Command
	undone  []Command
	maxSize int
}

// NewHistory creates a history holding at most maxSize commands.
func NewHistory(maxSize int) *History {
	return &History{maxSize: maxSize}
}

// Do executes cmd and records it. The redo stack is cleared.
// A failing command is not recorded.
func (h *History) Do(t *Tree, cmd Command) error {
	if err := cmd.Execute(t); err != nil {
		return err
	}
	h.done = append(h.done, cmd)
	h.undone = h.undone[:0]
	if len(h.done) > h.maxSize {
		h.done = slices.Delete(h.done, 0, len(h.done)-h.maxSize)
	}
	return nil
}

// Undo reverts the last command. Returns false if nothing to undo.
func (h *History) Undo(t *Tree) (bool, error) {
	if !h.CanUndo() {
		return false, nil
	}
	cmd := h.done[len(h.done)-1]
	if err := cmd.Undo(t); err != nil {
		return false, err
	}
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, cmd)
	return true, nil
}

// Redo re-executes the last undone command. Returns false if nothing to redo.
func (h *History) Redo(t *Tree) (bool, error) {
	if !h.CanRedo() {
		return false, nil
	}
	cmd := h.undone[len(h.undone)-1]
	if err := cmd.Execute(t); err != nil {
		return false, err
	}
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, cmd)
	return true, nil
}

// CanUndo returns true if there is a command to undo.
func (h *History) CanUndo() bool {
	return len(h.done) > 0
}

// CanRedo returns true if there is a command to redo.
func (h *History) CanRedo() bool {
	return len(h.undone) > 0
}

// SetWeightCmd builds a command changing a node's weight.
func SetWeightCmd(id NodeID, weight int) Command {
	var before int
	return Command{
		Name: "set weight",
		Execute: func(t *Tree) error {
			n, err := t.editable(id)
			if err != nil {
				return err
			}
			before = n.Weight
			return t.SetWeight(id, weight)
		},
		Undo: func(t *Tree) error {
			return t.SetWeight(id, before)
		},
	}
}

// RenameCmd builds a command renaming a node.
func RenameCmd(id NodeID, name string) Command {
	var before string
	return Command{
		Name: "rename",
		Execute: func(t *Tree) error {
			n, err := t.editable(id)
			if err != nil {
				return err
			}
			before = n.Name
			return t.Rename(id, name)
		},
		Undo: func(t *Tree) error {
			return t.Rename(id, before)
		},
	}
}

// AddCmd builds a command adding a category or leaf under parent.
// Redo brings back the same node id.
func AddCmd(parent NodeID, kind Kind, name string, weight int) Command {
	added := NodeID(-1)
	return Command{
		Name: "add",
		Execute: func(t *Tree) error {
			if added >= 0 {
				t.reattach(added, len(t.nodes))
				return nil
			}
			id, err := t.add(parent, kind, name, weight)
			if err != nil {
				return err
			}
			added = id
			return nil
		},
		Undo: func(t *Tree) error {
			return t.Remove(added)
		},
	}
}

// RemoveCmd builds a command removing a node and its subtree.
func RemoveCmd(id NodeID) Command {
	index := -1
	return Command{
		Name: "remove",
		Execute: func(t *Tree) error {
			n, err := t.editable(id)
			if err != nil {
				return err
			}
			p := &t.nodes[n.Parent]
			if n.Kind == KindCategory {
				index = slices.Index(p.Children, id)
			} else {
				index = slices.Index(p.Leaves, id)
			}
			return t.Remove(id)
		},
		Undo: func(t *Tree) error {
			t.reattach(id, index)
			return nil
		},
	}
}
