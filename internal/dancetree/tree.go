// Package dancetree holds the weighted hierarchy of dance categories and
// dances used to pick tracks for a session.
//
// The tree is an arena: nodes live in a slice and reference each other by
// NodeID. Node 0 is a synthetic root wrapping the top-level categories, so
// edits made through the root land in the same storage that is persisted.
package dancetree

import (
	"errors"
	"slices"
	"time"
)

// NodeID addresses a node inside a Tree.
type NodeID int

// RootID is the synthetic root of every tree.
const RootID NodeID = 0

// Kind distinguishes categories from leaf dances.
type Kind int

const (
	KindCategory Kind = iota
	KindLeaf
)

var (
	ErrUnknownNode  = errors.New("unknown node")
	ErrNotCategory  = errors.New("node is not a category")
	ErrRootReadOnly = errors.New("root cannot be modified")
	ErrLeafAtRoot   = errors.New("dances must belong to a category")
)

// TrackRef identifies a playable track. Two refs are the same track when
// their paths match, whatever the other fields say.
type TrackRef struct {
	Dance    string
	Artist   string
	Title    string
	Duration time.Duration
	Path     string
}

// Equal reports whether both refs point to the same file.
func (t TrackRef) Equal(o TrackRef) bool {
	return t.Path == o.Path
}

// Node is a category or a leaf dance.
type Node struct {
	ID        NodeID
	Kind      Kind
	Name      string
	Weight    int
	Recurring bool
	Parent    NodeID
	Children  []NodeID // categories, only for KindCategory
	Leaves    []NodeID // leaf dances, only for KindCategory
	Tracks    []TrackRef
	IsRoot    bool

	removed bool
}

// Tree is the arena of nodes.
type Tree struct {
	nodes []Node
}

// New creates a tree containing only the synthetic root.
func New() *Tree {
	return &Tree{
		nodes: []Node{{ID: RootID, Kind: KindCategory, Name: "root", IsRoot: true, Parent: -1}},
	}
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) || t.nodes[id].removed {
		return nil, false
	}
	return &t.nodes[id], true
}

// Root returns the synthetic root.
func (t *Tree) Root() *Node {
	return &t.nodes[RootID]
}

// AddCategory appends a category under parent and returns its id.
func (t *Tree) AddCategory(parent NodeID, name string, weight int) (NodeID, error) {
	return t.add(parent, KindCategory, name, weight)
}

// AddLeaf appends a leaf dance under parent and returns its id. Leaves
// cannot be added to the root.
func (t *Tree) AddLeaf(parent NodeID, name string, weight int) (NodeID, error) {
	return t.add(parent, KindLeaf, name, weight)
}

func (t *Tree) add(parent NodeID, kind Kind, name string, weight int) (NodeID, error) {
	p, ok := t.Node(parent)
	if !ok {
		return 0, ErrUnknownNode
	}
	if p.Kind != KindCategory {
		return 0, ErrNotCategory
	}
	if kind == KindLeaf && p.IsRoot {
		return 0, ErrLeafAtRoot
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		ID:     id,
		Kind:   kind,
		Name:   name,
		Weight: max(weight, 0),
		Parent: parent,
	})
	// Re-fetch: append may have moved the arena.
	p = &t.nodes[parent]
	if kind == KindCategory {
		p.Children = append(p.Children, id)
	} else {
		p.Leaves = append(p.Leaves, id)
	}
	return id, nil
}

// SetWeight changes a node's weight, clamping negatives to zero.
func (t *Tree) SetWeight(id NodeID, weight int) error {
	n, err := t.editable(id)
	if err != nil {
		return err
	}
	n.Weight = max(weight, 0)
	return nil
}

// Rename changes a node's name.
func (t *Tree) Rename(id NodeID, name string) error {
	n, err := t.editable(id)
	if err != nil {
		return err
	}
	n.Name = name
	return nil
}

// Remove detaches a node and its descendants from the tree.
// Arena slots are not reused so outstanding ids never alias a new node.
func (t *Tree) Remove(id NodeID) error {
	n, err := t.editable(id)
	if err != nil {
		return err
	}
	p := &t.nodes[n.Parent]
	p.Children = slices.DeleteFunc(p.Children, func(c NodeID) bool { return c == id })
	p.Leaves = slices.DeleteFunc(p.Leaves, func(c NodeID) bool { return c == id })
	t.markRemoved(id)
	return nil
}

// reattach restores a removed subtree at its previous position.
func (t *Tree) reattach(id NodeID, index int) {
	t.markRestored(id)
	n := &t.nodes[id]
	p := &t.nodes[n.Parent]
	if n.Kind == KindCategory {
		p.Children = slices.Insert(p.Children, min(index, len(p.Children)), id)
	} else {
		p.Leaves = slices.Insert(p.Leaves, min(index, len(p.Leaves)), id)
	}
}

func (t *Tree) markRemoved(id NodeID) {
	n := &t.nodes[id]
	n.removed = true
	for _, c := range n.Children {
		t.markRemoved(c)
	}
	for _, l := range n.Leaves {
		t.markRemoved(l)
	}
}

func (t *Tree) markRestored(id NodeID) {
	n := &t.nodes[id]
	n.removed = false
	for _, c := range n.Children {
		t.markRestored(c)
	}
	for _, l := range n.Leaves {
		t.markRestored(l)
	}
}

func (t *Tree) editable(id NodeID) (*Node, error) {
	if id == RootID {
		return nil, ErrRootReadOnly
	}
	n, ok := t.Node(id)
	if !ok {
		return nil, ErrUnknownNode
	}
	return n, nil
}

// Walk visits every live node below id depth-first, categories before
// leaves, in their stored order. Returning false from fn stops the walk.
func (t *Tree) Walk(id NodeID, fn func(*Node) bool) {
	t.walk(id, fn)
}

func (t *Tree) walk(id NodeID, fn func(*Node) bool) bool {
	n, ok := t.Node(id)
	if !ok {
		return true
	}
	if !n.IsRoot && !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !t.walk(c, fn) {
			return false
		}
	}
	for _, l := range n.Leaves {
		if !t.walk(l, fn) {
			return false
		}
	}
	return true
}

// Leaves returns every live leaf in walk order.
func (t *Tree) Leaves() []*Node {
	var out []*Node
	t.Walk(RootID, func(n *Node) bool {
		if n.Kind == KindLeaf {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ClearTracks drops every leaf's assigned tracks.
func (t *Tree) ClearTracks() {
	for i := range t.nodes {
		t.nodes[i].Tracks = nil
	}
}

// AppendTrack assigns a track to a leaf.
func (t *Tree) AppendTrack(leaf NodeID, track TrackRef) error {
	n, ok := t.Node(leaf)
	if !ok {
		return ErrUnknownNode
	}
	if n.Kind != KindLeaf {
		return ErrNotCategory
	}
	n.Tracks = append(n.Tracks, track)
	return nil
}

// FindLeaf returns the first leaf with exactly the given name.
func (t *Tree) FindLeaf(name string) (NodeID, bool) {
	var found NodeID
	var ok bool
	t.Walk(RootID, func(n *Node) bool {
		if n.Kind == KindLeaf && n.Name == name {
			found, ok = n.ID, true
			return false
		}
		return true
	})
	return found, ok
}

// Path returns the names from the top-level category down to id.
func (t *Tree) Path(id NodeID) []string {
	var names []string
	for n, ok := t.Node(id); ok && !n.IsRoot; n, ok = t.Node(n.Parent) {
		names = append(names, n.Name)
	}
	slices.Reverse(names)
	return names
}
