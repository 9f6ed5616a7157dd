package dancepanel

import "github.com/llehouerou/dancefloor/internal/dancetree"

// Row is one line of the flattened dance tree.
type Row struct {
	ID     dancetree.NodeID
	Kind   dancetree.Kind
	Depth  int
	Name   string
	Weight int
	// Tracks counts the tracks assigned to the leaf, or to every leaf below
	// a category.
	Tracks int
	// Muted is set when the node or one of its ancestors has weight zero,
	// so random selection never reaches it.
	Muted bool
}

// Flatten lists the tree for display: each category is followed by its
// leaf dances, then by its subcategories.
func Flatten(tree *dancetree.Tree) []Row {
	if tree == nil {
		return nil
	}
	var rows []Row
	for _, id := range tree.Root().Children {
		rows, _ = appendCategory(rows, tree, id, 0, false)
	}
	return rows
}

func appendLeaf(rows []Row, tree *dancetree.Tree, id dancetree.NodeID, depth int, muted bool) []Row {
	n, ok := tree.Node(id)
	if !ok {
		return rows
	}
	return append(rows, Row{
		ID:     id,
		Kind:   dancetree.KindLeaf,
		Depth:  depth,
		Name:   n.Name,
		Weight: n.Weight,
		Tracks: len(n.Tracks),
		Muted:  muted || n.Weight <= 0,
	})
}

// appendCategory adds the category and its subtree, returning the subtree's
// track count.
func appendCategory(rows []Row, tree *dancetree.Tree, id dancetree.NodeID, depth int, muted bool) ([]Row, int) {
	n, ok := tree.Node(id)
	if !ok {
		return rows, 0
	}
	muted = muted || n.Weight <= 0
	at := len(rows)
	rows = append(rows, Row{
		ID:     id,
		Kind:   dancetree.KindCategory,
		Depth:  depth,
		Name:   n.Name,
		Weight: n.Weight,
		Muted:  muted,
	})

	total := 0
	for _, leaf := range n.Leaves {
		if l, ok := tree.Node(leaf); ok {
			total += len(l.Tracks)
		}
		rows = appendLeaf(rows, tree, leaf, depth+1, muted)
	}
	for _, child := range n.Children {
		var sub int
		rows, sub = appendCategory(rows, tree, child, depth+1, muted)
		total += sub
	}
	rows[at].Tracks = total
	return rows, total
}
