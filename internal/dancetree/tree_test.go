package dancetree

import (
	"errors"
	"testing"
)

func buildTree(t *testing.T) (*Tree, NodeID, NodeID, NodeID) {
	t.Helper()
	tr := New()
	ballroom, err := tr.AddCategory(RootID, "Ballroom", 3)
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	waltz, err := tr.AddLeaf(ballroom, "Waltz", 2)
	if err != nil {
		t.Fatalf("AddLeaf: %v", err)
	}
	tango, err := tr.AddLeaf(ballroom, "Tango", 1)
	if err != nil {
		t.Fatalf("AddLeaf: %v", err)
	}
	return tr, ballroom, waltz, tango
}

func TestNew_HasSyntheticRoot(t *testing.T) {
	tr := New()
	root := tr.Root()
	if !root.IsRoot {
		t.Error("root should be flagged IsRoot")
	}
	if root.ID != RootID {
		t.Errorf("root.ID = %d, want %d", root.ID, RootID)
	}
}

func TestTree_AddAndWalk(t *testing.T) {
	tr, ballroom, waltz, tango := buildTree(t)

	var names []string
	tr.Walk(RootID, func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	want := []string{"Ballroom", "Waltz", "Tango"}
	if len(names) != len(want) {
		t.Fatalf("walk = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("walk[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	b, _ := tr.Node(ballroom)
	if len(b.Leaves) != 2 || b.Leaves[0] != waltz || b.Leaves[1] != tango {
		t.Errorf("ballroom leaves = %v", b.Leaves)
	}
}

func TestTree_AddUnderLeafFails(t *testing.T) {
	tr, _, waltz, _ := buildTree(t)
	if _, err := tr.AddLeaf(waltz, "Viennese", 1); !errors.Is(err, ErrNotCategory) {
		t.Errorf("AddLeaf under leaf err = %v, want ErrNotCategory", err)
	}
}

func TestTree_LeafAtRootRejected(t *testing.T) {
	tr := New()
	if _, err := tr.AddLeaf(RootID, "Mambo", 1); !errors.Is(err, ErrLeafAtRoot) {
		t.Fatalf("AddLeaf(root) err = %v, want ErrLeafAtRoot", err)
	}
	if n := len(tr.Root().Leaves); n != 0 {
		t.Errorf("root leaves = %d, want 0", n)
	}
	if h := NewHistory(10); h.Do(tr, AddCmd(RootID, KindLeaf, "Mambo", 1)) == nil {
		t.Error("AddCmd for a root leaf should fail")
	}
}

func TestTree_NegativeWeightClamped(t *testing.T) {
	tr := New()
	id, _ := tr.AddCategory(RootID, "Latin", -4)
	n, _ := tr.Node(id)
	if n.Weight != 0 {
		t.Errorf("Weight = %d, want 0", n.Weight)
	}
}

func TestTree_RootIsReadOnly(t *testing.T) {
	tr := New()
	if err := tr.SetWeight(RootID, 3); !errors.Is(err, ErrRootReadOnly) {
		t.Errorf("SetWeight(root) err = %v, want ErrRootReadOnly", err)
	}
	if err := tr.Remove(RootID); !errors.Is(err, ErrRootReadOnly) {
		t.Errorf("Remove(root) err = %v, want ErrRootReadOnly", err)
	}
}

func TestTree_RemoveSubtree(t *testing.T) {
	tr, ballroom, waltz, _ := buildTree(t)

	if err := tr.Remove(ballroom); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := tr.Node(ballroom); ok {
		t.Error("removed category still reachable")
	}
	if _, ok := tr.Node(waltz); ok {
		t.Error("leaf of removed category still reachable")
	}
	if len(tr.Root().Children) != 0 {
		t.Errorf("root children = %v, want none", tr.Root().Children)
	}
}

func TestTree_Tracks(t *testing.T) {
	tr, ballroom, waltz, _ := buildTree(t)

	if err := tr.AppendTrack(waltz, TrackRef{Path: "/a.mp3"}); err != nil {
		t.Fatalf("AppendTrack: %v", err)
	}
	if err := tr.AppendTrack(ballroom, TrackRef{Path: "/b.mp3"}); err == nil {
		t.Error("AppendTrack on category should fail")
	}
	n, _ := tr.Node(waltz)
	if len(n.Tracks) != 1 {
		t.Fatalf("len(Tracks) = %d, want 1", len(n.Tracks))
	}

	tr.ClearTracks()
	if len(n.Tracks) != 0 {
		t.Errorf("len(Tracks) after clear = %d, want 0", len(n.Tracks))
	}
}

func TestTree_FindLeafAndPath(t *testing.T) {
	tr, _, _, tango := buildTree(t)

	id, ok := tr.FindLeaf("Tango")
	if !ok || id != tango {
		t.Fatalf("FindLeaf(Tango) = %d, %v", id, ok)
	}
	path := tr.Path(id)
	if len(path) != 2 || path[0] != "Ballroom" || path[1] != "Tango" {
		t.Errorf("Path = %v, want [Ballroom Tango]", path)
	}
}

func TestTrackRef_EqualByPath(t *testing.T) {
	a := TrackRef{Path: "/x.mp3", Title: "One"}
	b := TrackRef{Path: "/x.mp3", Title: "Two", Artist: "Other"}
	c := TrackRef{Path: "/y.mp3", Title: "One"}

	if !a.Equal(b) {
		t.Error("same path should be equal")
	}
	if a.Equal(c) {
		t.Error("different path should not be equal")
	}
}
