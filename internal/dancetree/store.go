package dancetree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName      = "dancefloor"
	treeFileName = "dances.json"
)

// categoryJSON is the persisted form of a category.
// Runtime-only fields (tracks, root flag) are never written.
type categoryJSON struct {
	Name      string         `json:"name"`
	Weight    int            `json:"weight"`
	Recurring bool           `json:"recurring,omitempty"`
	Dances    []danceJSON    `json:"dances,omitempty"`
	Children  []categoryJSON `json:"children,omitempty"`
}

type danceJSON struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// backupSuffix is appended to a tree file that could not be loaded before
// it is first overwritten.
const backupSuffix = ".unreadable"

// Store owns the persisted tree.
type Store struct {
	path string
	tree *Tree

	// unreadable is set while the file on disk failed to load and has not
	// been replaced.
	unreadable bool
}

// NewStore creates a store backed by the file at path.
// An empty path uses the XDG data directory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := xdg.DataFile(filepath.Join(appName, treeFileName))
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path, tree: New()}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Tree returns the tree owned by the store.
func (s *Store) Tree() *Tree { return s.tree }

// Load reads the tree from disk. Unknown fields are tolerated.
// A missing file yields an empty tree. On error the current tree is kept.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.tree = New()
		return nil
	}
	if err != nil {
		s.unreadable = true
		return err
	}
	t, err := Decode(bytes.NewReader(data), false)
	if err != nil {
		s.unreadable = true
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	s.tree = t
	s.unreadable = false
	return nil
}

// Unreadable reports whether the tree file failed to load and is still on
// disk untouched. The first Save moves it aside to BackupPath.
func (s *Store) Unreadable() bool { return s.unreadable }

// BackupPath is where an unreadable tree file is kept.
func (s *Store) BackupPath() string { return s.path + backupSuffix }

// Save writes the tree atomically; the previous file survives a failure.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), treeFileName+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op once renamed

	if err := Encode(tmp, s.tree); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if s.unreadable {
		err := os.Rename(s.path, s.BackupPath())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("keep unreadable tree file: %w", err)
		}
		s.unreadable = false
	}
	return os.Rename(tmp.Name(), s.path)
}

// Import replaces the tree with one read from r using strict validation.
// The current tree is untouched if the input is invalid.
func (s *Store) Import(r io.Reader) error {
	t, err := Decode(r, true)
	if err != nil {
		return err
	}
	s.tree = t
	return nil
}

// Export writes the tree to w.
func (s *Store) Export(w io.Writer) error {
	return Encode(w, s.tree)
}

// Decode parses the JSON tree format. With strict set, unknown fields are
// rejected.
func Decode(r io.Reader, strict bool) (*Tree, error) {
	dec := json.NewDecoder(r)
	if strict {
		dec.DisallowUnknownFields()
	}
	var cats []categoryJSON
	if err := dec.Decode(&cats); err != nil {
		return nil, err
	}
	t := New()
	for i := range cats {
		if err := t.addJSON(RootID, &cats[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree) addJSON(parent NodeID, c *categoryJSON) error {
	if c.Name == "" {
		return errors.New("category without name")
	}
	id, err := t.AddCategory(parent, c.Name, c.Weight)
	if err != nil {
		return err
	}
	t.nodes[id].Recurring = c.Recurring
	for _, d := range c.Dances {
		if d.Name == "" {
			return fmt.Errorf("dance without name in %q", c.Name)
		}
		if _, err := t.AddLeaf(id, d.Name, d.Weight); err != nil {
			return err
		}
	}
	for i := range c.Children {
		if err := t.addJSON(id, &c.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the tree in the JSON tree format.
func Encode(w io.Writer, t *Tree) error {
	root := t.Root()
	cats := make([]categoryJSON, 0, len(root.Children))
	for _, c := range root.Children {
		cats = append(cats, t.toJSON(c))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cats)
}

func (t *Tree) toJSON(id NodeID) categoryJSON {
	n := &t.nodes[id]
	c := categoryJSON{Name: n.Name, Weight: n.Weight, Recurring: n.Recurring}
	for _, l := range n.Leaves {
		leaf := &t.nodes[l]
		c.Dances = append(c.Dances, danceJSON{Name: leaf.Name, Weight: leaf.Weight})
	}
	for _, ch := range n.Children {
		c.Children = append(c.Children, t.toJSON(ch))
	}
	return c
}
