// Package assign maps scanned tracks onto the leaf dances of a dance tree.
package assign

import (
	"github.com/rs/zerolog"

	"github.com/llehouerou/dancefloor/internal/dancetree"
)

// SynonymGroup lists alternative spellings of one dance.
type SynonymGroup struct {
	Name     string
	Synonyms []string
}

// Index resolves normalized dance names to tree leaves.
type Index struct {
	lookup map[string]dancetree.NodeID
	logger zerolog.Logger
}

// Result reports the outcome of an assignment pass.
type Result struct {
	Assigned   int
	Unassigned int
	// Missing counts unassigned tracks per raw dance name.
	Missing map[string]int
}

// BuildLookup indexes every leaf of the tree by its normalized name and,
// when the name belongs to a synonym group, by every name of the group.
// On key collision the first leaf registered keeps the key.
func BuildLookup(tree *dancetree.Tree, synonyms []SynonymGroup, logger zerolog.Logger) *Index {
	groups := make(map[string][]string)
	for _, g := range synonyms {
		keys := make([]string, 0, len(g.Synonyms)+1)
		keys = append(keys, Normalize(g.Name))
		for _, s := range g.Synonyms {
			keys = append(keys, Normalize(s))
		}
		for _, k := range keys {
			if k == "" {
				continue
			}
			if _, exists := groups[k]; !exists {
				groups[k] = keys
			}
		}
	}

	idx := &Index{
		lookup: make(map[string]dancetree.NodeID),
		logger: logger,
	}
	for _, leaf := range tree.Leaves() {
		key := Normalize(leaf.Name)
		idx.register(key, leaf)
		for _, alt := range groups[key] {
			if alt != key {
				idx.register(alt, leaf)
			}
		}
	}
	return idx
}

func (idx *Index) register(key string, leaf *dancetree.Node) {
	if key == "" {
		return
	}
	if prev, exists := idx.lookup[key]; exists {
		if prev != leaf.ID {
			idx.logger.Warn().
				Str("key", key).
				Str("dance", leaf.Name).
				Int("kept_node", int(prev)).
				Msg("duplicate dance key, keeping first")
		}
		return
	}
	idx.lookup[key] = leaf.ID
}

// Lookup returns the leaf for a raw dance name.
func (idx *Index) Lookup(dance string) (dancetree.NodeID, bool) {
	id, ok := idx.lookup[Normalize(dance)]
	return id, ok
}

// Len returns the number of registered keys.
func (idx *Index) Len() int {
	return len(idx.lookup)
}

// Assign rebuilds every leaf's track list from scratch.
// Tracks whose dance is unknown are left out of random selection.
func (idx *Index) Assign(tree *dancetree.Tree, tracks []dancetree.TrackRef) Result {
	tree.ClearTracks()

	res := Result{Missing: make(map[string]int)}
	for _, t := range tracks {
		id, ok := idx.Lookup(t.Dance)
		if !ok {
			res.Unassigned++
			res.Missing[t.Dance]++
			continue
		}
		if err := tree.AppendTrack(id, t); err != nil {
			res.Unassigned++
			continue
		}
		res.Assigned++
	}

	idx.logger.Info().
		Int("assigned", res.Assigned).
		Int("unassigned", res.Unassigned).
		Msg("tracks assigned to dances")
	return res
}

// Rebuild indexes the tree and assigns tracks in one pass.
func Rebuild(tree *dancetree.Tree, synonyms []SynonymGroup, tracks []dancetree.TrackRef, logger zerolog.Logger) Result {
	return BuildLookup(tree, synonyms, logger).Assign(tree, tracks)
}
