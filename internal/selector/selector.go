// Package selector picks tracks from a dance tree with probability
// proportional to the configured weights.
package selector

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/notify"
)

// NoTracksMessage is shown when nothing in the tree can be selected.
const NoTracksMessage = "No tracks available"

// Exclude reports whether a track must not be selected.
// A nil Exclude excludes nothing.
type Exclude func(dancetree.TrackRef) bool

func (e Exclude) excluded(t dancetree.TrackRef) bool {
	return e != nil && e(t)
}

// Selector performs weighted random walks over a dance tree.
// It is not safe for concurrent use; callers select from the same
// goroutine that mutates the tree.
type Selector struct {
	rng      *rand.Rand
	logger   zerolog.Logger
	notifier notify.Notifier
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand uses r as the random source.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Selector) { s.logger = l }
}

// WithNotifier sets where "no tracks available" is reported.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Selector) { s.notifier = n }
}

// New creates a selector.
func New(opts ...Option) *Selector {
	s := &Selector{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Selector) intN(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n) //nolint:gosec // crypto not needed for music selection
}

type candidate struct {
	id     dancetree.NodeID
	weight int
	leaf   bool
}

// SelectLeaf walks down from node, choosing at each level among eligible
// child categories then eligible leaves with probability proportional to
// weight. Zero-weight nodes are skipped along with their whole subtree.
func (s *Selector) SelectLeaf(tree *dancetree.Tree, node dancetree.NodeID, exclude Exclude) (dancetree.NodeID, bool) {
	n, ok := tree.Node(node)
	if !ok {
		return 0, false
	}
	if n.Kind == dancetree.KindLeaf {
		return node, s.hasEligibleTracks(tree, n, exclude)
	}

	var candidates []candidate
	total := 0
	for _, id := range n.Children {
		c, ok := tree.Node(id)
		if ok && c.Weight > 0 && s.hasEligibleTracks(tree, c, exclude) {
			candidates = append(candidates, candidate{id: id, weight: c.Weight})
			total += c.Weight
		}
	}
	for _, id := range n.Leaves {
		l, ok := tree.Node(id)
		if ok && l.Weight > 0 && s.hasEligibleTracks(tree, l, exclude) {
			candidates = append(candidates, candidate{id: id, weight: l.Weight, leaf: true})
			total += l.Weight
		}
	}
	if total == 0 {
		return 0, false
	}

	r := s.intN(total)
	cumulative := 0
	for _, c := range candidates {
		cumulative += c.weight
		if cumulative > r {
			if c.leaf {
				return c.id, true
			}
			return s.SelectLeaf(tree, c.id, exclude)
		}
	}
	return 0, false
}

// hasEligibleTracks reports whether a selectable track exists under n,
// honoring the weights of n's descendants but not n's own weight.
func (s *Selector) hasEligibleTracks(tree *dancetree.Tree, n *dancetree.Node, exclude Exclude) bool {
	if n.Kind == dancetree.KindLeaf {
		for _, t := range n.Tracks {
			if !exclude.excluded(t) {
				return true
			}
		}
		return false
	}
	for _, ids := range [][]dancetree.NodeID{n.Children, n.Leaves} {
		for _, id := range ids {
			c, ok := tree.Node(id)
			if ok && c.Weight > 0 && s.hasEligibleTracks(tree, c, exclude) {
				return true
			}
		}
	}
	return false
}

// SelectTrack picks a leaf under node, then a track uniformly among the
// leaf's non-excluded tracks.
func (s *Selector) SelectTrack(tree *dancetree.Tree, node dancetree.NodeID, exclude Exclude) (dancetree.TrackRef, bool) {
	leafID, ok := s.SelectLeaf(tree, node, exclude)
	if !ok {
		return dancetree.TrackRef{}, false
	}
	leaf, _ := tree.Node(leafID)

	eligible := make([]dancetree.TrackRef, 0, len(leaf.Tracks))
	for _, t := range leaf.Tracks {
		if !exclude.excluded(t) {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return dancetree.TrackRef{}, false
	}
	return eligible[s.intN(len(eligible))], true
}

// SelectFromRoot selects from the whole tree. When nothing is eligible the
// user is told no tracks are available and false is returned.
func (s *Selector) SelectFromRoot(tree *dancetree.Tree, exclude Exclude) (dancetree.TrackRef, bool) {
	track, ok := s.SelectTrack(tree, dancetree.RootID, exclude)
	if !ok {
		s.logger.Info().Msg("no eligible track under current weights")
		if s.notifier != nil {
			_, _ = s.notifier.Notify(notify.Notification{
				Title:   NoTracksMessage,
				Urgency: notify.UrgencyLow,
			})
		}
		return dancetree.TrackRef{}, false
	}
	s.logger.Debug().
		Str("dance", track.Dance).
		Str("path", track.Path).
		Msg("selected track")
	return track, true
}
