// Package comments is the side channel carried alongside the tree. Comments
// are never embedded in nodes; they live in an ordered sequence keyed by
// anchor line. The engine preserves the sequence across every pass run;
// only a pass that explicitly calls into this API may add, remove, or move
// a comment.
package comments

import (
	"sort"

	"github.com/chisellabs/chisel/pkg/token"
)

// Store is an ordered comment sequence, sorted by anchor line.
type Store struct {
	list []token.Comment
}

// NewStore builds a store from parser-collected comments. The input is
// stably sorted by anchor line.
func NewStore(cs []token.Comment) *Store {
	list := make([]token.Comment, len(cs))
	copy(list, cs)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Line < list[j].Line
	})
	return &Store{list: list}
}

// Len returns the number of comments held.
func (s *Store) Len() int {
	return len(s.list)
}

// All returns a copy of the ordered comment sequence.
func (s *Store) All() []token.Comment {
	out := make([]token.Comment, len(s.list))
	copy(out, s.list)
	return out
}

// At returns the i-th comment in anchor-line order.
func (s *Store) At(i int) token.Comment {
	return s.list[i]
}

// Clone returns an independent copy of the store. The pipeline snapshots
// the store before each pass so a failing pass's comment edits can be
// discarded along with its tree edits.
func (s *Store) Clone() *Store {
	return NewStore(s.list)
}

// Add inserts a comment, keeping anchor-line order.
func (s *Store) Add(c token.Comment) {
	i := sort.Search(len(s.list), func(i int) bool {
		return s.list[i].Line > c.Line
	})
	s.list = append(s.list, token.Comment{})
	copy(s.list[i+1:], s.list[i:])
	s.list[i] = c
}

// RemoveAt deletes and returns the i-th comment. This is the only way a
// comment leaves the pipeline.
func (s *Store) RemoveAt(i int) token.Comment {
	c := s.list[i]
	s.list = append(s.list[:i], s.list[i+1:]...)
	return c
}

// Reanchor moves the i-th comment to a new anchor line and restores order.
func (s *Store) Reanchor(i int, line int) {
	c := s.list[i]
	c.Line = line
	s.list = append(s.list[:i], s.list[i+1:]...)
	s.Add(c)
}

// OnLine returns the indices of comments anchored to the given line.
func (s *Store) OnLine(line int) []int {
	var idx []int
	for i, c := range s.list {
		if c.Line == line {
			idx = append(idx, i)
		}
	}
	return idx
}

// AnchorPolicy decides where a comment moves when the line it was anchored
// to no longer carries code. It is pluggable because the right answer is a
// style choice, not engine behavior.
type AnchorPolicy interface {
	// Anchor picks a new anchor among the surviving lines (sorted
	// ascending, never empty) for a comment previously anchored at line.
	Anchor(line int, surviving []int) int
}

// NearestLine is the default policy: re-anchor to the closest surviving
// line, preferring the earlier line on ties.
type NearestLine struct{}

// Anchor implements AnchorPolicy.
func (NearestLine) Anchor(line int, surviving []int) int {
	best := surviving[0]
	bestDist := abs(line - best)
	for _, l := range surviving[1:] {
		d := abs(line - l)
		if d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}

// ReanchorLines moves every comment anchored to one of the removed lines to
// the line chosen by the policy among the surviving lines. Passes that
// delete statements call this explicitly; the engine never does it
// implicitly.
func (s *Store) ReanchorLines(p AnchorPolicy, removed, surviving []int) {
	if len(removed) == 0 || len(surviving) == 0 {
		return
	}
	gone := make(map[int]bool, len(removed))
	for _, l := range removed {
		gone[l] = true
	}
	changed := false
	for i, c := range s.list {
		if gone[c.Line] {
			s.list[i].Line = p.Anchor(c.Line, surviving)
			changed = true
		}
	}
	if changed {
		sort.SliceStable(s.list, func(i, j int) bool {
			return s.list[i].Line < s.list[j].Line
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
