package comments_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisellabs/chisel/pkg/comments"
	"github.com/chisellabs/chisel/pkg/token"
)

func c(line int, text string) token.Comment {
	return token.Comment{Text: text, Line: line, Placement: token.Leading}
}

func lines(s *comments.Store) []int {
	out := make([]int, 0, s.Len())
	for _, cm := range s.All() {
		out = append(out, cm.Line)
	}
	return out
}

func TestNewStoreSortsByLine(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(5, "b"), c(1, "a"), c(3, "c")})
	assert.Equal(t, []int{1, 3, 5}, lines(s))
}

func TestNewStoreIsStableWithinLine(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(2, "first"), c(2, "second")})
	assert.Equal(t, "first", s.At(0).Text)
	assert.Equal(t, "second", s.At(1).Text)
}

func TestAddKeepsOrder(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(1, "a"), c(5, "b")})
	s.Add(c(3, "mid"))
	assert.Equal(t, []int{1, 3, 5}, lines(s))
	assert.Equal(t, "mid", s.At(1).Text)
}

func TestAddAfterSameLine(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(2, "old")})
	s.Add(c(2, "new"))
	// Same-line insert lands after the existing comment.
	assert.Equal(t, "old", s.At(0).Text)
	assert.Equal(t, "new", s.At(1).Text)
}

func TestRemoveAt(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(1, "a"), c(2, "b"), c(3, "c")})
	removed := s.RemoveAt(1)
	assert.Equal(t, "b", removed.Text)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []int{1, 3}, lines(s))
}

func TestReanchor(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(1, "a"), c(5, "b")})
	s.Reanchor(1, 0)
	assert.Equal(t, []int{0, 1}, lines(s))
	assert.Equal(t, "b", s.At(0).Text)
}

func TestCloneIsIndependent(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(1, "a")})
	clone := s.Clone()
	clone.Add(c(2, "b"))
	clone.Reanchor(0, 9)

	require.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.At(0).Line)
	assert.Equal(t, 2, clone.Len())
}

func TestOnLine(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(1, "a"), c(2, "b"), c(2, "c"), c(4, "d")})
	assert.Equal(t, []int{1, 2}, s.OnLine(2))
	assert.Nil(t, s.OnLine(3))
}

func TestNearestLine(t *testing.T) {
	tests := []struct {
		name      string
		line      int
		surviving []int
		want      int
	}{
		{"exact neighbor below", 5, []int{3, 8}, 3},
		{"closer above", 7, []int{3, 8}, 8},
		{"tie prefers earlier", 5, []int{4, 6}, 4},
		{"single candidate", 10, []int{2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := comments.NearestLine{}.Anchor(tt.line, tt.surviving)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReanchorLines(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(2, "keep"), c(5, "move"), c(9, "also keep")})
	s.ReanchorLines(comments.NearestLine{}, []int{5}, []int{2, 9})

	// Comment on line 5 moves to line 2 (nearest, tie broken low) and the
	// sequence stays sorted. Nothing is lost.
	require.Equal(t, 3, s.Len())
	assert.Equal(t, []int{2, 2, 9}, lines(s))
}

func TestReanchorLinesConservesCount(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(1, "a"), c(3, "b"), c(3, "c"), c(7, "d")})
	before := s.Len()
	s.ReanchorLines(comments.NearestLine{}, []int{3}, []int{1, 7})
	assert.Equal(t, before, s.Len())
	assert.Equal(t, []int{1, 1, 1, 7}, lines(s))
}

func TestReanchorLinesNoSurvivorsIsNoOp(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(3, "a")})
	s.ReanchorLines(comments.NearestLine{}, []int{3}, nil)
	assert.Equal(t, []int{3}, lines(s))
}

func TestAllReturnsCopy(t *testing.T) {
	s := comments.NewStore([]token.Comment{c(1, "a")})
	all := s.All()
	all[0].Line = 99
	assert.Equal(t, 1, s.At(0).Line)
}
