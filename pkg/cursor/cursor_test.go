package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/tree"
)

func leaf(v int64) *tree.Leaf {
	return &tree.Leaf{Value: tree.Int(v)}
}

// block(1, 2, 3)
func sampleBlock() *tree.Block {
	return &tree.Block{Stmts: []tree.Node{leaf(1), leaf(2), leaf(3)}}
}

func TestEnterFocusesRoot(t *testing.T) {
	root := sampleBlock()
	cur := cursor.Enter(root)

	assert.Same(t, tree.Node(root), cur.Node())
	assert.True(t, cur.AtRoot())
	assert.Equal(t, 0, cur.Depth())
}

func TestDownRightUp(t *testing.T) {
	root := sampleBlock()
	cur := cursor.Enter(root)

	down, ok := cur.Down()
	require.True(t, ok)
	assert.True(t, tree.Equal(leaf(1), down.Node()))
	assert.Equal(t, 1, down.Depth())

	right, ok := down.Right()
	require.True(t, ok)
	assert.True(t, tree.Equal(leaf(2), right.Node()))

	right2, ok := right.Right()
	require.True(t, ok)
	assert.True(t, tree.Equal(leaf(3), right2.Node()))

	_, ok = right2.Right()
	assert.False(t, ok)

	up, ok := right2.Up()
	require.True(t, ok)
	assert.True(t, up.AtRoot())
}

func TestDownOnLeafFails(t *testing.T) {
	cur := cursor.Enter(leaf(1))
	_, ok := cur.Down()
	assert.False(t, ok)
}

func TestRightAtRootFails(t *testing.T) {
	cur := cursor.Enter(sampleBlock())
	_, ok := cur.Right()
	assert.False(t, ok)
}

func TestUpAtRootFails(t *testing.T) {
	cur := cursor.Enter(sampleBlock())
	_, ok := cur.Up()
	assert.False(t, ok)
}

// An edit-free walk must hand back the identical root value, not a rebuilt
// copy.
func TestRootWithoutEditsReturnsSamePointer(t *testing.T) {
	root := sampleBlock()
	cur := cursor.Enter(root)

	down, _ := cur.Down()
	right, _ := down.Right()
	right2, _ := right.Right()

	assert.Same(t, tree.Node(root), right2.Root())
}

func TestRootWithoutEditsDeepPath(t *testing.T) {
	inner := &tree.Block{Stmts: []tree.Node{leaf(1), leaf(2)}}
	root := &tree.Block{Stmts: []tree.Node{inner, leaf(3)}}
	cur := cursor.Enter(root)

	down, _ := cur.Down()   // inner block
	down2, _ := down.Down() // leaf 1
	r, _ := down2.Right()   // leaf 2
	up, _ := r.Up()         // inner block again
	next, _ := up.Right()   // leaf 3

	assert.Same(t, tree.Node(root), next.Root())
}

func TestReplaceRebuildsSpine(t *testing.T) {
	root := sampleBlock()
	cur := cursor.Enter(root)

	down, _ := cur.Down()
	right, _ := down.Right()
	edited := right.Replace(leaf(20))

	got := edited.Root()
	want := &tree.Block{Stmts: []tree.Node{leaf(1), leaf(20), leaf(3)}}
	assert.True(t, tree.Equal(want, got))

	// Original tree untouched.
	assert.True(t, tree.Equal(sampleBlock(), root))
}

func TestReplaceThenNavigate(t *testing.T) {
	inner := &tree.Block{Stmts: []tree.Node{leaf(1)}}
	root := &tree.Block{Stmts: []tree.Node{inner, leaf(9)}}

	cur := cursor.Enter(root)
	down, _ := cur.Down()
	down2, _ := down.Down()
	edited := down2.Replace(leaf(5))

	// Edit deep inside, then keep walking right at the upper level.
	up, ok := edited.Up()
	require.True(t, ok)
	next, ok := up.Right()
	require.True(t, ok)
	assert.True(t, tree.Equal(leaf(9), next.Node()))

	want := &tree.Block{Stmts: []tree.Node{
		&tree.Block{Stmts: []tree.Node{leaf(5)}},
		leaf(9),
	}}
	assert.True(t, tree.Equal(want, next.Root()))
}

func TestReplaceSiblingDirtPropagates(t *testing.T) {
	root := sampleBlock()
	cur := cursor.Enter(root)

	down, _ := cur.Down()
	edited := down.Replace(leaf(10))

	// Move right past the edit; the crumb must remember the dirty sibling.
	right, _ := edited.Right()
	right2, _ := right.Right()

	want := &tree.Block{Stmts: []tree.Node{leaf(10), leaf(2), leaf(3)}}
	assert.True(t, tree.Equal(want, right2.Root()))
}

func TestReplaceIsO1OnTrail(t *testing.T) {
	root := sampleBlock()
	cur := cursor.Enter(root)
	down, _ := cur.Down()

	// Replace leaves the old cursor valid (value semantics).
	edited := down.Replace(leaf(42))
	assert.True(t, tree.Equal(leaf(1), down.Node()))
	assert.True(t, tree.Equal(leaf(42), edited.Node()))
}

func TestReplaceRoot(t *testing.T) {
	cur := cursor.Enter(sampleBlock())
	edited := cur.Replace(leaf(7))
	assert.True(t, tree.Equal(leaf(7), edited.Root()))
}

func TestMetaSurvivesRebuild(t *testing.T) {
	root := &tree.Block{Meta: tree.Meta{Line: 1, ID: 100}, Stmts: []tree.Node{leaf(1)}}
	cur := cursor.Enter(root)
	down, _ := cur.Down()
	got := down.Replace(leaf(2)).Root()

	blk, ok := got.(*tree.Block)
	require.True(t, ok)
	assert.Equal(t, root.Meta, blk.Meta)
}
