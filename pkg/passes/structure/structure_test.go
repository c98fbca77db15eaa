package structure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisellabs/chisel/pkg/parser"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/passes/structure"
	"github.com/chisellabs/chisel/pkg/pipeline"
	"github.com/chisellabs/chisel/pkg/printer"
	"github.com/chisellabs/chisel/pkg/tree"
)

func run(t *testing.T, p pass.Pass, src string) pipeline.Result {
	t.Helper()
	root, cs, err := parser.Parse(src, "test.chl")
	require.NoError(t, err)
	res, err := pipeline.Run(root, cs, "test.chl", []pass.Pass{p}, pipeline.Options{})
	require.NoError(t, err)
	return res
}

func TestFlattenBlocks(t *testing.T) {
	src := "a = 1\ndo\n  b = 2\n  c = 3\nend\nd = 4\n"
	res := run(t, structure.FlattenBlocks, src)

	blk := res.Tree.(*tree.Block)
	require.Len(t, blk.Stmts, 4)
	for _, s := range blk.Stmts {
		assert.NotEqual(t, tree.KindBlock, s.Kind())
	}
}

func TestFlattenBlocksDeeplyNested(t *testing.T) {
	src := "do\n  do\n    x = 1\n  end\nend\n"
	res := run(t, structure.FlattenBlocks, src)

	// The top-level visit splices repeatedly until no block statement
	// remains directly inside the root.
	blk := res.Tree.(*tree.Block)
	require.Len(t, blk.Stmts, 1)
	assert.Equal(t, tree.KindAssign, blk.Stmts[0].Kind())
}

func TestFlattenBlocksNoChange(t *testing.T) {
	src := "a = 1\nb = 2\n"
	root, cs, err := parser.Parse(src, "test.chl")
	require.NoError(t, err)
	res, err := pipeline.Run(root, cs, "t.chl", []pass.Pass{structure.FlattenBlocks}, pipeline.Options{})
	require.NoError(t, err)
	assert.Same(t, root, res.Tree)
}

func TestDropEmptyBlocks(t *testing.T) {
	src := "a = 1\ndo\nend\nb = 2\n"
	res := run(t, structure.DropEmptyBlocks, src)

	blk := res.Tree.(*tree.Block)
	require.Len(t, blk.Stmts, 2)
}

func TestDropEmptyBlocksKeepsNonEmpty(t *testing.T) {
	src := "do\n  x = 1\nend\ndo\nend\n"
	res := run(t, structure.DropEmptyBlocks, src)

	blk := res.Tree.(*tree.Block)
	require.Len(t, blk.Stmts, 1)
	assert.Equal(t, tree.KindBlock, blk.Stmts[0].Kind())
}

// A comment anchored to a removed empty block must move to the nearest
// surviving statement line, never disappear.
func TestDropEmptyBlocksReanchorsComments(t *testing.T) {
	src := "a = 1\n# about the block\ndo\nend\nb = 2\n"
	res := run(t, structure.DropEmptyBlocks, src)

	require.Equal(t, 1, res.Comments.Len())
	got := res.Comments.At(0)
	assert.Equal(t, " about the block", got.Text)
	// Anchored at line 2 (leading placement keeps its own line); only the
	// block's line 3 was removed, so line 2 is untouched.
	assert.Equal(t, 2, got.Line)

	out := printer.Render(res.Tree, res.Comments, 0)
	assert.Contains(t, out, "# about the block")
}

func TestDropEmptyBlocksMovesCommentOnBlockLine(t *testing.T) {
	src := "a = 1\ndo  # attached\nend\nb = 2\n"
	res := run(t, structure.DropEmptyBlocks, src)

	require.Equal(t, 1, res.Comments.Len())
	got := res.Comments.At(0)

	// The comment sat on the removed block's own line (2); the nearest
	// surviving line is 1, with 4 losing the tie.
	assert.Equal(t, 1, got.Line)

	out := printer.Render(res.Tree, res.Comments, 0)
	assert.Contains(t, out, "# attached")
}

func TestDropEmptyBlocksCommentConservation(t *testing.T) {
	src := "# one\na = 1\ndo\nend\n# two\nb = 2  # three\n"
	root, cs, err := parser.Parse(src, "test.chl")
	require.NoError(t, err)
	before := cs.Len()

	res, err := pipeline.Run(root, cs, "t.chl", []pass.Pass{structure.DropEmptyBlocks}, pipeline.Options{})
	require.NoError(t, err)
	assert.Equal(t, before, res.Comments.Len())
}

// Empty-name annotations never come out of the parser, so the fixtures are
// built directly, the way a plugin would.
func TestStripEmptyAnnotations(t *testing.T) {
	leaf := func(v int64) tree.Node { return &tree.Leaf{Value: tree.Int(v)} }
	tests := []struct {
		name string
		in   tree.Node
		want tree.Node
	}{
		{
			"unwraps empty name",
			&tree.Annotated{Name: "", Inner: leaf(1)},
			leaf(1),
		},
		{
			"keeps named annotation",
			&tree.Annotated{Name: "memo", Inner: leaf(1)},
			&tree.Annotated{Name: "memo", Inner: leaf(1)},
		},
		{
			"unwraps a stack of empty names",
			&tree.Annotated{Inner: &tree.Annotated{Inner: leaf(2)}},
			leaf(2),
		},
		{
			"keeps named annotation under an empty one",
			&tree.Annotated{Inner: &tree.Annotated{Name: "memo", Inner: leaf(3)}},
			&tree.Annotated{Name: "memo", Inner: leaf(3)},
		},
		{
			"unwraps inside expressions",
			&tree.BinaryOp{Op: "+", Left: &tree.Annotated{Inner: leaf(1)}, Right: leaf(2)},
			&tree.BinaryOp{Op: "+", Left: leaf(1), Right: leaf(2)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &tree.Block{Stmts: []tree.Node{tt.in}}
			res, err := pipeline.Run(root, nil, "t.chl",
				[]pass.Pass{structure.StripEmptyAnnotations}, pipeline.Options{})
			require.NoError(t, err)
			blk := res.Tree.(*tree.Block)
			require.Len(t, blk.Stmts, 1)
			assert.True(t, tree.Equal(tt.want, blk.Stmts[0]),
				"got %s", tree.Sprint(blk.Stmts[0]))
		})
	}
}

func TestStripEmptyAnnotationsNoChange(t *testing.T) {
	root := &tree.Block{Stmts: []tree.Node{
		&tree.Annotated{Name: "memo", Inner: &tree.Ident{Name: "x"}},
	}}
	res, err := pipeline.Run(root, nil, "t.chl",
		[]pass.Pass{structure.StripEmptyAnnotations}, pipeline.Options{})
	require.NoError(t, err)
	assert.Same(t, root, res.Tree)
}

func TestStructurePassesRegistered(t *testing.T) {
	for _, name := range []string{"flatten-blocks", "drop-empty-blocks", "strip-empty-annotations"} {
		_, ok := pass.Get(name)
		assert.True(t, ok, name)
	}
}
