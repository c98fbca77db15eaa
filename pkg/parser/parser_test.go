package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisellabs/chisel/pkg/parser"
	"github.com/chisellabs/chisel/pkg/token"
	"github.com/chisellabs/chisel/pkg/tree"
)

// parseOne parses source expected to hold exactly one statement and
// returns it.
func parseOne(t *testing.T, src string) tree.Node {
	t.Helper()
	root, _, err := parser.Parse(src, "test.chl")
	require.NoError(t, err)
	blk, ok := root.(*tree.Block)
	require.True(t, ok, "root must be a block")
	require.Len(t, blk.Stmts, 1)
	return blk.Stmts[0]
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want tree.Value
	}{
		{"42", tree.Int(42)},
		{"-7", tree.Int(-7)},
		{"3.25", tree.Float(3.25)},
		{`"hello"`, tree.Str("hello")},
		{`"tab\there"`, tree.Str("tab\there")},
		{"true", tree.Bool(true)},
		{"false", tree.Bool(false)},
		{"nil", tree.Nil()},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l, ok := parseOne(t, tt.src).(*tree.Leaf)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(l.Value), "got %s", l.Value)
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string // Sprint form, fully parenthesized for binops
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 + 2 - 3", "((1 + 2) - 3)"},
		{"a or b and c", "(a or (b and c))"},
		{"a and b == c", "(a and (b == c))"},
		{"1 + 2 < 3 * 4", "((1 + 2) < (3 * 4))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a < b or c > d", "((a < b) or (c > d))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.Sprint(parseOne(t, tt.src)))
		})
	}
}

func TestParseCall(t *testing.T) {
	n := parseOne(t, "f(1, x, g(2))")
	call, ok := n.(*tree.Call)
	require.True(t, ok)
	assert.Equal(t, "f(1, x, g(2))", tree.Sprint(call))
	require.Len(t, call.Args, 3)
}

func TestParseChainedCall(t *testing.T) {
	n := parseOne(t, "f(1)(2)")
	outer, ok := n.(*tree.Call)
	require.True(t, ok)
	_, ok = outer.Target.(*tree.Call)
	assert.True(t, ok)
}

func TestParseCollections(t *testing.T) {
	tests := []struct {
		src  string
		kind tree.CollKind
		n    int
	}{
		{"[1, 2, 3]", tree.List, 3},
		{"[]", tree.List, 0},
		{"[1, 2,]", tree.List, 2},
		{"(1, 2)", tree.Tuple, 2},
		{"(1,)", tree.Tuple, 1},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			coll, ok := parseOne(t, tt.src).(*tree.Collection)
			require.True(t, ok)
			assert.Equal(t, tt.kind, coll.CollKind)
			assert.Len(t, coll.Elems, tt.n)
		})
	}
}

func TestParseParenIsGroupingNotTuple(t *testing.T) {
	n := parseOne(t, "(1 + 2)")
	_, ok := n.(*tree.BinaryOp)
	assert.True(t, ok)
}

func TestParseAssign(t *testing.T) {
	n := parseOne(t, "x = 1 + 2")
	a, ok := n.(*tree.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", a.Pattern.(*tree.Ident).Name)
	_, ok = a.Value.(*tree.BinaryOp)
	assert.True(t, ok)
}

func TestParseTupleAssign(t *testing.T) {
	n := parseOne(t, "(a, b) = f()")
	a, ok := n.(*tree.Assign)
	require.True(t, ok)
	coll, ok := a.Pattern.(*tree.Collection)
	require.True(t, ok)
	assert.Equal(t, tree.Tuple, coll.CollKind)
}

func TestParseInvalidPattern(t *testing.T) {
	for _, src := range []string{"1 = 2", "f() = 3", "[a] = 4"} {
		t.Run(src, func(t *testing.T) {
			_, _, err := parser.Parse(src, "test.chl")
			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Message, "pattern")
		})
	}
}

func TestParseAnnotation(t *testing.T) {
	n := parseOne(t, "@cached f(1)")
	ann, ok := n.(*tree.Annotated)
	require.True(t, ok)
	assert.Equal(t, "cached", ann.Name)
	_, ok = ann.Inner.(*tree.Call)
	assert.True(t, ok)
}

func TestParseBlock(t *testing.T) {
	src := "do\n  x = 1\n  y = 2\nend\n"
	n := parseOne(t, src)
	blk, ok := n.(*tree.Block)
	require.True(t, ok)
	assert.Len(t, blk.Stmts, 2)
}

func TestParseNestedBlocks(t *testing.T) {
	src := "do\n  do\n    1\n  end\nend\n"
	outer := parseOne(t, src).(*tree.Block)
	require.Len(t, outer.Stmts, 1)
	inner, ok := outer.Stmts[0].(*tree.Block)
	require.True(t, ok)
	assert.Len(t, inner.Stmts, 1)
}

func TestParseMultipleStatements(t *testing.T) {
	src := "x = 1\ny = 2\n\nz = x + y\n"
	root, _, err := parser.Parse(src, "test.chl")
	require.NoError(t, err)
	assert.Len(t, root.(*tree.Block).Stmts, 3)
}

func TestParseEmptySource(t *testing.T) {
	root, cs, err := parser.Parse("", "t.chl")
	require.NoError(t, err)
	assert.Empty(t, root.(*tree.Block).Stmts)
	assert.Equal(t, 0, cs.Len())
}

func TestParseAssignsLines(t *testing.T) {
	src := "x = 1\ny = 2\n"
	root, _, err := parser.Parse(src, "test.chl")
	require.NoError(t, err)
	stmts := root.(*tree.Block).Stmts
	assert.Equal(t, 1, stmts[0].NodeMeta().Line)
	assert.Equal(t, 2, stmts[1].NodeMeta().Line)
}

func TestParseAssignsUniqueIDs(t *testing.T) {
	root, _, err := parser.Parse("f(1, 2)\n", "t.chl")
	require.NoError(t, err)

	seen := map[tree.NodeID]bool{}
	var visit func(n tree.Node)
	visit = func(n tree.Node) {
		id := n.NodeMeta().ID
		assert.NotZero(t, id)
		assert.False(t, seen[id], "duplicate node id %d", id)
		seen[id] = true
		for _, c := range tree.Children(n) {
			visit(c)
		}
	}
	visit(root)
}

func TestParseComments(t *testing.T) {
	src := "# header\nx = 1  # trailing\n# footer\n"
	root, cs, err := parser.Parse(src, "test.chl")
	require.NoError(t, err)
	assert.Len(t, root.(*tree.Block).Stmts, 1)

	require.Equal(t, 3, cs.Len())
	assert.Equal(t, token.Comment{Text: " header", Line: 1, Placement: token.Leading}, cs.At(0))
	assert.Equal(t, token.Comment{Text: " trailing", Line: 2, Placement: token.Trailing}, cs.At(1))
	assert.Equal(t, token.Comment{Text: " footer", Line: 3, Placement: token.Leading}, cs.At(2))
}

func TestParseCommentOnlySource(t *testing.T) {
	root, cs, err := parser.Parse("# alone\n", "t.chl")
	require.NoError(t, err)
	assert.Empty(t, root.(*tree.Block).Stmts)
	require.Equal(t, 1, cs.Len())
	assert.Equal(t, token.Leading, cs.At(0).Placement)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", `x = "never closes`},
		{"dangling operator", "1 +"},
		{"unclosed paren", "(1 + 2"},
		{"unclosed list", "[1, 2"},
		{"missing end", "do\n  1\n"},
		{"bare annotation", "@\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parser.Parse(tt.src, "t.chl")
			var perr *parser.ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, _, err := parser.Parse("x = 1\ny = (\n", "t.chl")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.GreaterOrEqual(t, perr.Pos.Line, 2)
}

func TestParseErrorCarriesPath(t *testing.T) {
	_, _, err := parser.Parse("1 +", "scripts/broken.chl")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "scripts/broken.chl", perr.Path)
	assert.Contains(t, err.Error(), "scripts/broken.chl")

	_, _, err = parser.Parse("1 +", "")
	require.ErrorAs(t, err, &perr)
	assert.NotContains(t, err.Error(), ": parse error")
	assert.Contains(t, err.Error(), "parse error")
}

func TestNewlinesInsideBracketsInsignificant(t *testing.T) {
	src := "f(\n  1,\n  2,\n)\n"
	call, ok := parseOne(t, src).(*tree.Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
}
