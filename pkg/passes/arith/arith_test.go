package arith_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisellabs/chisel/pkg/parser"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/passes/arith"
	"github.com/chisellabs/chisel/pkg/pipeline"
	"github.com/chisellabs/chisel/pkg/tree"
)

// rewrite runs a single pass over parsed source and returns the Sprint of
// the sole statement.
func rewrite(t *testing.T, p pass.Pass, src string) string {
	t.Helper()
	root, cs, err := parser.Parse(src, "test.chl")
	require.NoError(t, err)
	res, err := pipeline.Run(root, cs, "test.chl", []pass.Pass{p}, pipeline.Options{})
	require.NoError(t, err)
	blk := res.Tree.(*tree.Block)
	require.Len(t, blk.Stmts, 1)
	return tree.Sprint(blk.Stmts[0])
}

func TestFoldConstants(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2\n", "3"},
		{"2 * 3 + 4\n", "10"},
		{"10 - 4 - 3\n", "3"},
		{"8 / 2\n", "4"},
		{"7 / 2\n", "(7 / 2)"},   // inexact division stays
		{"7 / 0\n", "(7 / 0)"},   // never fold a division by zero
		{"x + (1 + 2)\n", "(x + 3)"},
		{"(1 + 2) * (3 + 4)\n", "21"},
		{"1.5 + 1\n", "(1.5 + 1)"}, // floats are left alone
		{"x = 2 + 3\n", "x = 5"},
		{"f(1 + 1, 2 + 2)\n", "f(2, 4)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(t, arith.FoldConstants, tt.src))
		})
	}
}

func TestFoldConstantsSingleRunReachesFixedPoint(t *testing.T) {
	root, cs, err := parser.Parse("((1 + 2) + (3 + 4)) * 2\n", "t.chl")
	require.NoError(t, err)
	res, err := pipeline.Run(root, cs, "t.chl", []pass.Pass{arith.FoldConstants}, pipeline.Options{})
	require.NoError(t, err)

	again, err := pipeline.Run(res.Tree, res.Comments, "t.chl", []pass.Pass{arith.FoldConstants}, pipeline.Options{})
	require.NoError(t, err)
	assert.True(t, tree.Equal(res.Tree, again.Tree))
	assert.Equal(t, "20", tree.Sprint(res.Tree.(*tree.Block).Stmts[0]))
}

func TestDropIdentities(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x + 0\n", "x"},
		{"0 + x\n", "x"},
		{"x - 0\n", "x"},
		{"x * 1\n", "x"},
		{"1 * x\n", "x"},
		{"x / 1\n", "x"},
		{"0 - x\n", "(0 - x)"},   // not an identity
		{"x * 0\n", "(x * 0)"},   // annihilation is not this pass's job
		{"(x + 0) * 1\n", "x"},   // rewrites cascade at one node
		{"f(y * 1)\n", "f(y)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, rewrite(t, arith.DropIdentities, tt.src))
		})
	}
}

func TestArithPassesAreRegistered(t *testing.T) {
	for _, name := range []string{"fold-constants", "drop-identities"} {
		p, ok := pass.Get(name)
		require.True(t, ok, name)
		assert.NotNil(t, p.Visit)
		assert.NotEmpty(t, p.Description)
	}
}
