// Package arith provides arithmetic canonicalization passes.
package arith

import (
	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/tree"
	"github.com/chisellabs/chisel/pkg/walk"
)

func init() {
	pass.Register(FoldConstants)
}

// FoldConstants evaluates integer arithmetic over literal operands.
// Division is folded only when exact, so 7 / 2 stays as written.
var FoldConstants = pass.Pass{
	Name:        "fold-constants",
	Description: "evaluate integer arithmetic over literal operands",
	Visit:       visitFold,
}

func visitFold(cur *cursor.Cursor, _ *pass.Context) (walk.Signal, error) {
	n, ok := cur.Node().(*tree.BinaryOp)
	if !ok {
		return walk.Continue(), nil
	}
	folded, changed := fold(n)
	if !changed {
		return walk.Continue(), nil
	}
	// fold is exhaustive over the subtree; nothing below needs revisiting.
	return walk.SkipWith(folded), nil
}

// fold reduces a subtree bottom-up so a single visit leaves no foldable
// expression behind.
func fold(n tree.Node) (tree.Node, bool) {
	op, ok := n.(*tree.BinaryOp)
	if !ok {
		return n, false
	}
	left, lc := fold(op.Left)
	right, rc := fold(op.Right)

	li, lok := intLeaf(left)
	ri, rok := intLeaf(right)
	if lok && rok {
		if v, ok := eval(op.Op, li, ri); ok {
			return &tree.Leaf{
				Meta:  tree.Meta{Line: op.Meta.Line},
				Value: tree.Int(v),
			}, true
		}
	}
	if lc || rc {
		return &tree.BinaryOp{Meta: op.Meta, Op: op.Op, Left: left, Right: right}, true
	}
	return n, false
}

func intLeaf(n tree.Node) (int64, bool) {
	leaf, ok := n.(*tree.Leaf)
	if !ok || leaf.Value.Kind != tree.ValueInt {
		return 0, false
	}
	return leaf.Value.Int, true
}

func eval(op string, a, b int64) (int64, bool) {
	switch op {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*":
		return a * b, true
	case "/":
		if b == 0 || a%b != 0 {
			return 0, false
		}
		return a / b, true
	default:
		return 0, false
	}
}
