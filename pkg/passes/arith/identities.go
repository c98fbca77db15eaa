package arith

import (
	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/tree"
	"github.com/chisellabs/chisel/pkg/walk"
)

func init() {
	pass.Register(DropIdentities)
}

// DropIdentities removes arithmetic no-ops: x+0, 0+x, x-0, x*1, 1*x, x/1.
var DropIdentities = pass.Pass{
	Name:        "drop-identities",
	Description: "remove arithmetic no-ops such as x + 0 and x * 1",
	Visit:       visitIdentities,
}

func visitIdentities(cur *cursor.Cursor, _ *pass.Context) (walk.Signal, error) {
	n := cur.Node()
	out := n
	// A single rewrite can expose another ((x + 0) * 1), so rewrite until
	// this node settles; descendants get their own visits.
	for {
		next, changed := dropIdentity(out)
		if !changed {
			break
		}
		out = next
	}
	if out == n {
		return walk.Continue(), nil
	}
	return walk.Replace(out), nil
}

func dropIdentity(n tree.Node) (tree.Node, bool) {
	op, ok := n.(*tree.BinaryOp)
	if !ok {
		return n, false
	}
	switch op.Op {
	case "+":
		if isInt(op.Right, 0) {
			return op.Left, true
		}
		if isInt(op.Left, 0) {
			return op.Right, true
		}
	case "-":
		if isInt(op.Right, 0) {
			return op.Left, true
		}
	case "*":
		if isInt(op.Right, 1) {
			return op.Left, true
		}
		if isInt(op.Left, 1) {
			return op.Right, true
		}
	case "/":
		if isInt(op.Right, 1) {
			return op.Left, true
		}
	}
	return n, false
}

func isInt(n tree.Node, v int64) bool {
	i, ok := intLeaf(n)
	return ok && i == v
}
