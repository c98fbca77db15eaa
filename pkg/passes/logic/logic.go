// Package logic provides boolean simplification passes.
package logic

import (
	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/tree"
	"github.com/chisellabs/chisel/pkg/walk"
)

func init() {
	pass.Register(SimplifyNot)
	pass.Register(PruneBool)
}

// SimplifyNot collapses double negation: not(not(x)) becomes x.
var SimplifyNot = pass.Pass{
	Name:        "simplify-not",
	Description: "collapse double negation not(not(x))",
	Visit:       visitNot,
}

func visitNot(cur *cursor.Cursor, _ *pass.Context) (walk.Signal, error) {
	n := cur.Node()
	out := n
	for {
		inner, ok := notArg(out)
		if !ok {
			break
		}
		inner2, ok := notArg(inner)
		if !ok {
			break
		}
		out = inner2
	}
	if out == n {
		return walk.Continue(), nil
	}
	return walk.Replace(out), nil
}

// notArg returns x when n has the shape not(x).
func notArg(n tree.Node) (tree.Node, bool) {
	call, ok := n.(*tree.Call)
	if !ok || len(call.Args) != 1 {
		return nil, false
	}
	target, ok := call.Target.(*tree.Ident)
	if !ok || target.Name != "not" {
		return nil, false
	}
	return call.Args[0], true
}

// PruneBool removes boolean identity operands: x and true, true and x,
// x or false, false or x all reduce to x.
var PruneBool = pass.Pass{
	Name:        "prune-bool",
	Description: "remove boolean identity operands from and/or chains",
	Visit:       visitPrune,
}

func visitPrune(cur *cursor.Cursor, _ *pass.Context) (walk.Signal, error) {
	n := cur.Node()
	out := n
	for {
		next, changed := pruneBool(out)
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

func pruneBool(n tree.Node) (tree.Node, bool) {
	op, ok := n.(*tree.BinaryOp)
	if !ok {
		return n, false
	}
	switch op.Op {
	case "and":
		if isBool(op.Right, true) {
			return op.Left, true
		}
		if isBool(op.Left, true) {
			return op.Right, true
		}
	case "or":
		if isBool(op.Right, false) {
			return op.Left, true
		}
		if isBool(op.Left, false) {
			return op.Right, true
		}
	}
	return n, false
}

func isBool(n tree.Node, v bool) bool {
	leaf, ok := n.(*tree.Leaf)
	return ok && leaf.Value.Kind == tree.ValueBool && leaf.Value.Bool == v
}
