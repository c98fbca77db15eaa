// Package walk drives one rewrite pass across a whole tree: a pre-order
// depth-first traversal over a cursor, steered per node by the pass's
// Continue/Skip/Halt signal.
package walk

import (
	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/tree"
)

// Action is a pass's per-node instruction to the traversal.
type Action uint8

// Traversal actions.
const (
	ActionContinue Action = iota // apply edit if any, then descend
	ActionSkip                   // apply edit if any, but do not descend
	ActionHalt                   // stop the whole traversal now
)

// Signal carries the action and an optional replacement for the focus node.
type Signal struct {
	action      Action
	replacement tree.Node
	hasNode     bool
}

// Continue keeps walking into the focus node's children.
func Continue() Signal { return Signal{action: ActionContinue} }

// Replace substitutes the focus node and continues into the replacement's
// children.
func Replace(n tree.Node) Signal {
	return Signal{action: ActionContinue, replacement: n, hasNode: true}
}

// Skip leaves the focus node's descendants unvisited and moves on to the
// next sibling.
func Skip() Signal { return Signal{action: ActionSkip} }

// SkipWith substitutes the focus node and moves on without descending into
// the replacement.
func SkipWith(n tree.Node) Signal {
	return Signal{action: ActionSkip, replacement: n, hasNode: true}
}

// Halt terminates the traversal immediately. Edits already applied remain;
// nodes not yet visited are left untouched.
func Halt() Signal { return Signal{action: ActionHalt} }

// HaltWith substitutes the focus node, then terminates the traversal.
func HaltWith(n tree.Node) Signal {
	return Signal{action: ActionHalt, replacement: n, hasNode: true}
}

// Action returns the signal's traversal action.
func (s Signal) Action() Action { return s.action }

// Replacement returns the edited node carried by the signal, if any.
func (s Signal) Replacement() (tree.Node, bool) {
	return s.replacement, s.hasNode
}

// VisitFunc is invoked once per visited node with the cursor positioned on
// it. Returning an error aborts the traversal; the caller decides what to
// do with the partially walked tree (the pipeline discards it).
type VisitFunc func(cur *cursor.Cursor) (Signal, error)

// Tree walks root in pre-order, invoking visit at every focus, and returns
// the reconstructed root. Each step strictly consumes the remaining
// unvisited pre-order positions, so termination is guaranteed; Halt
// short-circuits unconditionally.
func Tree(root tree.Node, visit VisitFunc) (tree.Node, error) {
	cur := cursor.Enter(root)
	for {
		sig, err := visit(cur)
		if err != nil {
			return nil, err
		}
		if n, ok := sig.Replacement(); ok {
			cur = cur.Replace(n)
		}
		if sig.Action() == ActionHalt {
			return cur.Root(), nil
		}
		next, ok := advance(cur, sig.Action() == ActionContinue)
		if !ok {
			return cur.Root(), nil
		}
		cur = next
	}
}

// advance performs standard pre-order resumption: descend when allowed,
// otherwise take the next sibling, ascending as far as needed to find one.
func advance(cur *cursor.Cursor, descend bool) (*cursor.Cursor, bool) {
	if descend {
		if down, ok := cur.Down(); ok {
			return down, true
		}
	}
	for {
		if right, ok := cur.Right(); ok {
			return right, true
		}
		up, ok := cur.Up()
		if !ok {
			return nil, false
		}
		cur = up
	}
}
