package tree

import "fmt"

// Children returns the ordered child list of a node, nil for leaves.
// For Call the target is child zero followed by the arguments; for Assign
// the pattern precedes the value. The returned slice must not be mutated.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Call:
		kids := make([]Node, 0, len(n.Args)+1)
		kids = append(kids, n.Target)
		kids = append(kids, n.Args...)
		return kids
	case *Block:
		return n.Stmts
	case *BinaryOp:
		return []Node{n.Left, n.Right}
	case *Collection:
		return n.Elems
	case *Assign:
		return []Node{n.Pattern, n.Value}
	case *Annotated:
		return []Node{n.Inner}
	default:
		return nil
	}
}

// WithChildren rebuilds a node of the same kind around a replacement child
// list, keeping the original node's metadata. The child count must match
// the node's arity; variadic kinds (Call, Block, Collection) accept any
// count consistent with their shape.
func WithChildren(n Node, kids []Node) Node {
	switch n := n.(type) {
	case *Call:
		if len(kids) < 1 {
			panic("tree: Call requires at least a target child")
		}
		args := make([]Node, len(kids)-1)
		copy(args, kids[1:])
		return &Call{Meta: n.Meta, Target: kids[0], Args: args}
	case *Block:
		stmts := make([]Node, len(kids))
		copy(stmts, kids)
		return &Block{Meta: n.Meta, Stmts: stmts}
	case *BinaryOp:
		if len(kids) != 2 {
			panic(fmt.Sprintf("tree: BinaryOp requires 2 children, got %d", len(kids)))
		}
		return &BinaryOp{Meta: n.Meta, Op: n.Op, Left: kids[0], Right: kids[1]}
	case *Collection:
		elems := make([]Node, len(kids))
		copy(elems, kids)
		return &Collection{Meta: n.Meta, CollKind: n.CollKind, Elems: elems}
	case *Assign:
		if len(kids) != 2 {
			panic(fmt.Sprintf("tree: Assign requires 2 children, got %d", len(kids)))
		}
		return &Assign{Meta: n.Meta, Pattern: kids[0], Value: kids[1]}
	case *Annotated:
		if len(kids) != 1 {
			panic(fmt.Sprintf("tree: Annotated requires 1 child, got %d", len(kids)))
		}
		return &Annotated{Meta: n.Meta, Name: n.Name, Inner: kids[0]}
	default:
		if len(kids) != 0 {
			panic(fmt.Sprintf("tree: %s nodes have no children", n.Kind()))
		}
		return n
	}
}
