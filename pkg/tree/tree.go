// Package tree defines the immutable node representation that the rewrite
// engine operates over. Nodes are never mutated after construction; every
// edit builds a new value. Parent and sibling context is not stored in
// nodes; the cursor package reconstructs it transiently.
package tree

import (
	"fmt"
	"strings"
)

// Kind discriminates node types.
type Kind uint8

// Node kinds.
const (
	KindLeaf Kind = iota
	KindIdent
	KindCall
	KindBlock
	KindBinaryOp
	KindCollection
	KindAssign
	KindAnnotated
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindIdent:
		return "ident"
	case KindCall:
		return "call"
	case KindBlock:
		return "block"
	case KindBinaryOp:
		return "binop"
	case KindCollection:
		return "collection"
	case KindAssign:
		return "assign"
	case KindAnnotated:
		return "annotated"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// NodeID is a stable identity token assigned at parse time.
// It is used only for anchoring side-channel data, never for ownership;
// nodes built by passes carry ID zero.
type NodeID uint64

// Meta is the opaque per-node metadata every node carries.
type Meta struct {
	Line int    // originating source line, 0 for synthesized nodes
	ID   NodeID // parse-time identity token, 0 for synthesized nodes
}

// Node is the tagged union over all tree node kinds.
type Node interface {
	Kind() Kind
	NodeMeta() Meta

	// sealed
	isNode()
}

// Leaf is a literal value.
type Leaf struct {
	Meta  Meta
	Value Value
}

// Ident is a bare identifier reference.
type Ident struct {
	Meta Meta
	Name string
}

// Call is a call of a target with an ordered argument list.
type Call struct {
	Meta   Meta
	Target Node
	Args   []Node
}

// Block is an ordered statement list.
type Block struct {
	Meta  Meta
	Stmts []Node
}

// BinaryOp is an infix operation.
type BinaryOp struct {
	Meta  Meta
	Op    string
	Left  Node
	Right Node
}

// CollKind distinguishes collection flavors.
type CollKind uint8

// Collection kinds.
const (
	List CollKind = iota
	Tuple
)

// String returns the collection kind name.
func (k CollKind) String() string {
	if k == Tuple {
		return "tuple"
	}
	return "list"
}

// Collection is an ordered element list of a given flavor.
type Collection struct {
	Meta     Meta
	CollKind CollKind
	Elems    []Node
}

// Assign binds a pattern to a value.
type Assign struct {
	Meta    Meta
	Pattern Node
	Value   Node
}

// Annotated wraps an inner node with a named annotation.
type Annotated struct {
	Meta  Meta
	Name  string
	Inner Node
}

func (n *Leaf) Kind() Kind       { return KindLeaf }
func (n *Ident) Kind() Kind      { return KindIdent }
func (n *Call) Kind() Kind       { return KindCall }
func (n *Block) Kind() Kind      { return KindBlock }
func (n *BinaryOp) Kind() Kind   { return KindBinaryOp }
func (n *Collection) Kind() Kind { return KindCollection }
func (n *Assign) Kind() Kind     { return KindAssign }
func (n *Annotated) Kind() Kind  { return KindAnnotated }

func (n *Leaf) NodeMeta() Meta       { return n.Meta }
func (n *Ident) NodeMeta() Meta      { return n.Meta }
func (n *Call) NodeMeta() Meta       { return n.Meta }
func (n *Block) NodeMeta() Meta      { return n.Meta }
func (n *BinaryOp) NodeMeta() Meta   { return n.Meta }
func (n *Collection) NodeMeta() Meta { return n.Meta }
func (n *Assign) NodeMeta() Meta     { return n.Meta }
func (n *Annotated) NodeMeta() Meta  { return n.Meta }

func (n *Leaf) isNode()       {}
func (n *Ident) isNode()      {}
func (n *Call) isNode()       {}
func (n *Block) isNode()      {}
func (n *BinaryOp) isNode()   {}
func (n *Collection) isNode() {}
func (n *Assign) isNode()     {}
func (n *Annotated) isNode()  {}

// Sprint returns a compact one-line debug form of a subtree.
func Sprint(n Node) string {
	var b strings.Builder
	sprint(&b, n)
	return b.String()
}

func sprint(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Leaf:
		b.WriteString(n.Value.String())
	case *Ident:
		b.WriteString(n.Name)
	case *Call:
		sprint(b, n.Target)
		b.WriteByte('(')
		sprintList(b, n.Args)
		b.WriteByte(')')
	case *Block:
		b.WriteString("do ")
		sprintList(b, n.Stmts)
		b.WriteString(" end")
	case *BinaryOp:
		b.WriteByte('(')
		sprint(b, n.Left)
		b.WriteByte(' ')
		b.WriteString(n.Op)
		b.WriteByte(' ')
		sprint(b, n.Right)
		b.WriteByte(')')
	case *Collection:
		open, close := "[", "]"
		if n.CollKind == Tuple {
			open, close = "(", ")"
		}
		b.WriteString(open)
		sprintList(b, n.Elems)
		b.WriteString(close)
	case *Assign:
		sprint(b, n.Pattern)
		b.WriteString(" = ")
		sprint(b, n.Value)
	case *Annotated:
		b.WriteByte('@')
		b.WriteString(n.Name)
		b.WriteByte(' ')
		sprint(b, n.Inner)
	}
}

func sprintList(b *strings.Builder, nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		sprint(b, n)
	}
}
