package tree

// Equal reports deep structural equality of two subtrees.
// Metadata (line, identity token) is ignored: two trees are equal when they
// print the same, regardless of where their nodes originated.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Leaf:
		return a.Value.Equal(b.(*Leaf).Value)
	case *Ident:
		return a.Name == b.(*Ident).Name
	case *BinaryOp:
		if a.Op != b.(*BinaryOp).Op {
			return false
		}
	case *Collection:
		if a.CollKind != b.(*Collection).CollKind {
			return false
		}
	case *Annotated:
		if a.Name != b.(*Annotated).Name {
			return false
		}
	}
	ak, bk := Children(a), Children(b)
	if len(ak) != len(bk) {
		return false
	}
	for i := range ak {
		if !Equal(ak[i], bk[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in a subtree, the root included.
func Count(n Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range Children(n) {
		total += Count(c)
	}
	return total
}
