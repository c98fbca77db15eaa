// Package naming provides canonical-spelling passes.
package naming

import (
	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/tree"
	"github.com/chisellabs/chisel/pkg/walk"
)

func init() {
	pass.Register(CanonicalBools)
}

// CanonicalBools rewrites foreign literal spellings left over from other
// languages (True, False, None, Null) into chisel's own literals.
var CanonicalBools = pass.Pass{
	Name:        "canonical-bools",
	Description: "rewrite True/False/None identifiers to canonical literals",
	Visit:       visitBools,
}

func visitBools(cur *cursor.Cursor, _ *pass.Context) (walk.Signal, error) {
	id, ok := cur.Node().(*tree.Ident)
	if !ok {
		return walk.Continue(), nil
	}
	var v tree.Value
	switch id.Name {
	case "True", "TRUE":
		v = tree.Bool(true)
	case "False", "FALSE":
		v = tree.Bool(false)
	case "None", "Null", "NULL":
		v = tree.Nil()
	default:
		return walk.Continue(), nil
	}
	return walk.Replace(&tree.Leaf{
		Meta:  tree.Meta{Line: id.Meta.Line},
		Value: v,
	}), nil
}
