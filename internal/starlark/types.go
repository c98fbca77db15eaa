// Package starlark lets users write chisel rewrite passes in Starlark.
// A plugin file exports a visit(node) function; chisel converts the focused
// tree node to a Starlark struct, calls the function, and interprets the
// returned value as a traversal signal.
package starlark

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/chisellabs/chisel/pkg/tree"
)

// NodeToStarlark converts a tree node to the Starlark struct shape seen by
// plugin code. Every struct carries a "kind" field; the remaining fields
// depend on the kind and mirror the tree package.
func NodeToStarlark(n tree.Node) starlark.Value {
	switch n := n.(type) {
	case *tree.Leaf:
		return nodeStruct(starlark.StringDict{
			"kind":  starlark.String("leaf"),
			"value": valueToStarlark(n.Value),
		})
	case *tree.Ident:
		return nodeStruct(starlark.StringDict{
			"kind": starlark.String("ident"),
			"name": starlark.String(n.Name),
		})
	case *tree.Call:
		return nodeStruct(starlark.StringDict{
			"kind":   starlark.String("call"),
			"target": NodeToStarlark(n.Target),
			"args":   nodeList(n.Args),
		})
	case *tree.Block:
		return nodeStruct(starlark.StringDict{
			"kind":  starlark.String("block"),
			"stmts": nodeList(n.Stmts),
		})
	case *tree.BinaryOp:
		return nodeStruct(starlark.StringDict{
			"kind":  starlark.String("binop"),
			"op":    starlark.String(n.Op),
			"left":  NodeToStarlark(n.Left),
			"right": NodeToStarlark(n.Right),
		})
	case *tree.Collection:
		return nodeStruct(starlark.StringDict{
			"kind":  starlark.String("collection"),
			"ctype": starlark.String(n.CollKind.String()),
			"elems": nodeList(n.Elems),
		})
	case *tree.Assign:
		return nodeStruct(starlark.StringDict{
			"kind":    starlark.String("assign"),
			"pattern": NodeToStarlark(n.Pattern),
			"value":   NodeToStarlark(n.Value),
		})
	case *tree.Annotated:
		return nodeStruct(starlark.StringDict{
			"kind":  starlark.String("annotated"),
			"name":  starlark.String(n.Name),
			"inner": NodeToStarlark(n.Inner),
		})
	default:
		return starlark.None
	}
}

func nodeStruct(fields starlark.StringDict) starlark.Value {
	return starlarkstruct.FromStringDict(starlark.String("node"), fields)
}

func nodeList(nodes []tree.Node) *starlark.List {
	vals := make([]starlark.Value, len(nodes))
	for i, n := range nodes {
		vals[i] = NodeToStarlark(n)
	}
	return starlark.NewList(vals)
}

func valueToStarlark(v tree.Value) starlark.Value {
	switch v.Kind {
	case tree.ValueInt:
		return starlark.MakeInt64(v.Int)
	case tree.ValueFloat:
		return starlark.Float(v.Float)
	case tree.ValueString:
		return starlark.String(v.Str)
	case tree.ValueBool:
		return starlark.Bool(v.Bool)
	default:
		return starlark.None
	}
}

// NodeFromStarlark converts a plugin-built struct back to a tree node.
// Nodes built by plugins carry no metadata; they are synthesized.
func NodeFromStarlark(v starlark.Value) (tree.Node, error) {
	s, ok := v.(*starlarkstruct.Struct)
	if !ok {
		return nil, fmt.Errorf("expected a node struct, got %s", v.Type())
	}
	kind, err := stringField(s, "kind")
	if err != nil {
		return nil, err
	}
	switch kind {
	case "leaf":
		raw, err := s.Attr("value")
		if err != nil {
			return nil, fmt.Errorf("leaf: %w", err)
		}
		val, err := valueFromStarlark(raw)
		if err != nil {
			return nil, err
		}
		return &tree.Leaf{Value: val}, nil
	case "ident":
		name, err := stringField(s, "name")
		if err != nil {
			return nil, err
		}
		return &tree.Ident{Name: name}, nil
	case "call":
		target, err := nodeField(s, "target")
		if err != nil {
			return nil, err
		}
		args, err := nodeListField(s, "args")
		if err != nil {
			return nil, err
		}
		return &tree.Call{Target: target, Args: args}, nil
	case "block":
		stmts, err := nodeListField(s, "stmts")
		if err != nil {
			return nil, err
		}
		return &tree.Block{Stmts: stmts}, nil
	case "binop":
		op, err := stringField(s, "op")
		if err != nil {
			return nil, err
		}
		left, err := nodeField(s, "left")
		if err != nil {
			return nil, err
		}
		right, err := nodeField(s, "right")
		if err != nil {
			return nil, err
		}
		return &tree.BinaryOp{Op: op, Left: left, Right: right}, nil
	case "collection":
		ctype, err := stringField(s, "ctype")
		if err != nil {
			return nil, err
		}
		ck := tree.List
		if ctype == "tuple" {
			ck = tree.Tuple
		}
		elems, err := nodeListField(s, "elems")
		if err != nil {
			return nil, err
		}
		return &tree.Collection{CollKind: ck, Elems: elems}, nil
	case "assign":
		pattern, err := nodeField(s, "pattern")
		if err != nil {
			return nil, err
		}
		value, err := nodeField(s, "value")
		if err != nil {
			return nil, err
		}
		return &tree.Assign{Pattern: pattern, Value: value}, nil
	case "annotated":
		name, err := stringField(s, "name")
		if err != nil {
			return nil, err
		}
		inner, err := nodeField(s, "inner")
		if err != nil {
			return nil, err
		}
		return &tree.Annotated{Name: name, Inner: inner}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
}

func valueFromStarlark(v starlark.Value) (tree.Value, error) {
	switch v := v.(type) {
	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return tree.Value{}, fmt.Errorf("integer %s out of range", v)
		}
		return tree.Int(i), nil
	case starlark.Float:
		return tree.Float(float64(v)), nil
	case starlark.String:
		return tree.Str(string(v)), nil
	case starlark.Bool:
		return tree.Bool(bool(v)), nil
	case starlark.NoneType:
		return tree.Nil(), nil
	default:
		return tree.Value{}, fmt.Errorf("unsupported leaf value type %s", v.Type())
	}
}

func stringField(s *starlarkstruct.Struct, name string) (string, error) {
	v, err := s.Attr(name)
	if err != nil {
		return "", fmt.Errorf("node struct missing %q field", name)
	}
	str, ok := v.(starlark.String)
	if !ok {
		return "", fmt.Errorf("node field %q must be a string, got %s", name, v.Type())
	}
	return string(str), nil
}

func nodeField(s *starlarkstruct.Struct, name string) (tree.Node, error) {
	v, err := s.Attr(name)
	if err != nil {
		return nil, fmt.Errorf("node struct missing %q field", name)
	}
	return NodeFromStarlark(v)
}

func nodeListField(s *starlarkstruct.Struct, name string) ([]tree.Node, error) {
	v, err := s.Attr(name)
	if err != nil {
		return nil, fmt.Errorf("node struct missing %q field", name)
	}
	list, ok := v.(*starlark.List)
	if !ok {
		return nil, fmt.Errorf("node field %q must be a list, got %s", name, v.Type())
	}
	out := make([]tree.Node, list.Len())
	for i := 0; i < list.Len(); i++ {
		n, err := NodeFromStarlark(list.Index(i))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}
