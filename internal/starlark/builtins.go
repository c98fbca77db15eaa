package starlark

import (
	"go.starlark.net/starlark"
)

// Predeclared returns the globals available to plugin files: one
// constructor per node kind, building the same struct shape that
// NodeToStarlark produces, so a visit function can assemble replacements
// without spelling out struct literals.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"leaf":       starlark.NewBuiltin("leaf", makeLeaf),
		"ident":      starlark.NewBuiltin("ident", makeIdent),
		"call":       starlark.NewBuiltin("call", makeCall),
		"block":      starlark.NewBuiltin("block", makeBlock),
		"binop":      starlark.NewBuiltin("binop", makeBinop),
		"collection": starlark.NewBuiltin("collection", makeCollection),
		"assign":     starlark.NewBuiltin("assign", makeAssign),
		"annotated":  starlark.NewBuiltin("annotated", makeAnnotated),
	}
}

func makeLeaf(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	if err := starlark.UnpackArgs("leaf", args, kwargs, "value", &value); err != nil {
		return nil, err
	}
	return nodeStruct(starlark.StringDict{
		"kind":  starlark.String("leaf"),
		"value": value,
	}), nil
}

func makeIdent(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs("ident", args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	return nodeStruct(starlark.StringDict{
		"kind": starlark.String("ident"),
		"name": starlark.String(name),
	}), nil
}

func makeCall(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var target starlark.Value
	var callArgs *starlark.List
	if err := starlark.UnpackArgs("call", args, kwargs, "target", &target, "args?", &callArgs); err != nil {
		return nil, err
	}
	if callArgs == nil {
		callArgs = starlark.NewList(nil)
	}
	return nodeStruct(starlark.StringDict{
		"kind":   starlark.String("call"),
		"target": target,
		"args":   callArgs,
	}), nil
}

func makeBlock(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var stmts *starlark.List
	if err := starlark.UnpackArgs("block", args, kwargs, "stmts?", &stmts); err != nil {
		return nil, err
	}
	if stmts == nil {
		stmts = starlark.NewList(nil)
	}
	return nodeStruct(starlark.StringDict{
		"kind":  starlark.String("block"),
		"stmts": stmts,
	}), nil
}

func makeBinop(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var op string
	var left, right starlark.Value
	if err := starlark.UnpackArgs("binop", args, kwargs, "op", &op, "left", &left, "right", &right); err != nil {
		return nil, err
	}
	return nodeStruct(starlark.StringDict{
		"kind":  starlark.String("binop"),
		"op":    starlark.String(op),
		"left":  left,
		"right": right,
	}), nil
}

func makeCollection(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ctype string
	var elems *starlark.List
	if err := starlark.UnpackArgs("collection", args, kwargs, "ctype", &ctype, "elems?", &elems); err != nil {
		return nil, err
	}
	if elems == nil {
		elems = starlark.NewList(nil)
	}
	return nodeStruct(starlark.StringDict{
		"kind":  starlark.String("collection"),
		"ctype": starlark.String(ctype),
		"elems": elems,
	}), nil
}

func makeAssign(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pattern, value starlark.Value
	if err := starlark.UnpackArgs("assign", args, kwargs, "pattern", &pattern, "value", &value); err != nil {
		return nil, err
	}
	return nodeStruct(starlark.StringDict{
		"kind":    starlark.String("assign"),
		"pattern": pattern,
		"value":   value,
	}), nil
}

func makeAnnotated(_ *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var inner starlark.Value
	if err := starlark.UnpackArgs("annotated", args, kwargs, "name", &name, "inner", &inner); err != nil {
		return nil, err
	}
	return nodeStruct(starlark.StringDict{
		"kind":  starlark.String("annotated"),
		"name":  starlark.String(name),
		"inner": inner,
	}), nil
}
