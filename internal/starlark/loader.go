package starlark

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.starlark.net/starlark"

	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/walk"
)

// Plugin protocol, per *.star file in the plugin directory:
//
//	NAME            optional string, defaults to the file name sans ".star"
//	IGNORE_PREFIXES optional list of path prefixes the pass skips
//	visit(node)     required; returns one of:
//	    None            continue unchanged
//	    a node struct   replace the focus and continue
//	    "skip"          leave this subtree unvisited
//	    ("skip", node)  replace the focus without descending
//	    "halt"          stop the traversal for this pass
//
// Any other return value, or an error raised inside visit, fails the pass
// for the current file and is handled by the pipeline's failure policy.

// LoadDir loads every *.star file in dir (sorted by name) and returns the
// corresponding passes. A missing directory yields no passes and no error.
func LoadDir(dir string) ([]pass.Pass, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading plugin dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".star") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	passes := make([]pass.Pass, 0, len(names))
	for _, name := range names {
		p, err := loadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	return passes, nil
}

func loadFile(path string) (pass.Pass, error) {
	thread := getThread(path)
	defer putThread(thread)

	globals, err := starlark.ExecFile(thread, path, nil, Predeclared())
	if err != nil {
		return pass.Pass{}, fmt.Errorf("loading plugin %s: %w", path, err)
	}
	globals.Freeze() // plugin passes run concurrently across files

	visitVal, ok := globals["visit"]
	if !ok {
		return pass.Pass{}, fmt.Errorf("plugin %s does not define visit(node)", path)
	}
	visitFn, ok := visitVal.(starlark.Callable)
	if !ok {
		return pass.Pass{}, fmt.Errorf("plugin %s: visit must be callable, got %s", path, visitVal.Type())
	}

	name := strings.TrimSuffix(filepath.Base(path), ".star")
	if v, ok := globals["NAME"]; ok {
		if s, ok := v.(starlark.String); ok {
			name = string(s)
		}
	}

	var prefixes []string
	if v, ok := globals["IGNORE_PREFIXES"]; ok {
		list, ok := v.(*starlark.List)
		if !ok {
			return pass.Pass{}, fmt.Errorf("plugin %s: IGNORE_PREFIXES must be a list", path)
		}
		for i := 0; i < list.Len(); i++ {
			s, ok := list.Index(i).(starlark.String)
			if !ok {
				return pass.Pass{}, fmt.Errorf("plugin %s: IGNORE_PREFIXES[%d] must be a string", path, i)
			}
			prefixes = append(prefixes, string(s))
		}
	}

	return pass.Pass{
		Name:           name,
		Description:    "starlark plugin (" + filepath.Base(path) + ")",
		IgnorePrefixes: prefixes,
		Visit:          wrapVisit(name, visitFn),
	}, nil
}

// wrapVisit adapts a Starlark visit function to the pass contract.
func wrapVisit(name string, fn starlark.Callable) pass.VisitFunc {
	return func(cur *cursor.Cursor, _ *pass.Context) (walk.Signal, error) {
		thread := getThread(name)
		defer putThread(thread)

		ret, err := starlark.Call(thread, fn, starlark.Tuple{NodeToStarlark(cur.Node())}, nil)
		if err != nil {
			return walk.Signal{}, fmt.Errorf("plugin %s: %w", name, err)
		}
		return interpretResult(name, ret)
	}
}

func interpretResult(name string, ret starlark.Value) (walk.Signal, error) {
	switch ret := ret.(type) {
	case starlark.NoneType:
		return walk.Continue(), nil
	case starlark.String:
		switch string(ret) {
		case "skip":
			return walk.Skip(), nil
		case "halt":
			return walk.Halt(), nil
		case "continue":
			return walk.Continue(), nil
		}
		return walk.Signal{}, fmt.Errorf("plugin %s: unknown signal %q", name, string(ret))
	case starlark.Tuple:
		if ret.Len() != 2 {
			return walk.Signal{}, fmt.Errorf("plugin %s: signal tuple must have 2 elements", name)
		}
		action, ok := ret.Index(0).(starlark.String)
		if !ok || string(action) != "skip" {
			return walk.Signal{}, fmt.Errorf("plugin %s: signal tuple must start with \"skip\"", name)
		}
		n, err := NodeFromStarlark(ret.Index(1))
		if err != nil {
			return walk.Signal{}, fmt.Errorf("plugin %s: %w", name, err)
		}
		return walk.SkipWith(n), nil
	default:
		n, err := NodeFromStarlark(ret)
		if err != nil {
			return walk.Signal{}, fmt.Errorf("plugin %s: %w", name, err)
		}
		return walk.Replace(n), nil
	}
}
