// Package pass defines the unit of rewrite policy: a named visit function
// plus an optional path predicate. Passes are stateless configuration; they
// never own the tree and contribute edits only through the signal returned
// from their visit function.
package pass

import (
	"path/filepath"
	"strings"

	"github.com/chisellabs/chisel/pkg/comments"
	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/walk"
)

// Diagnostic is a recorded, non-fatal failure attributable to one pass on
// one file.
type Diagnostic struct {
	Pass    string
	Path    string
	Message string
}

// Context is the per-file state threaded through the whole pipeline:
// the comment side channel, the file identity, and accumulated
// diagnostics. It is never shared across files.
type Context struct {
	Comments    *comments.Store
	Path        string
	Diagnostics []Diagnostic
}

// Report appends a diagnostic attributed to the named pass.
func (c *Context) Report(passName, message string) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{
		Pass:    passName,
		Path:    c.Path,
		Message: message,
	})
}

// VisitFunc is called once per visited node. It returns the traversal
// signal (optionally carrying an edited node) or an error, which the
// orchestrator treats as the pass failing for this file.
type VisitFunc func(cur *cursor.Cursor, ctx *Context) (walk.Signal, error)

// Pass is a named, independently configurable rewrite.
type Pass struct {
	Name           string
	Description    string
	Visit          VisitFunc
	IgnorePrefixes []string
}

// EnabledFor reports whether the pass should run against the given file.
// Ignore prefixes are matched against the absolute form of both the path
// and the prefix, so relative prefix configuration is location-independent.
func (p Pass) EnabledFor(path string) bool {
	if len(p.IgnorePrefixes) == 0 {
		return true
	}
	abs := absolute(path)
	for _, prefix := range p.IgnorePrefixes {
		if strings.HasPrefix(abs, absolute(prefix)) {
			return false
		}
	}
	return true
}

func absolute(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
