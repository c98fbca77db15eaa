// Package passes provides the built-in canonicalization passes for chisel.
//
// Passes are organized by concern:
//   - arith: constant folding and arithmetic identities
//   - logic: boolean simplifications
//   - naming: canonical spellings of literals
//   - structure: block shape normalization
//
// To register all built-in passes with the global pass registry, import
// this package with a blank identifier:
//
//	import _ "github.com/chisellabs/chisel/pkg/passes"
//
// Individual groups can also be imported:
//
//	import _ "github.com/chisellabs/chisel/pkg/passes/arith"
//
// Every built-in pass seeks a fixed point: running it a second time over
// its own output produces no further edits.
package passes
