// Package structure provides block shape normalization passes.
package structure

import (
	"sort"

	"github.com/chisellabs/chisel/pkg/comments"
	"github.com/chisellabs/chisel/pkg/cursor"
	"github.com/chisellabs/chisel/pkg/pass"
	"github.com/chisellabs/chisel/pkg/tree"
	"github.com/chisellabs/chisel/pkg/walk"
)

func init() {
	pass.Register(FlattenBlocks)
	pass.Register(DropEmptyBlocks)
	pass.Register(StripEmptyAnnotations)
}

// FlattenBlocks splices the statements of a block nested directly inside
// another block into its parent.
var FlattenBlocks = pass.Pass{
	Name:        "flatten-blocks",
	Description: "splice directly nested blocks into their parent",
	Visit:       visitFlatten,
}

func visitFlatten(cur *cursor.Cursor, _ *pass.Context) (walk.Signal, error) {
	blk, ok := cur.Node().(*tree.Block)
	if !ok {
		return walk.Continue(), nil
	}
	if !hasBlockStmt(blk) {
		return walk.Continue(), nil
	}
	stmts := blk.Stmts
	for {
		next, changed := spliceOnce(stmts)
		if !changed {
			break
		}
		stmts = next
	}
	return walk.Replace(&tree.Block{Meta: blk.Meta, Stmts: stmts}), nil
}

func hasBlockStmt(blk *tree.Block) bool {
	for _, s := range blk.Stmts {
		if s.Kind() == tree.KindBlock {
			return true
		}
	}
	return false
}

func spliceOnce(stmts []tree.Node) ([]tree.Node, bool) {
	out := make([]tree.Node, 0, len(stmts))
	changed := false
	for _, s := range stmts {
		if inner, ok := s.(*tree.Block); ok {
			out = append(out, inner.Stmts...)
			changed = true
			continue
		}
		out = append(out, s)
	}
	return out, changed
}

// DropEmptyBlocks removes empty `do end` statements. Comments anchored to a
// removed block's line are explicitly re-anchored to the nearest surviving
// statement line; a pass may never drop a comment as a side effect.
var DropEmptyBlocks = pass.Pass{
	Name:        "drop-empty-blocks",
	Description: "remove empty do/end statements, re-anchoring their comments",
	Visit:       visitDropEmpty,
}

func visitDropEmpty(cur *cursor.Cursor, ctx *pass.Context) (walk.Signal, error) {
	blk, ok := cur.Node().(*tree.Block)
	if !ok {
		return walk.Continue(), nil
	}

	kept := make([]tree.Node, 0, len(blk.Stmts))
	var removedLines []int
	for _, s := range blk.Stmts {
		if inner, isBlock := s.(*tree.Block); isBlock && len(inner.Stmts) == 0 {
			if l := inner.Meta.Line; l > 0 {
				removedLines = append(removedLines, l)
			}
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == len(blk.Stmts) {
		return walk.Continue(), nil
	}

	if len(removedLines) > 0 && ctx != nil && ctx.Comments != nil {
		if surviving := survivingLines(kept, blk, removedLines); len(surviving) > 0 {
			ctx.Comments.ReanchorLines(comments.NearestLine{}, removedLines, surviving)
		}
	}
	return walk.Replace(&tree.Block{Meta: blk.Meta, Stmts: kept}), nil
}

// StripEmptyAnnotations unwraps annotation nodes whose name is empty.
// The parser never produces them, but plugin-built trees can.
var StripEmptyAnnotations = pass.Pass{
	Name:        "strip-empty-annotations",
	Description: "unwrap @-annotations with an empty name",
	Visit:       visitStripAnnotations,
}

func visitStripAnnotations(cur *cursor.Cursor, _ *pass.Context) (walk.Signal, error) {
	ann, ok := cur.Node().(*tree.Annotated)
	if !ok || ann.Name != "" {
		return walk.Continue(), nil
	}
	// The inner node may itself be an empty annotation.
	inner := ann.Inner
	for {
		next, ok := inner.(*tree.Annotated)
		if !ok || next.Name != "" {
			break
		}
		inner = next.Inner
	}
	return walk.Replace(inner), nil
}

// survivingLines lists every line that still carries code after removal:
// the enclosing block's own line plus every line reachable from a kept
// statement's subtree.
func survivingLines(kept []tree.Node, blk *tree.Block, removed []int) []int {
	gone := make(map[int]bool, len(removed))
	for _, l := range removed {
		gone[l] = true
	}
	seen := make(map[int]bool)
	var out []int
	add := func(l int) {
		if l > 0 && !gone[l] && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	add(blk.Meta.Line)
	var collect func(n tree.Node)
	collect = func(n tree.Node) {
		add(n.NodeMeta().Line)
		for _, c := range tree.Children(n) {
			collect(c)
		}
	}
	for _, s := range kept {
		collect(s)
	}
	sort.Ints(out) // Anchor's tie-break wants ascending order
	return out
}
