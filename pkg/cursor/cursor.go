// Package cursor implements a zipper over the immutable tree: a focus node
// plus a trail of breadcrumbs recording how to rebuild each ancestor.
// Navigation is O(depth), Replace is O(1), and reconstruction cost is paid
// lazily, once per ancestor level actually revisited by Up. The tree itself
// never holds parent or sibling back-references.
package cursor

import "github.com/chisellabs/chisel/pkg/tree"

// crumb records everything needed to rebuild one ancestor level:
// the original parent (its kind-specific reconstruction recipe lives in
// tree.WithChildren), the already-visited left siblings in reverse order,
// and the not-yet-visited right siblings.
type crumb struct {
	parent      tree.Node
	parentDirty bool // parent's own focus slot had been replaced when we descended
	left        []tree.Node
	right       []tree.Node
	dirty       bool // some sibling in left was replaced
}

// Cursor is a value-semantic focus-plus-trail over a tree. Every operation
// returns a new cursor; existing cursors stay valid.
type Cursor struct {
	focus tree.Node
	trail []crumb
	dirty bool // focus differs from the node originally occupying this slot
}

// Enter returns a cursor focused at the root of the given tree.
func Enter(root tree.Node) *Cursor {
	return &Cursor{focus: root}
}

// Node returns the node currently in focus.
func (c *Cursor) Node() tree.Node {
	return c.focus
}

// Depth returns the number of ancestors above the focus.
func (c *Cursor) Depth() int {
	return len(c.trail)
}

// AtRoot reports whether the focus is the tree root.
func (c *Cursor) AtRoot() bool {
	return len(c.trail) == 0
}

// Replace substitutes the focused node. The trail is untouched, so the cost
// is O(1); ancestors are rebuilt only when Up revisits them.
func (c *Cursor) Replace(n tree.Node) *Cursor {
	return &Cursor{focus: n, trail: c.trail, dirty: true}
}

// Down moves the focus to the first child. Returns false when the focus has
// no children.
func (c *Cursor) Down() (*Cursor, bool) {
	kids := tree.Children(c.focus)
	if len(kids) == 0 {
		return nil, false
	}
	trail := make([]crumb, len(c.trail)+1)
	copy(trail, c.trail)
	trail[len(c.trail)] = crumb{
		parent:      c.focus,
		parentDirty: c.dirty,
		right:       kids[1:],
	}
	return &Cursor{focus: kids[0], trail: trail}, true
}

// Right moves the focus to the next sibling. Returns false at the last
// sibling or at the root.
func (c *Cursor) Right() (*Cursor, bool) {
	if len(c.trail) == 0 {
		return nil, false
	}
	cr := c.trail[len(c.trail)-1]
	if len(cr.right) == 0 {
		return nil, false
	}
	left := make([]tree.Node, len(cr.left)+1)
	left[0] = c.focus
	copy(left[1:], cr.left)
	trail := make([]crumb, len(c.trail))
	copy(trail, c.trail)
	trail[len(trail)-1] = crumb{
		parent:      cr.parent,
		parentDirty: cr.parentDirty,
		left:        left,
		right:       cr.right[1:],
		dirty:       cr.dirty || c.dirty,
	}
	return &Cursor{focus: cr.right[0], trail: trail}, true
}

// Up reconstructs the parent by substituting the (possibly edited) focus
// into its recorded position among the siblings. When neither the focus nor
// any visited sibling was replaced, the original parent node is returned
// untouched, so an edit-free walk rebuilds the input tree identically.
func (c *Cursor) Up() (*Cursor, bool) {
	if len(c.trail) == 0 {
		return nil, false
	}
	cr := c.trail[len(c.trail)-1]
	trail := make([]crumb, len(c.trail)-1)
	copy(trail, c.trail[:len(c.trail)-1])

	if !c.dirty && !cr.dirty {
		return &Cursor{focus: cr.parent, trail: trail, dirty: cr.parentDirty}, true
	}

	kids := make([]tree.Node, 0, len(cr.left)+1+len(cr.right))
	for i := len(cr.left) - 1; i >= 0; i-- {
		kids = append(kids, cr.left[i])
	}
	kids = append(kids, c.focus)
	kids = append(kids, cr.right...)
	return &Cursor{focus: tree.WithChildren(cr.parent, kids), trail: trail, dirty: true}, true
}

// Root ascends to the top and returns the fully reconstructed tree.
// With no Replace calls anywhere on the walk this is the input tree itself.
func (c *Cursor) Root() tree.Node {
	for {
		up, ok := c.Up()
		if !ok {
			return c.focus
		}
		c = up
	}
}
