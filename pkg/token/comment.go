package token

// Placement is a hint for where a comment sits relative to code on its line.
type Placement int

// Comment placements.
const (
	Leading  Placement = iota // comment on its own line, before the next statement
	Trailing                  // comment after code on the same line
)

// String returns the placement name.
func (p Placement) String() string {
	if p == Trailing {
		return "trailing"
	}
	return "leading"
}

// Comment is a source comment carried outside the tree.
// Comments anchor by line number, never by node identity.
type Comment struct {
	Text      string // without the leading '#'
	Line      int    // 1-based anchor line
	Placement Placement
}
