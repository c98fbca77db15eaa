// Package printer renders a tree plus its comment side channel back to
// chisel script text. Rendering is total: any well-formed tree prints, and
// the output reparses to a structurally equal tree, which is what makes a
// second pipeline run over printed output a no-op for fixed-point passes.
package printer

import (
	"bytes"
	"strings"

	"github.com/chisellabs/chisel/pkg/comments"
	"github.com/chisellabs/chisel/pkg/token"
	"github.com/chisellabs/chisel/pkg/tree"
)

// DefaultWidth is the line budget used when the caller passes zero.
const DefaultWidth = 80

const indentSize = 2

// Render prints the tree with comments re-attached by anchor line. width is
// the soft line budget: a statement whose one-line form would exceed it has
// its call arguments or collection elements broken one per line.
func Render(root tree.Node, cs *comments.Store, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	p := &printer{width: width, atLineStart: true}
	if cs != nil {
		p.comments = cs.All()
	}

	if blk, ok := root.(*tree.Block); ok {
		p.stmts(blk.Stmts)
	} else {
		p.stmt(root)
		p.writeln()
	}
	p.emitRemaining()

	return strings.TrimRight(p.out.String(), "\n") + "\n"
}

type printer struct {
	out         bytes.Buffer
	depth       int
	atLineStart bool
	width       int

	comments []token.Comment
	next     int // next unemitted comment
	lastLine int // highest source line emitted so far
}

// ---------- low-level writing (indent-aware) ----------

func (p *printer) write(s string) {
	if p.atLineStart && len(s) > 0 {
		for i := 0; i < p.depth*indentSize; i++ {
			p.out.WriteByte(' ')
		}
		p.atLineStart = false
	}
	p.out.WriteString(s)
}

func (p *printer) writeln() {
	p.out.WriteByte('\n')
	p.atLineStart = true
}

func (p *printer) indent() { p.depth++ }

func (p *printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// fits reports whether s fits the remaining budget on a fresh line.
func (p *printer) fits(s string) bool {
	return p.depth*indentSize+len(s) <= p.width
}

// ---------- comment interleaving ----------

// emitLeading prints every pending comment anchored before the given source
// line (or on it, for leading placement) on its own line.
func (p *printer) emitLeading(line int) {
	if line <= 0 {
		return
	}
	for p.next < len(p.comments) {
		c := p.comments[p.next]
		if c.Line > line || (c.Line == line && c.Placement == token.Trailing) {
			return
		}
		p.write("#" + c.Text)
		p.writeln()
		p.next++
	}
}

// emitTrailing appends comments anchored to the given line after the code.
func (p *printer) emitTrailing(line int) {
	if line <= 0 {
		return
	}
	for p.next < len(p.comments) {
		c := p.comments[p.next]
		if c.Line != line || c.Placement != token.Trailing {
			return
		}
		p.write("  #" + c.Text)
		p.next++
	}
}

// emitRemaining flushes comments anchored past the last statement.
func (p *printer) emitRemaining() {
	for p.next < len(p.comments) {
		p.write("#" + p.comments[p.next].Text)
		p.writeln()
		p.next++
	}
}

func (p *printer) nodeLine(n tree.Node) int {
	if l := n.NodeMeta().Line; l > 0 {
		return l
	}
	// Synthesized nodes inherit the running line so comment order is kept.
	return p.lastLine
}

// ---------- statements ----------

func (p *printer) stmts(list []tree.Node) {
	for _, s := range list {
		line := p.nodeLine(s)
		p.emitLeading(line)
		p.stmt(s)
		p.emitTrailing(line)
		p.writeln()
		if line > p.lastLine {
			p.lastLine = line
		}
	}
}

func (p *printer) stmt(n tree.Node) {
	if blk, ok := n.(*tree.Block); ok {
		p.write("do")
		p.writeln()
		p.indent()
		p.stmts(blk.Stmts)
		p.dedent()
		p.write("end")
		return
	}
	p.expr(n)
}

// ---------- expressions ----------

// expr writes an expression, breaking call arguments or collection elements
// across lines when the one-line form exceeds the budget.
func (p *printer) expr(n tree.Node) {
	s := oneline(n, precNone)
	if p.fits(s) {
		p.write(s)
		return
	}
	switch n := n.(type) {
	case *tree.Call:
		p.write(oneline(n.Target, precPostfix) + "(")
		p.breakList(n.Args)
		p.write(")")
	case *tree.Collection:
		open, closing := "[", "]"
		if n.CollKind == tree.Tuple {
			open, closing = "(", ")"
		}
		p.write(open)
		p.breakList(n.Elems)
		p.write(closing)
	case *tree.Assign:
		p.write(oneline(n.Pattern, precNone) + " = ")
		p.expr(n.Value)
	case *tree.Annotated:
		p.write("@" + n.Name + " ")
		p.expr(n.Inner)
	case *tree.BinaryOp:
		// Break after the operator; the right side gets the next line.
		p.write(oneline(n.Left, binPrec(n.Op)) + " " + n.Op)
		p.writeln()
		p.indent()
		p.expr(n.Right)
		p.dedent()
	default:
		p.write(s)
	}
}

func (p *printer) breakList(elems []tree.Node) {
	p.writeln()
	p.indent()
	for i, e := range elems {
		p.expr(e)
		if i < len(elems)-1 {
			p.write(",")
		}
		p.writeln()
	}
	p.dedent()
}

// Precedence levels for minimal re-parenthesization. Mirrors the parser.
const (
	precNone = iota
	precOr
	precAnd
	precCompare
	precAdd
	precMul
	precPostfix
)

func binPrec(op string) int {
	switch op {
	case "or":
		return precOr
	case "and":
		return precAnd
	case "==", "!=", "<", "<=", ">", ">=":
		return precCompare
	case "+", "-":
		return precAdd
	case "*", "/":
		return precMul
	default:
		return precCompare
	}
}

// oneline renders a node on a single line, inserting parentheses only where
// the parse would otherwise bind differently. minPrec is the binding power
// demanded by the surrounding context.
func oneline(n tree.Node, minPrec int) string {
	var b strings.Builder
	writeOneline(&b, n, minPrec)
	return b.String()
}

func writeOneline(b *strings.Builder, n tree.Node, minPrec int) {
	switch n := n.(type) {
	case *tree.Leaf:
		b.WriteString(n.Value.String())
	case *tree.Ident:
		b.WriteString(n.Name)
	case *tree.Call:
		writeOneline(b, n.Target, precPostfix)
		b.WriteByte('(')
		writeOnelineList(b, n.Args)
		b.WriteByte(')')
	case *tree.Collection:
		open, closing := byte('['), byte(']')
		if n.CollKind == tree.Tuple {
			open, closing = '(', ')'
		}
		b.WriteByte(open)
		writeOnelineList(b, n.Elems)
		if n.CollKind == tree.Tuple && len(n.Elems) == 1 {
			b.WriteByte(',') // keep one-element tuples tuples
		}
		b.WriteByte(closing)
	case *tree.BinaryOp:
		prec := binPrec(n.Op)
		parens := prec < minPrec
		if parens {
			b.WriteByte('(')
		}
		writeOneline(b, n.Left, prec)
		b.WriteByte(' ')
		b.WriteString(n.Op)
		b.WriteByte(' ')
		writeOneline(b, n.Right, prec+1)
		if parens {
			b.WriteByte(')')
		}
	case *tree.Assign:
		writeOneline(b, n.Pattern, precNone)
		b.WriteString(" = ")
		writeOneline(b, n.Value, precNone)
	case *tree.Annotated:
		b.WriteByte('@')
		b.WriteString(n.Name)
		b.WriteByte(' ')
		// Annotation inners parse at operand level; anything looser
		// needs grouping to survive a reparse.
		writeOneline(b, n.Inner, precPostfix)
	case *tree.Block:
		b.WriteString("do ")
		for i, s := range n.Stmts {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeOneline(b, s, precNone)
		}
		b.WriteString(" end")
	}
}

func writeOnelineList(b *strings.Builder, elems []tree.Node) {
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		writeOneline(b, e, precNone)
	}
}
