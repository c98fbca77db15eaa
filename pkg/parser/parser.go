// Package parser turns chisel script source text into a tree plus its
// comment side channel. The engine never parses text itself; it consumes
// this package's output through the (Tree, Comments) contract.
//
// # Grammar Overview
//
//	file    → { NEWLINE } { stmt { NEWLINE } } EOF
//	stmt    → expr [ "=" expr ]          -- "=" requires an assignable pattern
//	expr    → binary with precedence: or < and < (== != < <= > >=) < (+ -) < (* /)
//	operand → [ "-" ] primary { "(" args ")" }
//	primary → literal | IDENT | "(" expr [ "," ... ] ")" | "[" elems "]"
//	        | "@" IDENT operand | "do" stmts "end"
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chisellabs/chisel/pkg/comments"
	"github.com/chisellabs/chisel/pkg/token"
	"github.com/chisellabs/chisel/pkg/tree"
)

// Parser parses chisel script into a tree.
type Parser struct {
	lexer  *Lexer
	path   string      // file identity carried into errors
	token  token.Token // current token
	peek   token.Token // lookahead token
	errors []error
	nextID tree.NodeID
}

// NewParser creates a new parser for the given source. path names the file
// in errors; it may be empty.
func NewParser(src, path string) *Parser {
	p := &Parser{lexer: NewLexer(src), path: path}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a whole source file and returns the tree (a top-level Block)
// and the comment store. On failure it returns the first error, which is
// always a *ParseError carrying path.
func Parse(src, path string) (tree.Node, *comments.Store, error) {
	p := NewParser(src, path)
	root := p.parseFile()
	if len(p.errors) > 0 {
		return nil, nil, p.errors[0]
	}
	return root, comments.NewStore(p.lexer.Comments), nil
}

// ---------- Token helpers ----------

func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.errorf(errUnexpectedToken, p.token.Type, t)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Path:    p.path,
		Pos:     p.token.Pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// skipNewlines consumes statement separators where they are insignificant
// (inside brackets, after commas, around block delimiters).
func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) meta(pos token.Position) tree.Meta {
	p.nextID++
	return tree.Meta{Line: pos.Line, ID: p.nextID}
}

// ---------- Productions ----------

// parseFile parses statements until EOF into the implicit top-level Block.
func (p *Parser) parseFile() tree.Node {
	m := p.meta(p.token.Pos)
	var stmts []tree.Node
	p.skipNewlines()
	for !p.check(token.EOF) {
		if len(p.errors) > 0 {
			break
		}
		stmts = append(stmts, p.parseStmt())
		if !p.check(token.EOF) && !p.expect(token.NEWLINE) {
			break
		}
		p.skipNewlines()
	}
	return &tree.Block{Meta: m, Stmts: stmts}
}

// parseStmt parses one statement: an expression, optionally assigned to a
// pattern.
func (p *Parser) parseStmt() tree.Node {
	pos := p.token.Pos
	left := p.parseExpr(precLowest)
	if !p.check(token.ASSIGN) {
		return left
	}
	if !validPattern(left) {
		p.errorf(errInvalidPattern)
		return left
	}
	p.nextToken() // consume '='
	p.skipNewlines()
	value := p.parseExpr(precLowest)
	return &tree.Assign{Meta: p.meta(pos), Pattern: left, Value: value}
}

// validPattern allows an identifier or a tuple of identifiers on the left
// of an assignment.
func validPattern(n tree.Node) bool {
	switch n := n.(type) {
	case *tree.Ident:
		return true
	case *tree.Collection:
		if n.CollKind != tree.Tuple {
			return false
		}
		for _, e := range n.Elems {
			if _, ok := e.(*tree.Ident); !ok {
				return false
			}
		}
		return len(n.Elems) > 0
	default:
		return false
	}
}

// Binary operator precedence levels.
const (
	precLowest = iota + 1
	precOr
	precAnd
	precCompare
	precAdd
	precMul
)

func precedence(t token.TokenType) int {
	switch t {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE:
		return precCompare
	case token.PLUS, token.MINUS:
		return precAdd
	case token.STAR, token.SLASH:
		return precMul
	default:
		return 0
	}
}

// parseExpr parses left-associative binary chains at or above minPrec.
func (p *Parser) parseExpr(minPrec int) tree.Node {
	left := p.parseOperand()
	for {
		prec := precedence(p.token.Type)
		if prec < minPrec || prec == 0 {
			return left
		}
		op := p.token.Literal
		pos := p.token.Pos
		p.nextToken()
		p.skipNewlines()
		right := p.parseExpr(prec + 1)
		left = &tree.BinaryOp{Meta: p.meta(pos), Op: op, Left: left, Right: right}
	}
}

// parseOperand parses a primary expression with its postfix call chain.
// A leading minus is folded into a numeric literal.
func (p *Parser) parseOperand() tree.Node {
	if p.check(token.MINUS) && (p.peek.Type == token.INT || p.peek.Type == token.FLOAT) {
		pos := p.token.Pos
		p.nextToken()
		leaf := p.parseLiteral()
		if l, ok := leaf.(*tree.Leaf); ok {
			switch l.Value.Kind {
			case tree.ValueInt:
				l.Value.Int = -l.Value.Int
			case tree.ValueFloat:
				l.Value.Float = -l.Value.Float
			}
			l.Meta.Line = pos.Line
		}
		return leaf
	}
	n := p.parsePrimary()
	for p.check(token.LPAREN) {
		n = p.parseCall(n)
	}
	return n
}

func (p *Parser) parsePrimary() tree.Node {
	pos := p.token.Pos
	switch p.token.Type {
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE, token.NIL:
		return p.parseLiteral()
	case token.IDENT:
		name := p.token.Literal
		p.nextToken()
		return &tree.Ident{Meta: p.meta(pos), Name: name}
	case token.LPAREN:
		return p.parseParen()
	case token.LBRACK:
		return p.parseList()
	case token.AT:
		return p.parseAnnotation()
	case token.DO:
		return p.parseBlock()
	case token.ILLEGAL:
		if strings.HasPrefix(p.token.Literal, `"`) {
			p.errorf(errUnterminatedString)
		} else {
			p.errorf(errUnexpectedToken, p.token.Type, "expression")
		}
		p.nextToken()
		return &tree.Leaf{Meta: p.meta(pos), Value: tree.Nil()}
	default:
		p.errorf(errUnexpectedToken, p.token.Type, "expression")
		p.nextToken()
		return &tree.Leaf{Meta: p.meta(pos), Value: tree.Nil()}
	}
}

func (p *Parser) parseLiteral() tree.Node {
	pos := p.token.Pos
	lit := p.token.Literal
	var v tree.Value
	switch p.token.Type {
	case token.INT:
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			p.errorf(errInvalidNumber, lit)
		}
		v = tree.Int(n)
	case token.FLOAT:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.errorf(errInvalidNumber, lit)
		}
		v = tree.Float(f)
	case token.STRING:
		v = tree.Str(lit)
	case token.TRUE:
		v = tree.Bool(true)
	case token.FALSE:
		v = tree.Bool(false)
	case token.NIL:
		v = tree.Nil()
	}
	p.nextToken()
	return &tree.Leaf{Meta: p.meta(pos), Value: v}
}

// parseParen parses a grouped expression or, with commas, a tuple.
func (p *Parser) parseParen() tree.Node {
	pos := p.token.Pos
	p.nextToken() // consume '('
	p.skipNewlines()
	first := p.parseExpr(precLowest)
	p.skipNewlines()
	if !p.check(token.COMMA) {
		p.expect(token.RPAREN)
		return first
	}
	elems := []tree.Node{first}
	for p.match(token.COMMA) {
		p.skipNewlines()
		if p.check(token.RPAREN) {
			break // trailing comma
		}
		elems = append(elems, p.parseExpr(precLowest))
		p.skipNewlines()
	}
	p.expect(token.RPAREN)
	return &tree.Collection{Meta: p.meta(pos), CollKind: tree.Tuple, Elems: elems}
}

func (p *Parser) parseList() tree.Node {
	pos := p.token.Pos
	p.nextToken() // consume '['
	p.skipNewlines()
	var elems []tree.Node
	for !p.check(token.RBRACK) && !p.check(token.EOF) {
		elems = append(elems, p.parseExpr(precLowest))
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACK)
	return &tree.Collection{Meta: p.meta(pos), CollKind: tree.List, Elems: elems}
}

func (p *Parser) parseCall(target tree.Node) tree.Node {
	pos := p.token.Pos
	p.nextToken() // consume '('
	p.skipNewlines()
	var args []tree.Node
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		args = append(args, p.parseExpr(precLowest))
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.expect(token.RPAREN)
	return &tree.Call{Meta: p.meta(pos), Target: target, Args: args}
}

func (p *Parser) parseAnnotation() tree.Node {
	pos := p.token.Pos
	p.nextToken() // consume '@'
	if !p.check(token.IDENT) {
		p.errorf(errUnexpectedToken, p.token.Type, token.IDENT)
		return &tree.Leaf{Meta: p.meta(pos), Value: tree.Nil()}
	}
	name := p.token.Literal
	p.nextToken()
	inner := p.parseOperand()
	return &tree.Annotated{Meta: p.meta(pos), Name: name, Inner: inner}
}

func (p *Parser) parseBlock() tree.Node {
	pos := p.token.Pos
	p.nextToken() // consume 'do'
	p.skipNewlines()
	var stmts []tree.Node
	for !p.check(token.END) && !p.check(token.EOF) {
		if len(p.errors) > 0 {
			break
		}
		stmts = append(stmts, p.parseStmt())
		p.skipNewlines()
	}
	p.expect(token.END)
	return &tree.Block{Meta: p.meta(pos), Stmts: stmts}
}
