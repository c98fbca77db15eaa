package parser

import (
	"github.com/chisellabs/chisel/pkg/token"
)

// Lexer tokenizes chisel script input. Comments never become tokens; they
// are collected into the Comments slice for the side channel, tagged with
// their anchor line and a leading/trailing placement hint.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	lastCodeLine int // last line that carried a non-comment token

	// Comments collected during lexing (for the side-channel store)
	Comments []token.Comment
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token. Newlines are significant (statement
// separators) and produce NEWLINE tokens; other whitespace is skipped.
func (l *Lexer) NextToken() token.Token {
	tok := l.scan()
	if tok.Type != token.EOF && tok.Type != token.NEWLINE {
		l.lastCodeLine = tok.Pos.Line
	}
	return tok
}

func (l *Lexer) scan() token.Token {
	l.skipSpacesAndComments()

	pos := l.currentPos()

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Pos: pos}
	case '\n':
		l.readChar()
		return token.Token{Type: token.NEWLINE, Literal: "\n", Pos: pos}
	case '+':
		return l.single(token.PLUS, pos)
	case '-':
		return l.single(token.MINUS, pos)
	case '*':
		return l.single(token.STAR, pos)
	case '/':
		return l.single(token.SLASH, pos)
	case '=':
		if l.peekChar() == '=' {
			return l.double(token.EQ, pos)
		}
		return l.single(token.ASSIGN, pos)
	case '!':
		if l.peekChar() == '=' {
			return l.double(token.NE, pos)
		}
		return l.single(token.ILLEGAL, pos)
	case '<':
		if l.peekChar() == '=' {
			return l.double(token.LE, pos)
		}
		return l.single(token.LT, pos)
	case '>':
		if l.peekChar() == '=' {
			return l.double(token.GE, pos)
		}
		return l.single(token.GT, pos)
	case ',':
		return l.single(token.COMMA, pos)
	case '(':
		return l.single(token.LPAREN, pos)
	case ')':
		return l.single(token.RPAREN, pos)
	case '[':
		return l.single(token.LBRACK, pos)
	case ']':
		return l.single(token.RBRACK, pos)
	case '@':
		return l.single(token.AT, pos)
	case '"':
		lit, terminated := l.readString()
		if !terminated {
			// Keep the opening quote so the parser can tell an
			// unterminated string from other illegal input.
			return token.Token{Type: token.ILLEGAL, Literal: `"` + lit, Pos: pos}
		}
		return token.Token{Type: token.STRING, Literal: lit, Pos: pos}
	default:
		switch {
		case isLetter(l.ch):
			lit := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
		case isDigit(l.ch):
			lit, isFloat := l.readNumber()
			t := token.INT
			if isFloat {
				t = token.FLOAT
			}
			return token.Token{Type: t, Literal: lit, Pos: pos}
		default:
			return l.single(token.ILLEGAL, pos)
		}
	}
}

// single consumes the current char and returns a one-char token.
func (l *Lexer) single(t token.TokenType, pos token.Position) token.Token {
	lit := string(l.ch)
	l.readChar()
	return token.Token{Type: t, Literal: lit, Pos: pos}
}

// double consumes two chars and returns a two-char token.
func (l *Lexer) double(t token.TokenType, pos token.Position) token.Token {
	lit := string(l.ch) + string(l.peekChar())
	l.readChar()
	l.readChar()
	return token.Token{Type: t, Literal: lit, Pos: pos}
}

// skipSpacesAndComments consumes spaces, tabs, carriage returns, and '#'
// comments. Newlines are left for scan to report.
func (l *Lexer) skipSpacesAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '#':
			l.readComment()
		default:
			return
		}
	}
}

// readComment consumes a '#' comment up to (not including) the newline and
// records it in the side channel. A comment sharing its line with earlier
// code is a trailing comment; otherwise it leads the next statement.
func (l *Lexer) readComment() {
	line := l.line
	start := l.pos + 1 // skip the '#'
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	placement := token.Leading
	if line == l.lastCodeLine {
		placement = token.Trailing
	}
	l.Comments = append(l.Comments, token.Comment{
		Text:      l.input[start:l.pos],
		Line:      line,
		Placement: placement,
	})
}

// readIdentifier reads an identifier starting at the current char.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads an integer or float literal.
func (l *Lexer) readNumber() (lit string, isFloat bool) {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.pos], isFloat
}

// readString reads a double-quoted string literal, handling \" , \\ , \n
// and \t escapes. Returns the unquoted text and whether the literal
// terminated before EOF or end of line.
func (l *Lexer) readString() (string, bool) {
	var out []byte
	l.readChar() // skip opening quote
	for {
		switch l.ch {
		case '"':
			l.readChar()
			return string(out), true
		case 0, '\n':
			return string(out), false
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, l.ch)
			}
			l.readChar()
		default:
			out = append(out, l.ch)
			l.readChar()
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
